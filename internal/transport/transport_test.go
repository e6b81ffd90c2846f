package transport

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/umx75/controller/internal/command"
	"github.com/umx75/controller/internal/panel"
)

// loopbackPort is an io.ReadWriteCloser backed by in-memory buffers: reads
// come from a fixed inbound script and then block (like an idle serial
// device) until Close unblocks them with io.EOF; writes accumulate for
// inspection.
type loopbackPort struct {
	mu        sync.Mutex
	r         *bytes.Reader
	w         bytes.Buffer
	closeCh   chan struct{}
	closeOnce sync.Once
}

func newLoopbackPort(data []byte) *loopbackPort {
	return &loopbackPort{r: bytes.NewReader(data), closeCh: make(chan struct{})}
}

func (p *loopbackPort) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if err == io.EOF {
		<-p.closeCh
		return 0, io.EOF
	}
	return n, err
}

func (p *loopbackPort) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.w.Write(b)
}

func (p *loopbackPort) Close() error {
	p.closeOnce.Do(func() { close(p.closeCh) })
	return nil
}

func (p *loopbackPort) written() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]byte(nil), p.w.Bytes()...)
}

func testExecutor(t *testing.T) *command.Executor {
	t.Helper()
	cfg := panel.Config{
		Pins: panel.PinMap{
			R1: 0, G1: 1, B1: 2,
			R2: 3, G2: 4, B2: 5,
			A: 6, B: 7, C: 8,
			CLK: 9, LAT: 10, OE: 11,
		},
		Width:  32,
		Height: 16,
		Port:   discardPort{},
	}
	d, err := panel.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return command.NewExecutor(d)
}

type discardPort struct{}

func (discardPort) Write(uint16) {}

func TestSinkRunEchoesPingResponse(t *testing.T) {
	pingFrame := []byte{0x55, 0x4D, 0x58, 0x00, 0x01, 0x0F}
	port := newLoopbackPort(pingFrame)
	sink := newSink("test", port, 64)
	exec := testExecutor(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sink.Run(ctx, exec)
		close(done)
	}()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if len(port.written()) > 0 {
			break
		}
		time.Sleep(time.Millisecond)
	}
	cancel()
	port.Close()
	<-done

	want := []byte{0x55, 0x4D, 0x58, 0x00, 0x05, 0x0F, 'P', 'o', 'n', 'g'}
	got := port.written()
	if len(got) < len(want) {
		t.Fatalf("written = %v, want prefix %v", got, want)
	}
	for i, b := range want {
		if got[i] != b {
			t.Fatalf("written[%d] = %#x, want %#x", i, got[i], b)
		}
	}
}
