// Package transport opens the controller's two framed byte sinks, the
// UART and the USB-CDC-ACM serial device, and drains each into its own
// reassembler, invoking the command executor synchronously on every
// complete frame and writing the framed response back out. Both present
// to the host as termios-configurable character devices, so one Sink
// implementation serves both.
package transport

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/tarm/serial"

	"github.com/umx75/controller/internal/command"
	"github.com/umx75/controller/internal/protocol"
)

// Sink is one framed byte source/sink: a UART or USB-CDC device speaking
// UMX framing. Each sink owns its own Reassembler; partial frames on one
// device never interleave with the other's.
type Sink struct {
	name string
	port io.ReadWriteCloser
	ra   *protocol.Reassembler
}

// Open opens device at baud and wraps it as a named Sink. bufCapacity
// sizes the reassembler's payload buffer.
func Open(name, device string, baud, bufCapacity int) (*Sink, error) {
	cfg := &serial.Config{Name: device, Baud: baud}
	port, err := serial.OpenPort(cfg)
	if err != nil {
		return nil, fmt.Errorf("transport: open %s (%s): %w", name, device, err)
	}
	return newSink(name, port, bufCapacity), nil
}

func newSink(name string, port io.ReadWriteCloser, bufCapacity int) *Sink {
	return &Sink{name: name, port: port, ra: protocol.NewReassembler(bufCapacity)}
}

// Run reads bytes from the transport until ctx is cancelled or the
// device errors, feeding each byte to the reassembler and, on a complete
// frame, invoking exec synchronously and writing the framed response
// back to the same device. Commands execute inline on this goroutine, so
// responses always go out in arrival order.
func (s *Sink) Run(ctx context.Context, exec *command.Executor) {
	buf := make([]byte, 256)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		n, err := s.port.Read(buf)
		if err != nil {
			if err == io.EOF {
				return
			}
			log.Printf("transport: %s read error: %v", s.name, err)
			return
		}

		for _, b := range buf[:n] {
			s.ra.ReadByte(b)
			payload, ok := s.ra.GetCommand()
			if !ok {
				continue
			}
			opcode, response := exec.Handle(payload)
			frame := protocol.Encode(opcode, response)
			if _, err := s.port.Write(frame); err != nil {
				log.Printf("transport: %s write error: %v", s.name, err)
			}
		}
	}
}

// Close releases the underlying device.
func (s *Sink) Close() error {
	return s.port.Close()
}
