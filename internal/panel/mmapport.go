package panel

import (
	"github.com/umx75/controller/pkg/mmap"
)

// MMapPort is an OutputPort backed by a single memory-mapped 16-bit GPIO
// register, reached through /dev/mem. This is the high-throughput backend:
// the refresh loop's per-column writes go straight to the mapped register
// with no syscall per write.
type MMapPort struct {
	region *mmap.MemoryMap
}

// OpenMMapPort maps the page containing physAddr and returns a port that
// writes a 16-bit word at that address.
func OpenMMapPort(physAddr uintptr) (*MMapPort, error) {
	region, err := mmap.New(physAddr, 2)
	if err != nil {
		return nil, err
	}
	return &MMapPort{region: region}, nil
}

// Write stores word at the mapped register.
func (p *MMapPort) Write(word uint16) {
	p.region.Write16(0, word)
}

// Close unmaps the register page.
func (p *MMapPort) Close() error {
	return p.region.Close()
}
