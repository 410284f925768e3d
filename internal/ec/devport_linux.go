//go:build linux

package ec

import (
	"fmt"

	"golang.org/x/sys/unix"
)

const devPortPath = "/dev/port"

// DevPort reaches the I/O ports through /dev/port, where the file offset is
// the port number. It needs root or CAP_SYS_RAWIO.
type DevPort struct {
	fd int
}

// NewDevPort returns a DevPort, the device is opened by Acquire.
func NewDevPort() *DevPort {
	return &DevPort{fd: -1}
}

// Acquire opens /dev/port on first use and keeps it open.
func (p *DevPort) Acquire() error {
	if p.fd >= 0 {
		return nil
	}

	fd, err := unix.Open(devPortPath, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return fmt.Errorf("unable to open %s: %w", devPortPath, err)
	}
	p.fd = fd
	return nil
}

func (p *DevPort) In(port uint16) byte {
	var b [1]byte
	if _, err := unix.Pread(p.fd, b[:], int64(port)); err != nil {
		return 0
	}
	return b[0]
}

func (p *DevPort) Out(port uint16, value byte) {
	b := [1]byte{value}
	_, _ = unix.Pwrite(p.fd, b[:], int64(port))
}
