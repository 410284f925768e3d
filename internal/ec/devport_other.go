//go:build !linux

package ec

import "errors"

// DevPort is a dummy for platforms without /dev/port.
type DevPort struct{}

// NewDevPort returns a DevPort that never grants access.
func NewDevPort() *DevPort {
	return &DevPort{}
}

func (p *DevPort) Acquire() error {
	return errors.New("EC port access is only available on linux")
}

func (p *DevPort) In(port uint16) byte { return 0 }

func (p *DevPort) Out(port uint16, value byte) {}
