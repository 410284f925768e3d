// Package ec talks to the laptop embedded controller through its
// command/status and data I/O ports.
//
// Every transaction is a command byte, zero or more data bytes written and
// optionally one data byte read, synchronised by busy-waiting on the status
// register. The EC raises no interrupts.
package ec

import (
	"log/slog"
	"time"
)

const (
	// CommandPort is the command (write) and status (read) port.
	CommandPort uint16 = 0x66
	// DataPort is the data port.
	DataPort uint16 = 0x62

	// StatusOBF is set when the EC output buffer holds a byte for us.
	StatusOBF byte = 1 << 0
	// StatusIBF is set while the EC has not consumed the last byte we wrote.
	StatusIBF byte = 1 << 1

	// OpReadRegister reads one vendor register, its index follows as data.
	OpReadRegister byte = 0x9E
	// OpSetFan sets a fan duty-cycle, the fan id and the duty follow as data.
	OpSetFan byte = 0x99

	// TemperatureSensor is the OpReadRegister index of the CPU temperature.
	TemperatureSensor byte = 0x01
	// Fan1 is the OpSetFan id of the CPU fan.
	Fan1 byte = 0x01

	// DefaultCommandTimeout bounds the wait before writing a command byte.
	DefaultCommandTimeout = 30 * time.Millisecond
	// DefaultReadTimeout bounds the wait for a byte to read.
	DefaultReadTimeout = time.Second
)

// Ports is raw access to the two EC I/O ports.
type Ports interface {
	// Acquire requests access to CommandPort and DataPort.
	// It must be safe to call before every transaction.
	Acquire() error
	In(port uint16) byte
	Out(port uint16, value byte)
}

// Clock is a monotonic time source.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Transport runs EC transactions over Ports.
// It is not safe for concurrent use, transactions must not overlap.
type Transport struct {
	ports Ports
	clock Clock
	log   *slog.Logger

	CommandTimeout time.Duration
	ReadTimeout    time.Duration

	// denied is true while the last Acquire failed.
	denied bool
}

// NewTransport returns a Transport over ports.
// A nil clock means the system clock, a nil logger means slog.Default().
func NewTransport(ports Ports, clock Clock, logger *slog.Logger) *Transport {
	if clock == nil {
		clock = systemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Transport{
		ports:          ports,
		clock:          clock,
		log:            logger.With("component", "ec"),
		CommandTimeout: DefaultCommandTimeout,
		ReadTimeout:    DefaultReadTimeout,
	}
}

// Acquire requests port access and reports whether it was granted.
// A failure is logged once, until access comes back.
func (t *Transport) Acquire() bool {
	if err := t.ports.Acquire(); err != nil {
		if !t.denied {
			t.log.Warn("EC port access denied, fan control is disabled until it is granted", "err", err)
		}
		t.denied = true
		return false
	}

	if t.denied {
		t.log.Info("EC port access granted")
	}
	t.denied = false
	return true
}

// Flush drains a stale byte left by an aborted transaction.
func (t *Transport) Flush() {
	for t.status()&StatusOBF != 0 {
		t.ports.In(DataPort)
	}
}

// SendCommand waits up to CommandTimeout for the EC input buffer to empty,
// then writes op to the command port, whether or not the wait succeeded.
func (t *Transport) SendCommand(op byte) {
	deadline := t.clock.Now().Add(t.CommandTimeout)
	for t.status()&StatusIBF != 0 {
		if t.clock.Now().After(deadline) {
			t.log.Debug("EC input buffer still full, sending command anyway", "op", op)
			break
		}
	}

	t.ports.Out(CommandPort, op)
}

// WriteData waits, without bound, for the EC input buffer to empty and
// writes b to the data port.
func (t *Transport) WriteData(b byte) {
	for t.status()&StatusIBF != 0 {
	}

	t.ports.Out(DataPort, b)
}

// ReadByte waits up to ReadTimeout for the EC output buffer to fill and
// returns the data byte. It returns 0 on timeout.
func (t *Transport) ReadByte() byte {
	deadline := t.clock.Now().Add(t.ReadTimeout)
	for t.status()&StatusOBF == 0 {
		if t.clock.Now().After(deadline) {
			t.log.Debug("EC output buffer never filled, reading 0")
			return 0
		}
	}

	return t.ports.In(DataPort)
}

func (t *Transport) status() byte {
	return t.ports.In(CommandPort)
}
