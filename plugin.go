package main

import (
	"context"

	"github.com/oblq/ecfan/internal/profile"
)

// TempSensor reads the CPU temperature in whole degrees Celsius.
// It never fails, a failed reading is 0.
type TempSensor interface {
	ReadTemperature() int
}

// FanActuator sets the raw duty-cycle of the CPU fan.
type FanActuator interface {
	SetDuty(duty uint8)
}

// ProfileProvider reports the active power profile.
type ProfileProvider interface {
	// Probe is called once at startup, profile checks are
	// disabled for the whole run when it returns false.
	Probe(ctx context.Context) bool
	Status(ctx context.Context) profile.Status
}
