package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oblq/ecfan/internal/curve"
	"github.com/oblq/ecfan/internal/ec"
	"github.com/oblq/ecfan/internal/profile"
)

func TestController_simulatedEC(t *testing.T) {
	sim := ec.NewSim(50, 50, 65, 65, 72, 90, 90)
	sim.BusyPolls = 2

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	transport := ec.NewTransport(sim, nil, logger)

	var out bytes.Buffer
	c := newController(transport, transport, &fakeProfiles{}, curve.Default, &out, logger)
	clock := &manualClock{now: time.Unix(0, 0)}
	c.now = clock.Now
	c.init(context.Background())

	for i := 0; i < 7; i++ {
		c.tick(context.Background())
		clock.advance(refreshRate)
	}

	require.Equal(t, uint8(255), sim.Duty)
	require.Equal(t, 4, sim.DutyWrites)
	require.Equal(t,
		"T:50°C | set fan to 20% (50)\n"+
			"T:65°C | set fan to 38% (96)\n"+
			"T:72°C | set fan to 50% (128)\n"+
			"T:90°C | set fan to 100% (255)\n",
		out.String())
}

func TestController_deniedEC(t *testing.T) {
	sim := ec.NewSim(90)
	sim.Denied = true

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	transport := ec.NewTransport(sim, nil, logger)

	var out bytes.Buffer
	c := newController(transport, transport, &fakeProfiles{status: profile.Unavailable}, curve.Default, &out, logger)
	c.init(context.Background())
	c.tick(context.Background())

	// degraded: the failed reading maps to the minimal speed, nothing reaches the ports
	require.Empty(t, sim.Writes)
	require.Equal(t, "T:0°C | set fan to 20% (50)\n", out.String())
}
