package ec

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// stepClock moves forward by step on every reading.
type stepClock struct {
	now  time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.now = c.now.Add(c.step)
	return c.now
}

func newTestTransport(sim *Sim) *Transport {
	clock := &stepClock{now: time.Unix(0, 0), step: time.Millisecond}
	return NewTransport(sim, clock, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestTransport_ReadTemperature(t *testing.T) {
	sim := NewSim(48, 65, 90)
	tr := newTestTransport(sim)

	require.Equal(t, 48, tr.ReadTemperature())
	require.Equal(t, 65, tr.ReadTemperature())
	require.Equal(t, 90, tr.ReadTemperature())
	// exhausted, the last one sticks
	require.Equal(t, 90, tr.ReadTemperature())

	require.Equal(t, []Write{
		{Port: CommandPort, Value: OpReadRegister},
		{Port: DataPort, Value: TemperatureSensor},
	}, sim.Writes[:2])
}

func TestTransport_ReadTemperatureRepeat(t *testing.T) {
	sim := NewSim(50, 60)
	sim.Repeat = true
	tr := newTestTransport(sim)

	got := make([]int, 0, 5)
	for i := 0; i < 5; i++ {
		got = append(got, tr.ReadTemperature())
	}
	require.Equal(t, []int{50, 60, 50, 60, 50}, got)
}

func TestTransport_ReadTemperatureBusyEC(t *testing.T) {
	sim := NewSim(72)
	sim.BusyPolls = 500
	tr := newTestTransport(sim)
	tr.CommandTimeout = time.Hour
	tr.ReadTimeout = time.Hour

	require.Equal(t, 72, tr.ReadTemperature())
}

func TestTransport_ReadTemperatureFlushesStaleByte(t *testing.T) {
	sim := NewSim(61)
	sim.Stale(0xAA)
	tr := newTestTransport(sim)

	require.Equal(t, 61, tr.ReadTemperature())
}

func TestTransport_ReadByteTimeout(t *testing.T) {
	sim := NewSim(61)
	sim.Mute = true
	tr := newTestTransport(sim)

	start := tr.clock.Now()
	require.Equal(t, 0, tr.ReadTemperature())
	require.True(t, tr.clock.Now().Sub(start) > tr.ReadTimeout)
}

func TestTransport_SendCommandTimeout(t *testing.T) {
	sim := NewSim()
	sim.StuckBusy = true
	tr := newTestTransport(sim)

	start := tr.clock.Now()
	tr.SendCommand(OpSetFan)

	// the command is written once the wait gives up
	require.Equal(t, []Write{{Port: CommandPort, Value: OpSetFan}}, sim.Writes)
	elapsed := tr.clock.Now().Sub(start)
	require.True(t, elapsed > tr.CommandTimeout)
	require.True(t, elapsed < tr.ReadTimeout)
}

func TestTransport_Flush(t *testing.T) {
	sim := NewSim()
	sim.Stale(0x42)
	tr := newTestTransport(sim)

	tr.Flush()
	require.Zero(t, sim.In(CommandPort)&StatusOBF)
	require.Empty(t, sim.Writes)
}

func TestTransport_SetDuty(t *testing.T) {
	sim := NewSim()
	sim.BusyPolls = 3
	tr := newTestTransport(sim)

	tr.SetDuty(96)
	require.Equal(t, uint8(96), sim.Duty)
	require.Equal(t, 1, sim.DutyWrites)
	require.Equal(t, []Write{
		{Port: CommandPort, Value: OpSetFan},
		{Port: DataPort, Value: Fan1},
		{Port: DataPort, Value: 96},
	}, sim.Writes)

	tr.SetDuty(255)
	require.Equal(t, uint8(255), sim.Duty)
	require.Equal(t, 2, sim.DutyWrites)
}

func TestTransport_AccessDenied(t *testing.T) {
	sim := NewSim(70)
	sim.Denied = true
	tr := newTestTransport(sim)

	require.Equal(t, 0, tr.ReadTemperature())
	tr.SetDuty(128)
	require.Empty(t, sim.Writes)
	require.Zero(t, sim.DutyWrites)
	require.True(t, tr.denied)

	sim.Denied = false
	require.Equal(t, 70, tr.ReadTemperature())
	require.False(t, tr.denied)
}
