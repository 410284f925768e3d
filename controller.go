package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/oblq/ecfan/internal/curve"
	"github.com/oblq/ecfan/internal/profile"
)

const (
	// refreshRate is the pause between two ticks.
	refreshRate = 100 * time.Millisecond

	// maxSetInterval is the longest time without writing the duty-cycle,
	// the EC forgets it when waking up from sleep.
	maxSetInterval = 2000 * time.Millisecond

	// profileCheckTicks is the number of ticks between profile checks.
	profileCheckTicks = 25

	performanceNote = " (Increased due to Performance mode enabled)"
)

type controller struct {
	sensor   TempSensor
	fan      FanActuator
	profiles ProfileProvider
	curve    curve.Curve

	out io.Writer
	log *slog.Logger
	now func() time.Time

	state state
}

func newController(sensor TempSensor, fan FanActuator, profiles ProfileProvider, c curve.Curve, out io.Writer, logger *slog.Logger) *controller {
	return &controller{
		sensor:   sensor,
		fan:      fan,
		profiles: profiles,
		curve:    c,
		out:      out,
		log:      logger.With("component", "controller"),
		now:      time.Now,
	}
}

// init probes the profile tool and resets the state.
func (c *controller) init(ctx context.Context) {
	c.state = state{profileMonitoring: c.profiles.Probe(ctx)}

	if c.state.profileMonitoring {
		c.log.Info("power profiles daemon found, performance mode boosts the fan")
	} else {
		c.log.Info("power profiles daemon not found, performance mode is ignored")
	}
}

// Run controls the fan until ctx is done.
func (c *controller) Run(ctx context.Context) {
	c.init(ctx)

	for {
		c.tick(ctx)

		select {
		case <-ctx.Done():
			return
		case <-time.After(refreshRate):
		}
	}
}

// tick reads the temperature, decides the duty-cycle and writes it if needed.
func (c *controller) tick(ctx context.Context) {
	temp := c.sensor.ReadTemperature()
	duty := c.decide(ctx, temp)

	now := c.now()
	if c.state.needsSend(duty, now) {
		c.fan.SetDuty(uint8(duty))
		c.state.lastSendTime = now
		c.report(temp, duty)
	}

	c.state.lastSentDuty = duty
	c.state.sent = true
}

// decide maps temp to a clamped duty-cycle, checking the power profile
// every profileCheckTicks ticks. The boost applies on check ticks only.
func (c *controller) decide(ctx context.Context, temp int) int {
	duty := c.curve.Duty(temp)

	c.state.ticks++
	if c.state.profileMonitoring && c.state.ticks > profileCheckTicks {
		c.state.ticks = 0

		status := c.profiles.Status(ctx)
		c.state.performanceMode = status == profile.Performance
		if c.state.performanceMode {
			duty = curve.Boost(duty)
		}
		c.log.Debug("power profile checked", "status", status)
	}

	return c.curve.Clamp(duty)
}

func (c *controller) report(temp, duty int) {
	line := fmt.Sprintf("T:%d°C | set fan to %d%% (%d)", temp, curve.DutyToPercent(duty), duty)
	if c.state.performanceMode {
		line += performanceNote
	}
	fmt.Fprintln(c.out, line)
}
