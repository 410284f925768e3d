package main

import "time"

// state is everything the controller remembers between ticks.
type state struct {
	// lastSentDuty is the duty-cycle of the previous tick,
	// meaningless until sent is true.
	lastSentDuty int
	sent         bool

	// lastSendTime is the time of the last hardware write.
	lastSendTime time.Time

	performanceMode bool

	// ticks gates the periodic profile check.
	ticks int

	profileMonitoring bool
}

// needsSend reports whether duty must be written at now: it changed, or the
// EC was not refreshed for longer than maxSetInterval.
func (s *state) needsSend(duty int, now time.Time) bool {
	return !s.sent ||
		duty != s.lastSentDuty ||
		now.Sub(s.lastSendTime) > maxSetInterval
}
