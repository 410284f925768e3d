// Package curve maps a CPU temperature to a raw fan duty-cycle (0-255).
package curve

import "math"

const (
	// OffTemp is the temperature at or below which the fan may stop.
	OffTemp = 53
	// Temp25 is the temperature at which the fan spins at 25%.
	Temp25 = 60
	// Temp50 is the temperature at which the fan spins at 50%.
	Temp50 = 70
	// Temp75 is the temperature at which the fan spins at 75%.
	Temp75 = 78
	// Temp100 is the temperature from which the fan spins at 100%.
	Temp100 = 85

	// MinDuty is the minimal rotation speed of the fan.
	MinDuty = 50
	// MaxDuty is the full-speed duty-cycle.
	MaxDuty = 255

	// OffEnabled lets the fan stop below OffTemp.
	OffEnabled = false

	// PerformanceMultiplier boosts the duty-cycle when the performance
	// power profile is active.
	PerformanceMultiplier = 1.3
)

// Curve is a 5-segment piecewise fan curve.
type Curve struct {
	OffTemp, Temp25, Temp50, Temp75, Temp100 int

	MinDuty    int
	OffEnabled bool
}

// Default is the curve the daemon runs with.
var Default = Curve{
	OffTemp:    OffTemp,
	Temp25:     Temp25,
	Temp50:     Temp50,
	Temp75:     Temp75,
	Temp100:    Temp100,
	MinDuty:    MinDuty,
	OffEnabled: OffEnabled,
}

// PercentToDuty converts a fan percentage to a raw duty-cycle,
// rounding half away from zero.
func PercentToDuty(percent float64) int {
	return int(math.Round(percent / 100 * MaxDuty))
}

// DutyToPercent converts a raw duty-cycle to a rounded fan percentage.
func DutyToPercent(duty int) int {
	return int(math.Round(float64(duty) / MaxDuty * 100))
}

// Duty returns the duty-cycle for temp before any clamping.
// The result may fall outside [0, 255] for temperatures below OffTemp.
func (c Curve) Duty(temp int) int {
	switch {
	case temp <= c.OffTemp && c.OffEnabled:
		return 0

	case temp <= c.Temp25:
		return PercentToDuty(25 * ratio(temp, c.OffTemp, c.Temp25))

	case temp <= c.Temp50:
		s := ratio(temp, c.Temp25, c.Temp50)
		return PercentToDuty(25 + 25*s)

	case temp <= c.Temp75:
		// the slope is not scaled by 25 here, the segment stays close to 50%.
		s := ratio(temp, c.Temp50, c.Temp75)
		return PercentToDuty(50 + s)

	case temp <= c.Temp100:
		s := ratio(temp, c.Temp75, c.Temp100)
		return PercentToDuty(75 + 25*s)

	default:
		return MaxDuty
	}
}

// Clamp applies the minimal speed and the upper bound to duty.
func (c Curve) Clamp(duty int) int {
	if duty < c.MinDuty && duty != 0 {
		duty = c.MinDuty
	}
	if !c.OffEnabled && duty == 0 {
		duty = c.MinDuty
	}
	if duty > MaxDuty {
		duty = MaxDuty
	}
	return duty
}

// Boost applies the performance multiplier to duty, truncating the result.
func Boost(duty int) int {
	return int(float64(duty) * PerformanceMultiplier)
}

func ratio(temp, from, to int) float64 {
	return float64(temp-from) / float64(to-from)
}
