package curve

// Point is one row of the curve table.
type Point struct {
	Temp    int `yaml:"temp"`
	Raw     int `yaml:"raw"`
	Duty    int `yaml:"duty"`
	Percent int `yaml:"percent"`

	// Boosted is the duty-cycle sent while the performance profile is active.
	Boosted int `yaml:"boosted"`
}

// Table evaluates the curve for every degree in [from, to].
func (c Curve) Table(from, to int) []Point {
	if to < from {
		return nil
	}

	points := make([]Point, 0, to-from+1)
	for temp := from; temp <= to; temp++ {
		raw := c.Duty(temp)
		duty := c.Clamp(raw)
		points = append(points, Point{
			Temp:    temp,
			Raw:     raw,
			Duty:    duty,
			Percent: DutyToPercent(duty),
			Boosted: c.Clamp(Boost(raw)),
		})
	}
	return points
}
