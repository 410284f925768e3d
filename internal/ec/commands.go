package ec

// ReadTemperature returns the CPU temperature in whole degrees Celsius.
// It returns 0 when the ports are not accessible or the EC did not answer.
func (t *Transport) ReadTemperature() int {
	if !t.Acquire() {
		return 0
	}

	t.Flush()
	t.SendCommand(OpReadRegister)
	t.WriteData(TemperatureSensor)
	return int(t.ReadByte())
}

// SetDuty sets the CPU fan duty-cycle. Nothing is read back.
func (t *Transport) SetDuty(duty uint8) {
	if !t.Acquire() {
		return
	}

	t.SendCommand(OpSetFan)
	t.WriteData(Fan1)
	t.WriteData(duty)
}
