package ec

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario drives a Sim.
type Scenario struct {
	// Temperatures are returned by successive temperature reads.
	// Once exhausted the last one is repeated, unless Repeat is set.
	Temperatures []int `yaml:"temperatures"`

	// Repeat restarts Temperatures from the beginning once exhausted.
	Repeat bool `yaml:"repeat"`

	// BusyPolls is how many status reads keep IBF set after every write.
	BusyPolls int `yaml:"busy_polls"`
}

// Write is one byte written to a port.
type Write struct {
	Port  uint16
	Value byte
}

// Sim is an in-memory EC speaking the port protocol of the real one.
type Sim struct {
	Scenario

	// Denied makes Acquire fail.
	Denied bool
	// StuckBusy keeps IBF set forever.
	StuckBusy bool
	// Mute never fills the output buffer.
	Mute bool

	// Duty is the last duty-cycle set on Fan1, DutyWrites counts them.
	Duty       uint8
	DutyWrites int

	// Writes records every byte written to the ports.
	Writes []Write

	obf  bool
	data byte
	busy int

	op   byte
	args []byte
	next int
}

// NewSim returns a Sim serving temps.
func NewSim(temps ...int) *Sim {
	return &Sim{Scenario: Scenario{Temperatures: temps}}
}

// LoadScenario reads a YAML scenario file and returns a Sim running it.
func LoadScenario(path string) (*Sim, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	if len(sc.Temperatures) == 0 {
		return nil, fmt.Errorf("invalid scenario %s: no temperatures", path)
	}
	for _, temp := range sc.Temperatures {
		if temp < 0 || temp > 255 {
			return nil, fmt.Errorf("invalid scenario %s: temperature %d does not fit a byte", path, temp)
		}
	}
	if sc.BusyPolls < 0 {
		return nil, fmt.Errorf("invalid scenario %s: negative busy_polls", path)
	}

	return &Sim{Scenario: sc}, nil
}

// Stale leaves b in the output buffer, as an aborted transaction would.
func (s *Sim) Stale(b byte) {
	s.data = b
	s.obf = true
}

func (s *Sim) Acquire() error {
	if s.Denied {
		return errors.New("simulated access denial")
	}
	return nil
}

func (s *Sim) In(port uint16) byte {
	switch port {
	case CommandPort:
		var status byte
		if s.obf {
			status |= StatusOBF
		}
		if s.StuckBusy || s.busy > 0 {
			status |= StatusIBF
			if s.busy > 0 {
				s.busy--
			}
		}
		return status

	case DataPort:
		s.obf = false
		return s.data
	}
	return 0xFF
}

func (s *Sim) Out(port uint16, value byte) {
	s.Writes = append(s.Writes, Write{Port: port, Value: value})
	s.busy = s.BusyPolls

	switch port {
	case CommandPort:
		s.op = value
		s.args = s.args[:0]

	case DataPort:
		s.args = append(s.args, value)
		s.exec()
	}
}

// exec runs the pending command once all of its arguments arrived.
func (s *Sim) exec() {
	switch {
	case s.op == OpReadRegister && len(s.args) == 1:
		if s.args[0] == TemperatureSensor && !s.Mute {
			s.data = byte(s.nextTemperature())
			s.obf = true
		}
		s.op = 0

	case s.op == OpSetFan && len(s.args) == 2:
		if s.args[0] == Fan1 {
			s.Duty = s.args[1]
			s.DutyWrites++
		}
		s.op = 0
	}
}

func (s *Sim) nextTemperature() int {
	temps := s.Temperatures
	if len(temps) == 0 {
		return 0
	}
	if s.next >= len(temps) {
		if !s.Repeat {
			return temps[len(temps)-1]
		}
		s.next = 0
	}
	temp := temps[s.next]
	s.next++
	return temp
}
