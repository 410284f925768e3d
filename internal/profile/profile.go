// Package profile reads the active power profile from power-profiles-daemon
// through its command line client.
package profile

import (
	"context"

	"github.com/oblq/ecfan/internal/exec"
)

// DefaultTool is the power-profiles-daemon client.
const DefaultTool = "powerprofilesctl"

// Status is the power profile state as seen by the fan controller.
type Status int

const (
	Unavailable Status = iota
	Other
	Performance
)

func (s Status) String() string {
	switch s {
	case Performance:
		return "performance"
	case Other:
		return "other"
	default:
		return "unavailable"
	}
}

const (
	performanceLine = "performance\n"

	// a version line longer than this is probably not a version.
	maxVersionLen = 10
)

// runner runs a command line and returns its raw standard output.
type runner func(ctx context.Context, cmdString string) (string, error)

// PowerProfiles queries the profile tool.
type PowerProfiles struct {
	tool string
	run  runner
}

// NewPowerProfiles returns a PowerProfiles running tool,
// which may carry leading words such as a wrapper command.
func NewPowerProfiles(tool string) *PowerProfiles {
	if tool == "" {
		tool = DefaultTool
	}
	return &PowerProfiles{tool: tool, run: exec.Command}
}

// Probe reports whether the tool is installed and answers `version` with
// something that looks like a bare version string.
func (p *PowerProfiles) Probe(ctx context.Context) bool {
	out, err := p.run(ctx, p.tool+" version")
	if err != nil {
		return false
	}

	line := exec.FirstLine(out)
	return line != "" && len(line) <= maxVersionLen
}

// Status returns the active profile. Only an exact "performance" line
// counts as Performance.
func (p *PowerProfiles) Status(ctx context.Context) Status {
	out, err := p.run(ctx, p.tool+" get")
	if err != nil {
		return Unavailable
	}

	if exec.FirstLine(out) == performanceLine {
		return Performance
	}
	return Other
}
