package main

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/oblq/ecfan/internal/curve"
)

type options struct {
	ProfileTool string `long:"profile-tool" value-name:"CMD" default:"powerprofilesctl" description:"power profiles client, may start with a wrapper command"`
	Simulate    string `long:"simulate" value-name:"FILE" description:"drive a simulated EC from a YAML scenario instead of /dev/port"`
	PrintCurve  bool   `long:"print-curve" description:"print the fan curve as YAML and exit"`
	Verbose     bool   `short:"v" long:"verbose" description:"log EC protocol timeouts and profile checks"`
}

// curve table bounds for --print-curve.
const (
	tableFrom = 40
	tableTo   = 95
)

func printCurve(w io.Writer, c curve.Curve) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c.Table(tableFrom, tableTo)); err != nil {
		return err
	}
	return enc.Close()
}
