package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/oblq/ecfan/internal/curve"
	"github.com/oblq/ecfan/internal/ec"
	"github.com/oblq/ecfan/internal/profile"
)

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if opts.PrintCurve {
		if err := printCurve(os.Stdout, curve.Default); err != nil {
			logger.Error("unable to print the fan curve", "err", err)
			os.Exit(1)
		}
		return
	}

	var ports ec.Ports = ec.NewDevPort()
	if opts.Simulate != "" {
		sim, err := ec.LoadScenario(opts.Simulate)
		if err != nil {
			logger.Error("unable to load the EC scenario", "err", err)
			os.Exit(1)
		}
		logger.Info("running against a simulated EC", "scenario", opts.Simulate)
		ports = sim
	}

	transport := ec.NewTransport(ports, nil, logger)
	profiles := profile.NewPowerProfiles(opts.ProfileTool)

	c := newController(transport, transport, profiles, curve.Default, os.Stdout, logger)
	c.Run(context.Background())
}
