// cmd/powermon/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/tamzrod/safe-shutdown/internal/config"
	"github.com/tamzrod/safe-shutdown/internal/logging"
	"github.com/tamzrod/safe-shutdown/internal/poller"
	"github.com/tamzrod/safe-shutdown/internal/writer"
)

func main() {
	if len(os.Args) > 2 {
		fmt.Fprintln(os.Stderr, "usage: powermon [config.yaml]")
		os.Exit(2)
	}

	var cfgPath string
	if len(os.Args) == 2 {
		cfgPath = os.Args[1]
	}

	if err := run(cfgPath); err != nil {
		logrus.WithError(err).Fatal("powermon stopped")
	}
}

func run(cfgPath string) error {
	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	config.Normalize(cfg)

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	log, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	// --------------------
	// Status export (optional)
	// --------------------

	sink, closeSink, err := writer.Build(cfg)
	if err != nil {
		return fmt.Errorf("status export build failed: %w", err)
	}
	defer closeSink()

	th := cfg.VoltageThresholds()

	opts := []poller.Option{
		poller.WithWarner(poller.WarnFunc(func(ctx context.Context, res poller.PollResult) {
			log.WithFields(logrus.Fields{
				"voltage": res.Block.Voltage,
				"warn":    th.Warn,
			}).Warn("battery voltage low")
		})),
	}
	if sink != nil {
		opts = append(opts, poller.WithSinks(sink))
		log.WithField("endpoint", cfg.StatusExport.Endpoint).Info("status export enabled")
	}

	// --------------------
	// Poller (bus held for the life of the process)
	// --------------------

	p, closeBus, err := poller.Build(cfg, log, opts...)
	if err != nil {
		return fmt.Errorf("poller build failed: %w", err)
	}
	defer closeBus()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(logrus.Fields{
		"bus":      *cfg.Device.Bus,
		"address":  fmt.Sprintf("0x%02x", cfg.Device.Address),
		"warn":     th.Warn,
		"shutdown": th.Shutdown,
	}).Info("powermon started")

	err = p.Run(ctx)
	switch {
	case err == nil:
		log.Info("powermon stopped by signal")
		return nil
	case errors.Is(err, poller.ErrShutdownIssued):
		log.Warn("system shutdown issued, exiting")
		return nil
	default:
		return err
	}
}
