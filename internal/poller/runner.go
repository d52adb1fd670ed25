// internal/poller/runner.go
package poller

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tamzrod/safe-shutdown/internal/threshold"
)

// Run waits one interval, polls, acts, and repeats.
// The wait is not adjusted for processing time. No overlap.
//
// Run returns nil when ctx is cancelled, ErrShutdownIssued once the halt
// command has been issued, and a wrapped ErrReadFailuresExceeded or
// ErrShutdownFailed on fatal errors.
func (p *Poller) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-p.after(p.cfg.Interval):
		}
		// Cancelled while the timer was also ready.
		if ctx.Err() != nil {
			return nil
		}

		res := p.PollOnce()
		p.publish(res)

		if res.Err != nil {
			p.log.WithError(res.Err).Error("poll failed")
			if p.Exhausted() {
				return fmt.Errorf("%w (limit=%d): %w", ErrReadFailuresExceeded, p.cfg.MaxReadFailures, res.Err)
			}
			continue
		}

		if err := p.act(ctx, res); err != nil {
			return err
		}
	}
}

// act reports the reading and applies the threshold policy.
func (p *Poller) act(ctx context.Context, res PollResult) error {
	p.log.Infof("State %d", res.Block.State)
	p.log.Infof("Voltage %v", res.Block.Voltage)

	switch res.Band {
	case threshold.BandWarn:
		p.warner.Warn(ctx, res)

	case threshold.BandShutdown:
		p.log.WithFields(logrus.Fields{
			"voltage":  res.Block.Voltage,
			"shutdown": p.cfg.Thresholds.Shutdown,
		}).Error("voltage at or below shutdown threshold, halting system")

		if err := p.shutdowner.Shutdown(ctx); err != nil {
			return fmt.Errorf("%w: %w", ErrShutdownFailed, err)
		}
		return ErrShutdownIssued
	}

	return nil
}

func (p *Poller) publish(res PollResult) {
	for _, s := range p.sinks {
		if err := s.Publish(res); err != nil {
			p.log.WithError(err).Warn("sink publish failed")
		}
	}
}
