// internal/poller/types.go
package poller

import (
	"context"
	"time"

	"github.com/tamzrod/safe-shutdown/internal/telemetry"
	"github.com/tamzrod/safe-shutdown/internal/threshold"
)

// PollResult is a snapshot produced by one poll cycle.
type PollResult struct {
	DeviceID string
	At       time.Time

	// Raw is the block exactly as read from the bus.
	Raw []byte

	Block telemetry.Block
	Band  threshold.Band

	Err error // non-nil means the poll cycle failed; Block and Band are zero
}

// Voltage returns the decoded voltage widened to float64.
func (r PollResult) Voltage() float64 {
	return float64(r.Block.Voltage)
}

// Warner receives readings that fall into the warn band.
type Warner interface {
	Warn(ctx context.Context, res PollResult)
}

// Shutdowner issues the terminal operating-system halt.
type Shutdowner interface {
	Shutdown(ctx context.Context) error
}

// Sink receives every poll result, failed or not.
// Sink errors are logged and never stop the poller.
type Sink interface {
	Publish(res PollResult) error
}

// WarnFunc adapts a function to Warner.
type WarnFunc func(ctx context.Context, res PollResult)

func (f WarnFunc) Warn(ctx context.Context, res PollResult) { f(ctx, res) }

type noWarn struct{}

func (noWarn) Warn(context.Context, PollResult) {}
