// internal/threshold/threshold.go
package threshold

import (
	"errors"
	"fmt"
	"math"
)

// Default threshold values (volts).
const (
	DefaultWarnVoltage     = 3.3
	DefaultShutdownVoltage = 3.2
)

var ErrInvalidThresholds = errors.New("threshold: invalid thresholds")

// Band is the voltage band a reading falls into.
type Band uint8

const (
	BandOK Band = iota
	BandWarn
	BandShutdown
)

func (b Band) String() string {
	switch b {
	case BandOK:
		return "ok"
	case BandWarn:
		return "warn"
	case BandShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// Thresholds holds the two fixed voltage limits.
// Immutable once the poller is built.
type Thresholds struct {
	Warn     float64
	Shutdown float64
}

// Default returns the stock 3.3V / 3.2V thresholds.
func Default() Thresholds {
	return Thresholds{
		Warn:     DefaultWarnVoltage,
		Shutdown: DefaultShutdownVoltage,
	}
}

// Validate enforces finite values and Shutdown < Warn.
func (t Thresholds) Validate() error {
	if math.IsNaN(t.Warn) || math.IsInf(t.Warn, 0) {
		return fmt.Errorf("%w: warn voltage %v is not finite", ErrInvalidThresholds, t.Warn)
	}
	if math.IsNaN(t.Shutdown) || math.IsInf(t.Shutdown, 0) {
		return fmt.Errorf("%w: shutdown voltage %v is not finite", ErrInvalidThresholds, t.Shutdown)
	}
	if !(t.Shutdown < t.Warn) {
		return fmt.Errorf(
			"%w: shutdown voltage %v must be below warn voltage %v",
			ErrInvalidThresholds, t.Shutdown, t.Warn,
		)
	}
	return nil
}

// Classify maps a voltage onto a band.
//
//	warn:     (Shutdown, Warn]
//	shutdown: (-inf, Shutdown]
//	ok:       everything else (including NaN)
func (t Thresholds) Classify(voltage float64) Band {
	if voltage <= t.Warn && voltage > t.Shutdown {
		return BandWarn
	}
	if voltage <= t.Shutdown {
		return BandShutdown
	}
	return BandOK
}
