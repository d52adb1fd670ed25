// internal/status/tracker.go
package status

import (
	"time"

	"github.com/tamzrod/safe-shutdown/internal/threshold"
)

// Observation is one poll outcome as seen by the tracker.
type Observation struct {
	At      time.Time
	Err     error
	ErrCode uint16 // used only when Err != nil; 0 maps to ErrorCodeGeneric

	State   int16
	Voltage float32
	Band    threshold.Band
}

// Tracker owns the device-level status state.
// Not safe for concurrent use; the poller is single-threaded.
type Tracker struct {
	snap    Snapshot
	notOKAt time.Time // when the device left HealthOK; zero while OK
}

// NewTracker starts in HealthUnknown.
func NewTracker() *Tracker {
	return &Tracker{
		snap: Snapshot{Health: HealthUnknown},
	}
}

// Snapshot returns the current state.
func (t *Tracker) Snapshot() Snapshot {
	return t.snap
}

// Observe folds one observation into the snapshot and returns it.
func (t *Tracker) Observe(o Observation) Snapshot {
	if o.Err != nil {
		t.snap.Health = HealthError
		t.snap.LastErrorCode = o.ErrCode
		if t.snap.LastErrorCode == ErrorCodeNone {
			t.snap.LastErrorCode = ErrorCodeGeneric
		}
	} else {
		t.snap.SystemState = o.State
		t.snap.Voltage = o.Voltage
		t.snap.LastErrorCode = ErrorCodeNone

		switch o.Band {
		case threshold.BandWarn:
			t.snap.Health = HealthWarn
		case threshold.BandShutdown:
			t.snap.Health = HealthShutdown
		default:
			t.snap.Health = HealthOK
		}
	}

	// Recovery resets seconds_in_error.
	if t.snap.Health == HealthOK {
		t.notOKAt = time.Time{}
		t.snap.SecondsInError = 0
		return t.snap
	}

	if t.notOKAt.IsZero() {
		t.notOKAt = o.At
	}
	t.snap.SecondsInError = saturatingSeconds(o.At.Sub(t.notOKAt))

	return t.snap
}

func saturatingSeconds(d time.Duration) uint16 {
	if d <= 0 {
		return 0
	}
	s := int64(d / time.Second)
	if s > SecondsInErrorMax {
		return SecondsInErrorMax
	}
	return uint16(s)
}
