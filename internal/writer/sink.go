// internal/writer/sink.go
package writer

import (
	"github.com/tamzrod/safe-shutdown/internal/poller"
	"github.com/tamzrod/safe-shutdown/internal/status"
)

// StatusSink turns poll results into status block writes.
// It implements poller.Sink.
type StatusSink struct {
	tracker *status.Tracker
	writer  StatusWriter
}

func NewStatusSink(w StatusWriter) *StatusSink {
	return &StatusSink{
		tracker: status.NewTracker(),
		writer:  w,
	}
}

func (s *StatusSink) Publish(res poller.PollResult) error {
	snap := s.tracker.Observe(status.Observation{
		At:      res.At,
		Err:     res.Err,
		ErrCode: errorCode(res.Err),
		State:   res.Block.State,
		Voltage: res.Block.Voltage,
		Band:    res.Band,
	})
	return s.writer.WriteStatus(snap)
}

// Snapshot returns the last tracked status.
func (s *StatusSink) Snapshot() status.Snapshot {
	return s.tracker.Snapshot()
}
