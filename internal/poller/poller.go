// internal/poller/poller.go
package poller

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker/v2"

	"github.com/tamzrod/safe-shutdown/internal/telemetry"
	"github.com/tamzrod/safe-shutdown/internal/threshold"
)

var (
	ErrRead                   = errors.New("poller: bus read failed")
	ErrReadFailuresExceeded   = errors.New("poller: consecutive read failures exceeded")
	ErrShutdownIssued         = errors.New("poller: shutdown issued")
	ErrShutdownFailed         = errors.New("poller: shutdown command failed")
	ErrSlaveConfigUnsupported = errors.New("poller: slave configuration not supported")
)

// Client abstracts the bus operation needed by the poller.
type Client interface {
	// ReadBlock writes command and reads length bytes back in one transaction.
	ReadBlock(command byte, length int) ([]byte, error)
}

// Config is the minimal runtime config the poller needs.
type Config struct {
	DeviceID   string
	Command    byte
	ReadLength int
	Interval   time.Duration
	Thresholds threshold.Thresholds

	// MaxReadFailures is the number of consecutive failed cycles
	// after which Run gives up. 1 aborts on the first failure.
	MaxReadFailures uint32
}

// Poller reads one telemetry block per interval and acts on the voltage band.
type Poller struct {
	cfg    Config
	client Client

	breaker *gobreaker.CircuitBreaker[pollRead]

	warner     Warner
	shutdowner Shutdowner
	sinks      []Sink

	log   logrus.FieldLogger
	now   func() time.Time
	after func(time.Duration) <-chan time.Time
}

type pollRead struct {
	raw   []byte
	block telemetry.Block
}

// Option customizes a Poller.
type Option func(*Poller)

func WithWarner(w Warner) Option {
	return func(p *Poller) {
		if w != nil {
			p.warner = w
		}
	}
}

func WithShutdowner(s Shutdowner) Option {
	return func(p *Poller) { p.shutdowner = s }
}

func WithSinks(sinks ...Sink) Option {
	return func(p *Poller) {
		for _, s := range sinks {
			if s != nil {
				p.sinks = append(p.sinks, s)
			}
		}
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(p *Poller) {
		if l != nil {
			p.log = l
		}
	}
}

// WithClock replaces the wall clock and the wait primitive.
func WithClock(now func() time.Time, after func(time.Duration) <-chan time.Time) Option {
	return func(p *Poller) {
		if now != nil {
			p.now = now
		}
		if after != nil {
			p.after = after
		}
	}
}

// New creates a poller with immutable config.
func New(cfg Config, client Client, opts ...Option) (*Poller, error) {
	if cfg.DeviceID == "" {
		return nil, errors.New("poller: device id required")
	}
	if client == nil {
		return nil, errors.New("poller: client required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if cfg.ReadLength < telemetry.BlockSize {
		return nil, fmt.Errorf("poller: read length must be >= %d", telemetry.BlockSize)
	}
	if err := cfg.Thresholds.Validate(); err != nil {
		return nil, fmt.Errorf("poller: %w", err)
	}
	if cfg.MaxReadFailures == 0 {
		cfg.MaxReadFailures = 1
	}

	p := &Poller{
		cfg:    cfg,
		client: client,
		warner: noWarn{},
		log:    logrus.StandardLogger(),
		now:    time.Now,
		after:  time.After,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.shutdowner == nil {
		return nil, errors.New("poller: shutdowner required")
	}

	p.log = p.log.WithField("device", cfg.DeviceID)
	p.breaker = p.newBreaker()

	return p, nil
}

// breakerHold keeps an open breaker open for the life of the process.
const breakerHold = 100 * 365 * 24 * time.Hour

// newBreaker counts consecutive failed cycles.
// Once open it stays open for the rest of the process; Run stops at that point.
func (p *Poller) newBreaker() *gobreaker.CircuitBreaker[pollRead] {
	limit := p.cfg.MaxReadFailures

	return gobreaker.NewCircuitBreaker[pollRead](gobreaker.Settings{
		Name:        "bus:" + p.cfg.DeviceID,
		MaxRequests: 1,
		Timeout:     breakerHold,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= limit
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			p.log.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("read breaker state change")
		},
	})
}

// PollOnce performs exactly one poll cycle: read, decode, classify.
// All-or-nothing: any failure aborts the cycle.
func (p *Poller) PollOnce() PollResult {
	res := PollResult{
		DeviceID: p.cfg.DeviceID,
		At:       p.now(),
	}

	r, err := p.breaker.Execute(func() (pollRead, error) {
		raw, err := p.client.ReadBlock(p.cfg.Command, p.cfg.ReadLength)
		if err != nil {
			return pollRead{}, fmt.Errorf("%w: %w", ErrRead, err)
		}
		block, err := telemetry.Decode(raw)
		if err != nil {
			return pollRead{}, err
		}
		return pollRead{raw: raw, block: block}, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = fmt.Errorf("%w: %w", ErrReadFailuresExceeded, err)
		}
		res.Err = err
		return res
	}

	res.Raw = r.raw
	res.Block = r.block
	res.Band = p.cfg.Thresholds.Classify(res.Voltage())
	return res
}

// ConfigSlave would push a setting to the peripheral.
// The firmware defines no configuration registers, so it always fails.
func (p *Poller) ConfigSlave(value byte) error {
	return ErrSlaveConfigUnsupported
}

// Exhausted reports whether the read-failure budget is spent.
func (p *Poller) Exhausted() bool {
	return p.breaker.State() == gobreaker.StateOpen
}
