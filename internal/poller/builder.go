// internal/poller/builder.go
package poller

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	cfg "github.com/tamzrod/safe-shutdown/internal/config"
	pi2c "github.com/tamzrod/safe-shutdown/internal/poller/i2c"
	"github.com/tamzrod/safe-shutdown/internal/shutdown"
)

// Build opens the bus and wires a Poller with the system shutdown executor.
// The bus is opened once and held for the life of the process;
// the returned closer releases it.
// Extra options (warner, sinks) are applied after the built-in ones.
func Build(c *cfg.Config, log logrus.FieldLogger, opts ...Option) (*Poller, func() error, error) {
	client, err := pi2c.Open(pi2c.Config{
		Bus:     *c.Device.Bus,
		Address: c.Device.Address,
	})
	if err != nil {
		return nil, nil, err
	}

	exec, err := shutdown.New(shutdown.Config{
		Command: c.Shutdown.Command,
		Timeout: time.Duration(c.Shutdown.TimeoutMs) * time.Millisecond,
	}, nil)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	all := append([]Option{
		WithLogger(log),
		WithShutdowner(exec),
	}, opts...)

	p, err := New(
		Config{
			DeviceID:        fmt.Sprintf("%s@i2c-%d:0x%02x", c.Device.Name, *c.Device.Bus, c.Device.Address),
			Command:         c.Device.Command,
			ReadLength:      c.Device.ReadLength,
			Interval:        time.Duration(c.Poll.IntervalMs) * time.Millisecond,
			Thresholds:      c.VoltageThresholds(),
			MaxReadFailures: c.Poll.MaxReadFailures,
		},
		client,
		all...,
	)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	return p, client.Close, nil
}
