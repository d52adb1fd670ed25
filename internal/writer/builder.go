// internal/writer/builder.go
package writer

import (
	"time"

	cfg "github.com/tamzrod/safe-shutdown/internal/config"
	wmodbus "github.com/tamzrod/safe-shutdown/internal/writer/modbus"
)

// BuildPlan converts the status export config into a StatusPlan.
// ok is false when export is disabled.
func BuildPlan(c *cfg.Config) (plan StatusPlan, ok bool) {
	if !c.StatusExport.Enabled() {
		return StatusPlan{}, false
	}
	return StatusPlan{
		Endpoint:   c.StatusExport.Endpoint,
		UnitID:     c.StatusExport.UnitID,
		BaseSlot:   c.StatusExport.BaseSlot,
		DeviceName: c.Device.Name,
	}, true
}

// Build creates the status export sink.
// It returns a nil sink and a no-op closer when export is disabled.
func Build(c *cfg.Config) (*StatusSink, func() error, error) {
	noop := func() error { return nil }

	plan, ok := BuildPlan(c)
	if !ok {
		return nil, noop, nil
	}

	cli, err := wmodbus.NewEndpointClient(wmodbus.Config{
		Endpoint: plan.Endpoint,
		Timeout:  time.Duration(c.StatusExport.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		return nil, noop, err
	}

	return NewStatusSink(newDeviceStatusWriter(plan, cli)), cli.Close, nil
}
