// internal/config/normalize.go
package config

import (
	"github.com/tamzrod/safe-shutdown/internal/shutdown"
	"github.com/tamzrod/safe-shutdown/internal/threshold"
)

const (
	DefaultBus        = 1
	DefaultAddress    = 0x04
	DefaultReadLength = 32 // SMBus block read maximum
	DefaultIntervalMs = 1000

	DefaultMaxReadFailures = 1

	DefaultShutdownTimeoutMs = 10000
	DefaultExportTimeoutMs   = 1000

	DefaultDeviceName = "safe-shutdown"

	// DeviceNameMaxChars matches the status block name field.
	DeviceNameMaxChars = 16
)

// Normalize fills unset fields with defaults.
// It is allowed to mutate configuration.
// Zero values mean "unset"; the command code keeps 0 as its default.
// Bus and thresholds are pointers so an explicit 0 survives.
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	// ---- device ----
	if cfg.Device.Bus == nil {
		bus := DefaultBus
		cfg.Device.Bus = &bus
	}
	if cfg.Device.Address == 0 {
		cfg.Device.Address = DefaultAddress
	}
	if cfg.Device.ReadLength == 0 {
		cfg.Device.ReadLength = DefaultReadLength
	}
	if cfg.Device.Name == "" {
		cfg.Device.Name = DefaultDeviceName
	}
	// Truncate to the status block name field.
	if len(cfg.Device.Name) > DeviceNameMaxChars {
		cfg.Device.Name = cfg.Device.Name[:DeviceNameMaxChars]
	}

	// ---- poll ----
	if cfg.Poll.IntervalMs == 0 {
		cfg.Poll.IntervalMs = DefaultIntervalMs
	}
	if cfg.Poll.MaxReadFailures == 0 {
		cfg.Poll.MaxReadFailures = DefaultMaxReadFailures
	}

	// ---- thresholds ----
	if cfg.Thresholds.WarnVoltage == nil {
		v := threshold.DefaultWarnVoltage
		cfg.Thresholds.WarnVoltage = &v
	}
	if cfg.Thresholds.ShutdownVoltage == nil {
		v := threshold.DefaultShutdownVoltage
		cfg.Thresholds.ShutdownVoltage = &v
	}

	// ---- shutdown ----
	if len(cfg.Shutdown.Command) == 0 {
		cfg.Shutdown.Command = append([]string(nil), shutdown.DefaultCommand...)
	}
	if cfg.Shutdown.TimeoutMs == 0 {
		cfg.Shutdown.TimeoutMs = DefaultShutdownTimeoutMs
	}

	// ---- status export ----
	if cfg.StatusExport.Enabled() && cfg.StatusExport.TimeoutMs == 0 {
		cfg.StatusExport.TimeoutMs = DefaultExportTimeoutMs
	}

	// ---- log ----
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
}

// VoltageThresholds returns the configured voltage thresholds.
// Unset values fall back to the defaults.
func (c *Config) VoltageThresholds() threshold.Thresholds {
	t := threshold.Default()
	if c.Thresholds.WarnVoltage != nil {
		t.Warn = *c.Thresholds.WarnVoltage
	}
	if c.Thresholds.ShutdownVoltage != nil {
		t.Shutdown = *c.Thresholds.ShutdownVoltage
	}
	return t
}
