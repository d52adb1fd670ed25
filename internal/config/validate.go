// internal/config/validate.go
package config

import (
	"fmt"
	"strings"

	"github.com/tamzrod/safe-shutdown/internal/status"
	"github.com/tamzrod/safe-shutdown/internal/telemetry"
)

// MaxStatusBaseSlot is the highest base_slot whose status block still fits
// in the 16-bit register address space.
const MaxStatusBaseSlot = (65535 - status.SlotsPerDevice + 1) / status.SlotsPerDevice

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
// It MUST be called after Normalize().
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil config")
	}

	// ------------------------------------------------------------
	// DEVICE
	// ------------------------------------------------------------

	if cfg.Device.Bus == nil || *cfg.Device.Bus < 0 {
		return fmt.Errorf("device: bus must be >= 0")
	}

	// 7-bit addressing. The stock firmware answers at 0x04, inside the
	// low reserved range, so only 0x78-0x7F is rejected.
	if cfg.Device.Address == 0 || cfg.Device.Address > 0x77 {
		return fmt.Errorf("device: address 0x%02x out of range (0x01-0x77)", cfg.Device.Address)
	}

	if cfg.Device.ReadLength < telemetry.BlockSize || cfg.Device.ReadLength > 32 {
		return fmt.Errorf(
			"device: read_length %d out of range (%d-32)",
			cfg.Device.ReadLength,
			telemetry.BlockSize,
		)
	}

	for i := 0; i < len(cfg.Device.Name); i++ {
		if cfg.Device.Name[i] > 0x7F {
			return fmt.Errorf("device: name must contain ASCII characters only")
		}
	}

	// ------------------------------------------------------------
	// POLL
	// ------------------------------------------------------------

	if cfg.Poll.IntervalMs <= 0 {
		return fmt.Errorf("poll: interval_ms must be > 0")
	}
	if cfg.Poll.MaxReadFailures == 0 {
		return fmt.Errorf("poll: max_read_failures must be > 0")
	}

	// ------------------------------------------------------------
	// THRESHOLDS
	// ------------------------------------------------------------

	if err := cfg.VoltageThresholds().Validate(); err != nil {
		return fmt.Errorf("thresholds: %w", err)
	}

	// ------------------------------------------------------------
	// SHUTDOWN
	// ------------------------------------------------------------

	if len(cfg.Shutdown.Command) == 0 || strings.TrimSpace(cfg.Shutdown.Command[0]) == "" {
		return fmt.Errorf("shutdown: command required")
	}
	if cfg.Shutdown.TimeoutMs <= 0 {
		return fmt.Errorf("shutdown: timeout_ms must be > 0")
	}

	// ------------------------------------------------------------
	// STATUS EXPORT (OPT-IN)
	// ------------------------------------------------------------

	if cfg.StatusExport.Enabled() {
		if !strings.Contains(cfg.StatusExport.Endpoint, ":") {
			return fmt.Errorf(
				"status_export: endpoint %q must be host:port",
				cfg.StatusExport.Endpoint,
			)
		}
		if cfg.StatusExport.BaseSlot > MaxStatusBaseSlot {
			return fmt.Errorf(
				"status_export: base_slot %d out of range (0-%d)",
				cfg.StatusExport.BaseSlot,
				MaxStatusBaseSlot,
			)
		}
		if cfg.StatusExport.TimeoutMs <= 0 {
			return fmt.Errorf("status_export: timeout_ms must be > 0")
		}
	}

	// ------------------------------------------------------------
	// LOG
	// ------------------------------------------------------------

	switch strings.ToLower(cfg.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log: unknown format %q", cfg.Log.Format)
	}

	return nil
}
