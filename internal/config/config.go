// internal/config/config.go
package config

type Config struct {
	Device       DeviceConfig       `yaml:"device"`
	Poll         PollConfig         `yaml:"poll"`
	Thresholds   ThresholdConfig    `yaml:"thresholds"`
	Shutdown     ShutdownConfig     `yaml:"shutdown"`
	StatusExport StatusExportConfig `yaml:"status_export"`
	Log          LogConfig          `yaml:"log"`
}

// ---- DEVICE ----

type DeviceConfig struct {
	Name       string `yaml:"name"`
	Bus        *int   `yaml:"bus"`         // I2C bus number; nil => 1
	Address    uint16 `yaml:"address"`     // 7-bit slave address
	Command    uint8  `yaml:"command"`     // register/command code of the block read
	ReadLength int    `yaml:"read_length"` // bytes per block read (6..32)
}

// ---- POLL ----

type PollConfig struct {
	IntervalMs      int    `yaml:"interval_ms"`
	MaxReadFailures uint32 `yaml:"max_read_failures"` // consecutive failures before abort
}

// ---- THRESHOLDS ----

type ThresholdConfig struct {
	WarnVoltage     *float64 `yaml:"warn_voltage"`     // nil => 3.3
	ShutdownVoltage *float64 `yaml:"shutdown_voltage"` // nil => 3.2
}

// ---- SHUTDOWN ----

type ShutdownConfig struct {
	Command   []string `yaml:"command"`
	TimeoutMs int      `yaml:"timeout_ms"`
}

// ---- STATUS EXPORT (optional, opt-in) ----

type StatusExportConfig struct {
	Endpoint  string `yaml:"endpoint"` // empty disables export
	UnitID    uint8  `yaml:"unit_id"`
	BaseSlot  uint16 `yaml:"base_slot"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// Enabled reports whether status export is configured.
func (s StatusExportConfig) Enabled() bool {
	return s.Endpoint != ""
}

// ---- LOG ----

type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
	Output string `yaml:"output"` // stdout | stderr | file path
}
