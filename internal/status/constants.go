// internal/status/constants.go
package status

// Device Status Block layout constants.
// These values define the protocol and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// SlotsPerDevice is the fixed number of logical slots per device.
const SlotsPerDevice = 20

// ---- SLOT INDICES ----

// SlotHealthCode holds the device health state.
const SlotHealthCode = 0

// SlotLastErrorCode holds the last error code.
const SlotLastErrorCode = 1

// SlotSecondsInError holds the duration (in seconds) the device has been outside HealthOK.
const SlotSecondsInError = 2

// SlotSystemState holds the raw int16 system state reported by the peripheral.
const SlotSystemState = 3

// SlotVoltageHi and SlotVoltageLo hold the float32 voltage bits, high word first.
const SlotVoltageHi = 4
const SlotVoltageLo = 5

// SlotLiveEnd is the last slot rewritten on incremental updates (inclusive).
const SlotLiveEnd = SlotVoltageLo

// ---- RESERVED RANGE ----

// Slots 6-10 are reserved for future use.
const SlotReservedStart = 6
const SlotReservedEnd = 10

// ---- DEVICE NAME ----

// SlotDeviceNameStart is the first slot used for the device name.
const SlotDeviceNameStart = 11

// SlotDeviceNameSlots is the number of slots reserved for the device name.
const SlotDeviceNameSlots = 8

// SlotDeviceNameEnd is the last slot used for the device name (inclusive).
const SlotDeviceNameEnd = SlotDeviceNameStart + SlotDeviceNameSlots - 1

// ---- LIMITS ----

// DeviceNameMaxChars is the maximum number of ASCII characters stored for device name.
const DeviceNameMaxChars = 16

// SecondsInErrorMax is where seconds_in_error saturates.
const SecondsInErrorMax = 65535

// ---- HEALTH CODES ----

// HealthUnknown represents an unknown or boot state.
const HealthUnknown uint16 = 0

// HealthOK represents a healthy device above the warn voltage.
const HealthOK uint16 = 1

// HealthError represents a bus or decode failure.
const HealthError uint16 = 2

// HealthWarn represents a voltage inside the warn band.
const HealthWarn uint16 = 3

// HealthShutdown represents a voltage at or below the shutdown threshold.
const HealthShutdown uint16 = 4

// ---- ERROR CODES ----

const (
	ErrorCodeNone       uint16 = 0
	ErrorCodeGeneric    uint16 = 1
	ErrorCodeBusRead    uint16 = 2
	ErrorCodeShortBlock uint16 = 3
	ErrorCodeExhausted  uint16 = 4
)
