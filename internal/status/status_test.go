// internal/status/status_test.go
package status

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/tamzrod/safe-shutdown/internal/threshold"
)

func TestEncode_Layout(t *testing.T) {
	s := Snapshot{
		Health:         HealthWarn,
		LastErrorCode:  0,
		SecondsInError: 12,
		SystemState:    -2,
		Voltage:        3.25,
	}

	regs := Encode(s)

	if len(regs) != SlotsPerDevice {
		t.Fatalf("expected %d regs, got %d", SlotsPerDevice, len(regs))
	}
	if regs[SlotHealthCode] != HealthWarn {
		t.Fatalf("health: got=%d want=%d", regs[SlotHealthCode], HealthWarn)
	}
	if regs[SlotSecondsInError] != 12 {
		t.Fatalf("seconds: got=%d want=12", regs[SlotSecondsInError])
	}
	if regs[SlotSystemState] != 0xFFFE {
		t.Fatalf("state: got=0x%04x want=0xfffe", regs[SlotSystemState])
	}

	bits := uint32(regs[SlotVoltageHi])<<16 | uint32(regs[SlotVoltageLo])
	if v := math.Float32frombits(bits); v != 3.25 {
		t.Fatalf("voltage: got=%v want=3.25", v)
	}

	for i := SlotReservedStart; i < SlotsPerDevice; i++ {
		if regs[i] != 0 {
			t.Fatalf("slot %d must be zero, got %d", i, regs[i])
		}
	}
}

func TestEncodeDeviceName(t *testing.T) {
	regs := EncodeDeviceName("UPS-01")

	if len(regs) != SlotDeviceNameSlots {
		t.Fatalf("expected %d regs, got %d", SlotDeviceNameSlots, len(regs))
	}
	want := []uint16{'U'<<8 | 'P', 'S'<<8 | '-', '0'<<8 | '1', 0, 0, 0, 0, 0}
	for i := range want {
		if regs[i] != want[i] {
			t.Fatalf("reg %d: got=0x%04x want=0x%04x", i, regs[i], want[i])
		}
	}

	// non-printable bytes are replaced, long names truncated
	regs = EncodeDeviceName("a\tbcdefghijklmnopqrstuvwxyz")
	if regs[0] != 'a'<<8|'?' {
		t.Fatalf("expected sanitized first reg, got 0x%04x", regs[0])
	}
	if regs[7] != 'n'<<8|'o' {
		t.Fatalf("expected truncation at 16 chars, got 0x%04x", regs[7])
	}
}

func TestTracker_BandToHealth(t *testing.T) {
	tr := NewTracker()
	if tr.Snapshot().Health != HealthUnknown {
		t.Fatalf("expected unknown on start")
	}

	at := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		band threshold.Band
		want uint16
	}{
		{threshold.BandOK, HealthOK},
		{threshold.BandWarn, HealthWarn},
		{threshold.BandShutdown, HealthShutdown},
	}
	for _, c := range cases {
		s := tr.Observe(Observation{At: at, Band: c.band, State: 3, Voltage: 3.3})
		if s.Health != c.want {
			t.Fatalf("band %s: got health %d want %d", c.band, s.Health, c.want)
		}
		if s.SystemState != 3 || s.Voltage != 3.3 {
			t.Fatalf("reading not carried: %+v", s)
		}
	}
}

func TestTracker_SecondsInErrorAndRecovery(t *testing.T) {
	tr := NewTracker()
	base := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	tr.Observe(Observation{At: base, Band: threshold.BandOK, Voltage: 4.1})

	readErr := errors.New("i2c: remote I/O error")
	for i := 1; i <= 5; i++ {
		s := tr.Observe(Observation{At: base.Add(time.Duration(i) * time.Second), Err: readErr, ErrCode: ErrorCodeBusRead})
		if s.Health != HealthError || s.LastErrorCode != ErrorCodeBusRead {
			t.Fatalf("cycle %d: unexpected snapshot %+v", i, s)
		}
		if s.SecondsInError != uint16(i-1) {
			t.Fatalf("cycle %d: seconds got=%d want=%d", i, s.SecondsInError, i-1)
		}
		if s.Voltage != 4.1 {
			t.Fatalf("last good voltage must be kept, got %v", s.Voltage)
		}
	}

	s := tr.Observe(Observation{At: base.Add(6 * time.Second), Band: threshold.BandOK, Voltage: 4.0})
	if s.Health != HealthOK || s.SecondsInError != 0 || s.LastErrorCode != 0 {
		t.Fatalf("recovery not applied: %+v", s)
	}
}

func TestTracker_WarnCountsAsNotOK(t *testing.T) {
	tr := NewTracker()
	base := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	tr.Observe(Observation{At: base, Band: threshold.BandWarn})
	s := tr.Observe(Observation{At: base.Add(3 * time.Second), Err: errors.New("x")})

	if s.SecondsInError != 3 {
		t.Fatalf("expected 3s since leaving OK, got %d", s.SecondsInError)
	}
	if s.LastErrorCode != ErrorCodeGeneric {
		t.Fatalf("missing code must map to generic, got %d", s.LastErrorCode)
	}
}

func TestTracker_SecondsSaturate(t *testing.T) {
	tr := NewTracker()
	base := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	tr.Observe(Observation{At: base, Err: errors.New("x")})
	s := tr.Observe(Observation{At: base.Add(48 * time.Hour), Err: errors.New("x")})

	if s.SecondsInError != SecondsInErrorMax {
		t.Fatalf("expected saturation at %d, got %d", SecondsInErrorMax, s.SecondsInError)
	}
}
