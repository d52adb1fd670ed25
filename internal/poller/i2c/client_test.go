// internal/poller/i2c/client_test.go
package i2c

import (
	"bytes"
	"errors"
	"testing"

	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/conn/v3/physic"
)

// failingBus rejects every transaction.
type failingBus struct{ txs int }

func (f *failingBus) String() string                  { return "failing" }
func (f *failingBus) SetSpeed(physic.Frequency) error { return nil }

func (f *failingBus) Tx(addr uint16, w, r []byte) error {
	f.txs++
	return errors.New("remote I/O error")
}

func TestReadBlock_WritesCommandThenReads(t *testing.T) {
	want := []byte{0x0A, 0x00, 0x9A, 0x99, 0x59, 0x40}

	bus := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: 0x04, W: []byte{0x00}, R: want},
		},
		DontPanic: true,
	}

	c := NewFromBus(bus, 0x04)

	got, err := c.ReadBlock(0, len(want))
	if err != nil {
		t.Fatalf("ReadBlock err=%v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("unexpected block: got=%x want=%x", got, want)
	}

	if err := bus.Close(); err != nil {
		t.Fatalf("playback not fully consumed: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close on wrapped bus must be a no-op: %v", err)
	}
}

func TestReadBlock_BusError(t *testing.T) {
	bus := &failingBus{}

	c := NewFromBus(bus, 0x04)

	if _, err := c.ReadBlock(0, 6); err == nil {
		t.Fatalf("expected bus error, got nil")
	}
	if bus.txs != 1 {
		t.Fatalf("expected one transaction, got %d", bus.txs)
	}
}

func TestReadBlock_LengthBounds(t *testing.T) {
	bus := &failingBus{}
	c := NewFromBus(bus, 0x04)

	if _, err := c.ReadBlock(0, 0); err == nil {
		t.Fatalf("expected error for length 0")
	}
	if _, err := c.ReadBlock(0, MaxBlockLength+1); err == nil {
		t.Fatalf("expected error for length %d", MaxBlockLength+1)
	}
	if bus.txs != 0 {
		t.Fatalf("out-of-range lengths must not reach the bus")
	}
}

func TestOpen_AddressRequired(t *testing.T) {
	if _, err := Open(Config{Bus: 1}); err == nil {
		t.Fatalf("expected address error, got nil")
	}
}
