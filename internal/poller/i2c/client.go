// internal/poller/i2c/client.go
package i2c

import (
	"errors"
	"fmt"
	"strconv"

	periphi2c "periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// MaxBlockLength is the SMBus block transfer limit.
const MaxBlockLength = 32

// Client implements poller.Client over a Linux I2C bus.
// It issues SMBus-style block reads: write the command byte, then read.
type Client struct {
	bus  periphi2c.Bus
	dev  *periphi2c.Dev
	stop func() error
}

// Config is minimal transport config.
type Config struct {
	Bus     int
	Address uint16
}

// Open initializes the host drivers and opens the bus.
// The bus stays open until Close.
func Open(cfg Config) (*Client, error) {
	if cfg.Address == 0 {
		return nil, errors.New("i2c client: address required")
	}

	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("i2c client: periph host init: %w", err)
	}

	bus, err := i2creg.Open(strconv.Itoa(cfg.Bus))
	if err != nil {
		return nil, fmt.Errorf("i2c client: open bus %d: %w", cfg.Bus, err)
	}

	c := NewFromBus(bus, cfg.Address)
	c.stop = bus.Close
	return c, nil
}

// NewFromBus wraps an already open bus. Close does not close the bus.
func NewFromBus(bus periphi2c.Bus, addr uint16) *Client {
	return &Client{
		bus: bus,
		dev: &periphi2c.Dev{Bus: bus, Addr: addr},
	}
}

// Close releases the bus.
func (c *Client) Close() error {
	if c == nil || c.stop == nil {
		return nil
	}
	return c.stop()
}

// ---- poller.Client interface ----

func (c *Client) ReadBlock(command byte, length int) ([]byte, error) {
	if c == nil || c.dev == nil {
		return nil, errors.New("i2c client: not open")
	}
	if length <= 0 || length > MaxBlockLength {
		return nil, fmt.Errorf("i2c client: block length %d out of range (1-%d)", length, MaxBlockLength)
	}

	buf := make([]byte, length)
	if err := c.dev.Tx([]byte{command}, buf); err != nil {
		return nil, fmt.Errorf("i2c: block read addr=0x%02x cmd=%d: %w", c.dev.Addr, command, err)
	}
	return buf, nil
}

func (c *Client) String() string {
	return fmt.Sprintf("%s@0x%02x", c.bus, c.dev.Addr)
}
