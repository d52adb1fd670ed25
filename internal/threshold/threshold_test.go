// internal/threshold/threshold_test.go
package threshold

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Bands(t *testing.T) {
	th := Default()

	tests := []struct {
		name    string
		voltage float64
		want    Band
	}{
		{"well above warn", 5.0, BandOK},
		{"just above warn", 3.3000001, BandOK},
		{"exactly warn", 3.3, BandWarn},
		{"inside warn band", 3.25, BandWarn},
		{"just above shutdown", 3.2000001, BandWarn},
		{"exactly shutdown", 3.2, BandShutdown},
		{"below shutdown", 3.19, BandShutdown},
		{"zero", 0, BandShutdown},
		{"negative", -1, BandShutdown},
		{"negative infinity", math.Inf(-1), BandShutdown},
		{"positive infinity", math.Inf(1), BandOK},
		{"nan", math.NaN(), BandOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, th.Classify(tt.voltage))
		})
	}
}

// float32 readings widened to float64 keep their float32 rounding,
// so a reported "3.2" sits just above the shutdown limit.
func TestClassify_Float32Readings(t *testing.T) {
	th := Default()

	assert.Equal(t, BandWarn, th.Classify(float64(float32(3.3))))
	assert.Equal(t, BandWarn, th.Classify(float64(float32(3.2))))
	assert.Equal(t, BandShutdown, th.Classify(float64(float32(3.19))))
	assert.Equal(t, BandOK, th.Classify(float64(float32(3.35))))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Default().Validate())

	bad := []Thresholds{
		{Warn: 3.2, Shutdown: 3.2},
		{Warn: 3.1, Shutdown: 3.2},
		{Warn: math.NaN(), Shutdown: 3.2},
		{Warn: 3.3, Shutdown: math.Inf(-1)},
	}
	for _, th := range bad {
		assert.ErrorIs(t, th.Validate(), ErrInvalidThresholds, "thresholds %+v", th)
	}
}

func TestBandString(t *testing.T) {
	assert.Equal(t, "ok", BandOK.String())
	assert.Equal(t, "warn", BandWarn.String())
	assert.Equal(t, "shutdown", BandShutdown.String())
	assert.Equal(t, "unknown", Band(9).String())
}
