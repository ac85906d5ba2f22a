package solar

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/raterudder/solarcalc/pkg/types"
)

func TestDeclination(t *testing.T) {
	assert.InDelta(t, 0.0, Declination(81), 1e-12, "equinox")
	assert.InDelta(t, 23.45, Declination(172), 0.01, "june solstice")
	assert.InDelta(t, -23.45, Declination(355), 0.05, "december solstice")
}

func TestHourAngle(t *testing.T) {
	assert.Equal(t, 0.0, HourAngle(12))
	assert.Equal(t, 90.0, HourAngle(6))
	assert.Equal(t, -45.0, HourAngle(15))
}

func TestDaylightHours(t *testing.T) {
	t.Run("equator is always 12 hours", func(t *testing.T) {
		for day := 1; day <= 366; day++ {
			assert.InDelta(t, 12.0, DaylightHours(0, day), 1e-9, "day %d", day)
		}
	})

	t.Run("bounded for non-polar latitudes", func(t *testing.T) {
		for lat := -66; lat <= 66; lat++ {
			for day := 1; day <= 366; day++ {
				h := DaylightHours(float64(lat), day)
				assert.GreaterOrEqual(t, h, 0.0, "lat %d day %d", lat, day)
				assert.LessOrEqual(t, h, 24.0, "lat %d day %d", lat, day)
			}
		}
	})

	t.Run("polar day and night saturate", func(t *testing.T) {
		assert.InDelta(t, 24.0, DaylightHours(80, 172), 1e-9)
		assert.InDelta(t, 0.0, DaylightHours(-80, 172), 1e-9)
		assert.InDelta(t, 0.0, DaylightHours(80, 355), 1e-9)
		assert.InDelta(t, 24.0, DaylightHours(90, 172), 1e-9)
	})

	t.Run("summer is longer than winter in the north", func(t *testing.T) {
		assert.Greater(t, DaylightHours(45, 172), DaylightHours(45, 355))
		assert.Less(t, DaylightHours(-45, 172), DaylightHours(-45, 355))
	})
}

func TestIrradiance(t *testing.T) {
	vertical := types.PanelConfiguration{
		TiltAngle:    90,
		AzimuthAngle: 180,
		Efficiency:   20,
		Temperature:  25,
	}

	t.Run("sun overhead at equinox noon", func(t *testing.T) {
		assert.InDelta(t, SolarConstant*0.2, Irradiance(0, vertical, 81, ReferenceHour), 1e-9)
	})

	t.Run("shading reduces proportionally", func(t *testing.T) {
		shaded := vertical
		shaded.ShadingFactor = 0.5
		assert.InDelta(t, SolarConstant*0.1, Irradiance(0, shaded, 81, ReferenceHour), 1e-9)
	})

	t.Run("panel facing away contributes nothing", func(t *testing.T) {
		away := vertical
		away.AzimuthAngle = 0
		assert.InDelta(t, 0.0, Irradiance(0, away, 81, ReferenceHour), 1e-12)
	})

	t.Run("sun below horizon is negative", func(t *testing.T) {
		assert.InDelta(t, -SolarConstant*0.2, Irradiance(0, vertical, 81, 0), 1e-9)
	})

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t,
			Irradiance(37.5, vertical, 200, 10),
			Irradiance(37.5, vertical, 200, 10),
		)
	})
}
