package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMeasurement(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		m, err := ParseMeasurement("35", "0", "90.5", "50", "15")
		require.NoError(t, err)
		assert.Equal(t, Measurement{Temperature: 35, Rain: 0, FFMC: 90.5, DMC: 50, ISI: 15}, m)
	})

	t.Run("vector preserves field order", func(t *testing.T) {
		m := Measurement{Temperature: 1, Rain: 2, FFMC: 3, DMC: 4, ISI: 5}
		assert.Equal(t, []float64{1, 2, 3, 4, 5}, m.Vector())
	})

	t.Run("whitespace is tolerated", func(t *testing.T) {
		m, err := ParseMeasurement(" 35 ", "0", "90", "50", "15")
		require.NoError(t, err)
		assert.Equal(t, 35.0, m.Temperature)
	})

	t.Run("non-numeric field fails the whole measurement", func(t *testing.T) {
		_, err := ParseMeasurement("35", "lots", "90", "50", "15")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rain")
	})

	t.Run("missing field fails", func(t *testing.T) {
		_, err := ParseMeasurement("35", "0", "", "50", "15")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ffmc")
	})
}
