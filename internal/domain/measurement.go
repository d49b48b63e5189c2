package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Measurement holds the five weather readings a prediction is computed from.
// Field order matters: the models were fitted on vectors assembled as
// [temperature, rain, ffmc, dmc, isi].
type Measurement struct {
	Temperature float64 `json:"temperature"`
	Rain        float64 `json:"rain"`
	FFMC        float64 `json:"ffmc"`
	DMC         float64 `json:"dmc"`
	ISI         float64 `json:"isi"`
}

// Vector returns the measurement as the fixed-order feature vector the
// scaler and models expect.
func (m Measurement) Vector() []float64 {
	return []float64{m.Temperature, m.Rain, m.FFMC, m.DMC, m.ISI}
}

// ParseMeasurement parses the five raw form values. Any value that does not
// parse as a real number fails the whole measurement; no partial result is
// returned.
func ParseMeasurement(temperature, rain, ffmc, dmc, isi string) (Measurement, error) {
	fields := []struct {
		name string
		raw  string
	}{
		{"temperature", temperature},
		{"rain", rain},
		{"ffmc", ffmc},
		{"dmc", dmc},
		{"isi", isi},
	}

	var m Measurement
	dests := []*float64{&m.Temperature, &m.Rain, &m.FFMC, &m.DMC, &m.ISI}
	for i, f := range fields {
		raw := strings.TrimSpace(f.raw)
		if raw == "" {
			return Measurement{}, fmt.Errorf("field %s is required", f.name)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Measurement{}, fmt.Errorf("field %s must be a number", f.name)
		}
		*dests[i] = v
	}
	return m, nil
}
