package domain

import "fmt"

// SeverityBand is the human-readable severity class derived from the
// regressor's continuous score.
type SeverityBand string

const (
	SeverityLow      SeverityBand = "Low"
	SeverityModerate SeverityBand = "Moderate"
	SeverityHigh     SeverityBand = "High"
	SeverityExtreme  SeverityBand = "Extreme"
)

// BandForScore maps a severity score to its band. Intervals are closed-open:
// a boundary value belongs to the higher band, so 10 is Moderate and 40 is
// Extreme.
func BandForScore(score float64) SeverityBand {
	switch {
	case score < 10:
		return SeverityLow
	case score < 20:
		return SeverityModerate
	case score < 40:
		return SeverityHigh
	default:
		return SeverityExtreme
	}
}

// PredictionResult is the outcome of one run of the prediction pipeline.
// Severity and Band are only meaningful when Fire is true.
type PredictionResult struct {
	Fire     bool         `json:"fire"`
	Severity float64      `json:"severity"`
	Band     SeverityBand `json:"band,omitempty"`
}

// Message renders the user-facing result string.
func (r PredictionResult) Message() string {
	if !r.Fire {
		return "No Fire (Severity Score: 0.00)"
	}
	return fmt.Sprintf("🔥 Fire Risk! Severity: %s (Severity Score: %.2f)", r.Band, r.Severity)
}
