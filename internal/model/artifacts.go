package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// Artifact file names inside the model directory. They mirror the artifacts
// exported by the offline training job.
const (
	ScalerFile     = "scaler.json"
	ClassifierFile = "fire_classification.json"
	RegressorFile  = "fire_severity.json"
)

// StandardScaler applies the per-feature (x - mean) / scale transform of a
// pre-fitted standard scaler.
type StandardScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

func (s *StandardScaler) Transform(vector []float64) ([]float64, error) {
	if len(vector) != len(s.Mean) || len(s.Mean) != len(s.Scale) {
		return nil, fmt.Errorf("scaler expects %d features, got %d", len(s.Mean), len(vector))
	}
	scaled := make([]float64, len(vector))
	for i, v := range vector {
		if s.Scale[i] == 0 {
			return nil, fmt.Errorf("scaler feature %d has zero scale", i)
		}
		scaled[i] = (v - s.Mean[i]) / s.Scale[i]
	}
	return scaled, nil
}

// LogisticClassifier is a pre-fitted binary logistic regression model.
// A positive decision (probability >= 0.5) means fire.
type LogisticClassifier struct {
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
}

func (c *LogisticClassifier) PredictClass(vector []float64) (bool, error) {
	z, err := dot(c.Weights, vector, c.Intercept)
	if err != nil {
		return false, fmt.Errorf("classifier: %w", err)
	}
	probability := 1.0 / (1.0 + math.Exp(-z))
	return probability >= 0.5, nil
}

// LinearRegressor is a pre-fitted linear regression model producing the
// unbounded severity score.
type LinearRegressor struct {
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
}

func (r *LinearRegressor) PredictScore(vector []float64) (float64, error) {
	score, err := dot(r.Weights, vector, r.Intercept)
	if err != nil {
		return 0, fmt.Errorf("regressor: %w", err)
	}
	return score, nil
}

func dot(weights, vector []float64, intercept float64) (float64, error) {
	if len(weights) != len(vector) {
		return 0, fmt.Errorf("expects %d features, got %d", len(weights), len(vector))
	}
	sum := intercept
	for i, w := range weights {
		sum += w * vector[i]
	}
	return sum, nil
}

// Load reads the scaler, classifier, and regressor artifacts from dir.
func Load(dir string) (Bundle, error) {
	var scaler StandardScaler
	if err := readArtifact(filepath.Join(dir, ScalerFile), &scaler); err != nil {
		return Bundle{}, err
	}
	if len(scaler.Mean) == 0 || len(scaler.Mean) != len(scaler.Scale) {
		return Bundle{}, fmt.Errorf("artifact %s: mean/scale length mismatch", ScalerFile)
	}

	var classifier LogisticClassifier
	if err := readArtifact(filepath.Join(dir, ClassifierFile), &classifier); err != nil {
		return Bundle{}, err
	}

	var regressor LinearRegressor
	if err := readArtifact(filepath.Join(dir, RegressorFile), &regressor); err != nil {
		return Bundle{}, err
	}

	return Bundle{
		Scaler:     &scaler,
		Classifier: &classifier,
		Regressor:  &regressor,
	}, nil
}

func readArtifact(path string, dest any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read artifact %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("parse artifact %s: %w", filepath.Base(path), err)
	}
	return nil
}
