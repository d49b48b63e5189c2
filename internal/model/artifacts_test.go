package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArtifact(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func writeValidBundle(t *testing.T, dir string) {
	t.Helper()
	writeArtifact(t, dir, ScalerFile, `{"mean":[10,0,80,20,5],"scale":[2,1,10,5,2]}`)
	writeArtifact(t, dir, ClassifierFile, `{"weights":[1,0,1,0,1],"intercept":0}`)
	writeArtifact(t, dir, RegressorFile, `{"weights":[2,0,3,0,1],"intercept":5}`)
}

func TestLoad(t *testing.T) {
	t.Run("loads a complete bundle", func(t *testing.T) {
		dir := t.TempDir()
		writeValidBundle(t, dir)

		bundle, err := Load(dir)
		require.NoError(t, err)
		require.NotNil(t, bundle.Scaler)
		require.NotNil(t, bundle.Classifier)
		require.NotNil(t, bundle.Regressor)
	})

	t.Run("missing artifact fails", func(t *testing.T) {
		dir := t.TempDir()
		writeArtifact(t, dir, ScalerFile, `{"mean":[1],"scale":[1]}`)

		_, err := Load(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ClassifierFile)
	})

	t.Run("malformed artifact fails", func(t *testing.T) {
		dir := t.TempDir()
		writeValidBundle(t, dir)
		writeArtifact(t, dir, RegressorFile, `{not json`)

		_, err := Load(dir)
		require.Error(t, err)
	})

	t.Run("scaler length mismatch fails", func(t *testing.T) {
		dir := t.TempDir()
		writeValidBundle(t, dir)
		writeArtifact(t, dir, ScalerFile, `{"mean":[1,2],"scale":[1]}`)

		_, err := Load(dir)
		require.Error(t, err)
	})
}

func TestStandardScaler(t *testing.T) {
	scaler := &StandardScaler{Mean: []float64{10, 0}, Scale: []float64{2, 1}}

	t.Run("transform", func(t *testing.T) {
		got, err := scaler.Transform([]float64{14, 3})
		require.NoError(t, err)
		assert.Equal(t, []float64{2, 3}, got)
	})

	t.Run("same input same output", func(t *testing.T) {
		a, err := scaler.Transform([]float64{1, 1})
		require.NoError(t, err)
		b, err := scaler.Transform([]float64{1, 1})
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		_, err := scaler.Transform([]float64{1})
		require.Error(t, err)
	})

	t.Run("zero scale", func(t *testing.T) {
		bad := &StandardScaler{Mean: []float64{0}, Scale: []float64{0}}
		_, err := bad.Transform([]float64{1})
		require.Error(t, err)
	})
}

func TestLogisticClassifier(t *testing.T) {
	classifier := &LogisticClassifier{Weights: []float64{1, 1}, Intercept: -1}

	t.Run("positive decision is fire", func(t *testing.T) {
		fire, err := classifier.PredictClass([]float64{2, 2})
		require.NoError(t, err)
		assert.True(t, fire)
	})

	t.Run("negative decision is no fire", func(t *testing.T) {
		fire, err := classifier.PredictClass([]float64{-3, 0})
		require.NoError(t, err)
		assert.False(t, fire)
	})

	t.Run("decision boundary is fire", func(t *testing.T) {
		fire, err := classifier.PredictClass([]float64{0.5, 0.5})
		require.NoError(t, err)
		assert.True(t, fire)
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		_, err := classifier.PredictClass([]float64{1, 2, 3})
		require.Error(t, err)
	})
}

func TestLinearRegressor(t *testing.T) {
	regressor := &LinearRegressor{Weights: []float64{2, 3}, Intercept: 1}

	t.Run("score", func(t *testing.T) {
		score, err := regressor.PredictScore([]float64{1, 2})
		require.NoError(t, err)
		assert.Equal(t, 9.0, score)
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		_, err := regressor.PredictScore([]float64{1})
		require.Error(t, err)
	})
}
