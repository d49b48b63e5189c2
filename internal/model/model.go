package model

// Scaler normalizes a raw feature vector into the space the models were
// fitted on. Same input vector, same scaled vector.
type Scaler interface {
	Transform(vector []float64) ([]float64, error)
}

// Classifier produces a binary fire / no-fire decision for a scaled vector.
type Classifier interface {
	PredictClass(vector []float64) (bool, error)
}

// Regressor produces a continuous severity score for a scaled vector.
type Regressor interface {
	PredictScore(vector []float64) (float64, error)
}

// Bundle groups the three pre-fitted artifacts the prediction pipeline
// depends on. Loaded once at startup and read-only thereafter.
type Bundle struct {
	Scaler     Scaler
	Classifier Classifier
	Regressor  Regressor
}
