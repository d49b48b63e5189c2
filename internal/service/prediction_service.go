package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"forestguard/internal/domain"
	"forestguard/internal/events"
	"forestguard/internal/model"
	"forestguard/internal/observability"
)

// PredictionService runs the scale-classify-regress pipeline against the
// pre-fitted model bundle.
type PredictionService interface {
	Predict(ctx context.Context, username string, m domain.Measurement) (domain.PredictionResult, error)
}

type predictionService struct {
	models    model.Bundle
	publisher events.Publisher
	metrics   *observability.Metrics
	logger    *logrus.Logger
}

func NewPredictionService(models model.Bundle, publisher events.Publisher, metrics *observability.Metrics, logger *logrus.Logger) PredictionService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &predictionService{
		models:    models,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Predict scales the measurement, classifies fire/no-fire, and only when fire
// is predicted runs the severity regressor on the same scaled vector. Model
// failures are returned to the caller; nothing is persisted.
func (s *predictionService) Predict(ctx context.Context, username string, m domain.Measurement) (domain.PredictionResult, error) {
	start := time.Now()

	scaled, err := s.models.Scaler.Transform(m.Vector())
	if err != nil {
		s.countOutcome("error")
		return domain.PredictionResult{}, fmt.Errorf("scale input: %w", err)
	}

	fire, err := s.models.Classifier.PredictClass(scaled)
	if err != nil {
		s.countOutcome("error")
		return domain.PredictionResult{}, fmt.Errorf("classify input: %w", err)
	}

	result := domain.PredictionResult{Fire: fire}
	if fire {
		severity, err := s.models.Regressor.PredictScore(scaled)
		if err != nil {
			s.countOutcome("error")
			return domain.PredictionResult{}, fmt.Errorf("estimate severity: %w", err)
		}
		result.Severity = severity
		result.Band = domain.BandForScore(severity)
		s.countOutcome("fire")
	} else {
		s.countOutcome("no_fire")
	}

	if s.metrics != nil {
		s.metrics.PredictionDuration.Observe(time.Since(start).Seconds())
	}

	s.publish(ctx, username, m, result)
	return result, nil
}

func (s *predictionService) countOutcome(outcome string) {
	if s.metrics != nil {
		s.metrics.Predictions.WithLabelValues(outcome).Inc()
	}
}

// publish delivers the prediction event; failures are logged and never
// surfaced to the requesting user.
func (s *predictionService) publish(ctx context.Context, username string, m domain.Measurement, result domain.PredictionResult) {
	event := events.PredictionEvent{
		Username:  username,
		Input:     m,
		Fire:      result.Fire,
		Severity:  result.Severity,
		Band:      string(result.Band),
		CreatedAt: time.Now().UTC(),
	}

	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.publisher.Publish(publishCtx, event); err != nil {
		s.logger.Warnf("publish prediction event: %v", err)
	}
}
