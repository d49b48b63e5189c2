package events

import (
	"context"
	"time"

	"forestguard/internal/domain"
)

// PredictionEvent is the record published after each completed prediction.
type PredictionEvent struct {
	Username  string             `json:"username"`
	Input     domain.Measurement `json:"input"`
	Fire      bool               `json:"fire"`
	Severity  float64            `json:"severity"`
	Band      string             `json:"band,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

// Publisher delivers prediction events to a downstream sink.
type Publisher interface {
	Publish(ctx context.Context, event PredictionEvent) error
	Close() error
}

// NoopPublisher discards events. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, event PredictionEvent) error { return nil }
func (NoopPublisher) Close() error                                             { return nil }
