package news

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"forestguard/internal/domain"
)

type safeCountingSource struct {
	mu    sync.Mutex
	calls int
}

func (s *safeCountingSource) Fetch(ctx context.Context) ([]domain.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return []domain.Article{{Title: "Wildfire spreads"}}, nil
}

func (s *safeCountingSource) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestRefresher(t *testing.T) {
	t.Run("fetches immediately on start", func(t *testing.T) {
		source := &safeCountingSource{}
		refresher := NewRefresher(source, time.Hour, nil)

		refresher.Start(context.Background())
		require.Eventually(t, func() bool {
			return source.count() >= 1
		}, time.Second, 5*time.Millisecond)

		refresher.Shutdown()
	})

	t.Run("shutdown stops the loop", func(t *testing.T) {
		source := &safeCountingSource{}
		refresher := NewRefresher(source, 5*time.Millisecond, nil)

		refresher.Start(context.Background())
		require.Eventually(t, func() bool {
			return source.count() >= 2
		}, time.Second, time.Millisecond)
		refresher.Shutdown()

		settled := source.count()
		time.Sleep(20 * time.Millisecond)
		require.Equal(t, settled, source.count())
	})
}
