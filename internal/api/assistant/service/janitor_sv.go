package assistantService

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

func (s *assistantService) CleanupIdleSessions(ctx context.Context) (int, error) {
	removed, err := s.repo.DeleteIdleSessions(ctx, time.Now().Add(-s.config.SessionTTL))
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.log.WithField("removed", removed).Info("Idle chat sessions removed")
	}
	return removed, nil
}

// StartJanitor sweeps idle sessions every interval until ctx is done.
func (s *assistantService) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := s.CleanupIdleSessions(ctx); err != nil {
					s.log.WithFields(logrus.Fields{
						"error": err.Error(),
					}).Warn("Session cleanup failed")
				}
			}
		}
	}()
}
