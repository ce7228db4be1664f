package assistantRepository

import (
	"context"
	"time"

	"WellCommand/internal/entity"
	"WellCommand/pkg/dashboard"
	"WellCommand/pkg/nlp"

	"github.com/sirupsen/logrus"
)

// Repository keeps chat sessions for the life of the process. Every method
// returns copies so callers never share a transcript slice with the store.
type Repository interface {
	CreateSession(ctx context.Context, session entity.ChatSession) error
	GetSession(ctx context.Context, id string) (entity.ChatSession, error)
	AppendMessages(ctx context.Context, id string, messages ...entity.Message) error
	ListMessages(ctx context.Context, id string) ([]entity.Message, error)
	ApplyActions(ctx context.Context, id string, actions []nlp.Action) (dashboard.Snapshot, error)
	ViewSnapshot(ctx context.Context, id string) (dashboard.Snapshot, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteIdleSessions(ctx context.Context, idleSince time.Time) (int, error)
}

func New(log *logrus.Logger) Repository {
	return newSessionRepository(log)
}
