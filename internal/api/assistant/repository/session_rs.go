package assistantRepository

import (
	"context"
	"sync"
	"time"

	"WellCommand/internal/api/assistant"
	"WellCommand/internal/entity"
	contextPkg "WellCommand/pkg/context"
	"WellCommand/pkg/dashboard"
	"WellCommand/pkg/nlp"

	"github.com/sirupsen/logrus"
)

type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*entity.ChatSession
	log      *logrus.Logger
}

func newSessionRepository(log *logrus.Logger) *sessionRepository {
	return &sessionRepository{
		sessions: make(map[string]*entity.ChatSession),
		log:      log,
	}
}

func (r *sessionRepository) CreateSession(ctx context.Context, session entity.ChatSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := session
	stored.Messages = append([]entity.Message(nil), session.Messages...)
	r.sessions[session.ID] = &stored

	r.log.WithFields(logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"session_id": session.ID,
	}).Debug("Chat session created")

	return nil
}

func (r *sessionRepository) GetSession(ctx context.Context, id string) (entity.ChatSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return entity.ChatSession{}, assistant.ErrSessionNotFound
	}

	out := *session
	out.Messages = append([]entity.Message(nil), session.Messages...)
	out.View = nil
	return out, nil
}

func (r *sessionRepository) AppendMessages(ctx context.Context, id string, messages ...entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return assistant.ErrSessionNotFound
	}

	session.Messages = append(session.Messages, messages...)
	session.LastActivity = time.Now()
	return nil
}

func (r *sessionRepository) ListMessages(ctx context.Context, id string) ([]entity.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, assistant.ErrSessionNotFound
	}

	return append([]entity.Message{}, session.Messages...), nil
}

func (r *sessionRepository) ApplyActions(ctx context.Context, id string, actions []nlp.Action) (dashboard.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return dashboard.Snapshot{}, assistant.ErrSessionNotFound
	}

	session.View.Apply(actions)
	return session.View.Snapshot(), nil
}

func (r *sessionRepository) ViewSnapshot(ctx context.Context, id string) (dashboard.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return dashboard.Snapshot{}, assistant.ErrSessionNotFound
	}

	return session.View.Snapshot(), nil
}

func (r *sessionRepository) DeleteSession(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return assistant.ErrSessionNotFound
	}
	delete(r.sessions, id)

	r.log.WithFields(logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"session_id": id,
	}).Debug("Chat session deleted")

	return nil
}

func (r *sessionRepository) DeleteIdleSessions(ctx context.Context, idleSince time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, session := range r.sessions {
		if session.LastActivity.Before(idleSince) {
			delete(r.sessions, id)
			removed++
		}
	}

	return removed, nil
}
