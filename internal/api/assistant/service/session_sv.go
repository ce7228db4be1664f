package assistantService

import (
	"context"
	"fmt"
	"strings"
	"time"

	"WellCommand/internal/api/assistant"
	"WellCommand/internal/entity"
	contextPkg "WellCommand/pkg/context"
	"WellCommand/pkg/dashboard"
	jwtPkg "WellCommand/pkg/jwt"
	"WellCommand/pkg/nlp"

	"github.com/sirupsen/logrus"
)

const sourceError = "error"

func (s *assistantService) CreateSession(ctx context.Context) (*assistant.CreateSessionResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	id, err := s.utils.NewID()
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate session id")
		return nil, err
	}

	token, expiresAt, err := jwtPkg.SignSession(id, s.config.SessionTTL)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to sign session token")
		return nil, assistant.ErrTokenIssue
	}

	now := time.Now()
	view := dashboard.New(s.catalogue)
	session := entity.ChatSession{
		ID:           id,
		View:         view,
		CreatedAt:    now,
		LastActivity: now,
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	return &assistant.CreateSessionResponse{
		SessionID: id,
		Token:     token,
		ExpiresAt: expiresAt,
		ViewState: view.Snapshot(),
	}, nil
}

// SendMessage runs one chat turn. Blank text and a second call while the
// session already has a query outstanding are rejected before anything is
// appended to the transcript.
func (s *assistantService) SendMessage(ctx context.Context, sessionID string, req assistant.SendMessageRequest) (*assistant.SendMessageResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if strings.TrimSpace(req.Text) == "" {
		return nil, assistant.ErrEmptyQuery
	}
	if _, err := s.repo.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}

	lockToken, acquired, err := s.lock.AcquireQueryLock(ctx, sessionID, s.config.LockTTL)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"error":      err.Error(),
		}).Error("Failed to acquire query lock")
		return nil, fmt.Errorf("acquire query lock: %w", err)
	}
	if !acquired {
		return nil, assistant.ErrQueryInFlight
	}
	defer func() {
		if err := s.lock.ReleaseQueryLock(context.WithoutCancel(ctx), sessionID, lockToken); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"session_id": sessionID,
				"error":      err.Error(),
			}).Warn("Failed to release query lock")
		}
	}()

	userMsg, err := s.newMessage(entity.RoleUser, req.Text, nil, "")
	if err != nil {
		return nil, err
	}
	if err := s.repo.AppendMessages(ctx, sessionID, userMsg); err != nil {
		return nil, err
	}

	result, trace, panicErr := s.interpretGuarded(ctx, req.Text)

	var (
		reply   string
		actions nlp.ActionList
		source  string
		view    dashboard.Snapshot
		last    entity.Message
	)

	if panicErr != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"error":      panicErr.Error(),
		}).Error("Command source panicked")

		reply = "Error: " + panicErr.Error()
		actions = nlp.ActionList{}
		source = sourceError
		if view, err = s.repo.ViewSnapshot(ctx, sessionID); err != nil {
			return nil, err
		}
		if last, err = s.newMessage(entity.RoleError, reply, nil, source); err != nil {
			return nil, err
		}
	} else {
		reply = result.Reply
		actions = nlp.ActionList(result.Actions)
		if actions == nil {
			actions = nlp.ActionList{}
		}
		source = string(trace.Origin)
		if view, err = s.repo.ApplyActions(ctx, sessionID, result.Actions); err != nil {
			return nil, err
		}
		if last, err = s.newMessage(entity.RoleAssistant, reply, actions, source); err != nil {
			return nil, err
		}
	}

	if err := s.repo.AppendMessages(ctx, sessionID, last); err != nil {
		return nil, err
	}

	messages, err := s.GetMessages(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return &assistant.SendMessageResponse{
		Reply:     reply,
		Actions:   actions,
		Source:    source,
		Messages:  messages,
		ViewState: view,
	}, nil
}

// interpretGuarded turns a panic inside the command source into an error.
// Ordinary remote failures never reach here; the fallback absorbs them.
func (s *assistantService) interpretGuarded(ctx context.Context, query string) (result nlp.Result, trace nlp.Trace, panicErr error) {
	defer func() {
		if r := recover(); r != nil {
			panicErr = fmt.Errorf("%v", r)
		}
	}()

	result, trace = s.source.InterpretTraced(ctx, query)
	return result, trace, nil
}

func (s *assistantService) newMessage(role entity.MessageRole, text string, actions nlp.ActionList, source string) (entity.Message, error) {
	id, err := s.utils.NewID()
	if err != nil {
		return entity.Message{}, err
	}
	if actions == nil {
		actions = nlp.ActionList{}
	}
	return entity.Message{
		ID:        id,
		Role:      role,
		Text:      text,
		Actions:   actions,
		Source:    source,
		CreatedAt: time.Now(),
	}, nil
}

func (s *assistantService) GetMessages(ctx context.Context, sessionID string) ([]assistant.MessageResponse, error) {
	messages, err := s.repo.ListMessages(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	out := make([]assistant.MessageResponse, 0, len(messages))
	for _, m := range messages {
		actions := m.Actions
		if actions == nil {
			actions = nlp.ActionList{}
		}
		out = append(out, assistant.MessageResponse{
			ID:        m.ID,
			Role:      string(m.Role),
			Text:      m.Text,
			Actions:   actions,
			Source:    m.Source,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}

func (s *assistantService) GetView(ctx context.Context, sessionID string) (*dashboard.Snapshot, error) {
	snapshot, err := s.repo.ViewSnapshot(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (s *assistantService) DeleteSession(ctx context.Context, sessionID string) error {
	return s.repo.DeleteSession(ctx, sessionID)
}
