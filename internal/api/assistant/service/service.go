package assistantService

import (
	"context"
	"time"

	"WellCommand/internal/api/assistant"
	assistantRepository "WellCommand/internal/api/assistant/repository"
	"WellCommand/pkg/dashboard"
	"WellCommand/pkg/nlp"
	"WellCommand/pkg/utils"

	"github.com/sirupsen/logrus"
)

type IAssistantService interface {
	Interpret(ctx context.Context, query string) (*assistant.InterpretOutcome, error)
	Explain(ctx context.Context, query string) (*assistant.ExplainResponse, error)
	Parameters(ctx context.Context) []assistant.ParameterResponse

	CreateSession(ctx context.Context) (*assistant.CreateSessionResponse, error)
	SendMessage(ctx context.Context, sessionID string, req assistant.SendMessageRequest) (*assistant.SendMessageResponse, error)
	GetMessages(ctx context.Context, sessionID string) ([]assistant.MessageResponse, error)
	GetView(ctx context.Context, sessionID string) (*dashboard.Snapshot, error)
	DeleteSession(ctx context.Context, sessionID string) error

	CleanupIdleSessions(ctx context.Context) (int, error)
	StartJanitor(ctx context.Context, interval time.Duration)
}

// TracedSource is the command source the service talks to. The fallback
// interpreter satisfies it.
type TracedSource interface {
	InterpretTraced(ctx context.Context, query string) (nlp.Result, nlp.Trace)
}

// QueryLocker enforces one outstanding query per session. Both the Redis
// client and assistantRepository.MemoryLock implement it. Release takes
// the token returned by acquire.
type QueryLocker interface {
	AcquireQueryLock(ctx context.Context, key string, expiration time.Duration) (string, bool, error)
	ReleaseQueryLock(ctx context.Context, key, token string) error
}

type Config struct {
	SessionTTL time.Duration
	LockTTL    time.Duration
}

func DefaultConfig() Config {
	return Config{
		SessionTTL: 24 * time.Hour,
		LockTTL:    time.Minute,
	}
}

type assistantService struct {
	log       *logrus.Logger
	repo      assistantRepository.Repository
	source    TracedSource
	local     *nlp.LocalInterpreter
	catalogue *nlp.Catalogue
	lock      QueryLocker
	utils     utils.IUtils
	config    Config
}

func NewAssistantService(
	log *logrus.Logger,
	repo assistantRepository.Repository,
	source TracedSource,
	local *nlp.LocalInterpreter,
	catalogue *nlp.Catalogue,
	lock QueryLocker,
	utils utils.IUtils,
	config Config,
) IAssistantService {
	if lock == nil {
		lock = assistantRepository.NewMemoryLock()
	}
	if config.SessionTTL <= 0 {
		config.SessionTTL = DefaultConfig().SessionTTL
	}
	if config.LockTTL <= 0 {
		config.LockTTL = DefaultConfig().LockTTL
	}

	return &assistantService{
		log:       log,
		repo:      repo,
		source:    source,
		local:     local,
		catalogue: catalogue,
		lock:      lock,
		utils:     utils,
		config:    config,
	}
}
