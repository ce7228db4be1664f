package assistantHandler

import (
	"time"

	assistantService "WellCommand/internal/api/assistant/service"
	"WellCommand/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type AssistantHandler struct {
	log              *logrus.Logger
	validator        *validator.Validate
	middleware       middleware.Middleware
	assistantService assistantService.IAssistantService
	timeout          time.Duration
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	as assistantService.IAssistantService,
) *AssistantHandler {
	return &AssistantHandler{
		log:              log,
		validator:        validate,
		middleware:       middleware,
		assistantService: as,
		timeout:          defaultInterpretTimeout,
	}
}

// WithTimeout bounds each interpretation. A remote call that overruns it
// is answered locally, so the bound never turns into an error response.
func (h *AssistantHandler) WithTimeout(timeout time.Duration) *AssistantHandler {
	if timeout > 0 {
		h.timeout = timeout
	}
	return h
}

func (h *AssistantHandler) Start(srv fiber.Router) {
	assistant := srv.Group("/assistant")
	assistant.Use(h.middleware.NewRateLimiter)

	assistant.Post("/interpret", h.Interpret)
	assistant.Post("/explain", h.Explain)
	assistant.Get("/parameters", h.GetParameters)

	assistant.Post("/sessions", h.CreateSession)
	assistant.Post("/sessions/:session_id/messages", h.middleware.NewSessionTokenMiddleware, h.SendMessage)
	assistant.Get("/sessions/:session_id/messages", h.middleware.NewSessionTokenMiddleware, h.GetMessages)
	assistant.Get("/sessions/:session_id/view", h.middleware.NewSessionTokenMiddleware, h.GetView)
	assistant.Delete("/sessions/:session_id", h.middleware.NewSessionTokenMiddleware, h.DeleteSession)

	assistant.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	assistant.Get("/ws", websocket.New(h.handleWebSocket))
}
