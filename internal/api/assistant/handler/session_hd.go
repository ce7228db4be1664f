package assistantHandler

import (
	"context"

	"WellCommand/internal/api/assistant"
	contextPkg "WellCommand/pkg/context"
	"WellCommand/pkg/handlerUtil"
	jwtPkg "WellCommand/pkg/jwt"
	"WellCommand/pkg/log"

	"github.com/gofiber/fiber/v2"
)

// sessionFromPath returns the path session id once the bearer token is
// known to have been issued for it.
func sessionFromPath(ctx *fiber.Ctx) (string, error) {
	tokenSession, err := jwtPkg.GetSessionID(ctx)
	if err != nil {
		return "", err
	}
	sessionID := ctx.Params("session_id")
	if sessionID == "" || sessionID != tokenSession {
		return "", assistant.ErrSessionForbidden
	}
	return sessionID, nil
}

func (h *AssistantHandler) CreateSession(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	session, err := h.assistantService.CreateSession(contextPkg.FromFiberCtx(ctx))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "create_session")
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"session_id": session.SessionID,
	}).Info("Chat session opened")

	return errHandler.HandleSuccess(ctx, fiber.StatusCreated, session)
}

func (h *AssistantHandler) SendMessage(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), h.timeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	sessionID, err := sessionFromPath(ctx)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "send_message")
	}

	var req assistant.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}
	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	resp, err := h.assistantService.SendMessage(contextPkg.WithSessionID(c, sessionID), sessionID, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "send_message")
	}

	ctx.Set(SourceHeader, resp.Source)
	return errHandler.HandleSuccess(ctx, fiber.StatusOK, resp)
}

func (h *AssistantHandler) GetMessages(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	sessionID, err := sessionFromPath(ctx)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_messages")
	}

	messages, err := h.assistantService.GetMessages(contextPkg.FromFiberCtx(ctx), sessionID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_messages")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
		"messages": messages,
	})
}

func (h *AssistantHandler) GetView(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	sessionID, err := sessionFromPath(ctx)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_view")
	}

	view, err := h.assistantService.GetView(contextPkg.FromFiberCtx(ctx), sessionID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_view")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, view)
}

func (h *AssistantHandler) DeleteSession(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	sessionID, err := sessionFromPath(ctx)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "delete_session")
	}

	if err := h.assistantService.DeleteSession(contextPkg.FromFiberCtx(ctx), sessionID); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "delete_session")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusNoContent, nil)
}
