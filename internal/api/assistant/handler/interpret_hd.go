package assistantHandler

import (
	"context"
	"time"

	"WellCommand/internal/api/assistant"
	contextPkg "WellCommand/pkg/context"
	"WellCommand/pkg/handlerUtil"
	"WellCommand/pkg/log"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultInterpretTimeout = 30 * time.Second
	SourceHeader            = "X-Command-Source"
)

func (h *AssistantHandler) Interpret(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), h.timeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req assistant.InterpretRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}
	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Interpreting command")

	outcome, err := h.assistantService.Interpret(c, req.Query)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "interpret")
	}

	ctx.Set(SourceHeader, outcome.Source)
	return errHandler.HandleSuccess(ctx, fiber.StatusOK, outcome.Result)
}

func (h *AssistantHandler) Explain(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	var req assistant.InterpretRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}
	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	explanation, err := h.assistantService.Explain(contextPkg.FromFiberCtx(ctx), req.Query)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "explain")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, explanation)
}

func (h *AssistantHandler) GetParameters(ctx *fiber.Ctx) error {
	errHandler := handlerUtil.New(h.log)
	params := h.assistantService.Parameters(contextPkg.FromFiberCtx(ctx))

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
		"parameters": params,
	})
}
