package assistantHandler

import (
	"context"
	"errors"
	"strings"
	"time"

	"WellCommand/internal/api/assistant"
	contextPkg "WellCommand/pkg/context"

	"github.com/gofiber/websocket/v2"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const wsReadTimeout = 5 * time.Minute

// handleWebSocket answers each text frame with one command-contract frame.
// Frames are read and answered one at a time, so a connection never has
// more than one query outstanding.
func (h *AssistantHandler) handleWebSocket(c *websocket.Conn) {
	h.log.Info("Assistant WebSocket client connected")
	defer h.log.Info("Assistant WebSocket client disconnected")

	requestID, _ := c.Locals("X-Request-ID").(string)
	base := contextPkg.WithRequestID(context.Background(), requestID)

	for {
		if err := c.SetReadDeadline(time.Now().Add(wsReadTimeout)); err != nil {
			h.log.Errorf("Error setting read deadline: %v", err)
			return
		}

		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Errorf("Assistant WebSocket error: %v", err)
			}
			return
		}

		if messageType != websocket.TextMessage {
			h.log.Warnf("Received unexpected message type: %d", messageType)
			continue
		}

		query := string(message)
		if strings.TrimSpace(query) == "" {
			continue
		}

		ctx, cancel := context.WithTimeout(base, h.timeout)
		outcome, err := h.assistantService.Interpret(ctx, query)
		cancel()
		if err != nil {
			if errors.Is(err, assistant.ErrEmptyQuery) {
				continue
			}
			h.log.Errorf("Error interpreting frame: %v", err)
			return
		}

		payload, err := json.Marshal(outcome.Result)
		if err != nil {
			h.log.Errorf("Error encoding result: %v", err)
			return
		}

		if err := c.SetWriteDeadline(time.Now().Add(10 * time.Second)); err != nil {
			h.log.Errorf("Error setting write deadline: %v", err)
			return
		}
		if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.log.Errorf("Error writing result: %v", err)
			return
		}
	}
}
