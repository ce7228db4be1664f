package middleware

import (
	"strings"
	"time"

	"WellCommand/pkg/log"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var sensitiveFields = []string{
	"password", "token", "secret", "key", "auth",
	"credential", "authorization", "api_key",
}

// NewLoggingMiddleware writes one access line per request. Status decides
// the level: 5xx at error, 4xx at warn, the rest at info.
func (m *middleware) NewLoggingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := m.GetRequestID(c)
		c.Locals("request_id", requestID)

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		fields := log.Fields{
			"request_id":    requestID,
			"method":        c.Method(),
			"path":          c.Path(),
			"status":        status,
			"latency_ms":    time.Since(start).Milliseconds(),
			"ip":            c.IP(),
			"user_agent":    c.Get("User-Agent"),
			"response_size": len(c.Response().Body()),
		}

		if body := c.Request().Body(); len(body) > 0 {
			fields["request_body"] = sanitizeRequestBody(string(body))
		}

		switch {
		case status >= 500:
			m.log.WithFields(fields).Error("Server error")
		case status >= 400:
			m.log.WithFields(fields).Warn("Client error")
		default:
			m.log.WithFields(fields).Info("Success")
		}

		return err
	}
}

func sanitizeRequestBody(body string) string {
	var jsonBody map[string]interface{}
	if err := json.Unmarshal([]byte(body), &jsonBody); err != nil {
		return "[non-JSON body]"
	}

	for field := range jsonBody {
		lower := strings.ToLower(field)
		for _, sensitive := range sensitiveFields {
			if strings.Contains(lower, sensitive) {
				jsonBody[field] = "[SECRET]"
				break
			}
		}
	}

	sanitized, err := json.Marshal(jsonBody)
	if err != nil {
		return "[sanitization-failed]"
	}

	return string(sanitized)
}
