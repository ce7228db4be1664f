package middleware

import (
	jwtPkg "WellCommand/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// NewSessionTokenMiddleware requires a bearer token issued for a chat
// session and stores its session id in Locals. Whether that id matches the
// session in the path is the handler's call.
func (m *middleware) NewSessionTokenMiddleware(ctx *fiber.Ctx) error {
	sessionID, err := jwtPkg.VerifyTokenHeader(ctx)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"request_id": m.GetRequestID(ctx),
			"path":       ctx.Path(),
			"client_ip":  ctx.IP(),
			"error":      err.Error(),
		}).Warn("Session token verification failed")
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized, session token invalid or expired",
			"code":  "UNAUTHORIZED",
		})
	}

	ctx.Locals(jwtPkg.SessionLocalsKey, sessionID)
	return ctx.Next()
}
