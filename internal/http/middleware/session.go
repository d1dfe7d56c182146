package middleware

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"rhdocs/internal/session"
)

// SessionLocalKey is the Fiber locals key of the request *session.Session.
const SessionLocalKey = "session"

// Session builds the request session from the Authorization header or the token
// cookies and stores it in context locals. Undecodable tokens give an anonymous
// session that still relays the credential.
func Session(dec *session.Decoder, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		creds := session.ExtractCredentials(
			c.Get(fiber.HeaderAuthorization),
			func(name string) string { return c.Cookies(name) },
			c.Get(fiber.HeaderCookie),
		)

		var user *session.User
		if creds.Token != "" {
			u, err := dec.Decode(creds.Token)
			if err != nil {
				log.Debug("session_token_rejected",
					zap.String("request_id", RequestIDFromCtx(c)),
					zap.String("source", creds.Source),
					zap.Error(err),
				)
			} else {
				user = u
			}
		}

		c.Locals(SessionLocalKey, session.New(creds, user))
		return c.Next()
	}
}

// SessionFromCtx returns the session stored by Session. It is nil when the
// middleware did not run; *session.Session methods accept a nil receiver.
func SessionFromCtx(c *fiber.Ctx) *session.Session {
	s, _ := c.Locals(SessionLocalKey).(*session.Session)
	return s
}
