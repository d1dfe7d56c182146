package gateway

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"rhdocs/internal/http/middleware"
	"rhdocs/internal/session"
)

// SessionView is the body of GET /api/session.
type SessionView struct {
	Authenticated bool                 `json:"authenticated"`
	User          *session.User        `json:"user,omitempty"`
	Capabilities  session.Capabilities `json:"capabilities"`
}

// CurrentSession godoc
// @Summary Current caller and capabilities
// @Tags session
// @Produce json
// @Success 200 {object} gateway.SessionView
// @Router /api/session [get]
func (h *Handler) CurrentSession(c *fiber.Ctx) error {
	s := middleware.SessionFromCtx(c)
	view := SessionView{Capabilities: s.Capabilities()}
	if u, ok := s.CurrentUser(); ok {
		view.Authenticated = true
		view.User = &u
	}
	return c.JSON(view)
}

// Logout godoc
// @Summary End the session
// @Description Invalidates the request session and expires the token and CSRF cookies.
// @Tags session
// @Success 204
// @Router /api/session/logout [post]
func (h *Handler) Logout(c *fiber.Ctx) error {
	s := middleware.SessionFromCtx(c)
	u, _ := s.CurrentUser()
	s.Invalidate()

	for _, name := range append(append([]string(nil), session.TokenCookieNames...), session.CSRFCookieName) {
		c.Cookie(&fiber.Cookie{
			Name:    name,
			Value:   "",
			Path:    "/",
			Expires: time.Now().Add(-24 * time.Hour),
		})
	}

	h.log.Info("session_logout",
		zap.String("request_id", middleware.RequestIDFromCtx(c)),
		zap.Int64("user_id", u.ID),
	)
	return c.SendStatus(fiber.StatusNoContent)
}
