package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const sessionCookie = "fg_session"

// usernameKey is the gin context key the authenticated identity is stored under.
const usernameKey = "username"

// requireAuth gates protected pages. Requests without a valid session are
// redirected to the login page with a flash notice.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionCookie)
		if err != nil || token == "" {
			h.redirectToLogin(c)
			return
		}

		username, err := h.sessions.Validate(token)
		if err != nil {
			h.redirectToLogin(c)
			return
		}

		c.Set(usernameKey, username)
		c.Next()
	}
}

func (h *Handler) redirectToLogin(c *gin.Context) {
	setFlash(c, "error", "Please login first")
	c.Redirect(http.StatusSeeOther, "/login")
	c.Abort()
}
