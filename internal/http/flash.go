package http

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// Flash messages are one-shot notices carried across a redirect in a
// short-lived cookie and cleared the first time a page renders them.

const flashCookie = "fg_flash"

func setFlash(c *gin.Context, kind, message string) {
	c.SetCookie(flashCookie, kind+"|"+message, 60, "/", "", false, true)
}

// popFlash reads and clears the pending flash message, if any.
func popFlash(c *gin.Context) (kind, message string) {
	value, err := c.Cookie(flashCookie)
	if err != nil || value == "" {
		return "", ""
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	kind, message, found := strings.Cut(value, "|")
	if !found {
		return "info", value
	}
	return kind, message
}
