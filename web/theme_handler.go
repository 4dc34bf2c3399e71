package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	// themeCookie is the fixed name of the preference cookie.
	themeCookie = "caselens_theme"

	themeLight = "light"
	themeDark  = "dark"

	// themeCookieMaxAge keeps the preference for a year.
	themeCookieMaxAge = 365 * 24 * 60 * 60
)

// handleGetTheme reads the theme preference. A missing or unrecognized
// cookie reads as light.
func (s *Server) handleGetTheme(c *gin.Context) {
	theme, err := c.Cookie(themeCookie)
	if err != nil || (theme != themeLight && theme != themeDark) {
		theme = themeLight
	}
	c.JSON(http.StatusOK, gin.H{"theme": theme})
}

// handleSetTheme stores the theme preference.
func (s *Server) handleSetTheme(c *gin.Context) {
	var req struct {
		Theme string `json:"theme"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.Theme != themeLight && req.Theme != themeDark {
		c.JSON(http.StatusBadRequest, gin.H{"error": "theme must be \"light\" or \"dark\""})
		return
	}

	c.SetCookie(themeCookie, req.Theme, themeCookieMaxAge, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"theme": req.Theme})
}
