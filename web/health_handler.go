package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleHealth is a liveness probe.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleTestAI verifies the model tier is reachable with the configured
// credentials.
func (s *Server) handleTestAI(c *gin.Context) {
	if err := s.explainer.Ping(c.Request.Context()); err != nil {
		s.writeExplainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
