package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/caselens/caselens/ai"
)

// chatRequest is a question about previously retrieved cases. The
// caller supplies the context excerpts; the server holds no per-user
// conversation state.
type chatRequest struct {
	Question string `json:"question"`
	Context  []struct {
		Case string `json:"case"`
		Text string `json:"text"`
	} `json:"context"`
}

// chatResponse carries the grounded answer and its sources.
type chatResponse struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}

// greetings are answered directly without burning a model call.
var greetings = map[string]bool{
	"hi": true, "hello": true, "hey": true, "good morning": true,
	"good afternoon": true, "good evening": true, "namaste": true,
}

const greetingReply = "Hello! Ask me anything about the cases in your search results."

const noContextReply = "Please run a search first so I have documents to answer from."

// handleChat answers a question using only the supplied case excerpts.
func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}

	if greetings[strings.ToLower(strings.TrimRight(question, "!. "))] {
		c.JSON(http.StatusOK, chatResponse{Answer: greetingReply})
		return
	}

	if len(req.Context) == 0 {
		c.JSON(http.StatusOK, chatResponse{Answer: noContextReply})
		return
	}

	chunks := make([]ai.ContextChunk, len(req.Context))
	for i, chunk := range req.Context {
		chunks[i] = ai.ContextChunk{Case: chunk.Case, Text: chunk.Text}
	}

	explanation, err := s.explainer.Explain(c.Request.Context(), question, chunks)
	if err != nil {
		s.writeExplainError(c, err)
		return
	}

	c.JSON(http.StatusOK, chatResponse{
		Answer:  explanation.Answer,
		Sources: explanation.Sources,
	})
}

// writeExplainError maps model tier failures onto HTTP statuses.
func (s *Server) writeExplainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ai.ErrQuotaExceeded):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "the AI service quota is exhausted, try again later"})
	case errors.Is(err, ai.ErrInvalidCredentials):
		c.JSON(http.StatusBadGateway, gin.H{"error": "the AI service rejected the configured credentials"})
	case errors.Is(err, ai.ErrNoContext):
		c.JSON(http.StatusBadRequest, gin.H{"error": "no context provided"})
	default:
		s.logger.Error("explanation failed", "id", c.GetString("request_id"), "err", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "the AI service is temporarily unavailable"})
	}
}
