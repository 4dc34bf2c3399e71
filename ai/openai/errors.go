package openai

import (
	"strings"

	"github.com/caselens/caselens/ai"
)

// classifyModelError maps raw transport and API errors onto the sentinel
// errors callers branch on. OpenAI-compatible servers disagree on error
// shapes, so matching is by substring.
func classifyModelError(err error) error {
	if err == nil {
		return nil
	}

	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "quota"),
		strings.Contains(msg, "rate limit"),
		strings.Contains(msg, "429"):
		return ai.ErrQuotaExceeded
	case strings.Contains(msg, "api_key"),
		strings.Contains(msg, "api key"),
		strings.Contains(msg, "permission"),
		strings.Contains(msg, "unauthorized"),
		strings.Contains(msg, "401"):
		return ai.ErrInvalidCredentials
	default:
		return err
	}
}
