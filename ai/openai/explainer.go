// Copyright 2025 Caselens Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"golang.org/x/time/rate"

	"github.com/caselens/caselens/ai"
)

// retryDelay is the pause between attempts after a quota rejection.
const retryDelay = 2 * time.Second

// Explainer implements ai.Explainer using OpenAI-compatible chat APIs.
// Outbound calls are rate limited so a burst of questions cannot burn
// through the provider quota.
type Explainer struct {
	client      llms.Model
	limiter     *rate.Limiter
	maxAttempts int
	logger      *slog.Logger
}

// newExplainer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newExplainer(config *ai.Config) (*Explainer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken(config.APIKey),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	var limiter *rate.Limiter
	if config.ExplainRequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(config.ExplainRequestsPerMinute)), 1)
	}

	maxAttempts := config.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	return &Explainer{
		client:      client,
		limiter:     limiter,
		maxAttempts: maxAttempts,
		logger:      slog.Default().With("component", "openai-explainer"),
	}, nil
}

// NewExplainer creates a new explainer using the provided configuration.
//
// Returns ai.Explainer interface to enforce abstraction.
func NewExplainer(config *ai.Config) (ai.Explainer, error) {
	return newExplainer(config)
}

// Explain answers a question about the supplied case excerpts.
// The answer is grounded only in the chunks; the prompt forbids outside
// knowledge. The prompt style is chosen from keywords in the question.
func (e *Explainer) Explain(ctx context.Context, question string, chunks []ai.ContextChunk) (*ai.Explanation, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ai.ErrNoResponse
	}
	if len(chunks) == 0 {
		return nil, ai.ErrNoContext
	}

	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	style := DetectStyle(question)
	userPrompt := fmt.Sprintf("Context from legal documents:\n\n%s\n\nQuestion: %s",
		buildContext(chunks), question)

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(promptForStyle(style)),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(userPrompt),
			},
		},
	}

	var answer string
	var lastErr error
	for attempt := 0; attempt < e.maxAttempts; attempt++ {
		response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.2))
		if err != nil {
			lastErr = classifyModelError(err)
			e.logger.Warn("explanation attempt failed",
				"attempt", attempt+1,
				"style", style,
				"err", err)

			// Credential problems will not fix themselves; quota ones might
			if errors.Is(lastErr, ai.ErrInvalidCredentials) {
				return nil, lastErr
			}
			if errors.Is(lastErr, ai.ErrQuotaExceeded) && attempt+1 < e.maxAttempts {
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(retryDelay):
				}
			}
			continue
		}

		if len(response.Choices) < 1 || strings.TrimSpace(response.Choices[0].Content) == "" {
			lastErr = ai.ErrNoResponse
			continue
		}

		answer = strings.TrimSpace(response.Choices[0].Content)
		lastErr = nil
		break
	}

	if lastErr != nil {
		e.logger.Error("explanation failed after retries", "attempts", e.maxAttempts, "err", lastErr)
		return nil, lastErr
	}

	e.logger.Debug("explanation generated",
		"style", style,
		"chunks", len(chunks),
		"answer_length", len(answer))

	return &ai.Explanation{
		Answer:  answer,
		Sources: sourceNames(chunks),
	}, nil
}

// Ping issues a minimal chat completion to verify the service is
// reachable and the credentials work.
func (e *Explainer) Ping(ctx context.Context) error {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(pingPrompt),
			},
		},
	}

	response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		return classifyModelError(err)
	}
	if len(response.Choices) < 1 {
		return ai.ErrNoResponse
	}
	return nil
}

// sourceNames returns the distinct case names behind the chunks, in
// first-seen order.
func sourceNames(chunks []ai.ContextChunk) []string {
	seen := make(map[string]struct{}, len(chunks))
	names := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		if chunk.Case == "" {
			continue
		}
		if _, ok := seen[chunk.Case]; ok {
			continue
		}
		seen[chunk.Case] = struct{}{}
		names = append(names, chunk.Case)
	}
	return names
}
