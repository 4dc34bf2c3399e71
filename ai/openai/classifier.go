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
	"encoding/json"
	"log/slog"
	"slices"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/caselens/caselens/ai"
)

// classificationInputLimit caps how much of a judgment is sent to the
// classifier. The opening of a judgment names the parties, the statute,
// and the forum, which is enough to place it in a category.
const classificationInputLimit = 4000

// CategoryClassifier implements ai.CategoryClassifier using OpenAI-compatible chat APIs.
type CategoryClassifier struct {
	client llms.Model
	logger *slog.Logger
}

// categoryVerdict is an internal type used for JSON unmarshaling.
// It matches the structure expected from the LLM.
type categoryVerdict struct {
	Category string `json:"category"`
}

// newCategoryClassifier is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newCategoryClassifier(config *ai.Config) (*CategoryClassifier, error) {
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

	return &CategoryClassifier{
		client: client,
		logger: slog.Default().With("component", "openai-classifier"),
	}, nil
}

// NewCategoryClassifier creates a new classifier using the provided configuration.
//
// Returns ai.CategoryClassifier interface to enforce abstraction.
func NewCategoryClassifier(config *ai.Config) (ai.CategoryClassifier, error) {
	return newCategoryClassifier(config)
}

// Classify assigns a legal category to the given judgment text.
// Unparseable or unrecognized model output yields ai.CategoryUnknown
// rather than an error; classification is advisory, not load-bearing.
func (c *CategoryClassifier) Classify(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return ai.CategoryUnknown, nil
	}
	if runes := []rune(text); len(runes) > classificationInputLimit {
		text = string(runes[:classificationInputLimit])
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildClassificationPrompt()),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(text),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var verdict categoryVerdict
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := c.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			c.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return "", classifyModelError(err)
		}

		if len(response.Choices) < 1 {
			c.logger.Debug("no choices returned from model")
			return ai.CategoryUnknown, nil
		}

		responseText := stripCodeFences(response.Choices[0].Content)
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &verdict); err != nil {
			lastErr = err
			c.logger.Warn("error parsing classifier response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		lastErr = nil
		break
	}

	if lastErr != nil {
		c.logger.Error("failed to parse classifier response after retries", "err", lastErr)
		return ai.CategoryUnknown, nil
	}

	category := strings.ToLower(strings.TrimSpace(verdict.Category))
	if !slices.Contains(ai.Categories, category) {
		c.logger.Debug("model returned unlisted category", "category", category)
		return ai.CategoryUnknown, nil
	}

	return category, nil
}
