package openai

import (
	"fmt"
	"strings"

	"github.com/caselens/caselens/ai"
)

const classificationResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "category": {
      "type": "string"
    }
  },
  "required": ["category"],
  "additionalProperties": false
}`

const classificationPromptTemplate = `Classify the given legal text into exactly one category and return it as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- The category field must match exactly one of the listed values: %s.
- Choose the category that best describes the dominant subject matter of the dispute.
- If the text fits none of the categories, return "category": "unknown".
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "The assessee challenged the order of the Commissioner of Income Tax disallowing depreciation..."
Output:
{"category":"tax"}

Example:
Input: "The appellant was convicted under Section 302 of the Indian Penal Code..."
Output:
{"category":"criminal"}

Example:
Input: "The workman raised an industrial dispute regarding termination of his services..."
Output:
{"category":"labour"}`

// buildClassificationPrompt creates the classifier system prompt with the
// category set embedded.
func buildClassificationPrompt() string {
	return fmt.Sprintf(classificationPromptTemplate,
		classificationResponseSchema,
		strings.Join(ai.Categories, ", "))
}

const explainDefaultPrompt = `You are a senior legal professional and expert in Indian law.
Answer the user's specific question about the provided legal documents in plain, everyday words.

Rules:
- Use only the provided context. Do not add external knowledge.
- If the answer is not in the context, say "I couldn't find that information in the provided documents."
- Cite your sources using [Case Name] format.
- Explain complex legal terms in simple words.
- Keep the answer concise but complete, with short paragraphs and bullet points where they help.
- Answer only what was asked; do not give a generic case summary unless that is the question.`

const explainStructuredPrompt = `You are a senior legal professional and expert in Indian law.
Provide a structured summary of the provided judgments that directly answers the user's specific question.

Structure the response using only the sections relevant to the question:
- Case background
- Issue (the legal question asked about)
- High Court's decision
- Supreme Court's decision
- Why it matters (impact)

Rules:
- Use only the provided context. Do not add external knowledge.
- If details are missing, say "I couldn't find that information in the provided documents."
- Cite sources using [Case Name] format.
- Simplify legal terms into everyday language.
- Include only sections relevant to the question; no generic summaries.`

const explainLaymanPrompt = `You are a senior legal professional and expert in Indian law.
Explain the provided judgments in simple terms, as if to someone with no legal training,
focusing on the user's specific question.

Rules:
- Use only the provided context. Do not add external knowledge.
- If something is not in the documents, say "I couldn't find that information in the provided documents."
- Cite sources using [Case Name] format.
- Break legal terms down into plain words.
- Keep it short, clear, and complete.
- Answer only what was asked.`

const pingPrompt = `Respond with the single word "ok".`

// structuredKeywords trigger the sectioned-summary prompt.
var structuredKeywords = []string{
	"structured summary",
	"summary with sections",
	"give a structured summary",
	"case background",
	"high court",
	"supreme court",
	"why it matters",
}

// laymanKeywords trigger the plain-language prompt.
var laymanKeywords = []string{
	"explain in simple terms",
	"layman",
	"non-law student",
	"simple words",
	"easy explanation",
	"plain english",
	"everyday language",
}

// DetectStyle picks an explanation style from keywords in the question.
func DetectStyle(question string) ai.ExplanationStyle {
	lower := strings.ToLower(question)
	for _, kw := range structuredKeywords {
		if strings.Contains(lower, kw) {
			return ai.StyleStructured
		}
	}
	for _, kw := range laymanKeywords {
		if strings.Contains(lower, kw) {
			return ai.StyleLayman
		}
	}
	return ai.StyleDefault
}

// promptForStyle returns the system prompt for a style.
func promptForStyle(style ai.ExplanationStyle) string {
	switch style {
	case ai.StyleStructured:
		return explainStructuredPrompt
	case ai.StyleLayman:
		return explainLaymanPrompt
	default:
		return explainDefaultPrompt
	}
}

// chunkContextLimit is the maximum number of characters of a single chunk
// included in the explanation context.
const chunkContextLimit = 1000

// buildContext joins context chunks into the grounding block supplied to
// the model. Each chunk is tagged with its source case.
func buildContext(chunks []ai.ContextChunk) string {
	var sb strings.Builder
	for i, chunk := range chunks {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		name := chunk.Case
		if name == "" {
			name = "Unknown Case"
		}
		text := chunk.Text
		if runes := []rune(text); len(runes) > chunkContextLimit {
			text = string(runes[:chunkContextLimit])
		}
		fmt.Fprintf(&sb, "[Source: %s] %s", name, text)
	}
	return sb.String()
}
