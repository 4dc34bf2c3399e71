package ai

// Categories defines the valid legal categories a classifier may assign.
var Categories = []string{
	"civil",
	"constitutional",
	"corporate",
	"criminal",
	"environmental",
	"family",
	"intellectual_property",
	"labour",
	"property",
	"service",
	"tax",
}

// CategoryUnknown is returned when a text fits none of the categories.
const CategoryUnknown = "unknown"

// ContextChunk is a fragment of a retrieved case supplied as grounding
// context for an explanation.
type ContextChunk struct {
	// Case is the case name the chunk came from.
	Case string

	// Text is the chunk content. Explainers truncate long chunks.
	Text string
}

// Explanation is the answer produced by an Explainer.
type Explanation struct {
	// Answer is the model's response text.
	Answer string

	// Sources lists the case names of the context chunks the answer was
	// grounded on, in the order the chunks were supplied.
	Sources []string
}

// ExplanationStyle selects the prompt used to answer a question.
type ExplanationStyle int

const (
	// StyleDefault answers the specific question in plain language.
	StyleDefault ExplanationStyle = iota

	// StyleStructured produces a sectioned summary (background, issue,
	// decisions, impact) scoped to the question.
	StyleStructured

	// StyleLayman explains the judgment as if to a non-law student.
	StyleLayman
)
