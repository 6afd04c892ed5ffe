package pipeline

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// Rewriter normalizes a prompt before text encoding. Implementations must
// be deterministic for a given input so generation stays reproducible.
type Rewriter interface {
	// Rewrite returns the normalized prompt. Implementations must return
	// promptly when the context is canceled.
	Rewrite(ctx context.Context, text string) (string, error)
	// Close releases any resources held by the rewriter.
	Close() error
}

// newRewriter selects the rewriter implementation. A non-empty llmPath
// selects the llama.cpp-backed rewriter, which requires the 'llama' build
// tag; otherwise the heuristic rewriter is used.
func newRewriter(llmPath string, log zerolog.Logger) (Rewriter, error) {
	if llmPath != "" {
		return newLLMRewriter(llmPath, log)
	}
	return heuristicRewriter{}, nil
}

// subjectWords are leading words that already name an actor. Prompts that
// start with anything else get "a person" prepended so the encoder always
// sees a subject.
var subjectWords = map[string]bool{
	"a": true, "an": true, "the": true,
	"person": true, "man": true, "woman": true, "boy": true, "girl": true,
	"someone": true, "somebody": true, "human": true, "figure": true,
	"he": true, "she": true, "they": true, "it": true,
	"i": true, "we": true, "you": true,
}

// heuristicRewriter is the default, model-free rewriter: it collapses
// whitespace, prepends a subject when missing and ensures terminal
// punctuation. It never fails.
type heuristicRewriter struct{}

func (heuristicRewriter) Rewrite(_ context.Context, text string) (string, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return text, nil
	}
	if !subjectWords[strings.ToLower(fields[0])] {
		fields = append([]string{"a", "person"}, fields...)
	}
	out := strings.Join(fields, " ")
	switch out[len(out)-1] {
	case '.', '!', '?':
	default:
		out += "."
	}
	return out, nil
}

func (heuristicRewriter) Close() error { return nil }
