//go:build llama

package pipeline

import (
	"context"
	"fmt"
	"strings"

	llama "github.com/go-skynet/go-llama.cpp"
	"github.com/rs/zerolog"
)

// llamaBuilt indicates this binary was compiled with real llama support.
var llamaBuilt = true

// rewriteTemplate asks for a single-sentence normalization. Decoding is
// greedy (temperature 0, fixed seed) so a given prompt always rewrites
// the same way.
const rewriteTemplate = "Rewrite the following motion description as one clear English sentence " +
	"describing a single human action. Keep every detail and add none.\n\n" +
	"Description: %s\nRewritten:"

// llmRewriter rewrites prompts with a local llama.cpp model loaded in
// process via CGO.
type llmRewriter struct {
	model *llama.LLama
	log   zerolog.Logger
}

func newLLMRewriter(modelPath string, log zerolog.Logger) (Rewriter, error) {
	if strings.TrimSpace(modelPath) == "" {
		return nil, fmt.Errorf("rewrite model path is empty")
	}
	m, err := llama.New(modelPath, llama.SetContext(2048))
	if err != nil {
		return nil, fmt.Errorf("load rewrite model %s: %w", modelPath, err)
	}
	return &llmRewriter{model: m, log: log}, nil
}

func (r *llmRewriter) Rewrite(ctx context.Context, text string) (string, error) {
	if r.model == nil {
		return "", fmt.Errorf("rewrite model not initialized")
	}
	// Stop token generation as soon as the request context is canceled.
	r.model.SetTokenCallback(func(string) bool {
		return ctx.Err() == nil
	})
	out, err := r.model.Predict(fmt.Sprintf(rewriteTemplate, text),
		llama.SetTemperature(0),
		llama.SetSeed(1),
		llama.SetTokens(128),
		llama.SetStopWords("\n"),
	)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("rewrite predict: %w", err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		// An empty rewrite is useless; fall back to the original prompt.
		return text, nil
	}
	r.log.Debug().Str("text", text).Str("rewritten", out).Msg("prompt rewritten")
	return out, nil
}

func (r *llmRewriter) Close() error {
	if r.model != nil {
		r.model.Free()
		r.model = nil
	}
	return nil
}
