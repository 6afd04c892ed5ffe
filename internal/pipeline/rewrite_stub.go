//go:build !llama

package pipeline

import (
	"errors"

	"github.com/rs/zerolog"
)

// This file provides a no-CGO stub for the llama-backed rewriter. It is
// compiled when the 'llama' build tag is NOT set, keeping default builds
// and CI CGO-free. The real rewriter lives in rewrite_llama.go.

// llamaBuilt indicates this binary was compiled without real llama support.
var llamaBuilt = false

// newLLMRewriter fails fast: requesting an LLM rewrite in a build without
// the tag is a configuration error.
func newLLMRewriter(modelPath string, log zerolog.Logger) (Rewriter, error) {
	return nil, errors.New("llama rewriter not built (missing 'llama' build tag)")
}
