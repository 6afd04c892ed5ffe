package pipeline

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"
	"unicode"

	"motiond/internal/quant"
)

// tokenize lower-cases a prompt and splits it into letter/digit runs.
// Punctuation separates tokens and never reaches the embedding.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// tokenSeed derives a stable embedding seed for one token.
func tokenSeed(tok string) int64 {
	h := fnv.New64a()
	h.Write([]byte(tok))
	return int64(h.Sum64())
}

// encodeText embeds a prompt into the encoder output width using the
// hashing trick: each token seeds a pseudo-random embedding, the mean is
// snapped to the component's precision grid and mixed through the encoder
// weights. The result has unit length, so downstream drive magnitudes do
// not depend on prompt length.
func encodeText(text string, enc *quant.Component) ([]float32, error) {
	mix, ok := enc.Tensor(quant.TensorEncoderMix)
	if !ok {
		return nil, fmt.Errorf("component %s: missing %q tensor", enc.Name, quant.TensorEncoderMix)
	}
	pooled := make([]float32, mix.Rows)
	toks := tokenize(text)
	for _, tok := range toks {
		rng := rand.New(rand.NewSource(tokenSeed(tok)))
		for i := range pooled {
			pooled[i] += float32(rng.NormFloat64())
		}
	}
	if n := len(toks); n > 0 {
		inv := 1 / float32(n)
		for i := range pooled {
			pooled[i] = enc.Precision.Snap(pooled[i] * inv)
		}
	}
	out := matVec(mix, pooled)
	l2Normalize(out)
	return out, nil
}

// alignEmbedding projects a text embedding into the denoiser conditioning
// width through the cross-modal weights.
func alignEmbedding(emb []float32, cm *quant.Component) ([]float32, error) {
	proj, ok := cm.Tensor(quant.TensorAlignProj)
	if !ok {
		return nil, fmt.Errorf("component %s: missing %q tensor", cm.Name, quant.TensorAlignProj)
	}
	if len(emb) != proj.Rows {
		return nil, fmt.Errorf("component %s: embedding width %d does not match projection input %d",
			cm.Name, len(emb), proj.Rows)
	}
	out := matVec(proj, emb)
	l2Normalize(out)
	return out, nil
}
