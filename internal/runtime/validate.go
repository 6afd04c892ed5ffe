package runtime

import (
	"math"
	"strings"

	"motiond/internal/pipeline"
	"motiond/pkg/types"
)

// Request limits and defaults.
const (
	maxPromptWords  = 100
	defaultDuration = 3.0
	minDuration     = 0.5
	maxDuration     = 30.0
	defaultSeed     = 42
	defaultCFGScale = 5.0
	minCFGScale     = 1.0
	maxCFGScale     = 20.0
)

// normalize resolves a raw API request into a pipeline request: defaults
// filled in, duration clamped, overlong prompts truncated to the first
// maxPromptWords words. Emptiness after trimming is the only text
// rejection; cfg_scale is validated, not clamped.
func normalize(req types.MotionRequest) (pipeline.Request, error) {
	var out pipeline.Request

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return out, ErrValidation("text is required")
	}
	if words := strings.Fields(text); len(words) > maxPromptWords {
		text = strings.Join(words[:maxPromptWords], " ")
	}
	out.Text = text

	dur := defaultDuration
	if req.Duration != nil {
		dur = *req.Duration
		if math.IsNaN(dur) || math.IsInf(dur, 0) {
			return out, ErrValidation("duration must be a finite number")
		}
	}
	if dur < minDuration {
		dur = minDuration
	} else if dur > maxDuration {
		dur = maxDuration
	}
	out.Duration = dur

	out.Seed = defaultSeed
	if req.Seed != nil {
		out.Seed = *req.Seed
	}

	cfg := defaultCFGScale
	if req.CFGScale != nil {
		cfg = *req.CFGScale
		if math.IsNaN(cfg) || math.IsInf(cfg, 0) {
			return out, ErrValidation("cfg_scale must be a finite number")
		}
		if cfg < minCFGScale || cfg > maxCFGScale {
			return out, ErrValidation("cfg_scale must be between %g and %g", minCFGScale, maxCFGScale)
		}
	}
	out.CFGScale = cfg

	return out, nil
}
