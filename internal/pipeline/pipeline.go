package pipeline

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"motiond/internal/quant"
	"motiond/internal/registry"
)

// FPS is the fixed output frame rate. Frame counts derive from it and the
// requested duration; it is not configurable.
const FPS = 20

// FrameCount returns the number of output frames for a duration in
// seconds, rounded to nearest.
func FrameCount(duration float64) int {
	return int(math.Round(duration * FPS))
}

// Stage names as they appear in logs and metrics.
const (
	StageRewrite = "prompt_rewrite"
	StageEncode  = "text_encode"
	StageAlign   = "cross_modal_encode"
	StageDenoise = "iterative_denoise"
	StagePose    = "pose_decode"
	StageMesh    = "mesh_decode"
)

// Residency mediates accelerator residency for pipeline components.
// Implemented by the offload scheduler.
type Residency interface {
	Acquire(ctx context.Context, name string) error
	Release(name string)
}

// Config wires a pipeline to its model and options. Joints and
// DenoiseSteps come from the model manifest.
type Config struct {
	Joints       int
	DenoiseSteps int

	PromptRewrite  bool
	RewriteLLMPath string
	MeshDecode     bool

	Logger zerolog.Logger
}

// Request is a fully validated generation request: text trimmed and
// truncated, duration clamped, seed and cfg scale resolved.
type Request struct {
	Text     string
	Duration float64
	Seed     int64
	CFGScale float64
}

// Result carries the raw motion tracks of one generation.
type Result struct {
	Rot6D     [][][]float32
	Transl    [][]float32
	Keypoints [][][]float32
	RootRot   [][][]float32
	NumFrames int
}

// Pipeline runs the staged text-to-motion computation over loaded
// components. Admission upstream serializes generations, so a Pipeline
// never runs more than one at a time.
type Pipeline struct {
	cfg   Config
	res   Residency
	comps map[string]*quant.Component
	rew   Rewriter
	log   zerolog.Logger
}

// New builds a pipeline over loaded components. The map must hold a
// component for every enabled stage.
func New(cfg Config, comps map[string]*quant.Component, res Residency) (*Pipeline, error) {
	required := []string{
		registry.CompTextEncoder,
		registry.CompCrossModal,
		registry.CompDenoiser,
		registry.CompPoseDecoder,
	}
	if cfg.PromptRewrite {
		required = append(required, registry.CompPromptRewriter)
	}
	if cfg.MeshDecode {
		required = append(required, registry.CompMeshDecoder)
	}
	for _, name := range required {
		if comps[name] == nil {
			return nil, fmt.Errorf("pipeline: component %s not loaded", name)
		}
	}
	p := &Pipeline{cfg: cfg, res: res, comps: comps, log: cfg.Logger}
	if cfg.PromptRewrite {
		rew, err := newRewriter(cfg.RewriteLLMPath, cfg.Logger)
		if err != nil {
			return nil, err
		}
		p.rew = rew
		cfg.Logger.Debug().
			Bool("llama_built", llamaBuilt).
			Str("llm_path", cfg.RewriteLLMPath).
			Msg("prompt rewriter enabled")
	}
	return p, nil
}

// Run executes the stage chain for one request. Cancellation is honored
// at stage boundaries; a stage in progress always completes.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	frames := FrameCount(req.Duration)

	held := ""
	releaseHeld := func() {
		if held != "" {
			p.res.Release(held)
			held = ""
		}
	}
	defer releaseHeld()

	// next releases the previous stage's component before acquiring the
	// following one, so a budget that only fits the largest single
	// component still serves every profile.
	next := func(name string) error {
		releaseHeld()
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.res.Acquire(ctx, name); err != nil {
			return err
		}
		held = name
		return nil
	}

	text := req.Text
	if p.rew != nil {
		if err := next(registry.CompPromptRewriter); err != nil {
			return nil, err
		}
		start := time.Now()
		rewritten, err := p.rew.Rewrite(ctx, text)
		if err != nil {
			return nil, err
		}
		observeStage(StageRewrite, time.Since(start))
		text = rewritten
	}

	if err := next(registry.CompTextEncoder); err != nil {
		return nil, err
	}
	start := time.Now()
	emb, err := encodeText(text, p.comps[registry.CompTextEncoder])
	if err != nil {
		return nil, err
	}
	observeStage(StageEncode, time.Since(start))

	if err := next(registry.CompCrossModal); err != nil {
		return nil, err
	}
	start = time.Now()
	cond, err := alignEmbedding(emb, p.comps[registry.CompCrossModal])
	if err != nil {
		return nil, err
	}
	observeStage(StageAlign, time.Since(start))

	if err := next(registry.CompDenoiser); err != nil {
		return nil, err
	}
	start = time.Now()
	lat, err := denoise(p.comps[registry.CompDenoiser], cond, frames, p.cfg.DenoiseSteps, req.Seed, req.CFGScale)
	if err != nil {
		return nil, err
	}
	observeStage(StageDenoise, time.Since(start))

	if err := next(registry.CompPoseDecoder); err != nil {
		return nil, err
	}
	start = time.Now()
	rot6d, transl, err := decodePose(p.comps[registry.CompPoseDecoder], lat, p.cfg.Joints)
	if err != nil {
		return nil, err
	}
	observeStage(StagePose, time.Since(start))

	res := &Result{Rot6D: rot6d, Transl: transl, NumFrames: frames}
	if p.cfg.MeshDecode {
		if err := next(registry.CompMeshDecoder); err != nil {
			return nil, err
		}
		start = time.Now()
		res.Keypoints, res.RootRot = decodeMesh(rot6d, transl, p.cfg.Joints)
		observeStage(StageMesh, time.Since(start))
	} else {
		// Stable response shapes: all-zero tracks when mesh decoding is off.
		res.Keypoints = zeros3(frames, p.cfg.Joints, 3)
		res.RootRot = zeros3(frames, 3, 3)
	}
	generatedFrames.Observe(float64(frames))

	p.log.Debug().
		Int("frames", frames).
		Int64("seed", req.Seed).
		Float64("cfg_scale", req.CFGScale).
		Msg("generation complete")
	return res, nil
}

// Close releases pipeline resources (the LLM rewriter, when present).
func (p *Pipeline) Close() error {
	if p.rew != nil {
		return p.rew.Close()
	}
	return nil
}
