package runtime

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"motiond/internal/offload"
	"motiond/internal/pipeline"
	"motiond/internal/quant"
	"motiond/internal/registry"
	"motiond/pkg/types"
)

// State is the coarse serving state reported by /status.
type State string

const (
	// StateReady: accepting generation requests.
	StateReady State = "ready"
	// StateDraining: shutting down, rejecting new work.
	StateDraining State = "draining"
	// StateFailed: an unrecoverable error occurred; requests are rejected.
	StateFailed State = "failed"
)

// Config carries the resolved daemon configuration the runtime needs.
type Config struct {
	// ModelPath is the model directory (manifest + checkpoint).
	ModelPath string
	// Quantization is the requested weight precision (int4, int8, none).
	Quantization string
	// OffloadProfile selects the residency strategy (0, 1 or 3).
	OffloadProfile int
	// BudgetBytes is the accelerator memory budget.
	BudgetBytes int64
	// PromptRewrite enables the prompt rewrite stage.
	PromptRewrite bool
	// RewriteLLMPath selects an LLM-backed rewriter (llama build only).
	RewriteLLMPath string
	// MeshDecode enables the mesh decode stage.
	MeshDecode bool
	// MaxQueue bounds the admission queue; MaxWait bounds slot waits.
	MaxQueue int
	MaxWait  time.Duration
	// GenTimeout caps a single generation; 0 means no cap.
	GenTimeout time.Duration
	// RetainWindow is the balanced-profile residency window.
	RetainWindow time.Duration
	// DrainTimeout bounds Close's wait for in-flight work.
	DrainTimeout time.Duration
	// Publisher receives scheduler lifecycle events; nil drops them.
	Publisher offload.Publisher
	// Logger defaults to a no-op logger.
	Logger zerolog.Logger
}

// Runtime is the serving core: one model, one pipeline, one in-flight
// generation at a time.
type Runtime struct {
	cfg   Config
	man   *registry.Manifest
	sched *offload.Scheduler
	pipe  *pipeline.Pipeline
	pub   offload.Publisher
	log   zerolog.Logger

	queueCh chan struct{}
	genCh   chan struct{}

	mu      sync.RWMutex
	state   State
	failErr error

	started time.Time
}

// New loads the model, verifies the component chain, materializes every
// enabled component at the requested precision and wires the offload
// scheduler and pipeline. Any failure here is fatal to the daemon.
func New(cfg Config) (*Runtime, error) {
	if cfg.MaxQueue <= 0 {
		cfg.MaxQueue = 16
	}
	if cfg.MaxWait <= 0 {
		cfg.MaxWait = 30 * time.Second
	}
	if cfg.DrainTimeout <= 0 {
		cfg.DrainTimeout = 5 * time.Second
	}

	man, err := registry.Load(cfg.ModelPath)
	if err != nil {
		return nil, err
	}
	prec, err := quant.ParsePrecision(cfg.Quantization)
	if err != nil {
		return nil, err
	}
	profile, err := offload.ParseProfile(cfg.OffloadProfile)
	if err != nil {
		return nil, err
	}

	eng := quant.NewEngine(man, cfg.Logger)
	if err := eng.Verify(); err != nil {
		return nil, err
	}

	pub := cfg.Publisher
	if pub == nil {
		pub = offload.NopPublisher{}
	}

	names := []string{
		registry.CompTextEncoder,
		registry.CompCrossModal,
		registry.CompDenoiser,
		registry.CompPoseDecoder,
	}
	if cfg.PromptRewrite {
		names = append(names, registry.CompPromptRewriter)
	}
	if cfg.MeshDecode {
		names = append(names, registry.CompMeshDecoder)
	}
	comps := make([]*quant.Component, 0, len(names))
	byName := make(map[string]*quant.Component, len(names))
	for _, name := range names {
		c, err := eng.Load(name, prec)
		if err != nil {
			return nil, err
		}
		comps = append(comps, c)
		byName[name] = c
		pub.Publish(offload.Event{Name: "load", Component: name, Fields: map[string]any{
			"precision": string(c.Precision),
			"bytes":     c.FootprintBytes,
		}})
	}

	sched, err := offload.New(offload.Config{
		BudgetBytes:  cfg.BudgetBytes,
		Profile:      profile,
		RetainWindow: cfg.RetainWindow,
		Publisher:    pub,
		Logger:       cfg.Logger,
	}, comps)
	if err != nil {
		return nil, err
	}

	pipe, err := pipeline.New(pipeline.Config{
		Joints:         man.Joints,
		DenoiseSteps:   man.DenoiseSteps,
		PromptRewrite:  cfg.PromptRewrite,
		RewriteLLMPath: cfg.RewriteLLMPath,
		MeshDecode:     cfg.MeshDecode,
		Logger:         cfg.Logger,
	}, byName, sched)
	if err != nil {
		sched.Close()
		return nil, err
	}

	r := &Runtime{
		cfg:     cfg,
		man:     man,
		sched:   sched,
		pipe:    pipe,
		pub:     pub,
		log:     cfg.Logger,
		queueCh: make(chan struct{}, cfg.MaxQueue),
		genCh:   make(chan struct{}, 1),
		state:   StateReady,
		started: time.Now(),
	}
	r.log.Info().
		Str("model", man.Name).
		Str("quantization", cfg.Quantization).
		Str("profile", profile.String()).
		Int("components", len(comps)).
		Bool("prompt_rewrite", cfg.PromptRewrite).
		Bool("mesh_decode", cfg.MeshDecode).
		Msg("runtime ready")
	return r, nil
}

// Generate runs one text-to-motion generation end to end.
func (r *Runtime) Generate(ctx context.Context, req types.MotionRequest) (*types.MotionResponse, error) {
	r.mu.RLock()
	state, failErr := r.state, r.failErr
	r.mu.RUnlock()
	switch state {
	case StateFailed:
		return nil, ErrUnavailable("runtime failed: %v", failErr)
	case StateDraining:
		return nil, ErrUnavailable("runtime is draining")
	}

	preq, err := normalize(req)
	if err != nil {
		return nil, err
	}

	release, err := r.beginGeneration(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	runCtx := ctx
	if r.cfg.GenTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.cfg.GenTimeout)
		defer cancel()
	}

	r.pub.Publish(offload.Event{Name: "generation_start", Fields: map[string]any{
		"seed":     preq.Seed,
		"duration": preq.Duration,
	}})
	start := time.Now()
	res, err := r.pipe.Run(runCtx, preq)
	elapsed := time.Since(start)
	if err != nil {
		r.pub.Publish(offload.Event{Name: "generation_end", Fields: map[string]any{
			"error": err.Error(),
		}})
		// A budget that cannot hold a required component will not start
		// holding it on retry; stop serving instead of thrashing.
		if offload.IsInsufficientMemory(err) {
			r.fail(err)
		}
		return nil, err
	}
	r.pub.Publish(offload.Event{Name: "generation_end", Fields: map[string]any{
		"frames":  res.NumFrames,
		"elapsed": elapsed.String(),
	}})
	r.log.Info().
		Int("frames", res.NumFrames).
		Int64("seed", preq.Seed).
		Float64("duration", preq.Duration).
		Dur("elapsed", elapsed).
		Msg("motion generated")

	return &types.MotionResponse{
		Motion: types.MotionData{
			Keypoints3D:      res.Keypoints,
			Rot6D:            res.Rot6D,
			Transl:           res.Transl,
			RootRotationsMat: res.RootRot,
			NumFrames:        res.NumFrames,
			FPS:              pipeline.FPS,
		},
		Meta: types.MotionMeta{
			Text:     preq.Text,
			Duration: preq.Duration,
			Seed:     preq.Seed,
		},
	}, nil
}

func (r *Runtime) fail(err error) {
	r.mu.Lock()
	if r.state != StateFailed {
		r.state = StateFailed
		r.failErr = err
		r.log.Error().Err(err).Msg("runtime marked failed")
	}
	r.mu.Unlock()
}

// Close drains in-flight work, then shuts down the scheduler and the
// pipeline. New requests are rejected as soon as draining starts.
func (r *Runtime) Close() error {
	r.mu.Lock()
	if r.state == StateReady {
		r.state = StateDraining
	}
	r.mu.Unlock()

	deadline := time.Now().Add(r.cfg.DrainTimeout)
	for {
		if len(r.genCh) == 0 && len(r.queueCh) == 0 {
			break
		}
		if time.Now().After(deadline) {
			r.log.Warn().
				Int("inflight", len(r.genCh)).
				Int("queued", len(r.queueCh)).
				Msg("drain timeout, closing anyway")
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	r.sched.Close()
	err := r.pipe.Close()
	r.log.Info().Msg("runtime closed")
	return err
}
