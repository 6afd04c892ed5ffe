package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/docker/go-units"
	"github.com/rs/zerolog"

	"motiond/internal/config"
	"motiond/internal/httpapi"
	"motiond/internal/offload"
	"motiond/internal/registry"
	"motiond/internal/runtime"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("motiond", flag.ExitOnError)
	cfg, check, err := parseAndResolve(fs, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "motiond: %v\n", err)
		return 1
	}

	if check {
		rep := registry.Preflight(cfg.ModelPath)
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(rep)
		if !rep.OK() {
			return 1
		}
		return 0
	}

	logger := newLogger(cfg.LogLevel, cfg.LogFormat)

	rt, err := runtime.New(runtime.Config{
		ModelPath:      cfg.ModelPath,
		Quantization:   cfg.Quantization,
		OffloadProfile: cfg.OffloadProfile,
		BudgetBytes:    cfg.GPUBudget,
		PromptRewrite:  cfg.PromptRewrite,
		RewriteLLMPath: cfg.RewriteLLM,
		MeshDecode:     cfg.MeshDecode,
		MaxQueue:       cfg.MaxQueue,
		MaxWait:        cfg.MaxWait,
		GenTimeout:     cfg.GenTimeout,
		RetainWindow:   cfg.RetainWindow,
		Publisher:      offload.LogPublisher{Log: logger},
		Logger:         logger,
	})
	if err != nil {
		logger.Error().Err(err).Msg("startup failed")
		return 1
	}

	httpapi.SetLogger(logger)
	if len(cfg.CORSOrigins) > 0 {
		httpapi.SetCORSOptions(true, cfg.CORSOrigins, []string{"GET", "POST", "OPTIONS"}, []string{"Content-Type"})
	}
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)

	srv := &http.Server{Addr: cfg.Addr, Handler: httpapi.NewMux(rt)}
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr).Str("model", cfg.ModelPath).Msg("motiond listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-stop:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-errCh:
		logger.Error().Err(err).Msg("server error")
		cancelBase()
		_ = rt.Close()
		return 1
	}

	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Warn().Err(err).Msg("graceful shutdown error")
	}
	cancelBase()
	if err := rt.Close(); err != nil {
		logger.Warn().Err(err).Msg("runtime close error")
	}
	return 0
}

// parseAndResolve defines the daemon flags on fs, parses args and builds the
// effective configuration: defaults, then the config file, then MOTIOND_*
// environment variables, then explicit flags. Injecting the FlagSet keeps
// this testable without mutating global state.
func parseAndResolve(fs *flag.FlagSet, args []string) (config.Config, bool, error) {
	def := config.Default()
	var (
		configPath     = fs.String("config", "", "Optional config file (.yaml, .json or .toml)")
		check          = fs.Bool("check", false, "Inspect the model directory, print a report and exit")
		addr           = fs.String("addr", def.Addr, "HTTP listen address, e.g. :8080")
		modelPath      = fs.String("model-path", def.ModelPath, "Model directory containing config.yml and latest.ckpt")
		quantization   = fs.String("quantization", def.Quantization, "Weight precision: int4|int8|none")
		offloadProfile = fs.Int("offload-profile", def.OffloadProfile, "Residency profile: 0 pinned, 1 aggressive, 3 balanced")
		promptRewrite  = fs.Bool("prompt-rewrite", def.PromptRewrite, "Enable the prompt rewrite stage")
		rewriteLLM     = fs.String("rewrite-llm", def.RewriteLLM, "GGUF model for the llama rewriter (llama build only)")
		meshDecode     = fs.Bool("mesh-decode", def.MeshDecode, "Enable the mesh decode stage")
		gpuBudget      = fs.String("gpu-budget", units.BytesSize(float64(def.GPUBudget)), "Accelerator memory budget, e.g. 4GiB")
	)
	if err := fs.Parse(args); err != nil {
		return def, false, err
	}

	cfg := def
	if *configPath != "" {
		f, err := config.Load(*configPath)
		if err != nil {
			return cfg, false, err
		}
		if err := cfg.Apply(f); err != nil {
			return cfg, false, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, false, err
	}

	var flagErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Addr = *addr
		case "model-path":
			cfg.ModelPath = *modelPath
		case "quantization":
			cfg.Quantization = *quantization
		case "offload-profile":
			cfg.OffloadProfile = *offloadProfile
		case "prompt-rewrite":
			cfg.PromptRewrite = *promptRewrite
		case "rewrite-llm":
			cfg.RewriteLLM = *rewriteLLM
		case "mesh-decode":
			cfg.MeshDecode = *meshDecode
		case "gpu-budget":
			n, err := units.RAMInBytes(*gpuBudget)
			if err != nil {
				flagErr = fmt.Errorf("-gpu-budget: %w", err)
				return
			}
			cfg.GPUBudget = n
		}
	})
	if flagErr != nil {
		return cfg, false, flagErr
	}
	if err := cfg.Validate(); err != nil {
		return cfg, false, err
	}
	return cfg, *check, nil
}

// newLogger builds the process logger. Unknown levels fall back to info.
func newLogger(level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	out := zerolog.New(os.Stderr)
	if format == "console" {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return out.Level(lvl).With().Timestamp().Logger()
}
