package config

import (
	"fmt"
	"time"

	"motiond/internal/offload"
	"motiond/internal/quant"
)

// Config holds the resolved runtime parameters for the service.
// Resolution order: Default() -> config file -> environment -> flags.
type Config struct {
	Addr           string
	ModelPath      string
	Quantization   string
	OffloadProfile int
	PromptRewrite  bool
	RewriteLLM     string
	MeshDecode     bool
	GPUBudget      int64
	MaxQueue       int
	MaxWait        time.Duration
	GenTimeout     time.Duration
	RetainWindow   time.Duration
	LogLevel       string
	LogFormat      string
	CORSOrigins    []string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:           ":8080",
		ModelPath:      "models/t2m-lite",
		Quantization:   "int4",
		OffloadProfile: 3,
		PromptRewrite:  false,
		MeshDecode:     true,
		GPUBudget:      4 << 30,
		MaxQueue:       16,
		MaxWait:        30 * time.Second,
		GenTimeout:     0,
		RetainWindow:   10 * time.Second,
		LogLevel:       "info",
		LogFormat:      "json",
	}
}

// Validate rejects configurations the daemon could not start with. It is
// called after resolution so bad values fail before anything listens.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	if c.ModelPath == "" {
		return fmt.Errorf("model path must not be empty")
	}
	if _, err := quant.ParsePrecision(c.Quantization); err != nil {
		return err
	}
	if _, err := offload.ParseProfile(c.OffloadProfile); err != nil {
		return err
	}
	if c.GPUBudget <= 0 {
		return fmt.Errorf("gpu budget must be positive, got %d", c.GPUBudget)
	}
	if c.MaxQueue < 1 {
		return fmt.Errorf("max queue must be at least 1, got %d", c.MaxQueue)
	}
	if c.MaxWait < 0 || c.GenTimeout < 0 || c.RetainWindow < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("unknown log format %q (want json or console)", c.LogFormat)
	}
	return nil
}
