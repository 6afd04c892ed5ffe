package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/docker/go-units"
)

// ApplyEnv overlays MOTIOND_* environment variables onto c. Empty values
// are treated as unset.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("MOTIOND_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("MOTIOND_MODEL_PATH"); v != "" {
		c.ModelPath = v
	}
	if v := os.Getenv("MOTIOND_QUANTIZATION"); v != "" {
		c.Quantization = v
	}
	if v := os.Getenv("MOTIOND_OFFLOAD_PROFILE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MOTIOND_OFFLOAD_PROFILE: %w", err)
		}
		c.OffloadProfile = n
	}
	if v := os.Getenv("MOTIOND_PROMPT_REWRITE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("MOTIOND_PROMPT_REWRITE: %w", err)
		}
		c.PromptRewrite = b
	}
	if v := os.Getenv("MOTIOND_REWRITE_LLM"); v != "" {
		c.RewriteLLM = v
	}
	if v := os.Getenv("MOTIOND_MESH_DECODE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("MOTIOND_MESH_DECODE: %w", err)
		}
		c.MeshDecode = b
	}
	if v := os.Getenv("MOTIOND_GPU_BUDGET"); v != "" {
		n, err := units.RAMInBytes(v)
		if err != nil {
			return fmt.Errorf("MOTIOND_GPU_BUDGET: %w", err)
		}
		c.GPUBudget = n
	}
	if v := os.Getenv("MOTIOND_MAX_QUEUE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MOTIOND_MAX_QUEUE: %w", err)
		}
		c.MaxQueue = n
	}
	if err := envDuration(&c.MaxWait, "MOTIOND_MAX_WAIT"); err != nil {
		return err
	}
	if err := envDuration(&c.GenTimeout, "MOTIOND_GEN_TIMEOUT"); err != nil {
		return err
	}
	if err := envDuration(&c.RetainWindow, "MOTIOND_RETAIN_WINDOW"); err != nil {
		return err
	}
	if v := os.Getenv("MOTIOND_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("MOTIOND_LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	if v := os.Getenv("MOTIOND_CORS_ORIGINS"); v != "" {
		c.CORSOrigins = splitCSV(v)
	}
	return nil
}

func envDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
