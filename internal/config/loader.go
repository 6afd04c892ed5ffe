package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/docker/go-units"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// File mirrors Config with pointer fields so absent keys can be told apart
// from zero values. Sizes and durations are strings ("4GiB", "30s") and are
// parsed during Apply.
type File struct {
	Addr           *string  `json:"addr" yaml:"addr" toml:"addr"`
	ModelPath      *string  `json:"model_path" yaml:"model_path" toml:"model_path"`
	Quantization   *string  `json:"quantization" yaml:"quantization" toml:"quantization"`
	OffloadProfile *int     `json:"offload_profile" yaml:"offload_profile" toml:"offload_profile"`
	PromptRewrite  *bool    `json:"prompt_rewrite" yaml:"prompt_rewrite" toml:"prompt_rewrite"`
	RewriteLLM     *string  `json:"rewrite_llm" yaml:"rewrite_llm" toml:"rewrite_llm"`
	MeshDecode     *bool    `json:"mesh_decode" yaml:"mesh_decode" toml:"mesh_decode"`
	GPUBudget      *string  `json:"gpu_budget" yaml:"gpu_budget" toml:"gpu_budget"`
	MaxQueue       *int     `json:"max_queue" yaml:"max_queue" toml:"max_queue"`
	MaxWait        *string  `json:"max_wait" yaml:"max_wait" toml:"max_wait"`
	GenTimeout     *string  `json:"gen_timeout" yaml:"gen_timeout" toml:"gen_timeout"`
	RetainWindow   *string  `json:"retain_window" yaml:"retain_window" toml:"retain_window"`
	LogLevel       *string  `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat      *string  `json:"log_format" yaml:"log_format" toml:"log_format"`
	CORSOrigins    []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (File, error) {
	var f File
	if path == "" {
		return f, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return f, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &f); err != nil {
			return f, err
		}
	case ".json":
		if err := json.Unmarshal(b, &f); err != nil {
			return f, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &f); err != nil {
			return f, err
		}
	default:
		return f, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return f, nil
}

// Apply overlays the file's set fields onto c.
func (c *Config) Apply(f File) error {
	if f.Addr != nil {
		c.Addr = *f.Addr
	}
	if f.ModelPath != nil {
		c.ModelPath = *f.ModelPath
	}
	if f.Quantization != nil {
		c.Quantization = *f.Quantization
	}
	if f.OffloadProfile != nil {
		c.OffloadProfile = *f.OffloadProfile
	}
	if f.PromptRewrite != nil {
		c.PromptRewrite = *f.PromptRewrite
	}
	if f.RewriteLLM != nil {
		c.RewriteLLM = *f.RewriteLLM
	}
	if f.MeshDecode != nil {
		c.MeshDecode = *f.MeshDecode
	}
	if f.GPUBudget != nil {
		n, err := units.RAMInBytes(*f.GPUBudget)
		if err != nil {
			return fmt.Errorf("gpu_budget: %w", err)
		}
		c.GPUBudget = n
	}
	if f.MaxQueue != nil {
		c.MaxQueue = *f.MaxQueue
	}
	if err := applyDuration(&c.MaxWait, f.MaxWait, "max_wait"); err != nil {
		return err
	}
	if err := applyDuration(&c.GenTimeout, f.GenTimeout, "gen_timeout"); err != nil {
		return err
	}
	if err := applyDuration(&c.RetainWindow, f.RetainWindow, "retain_window"); err != nil {
		return err
	}
	if f.LogLevel != nil {
		c.LogLevel = *f.LogLevel
	}
	if f.LogFormat != nil {
		c.LogFormat = *f.LogFormat
	}
	if f.CORSOrigins != nil {
		c.CORSOrigins = append([]string(nil), f.CORSOrigins...)
	}
	return nil
}

func applyDuration(dst *time.Duration, s *string, key string) error {
	if s == nil {
		return nil
	}
	d, err := time.ParseDuration(*s)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}
