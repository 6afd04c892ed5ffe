package registry

import (
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Component names used across the model manifest and the pipeline.
const (
	CompPromptRewriter = "prompt_rewriter"
	CompTextEncoder    = "text_encoder"
	CompCrossModal     = "cross_modal"
	CompDenoiser       = "denoiser"
	CompPoseDecoder    = "pose_decoder"
	CompMeshDecoder    = "mesh_decoder"
)

const (
	manifestFile       = "config.yml"
	defaultWeightsFile = "latest.ckpt"
)

// ComponentSpec describes one model component in the manifest.
type ComponentSpec struct {
	Name        string `yaml:"name"`
	Params      int64  `yaml:"params"`
	Quantizable bool   `yaml:"quantizable"`
	// Wiring dimensions; only the fields relevant to a component are set.
	WidthIn   int `yaml:"width_in,omitempty"`
	WidthOut  int `yaml:"width_out,omitempty"`
	CondWidth int `yaml:"cond_width,omitempty"`
}

// Manifest is the parsed model directory manifest (config.yml) plus
// filesystem facts resolved at load time.
type Manifest struct {
	Name         string          `yaml:"name"`
	Version      int             `yaml:"version"`
	Joints       int             `yaml:"joints"`
	LatentWidth  int             `yaml:"latent_width"`
	DenoiseSteps int             `yaml:"denoise_steps"`
	Weights      string          `yaml:"weights"`
	Components   []ComponentSpec `yaml:"components"`

	Dir          string `yaml:"-"`
	WeightsPath  string `yaml:"-"`
	WeightsBytes int64  `yaml:"-"`
}

// Load reads and validates the manifest under dir (a model directory
// containing config.yml and the weights checkpoint).
func Load(dir string) (*Manifest, error) {
	m, err := parse(dir)
	if err != nil {
		return nil, err
	}
	fi, err := os.Stat(m.WeightsPath)
	if err != nil {
		return nil, fmt.Errorf("weights checkpoint %s: %w", m.Weights, err)
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("weights checkpoint %s is a directory", m.Weights)
	}
	m.WeightsBytes = fi.Size()
	return m, nil
}

// parse reads and validates config.yml without touching the checkpoint.
func parse(dir string) (*Manifest, error) {
	base, err := expandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	b, err := os.ReadFile(filepath.Join(abs, manifestFile))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	m.Dir = abs
	if m.Weights == "" {
		m.Weights = defaultWeightsFile
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	m.WeightsPath = filepath.Join(abs, m.Weights)
	return &m, nil
}

func (m *Manifest) validate() error {
	if m.Name == "" {
		return fmt.Errorf("manifest: name is required")
	}
	if m.Joints <= 0 {
		return fmt.Errorf("manifest: joints must be positive, got %d", m.Joints)
	}
	if m.LatentWidth <= 0 {
		return fmt.Errorf("manifest: latent_width must be positive, got %d", m.LatentWidth)
	}
	if m.DenoiseSteps <= 0 {
		return fmt.Errorf("manifest: denoise_steps must be positive, got %d", m.DenoiseSteps)
	}
	if len(m.Components) == 0 {
		return fmt.Errorf("manifest: components list is empty")
	}
	seen := make(map[string]bool, len(m.Components))
	for i, c := range m.Components {
		if c.Name == "" {
			return fmt.Errorf("manifest: component %d has no name", i)
		}
		if seen[c.Name] {
			return fmt.Errorf("manifest: duplicate component %q", c.Name)
		}
		seen[c.Name] = true
		if c.Params <= 0 {
			return fmt.Errorf("manifest: component %q params must be positive, got %d", c.Name, c.Params)
		}
	}
	for _, required := range []string{CompTextEncoder, CompCrossModal, CompDenoiser, CompPoseDecoder} {
		if !seen[required] {
			return fmt.Errorf("manifest: missing required component %q", required)
		}
	}
	return nil
}

// Component looks up a component spec by name.
func (m *Manifest) Component(name string) (ComponentSpec, bool) {
	for _, c := range m.Components {
		if c.Name == name {
			return c, true
		}
	}
	return ComponentSpec{}, false
}

// Digest hashes the manifest identity. Weight materialization seeds from
// it so the same manifest always yields the same weights.
func (m *Manifest) Digest() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%d|%d|%d|%d", m.Name, m.Version, m.Joints, m.LatentWidth, m.DenoiseSteps)
	for _, c := range m.Components {
		fmt.Fprintf(h, "|%s:%d:%d:%d:%d", c.Name, c.Params, c.WidthIn, c.WidthOut, c.CondWidth)
	}
	return h.Sum64()
}
