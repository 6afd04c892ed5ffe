package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml",
		"addr: :9999\nmodel_path: /models/x\nquantization: int8\noffload_profile: 1\ngpu_budget: 2GiB\nmax_wait: 5s\ncors_origins: [\"http://a\", \"http://b\"]\n")
	f, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := Default()
	if err := cfg.Apply(f); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if cfg.Addr != ":9999" || cfg.ModelPath != "/models/x" || cfg.Quantization != "int8" || cfg.OffloadProfile != 1 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.GPUBudget != 2<<30 {
		t.Fatalf("gpu budget = %d, want %d", cfg.GPUBudget, int64(2<<30))
	}
	if cfg.MaxWait != 5*time.Second {
		t.Fatalf("max wait = %v", cfg.MaxWait)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != "http://a" {
		t.Fatalf("cors origins = %v", cfg.CORSOrigins)
	}
	// Keys the file does not set keep their defaults.
	if !cfg.MeshDecode || cfg.MaxQueue != 16 {
		t.Fatalf("defaults clobbered: %+v", cfg)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json",
		`{"addr":":7070","mesh_decode":false,"prompt_rewrite":true,"max_queue":4,"retain_window":"250ms"}`)
	f, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := Default()
	if err := cfg.Apply(f); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if cfg.Addr != ":7070" || cfg.MeshDecode || !cfg.PromptRewrite || cfg.MaxQueue != 4 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.RetainWindow != 250*time.Millisecond {
		t.Fatalf("retain window = %v", cfg.RetainWindow)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml",
		"addr=\":8081\"\nquantization=\"none\"\ngpu_budget=\"512MiB\"\ngen_timeout=\"2m\"\n")
	f, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := Default()
	if err := cfg.Apply(f); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if cfg.Addr != ":8081" || cfg.Quantization != "none" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.GPUBudget != 512<<20 {
		t.Fatalf("gpu budget = %d", cfg.GPUBudget)
	}
	if cfg.GenTimeout != 2*time.Minute {
		t.Fatalf("gen timeout = %v", cfg.GenTimeout)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error on empty path")
	}
	if _, err := Load("/definitely/not/a/real/file-12345.yaml"); err == nil {
		t.Fatalf("expected error for nonexistent file")
	}
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
}

func TestLoadInvalidContent(t *testing.T) {
	d := t.TempDir()
	cases := map[string]string{
		"bad.yaml": "addr: :8080\n: broken\n",
		"bad.json": `{ "addr": ":8080", "model_path": }`,
		"bad.toml": "addr=:8080\nmodel_path\n",
	}
	for name, content := range cases {
		p := writeTempFile(t, d, name, content)
		if _, err := Load(p); err == nil {
			t.Fatalf("expected unmarshal error for %s", name)
		}
	}
}

func TestApplyBadValues(t *testing.T) {
	bad := "12 parsecs"
	cfg := Default()
	if err := cfg.Apply(File{GPUBudget: &bad}); err == nil {
		t.Fatalf("expected gpu_budget parse error")
	}
	cfg = Default()
	if err := cfg.Apply(File{MaxWait: &bad}); err == nil {
		t.Fatalf("expected max_wait parse error")
	}
}
