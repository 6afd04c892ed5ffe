package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func parseArgs(t *testing.T, args ...string) error {
	t.Helper()
	fs := flag.NewFlagSet("motiond-test", flag.ContinueOnError)
	_, _, err := parseAndResolve(fs, args)
	return err
}

func TestResolveDefaults(t *testing.T) {
	fs := flag.NewFlagSet("motiond-test", flag.ContinueOnError)
	cfg, check, err := parseAndResolve(fs, nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if check {
		t.Fatalf("check should default to false")
	}
	if cfg.Addr != ":8080" || cfg.Quantization != "int4" || cfg.OffloadProfile != 3 || !cfg.MeshDecode {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.GPUBudget != 4<<30 || cfg.MaxQueue != 16 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestResolvePrecedence(t *testing.T) {
	d := t.TempDir()
	p := filepath.Join(d, "motiond.yaml")
	content := "addr: :7000\nquantization: int8\nmax_queue: 5\n"
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("MOTIOND_QUANTIZATION", "none")

	fs := flag.NewFlagSet("motiond-test", flag.ContinueOnError)
	cfg, _, err := parseAndResolve(fs, []string{"-config", p, "-addr", ":6000"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Addr != ":6000" {
		t.Fatalf("flag should win: addr = %q", cfg.Addr)
	}
	if cfg.Quantization != "none" {
		t.Fatalf("env should beat file: quantization = %q", cfg.Quantization)
	}
	if cfg.MaxQueue != 5 {
		t.Fatalf("file should beat default: max_queue = %d", cfg.MaxQueue)
	}
}

func TestResolveCheckFlag(t *testing.T) {
	fs := flag.NewFlagSet("motiond-test", flag.ContinueOnError)
	_, check, err := parseAndResolve(fs, []string{"-check"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !check {
		t.Fatalf("expected check mode")
	}
}

func TestResolveGPUBudgetFlag(t *testing.T) {
	fs := flag.NewFlagSet("motiond-test", flag.ContinueOnError)
	cfg, _, err := parseAndResolve(fs, []string{"-gpu-budget", "1GiB"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.GPUBudget != 1<<30 {
		t.Fatalf("gpu budget = %d", cfg.GPUBudget)
	}
}

func TestResolveRejectsBadValues(t *testing.T) {
	if err := parseArgs(t, "-quantization", "fp8"); err == nil {
		t.Fatalf("expected unsupported precision error")
	}
	if err := parseArgs(t, "-offload-profile", "2"); err == nil {
		t.Fatalf("expected unknown profile error")
	}
	if err := parseArgs(t, "-gpu-budget", "lots"); err == nil {
		t.Fatalf("expected budget parse error")
	}
	if err := parseArgs(t, "-config", "/no/such/file.yaml"); err == nil {
		t.Fatalf("expected config load error")
	}
}

func TestNewLoggerLevels(t *testing.T) {
	if lg := newLogger("debug", "json"); lg.GetLevel() != zerolog.DebugLevel {
		t.Fatalf("level = %v", lg.GetLevel())
	}
	if lg := newLogger("weird", "json"); lg.GetLevel() != zerolog.InfoLevel {
		t.Fatalf("fallback level = %v", lg.GetLevel())
	}
	if lg := newLogger("warn", "console"); lg.GetLevel() != zerolog.WarnLevel {
		t.Fatalf("console level = %v", lg.GetLevel())
	}
}
