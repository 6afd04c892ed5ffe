package registry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validManifest = `name: t2m-lite
version: 1
joints: 22
latent_width: 256
denoise_steps: 50
components:
  - name: prompt_rewriter
    params: 770000000
    quantizable: true
  - name: text_encoder
    params: 1540000000
    width_out: 1536
    quantizable: true
  - name: cross_modal
    params: 34000000
    width_in: 1536
    width_out: 512
  - name: denoiser
    params: 450000000
    cond_width: 512
  - name: pose_decoder
    params: 41000000
  - name: mesh_decoder
    params: 120000000
`

// writeModelDir creates a model directory with the given manifest and a
// small checkpoint file.
func writeModelDir(t *testing.T, manifest string, withWeights bool) string {
	t.Helper()
	d := t.TempDir()
	if manifest != "" {
		if err := os.WriteFile(filepath.Join(d, "config.yml"), []byte(manifest), 0o644); err != nil {
			t.Fatalf("write manifest: %v", err)
		}
	}
	if withWeights {
		if err := os.WriteFile(filepath.Join(d, "latest.ckpt"), make([]byte, 64), 0o644); err != nil {
			t.Fatalf("write weights: %v", err)
		}
	}
	return d
}

func TestLoadManifest(t *testing.T) {
	d := writeModelDir(t, validManifest, true)
	m, err := Load(d)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if m.Name != "t2m-lite" || m.Joints != 22 || m.LatentWidth != 256 || m.DenoiseSteps != 50 {
		t.Fatalf("unexpected manifest: %+v", m)
	}
	if len(m.Components) != 6 {
		t.Fatalf("components len=%d", len(m.Components))
	}
	if m.Weights != "latest.ckpt" {
		t.Fatalf("weights default not applied: %q", m.Weights)
	}
	if m.WeightsBytes != 64 {
		t.Fatalf("weights bytes=%d", m.WeightsBytes)
	}
	enc, ok := m.Component(CompTextEncoder)
	if !ok || enc.WidthOut != 1536 || !enc.Quantizable {
		t.Fatalf("unexpected encoder spec: %+v ok=%v", enc, ok)
	}
	if _, ok := m.Component("nope"); ok {
		t.Fatalf("expected lookup miss")
	}
}

func TestLoadMissingManifest(t *testing.T) {
	d := t.TempDir()
	if _, err := Load(d); err == nil {
		t.Fatalf("expected error for missing config.yml")
	}
}

func TestLoadMissingWeights(t *testing.T) {
	d := writeModelDir(t, validManifest, false)
	_, err := Load(d)
	if err == nil || !strings.Contains(err.Error(), "latest.ckpt") {
		t.Fatalf("expected weights error, got %v", err)
	}
}

func TestLoadBadYAML(t *testing.T) {
	d := writeModelDir(t, "name: [unclosed", true)
	if _, err := Load(d); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name     string
		manifest string
		wantErr  string
	}{
		{
			name:     "missing name",
			manifest: "joints: 22\nlatent_width: 8\ndenoise_steps: 2\ncomponents:\n  - name: text_encoder\n    params: 1\n",
			wantErr:  "name is required",
		},
		{
			name:     "bad joints",
			manifest: "name: x\njoints: 0\nlatent_width: 8\ndenoise_steps: 2\ncomponents:\n  - name: text_encoder\n    params: 1\n",
			wantErr:  "joints",
		},
		{
			name:     "no components",
			manifest: "name: x\njoints: 22\nlatent_width: 8\ndenoise_steps: 2\n",
			wantErr:  "components list is empty",
		},
		{
			name:     "duplicate component",
			manifest: "name: x\njoints: 22\nlatent_width: 8\ndenoise_steps: 2\ncomponents:\n  - name: text_encoder\n    params: 1\n  - name: text_encoder\n    params: 1\n",
			wantErr:  "duplicate component",
		},
		{
			name:     "zero params",
			manifest: "name: x\njoints: 22\nlatent_width: 8\ndenoise_steps: 2\ncomponents:\n  - name: text_encoder\n    params: 0\n",
			wantErr:  "params must be positive",
		},
		{
			name:     "missing required component",
			manifest: "name: x\njoints: 22\nlatent_width: 8\ndenoise_steps: 2\ncomponents:\n  - name: text_encoder\n    params: 1\n",
			wantErr:  "missing required component",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := writeModelDir(t, tc.manifest, true)
			_, err := Load(d)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("want error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestDigestStable(t *testing.T) {
	d1 := writeModelDir(t, validManifest, true)
	d2 := writeModelDir(t, validManifest, true)
	m1, err := Load(d1)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	m2, err := Load(d2)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if m1.Digest() != m2.Digest() {
		t.Fatalf("same manifest should hash equal")
	}
	m2.Version = 2
	if m1.Digest() == m2.Digest() {
		t.Fatalf("version change should alter digest")
	}
}

func TestPreflight(t *testing.T) {
	d := writeModelDir(t, validManifest, true)
	rep := Preflight(d)
	if !rep.OK() || rep.ModelName != "t2m-lite" || rep.Components != 6 || rep.WeightsBytes != 64 {
		t.Fatalf("unexpected report: %+v", rep)
	}

	noWeights := writeModelDir(t, validManifest, false)
	rep = Preflight(noWeights)
	if rep.OK() || !rep.ManifestFound || rep.WeightsFound {
		t.Fatalf("unexpected report: %+v", rep)
	}
	if rep.ManifestError != "" {
		t.Fatalf("manifest itself is valid, got error %q", rep.ManifestError)
	}

	rep = Preflight(t.TempDir())
	if rep.OK() || rep.ManifestFound {
		t.Fatalf("unexpected report: %+v", rep)
	}
}
