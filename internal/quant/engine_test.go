package quant

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"motiond/internal/registry"
)

const testManifest = `name: t2m-test
version: 1
joints: 4
latent_width: 8
denoise_steps: 2
components:
  - name: text_encoder
    params: 1000
    width_out: 16
    quantizable: true
  - name: cross_modal
    params: 500
    width_in: 16
    width_out: 8
  - name: denoiser
    params: 2000
    cond_width: 8
    quantizable: true
  - name: pose_decoder
    params: 300
  - name: mesh_decoder
    params: 400
`

func loadTestManifest(t *testing.T, manifest string) *registry.Manifest {
	t.Helper()
	d := t.TempDir()
	if err := os.WriteFile(filepath.Join(d, "config.yml"), []byte(manifest), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	if err := os.WriteFile(filepath.Join(d, "latest.ckpt"), make([]byte, 16), 0o644); err != nil {
		t.Fatalf("write weights: %v", err)
	}
	m, err := registry.Load(d)
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	return m
}

func newTestEngine(t *testing.T, manifest string) *Engine {
	t.Helper()
	return NewEngine(loadTestManifest(t, manifest), zerolog.Nop())
}

func TestEngineVerify(t *testing.T) {
	e := newTestEngine(t, testManifest)
	if err := e.Verify(); err != nil {
		t.Fatalf("verify: %v", err)
	}
}

func TestEngineVerifyMismatch(t *testing.T) {
	bad := `name: t2m-bad
joints: 4
latent_width: 8
denoise_steps: 2
components:
  - name: text_encoder
    params: 1000
    width_out: 16
  - name: cross_modal
    params: 500
    width_in: 32
    width_out: 8
  - name: denoiser
    params: 2000
    cond_width: 8
  - name: pose_decoder
    params: 300
`
	e := newTestEngine(t, bad)
	err := e.Verify()
	if err == nil {
		t.Fatalf("expected mismatch error")
	}
	if !IsModelIncompatible(err) {
		t.Fatalf("expected IsModelIncompatible, got %v", err)
	}
}

func TestEngineLoadFootprints(t *testing.T) {
	e := newTestEngine(t, testManifest)
	enc, err := e.Load(registry.CompTextEncoder, PrecisionInt4)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if enc.Precision != PrecisionInt4 {
		t.Fatalf("precision=%s", enc.Precision)
	}
	if enc.FootprintBytes != 500 { // 1000 params at 0.5 bytes each
		t.Fatalf("footprint=%d", enc.FootprintBytes)
	}
	// Non-quantizable components load at full precision regardless.
	cm, err := e.Load(registry.CompCrossModal, PrecisionInt4)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cm.Precision != PrecisionFull {
		t.Fatalf("non-quantizable got precision %s", cm.Precision)
	}
	if cm.FootprintBytes != 1000 { // 500 params at 2 bytes each
		t.Fatalf("footprint=%d", cm.FootprintBytes)
	}
}

func TestEngineLoadTensorShapes(t *testing.T) {
	e := newTestEngine(t, testManifest)
	enc, err := e.Load(registry.CompTextEncoder, PrecisionInt8)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	mix, ok := enc.Tensor(TensorEncoderMix)
	if !ok || mix.Rows != 16 || mix.Cols != 16 {
		t.Fatalf("mix shape=%dx%d ok=%v", mix.Rows, mix.Cols, ok)
	}
	den, err := e.Load(registry.CompDenoiser, PrecisionInt8)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cond, ok := den.Tensor(TensorCondProj)
	if !ok || cond.Rows != 8 || cond.Cols != 8 {
		t.Fatalf("cond shape=%dx%d ok=%v", cond.Rows, cond.Cols, ok)
	}
	pose, err := e.Load(registry.CompPoseDecoder, PrecisionInt8)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	rot, ok := pose.Tensor(TensorRotProj)
	if !ok || rot.Rows != 8 || rot.Cols != 4*6 {
		t.Fatalf("rot shape=%dx%d ok=%v", rot.Rows, rot.Cols, ok)
	}
	mesh, err := e.Load(registry.CompMeshDecoder, PrecisionInt8)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := mesh.Tensor(TensorEncoderMix); ok {
		t.Fatalf("mesh decoder should hold no tensors")
	}
	if mesh.FootprintBytes != 800 { // 400 params, not quantizable, 2 bytes each
		t.Fatalf("mesh footprint=%d", mesh.FootprintBytes)
	}
}

func TestEngineDeterminism(t *testing.T) {
	// Two engines over byte-identical manifests produce identical weights.
	e1 := newTestEngine(t, testManifest)
	e2 := newTestEngine(t, testManifest)
	c1, err := e1.Load(registry.CompDenoiser, PrecisionInt4)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	c2, err := e2.Load(registry.CompDenoiser, PrecisionInt4)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	t1, _ := c1.Tensor(TensorStepMix)
	t2, _ := c2.Tensor(TensorStepMix)
	if len(t1.Data) == 0 || len(t1.Data) != len(t2.Data) {
		t.Fatalf("tensor sizes: %d vs %d", len(t1.Data), len(t2.Data))
	}
	for i := range t1.Data {
		if t1.Data[i] != t2.Data[i] {
			t.Fatalf("weights differ at %d: %v vs %v", i, t1.Data[i], t2.Data[i])
		}
	}
	// A different precision yields different (snapped) weights.
	c3, err := e1.Load(registry.CompDenoiser, PrecisionFull)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	t3, _ := c3.Tensor(TensorStepMix)
	same := true
	for i := range t1.Data {
		if t1.Data[i] != t3.Data[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("int4 and full weights should differ")
	}
}

func TestEngineLoadErrors(t *testing.T) {
	e := newTestEngine(t, testManifest)
	if _, err := e.Load("prompt_rewriter", PrecisionInt4); err == nil || !IsModelIncompatible(err) {
		t.Fatalf("expected incompatible for unknown component, got %v", err)
	}
	if _, err := e.Load(registry.CompDenoiser, Precision("fp8")); err == nil || !IsUnsupportedPrecision(err) {
		t.Fatalf("expected unsupported precision, got %v", err)
	}
}
