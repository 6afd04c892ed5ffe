package e2e

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"motiond/internal/httpapi"
	"motiond/internal/runtime"
)

// fullManifest describes a small but complete model: all six components and
// the canonical 22-joint humanoid skeleton.
const fullManifest = `name: t2m-lite
version: 1
joints: 22
latent_width: 8
denoise_steps: 2
components:
  - name: prompt_rewriter
    params: 200
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

// slowManifest makes a single generation take tens of milliseconds so
// admission behavior can be observed.
const slowManifest = `name: t2m-slow
version: 1
joints: 4
latent_width: 64
denoise_steps: 50
components:
  - name: text_encoder
    params: 1000
    width_out: 16
  - name: cross_modal
    params: 500
    width_in: 16
    width_out: 8
  - name: denoiser
    params: 2000
    cond_width: 8
  - name: pose_decoder
    params: 300
`

func writeModelDir(t *testing.T, manifest string) string {
	t.Helper()
	d := t.TempDir()
	if err := os.WriteFile(filepath.Join(d, "config.yml"), []byte(manifest), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	if err := os.WriteFile(filepath.Join(d, "latest.ckpt"), make([]byte, 32), 0o644); err != nil {
		t.Fatalf("write weights: %v", err)
	}
	return d
}

func baseConfig(dir string) runtime.Config {
	return runtime.Config{
		ModelPath:      dir,
		Quantization:   "int4",
		OffloadProfile: 3,
		BudgetBytes:    1 << 20,
		MeshDecode:     true,
		MaxQueue:       4,
		MaxWait:        time.Second,
		RetainWindow:   50 * time.Millisecond,
		Logger:         zerolog.Nop(),
	}
}

// newServer stands up the full stack: runtime, router and HTTP listener.
func newServer(t *testing.T, cfg runtime.Config) *httptest.Server {
	t.Helper()
	rt, err := runtime.New(cfg)
	if err != nil {
		t.Fatalf("new runtime: %v", err)
	}
	t.Cleanup(func() { rt.Close() })
	srv := httptest.NewServer(httpapi.NewMux(rt))
	t.Cleanup(srv.Close)
	return srv
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func httpPostJSON(t *testing.T, url string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}
