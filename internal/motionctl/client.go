package motionctl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"motiond/pkg/types"
)

// client is a thin typed wrapper over the motiond HTTP API.
type client struct {
	base string
	hc   *http.Client
}

func newClient(cfg *Config) *client {
	return &client{
		base: strings.TrimRight(cfg.Server, "/"),
		hc:   &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *client) health(ctx context.Context) (types.HealthResponse, error) {
	var hr types.HealthResponse
	err := c.do(ctx, http.MethodGet, "/health", nil, &hr)
	return hr, err
}

func (c *client) status(ctx context.Context) (types.StatusResponse, error) {
	var st types.StatusResponse
	err := c.do(ctx, http.MethodGet, "/status", nil, &st)
	return st, err
}

func (c *client) generate(ctx context.Context, req types.MotionRequest) (*types.MotionResponse, error) {
	var resp types.MotionResponse
	if err := c.do(ctx, http.MethodPost, "/v1/motion", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// do sends one request and decodes the JSON response into out. Non-2xx
// responses are turned into errors carrying the server's message.
func (c *client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var er types.ErrorResponse
	if err := json.Unmarshal(b, &er); err == nil && er.Error != "" {
		return fmt.Errorf("server: %s (HTTP %d)", er.Error, resp.StatusCode)
	}
	return fmt.Errorf("server: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
}
