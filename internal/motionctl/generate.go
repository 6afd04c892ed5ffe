package motionctl

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"motiond/pkg/types"
)

// maxConcurrentRequests caps the generate fan-out. The server admits one
// generation at a time; a small pool keeps its queue warm without tripping
// backpressure for other clients.
const maxConcurrentRequests = 4

type generateOptions struct {
	Text     string
	Duration float64
	CFGScale float64
	Seeds    string
	OutDir   string
}

// runGenerate issues one request per seed and writes motion_<seed>.json
// files into OutDir. Without --seeds a single request is sent and the
// server's default seed names the file.
func runGenerate(cmd *cobra.Command, cfg *Config, opts generateOptions) error {
	seeds, err := splitSeeds(opts.Seeds)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return err
	}

	cli := newClient(cfg)
	base := types.MotionRequest{Text: opts.Text}
	if opts.Duration != 0 {
		d := opts.Duration
		base.Duration = &d
	}
	if opts.CFGScale != 0 {
		s := opts.CFGScale
		base.CFGScale = &s
	}

	if len(seeds) == 0 {
		resp, err := cli.generate(cmd.Context(), base)
		if err != nil {
			return err
		}
		path, err := writeMotion(opts.OutDir, resp)
		if err != nil {
			return err
		}
		cmd.Printf("wrote %s (%d frames)\n", path, resp.Motion.NumFrames)
		return nil
	}

	type written struct {
		path   string
		frames int
	}
	results := make([]written, len(seeds))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(maxConcurrentRequests)
	for i, seed := range seeds {
		req := base
		s := seed
		req.Seed = &s
		g.Go(func() error {
			resp, err := cli.generate(ctx, req)
			if err != nil {
				return fmt.Errorf("seed %d: %w", s, err)
			}
			path, err := writeMotion(opts.OutDir, resp)
			if err != nil {
				return err
			}
			results[i] = written{path: path, frames: resp.Motion.NumFrames}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, w := range results {
		cmd.Printf("wrote %s (%d frames)\n", w.path, w.frames)
	}
	return nil
}

func writeMotion(dir string, resp *types.MotionResponse) (string, error) {
	b, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("motion_%d.json", resp.Meta.Seed))
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// splitSeeds parses a comma-separated seed list. Empty input means "let the
// server pick".
func splitSeeds(s string) ([]int64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad seed %q: %w", p, err)
		}
		out = append(out, n)
	}
	return out, nil
}
