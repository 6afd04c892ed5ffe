package motionctl

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// Config carries the connection settings shared by all subcommands.
type Config struct {
	Server  string
	Timeout time.Duration
}

// buildRootCmd is a convenience for help-only fallbacks.
func buildRootCmd() *cobra.Command {
	return buildRootCmdWith(&Config{Server: envStr("MOTIOND_SERVER", "http://127.0.0.1:8080"), Timeout: 2 * time.Minute})
}

// buildRootCmdWith constructs the Cobra command tree wired to cfg.
func buildRootCmdWith(cfg *Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "motionctl",
		Short:         "Client for the motiond text-to-motion service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&cfg.Server, "server", cfg.Server, "Base URL of the motiond server (defaults MOTIOND_SERVER or http://127.0.0.1:8080)")
	root.PersistentFlags().DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Per-request timeout")

	healthCmd := &cobra.Command{
		Use:     "health",
		Short:   "Check server liveness",
		Example: "  motionctl health",
		RunE: func(cmd *cobra.Command, args []string) error {
			hr, err := newClient(cfg).health(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hr.Status)
			return nil
		},
	}
	root.AddCommand(healthCmd)

	statusCmd := &cobra.Command{
		Use:     "status",
		Short:   "Show runtime state, component residency and queue depth",
		Example: "  motionctl status",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := newClient(cfg).status(cmd.Context())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(st)
		},
	}
	root.AddCommand(statusCmd)

	opts := generateOptions{}
	generateCmd := &cobra.Command{
		Use:     "generate",
		Short:   "Generate motion from a text prompt",
		Example: "  motionctl generate --text \"a person walks forward\"\n  motionctl generate --text \"jumps twice\" --duration 4 --seeds 1,2,3 --out ./clips",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Text == "" {
				return fmt.Errorf("--text is required")
			}
			return runGenerate(cmd, cfg, opts)
		},
	}
	generateCmd.Flags().StringVar(&opts.Text, "text", "", "Motion description prompt")
	generateCmd.Flags().Float64Var(&opts.Duration, "duration", 0, "Clip length in seconds (0 = server default)")
	generateCmd.Flags().Float64Var(&opts.CFGScale, "cfg-scale", 0, "Guidance scale (0 = server default)")
	generateCmd.Flags().StringVar(&opts.Seeds, "seeds", "", "Comma-separated seeds; one request and one output file per seed")
	generateCmd.Flags().StringVar(&opts.OutDir, "out", ".", "Directory for motion_<seed>.json output files")
	root.AddCommand(generateCmd)

	return root
}

// Main returns an exit code (0 for success, non-zero on error) for use by
// cmd/motionctl.
func Main() int {
	if err := buildRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	return 0
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
