package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/leapstack-labs/sqlframe/internal/cli/output"
	intconfig "github.com/leapstack-labs/sqlframe/internal/config"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Concurrency int
	Timeout     time.Duration
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}

	cmd := &cobra.Command{
		Use:   "check [dataset...]",
		Short: "Load every dataset preview and report failures",
		Long: `Load the preview of each dataset, concurrently, and report which ones
succeed. Without arguments every dataset in the project is checked.

Exits non-zero when any dataset fails.`,
		Example: `  sqlframe check
  sqlframe check acme/users acme/orders --concurrency 2`,
		ValidArgsFunction: completeDatasets,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Concurrency, "concurrency", "c", 4, "Datasets loaded at once")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 30*time.Second, "Per-dataset timeout (0 for none)")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, opts *CheckOptions) error {
	c := NewCommandContext(cmd)
	r := c.Renderer

	paths := args
	if len(paths) == 0 {
		var err error
		paths, err = intconfig.ListDatasets(c.Cfg.DatasetsDir)
		if err != nil {
			return err
		}
	}

	results := checkDatasets(cmd.Context(), c, paths, opts)

	summary := output.CheckSummary{Results: results}
	for _, res := range results {
		if res.Status == "success" {
			summary.Passed++
		} else {
			summary.Failed++
		}
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		if err := r.JSON(summary); err != nil {
			return err
		}
	default:
		r.Header(1, fmt.Sprintf("Checking %d datasets", len(results)))
		for _, res := range results {
			detail := fmt.Sprintf("%d rows", res.Rows)
			if res.Error != "" {
				detail = res.Error
			}
			r.StatusLine(res.Dataset, res.Status, detail)
		}
		r.Println("")
		if summary.Failed == 0 {
			r.Success(fmt.Sprintf("%d passed", summary.Passed))
		} else {
			r.Println(r.Styles().Error.Render(fmt.Sprintf("%d passed, %d failed", summary.Passed, summary.Failed)))
		}
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d datasets failed", summary.Failed, len(results))
	}
	return nil
}

// checkDatasets loads each preview with at most opts.Concurrency loads in
// flight. Results keep the order of paths.
func checkDatasets(ctx context.Context, c *CommandContext, paths []string, opts *CheckOptions) []output.CheckResult {
	results := make([]output.CheckResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, opts.Concurrency))

	for i, p := range paths {
		g.Go(func() error {
			results[i] = checkOne(gctx, c, p, opts.Timeout)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func checkOne(ctx context.Context, c *CommandContext, path string, timeout time.Duration) output.CheckResult {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	vt, err := c.Load(ctx, path)
	if err != nil {
		c.Logger.Debug("dataset check failed", slog.String("dataset", path), slog.Any("error", err))
		return output.CheckResult{Dataset: path, Status: "failed", Error: err.Error()}
	}

	c.Logger.Debug("dataset check passed",
		slog.String("dataset", path),
		slog.Int("rows", vt.Head().Len()),
		slog.Duration("elapsed", time.Since(start)))
	return output.CheckResult{Dataset: path, Status: "success", Rows: vt.Head().Len()}
}
