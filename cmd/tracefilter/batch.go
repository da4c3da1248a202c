package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/planbiir/tracefilter/internal/clean"
	"github.com/planbiir/tracefilter/internal/config"
	"github.com/planbiir/tracefilter/internal/trace"
	"github.com/planbiir/tracefilter/log"
)

func newBatchCmd(args *config.CliArgs) *cobra.Command {
	return &cobra.Command{
		Use:   "batch <file>...",
		Short: "clean several traces concurrently, writing <name>_valid<ext> next to each",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, inputs []string) error {
			return runBatch(cmd.Context(), cmd.OutOrStdout(), args, inputs)
		},
	}
}

func runBatch(ctx context.Context, out io.Writer, args *config.CliArgs, inputs []string) error {
	logger := log.FromContextOrDefault(ctx)

	traces := make([]trace.Trace, len(inputs))
	for i, input := range inputs {
		tr, err := trace.ReadFile(input)
		if err != nil {
			return fmt.Errorf("read %s: %w", input, err)
		}
		traces[i] = tr
	}

	results, err := clean.CleanAll(ctx, traces, clean.Config{MaxSpeedKmh: args.MaxSpeedKmh})
	if err != nil {
		return err
	}

	for i, res := range results {
		if err := reportStats(out, args, res.Stats); err != nil {
			return err
		}
		if args.DryRun {
			continue
		}

		output := batchOutputPath(inputs[i])
		if err := trace.WriteFile(output, res.Points); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}
		logger.Info("wrote filtered trace",
			log.String("input", inputs[i]),
			log.String("file", output),
			log.Int("points", len(res.Points)))
	}
	return nil
}

// batchOutputPath derives the output name from the input, keeping its
// extension and therefore its format.
func batchOutputPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "_valid" + ext
}
