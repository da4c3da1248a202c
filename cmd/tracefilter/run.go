package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/planbiir/tracefilter/internal/clean"
	"github.com/planbiir/tracefilter/internal/config"
	"github.com/planbiir/tracefilter/internal/trace"
	"github.com/planbiir/tracefilter/log"
)

func runClean(ctx context.Context, out io.Writer, args *config.CliArgs) error {
	logger := log.FromContextOrDefault(ctx)

	logger.Info("reading trace", log.String("file", args.Input))
	tr, err := trace.ReadFile(args.Input)
	if err != nil {
		return fmt.Errorf("read %s: %w", args.Input, err)
	}

	result, err := clean.Clean(ctx, tr, clean.Config{MaxSpeedKmh: args.MaxSpeedKmh})
	if err != nil {
		return fmt.Errorf("clean %s: %w", args.Input, err)
	}

	if err := reportStats(out, args, result.Stats); err != nil {
		return err
	}

	if args.DryRun {
		logger.Info("dry run completed, no files written")
		return nil
	}

	if err := trace.WriteFile(args.Output, result.Points); err != nil {
		return fmt.Errorf("write %s: %w", args.Output, err)
	}
	logger.Info("wrote filtered trace",
		log.String("file", args.Output),
		log.Int("points", len(result.Points)))
	return nil
}

func reportStats(out io.Writer, args *config.CliArgs, stats clean.Stats) error {
	switch {
	case args.StatsJSON:
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal stats: %w", err)
		}
		fmt.Fprintln(out, string(data))
	case args.ShowStats || args.DryRun:
		printStats(out, stats)
	}
	return nil
}

func printStats(out io.Writer, stats clean.Stats) {
	fmt.Fprintf(out, "\nCleaning Statistics:\n")
	fmt.Fprintf(out, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	fmt.Fprintf(out, "Speed limit: %.1f km/h\n", stats.MaxSpeedKmh)
	fmt.Fprintf(out, "Points: %d → %d (%d removed, %.1f%%)\n",
		stats.OriginalPoints, stats.FinalPoints, stats.PointsRemoved, stats.PointsPercent)
	fmt.Fprintf(out, "Distance: %.3f → %.3f km (%.3f km reduced, %.1f%%)\n",
		stats.OriginalDistance, stats.FinalDistance, stats.DistanceReduced, stats.DistancePercent)
	if stats.NonIncreasingSteps > 0 {
		fmt.Fprintf(out, "Non-increasing timestamps: %d\n", stats.NonIncreasingSteps)
	}
	fmt.Fprintf(out, "Bounds: [%.6f, %.6f] - [%.6f, %.6f]\n",
		stats.Bound.Min.Lat(), stats.Bound.Min.Lon(), stats.Bound.Max.Lat(), stats.Bound.Max.Lon())
	fmt.Fprintf(out, "Processing Time: %v\n", stats.ProcessingTime)
	fmt.Fprintf(out, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
}
