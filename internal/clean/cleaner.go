package clean

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/planbiir/tracefilter/internal/trace"
	"github.com/planbiir/tracefilter/log"
)

// Clean filters tr with the given configuration and reports statistics.
// The logger is taken from ctx when present.
func Clean(ctx context.Context, tr trace.Trace, config Config) (Result, error) {
	logger := log.FromContextOrDefault(ctx)
	startTime := time.Now()

	filter, err := New(tr, config.MaxSpeedKmh)
	if err != nil {
		return Result{}, err
	}

	nonIncreasing := countNonIncreasing(tr)
	if nonIncreasing > 0 {
		logger.Warn("trace contains non-increasing timestamps",
			log.Int("steps", nonIncreasing))
	}

	logger.Debug("running validity filter",
		log.Int("points", len(tr)),
		log.Float64("maxSpeedKmh", config.MaxSpeedKmh),
		log.Float64("maxSpeedKmSec", filter.Threshold()))

	valid := filter.ValidPoints()

	originalDistance := calculateDistance(tr)
	finalDistance := calculateDistance(valid)
	removed := len(tr) - len(valid)

	stats := Stats{
		OriginalPoints:     len(tr),
		OriginalDistance:   originalDistance,
		NonIncreasingSteps: nonIncreasing,
		FinalPoints:        len(valid),
		PointsRemoved:      removed,
		PointsPercent:      float64(removed) / float64(len(tr)) * 100,
		FinalDistance:      finalDistance,
		DistanceReduced:    originalDistance - finalDistance,
		Bound:              valid.Bound(),
		MaxSpeedKmh:        config.MaxSpeedKmh,
		ProcessingTime:     time.Since(startTime),
	}
	if originalDistance > 0 {
		stats.DistancePercent = (originalDistance - finalDistance) / originalDistance * 100
	}

	logger.Info("trace cleaned",
		log.Int("originalPoints", stats.OriginalPoints),
		log.Int("finalPoints", stats.FinalPoints),
		log.Float64("removedPercent", stats.PointsPercent),
		log.Float64("originalKm", stats.OriginalDistance),
		log.Float64("finalKm", stats.FinalDistance),
		log.Duration("took", stats.ProcessingTime))

	return Result{Points: valid, Stats: stats}, nil
}

// CleanAll cleans independent traces in parallel. Results are in input order.
// The first failure cancels the remaining work and is returned.
func CleanAll(ctx context.Context, traces []trace.Trace, config Config) ([]Result, error) {
	results := make([]Result, len(traces))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, tr := range traces {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := Clean(gctx, tr, config)
			if err != nil {
				return fmt.Errorf("trace %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// calculateDistance computes the total path length of a trace in km
func calculateDistance(tr trace.Trace) float64 {
	var total float64
	for i := 1; i < len(tr); i++ {
		total += Distance(tr[i-1].Location(), tr[i].Location())
	}
	return total
}

// countNonIncreasing counts adjacent pairs whose timestamp does not advance.
func countNonIncreasing(tr trace.Trace) int {
	n := 0
	for i := 1; i < len(tr); i++ {
		if tr[i].Timestamp <= tr[i-1].Timestamp {
			n++
		}
	}
	return n
}
