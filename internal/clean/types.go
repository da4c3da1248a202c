package clean

import (
	"time"

	"github.com/paulmach/orb"

	"github.com/planbiir/tracefilter/internal/trace"
)

// DefaultMaxSpeedKmh is the plausibility limit used when none is configured.
const DefaultMaxSpeedKmh = 200.0

// Config holds cleaning parameters
type Config struct {
	MaxSpeedKmh float64 // km/h - fastest plausible travel between accepted points
}

func DefaultConfig() Config {
	return Config{
		MaxSpeedKmh: DefaultMaxSpeedKmh,
	}
}

// Stats represents cleaning results and metrics
type Stats struct {
	// Input
	OriginalPoints     int     `json:"original_points"`
	OriginalDistance   float64 `json:"original_distance_km"`
	NonIncreasingSteps int     `json:"non_increasing_steps"`

	// Results
	FinalPoints     int       `json:"final_points"`
	PointsRemoved   int       `json:"points_removed"`
	PointsPercent   float64   `json:"points_removed_percent"`
	FinalDistance   float64   `json:"final_distance_km"`
	DistanceReduced float64   `json:"distance_reduced_km"`
	DistancePercent float64   `json:"distance_reduced_percent"`
	Bound           orb.Bound `json:"bound"`

	MaxSpeedKmh    float64       `json:"max_speed_kmh"`
	ProcessingTime time.Duration `json:"processing_time_ns"`
}

// Result contains the accepted samples and statistics
type Result struct {
	Points trace.Trace
	Stats  Stats
}
