package clean

import (
	"errors"
	"fmt"
	"math"

	"github.com/planbiir/tracefilter/internal/trace"
)

// earthRadiusKm is the IUGG mean Earth radius.
const earthRadiusKm = 6371.0088

const secondsPerHour = 3600

// ErrInvalidInput is returned when a trace is too short to filter.
var ErrInvalidInput = errors.New("invalid input")

// Location is a latitude/longitude pair in decimal degrees.
type Location = trace.Location

// Filter drops samples that could only be reached from the last accepted
// sample by travelling faster than the speed limit.
type Filter struct {
	samples    trace.Trace
	limitKmSec float64
}

// New creates a filter for tr with a limit given in km/h. The trace must hold
// at least two samples and is expected to be sorted by timestamp.
func New(tr trace.Trace, speedLimitKmh float64) (*Filter, error) {
	if len(tr) < 2 {
		return nil, fmt.Errorf("%w: trace needs at least 2 samples, got %d", ErrInvalidInput, len(tr))
	}
	return &Filter{
		samples:    tr,
		limitKmSec: ConvertToKmPerSec(speedLimitKmh),
	}, nil
}

// ConvertToKmPerSec turns a km/h speed into km/s. Any value is accepted.
func ConvertToKmPerSec(speedKmh float64) float64 {
	return speedKmh / secondsPerHour
}

// Distance returns the haversine great-circle distance in km.
func Distance(a, b Location) float64 {
	lat1Rad := a.Lat * math.Pi / 180
	lat2Rad := b.Lat * math.Pi / 180
	deltaLat := (b.Lat - a.Lat) * math.Pi / 180
	deltaLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// Speed returns km/s. Zero elapsed time yields +Inf, or NaN for zero distance.
func Speed(distanceKm float64, elapsedSeconds int64) float64 {
	return distanceKm / float64(elapsedSeconds)
}

// IsUnderLimit reports whether speed (km/s) does not exceed the limit.
// NaN is never under the limit.
func (f *Filter) IsUnderLimit(speedKmPerSec float64) bool {
	return speedKmPerSec <= f.limitKmSec
}

// Threshold returns the limit in km/s.
func (f *Filter) Threshold() float64 {
	return f.limitKmSec
}

// ValidPoints walks the trace once. The first sample is always kept and
// becomes the anchor; every later sample is checked against the anchor and
// either accepted (moving the anchor) or dropped for good.
func (f *Filter) ValidPoints() trace.Trace {
	valid := trace.Trace{f.samples[0]}
	anchor := f.samples[0]

	for _, candidate := range f.samples[1:] {
		elapsed := candidate.Timestamp - anchor.Timestamp
		distance := Distance(anchor.Location(), candidate.Location())

		if f.IsUnderLimit(Speed(distance, elapsed)) {
			valid = append(valid, candidate)
			anchor = candidate
		}
	}

	return valid
}
