package trace

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/samber/lo"
)

// Sample is a single GPS observation. Timestamp is in unix seconds.
type Sample struct {
	Lat       float64
	Lon       float64
	Timestamp int64
}

// Location is a latitude/longitude pair in degrees.
type Location struct {
	Lat float64
	Lon float64
}

func (s Sample) Location() Location {
	return Location{Lat: s.Lat, Lon: s.Lon}
}

// Point returns the sample as an orb point (lon, lat order).
func (s Sample) Point() orb.Point {
	return orb.Point{s.Lon, s.Lat}
}

// Trace is an ordered sequence of samples.
type Trace []Sample

// SortByTime orders the trace ascending by timestamp, keeping the file order
// of samples that share a timestamp.
func (t Trace) SortByTime() {
	sort.SliceStable(t, func(i, j int) bool {
		return t[i].Timestamp < t[j].Timestamp
	})
}

func (t Trace) LineString() orb.LineString {
	return lo.Map(t, func(s Sample, _ int) orb.Point { return s.Point() })
}

func (t Trace) Timestamps() []int64 {
	return lo.Map(t, func(s Sample, _ int) int64 { return s.Timestamp })
}

// Bound returns the bounding box of all samples. An empty trace yields the
// zero bound.
func (t Trace) Bound() orb.Bound {
	if len(t) == 0 {
		return orb.Bound{}
	}
	return orb.MultiPoint(t.LineString()).Bound()
}
