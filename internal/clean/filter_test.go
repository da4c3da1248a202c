package clean

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planbiir/tracefilter/internal/trace"
)

var validTrace = trace.Trace{
	{Lat: 51.49871493, Lon: -0.1601177991, Timestamp: 1326378718},
	{Lat: 51.49840586, Lon: -0.1604068824, Timestamp: 1326378723},
	{Lat: 51.49820502, Lon: -0.1606269428, Timestamp: 1326378728},
	{Lat: 51.49804155, Lon: -0.1605367034, Timestamp: 1326378733},
	{Lat: 51.49769948, Lon: -0.1604581217, Timestamp: 1326378738},
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

func TestNewRejectsShortTraces(t *testing.T) {
	tests := []struct {
		name string
		tr   trace.Trace
	}{
		{"nil", nil},
		{"empty", trace.Trace{}},
		{"single sample", validTrace[:1]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New(tt.tr, 200)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, f)
		})
	}
}

func TestNewStoresThresholdInKmPerSec(t *testing.T) {
	f, err := New(validTrace, 200)
	require.NoError(t, err)
	assert.Equal(t, 200.0/3600, f.Threshold())
}

func TestConvertToKmPerSec(t *testing.T) {
	assert.Equal(t, 0.0556, round4(ConvertToKmPerSec(200)))
	assert.Equal(t, 1.0, ConvertToKmPerSec(3600))
	assert.Equal(t, 0.0, ConvertToKmPerSec(0))
	assert.Equal(t, -0.5, ConvertToKmPerSec(-1800))
}

func TestDistance(t *testing.T) {
	start := Location{Lat: 51.49840586, Lon: -0.1604068824}
	end := Location{Lat: 51.49820502, Lon: -0.1606269428}
	assert.Equal(t, 0.0270, round4(Distance(start, end)))

	// one degree of latitude
	d := Distance(Location{Lat: 51.49769948, Lon: -0.1604581217}, Location{Lat: 52.49769948, Lon: -0.1604581217})
	assert.InDelta(t, 111.195, d, 0.001)
}

func TestDistanceZeroAndSymmetric(t *testing.T) {
	locations := []Location{
		{Lat: 0, Lon: 0},
		{Lat: 51.49871493, Lon: -0.1601177991},
		{Lat: -33.8688, Lon: 151.2093},
		{Lat: 89.9, Lon: -179.9},
		{Lat: -45, Lon: 179.99},
	}
	for _, a := range locations {
		assert.Zero(t, Distance(a, a))
		for _, b := range locations {
			assert.InDelta(t, Distance(a, b), Distance(b, a), 1e-12)
		}
	}
}

func TestSpeed(t *testing.T) {
	assert.Equal(t, 4.0, Speed(40, 10))
	assert.Equal(t, 0.0, Speed(0, 5))
	assert.True(t, math.IsInf(Speed(1, 0), 1))
	assert.True(t, math.IsNaN(Speed(0, 0)))
}

func TestIsUnderLimit(t *testing.T) {
	f, err := New(validTrace, 200)
	require.NoError(t, err)

	tests := []struct {
		name  string
		speed float64
		want  bool
	}{
		{"well below", 0.0333, true},
		{"well above", 0.8888, false},
		{"exactly at limit", 200.0 / 3600, true},
		{"just above limit", math.Nextafter(200.0/3600, 1), false},
		{"standing still", 0, true},
		{"infinite", math.Inf(1), false},
		{"not a number", math.NaN(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.IsUnderLimit(tt.speed))
		})
	}
}

func TestValidPointsDropsImplausibleJump(t *testing.T) {
	withJump := append(append(trace.Trace{}, validTrace...),
		trace.Sample{Lat: 52.49769948, Lon: -0.1604581217, Timestamp: 1326378739})

	f, err := New(withJump, 200)
	require.NoError(t, err)
	assert.Equal(t, validTrace, f.ValidPoints())
}

func TestValidPointsKeepsValidTrace(t *testing.T) {
	f, err := New(validTrace, 200)
	require.NoError(t, err)
	assert.Equal(t, validTrace, f.ValidPoints())
}

func TestValidPointsTrustsFirstSample(t *testing.T) {
	// The first sample is far from everything else, so nothing can follow it.
	tr := trace.Trace{
		{Lat: 10, Lon: 10, Timestamp: 0},
		{Lat: 0, Lon: 0, Timestamp: 10},
		{Lat: 0.0001, Lon: 0, Timestamp: 20},
	}
	f, err := New(tr, 200)
	require.NoError(t, err)
	assert.Equal(t, tr[:1], f.ValidPoints())
}

func TestValidPointsComparesAgainstLastAccepted(t *testing.T) {
	tr := trace.Trace{
		{Lat: 0, Lon: 0, Timestamp: 0},
		{Lat: 1, Lon: 0, Timestamp: 10},      // ~111 km in 10 s
		{Lat: 1.0001, Lon: 0, Timestamp: 20}, // close to the rejected sample only
		{Lat: 0.0001, Lon: 0, Timestamp: 30},
	}
	f, err := New(tr, 200)
	require.NoError(t, err)
	assert.Equal(t, trace.Trace{tr[0], tr[3]}, f.ValidPoints())
}

func TestValidPointsRejectsZeroElapsed(t *testing.T) {
	tr := trace.Trace{
		{Lat: 0, Lon: 0, Timestamp: 0},
		{Lat: 0.0001, Lon: 0, Timestamp: 0}, // +Inf speed
		{Lat: 0, Lon: 0, Timestamp: 0},      // NaN speed
		{Lat: 0.0002, Lon: 0, Timestamp: 10},
	}
	f, err := New(tr, 200)
	require.NoError(t, err)
	assert.Equal(t, trace.Trace{tr[0], tr[3]}, f.ValidPoints())
}

func TestValidPointsDoesNotModifyInput(t *testing.T) {
	tr := append(trace.Trace{}, validTrace...)
	tr = append(tr, trace.Sample{Lat: 60, Lon: 0, Timestamp: 1326378739})
	snapshot := append(trace.Trace{}, tr...)

	f, err := New(tr, 200)
	require.NoError(t, err)
	got := f.ValidPoints()
	got[0].Lat = 0

	assert.Equal(t, snapshot, tr)
}

func randomTrace(rng *rand.Rand, n int) trace.Trace {
	tr := make(trace.Trace, n)
	lat, lon := 46.0, 7.0
	ts := int64(1700000000)
	for i := range tr {
		ts += 1 + rng.Int63n(10)
		if rng.Intn(10) == 0 {
			// GPS jump
			tr[i] = trace.Sample{Lat: lat + rng.Float64() - 0.5, Lon: lon + rng.Float64() - 0.5, Timestamp: ts}
			continue
		}
		lat += (rng.Float64() - 0.5) * 0.0002
		lon += (rng.Float64() - 0.5) * 0.0002
		tr[i] = trace.Sample{Lat: lat, Lon: lon, Timestamp: ts}
	}
	return tr
}

func TestValidPointsIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		tr := randomTrace(rng, 200)

		f, err := New(tr, 200)
		require.NoError(t, err)
		first := f.ValidPoints()
		require.NotEmpty(t, first)
		assert.Equal(t, tr[0], first[0])

		if len(first) < 2 {
			continue
		}
		again, err := New(first, 200)
		require.NoError(t, err)
		assert.Equal(t, first, again.ValidPoints())
	}
}
