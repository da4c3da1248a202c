package trace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"data_points.csv", FormatCSV},
		{"track.GPX", FormatGPX},
		{"out.geojson", FormatGeoJSON},
		{"out.json", FormatGeoJSON},
		{"no_extension", FormatCSV},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFromPath(tt.path))
		})
	}
}

func TestEncodeGeoJSON(t *testing.T) {
	data, err := EncodeGeoJSON(orderedSamples)
	require.NoError(t, err)

	fc, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)

	ls, ok := fc.Features[0].Geometry.(orb.LineString)
	require.True(t, ok)
	require.Len(t, ls, len(orderedSamples))
	assert.Equal(t, orb.Point{-0.1601177991, 51.49871493}, ls[0])

	ts, ok := fc.Features[0].Properties["timestamps"].([]interface{})
	require.True(t, ok)
	assert.Len(t, ts, len(orderedSamples))
}

func TestWriteFileAndReadFile(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "out.csv")
	require.NoError(t, WriteFile(csvPath, orderedSamples))
	got, err := ReadFile(csvPath)
	require.NoError(t, err)
	assert.Equal(t, orderedSamples, got)

	geoPath := filepath.Join(dir, "out.geojson")
	require.NoError(t, WriteFile(geoPath, orderedSamples))
	_, err = os.Stat(geoPath)
	require.NoError(t, err)

	_, err = ReadFile(geoPath)
	assert.Error(t, err)

	gpxPath := filepath.Join(dir, "out.gpx")
	require.NoError(t, WriteFile(gpxPath, orderedSamples))
	got, err = ReadFile(gpxPath)
	require.NoError(t, err)
	assert.Equal(t, orderedSamples, got)
}

func TestTraceBound(t *testing.T) {
	b := orderedSamples.Bound()
	assert.Equal(t, orb.Point{-0.1606269428, 51.49769948}, b.Min)
	assert.Equal(t, orb.Point{-0.1601177991, 51.49871493}, b.Max)
	assert.Equal(t, orb.Bound{}, Trace{}.Bound())
}
