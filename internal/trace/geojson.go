package trace

import (
	"fmt"
	"os"

	"github.com/paulmach/orb/geojson"
)

// EncodeGeoJSON renders the trace as a FeatureCollection holding one
// LineString feature. Sample timestamps go into the "timestamps" property.
func EncodeGeoJSON(t Trace) ([]byte, error) {
	f := geojson.NewFeature(t.LineString())
	f.Properties["timestamps"] = t.Timestamps()

	fc := geojson.NewFeatureCollection()
	fc.Append(f)

	data, err := fc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to encode GeoJSON: %w", err)
	}
	return data, nil
}

func WriteGeoJSON(filename string, t Trace) error {
	data, err := EncodeGeoJSON(t)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
