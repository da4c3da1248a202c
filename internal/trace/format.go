package trace

import (
	"fmt"
	"path/filepath"
	"strings"
)

type Format string

const (
	FormatCSV     Format = "csv"
	FormatGPX     Format = "gpx"
	FormatGeoJSON Format = "geojson"
)

// FormatFromPath infers the format from the file extension, defaulting to csv.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gpx":
		return FormatGPX
	case ".geojson", ".json":
		return FormatGeoJSON
	default:
		return FormatCSV
	}
}

// ReadFile loads a csv or gpx trace depending on the extension.
func ReadFile(path string) (Trace, error) {
	switch f := FormatFromPath(path); f {
	case FormatGPX:
		return LoadGPX(path)
	case FormatCSV:
		return Load(path)
	default:
		return nil, fmt.Errorf("unsupported input format %q", f)
	}
}

// WriteFile saves a trace as csv, gpx or GeoJSON depending on the extension.
func WriteFile(path string, t Trace) error {
	switch f := FormatFromPath(path); f {
	case FormatGPX:
		return WriteGPX(path, t)
	case FormatGeoJSON:
		return WriteGeoJSON(path, t)
	case FormatCSV:
		return Write(path, t)
	default:
		return fmt.Errorf("unsupported output format %q", f)
	}
}
