package trace

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	gpxVersion   = "1.1"
	gpxCreator   = "tracefilter"
	gpxNamespace = "http://www.topografix.com/GPX/1/1"
)

var errMissingTime = errors.New("track point has no time")

// Coordinates are kept as text so a bad value becomes a *ParseError instead
// of an opaque decoder failure.
type gpxPoint struct {
	Lat  string `xml:"lat,attr"`
	Lon  string `xml:"lon,attr"`
	Time string `xml:"time,omitempty"`
}

type gpxSegment struct {
	Points []gpxPoint `xml:"trkpt"`
}

type gpxTrack struct {
	Segments []gpxSegment `xml:"trkseg"`
}

type gpxDoc struct {
	XMLName xml.Name   `xml:"gpx"`
	Version string     `xml:"version,attr,omitempty"`
	Creator string     `xml:"creator,attr,omitempty"`
	XMLNS   string     `xml:"xmlns,attr,omitempty"`
	Tracks  []gpxTrack `xml:"trk"`
}

// LoadGPX reads a GPX file and flattens all track points into a trace
func LoadGPX(filename string) (Trace, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return LoadGPXReader(file)
}

// LoadGPXReader parses GPX from r. Tracks and segments are concatenated and
// the result is sorted by timestamp like a csv load.
func LoadGPXReader(r io.Reader) (Trace, error) {
	var doc gpxDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse GPX: %w", err)
	}

	var samples Trace
	n := 0
	for _, track := range doc.Tracks {
		for _, segment := range track.Segments {
			for _, pt := range segment.Points {
				n++
				sample, err := parseTrackPoint(pt, n)
				if err != nil {
					return nil, err
				}
				samples = append(samples, sample)
			}
		}
	}

	samples.SortByTime()
	return samples, nil
}

func parseTrackPoint(pt gpxPoint, n int) (Sample, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(pt.Lat), 64)
	if err != nil {
		return Sample{}, &ParseError{Record: n, Column: "latitude", Value: pt.Lat, Err: err}
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(pt.Lon), 64)
	if err != nil {
		return Sample{}, &ParseError{Record: n, Column: "longitude", Value: pt.Lon, Err: err}
	}

	raw := strings.TrimSpace(pt.Time)
	if raw == "" {
		return Sample{}, &ParseError{Record: n, Column: "timestamp", Err: errMissingTime}
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return Sample{}, &ParseError{Record: n, Column: "timestamp", Value: raw, Err: err}
	}

	return Sample{Lat: lat, Lon: lon, Timestamp: ts.Unix()}, nil
}

// WriteGPX saves the trace as a single-track GPX 1.1 file, creating or
// truncating it
func WriteGPX(filename string, t Trace) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := WriteGPXToWriter(file, t); err != nil {
		return err
	}
	return file.Close()
}

// WriteGPXToWriter writes the trace as one trk with one trkseg, in order.
// Times are RFC 3339 in UTC.
func WriteGPXToWriter(w io.Writer, t Trace) error {
	points := make([]gpxPoint, len(t))
	for i, s := range t {
		points[i] = gpxPoint{
			Lat:  strconv.FormatFloat(s.Lat, 'f', -1, 64),
			Lon:  strconv.FormatFloat(s.Lon, 'f', -1, 64),
			Time: time.Unix(s.Timestamp, 0).UTC().Format(time.RFC3339),
		}
	}
	doc := gpxDoc{
		Version: gpxVersion,
		Creator: gpxCreator,
		XMLNS:   gpxNamespace,
		Tracks:  []gpxTrack{{Segments: []gpxSegment{{Points: points}}}},
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("failed to write GPX: %w", err)
	}
	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode GPX: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("failed to write GPX: %w", err)
	}
	return nil
}
