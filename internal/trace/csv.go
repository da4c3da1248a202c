package trace

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const numColumns = 3

var errColumnCount = errors.New("expected 3 columns: latitude, longitude, timestamp")

// Load reads a headerless latitude,longitude,timestamp csv file and returns
// its samples sorted by timestamp
func Load(filename string) (Trace, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return LoadReader(file)
}

// LoadReader parses csv records from r. Any malformed record fails the whole
// load.
func LoadReader(r io.Reader) (Trace, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var samples Trace
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				return nil, &ParseError{Record: csvErr.StartLine, Err: err}
			}
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		line, _ := reader.FieldPos(0)

		sample, err := parseRecord(record, line)
		if err != nil {
			return nil, err
		}
		samples = append(samples, sample)
	}

	samples.SortByTime()
	return samples, nil
}

func parseRecord(record []string, line int) (Sample, error) {
	if len(record) != numColumns {
		return Sample{}, &ParseError{Record: line, Err: errColumnCount}
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(record[0]), 64)
	if err != nil {
		return Sample{}, &ParseError{Record: line, Column: "latitude", Value: record[0], Err: err}
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
	if err != nil {
		return Sample{}, &ParseError{Record: line, Column: "longitude", Value: record[1], Err: err}
	}
	ts, err := strconv.ParseInt(strings.TrimSpace(record[2]), 10, 64)
	if err != nil {
		return Sample{}, &ParseError{Record: line, Column: "timestamp", Value: record[2], Err: err}
	}

	return Sample{Lat: lat, Lon: lon, Timestamp: ts}, nil
}

// Write saves the trace as csv, creating or truncating the file
func Write(filename string, t Trace) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := WriteToWriter(file, t); err != nil {
		return err
	}
	return file.Close()
}

// WriteToWriter writes one record per sample in trace order.
func WriteToWriter(w io.Writer, t Trace) error {
	writer := csv.NewWriter(w)
	for _, s := range t {
		record := []string{
			strconv.FormatFloat(s.Lat, 'f', -1, 64),
			strconv.FormatFloat(s.Lon, 'f', -1, 64),
			strconv.FormatInt(s.Timestamp, 10),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write csv: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}
