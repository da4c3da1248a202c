package config

const (
	DefaultInput       = "data_points.csv"
	DefaultOutput      = "valid_points.csv"
	DefaultMaxSpeedKmh = 200.0
)

type CliArgs struct {
	Input       string  // trace to read (csv or gpx)
	Output      string  // where to write the filtered trace (csv, gpx or geojson)
	MaxSpeedKmh float64 // speed threshold between accepted points (km/h)
	DryRun      bool    // compute statistics without writing output
	ShowStats   bool    // print statistics after cleaning
	StatsJSON   bool    // print statistics as JSON
	LogLevel    string  // sets the log level (zap log level values)
	LogFormat   string  // text vs json
	LogFile     string  // log file to write to
	LogConfig   string  // optional yaml file with a full zap configuration
}

// NewCliArgs returns a fresh set of arguments holding the defaults.
func NewCliArgs() *CliArgs {
	return &CliArgs{
		Input:       DefaultInput,
		Output:      DefaultOutput,
		MaxSpeedKmh: DefaultMaxSpeedKmh,
		LogLevel:    "info",
		LogFormat:   "text",
	}
}
