package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/planbiir/tracefilter/internal/config"
	"github.com/planbiir/tracefilter/log"
	"github.com/planbiir/tracefilter/version"
)

const envPrefix = "tracefilter"

func newRootCmd() *cobra.Command {
	args := config.NewCliArgs()
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "tracefilter",
		Short: "Drop GPS samples that imply an implausible travel speed",
		Long: `tracefilter reads a latitude,longitude,timestamp trace, keeps the first
sample and every later sample reachable from the last kept one without
exceeding --max-speed, and writes the result.`,
		Version:       version.FullVersion,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			initConfig(cmd, cfgFile)
			logger, err := setupLogger(args)
			if err != nil {
				return err
			}
			cmd.SetContext(log.AddToContext(cmd.Context(), logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runClean(cmd.Context(), cmd.OutOrStdout(), args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/tracefilter.yml or ./tracefilter.yml)")
	rootCmd.PersistentFlags().Float64Var(&args.MaxSpeedKmh,
		"max-speed", config.DefaultMaxSpeedKmh,
		"maximum plausible speed between accepted samples in km/h")
	rootCmd.PersistentFlags().BoolVar(&args.DryRun,
		"dry-run", false,
		"show statistics without writing output files")
	rootCmd.PersistentFlags().BoolVar(&args.ShowStats,
		"stats", false,
		"show detailed statistics")
	rootCmd.PersistentFlags().BoolVar(&args.StatsJSON,
		"stats-json", false,
		"output statistics as JSON")
	rootCmd.PersistentFlags().StringVar(&args.LogLevel,
		"log-level", "info",
		"controls the log level (debug, info, warn, error, fatal)")
	rootCmd.PersistentFlags().StringVar(&args.LogFormat,
		"log-format", "text",
		"controls the log output format (json, text)")
	rootCmd.PersistentFlags().StringVar(&args.LogFile,
		"log-file", "",
		"if present logs are written to this file, otherwise to stderr")
	rootCmd.PersistentFlags().StringVar(&args.LogConfig,
		"log-config", "",
		"yaml file with a zap logger configuration (overrides the other log flags)")

	rootCmd.Flags().StringVarP(&args.Input,
		"input", "i", config.DefaultInput,
		"input trace (csv or gpx)")
	rootCmd.Flags().StringVarP(&args.Output,
		"output", "o", config.DefaultOutput,
		"output trace (csv, gpx or geojson)")

	rootCmd.AddCommand(newBatchCmd(args))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.FullVersion)
		},
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig(cmd *cobra.Command, cfgFile string) {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName("tracefilter")
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", v.ConfigFileUsed())
	} else {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Could not read config file: %v\n", err)
		}
	}

	bindFlags(cmd, v)
}

// Bind each cobra flag to its associated viper configuration
// (config file and environment variable)
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// Environment variables can't have dashes in them, so bind them to their
		// equivalent keys with underscores, e.g. --max-speed to TRACEFILTER_MAX_SPEED
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name,
				fmt.Sprintf("%s_%s", strings.ToUpper(envPrefix), envVarSuffix)); err != nil {
				fmt.Fprintf(os.Stderr, "Could not bind env var %s: %v", f.Name, err)
			}
		}
		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				fmt.Fprintf(os.Stderr, "Could set flag value for %s: %v", f.Name, err)
			}
		}
	})
}
