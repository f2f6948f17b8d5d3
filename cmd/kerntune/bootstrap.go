package main

import (
	"github.com/spf13/viper"

	"github.com/jamesainslie/kerntune/pkg/kerntune/logging"
)

// buildLoggingConfig assembles the logging configuration from viper
// settings and the verbose/quiet flags.
func buildLoggingConfig(verbose, quiet bool) logging.Config {
	cfg := logging.Config{
		Level:      viper.GetString("logging.level"),
		Path:       viper.GetString("logging.path"),
		Components: viper.GetStringMapString("logging.components"),
	}

	if verbose {
		cfg.Level = "debug"
		if !quiet {
			cfg.ConsoleLevel = "debug"
		}
	}

	return cfg
}

// initLogging initializes the file-backed logging system. Failures are
// non-fatal; loggers stay on io.Discard and the CLI keeps working.
func initLogging() {
	cfg := buildLoggingConfig(getVerbose(), getQuiet())
	if err := logging.Init(cfg); err != nil {
		printVerbose("Logging disabled: %v", err)
	}
}
