package main

import (
	"os"

	"github.com/woozymasta/exceljson/internal/config"
	"github.com/woozymasta/exceljson/internal/logger"
	"github.com/woozymasta/exceljson/internal/processor"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config" env:"CONFIG_FILE" description:"Path to configuration file (built-in schema if empty)"`
	Input      string `short:"i" long:"in"     description:"Input GeoJSON file"`
	Output     string `short:"o" long:"out"    description:"Output file path. Defaults to the input path with a .xlsx extension"`
	Sheet      string `short:"s" long:"sheet"  description:"Sheet name to write. Defaults to Sheet1"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	opts.apply(cfg)

	p, err := processor.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ui := &processor.PathPrompter{Source: opts.Input, Destination: opts.Output}
	if err := p.Run(processor.ToSpreadsheet, ui); err != nil {
		os.Exit(1)
	}
}

// apply overrides configuration values with the flags that were given.
func (o *Options) apply(cfg *config.Config) {
	if o.Sheet != "" {
		cfg.Sheet = o.Sheet
	}
}
