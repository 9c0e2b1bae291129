package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/woozymasta/exceljson/internal/config"
	"github.com/woozymasta/exceljson/internal/logger"
	"github.com/woozymasta/exceljson/internal/processor"
	"github.com/woozymasta/exceljson/internal/server"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile  string `short:"c" long:"config"     env:"CONFIG_FILE"    description:"Path to configuration file (built-in schema if empty)"`
	Addr        string `short:"a" long:"addr"       env:"LISTEN_ADDRESS" description:"Address to listen on"          default:"127.0.0.1"`
	Port        int    `short:"p" long:"port"       env:"LISTEN_PORT"    description:"Port to listen on"             default:"8080"`
	MaxUploadMB int    `short:"m" long:"max-upload" env:"MAX_UPLOAD_MB"  description:"Upload size limit in megabytes"`
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

	// Setup Logging
	opts.Logger.Setup()

	// Load Config
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if opts.MaxUploadMB > 0 {
		cfg.MaxUploadMB = opts.MaxUploadMB
	}

	p, err := processor.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	srvCtx := server.NewServerContext(p, cfg.MaxUploadMB)

	listenAddr := fmt.Sprintf("%s:%d", opts.Addr, opts.Port)
	log.Info().
		Str("addr", listenAddr).
		Str("format", cfg.Format).
		Msg("Web server started")

	if err := http.ListenAndServe(listenAddr, srvCtx.Routes()); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
