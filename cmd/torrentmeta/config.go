package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/WendelHime/torrentmeta/internal/decoder"
)

type config struct {
	logLevel  slog.Level
	logFormat string
	progress  bool
	decoder   decoder.Config

	command     string
	torrentPath string
}

func parseConfig(args []string, stderr io.Writer) (config, error) {
	cfg := config{decoder: decoder.DefaultConfig()}

	fs := flag.NewFlagSet("torrentmeta", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: torrentmeta [flags] <info|pieces|canonical> <file.torrent>")
		fs.PrintDefaults()
	}

	fs.TextVar(&cfg.logLevel, "log-level", slog.LevelWarn, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.logFormat, "log-format", "text", "Log format (text, json)")
	fs.BoolVar(&cfg.progress, "progress", false, "Show a progress bar while reading the torrent file")
	fs.Int64Var(&cfg.decoder.MaxInputSize, "max-size", cfg.decoder.MaxInputSize, "Maximum torrent file size in bytes, 0 for no limit")
	fs.IntVar(&cfg.decoder.MaxDepth, "max-depth", cfg.decoder.MaxDepth, "Maximum bencode nesting depth, 0 for no limit")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return cfg, fmt.Errorf("expected a command and a torrent file, got %d arguments", fs.NArg())
	}
	cfg.command = fs.Arg(0)
	cfg.torrentPath = fs.Arg(1)

	switch cfg.command {
	case "info", "pieces", "canonical":
	default:
		return cfg, fmt.Errorf("unknown command: %s", cfg.command)
	}

	switch cfg.logFormat {
	case "text", "json":
	default:
		return cfg, fmt.Errorf("invalid log format: %s", cfg.logFormat)
	}

	return cfg, nil
}

func newLogger(cfg config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.logLevel}
	if cfg.logFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
