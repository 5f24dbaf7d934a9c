package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Makepad-fr/spendo/internal/cli"
	"github.com/Makepad-fr/spendo/internal/config"
	"github.com/Makepad-fr/spendo/internal/log"
	"github.com/Makepad-fr/spendo/internal/ui"
)

func main() {
	cfg := config.Load()

	// Root flags (apply to every subcommand); environment supplies defaults.
	flag.Float64Var(&cfg.Rate, "rate", cfg.Rate, "RON per EUR")
	flag.StringVar(&cfg.SeedFile, "seed", cfg.SeedFile, "JSON file with starting category names")
	flag.StringVar(&cfg.Theme, "theme", cfg.Theme, "classic, neon or mono")
	flag.StringVar(&cfg.LogFile, "log", cfg.LogFile, "write TUI logs to this file")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	forceColor := flag.Bool("color", false, "force colored output")
	noColor := flag.Bool("no-color", false, "disable colored output")
	flag.Usage = func() { cli.PrintHelp(os.Stderr) }
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		ui.Fail(os.Stderr, err.Error())
		os.Exit(2)
	}
	ui.SetColorForcing(*forceColor, *noColor)
	ui.SetTheme(cfg.Theme)

	code := cli.Run(flag.Args(), cli.Options{
		Rate:     cfg.Rate,
		SeedFile: cfg.SeedFile,
		LogFile:  cfg.LogFile,
		LogLevel: log.ParseLevel(cfg.LogLevel),
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
