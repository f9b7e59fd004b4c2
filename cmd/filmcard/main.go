package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/filmcard/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	locator := flag.String("url", "", "film URL to show (optional, defaults to the last film shown)")
	printMode := flag.Bool("print", false, "fetch once and print the film card instead of starting the TUI")
	format := flag.String("format", "yaml", "print format: yaml or json")
	logLevel := flag.String("log", "", "log level override: debug, info, warn, error")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		Locator:    *locator,
		Print:      *printMode,
		Format:     *format,
		LogLevel:   *logLevel,
		Stdout:     os.Stdout,
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "filmcard: %v\n", err)
		return 1
	}
	return 0
}
