package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/five82/filmcard/internal/backend"
	"github.com/five82/filmcard/internal/config"
	"github.com/five82/filmcard/internal/fetch"
	"github.com/five82/filmcard/internal/film"
	"github.com/five82/filmcard/internal/logging"
	"github.com/five82/filmcard/internal/prefs"
	"github.com/five82/filmcard/internal/ui"
)

// Options configure the Filmcard application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/filmcard/prefs.toml
	Locator    string // empty falls back to the last film shown, then to none
	Print      bool   // fetch once and print instead of starting the TUI
	Format     string // print format: yaml (default) or json
	LogLevel   string // overrides the configured level when set

	Stdout io.Writer
}

// Run boots Filmcard until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.LogLevel = level
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	client, err := backend.NewClient(cfg.APIURL,
		backend.WithEndpoint(cfg.Endpoint),
		backend.WithTimeout(cfg.RequestTimeout),
	)
	if err != nil {
		return fmt.Errorf("init backend client: %w", err)
	}

	locator := resolveLocator(opts.Locator, userPrefs.LastLocator)

	logger, closer, err := logging.Open(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closer.Close()

	if opts.Print {
		// The returned error is the only stderr report; details go to the log.
		controller := fetch.NewController(client, fetch.Options{Logger: logger})
		return printFilm(ctx, controller, locator, opts.Format, opts.Stdout)
	}

	logger.Info("filmcard starting",
		"endpoint", client.Endpoint(),
		"locator", describe(locator),
	)
	controller := fetch.NewController(client, fetch.Options{
		Logger: logger,
		OnChange: func(s fetch.State) {
			logger.Debug("fetch state changed", "state", s.String())
		},
	})

	return ui.Run(ui.Options{
		Context:    ctx,
		Controller: controller,
		Locator:    locator,
		ThemeName:  userPrefs.Theme,
		PrefsPath:  opts.PrefsPath,
		LogPath:    cfg.LogPath,
	})
}

func printFilm(ctx context.Context, controller *fetch.Controller, locator *string, format string, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}
	if !supportedFormat(format) {
		return fmt.Errorf("unsupported format %q", format)
	}
	st := controller.Fetch(ctx, fetch.Input{Locator: locator})
	if st.Phase != fetch.Ready {
		return errors.New(st.Message)
	}
	return writeView(w, st.View, format)
}

func writeView(w io.Writer, view film.ViewModel, format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(view); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

func supportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "yaml", "yml", "json":
		return true
	default:
		return false
	}
}

func resolveLocator(explicit, remembered string) *string {
	for _, v := range []string{explicit, remembered} {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return &trimmed
		}
	}
	return nil
}

func describe(locator *string) slog.Value {
	if locator == nil {
		return slog.StringValue("<absent>")
	}
	return slog.StringValue(*locator)
}
