package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/arcmail/arctui/internal/archive"
	"github.com/arcmail/arctui/internal/config"
	"github.com/arcmail/arctui/internal/db"
	"github.com/arcmail/arctui/internal/services"
	"github.com/arcmail/arctui/internal/tui"
	"github.com/arcmail/arctui/internal/version"
)

func main() {
	var (
		configPath  = flag.String("config", "", "path to the config file")
		server      = flag.String("server", "", "archive server base URL (overrides config)")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println(version.GetDetailedVersionString())
		return
	}

	path := *configPath
	if path == "" {
		path = os.Getenv("ARCTUI_CONFIG")
	}
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "arctui: %v\n", err)
			os.Exit(1)
		}
		cfg = config.DefaultConfig()
	}
	if *server != "" {
		cfg.Server = *server
	}
	if token := os.Getenv("ARCTUI_TOKEN"); token != "" {
		cfg.Token = token
	}

	logger, logFile := setupLogger(cfg.LogFile)
	logger.Printf("starting %s", version.GetVersionString())

	ctx := context.Background()
	client := archive.NewClient(ctx, cfg.Server, cfg.Token)

	historyPath := cfg.HistoryPath
	if historyPath == "" {
		historyPath = config.DefaultHistoryPath()
	}
	store, err := db.Open(ctx, historyPath)
	if err != nil {
		// History is a convenience; run without it rather than refuse to start.
		logger.Printf("history store unavailable: %v", err)
		store = nil
	}
	defer func() {
		if store != nil {
			_ = store.Close()
		}
	}()

	theme := loadTheme(cfg, logger)

	app := tui.NewApp(cfg, theme,
		services.NewMessageService(client),
		services.NewTagService(client),
		services.NewAccountService(client),
		services.NewHistoryService(store),
		logger)
	if logFile != nil {
		app.SetLogFile(logFile)
	}

	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "arctui: %v\n", err)
		os.Exit(1)
	}
}

// setupLogger opens the debug log file, or discards logs when none is
// configured. Logging must never write to the terminal the TUI owns.
func setupLogger(path string) (*log.Logger, *os.File) {
	if path == "" {
		return log.New(io.Discard, "", 0), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return log.New(io.Discard, "", 0), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return log.New(io.Discard, "", 0), nil
	}
	return log.New(f, "", log.LstdFlags), f
}

func loadTheme(cfg *config.Config, logger *log.Logger) *config.Theme {
	if cfg.Theme == "" {
		return config.DefaultTheme()
	}
	loader := config.NewThemeLoader(config.DefaultThemesDir())
	theme, err := loader.LoadThemeFromFile(cfg.Theme)
	if err != nil {
		logger.Printf("theme %q not loaded, using defaults: %v", cfg.Theme, err)
		return config.DefaultTheme()
	}
	return theme
}
