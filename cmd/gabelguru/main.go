package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/alexanderramin/gabelguru/internal/api"
	"github.com/alexanderramin/gabelguru/internal/auth"
	"github.com/alexanderramin/gabelguru/internal/cli"
	"github.com/alexanderramin/gabelguru/internal/config"
	"github.com/alexanderramin/gabelguru/internal/cooking"
	"github.com/alexanderramin/gabelguru/internal/db"
	"github.com/alexanderramin/gabelguru/internal/logging"
	"github.com/alexanderramin/gabelguru/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fehler: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	dir, err := config.Dir()
	if err != nil {
		return err
	}
	cfg, err := config.Load(dir, os.Getenv("GABELGURU_CONFIG"))
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("configuring logging: %w", err)
	}
	defer func() { _ = log.Sync() }()

	tokens := auth.NewStore(cfg.Auth.TokenFile, cfg.Auth.Token)
	if _, err := tokens.Load(); err != nil && !errors.Is(err, auth.ErrNoToken) {
		log.Warn("token unreadable", zap.String("path", tokens.Path()), zap.Error(err))
	}

	var observer api.Observer = api.NoopObserver{}
	if cfg.API.LogCalls {
		observer = api.NewLogObserver(log.Named("api"))
	}
	client, err := api.New(api.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: time.Duration(cfg.API.TimeoutMs) * time.Millisecond,
	}, tokens, observer)
	if err != nil {
		return fmt.Errorf("configuring api client: %w", err)
	}
	defer client.CloseIdleConnections()

	// The offline cache is optional; without it reads fail when the
	// backend is unreachable.
	var cache *service.Cache
	if cfg.Cache.Enabled {
		conn, err := db.OpenDB(cfg.Cache.Path)
		if err != nil {
			log.Warn("offline cache disabled", zap.String("path", cfg.Cache.Path), zap.Error(err))
		} else {
			defer conn.Close()
			cache = service.NewCache(conn)
		}
	}

	uc := service.NewLogUseCaseObserver(log.Named("service"))
	app := &cli.App{
		Weeks:     service.NewWeekPlanService(client, cache, uc),
		Menus:     service.NewMenuService(client, uc),
		Lists:     service.NewListService(client, cache, uc),
		Planning:  service.NewPlanningService(client, uc),
		Recipes:   service.NewRecipeService(client, cache, uc),
		Assistant: service.NewAssistantService(client, uc),
		Tokens:    tokens,
		Speaker:   cooking.NewSpeaker(cfg.Audio.Player, log.Named("audio")),
		Config:    cfg,
		Log:       log,
	}

	// Detect interactive terminal for the TUI entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

