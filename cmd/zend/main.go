package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/sandeepkv93/zend/internal/config"
	"github.com/sandeepkv93/zend/internal/notify"
	"github.com/sandeepkv93/zend/internal/storage"
	"github.com/sandeepkv93/zend/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "zend failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.DefaultConfigPath())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	log, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	kv, closeKV, err := openKV(cfg)
	if err != nil {
		return err
	}
	defer closeKV()

	ctx := context.Background()
	store := storage.NewStore(kv, log)
	store.Load(ctx)

	profile := storage.NewProfile(kv)
	userName, err := profile.Name(ctx)
	if err != nil {
		return fmt.Errorf("read profile name: %w", err)
	}
	quote, err := profile.Quote(ctx)
	if err != nil {
		return fmt.Errorf("read profile quote: %w", err)
	}

	deps := update.Deps{
		Store:          store,
		Profile:        profile,
		Log:            log,
		UserName:       userName,
		Quote:          quote,
		DesktopEnabled: cfg.Notifications.Desktop,
		Sender:         notify.NoopSender{},
	}

	if cfg.Notifications.Enabled {
		engine := notify.NewEngine(cfg.Notifications.Buffer)
		engine.Start()
		defer engine.Stop()

		deps.Scheduler = notify.NewScheduler(engine, notify.Settings{Sound: cfg.Notifications.Sound}, log)
		deps.Alerts = engine.C()
		if cfg.Notifications.Desktop {
			deps.Sender = notify.ExecSender{}
		}

		// alerts for reminders still pending from an earlier session
		now := time.Now()
		for _, item := range store.List() {
			if !item.IsCompleted && item.DueAt.After(now) {
				deps.Scheduler.Schedule(ctx, item, now)
			}
		}
	}

	program := tea.NewProgram(update.NewModel(deps))
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}

func openLogger(cfg *config.Config) (zerolog.Logger, func(), error) {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("parse log level: %w", err)
	}

	path := filepath.Join(cfg.DataDir, "zend.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}

	log := zerolog.New(f).Level(level).With().Timestamp().Logger()
	return log, func() { f.Close() }, nil
}

func openKV(cfg *config.Config) (storage.KV, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		kv, err := storage.OpenSQLiteKV(filepath.Join(cfg.DataDir, "zend.db"))
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite backend: %w", err)
		}
		return kv, func() { kv.Close() }, nil
	default:
		kv, err := storage.NewFileKV(cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("open file backend: %w", err)
		}
		return kv, func() {}, nil
	}
}
