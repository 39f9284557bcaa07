package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/chzyer/readline"

	"traveline/local-app/internal/api"
	"traveline/local-app/internal/cli"
	"traveline/local-app/internal/config"
	"traveline/local-app/internal/event"
	"traveline/local-app/internal/log"
	"traveline/local-app/internal/session"
	"traveline/local-app/internal/storage"
	"traveline/local-app/internal/ui"
)

// bootstrap wires config, logger, storage, session, REST client and CLI,
// runs any script files and then the interactive loop.
func bootstrap(configFlag string, scripts []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfgPath := config.ResolvePath(configFlag)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger, err := log.NewLogger(cfg, level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		if err := logger.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to close logger: %v\n", err)
		}
	}()

	logger.Info(ctx, "Application started", log.Fields{"config": cfgPath, "api": cfg.APIBaseURL, "storage": cfg.StorageType})

	// Initialize storage
	store, err := storage.New(cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize storage", log.Fields{"error": err})
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error(context.Background(), "Failed to close storage", log.Fields{"error": err})
		}
	}()

	// Initialize session from the stored credentials
	events := event.NewEventManager(logger)
	sessionManager := session.NewManager(storage.NewSessionStore(store), events, logger)
	if err := sessionManager.Initialize(ctx); err != nil {
		logger.Error(ctx, "Failed to restore session", log.Fields{"error": err})
		return fmt.Errorf("failed to restore session: %w", err)
	}

	client, err := api.New(cfg.APIBaseURL, sessionManager,
		api.WithTimeout(time.Duration(cfg.RequestTimeoutSeconds)*time.Second),
		api.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize API client: %w", err)
	}

	if dir := filepath.Dir(cfg.HistoryFile); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Warn(ctx, "Failed to create history directory", log.Fields{"error": err})
		}
	}

	printer := ui.New(os.Stdout, !cfg.NoColor)
	deps := cli.Deps{
		Session: sessionManager,
		Events:  events,
		Client:  client,
		UI:      printer,
		Logger:  logger,
	}

	// Piped input is read line by line without readline.
	var input cli.LineReader = printer
	if printer.Interactive() {
		rl, err := readline.NewEx(&readline.Config{
			Prompt:          "> ",
			HistoryFile:     cfg.HistoryFile,
			InterruptPrompt: "^C",
			EOFPrompt:       "exit",
		})
		if err != nil {
			return fmt.Errorf("failed to initialize readline: %w", err)
		}
		defer rl.Close()

		// Readline blocks on input; closing it ends the loop on SIGTERM.
		go func() {
			<-ctx.Done()
			rl.Close()
		}()
		deps.Prompter = readlinePrompter{rl: rl}
		input = rl
	}

	app := cli.New(deps)
	if rl, ok := input.(*readline.Instance); ok {
		rl.Config.AutoComplete = app.Completer()
	}

	if sessionManager.IsAuthenticated() {
		printer.Info(fmt.Sprintf("Logged in as %s.", sessionManager.Username()))
	}

	for _, script := range scripts {
		err := app.ExecuteScript(ctx, script)
		if errors.Is(err, cli.ErrExit) {
			return nil
		}
		if err != nil {
			logger.Error(ctx, "Script failed", log.Fields{"script": script, "error": err})
			printer.Error(fmt.Sprintf("Error executing script %s: %v", script, err))
		}
	}

	if err := app.Run(ctx, input); err != nil {
		logger.Error(ctx, "CLI error", log.Fields{"error": err})
		return err
	}

	logger.Info(context.Background(), "Application shutting down", nil)
	return nil
}

// readlinePrompter asks questions on the readline instance so prompts share
// the terminal with the command loop.
type readlinePrompter struct {
	rl *readline.Instance
}

func (p readlinePrompter) ReadLine(prompt string) (string, error) {
	p.rl.SetPrompt(prompt)
	return p.rl.Readline()
}

func (p readlinePrompter) ReadPassword(prompt string) (string, error) {
	pw, err := p.rl.ReadPassword(prompt)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}
