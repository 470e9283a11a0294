package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/groupchat-wrapped/internal/analyzer"
	"github.com/groupchat-wrapped/internal/config"
	"github.com/groupchat-wrapped/internal/ingest"
	"github.com/groupchat-wrapped/internal/llm"
	"github.com/groupchat-wrapped/internal/models"
	"github.com/groupchat-wrapped/internal/pipeline"
	"github.com/groupchat-wrapped/internal/render"
	"github.com/groupchat-wrapped/internal/scheduler"
	"github.com/groupchat-wrapped/internal/server"
	"github.com/groupchat-wrapped/internal/telegram"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Parse command-line flags
	output := flag.String("o", "", "Output HTML file (default WRAPPED_OUTPUT)")
	jsonPath := flag.String("json", "", "Also write the analysis as JSON to this file, - for stdout")
	serveAddr := flag.String("serve", "", "Serve a preview on this address, e.g. :8080 (default WRAPPED_SERVE_ADDR)")
	publish := flag.Bool("publish", false, "Send the wrapped to TELEGRAM_CHAT_ID")
	schedule := flag.String("schedule", "", "Rerun on this cron schedule, e.g. \"0 9 31 12 *\" (default WRAPPED_SCHEDULE)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: wrapped [flags] <export file or directory>\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	exportPath := flag.Arg(0)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	applyFlags(cfg, *output, *serveAddr, *schedule)
	if err := config.Validate(cfg); err != nil {
		log.Fatal().Err(err).Msg("Invalid flags")
	}

	// Setup logger
	logger := setupLogger(cfg.LogLevel, cfg.Environment)
	logger.Info().
		Str("environment", cfg.Environment).
		Str("timezone", cfg.Timezone).
		Str("export", exportPath).
		Bool("narration_enabled", cfg.NarrationEnabled()).
		Bool("publish", *publish).
		Msg("Starting Group Chat Wrapped")

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load timezone")
	}

	renderer, err := render.New(logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create renderer")
	}

	// Initialize narrator (optional)
	var narrator pipeline.Narrator
	if cfg.NarrationEnabled() {
		logger.Info().Str("model", cfg.GeminiModel).Msg("Initializing Gemini narrator...")
		llmClient := llm.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTimeout, logger)
		defer func() {
			if err := llmClient.Close(); err != nil {
				logger.Error().Err(err).Msg("Failed to close LLM client")
			}
		}()
		narrator = llmClient
	}

	// Initialize publisher (optional)
	var publisher pipeline.Publisher
	if *publish {
		if !cfg.PublishEnabled() {
			logger.Fatal().Msg("-publish needs TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID")
		}
		logger.Info().Msg("Initializing Telegram publisher...")
		publisher, err = telegram.NewPublisher(cfg.TelegramToken, cfg.TelegramChatID, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to create publisher")
		}
	}

	p := pipeline.New(loc, renderer, narrator, logger)
	store := server.NewStore()

	job := func(ctx context.Context) error {
		out, err := p.Run(ctx, exportPath)
		if err != nil {
			return err
		}
		if err := writeOutputs(out, cfg.OutputPath, *jsonPath); err != nil {
			return err
		}
		store.Set(out.Result, out.HTML)

		logger.Info().
			Str("output", cfg.OutputPath).
			Int("categories", len(out.Result.Categories)).
			Msg("Wrapped written")

		if publisher != nil {
			if err := publisher.Publish(ctx, out.Result, out.HTML); err != nil {
				logger.Error().Err(err).Msg("Failed to publish wrapped")
			}
		}
		return nil
	}

	// Create context that is cancelled on termination signals
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// First run; a broken export stops here
	if err := job(ctx); err != nil {
		if isInputError(err) {
			logger.Fatal().Err(err).Str("export", exportPath).Msg("Nothing to analyze")
		}
		logger.Fatal().Err(err).Msg("Failed to generate wrapped")
	}

	if cfg.ServeAddr == "" && cfg.Schedule == "" {
		return
	}

	var wg sync.WaitGroup
	errChan := make(chan error, 2)

	if cfg.ServeAddr != "" {
		srv := server.New(store, logger)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := srv.Start(ctx, cfg.ServeAddr); err != nil {
				errChan <- err
			}
		}()
	}

	if cfg.Schedule != "" {
		sched, err := scheduler.NewScheduler(cfg.Schedule, cfg.Timezone, job, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to create scheduler")
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				errChan <- err
			}
		}()
	}

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	logger.Info().Msg("Running. Press Ctrl+C to stop.")

	select {
	case sig := <-sigChan:
		logger.Info().Str("signal", sig.String()).Msg("Received termination signal")
	case err := <-errChan:
		logger.Error().Err(err).Msg("Stopped with error")
	}

	// Graceful shutdown
	logger.Info().Msg("Initiating graceful shutdown...")
	cancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-time.After(10 * time.Second):
		logger.Warn().Msg("Shutdown timeout exceeded")
	case <-done:
		logger.Info().Msg("Graceful shutdown completed")
	}
}

// applyFlags lets command-line flags override the environment
func applyFlags(cfg *models.Config, output, serveAddr, schedule string) {
	if output != "" {
		cfg.OutputPath = output
	}
	if serveAddr != "" {
		cfg.ServeAddr = serveAddr
	}
	if schedule != "" {
		cfg.Schedule = schedule
	}
}

// writeOutputs writes the slides and, when asked, the JSON result
func writeOutputs(out *pipeline.Output, htmlPath, jsonPath string) error {
	if err := os.WriteFile(htmlPath, out.HTML, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", htmlPath, err)
	}

	switch jsonPath {
	case "":
		return nil
	case "-":
		return render.RenderJSON(os.Stdout, out.Result)
	}

	f, err := os.Create(jsonPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", jsonPath, err)
	}
	defer f.Close()

	return render.RenderJSON(f, out.Result)
}

// isInputError reports whether err comes from an unusable export
func isInputError(err error) bool {
	return errors.Is(err, ingest.ErrNoFiles) ||
		errors.Is(err, ingest.ErrNoMessages) ||
		errors.Is(err, analyzer.ErrNoMessages)
}

// setupLogger configures and returns a zerolog logger
func setupLogger(level, environment string) zerolog.Logger {
	// Parse log level
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	// Configure output format. Logs go to stderr so -json - stays clean.
	var logger zerolog.Logger
	if environment == "development" {
		// Pretty console output for development
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Caller().Logger()
	} else {
		// JSON output for production
		logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	return logger
}
