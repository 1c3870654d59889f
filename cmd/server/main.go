package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/BerylCAtieno/document-validator-api/internal/analyzer"
	"github.com/BerylCAtieno/document-validator-api/internal/config"
	"github.com/BerylCAtieno/document-validator-api/internal/extractor"
	"github.com/BerylCAtieno/document-validator-api/internal/router"
	"github.com/BerylCAtieno/document-validator-api/internal/services"
	"github.com/BerylCAtieno/document-validator-api/internal/utils"
)

var rootCmd = &cobra.Command{
	Use:   "docvalidator",
	Short: "Upload a PDF and check it against free-text rules",
	Long: `docvalidator serves a small web app: upload a PDF, enter validation rules
and receive the language model's verdict or a numbered list of fixes.

Configuration comes from an optional YAML file (--config), a .env file
in the working directory and the environment, e.g. OPENAI_API_KEY.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		return run(cmd.Context(), configPath)
	},
}

func init() {
	rootCmd.Flags().String("config", "", "path to a YAML config file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := utils.NewLogger(cfg.LogLevel)

	// Initialize upload store
	store, err := newStorage(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize storage", "backend", cfg.StorageBackend, "error", err)
		return err
	}

	// Initialize current-document store
	repo, closeRepo, err := newRepository(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize session store", "backend", cfg.SessionBackend, "error", err)
		return err
	}
	defer closeRepo()

	validator, err := analyzer.NewOpenAIValidator(analyzer.Config{
		APIKey:         cfg.OpenAIAPIKey,
		BaseURL:        cfg.OpenAIBaseURL,
		Model:          cfg.OpenAIModel,
		MaxPromptChars: cfg.MaxPromptChars,
		Timeout:        cfg.LLMTimeout,
	}, logger)
	if err != nil {
		logger.Error("Failed to initialize validator", "error", err)
		return err
	}

	// Initialize document service
	docService := services.NewService(repo, store, extractor.NewPDFExtractor(), validator, logger)

	// Setup HTTP router
	handler := router.NewRouter(docService, logger, router.Options{MaxFileSize: cfg.MaxFileSize})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)

	// Start server
	go func() {
		logger.Info("Starting server",
			"port", cfg.Port,
			"storage", cfg.StorageBackend,
			"sessions", cfg.SessionBackend,
			"model", cfg.OpenAIModel)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Error("Server failed to start", "error", err)
		return err
	case <-quit:
	}

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
		return err
	}

	logger.Info("Server exited")
	return nil
}
