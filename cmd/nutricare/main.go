package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Pash-Data/Nutricare/internal/bot"
	"github.com/Pash-Data/Nutricare/internal/config"
	v1 "github.com/Pash-Data/Nutricare/internal/handler/v1"
	"github.com/Pash-Data/Nutricare/internal/repository"
	"github.com/Pash-Data/Nutricare/internal/server"
	"github.com/Pash-Data/Nutricare/internal/service"
	"github.com/Pash-Data/Nutricare/pkg/database"
	"github.com/Pash-Data/Nutricare/pkg/logger"
	"github.com/Pash-Data/Nutricare/pkg/metrics"
	"github.com/Pash-Data/Nutricare/pkg/tracer"
)

func main() {
	root := &cobra.Command{
		Use:          "nutricare",
		Short:        "Child malnutrition screening service",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the Telegram bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate()
		},
	}

	var exportOut string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the patient table as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(exportOut)
		},
	}
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "-", "output file, - for stdout")

	root.AddCommand(serveCmd, migrateCmd, exportCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func runServe() error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	tp, err := tracer.Init(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracer: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}
	if err := database.Migrate(db, log); err != nil {
		return err
	}

	collector := metrics.NewCollector(cfg.App.Name)
	repo := repository.NewPatientRepository(db)
	svc := service.NewPatientService(repo, collector, log)

	router := server.NewRouter(server.RouterConfig{
		Patients:  v1.NewPatientHandler(svc, log),
		Health:    v1.NewHealthHandler(db),
		Log:       log,
		Collector: collector,
		CORS:      cfg.CORS,
		App:       cfg.App,
	})

	botCtx, stopBot := context.WithCancel(context.Background())
	defer stopBot()

	if cfg.Telegram.Token == "" {
		log.Warn("TELEGRAM_TOKEN not set; bot will not start")
	} else {
		tgBot, err := bot.New(cfg.Telegram, svc, collector, log)
		if err != nil {
			return fmt.Errorf("initializing telegram bot: %w", err)
		}
		go tgBot.Run(botCtx)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	stopBot()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown failed", zap.Error(err))
	}
	if err := tp.Shutdown(shutdownCtx); err != nil {
		log.Error("tracer shutdown failed", zap.Error(err))
	}

	return nil
}

func runMigrate() error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}
	return database.Migrate(db, log)
}

func runExport(output string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}

	svc := service.NewPatientService(repository.NewPatientRepository(db), nil, log)
	data, err := svc.ExportCSV(context.Background())
	if err != nil {
		return err
	}

	if output == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}

	log.Info("export written", zap.String("path", output))
	return nil
}
