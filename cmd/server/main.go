package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"cadtools/internal/config"
	"cadtools/internal/datatable"
	"cadtools/internal/handler"
	"cadtools/internal/logging"
	"cadtools/internal/port"
	"cadtools/internal/provider/manifest"
	"cadtools/internal/repository/postgres"
	"cadtools/internal/router"
	"cadtools/internal/service"
	s3storage "cadtools/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories and stores
	reportRepo := postgres.NewSheetSizeReportRepo(db)

	tableStore, err := datatable.NewFileStore(cfg.Tables.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open table store: %w", err)
	}

	var exports port.ExportStorage
	if cfg.S3.Bucket != "" {
		exports, err = s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	} else {
		logger.Warn("no export bucket configured, publishing is disabled")
	}

	var documents port.DocumentProvider
	if cfg.Documents.Manifest != "" {
		documents = manifest.New(cfg.Documents.Manifest)
	}

	// Initialize services
	sheetSvc := service.NewSheetSizeService(reportRepo, exports, logger)
	workspaceSvc := service.NewWorkspaceService(documents, sheetSvc, logger)
	tableSvc := service.NewTableService(tableStore, cfg.Tables, logger)

	if documents != nil {
		result, err := workspaceSvc.Load(context.Background(), true)
		if err != nil {
			logger.Warn("initial document load failed", zap.Error(err))
		} else {
			logger.Info("documents loaded",
				zap.String("manifest", cfg.Documents.Manifest),
				zap.Int("added", result.Added),
				zap.Int("skipped", result.Skipped),
			)
		}
	}

	// Setup router
	r := router.Setup(router.Handlers{
		SheetSizes: handler.NewSheetSizeHandler(sheetSvc, cfg.Reports, logger),
		Documents:  handler.NewDocumentHandler(workspaceSvc, logger),
		Tables:     handler.NewTableHandler(tableSvc, logger),
		Health:     handler.NewHealthHandler(db),
	}, cfg.CORS.AllowedOrigins, logger)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			zap.String("addr", cfg.Server.Port),
			zap.String("environment", cfg.Server.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
