// Package bootstrap assembles the application graph shared by the api
// and worker binaries.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kirillkom/document-intake/internal/config"
	"github.com/kirillkom/document-intake/internal/core/classify"
	"github.com/kirillkom/document-intake/internal/core/ports"
	"github.com/kirillkom/document-intake/internal/core/usecase"
	"github.com/kirillkom/document-intake/internal/infrastructure/extractor"
	"github.com/kirillkom/document-intake/internal/infrastructure/llm/openai"
	"github.com/kirillkom/document-intake/internal/infrastructure/queue/nats"
	"github.com/kirillkom/document-intake/internal/infrastructure/repository/postgres"
	"github.com/kirillkom/document-intake/internal/infrastructure/resilience"
	"github.com/kirillkom/document-intake/internal/infrastructure/storage/localfs"
	"github.com/kirillkom/document-intake/internal/infrastructure/storage/s3"
)

type App struct {
	Config config.Config

	Queue ports.MessageQueue
	Repo  ports.DocumentRepository

	IngestUC    ports.DocumentIngestor
	ProcessUC   ports.DocumentProcessor
	DirectoryUC ports.DocumentDirectory
	Classifier  ports.TextClassifier

	closeFn func()
}

// Observers carries the metrics recorders a binary wants wired into the
// graph. Any field may be nil.
type Observers struct {
	Classification classify.Recorder
	Extraction     extractor.Recorder
}

// New builds the full graph. Binaries pass their own recorders so
// counters land in the right registry.
func New(ctx context.Context, cfg config.Config, obs Observers) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewDocumentRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	storage, err := newObjectStorage(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: resilience.NewExecutor(resilience.DefaultConfig()),
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	tables, err := loadTables(cfg.KeywordsPath)
	if err != nil {
		return nil, err
	}

	classifier := classify.NewEngine(
		classify.Config{
			MinTextLength:     cfg.ClassifyMinTextLength,
			OverrideThreshold: cfg.ClassifyOverrideThreshold,
			PromptTextLimit:   cfg.ClassifyPromptTextLimit,
		},
		newSuggester(cfg),
		tables,
		obs.Classification,
	)

	var ocr *extractor.OCRClient
	if cfg.OCRURL != "" {
		ocr = extractor.NewOCRClient(cfg.OCRURL, time.Duration(cfg.OCRTimeoutSeconds)*time.Second)
	}
	gateway := extractor.NewGateway(storage, ocr, extractor.Config{
		MinTextLength: cfg.ClassifyMinTextLength,
		Recorder:      obs.Extraction,
	})

	ingestUC := usecase.NewIngestDocumentUseCase(repo, storage, queue)
	processUC := usecase.NewProcessDocumentUseCase(repo, gateway, classifier)
	directoryUC := usecase.NewDocumentDirectoryUseCase(repo, storage)

	return &App{
		Config: cfg,
		Queue:  queue,
		Repo:   repo,

		IngestUC:    ingestUC,
		ProcessUC:   processUC,
		DirectoryUC: directoryUC,
		Classifier:  classifier,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

func newObjectStorage(ctx context.Context, cfg config.Config) (ports.ObjectStorage, error) {
	switch cfg.StorageBackend {
	case "local":
		return localfs.New(cfg.StoragePath)
	case "s3":
		return s3.New(ctx, s3.Config{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			UseSSL:    cfg.S3UseSSL,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

func loadTables(path string) (classify.Tables, error) {
	if path == "" {
		return classify.DefaultTables(), nil
	}
	tables, err := classify.LoadTables(path)
	if err != nil {
		return classify.Tables{}, fmt.Errorf("load keyword tables: %w", err)
	}
	slog.Info("loaded keyword tables", "path", path)
	return tables, nil
}

// newSuggester returns nil when no model backend is configured; the
// engine then degrades to the fallback result instead of failing.
func newSuggester(cfg config.Config) classify.Suggester {
	if cfg.OpenAIAPIKey == "" {
		slog.Warn("model suggestions disabled, no api key configured")
		return nil
	}
	return openai.NewSuggester(openai.Config{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
		Timeout: time.Duration(cfg.OpenAITimeoutSeconds) * time.Second,
	}, resilience.NewExecutor(resilience.NoRetry()))
}
