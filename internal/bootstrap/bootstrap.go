// Package bootstrap wires configuration, infrastructure, and use cases into a
// runnable application.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kirillkom/document-triage/internal/config"
	"github.com/kirillkom/document-triage/internal/core/ports"
	"github.com/kirillkom/document-triage/internal/core/rules"
	"github.com/kirillkom/document-triage/internal/core/textnorm"
	"github.com/kirillkom/document-triage/internal/core/usecase"
	"github.com/kirillkom/document-triage/internal/export"
	"github.com/kirillkom/document-triage/internal/infrastructure/llm/ollama"
	"github.com/kirillkom/document-triage/internal/infrastructure/loader"
	natsqueue "github.com/kirillkom/document-triage/internal/infrastructure/queue/nats"
	"github.com/kirillkom/document-triage/internal/infrastructure/resilience"
	"github.com/kirillkom/document-triage/internal/infrastructure/store/jsonfile"
	"github.com/kirillkom/document-triage/internal/infrastructure/store/postgres"
)

type App struct {
	Config config.Config
	Logger *slog.Logger

	Store  ports.ResultStore
	Queue  *natsqueue.Queue
	Loader *loader.FileLoader

	TriageUC    *usecase.ClassifyDocumentUseCase
	EmailUC     *usecase.ClassifyEmailUseCase
	ValidatorUC *usecase.ValidateRecordUseCase
	Export      *export.Service

	// ModelConfigured is false when OLLAMA_URL is empty and the pipeline runs
	// rules-only.
	ModelConfigured bool

	closeFn func()
}

type Options struct {
	// WithQueue connects NATS; the CLI leaves it off.
	WithQueue bool
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger, opts Options) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	store, closeStore, err := newStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var model ports.ModelClassifier
	var emailModel ports.EmailModelClassifier
	modelConfigured := cfg.OllamaURL != ""
	if modelConfigured {
		breaker := resilience.NewBreaker("ollama.generate", resilience.DefaultConfig(), ollama.RecordBreakerFailure)
		client := ollama.New(cfg.OllamaURL, cfg.OllamaModel, ollama.Options{
			Timeout: time.Duration(cfg.OllamaTimeoutSeconds) * time.Second,
			MaxRPS:  cfg.OllamaMaxRPS,
			Breaker: breaker,
		})
		model = ollama.NewClassifier(client)
		emailModel = ollama.NewEmailClassifier(client)
	} else {
		logger.Warn("model service not configured, running rules-only")
	}

	var queue *natsqueue.Queue
	if opts.WithQueue {
		queue, err = natsqueue.New(cfg.NATSURL, cfg.NATSSubject)
		if err != nil {
			closeStore()
			return nil, fmt.Errorf("init classify queue: %w", err)
		}
	}

	normalizer := textnorm.New(cfg.MaxPromptChars)
	scorer := rules.NewScorerWithCap(cfg.RuleConfidenceCap)

	app := &App{
		Config: cfg,
		Logger: logger,

		Store:  store,
		Queue:  queue,
		Loader: loader.New(),

		TriageUC:    usecase.NewClassifyDocumentUseCase(normalizer, scorer, model, store, logger),
		EmailUC:     usecase.NewClassifyEmailUseCase(emailModel, store, logger),
		ValidatorUC: usecase.NewValidateRecordUseCase(logger),
		Export:      export.NewService(store, logger),

		ModelConfigured: modelConfigured,

		closeFn: func() {
			if queue != nil {
				queue.Close()
			}
			closeStore()
		},
	}
	return app, nil
}

func newStore(ctx context.Context, cfg config.Config) (ports.ResultStore, func(), error) {
	switch cfg.StoreBackend {
	case "postgres":
		db, err := postgres.OpenDB(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		store := postgres.NewStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("ensure schema: %w", err)
		}
		return store, func() { _ = db.Close() }, nil
	default:
		store, err := jsonfile.Open(cfg.StorePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open record log: %w", err)
		}
		return store, func() {}, nil
	}
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
