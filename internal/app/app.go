package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sichenz/AdNova/internal/adgen"
	"github.com/sichenz/AdNova/internal/audience"
	"github.com/sichenz/AdNova/internal/brandvoice"
	"github.com/sichenz/AdNova/internal/config"
	"github.com/sichenz/AdNova/internal/db"
	"github.com/sichenz/AdNova/internal/feedback"
	"github.com/sichenz/AdNova/internal/llm"
	"github.com/sichenz/AdNova/internal/memory"
)

// ErrMemoryDisabled is returned by searches when no semantic memory is
// configured.
var ErrMemoryDisabled = errors.New("semantic memory is not available")

// Memory is the semantic index the app writes to and searches.
type Memory interface {
	IndexBrief(ctx context.Context, id string, b adgen.CampaignBrief) (uint64, error)
	IndexAd(ctx context.Context, id, briefID, product string, adType adgen.AdType, variations []string) (uint64, error)
	IndexFeedback(ctx context.Context, id, adID, briefID, feedback string) (uint64, error)
	Search(ctx context.Context, query string, k int) ([]memory.Hit, error)
	SimilarCampaigns(ctx context.Context, description string, k int) ([]memory.Hit, error)
	Count() int
	Close() error
}

// App is the main application container holding all dependencies.
type App struct {
	Config    *config.Config
	Store     *db.Store
	Completer llm.Completer
	Generator *adgen.Generator
	Feedback  *feedback.Processor
	Voices    *brandvoice.Manager
	Audience  *audience.Analyzer
	Memory    Memory // nil when memory could not be opened
}

// New creates a new application instance with all dependencies wired up.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Create database connection
	store, err := db.NewStore(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, err
	}

	completer, err := llm.New(ctx, llm.Config{
		Provider:   cfg.LLMProvider,
		Model:      cfg.Model(),
		BaseURL:    cfg.LLMBaseURL,
		APIKey:     cfg.APIKey(),
		Timeout:    cfg.LLMTimeout,
		MaxRetries: cfg.LLMMaxRetries,
		RetryDelay: cfg.LLMRetryDelay,
	})
	if err != nil {
		// ValidateForGeneration guards the commands that need a provider.
		slog.Debug("completion provider unavailable", "provider", cfg.LLMProvider, "error", err)
		completer = llm.Unavailable(err)
	}

	// Memory is optional; generation works without it.
	var mem Memory
	if cfg.MemoryPath != "" {
		ms, err := memory.Open(memory.Config{Path: cfg.MemoryPath, ConfigPath: cfg.MemoryConfig})
		if err != nil {
			slog.Warn("semantic memory disabled", "error", err)
		} else {
			mem = ms
		}
	}

	return Assemble(cfg, store, completer, mem), nil
}

// Assemble wires the services around an existing store and completer.
func Assemble(cfg *config.Config, store *db.Store, completer llm.Completer, mem Memory) *App {
	model := cfg.Model()
	return &App{
		Config:    cfg,
		Store:     store,
		Completer: completer,
		Generator: adgen.New(adgen.Config{
			Completer:     completer,
			Model:         model,
			Temperature:   cfg.CreativeTemperature,
			MaxTokens:     cfg.MaxTokens,
			MaxVariations: cfg.MaxVariations,
		}),
		Feedback: feedback.New(feedback.Config{
			Completer:   completer,
			Model:       model,
			Temperature: cfg.AnalyticalTemperature,
		}),
		Voices: brandvoice.New(brandvoice.Config{
			Store:       store,
			Completer:   completer,
			Model:       model,
			Temperature: cfg.AnalyticalTemperature,
		}),
		Audience: audience.New(audience.Config{
			Completer:   completer,
			Model:       model,
			Temperature: cfg.AnalyticalTemperature,
		}),
		Memory: mem,
	}
}

// Close closes all resources.
func (a *App) Close() error {
	var errs []error
	if a.Memory != nil {
		errs = append(errs, a.Memory.Close())
	}
	if a.Store != nil {
		errs = append(errs, a.Store.Close())
	}
	return errors.Join(errs...)
}
