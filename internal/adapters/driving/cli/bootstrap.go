package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/docdeck/internal/adapters/driven/ai"
	"github.com/custodia-labs/docdeck/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docdeck/internal/adapters/driven/extract"
	"github.com/custodia-labs/docdeck/internal/adapters/driven/ids"
	"github.com/custodia-labs/docdeck/internal/adapters/driven/metrics"
	"github.com/custodia-labs/docdeck/internal/adapters/driven/render"
	"github.com/custodia-labs/docdeck/internal/adapters/driven/storage/jsonfile"
	"github.com/custodia-labs/docdeck/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docdeck/internal/adapters/driven/storage/records"
	"github.com/custodia-labs/docdeck/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docdeck/internal/core/domain"
	"github.com/custodia-labs/docdeck/internal/core/ports/driven"
	"github.com/custodia-labs/docdeck/internal/core/services"
	"github.com/custodia-labs/docdeck/internal/logger"
)

// App holds the wired application and the resources it must release.
type App struct {
	Documents     *services.DocumentService
	Search        *services.SearchService
	Presentations *services.PresentationService
	Settings      *services.SettingsService
	Gateway       *services.Gateway
	Metrics       *metrics.Recorder

	records *records.Store
	llm     driven.TextGenerator
}

// Services returns the driving ports of the app.
func (a *App) Services() ServiceSet {
	return ServiceSet{
		Document:     a.Documents,
		Search:       a.Search,
		Presentation: a.Presentations,
		Settings:     a.Settings,
	}
}

// Close releases the text generator and the record store.
func (a *App) Close() error {
	var errs []error
	if a.llm != nil {
		errs = append(errs, a.llm.Close())
	}
	if a.records != nil {
		errs = append(errs, a.records.Close())
	}
	return errors.Join(errs...)
}

// Bootstrap wires the application from the settings in dir.
// An empty dir selects ~/.docdeck. A .env file in the working directory or
// in dir is loaded first so provider API keys can live outside config.toml.
func Bootstrap(ctx context.Context, dir string) (*App, error) {
	dir, err := resolveConfigDir(dir)
	if err != nil {
		return nil, err
	}
	loadDotEnv(".env", filepath.Join(dir, ".env"))

	configStore, err := file.NewConfigStore(dir)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	settingsSvc := services.NewSettingsService(configStore, ai.NewConfigValidator())

	settings, err := settingsSvc.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	kv, err := openKeyValueStore(settings.Storage, dir)
	if err != nil {
		return nil, err
	}
	store := records.New(kv)

	// A broken provider configuration must not block document commands;
	// AI capabilities fall back instead.
	llm, err := ai.CreateTextGenerator(ctx, &settings.LLM)
	if err != nil {
		logger.Warn("AI provider unavailable: %v", err)
		llm = nil
	}
	if llm != nil {
		logger.Debug("Using %s model %s", settings.LLM.Provider, llm.ModelName())
	}

	prompts, err := file.NewPromptStore(filepath.Join(dir, "prompts"))
	if err != nil {
		return nil, fmt.Errorf("open prompts: %w", err)
	}

	recorder := metrics.New()
	idGen := ids.UUID{}
	gateway := services.NewGateway(llm, prompts, idGen)
	gateway.SetMetrics(recorder)

	presentationOpts := []services.PresentationOption{}
	exporter, err := render.NewPDFExporter()
	if err != nil {
		logger.Warn("PDF export unavailable: %v", err)
	} else {
		presentationOpts = append(presentationOpts, services.WithExporter(exporter))
	}

	return &App{
		Documents:     services.NewDocumentService(store, extract.NewDefaultRegistry(), gateway, idGen),
		Search:        services.NewSearchService(store, gateway),
		Presentations: services.NewPresentationService(store, gateway, idGen, presentationOpts...),
		Settings:      settingsSvc,
		Gateway:       gateway,
		Metrics:       recorder,
		records:       store,
		llm:           llm,
	}, nil
}

func resolveConfigDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	if env := os.Getenv("DOCDECK_HOME"); env != "" {
		return env, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".docdeck"), nil
}

// loadDotEnv loads each existing file. Variables already set win.
func loadDotEnv(paths ...string) {
	for _, p := range paths {
		err := godotenv.Load(p)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("Failed to load %s: %v", p, err)
		}
	}
}

func openKeyValueStore(cfg domain.StorageSettings, configDir string) (driven.KeyValueStore, error) {
	dataDir := cfg.Dir
	if dataDir == "" {
		dataDir = filepath.Join(configDir, "data")
	}

	switch cfg.Backend {
	case domain.StorageSQLite, "":
		kv, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return kv, nil
	case domain.StorageFile:
		kv, err := jsonfile.NewStore(dataDir)
		if err != nil {
			return nil, fmt.Errorf("open file store: %w", err)
		}
		return kv, nil
	case domain.StorageMemory:
		logger.Warn("Using in-memory storage; nothing will be kept after exit")
		return memory.NewKVStore(), nil
	default:
		return nil, fmt.Errorf("%w: unknown storage backend %q", domain.ErrInvalidInput, cfg.Backend)
	}
}
