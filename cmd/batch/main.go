package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/radyosim/backend/internal/adapters/events"
	"github.com/radyosim/backend/internal/adapters/settings"
	"github.com/radyosim/backend/internal/adapters/templates"
	"github.com/radyosim/backend/internal/application/services"
	"github.com/radyosim/backend/internal/domain/entities"
	"github.com/radyosim/backend/internal/domain/providers"
	"github.com/radyosim/backend/internal/evaluation"
	"github.com/radyosim/backend/internal/infrastructure/clients/gemini"
	"github.com/radyosim/backend/internal/infrastructure/clients/openai"
	redisclient "github.com/radyosim/backend/internal/infrastructure/clients/redis"
	"github.com/radyosim/backend/internal/infrastructure/observability"
	"github.com/radyosim/backend/pkg/config"
	"github.com/radyosim/backend/pkg/retry"
)

func main() {
	var (
		dir         = flag.String("dir", "", "root folder containing one subfolder per case")
		templateKey = flag.String("template", "", "template key (category::name) applied to every case")
		modelID     = flag.String("model", "", "transcription model id (default: persisted or configured selection)")
		outDir      = flag.String("out", "", "directory for per-case HTML comparison documents (optional)")
	)
	flag.Parse()

	if *dir == "" || *templateKey == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	observability.InitLogger(cfg.OTEL.ServiceName, os.Getenv("APP_ENV"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Printf("Warning: Failed to initialize metrics: %v", err)
	}

	// Preferences and events go through Redis when it is reachable, and
	// degrade to in-process implementations otherwise.
	var settingsStore providers.SettingsStore
	var bus providers.EventBus
	if rc, err := redisclient.NewClient(&cfg.Redis); err == nil {
		defer rc.Close()
		settingsStore = settings.NewRedisAdapter(rc)
		bus = events.NewRedisEventBus(rc)
	} else {
		log.Printf("Redis unavailable, using in-memory settings and events: %v", err)
		settingsStore = settings.NewMemoryAdapter()
		bus = events.NewMemoryEventBus()
	}
	defer bus.Close()

	settingsService := services.NewSettingsService(settingsStore, cfg)

	model, err := resolveModel(ctx, settingsService, *modelID)
	if err != nil {
		log.Fatalf("Failed to resolve model: %v", err)
	}

	clients, err := buildClients(ctx, settingsService, cfg)
	if err != nil {
		log.Fatalf("Failed to build provider clients: %v", err)
	}

	catalog := templates.NewStaticCatalog()
	if _, err := catalog.GetByKey(ctx, *templateKey); err != nil {
		log.Fatalf("Unknown template %q", *templateKey)
	}

	retryCfg := retry.DefaultConfig().WithAttempts(cfg.Pipeline.RetryAttempts)
	pipeline := services.NewPipelineService(clients, catalog, bus, metrics, retryCfg)
	batch := services.NewBatchService(pipeline, metrics)

	files, err := listFiles(*dir)
	if err != nil {
		log.Fatalf("Failed to scan %s: %v", *dir, err)
	}

	cases := batch.GroupFiles(files)
	if len(cases) == 0 {
		log.Fatalf("No cases found under %s", *dir)
	}
	batch.SetTemplateForAll(*templateKey)

	// Progress reporting rides the same event stream a UI would use
	progressCtx, stopProgress := context.WithCancel(ctx)
	defer stopProgress()
	if updates, err := bus.Subscribe(progressCtx, providers.EventChannelCaseUpdates); err == nil {
		go func() {
			for event := range updates {
				fmt.Fprintf(os.Stderr, "[%s] %s: %s\n", event.EventType, event.CaseName, event.Status)
			}
		}()
	}

	batch.RunAll(ctx, services.RunOptions{Model: model})

	runner := evaluation.NewRunner()
	summary, audits, err := runner.Run(ctx, batch.Cases())
	if err != nil {
		log.Fatalf("Audit failed: %v", err)
	}

	for _, audit := range audits {
		if !audit.Compared {
			continue
		}
		category := audit.TemplateKey
		if cat, _, err := entities.ParseTemplateKey(audit.TemplateKey); err == nil {
			category = cat
		}
		observability.RecordMatchRatio(ctx, metrics, category, audit.Metrics.MatchRatio)
	}

	if *outDir != "" {
		if err := writeComparisons(*outDir, audits); err != nil {
			log.Fatalf("Failed to write comparison documents: %v", err)
		}
	}

	out, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Println(string(out))
}

// resolveModel prefers an explicit flag over the persisted selection
func resolveModel(ctx context.Context, settingsService *services.SettingsService, modelID string) (providers.TranscriptionModel, error) {
	if modelID == "" {
		return settingsService.ResolveModel(ctx)
	}
	model, ok := providers.TranscriptionModelByID(modelID)
	if !ok {
		return providers.TranscriptionModel{}, fmt.Errorf("unknown model %q", modelID)
	}
	return model, nil
}

func buildClients(ctx context.Context, settingsService *services.SettingsService, cfg *config.Config) (map[string]services.ProviderClient, error) {
	clients := make(map[string]services.ProviderClient)

	if key, err := settingsService.OpenAIKey(ctx); err == nil && key != "" {
		openaiCfg := cfg.OpenAI
		openaiCfg.APIKey = key
		client, err := openai.NewClient(&openaiCfg, cfg.Pipeline.RequestTimeout)
		if err != nil {
			return nil, err
		}
		clients[providers.ProviderOpenAI] = client
	}

	if key, err := settingsService.GeminiKey(ctx); err == nil && key != "" {
		geminiCfg := cfg.Gemini
		geminiCfg.APIKey = key
		client, err := gemini.NewClient(&geminiCfg, cfg.Pipeline.RequestTimeout)
		if err != nil {
			return nil, err
		}
		clients[providers.ProviderGemini] = client
	}

	if len(clients) == 0 {
		return nil, fmt.Errorf("no provider credentials configured")
	}
	return clients, nil
}

func listFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func writeComparisons(dir string, audits []evaluation.CaseAudit) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, audit := range audits {
		if !audit.Compared {
			continue
		}
		path := filepath.Join(dir, audit.CaseName+".html")
		if err := os.WriteFile(path, []byte(evaluation.RenderSideBySideHTML(audit.Spans)), 0o644); err != nil {
			return err
		}
	}
	return nil
}
