package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
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
		audioPath   = flag.String("audio", "", "audio dictation file")
		refPath     = flag.String("reference", "", "human-authored reference report")
		templateKey = flag.String("template", "", "template key (category::name)")
		modelID     = flag.String("model", "", "transcription model id (default: persisted or configured selection)")
		outPath     = flag.String("out", "", "path for the HTML comparison document (optional)")
		listModels  = flag.Bool("models", false, "list selectable transcription models and exit")
		listTpl     = flag.Bool("templates", false, "list template keys and exit")
		save        = flag.Bool("save", false, "persist the model selection for future runs")
	)
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	observability.InitLogger(cfg.OTEL.ServiceName, os.Getenv("APP_ENV"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	catalog := templates.NewStaticCatalog()

	if *listModels {
		for _, m := range providers.KnownTranscriptionModels() {
			fmt.Printf("%-30s %s (%s)\n", m.ID, m.Provider, m.Tier)
		}
		return
	}
	if *listTpl {
		categories, _ := catalog.ListCategories(ctx)
		for _, category := range categories {
			tpls, _ := catalog.ListByCategory(ctx, category)
			for _, tpl := range tpls {
				fmt.Println(tpl.Key())
			}
		}
		return
	}

	if *audioPath == "" || *refPath == "" || *templateKey == "" {
		flag.Usage()
		os.Exit(2)
	}

	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = shutdown(ctx)
			}()
		}
	}
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Printf("Warning: Failed to initialize metrics: %v", err)
	}

	var settingsStore providers.SettingsStore
	var bus providers.EventBus
	if rc, err := redisclient.NewClient(&cfg.Redis); err == nil {
		defer rc.Close()
		settingsStore = settings.NewRedisAdapter(rc)
		bus = events.NewRedisEventBus(rc)
	} else {
		settingsStore = settings.NewMemoryAdapter()
		bus = events.NewMemoryEventBus()
	}
	defer bus.Close()

	settingsService := services.NewSettingsService(settingsStore, cfg)

	var model providers.TranscriptionModel
	if *modelID != "" {
		m, ok := providers.TranscriptionModelByID(*modelID)
		if !ok {
			log.Fatalf("Unknown model %q", *modelID)
		}
		model = m
		if *save {
			if err := settingsService.SaveSelection(ctx, model); err != nil {
				log.Printf("Warning: Failed to persist model selection: %v", err)
			}
		}
	} else {
		model, err = settingsService.ResolveModel(ctx)
		if err != nil {
			log.Fatalf("Failed to resolve model: %v", err)
		}
	}

	clients := make(map[string]services.ProviderClient)
	if key, err := settingsService.OpenAIKey(ctx); err == nil && key != "" {
		openaiCfg := cfg.OpenAI
		openaiCfg.APIKey = key
		client, err := openai.NewClient(&openaiCfg, cfg.Pipeline.RequestTimeout)
		if err != nil {
			log.Fatalf("Failed to build OpenAI client: %v", err)
		}
		clients[providers.ProviderOpenAI] = client
	}
	if key, err := settingsService.GeminiKey(ctx); err == nil && key != "" {
		geminiCfg := cfg.Gemini
		geminiCfg.APIKey = key
		client, err := gemini.NewClient(&geminiCfg, cfg.Pipeline.RequestTimeout)
		if err != nil {
			log.Fatalf("Failed to build Gemini client: %v", err)
		}
		clients[providers.ProviderGemini] = client
	}

	reference, err := os.ReadFile(*refPath)
	if err != nil {
		log.Fatalf("Failed to read reference: %v", err)
	}

	c := &entities.Case{
		ID:   uuid.NewString(),
		Name: filepath.Base(filepath.Dir(*audioPath)),
		Audio: &entities.AudioPayload{
			Path: *audioPath,
			Name: filepath.Base(*audioPath),
		},
		ReferencePath: *refPath,
		Reference:     evaluation.NormalizeReference(string(reference)),
		TemplateKey:   *templateKey,
		Status:        entities.StatusPending,
	}

	retryCfg := retry.DefaultConfig().WithAttempts(cfg.Pipeline.RetryAttempts)
	pipeline := services.NewPipelineService(clients, catalog, bus, metrics, retryCfg)

	err = pipeline.Run(ctx, c, services.RunOptions{
		Model:            model,
		RequireReference: true,
	})
	if err != nil {
		if c.Result != nil && c.Result.Transcript != "" {
			fmt.Printf("TRANSCRIPT (partial)\n%s\n\n", c.Result.Transcript)
		}
		log.Fatalf("Run failed: %v", err)
	}

	spans := evaluation.Align(c.Reference, c.Result.GeneratedReport)
	annotatedRef, annotatedGen := evaluation.RenderAnnotated(spans)
	caseMetrics := evaluation.ComputeMetrics(spans)

	fmt.Printf("TRANSCRIPT\n%s\n\n", c.Result.Transcript)
	fmt.Printf("GENERATED REPORT\n%s\n\n", c.Result.GeneratedReport)
	fmt.Printf("REFERENCE (annotated)\n%s\n\n", annotatedRef)
	fmt.Printf("GENERATED (annotated)\n%s\n\n", annotatedGen)
	fmt.Printf("match %.1f%%  missing %.1f%%  added %.1f%%\n",
		caseMetrics.MatchRatio*100, caseMetrics.MissingRatio*100, caseMetrics.AddedRatio*100)

	if *outPath != "" {
		if err := os.WriteFile(*outPath, []byte(evaluation.RenderSideBySideHTML(spans)), 0o644); err != nil {
			log.Fatalf("Failed to write comparison document: %v", err)
		}
	}
}
