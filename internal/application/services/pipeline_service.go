package services

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/radyosim/backend/internal/domain/entities"
	"github.com/radyosim/backend/internal/domain/providers"
	"github.com/radyosim/backend/internal/domain/repositories"
	"github.com/radyosim/backend/internal/infrastructure/observability"
	apperrors "github.com/radyosim/backend/pkg/errors"
	"github.com/radyosim/backend/pkg/retry"
)

// ProviderClient bundles the two capabilities one provider family
// exposes to the pipeline.
type ProviderClient interface {
	providers.Transcriber
	providers.ReportGenerator
}

// RunOptions configures one pipeline invocation. It replaces any ambient
// session state; everything a run needs is passed in explicitly.
type RunOptions struct {
	// Model is the selected transcription model; its provider family also
	// serves report generation for the run
	Model providers.TranscriptionModel

	// RequireReference blocks invocation when the case has no reference
	// report. Interactive single-case mode sets this; batch mode runs
	// without a reference and skips the comparison instead.
	RequireReference bool
}

// PipelineService sequences Transcription, Report-Fill and status
// bookkeeping for one case. Alignment against the reference runs
// separately, after the case has completed.
type PipelineService struct {
	clients   map[string]ProviderClient
	templates repositories.TemplateRepository
	bus       providers.EventBus
	metrics   *observability.Metrics
	retryCfg  retry.Config
}

// NewPipelineService creates a new pipeline service
func NewPipelineService(
	clients map[string]ProviderClient,
	templates repositories.TemplateRepository,
	bus providers.EventBus,
	metrics *observability.Metrics,
	retryCfg retry.Config,
) *PipelineService {
	return &PipelineService{
		clients:   clients,
		templates: templates,
		bus:       bus,
		metrics:   metrics,
		retryCfg:  retryCfg,
	}
}

// Run executes the pipeline against one case. Validation failures return
// before any state transition; once the case enters Running it always
// reaches Completed or Failed, keeping whatever partial outputs were
// produced. The returned error mirrors the case's terminal error so
// interactive callers can surface it; batch callers ignore it.
func (s *PipelineService) Run(ctx context.Context, c *entities.Case, opts RunOptions) error {
	if c.Audio == nil || (len(c.Audio.Data) == 0 && c.Audio.Path == "") {
		return apperrors.NewValidationError("case has no audio payload")
	}
	if c.TemplateKey == "" {
		return apperrors.NewValidationError("case has no template selected")
	}
	template, err := s.templates.GetByKey(ctx, c.TemplateKey)
	if err != nil {
		return apperrors.NewValidationError(fmt.Sprintf("template %q not found", c.TemplateKey))
	}
	if opts.RequireReference && !c.HasReference() {
		return apperrors.NewValidationError("a reference report is required before running")
	}
	client, ok := s.clients[opts.Model.Provider]
	if !ok {
		return apperrors.NewValidationError(fmt.Sprintf("no client configured for provider %q", opts.Model.Provider))
	}

	ctx, span := observability.StartSpan(ctx, "pipeline.run")
	defer span.End()
	span.SetAttributes(
		attribute.String("case.id", c.ID),
		attribute.String("ai.provider", opts.Model.Provider),
		attribute.String("ai.model", opts.Model.ID),
	)

	start := time.Now()
	c.Status = entities.StatusRunning
	c.Result = nil
	s.publish(ctx, c, entities.CaseEventTypeStatusChange)

	audio, err := loadAudio(c.Audio)
	if err != nil {
		return s.fail(ctx, c, opts, start, fmt.Errorf("audio load failed: %w", err))
	}

	transcript, usedModel, err := s.transcribe(ctx, client, audio, opts.Model)
	if err != nil {
		return s.fail(ctx, c, opts, start, fmt.Errorf("transcription failed: %w", err))
	}
	c.Result = &entities.PipelineResult{Transcript: transcript}
	s.publish(ctx, c, entities.CaseEventTypeTranscriptSet)

	stageStart := time.Now()
	report, err := s.generate(ctx, client, transcript, template.Body)
	observability.RecordStage(ctx, s.metrics, "generation", time.Since(stageStart))
	if err != nil {
		return s.fail(ctx, c, opts, start, fmt.Errorf("report generation failed: %w", err))
	}

	c.Result.GeneratedReport = report
	c.Status = entities.StatusCompleted
	s.publish(ctx, c, entities.CaseEventTypeResultReplaced)
	s.publish(ctx, c, entities.CaseEventTypeStatusChange)
	observability.RecordPipelineRun(ctx, s.metrics, usedModel.Provider, usedModel.ID, string(c.Status), time.Since(start))

	observability.LoggerFromContext(ctx).Info().
		Str("case_id", c.ID).
		Str("model", usedModel.ID).
		Dur("duration", time.Since(start)).
		Msg("pipeline run completed")
	return nil
}

// transcribe tries the fallback chain in order and returns the first
// success together with the model that produced it.
func (s *PipelineService) transcribe(ctx context.Context, client ProviderClient, audio *entities.AudioPayload, selected providers.TranscriptionModel) (string, providers.TranscriptionModel, error) {
	chain := providers.FallbackChain(selected)

	var lastErr error
	for i, model := range chain {
		stageStart := time.Now()
		var transcript string
		err := retry.DoWithLog(ctx, s.retryCfg, "transcription", func() error {
			t, err := client.Transcribe(ctx, audio, model)
			if err != nil {
				return err
			}
			transcript = t
			return nil
		}, func(attempt int, err error, nextDelay time.Duration) {
			log.Warn().
				Str("model", model.ID).
				Int("attempt", attempt).
				Err(err).
				Msg("transcription attempt failed, retrying")
		})
		observability.RecordStage(ctx, s.metrics, "transcription", time.Since(stageStart))

		if err == nil {
			if i > 0 {
				observability.RecordFallback(ctx, s.metrics, selected.ID, model.ID)
				log.Warn().
					Str("from", selected.ID).
					Str("to", model.ID).
					Msg("transcription fell back to baseline model")
			}
			return transcript, model, nil
		}

		lastErr = err
		if i < len(chain)-1 {
			log.Warn().
				Str("model", model.ID).
				Err(err).
				Msg("transcription model failed, trying next in chain")
		}
	}
	return "", selected, lastErr
}

func (s *PipelineService) generate(ctx context.Context, client ProviderClient, transcript, template string) (string, error) {
	var report string
	err := retry.DoWithLog(ctx, s.retryCfg, "generation", func() error {
		r, err := client.GenerateReport(ctx, transcript, template)
		if err != nil {
			return err
		}
		report = r
		return nil
	}, func(attempt int, err error, nextDelay time.Duration) {
		log.Warn().
			Int("attempt", attempt).
			Err(err).
			Msg("report generation attempt failed, retrying")
	})
	return report, err
}

// fail transitions the case to Failed, retaining partial outputs for
// diagnostic display.
func (s *PipelineService) fail(ctx context.Context, c *entities.Case, opts RunOptions, start time.Time, err error) error {
	if c.Result == nil {
		c.Result = &entities.PipelineResult{}
	}
	c.Result.Error = err.Error()
	c.Status = entities.StatusFailed
	s.publish(ctx, c, entities.CaseEventTypeStatusChange)
	observability.RecordPipelineRun(ctx, s.metrics, opts.Model.Provider, opts.Model.ID, string(c.Status), time.Since(start))
	observability.RecordError(trace.SpanFromContext(ctx), err)

	observability.LoggerFromContext(ctx).Error().
		Str("case_id", c.ID).
		Err(err).
		Msg("pipeline run failed")
	return err
}

func (s *PipelineService) publish(ctx context.Context, c *entities.Case, eventType entities.CaseEventType) {
	if s.bus == nil {
		return
	}
	event := entities.NewCaseEvent(c, eventType)
	if err := s.bus.Publish(ctx, providers.EventChannelCaseUpdates, event); err != nil {
		log.Warn().Err(err).Str("case_id", c.ID).Msg("failed to publish case event")
	}
	if err := s.bus.Publish(ctx, providers.GetCaseChannel(c.ID), event); err != nil {
		log.Warn().Err(err).Str("case_id", c.ID).Msg("failed to publish case event")
	}
}

// loadAudio materializes the audio bytes, reading from disk when the
// payload only carries a path.
func loadAudio(audio *entities.AudioPayload) (*entities.AudioPayload, error) {
	if len(audio.Data) > 0 {
		return audio, nil
	}
	data, err := os.ReadFile(audio.Path)
	if err != nil {
		return nil, err
	}
	audio.Data = data
	return audio, nil
}
