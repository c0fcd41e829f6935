package services

import (
	"context"

	"github.com/radyosim/backend/internal/domain/providers"
	"github.com/radyosim/backend/pkg/config"
)

// SettingsService resolves persisted session preferences against config
// defaults. Preferences are loaded at startup and written on change; an
// absent key always means "use the configured default".
type SettingsService struct {
	store providers.SettingsStore
	cfg   *config.Config
}

// NewSettingsService creates a new settings service
func NewSettingsService(store providers.SettingsStore, cfg *config.Config) *SettingsService {
	return &SettingsService{
		store: store,
		cfg:   cfg,
	}
}

// ResolveModel returns the transcription model to run with. The persisted
// provider choice selects the family; for Gemini the configured model id
// stands in for a catalog entry since a single model serves every tier.
func (s *SettingsService) ResolveModel(ctx context.Context) (providers.TranscriptionModel, error) {
	provider, ok, err := s.store.Get(ctx, providers.SettingProvider)
	if err != nil {
		return providers.TranscriptionModel{}, err
	}
	if !ok {
		provider = providers.ProviderOpenAI
	}

	if provider == providers.ProviderGemini {
		model, ok, err := s.store.Get(ctx, providers.SettingGeminiModel)
		if err != nil {
			return providers.TranscriptionModel{}, err
		}
		if !ok {
			model = s.cfg.Gemini.Model
		}
		return providers.TranscriptionModel{
			ID:       model,
			Provider: providers.ProviderGemini,
			APIModel: model,
			Tier:     providers.TierPrimary,
		}, nil
	}

	id, ok, err := s.store.Get(ctx, providers.SettingModel)
	if err != nil {
		return providers.TranscriptionModel{}, err
	}
	if !ok {
		id = s.cfg.OpenAI.TranscriptionModel
	}
	if model, found := providers.TranscriptionModelByID(id); found {
		return model, nil
	}
	// Persisted selections can outlive catalog entries
	baseline, _ := providers.TranscriptionModelByID(providers.BaselineTranscriptionModelID)
	return baseline, nil
}

// SaveSelection persists the provider and model choice
func (s *SettingsService) SaveSelection(ctx context.Context, model providers.TranscriptionModel) error {
	if err := s.store.Set(ctx, providers.SettingProvider, model.Provider); err != nil {
		return err
	}
	if model.Provider == providers.ProviderGemini {
		return s.store.Set(ctx, providers.SettingGeminiModel, model.ID)
	}
	return s.store.Set(ctx, providers.SettingModel, model.ID)
}

// OpenAIKey returns the persisted OpenAI credential, falling back to config
func (s *SettingsService) OpenAIKey(ctx context.Context) (string, error) {
	key, ok, err := s.store.Get(ctx, providers.SettingOpenAIKey)
	if err != nil {
		return "", err
	}
	if ok {
		return key, nil
	}
	return s.cfg.OpenAI.APIKey, nil
}

// GeminiKey returns the persisted Gemini credential, falling back to config
func (s *SettingsService) GeminiKey(ctx context.Context) (string, error) {
	key, ok, err := s.store.Get(ctx, providers.SettingGeminiKey)
	if err != nil {
		return "", err
	}
	if ok {
		return key, nil
	}
	return s.cfg.Gemini.APIKey, nil
}
