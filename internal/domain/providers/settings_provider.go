package providers

import "context"

// SettingsStore persists a small set of named string preferences across
// sessions. A missing key is not an error; implementations return
// ("", false, nil) so callers substitute their default.
type SettingsStore interface {
	// Get retrieves a preference value; ok is false when the key is absent
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores a preference value
	Set(ctx context.Context, key, value string) error

	// Delete removes a preference
	Delete(ctx context.Context, key string) error
}

// Preference keys persisted across sessions. Absence means "use default".
const (
	SettingProvider    = "radyosim:provider"
	SettingModel       = "radyosim:model"
	SettingOpenAIKey   = "radyosim:openai_key"
	SettingGeminiKey   = "radyosim:gemini_key"
	SettingGeminiModel = "radyosim:gemini_model"
)
