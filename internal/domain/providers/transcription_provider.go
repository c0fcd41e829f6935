package providers

import (
	"context"

	"github.com/radyosim/backend/internal/domain/entities"
)

// Transcriber converts a dictation to text using one provider/model
// combination. Implementations perform exactly one upstream call and
// return a provider error on non-success; fallback between models is the
// caller's concern.
type Transcriber interface {
	Transcribe(ctx context.Context, audio *entities.AudioPayload, model TranscriptionModel) (string, error)
}

// ModelTier separates the always-available baseline transcription model
// from richer multimodal options that fall back to it on failure.
type ModelTier string

const (
	TierPrimary   ModelTier = "primary"
	TierSecondary ModelTier = "secondary"
)

// Provider family names used in the model catalog and settings.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// TranscriptionModel is one entry of the fixed provider/model catalog.
type TranscriptionModel struct {
	// ID is the user-facing selector value
	ID string
	// Provider names the provider family
	Provider string
	// APIModel is the model identifier sent upstream
	APIModel string
	Tier     ModelTier
	// Instruction is the prompt hint sent with the audio. Diarizing
	// variants ask for `[Speaker]: [Text]` formatted output.
	Instruction string
	// Diarize marks models whose instruction requests speaker labels
	Diarize bool
}

const (
	verbatimInstruction = "Transcribe this medical audio strictly verbatim. " +
		"Focus on accuracy for terms: perfüzyon, Pnömotoraks, Kardiyotorasik. " +
		"Do not translate. Output only the transcription."

	diarizeInstruction = "Transcribe the audio and identify speakers " +
		"(e.g. Speaker 1, Speaker 2). Format as [Speaker]: [Text]. Medical context."

	// whisperVocabularyHint biases the dedicated transcription endpoint
	// toward the radiology vocabulary the dictations use.
	whisperVocabularyHint = "Radyoloji raporu, BT, MR, tomografi, lezyon, parankim, " +
		"kontrast, efüzyon, milimetrik, nodül, fraktür, vertebra, disk, herniasyon, " +
		"sekans, aksiyel, sagital, koronal, perfüzyon, Pnömotoraks, Kardiyotorasik."
)

// BaselineTranscriptionModelID is the model every secondary-tier failure
// falls back to. The baseline itself has no further fallback.
const BaselineTranscriptionModelID = "whisper-1"

var transcriptionModels = []TranscriptionModel{
	{
		ID:          "whisper-1",
		Provider:    ProviderOpenAI,
		APIModel:    "whisper-1",
		Tier:        TierPrimary,
		Instruction: whisperVocabularyHint,
	},
	{
		ID:          "gpt-4o-audio-preview",
		Provider:    ProviderOpenAI,
		APIModel:    "gpt-4o-audio-preview",
		Tier:        TierSecondary,
		Instruction: verbatimInstruction,
	},
	{
		ID:          "gpt-4o-mini-audio-preview",
		Provider:    ProviderOpenAI,
		APIModel:    "gpt-4o-mini-audio-preview",
		Tier:        TierSecondary,
		Instruction: verbatimInstruction,
	},
	{
		ID:          "gpt-4o-audio-preview-diarize",
		Provider:    ProviderOpenAI,
		APIModel:    "gpt-4o-audio-preview",
		Tier:        TierSecondary,
		Instruction: diarizeInstruction,
		Diarize:     true,
	},
}

// KnownTranscriptionModels returns the fixed catalog of selectable
// provider/model combinations.
func KnownTranscriptionModels() []TranscriptionModel {
	out := make([]TranscriptionModel, len(transcriptionModels))
	copy(out, transcriptionModels)
	return out
}

// TranscriptionModelByID looks up a catalog entry by its selector value.
func TranscriptionModelByID(id string) (TranscriptionModel, bool) {
	for _, m := range transcriptionModels {
		if m.ID == id {
			return m, true
		}
	}
	return TranscriptionModel{}, false
}

// FallbackChain returns the ordered list of models to attempt for a
// selection: the selected model, then the baseline when the selection is a
// secondary-tier model of the same provider family.
func FallbackChain(selected TranscriptionModel) []TranscriptionModel {
	chain := []TranscriptionModel{selected}
	if selected.Tier != TierSecondary {
		return chain
	}
	baseline, ok := TranscriptionModelByID(BaselineTranscriptionModelID)
	if ok && baseline.ID != selected.ID && baseline.Provider == selected.Provider {
		chain = append(chain, baseline)
	}
	return chain
}
