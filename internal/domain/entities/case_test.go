package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusRunning.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusFailed.IsTerminal())
}

func TestAudioPayload_Ext(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"dictation.WAV", "wav"},
		{"dictation.mp3", "mp3"},
		{"recording.webm", "webm"},
		{"noext", ""},
	}
	for _, tt := range tests {
		payload := &AudioPayload{Name: tt.name}
		assert.Equal(t, tt.want, payload.Ext(), "for %s", tt.name)
	}
}

func TestIsAudioFile(t *testing.T) {
	assert.True(t, IsAudioFile("case1/audio.mp3"))
	assert.True(t, IsAudioFile("Audio.WAV"))
	assert.True(t, IsAudioFile("rec.webm"))
	assert.True(t, IsAudioFile("rec.m4a"))
	assert.False(t, IsAudioFile("report.txt"))
	assert.False(t, IsAudioFile("audio.ogg"))
}

func TestIsReferenceFile(t *testing.T) {
	assert.True(t, IsReferenceFile("ref.txt"))
	assert.True(t, IsReferenceFile("ref.md"))
	assert.False(t, IsReferenceFile("ref.doc"))
	assert.False(t, IsReferenceFile("audio.wav"))
}

func TestCase_HasReference(t *testing.T) {
	assert.False(t, (&Case{}).HasReference())
	assert.True(t, (&Case{ReferencePath: "/cases/a/ref.txt"}).HasReference())
	assert.True(t, (&Case{Reference: "Lezyon saptanmadı."}).HasReference())
}

func TestTemplateKey_RoundTrip(t *testing.T) {
	tpl := &Template{Category: "BT Beyin", Name: "Acil Kontrastsız Beyin BT", Body: "..."}
	cat, name, err := ParseTemplateKey(tpl.Key())
	assert.NoError(t, err)
	assert.Equal(t, tpl.Category, cat)
	assert.Equal(t, tpl.Name, name)
}

func TestParseTemplateKey_Invalid(t *testing.T) {
	for _, key := range []string{"", "noseparator", "::name", "cat::"} {
		_, _, err := ParseTemplateKey(key)
		assert.Error(t, err, "key %q", key)
	}
}
