package openai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/radyosim/backend/internal/domain/entities"
	"github.com/radyosim/backend/internal/domain/providers"
	"github.com/radyosim/backend/pkg/config"
	apperrors "github.com/radyosim/backend/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(&config.OpenAIConfig{
		APIKey:          "test-key",
		BaseURL:         server.URL,
		GenerationModel: "gpt-4o",
	}, 5*time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return client, server
}

func mustModel(t *testing.T, id string) providers.TranscriptionModel {
	t.Helper()
	model, ok := providers.TranscriptionModelByID(id)
	if !ok {
		t.Fatalf("unknown model %q", id)
	}
	return model
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	if _, err := NewClient(&config.OpenAIConfig{}, time.Second); err == nil {
		t.Error("expected error for missing api key")
	}
	if _, err := NewClient(nil, time.Second); err == nil {
		t.Error("expected error for nil config")
	}
}

func TestTranscribe_Whisper_Multipart(t *testing.T) {
	var gotPath, gotAuth, gotModel, gotPrompt, gotFile string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		gotModel = r.FormValue("model")
		gotPrompt = r.FormValue("prompt")
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		gotFile = header.Filename
		if _, err := io.ReadAll(file); err != nil {
			t.Fatalf("read file: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"text": "akciğer parankim alanları doğal"})
	})

	audio := &entities.AudioPayload{Name: "case1.wav", Data: []byte("RIFF....")}
	text, err := client.Transcribe(context.Background(), audio, mustModel(t, "whisper-1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "akciğer parankim alanları doğal" {
		t.Errorf("wrong transcript: %q", text)
	}
	if gotPath != "/audio/transcriptions" {
		t.Errorf("wrong path: %s", gotPath)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("wrong auth header: %s", gotAuth)
	}
	if gotModel != "whisper-1" {
		t.Errorf("wrong model field: %s", gotModel)
	}
	if gotPrompt == "" {
		t.Error("expected vocabulary prompt to be sent")
	}
	if gotFile != "case1.wav" {
		t.Errorf("wrong filename: %s", gotFile)
	}
}

func TestTranscribe_ChatAudio_Base64AndFormat(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "toraks BT incelemesi"}},
			},
		})
	})

	audioData := []byte{0x1a, 0x2b, 0x3c}
	audio := &entities.AudioPayload{Name: "case2.webm", Data: audioData}
	text, err := client.Transcribe(context.Background(), audio, mustModel(t, "gpt-4o-audio-preview"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "toraks BT incelemesi" {
		t.Errorf("wrong transcript: %q", text)
	}
	if gotPath != "/chat/completions" {
		t.Errorf("wrong path: %s", gotPath)
	}
	if gotBody["model"] != "gpt-4o-audio-preview" {
		t.Errorf("wrong model: %v", gotBody["model"])
	}

	messages := gotBody["messages"].([]interface{})
	content := messages[0].(map[string]interface{})["content"].([]interface{})
	inputAudio := content[1].(map[string]interface{})["input_audio"].(map[string]interface{})
	// webm is not a supported container for the chat endpoint, declared as wav
	if inputAudio["format"] != "wav" {
		t.Errorf("expected format coerced to wav, got %v", inputAudio["format"])
	}
	if inputAudio["data"] != base64.StdEncoding.EncodeToString(audioData) {
		t.Error("audio data not base64 encoded")
	}
}

func TestTranscribe_ChatAudio_KeepsMP3Format(t *testing.T) {
	var gotBody map[string]interface{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "ok"}},
			},
		})
	})

	audio := &entities.AudioPayload{Name: "case3.mp3", Data: []byte{0x01}}
	if _, err := client.Transcribe(context.Background(), audio, mustModel(t, "gpt-4o-mini-audio-preview")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	messages := gotBody["messages"].([]interface{})
	content := messages[0].(map[string]interface{})["content"].([]interface{})
	inputAudio := content[1].(map[string]interface{})["input_audio"].(map[string]interface{})
	if inputAudio["format"] != "mp3" {
		t.Errorf("expected mp3 format kept, got %v", inputAudio["format"])
	}
}

func TestTranscribe_EmptyAudio(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	_, err := client.Transcribe(context.Background(), &entities.AudioPayload{Name: "x.wav"}, mustModel(t, "whisper-1"))
	if !apperrors.IsValidationError(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestTranscribe_UpstreamError_CarriesMessageAndStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "Rate limit reached for gpt-4o-audio-preview"},
		})
	})

	audio := &entities.AudioPayload{Name: "case.wav", Data: []byte{0x01}}
	_, err := client.Transcribe(context.Background(), audio, mustModel(t, "gpt-4o-audio-preview"))
	if !apperrors.IsProviderError(err) {
		t.Fatalf("expected provider error, got %v", err)
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Status != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", appErr.Status)
	}
	if !strings.Contains(appErr.Message, "Rate limit reached") {
		t.Errorf("expected upstream message, got %q", appErr.Message)
	}
}

func TestTranscribe_MalformedResponse_IsProviderError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway</html>"))
	})

	audio := &entities.AudioPayload{Name: "case.wav", Data: []byte{0x01}}
	_, err := client.Transcribe(context.Background(), audio, mustModel(t, "whisper-1"))
	if !apperrors.IsProviderError(err) {
		t.Errorf("expected format error to count as provider error, got %v", err)
	}
}

func TestGenerateReport_SendsSystemPromptAndTemperature(t *testing.T) {
	var gotBody map[string]interface{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "BT TORAKS\n\nBulgular: doğal."}},
			},
		})
	})

	report, err := client.GenerateReport(context.Background(), "transkript metni", "şablon metni")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report != "BT TORAKS\n\nBulgular: doğal." {
		t.Errorf("wrong report: %q", report)
	}
	if gotBody["model"] != "gpt-4o" {
		t.Errorf("wrong model: %v", gotBody["model"])
	}
	if gotBody["temperature"].(float64) != reportTemperature {
		t.Errorf("wrong temperature: %v", gotBody["temperature"])
	}

	messages := gotBody["messages"].([]interface{})
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	system := messages[0].(map[string]interface{})
	if system["role"] != "system" || system["content"] == "" {
		t.Error("expected non-empty system prompt")
	}
	user := messages[1].(map[string]interface{})["content"].(string)
	if !strings.Contains(user, "şablon metni") || !strings.Contains(user, "transkript metni") {
		t.Errorf("user prompt missing template or transcript: %q", user)
	}
	if !strings.Contains(user, "TEMPLATE:") || !strings.Contains(user, "TRANSCRIPT:") {
		t.Errorf("user prompt missing section markers: %q", user)
	}
}

func TestGenerateReport_EmptyChoices(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	})

	_, err := client.GenerateReport(context.Background(), "t", "s")
	if !apperrors.IsProviderError(err) {
		t.Errorf("expected provider error for empty choices, got %v", err)
	}
}
