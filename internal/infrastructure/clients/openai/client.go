package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/radyosim/backend/internal/domain/entities"
	"github.com/radyosim/backend/internal/domain/providers"
	"github.com/radyosim/backend/pkg/config"
	apperrors "github.com/radyosim/backend/pkg/errors"
)

// chatAudioFormats are the containers the multimodal endpoint accepts;
// anything else is coerced to wav.
var chatAudioFormats = map[string]bool{
	"wav": true,
	"mp3": true,
}

// Client talks to the OpenAI transcription and chat-completion endpoints.
// It implements both the Transcriber and ReportGenerator provider
// interfaces.
type Client struct {
	apiKey          string
	baseURL         string
	generationModel string
	httpClient      *http.Client
}

// NewClient creates a new OpenAI client.
func NewClient(cfg *config.OpenAIConfig, timeout time.Duration) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("openai api key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	generationModel := cfg.GenerationModel
	if generationModel == "" {
		generationModel = "gpt-4o"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		apiKey:          cfg.APIKey,
		baseURL:         baseURL,
		generationModel: generationModel,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

type transcriptionEnvelope struct {
	Text string `json:"text"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatEnvelope struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Transcribe converts audio to text using the given catalog model. The
// dedicated transcription endpoint is used for the baseline model; the
// multimodal chat endpoint carries base64 audio for everything else.
func (c *Client) Transcribe(ctx context.Context, audio *entities.AudioPayload, model providers.TranscriptionModel) (string, error) {
	if audio == nil || len(audio.Data) == 0 {
		return "", apperrors.NewValidationError("audio payload is empty")
	}

	if model.APIModel == providers.BaselineTranscriptionModelID {
		return c.transcribeWhisper(ctx, audio, model)
	}
	return c.transcribeChatAudio(ctx, audio, model)
}

// transcribeWhisper uploads the audio as multipart form data.
func (c *Client) transcribeWhisper(ctx context.Context, audio *entities.AudioPayload, model providers.TranscriptionModel) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", audio.Name)
	if err != nil {
		return "", apperrors.NewInternalError("failed to build multipart body", err)
	}
	if _, err := part.Write(audio.Data); err != nil {
		return "", apperrors.NewInternalError("failed to build multipart body", err)
	}
	_ = writer.WriteField("model", model.APIModel)
	_ = writer.WriteField("prompt", model.Instruction)
	if err := writer.Close(); err != nil {
		return "", apperrors.NewInternalError("failed to build multipart body", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/transcriptions", &body)
	if err != nil {
		return "", apperrors.NewInternalError("failed to build request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	raw, status, err := c.do(ctx, req, model.APIModel, "transcription")
	if err != nil {
		return "", err
	}

	var envelope transcriptionEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return "", apperrors.NewFormatError("unparseable transcription response", err)
	}
	if envelope.Text == "" {
		return "", apperrors.NewFormatError(fmt.Sprintf("transcription response missing text (status %d)", status), nil)
	}
	return envelope.Text, nil
}

// transcribeChatAudio embeds base64 audio in a multimodal chat message.
func (c *Client) transcribeChatAudio(ctx context.Context, audio *entities.AudioPayload, model providers.TranscriptionModel) (string, error) {
	format := audio.Ext()
	if !chatAudioFormats[format] {
		format = "wav"
	}

	payload := map[string]interface{}{
		"model":      model.APIModel,
		"modalities": []string{"text"},
		"messages": []map[string]interface{}{
			{
				"role": "user",
				"content": []map[string]interface{}{
					{"type": "text", "text": model.Instruction},
					{
						"type": "input_audio",
						"input_audio": map[string]string{
							"data":   base64.StdEncoding.EncodeToString(audio.Data),
							"format": format,
						},
					},
				},
			},
		},
	}

	raw, _, err := c.postJSON(ctx, "/chat/completions", payload, model.APIModel, "transcription")
	if err != nil {
		return "", err
	}
	return parseChatContent(raw)
}

// GenerateReport fills the template from the transcript with low-variance
// sampling.
func (c *Client) GenerateReport(ctx context.Context, transcript, template string) (string, error) {
	payload := map[string]interface{}{
		"model": c.generationModel,
		"messages": []chatMessage{
			{Role: "system", Content: reportSystemPrompt},
			{Role: "user", Content: buildReportUserPrompt(template, transcript)},
		},
		"temperature": reportTemperature,
	}

	raw, _, err := c.postJSON(ctx, "/chat/completions", payload, c.generationModel, "generation")
	if err != nil {
		return "", err
	}
	return parseChatContent(raw)
}

func parseChatContent(raw []byte) (string, error) {
	var envelope chatEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return "", apperrors.NewFormatError("unparseable chat completion response", err)
	}
	if len(envelope.Choices) == 0 || envelope.Choices[0].Message.Content == "" {
		return "", apperrors.NewFormatError("chat completion response missing content", nil)
	}
	return envelope.Choices[0].Message.Content, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload interface{}, model, operation string) ([]byte, int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to marshal request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	raw, status, doErr := c.do(ctx, req, model, operation)
	return raw, status, doErr
}

// do executes the request, records metrics, and maps non-success
// responses to provider errors carrying the upstream message.
func (c *Client) do(ctx context.Context, req *http.Request, model, operation string) ([]byte, int, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		recordOpenAIMetric(ctx, model, operation, 0, time.Since(start), err)
		return nil, 0, apperrors.NewProviderError("openai request failed", 0, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		recordOpenAIMetric(ctx, model, operation, resp.StatusCode, time.Since(start), err)
		return nil, resp.StatusCode, apperrors.NewProviderError("failed to read openai response", resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := upstreamMessage(raw)
		if message == "" {
			message = strings.TrimSpace(http.StatusText(resp.StatusCode))
		}
		recordOpenAIMetric(ctx, model, operation, resp.StatusCode, time.Since(start), fmt.Errorf("status %d", resp.StatusCode))
		return nil, resp.StatusCode, apperrors.NewProviderError(message, resp.StatusCode, nil)
	}

	recordOpenAIMetric(ctx, model, operation, resp.StatusCode, time.Since(start), nil)
	return raw, resp.StatusCode, nil
}

// upstreamMessage extracts the human-readable message from an OpenAI
// error envelope, empty when the body has a different shape.
func upstreamMessage(raw []byte) string {
	var envelope errorEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return ""
	}
	return envelope.Error.Message
}

type openAIMetrics struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestErrors   metric.Int64Counter
}

var openaiMetricsInit = false
var openaiMetrics openAIMetrics

func ensureOpenAIMetrics() {
	if openaiMetricsInit {
		return
	}
	meter := otel.Meter("github.com/radyosim/backend/openai")

	requestCount, err := meter.Int64Counter(
		"ai.openai.request.count",
		metric.WithDescription("Number of OpenAI requests"),
	)
	if err != nil {
		return
	}
	requestDuration, err := meter.Float64Histogram(
		"ai.openai.request.duration",
		metric.WithDescription("OpenAI request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}
	requestErrors, err := meter.Int64Counter(
		"ai.openai.request.errors",
		metric.WithDescription("Number of OpenAI request errors"),
	)
	if err != nil {
		return
	}

	openaiMetrics = openAIMetrics{
		requestCount:    requestCount,
		requestDuration: requestDuration,
		requestErrors:   requestErrors,
	}
	openaiMetricsInit = true
}

func recordOpenAIMetric(ctx context.Context, model, operation string, statusCode int, duration time.Duration, err error) {
	ensureOpenAIMetrics()
	if !openaiMetricsInit {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", "openai"),
		attribute.String("ai.model", model),
		attribute.String("ai.operation", operation),
	}
	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	openaiMetrics.requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	openaiMetrics.requestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		openaiMetrics.requestErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}
