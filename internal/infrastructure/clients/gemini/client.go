package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
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

// audioMimeTypes maps audio file extensions to the mime types the
// generate-content endpoint accepts. Unknown containers fall back to
// audio/webm, which Gemini decodes permissively.
var audioMimeTypes = map[string]string{
	"mp3":  "audio/mp3",
	"wav":  "audio/wav",
	"webm": "audio/webm",
	"m4a":  "audio/mp4",
	"mpga": "audio/mpeg",
	"mpeg": "audio/mpeg",
}

const defaultAudioMime = "audio/webm"

// Client talks to the Gemini generate-content endpoint. It implements
// both the Transcriber and ReportGenerator provider interfaces.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewClient creates a new Gemini client.
func NewClient(cfg *config.GeminiConfig, timeout time.Duration) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}
	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-pro"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		model:   model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// apiVersion selects v1beta for experimental model ids and v1 for stable
// ones. Gemini 2.x models are still served from the beta surface.
func apiVersion(model string) string {
	if strings.Contains(model, "exp") ||
		strings.Contains(model, "thinking") ||
		strings.HasPrefix(model, "gemini-2.") {
		return "v1beta"
	}
	return "v1"
}

func mimeForAudio(audio *entities.AudioPayload) string {
	if mime, ok := audioMimeTypes[audio.Ext()]; ok {
		return mime
	}
	return defaultAudioMime
}

type contentPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type content struct {
	Parts []contentPart `json:"parts"`
}

type generateRequest struct {
	SystemInstruction *content  `json:"system_instruction,omitempty"`
	Contents          []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Transcribe converts audio to text. The catalog model id is advisory on
// this path; a single configured Gemini model serves every tier.
func (c *Client) Transcribe(ctx context.Context, audio *entities.AudioPayload, model providers.TranscriptionModel) (string, error) {
	if audio == nil || len(audio.Data) == 0 {
		return "", apperrors.NewValidationError("audio payload is empty")
	}

	instruction := model.Instruction
	if instruction == "" || model.Provider != providers.ProviderGemini {
		instruction = transcriptionInstruction
	}

	request := generateRequest{
		Contents: []content{
			{
				Parts: []contentPart{
					{Text: instruction},
					{InlineData: &inlineData{
						MimeType: mimeForAudio(audio),
						Data:     base64.StdEncoding.EncodeToString(audio.Data),
					}},
				},
			},
		},
	}
	return c.generate(ctx, request, "transcription")
}

// GenerateReport fills the template from the transcript using a system
// instruction.
func (c *Client) GenerateReport(ctx context.Context, transcript, template string) (string, error) {
	request := generateRequest{
		SystemInstruction: &content{
			Parts: []contentPart{{Text: reportSystemPrompt}},
		},
		Contents: []content{
			{Parts: []contentPart{{Text: buildReportPrompt(template, transcript)}}},
		},
	}
	return c.generate(ctx, request, "generation")
}

func (c *Client) generate(ctx context.Context, request generateRequest, operation string) (string, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return "", apperrors.NewInternalError("failed to marshal request", err)
	}

	endpoint := fmt.Sprintf("%s/%s/models/%s:generateContent?key=%s",
		c.baseURL, apiVersion(c.model), c.model, url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", apperrors.NewInternalError("failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		recordGeminiMetric(ctx, c.model, operation, 0, time.Since(start), err)
		return "", apperrors.NewProviderError("gemini request failed", 0, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		recordGeminiMetric(ctx, c.model, operation, resp.StatusCode, time.Since(start), err)
		return "", apperrors.NewProviderError("failed to read gemini response", resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := upstreamMessage(raw)
		if message == "" {
			message = strings.TrimSpace(http.StatusText(resp.StatusCode))
		}
		recordGeminiMetric(ctx, c.model, operation, resp.StatusCode, time.Since(start), fmt.Errorf("status %d", resp.StatusCode))
		return "", apperrors.NewProviderError(message, resp.StatusCode, nil)
	}
	recordGeminiMetric(ctx, c.model, operation, resp.StatusCode, time.Since(start), nil)

	var envelope generateResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return "", apperrors.NewFormatError("unparseable gemini response", err)
	}
	if len(envelope.Candidates) == 0 ||
		len(envelope.Candidates[0].Content.Parts) == 0 ||
		envelope.Candidates[0].Content.Parts[0].Text == "" {
		return "", apperrors.NewFormatError("gemini response missing candidate text", nil)
	}
	return envelope.Candidates[0].Content.Parts[0].Text, nil
}

func upstreamMessage(raw []byte) string {
	var envelope errorEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return ""
	}
	return envelope.Error.Message
}

type geminiMetricsSet struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestErrors   metric.Int64Counter
}

var geminiMetricsInit = false
var geminiMetrics geminiMetricsSet

func ensureGeminiMetrics() {
	if geminiMetricsInit {
		return
	}
	meter := otel.Meter("github.com/radyosim/backend/gemini")

	requestCount, err := meter.Int64Counter(
		"ai.gemini.request.count",
		metric.WithDescription("Number of Gemini requests"),
	)
	if err != nil {
		return
	}
	requestDuration, err := meter.Float64Histogram(
		"ai.gemini.request.duration",
		metric.WithDescription("Gemini request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}
	requestErrors, err := meter.Int64Counter(
		"ai.gemini.request.errors",
		metric.WithDescription("Number of Gemini request errors"),
	)
	if err != nil {
		return
	}

	geminiMetrics = geminiMetricsSet{
		requestCount:    requestCount,
		requestDuration: requestDuration,
		requestErrors:   requestErrors,
	}
	geminiMetricsInit = true
}

func recordGeminiMetric(ctx context.Context, model, operation string, statusCode int, duration time.Duration, err error) {
	ensureGeminiMetrics()
	if !geminiMetricsInit {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", model),
		attribute.String("ai.operation", operation),
	}
	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	geminiMetrics.requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	geminiMetrics.requestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		geminiMetrics.requestErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}
