package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	generativeAI "github.com/FACorreiaa/go-genai-sdk/lib"
	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/jeonnam-stay/jeonnam-stay/internal/app/models"
	"github.com/jeonnam-stay/jeonnam-stay/internal/observability/metrics"
	"github.com/jeonnam-stay/jeonnam-stay/internal/pkg/config"
)

// GenerationError is returned for any failure of the upstream generation
// call: transport errors, empty or non-JSON bodies, and schema violations.
type GenerationError struct {
	Stage string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("itinerary generation failed (%s): %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Client is the slice of the genai SDK the generator depends on.
type Client interface {
	GenerateResponse(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini wraps one structured-output Gemini call per Generate. The API key is
// injected at construction time; there is no retry, caching or rate limiting.
type Gemini struct {
	client      Client
	model       string
	temperature float32
	logger      *zap.Logger
}

func New(ctx context.Context, cfg config.GeminiConfig, logger *zap.Logger) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	ai, err := generativeAI.NewLLMChatClient(ctx, cfg.APIKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create gemini client")
	}
	return NewWithClient(ai, cfg, logger), nil
}

// NewWithClient wires an explicit client, used by tests to stub the model.
func NewWithClient(client Client, cfg config.GeminiConfig, logger *zap.Logger) *Gemini {
	return &Gemini{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		logger:      logger,
	}
}

// Generate issues exactly one upstream request and returns a fully validated
// RecommendedRoute, or a GenerationError. A partially populated route is
// never returned.
func (g *Gemini) Generate(ctx context.Context, prefs models.UserPreferences) (*models.RecommendedRoute, error) {
	ctx, span := otel.Tracer("ItineraryGenerator").Start(ctx, "Generate", trace.WithAttributes(
		attribute.String("prefs.style", string(prefs.Style)),
		attribute.Int("prefs.duration", prefs.Duration),
		attribute.String("model", g.model),
	))
	defer span.End()

	m := metrics.Get()
	m.GenerationsStarted.Add(ctx, 1)
	start := time.Now()

	response, err := g.client.GenerateResponse(ctx, buildPrompt(prefs), g.generationConfig())
	m.GenerationDuration.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		m.GenerationsFailed.Add(ctx, 1)
		span.RecordError(err)
		span.SetStatus(codes.Error, "upstream request failed")
		g.logger.Error("Itinerary generation request failed", zap.Error(err))
		return nil, &GenerationError{Stage: "request", Err: err}
	}

	text := responseText(response)
	if text == "" {
		m.GenerationsFailed.Add(ctx, 1)
		err := errors.New("empty model response")
		span.RecordError(err)
		span.SetStatus(codes.Error, "empty response")
		g.logger.Error("Itinerary generation returned empty response")
		return nil, &GenerationError{Stage: "response", Err: err}
	}
	span.SetAttributes(attribute.Int("response.length", len(text)))

	route, genErr := decodeRoute(text)
	if genErr != nil {
		m.GenerationsFailed.Add(ctx, 1)
		span.RecordError(genErr)
		span.SetStatus(codes.Error, "invalid response")
		g.logger.Error("Itinerary response rejected",
			zap.String("stage", genErr.Stage),
			zap.Error(genErr.Err))
		return nil, genErr
	}

	m.GenerationsSucceeded.Add(ctx, 1)
	span.SetStatus(codes.Ok, "route generated")
	g.logger.Info("Itinerary generated",
		zap.String("city", route.SelectedCity),
		zap.Int("days", len(route.Days)),
		zap.Duration("duration", time.Since(start)))
	return route, nil
}

func (g *Gemini) generationConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](g.temperature),
		ResponseMIMEType: "application/json",
		ResponseSchema:   routeSchema(),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: buildSystemInstruction()}},
		},
		// Skip the thinking phase, latency matters more than depth here.
		ThinkingConfig: &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](0)},
	}
}

// responseText concatenates the text parts of the first candidate.
func responseText(response *genai.GenerateContentResponse) string {
	if response == nil || len(response.Candidates) == 0 || response.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range response.Candidates[0].Content.Parts {
		if part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(sb.String())
}

// decodeRoute validates the raw model output against the response contract
// and unmarshals it. Validation happens before construction so a response
// missing required fields never yields a half-filled route.
func decodeRoute(raw string) (*models.RecommendedRoute, *GenerationError) {
	cleaned := cleanJSONResponse(raw)

	schemaLoader := gojsonschema.NewStringLoader(responseSchemaJSON)
	documentLoader := gojsonschema.NewStringLoader(cleaned)
	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, &GenerationError{Stage: "decode", Err: errors.Wrap(err, "response is not valid JSON")}
	}
	if !result.Valid() {
		violations := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			violations[i] = desc.String()
		}
		return nil, &GenerationError{Stage: "schema", Err: errors.Errorf("response violates route contract: %s", strings.Join(violations, "; "))}
	}

	var route models.RecommendedRoute
	if err := json.Unmarshal([]byte(cleaned), &route); err != nil {
		return nil, &GenerationError{Stage: "decode", Err: err}
	}
	return &route, nil
}

// cleanJSONResponse removes markdown code fences the model sometimes wraps
// JSON output in.
func cleanJSONResponse(response string) string {
	cleaned := strings.ReplaceAll(response, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}
