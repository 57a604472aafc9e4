package classify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	openai "github.com/sashabaranov/go-openai"

	"github.com/abhisek/papergen/internal/bank"
)

// LLMConfig configures the hosted classifier backend.
type LLMConfig struct {
	// APIKey authenticates against the API. Required.
	APIKey string

	// BaseURL overrides the endpoint for OpenAI-compatible APIs
	// (OpenRouter, local gateways). Optional.
	BaseURL string

	// Model is the model ID. Defaults to gpt-4o-mini.
	Model string
}

const defaultLLMModel = "gpt-4o-mini"

// LLM classifies question text through an OpenAI-compatible chat API
// using structured JSON output validated against a schema.
type LLM struct {
	client *openai.Client
	model  string
}

// NewLLM creates an LLM classifier.
func NewLLM(cfg LLMConfig) (*LLM, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("classifier API key is required")
	}
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultLLMModel
	}
	return &LLM{client: openai.NewClientWithConfig(config), model: model}, nil
}

const classifySystemPrompt = `You label exam questions. Given one question, return its topic (a short lower-case subject label), difficulty (easy, medium, hard or expert), question type (text, multiple_choice, true_false, essay, numeric or code), and a confidence between 0 and 1 for each label.`

// classificationSchema constrains the structured response.
var classificationSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"topic": map[string]any{"type": "string"},
		"topic_confidence": map[string]any{
			"type": "number", "minimum": 0, "maximum": 1,
		},
		"difficulty": map[string]any{
			"type": "string",
			"enum": []any{"easy", "medium", "hard", "expert"},
		},
		"difficulty_confidence": map[string]any{
			"type": "number", "minimum": 0, "maximum": 1,
		},
		"type": map[string]any{
			"type": "string",
			"enum": []any{"text", "multiple_choice", "true_false", "essay", "numeric", "code"},
		},
		"type_confidence": map[string]any{
			"type": "number", "minimum": 0, "maximum": 1,
		},
	},
	"required": []any{
		"topic", "topic_confidence", "difficulty", "difficulty_confidence",
		"type", "type_confidence",
	},
	"additionalProperties": false,
}

// ErrBackendUnavailable indicates the classifier backend is down or
// rate limited; callers may retry or fall back to the Keyword classifier.
type ErrBackendUnavailable struct {
	Err error
}

func (e *ErrBackendUnavailable) Error() string {
	return fmt.Sprintf("classifier backend unavailable: %v", e.Err)
}

func (e *ErrBackendUnavailable) Unwrap() error { return e.Err }

// Classify sends the question text and parses the structured labels.
func (l *LLM) Classify(ctx context.Context, text string) (Classification, error) {
	schemaBytes, err := json.Marshal(classificationSchema)
	if err != nil {
		return Classification{}, fmt.Errorf("marshal schema: %w", err)
	}

	resp, err := l.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: l.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: classifySystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		MaxCompletionTokens: 256,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "question-labels",
				Schema: json.RawMessage(schemaBytes),
				Strict: true,
			},
		},
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return Classification{}, &ErrBackendUnavailable{Err: err}
		}
		return Classification{}, &ErrBackendUnavailable{Err: err}
	}
	if len(resp.Choices) == 0 {
		return Classification{}, fmt.Errorf("no choices in classifier response")
	}

	raw := json.RawMessage(resp.Choices[0].Message.Content)
	if err := validateLabels(raw); err != nil {
		return Classification{}, err
	}

	var parsed struct {
		Topic                string  `json:"topic"`
		TopicConfidence      float64 `json:"topic_confidence"`
		Difficulty           string  `json:"difficulty"`
		DifficultyConfidence float64 `json:"difficulty_confidence"`
		Type                 string  `json:"type"`
		TypeConfidence       float64 `json:"type_confidence"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Classification{}, fmt.Errorf("decode classifier response: %w", err)
	}
	return Classification{
		Topic:                parsed.Topic,
		TopicConfidence:      parsed.TopicConfidence,
		Difficulty:           bank.Difficulty(parsed.Difficulty),
		DifficultyConfidence: parsed.DifficultyConfidence,
		Type:                 bank.Type(parsed.Type),
		TypeConfidence:       parsed.TypeConfidence,
	}, nil
}

var (
	labelsSchemaOnce sync.Once
	labelsSchema     *jsonschema.Schema
	labelsSchemaErr  error
)

// validateLabels checks the raw response against the classification
// schema before decoding, so malformed backend output surfaces as a
// single well-formed error.
func validateLabels(raw json.RawMessage) error {
	labelsSchemaOnce.Do(func() {
		defBytes, err := json.Marshal(classificationSchema)
		if err != nil {
			labelsSchemaErr = err
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			labelsSchemaErr = err
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://question-labels.json", def); err != nil {
			labelsSchemaErr = err
			return
		}
		labelsSchema, labelsSchemaErr = c.Compile("schema://question-labels.json")
	})
	if labelsSchemaErr != nil {
		return fmt.Errorf("compile classification schema: %w", labelsSchemaErr)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("classifier returned invalid JSON: %w", err)
	}
	if err := labelsSchema.Validate(parsed); err != nil {
		return fmt.Errorf("classifier response failed schema validation: %w", err)
	}
	return nil
}
