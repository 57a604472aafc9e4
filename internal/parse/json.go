package parse

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/papergen/internal/bank"
)

// jsonQuestion is the on-disk JSON record shape. "text" is accepted as
// an alias for "question".
type jsonQuestion struct {
	ID         any      `json:"id"`
	Question   string   `json:"question"`
	Text       string   `json:"text"`
	Topic      string   `json:"topic"`
	Difficulty string   `json:"difficulty"`
	Type       string   `json:"type"`
	Keywords   []string `json:"keywords"`
	Marks      int      `json:"marks"`
	Unit       string   `json:"unit"`
	Subject    string   `json:"subject"`
}

// bankSchema validates the extracted question array before decoding so
// malformed banks fail with one descriptive error instead of silently
// producing half-empty records.
var bankSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"anyOf": []any{
			map[string]any{"required": []any{"question"}},
			map[string]any{"required": []any{"text"}},
		},
		"properties": map[string]any{
			"question":   map[string]any{"type": "string"},
			"text":       map[string]any{"type": "string"},
			"topic":      map[string]any{"type": "string"},
			"difficulty": map[string]any{"type": "string"},
			"type":       map[string]any{"type": "string"},
			"keywords": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"marks": map[string]any{"type": "integer", "minimum": 0},
			"unit":  map[string]any{"type": "string"},
		},
	},
}

var (
	bankSchemaOnce     sync.Once
	compiledBankSchema *jsonschema.Schema
	bankSchemaErr      error
)

// ParseJSON reads a JSON question bank: either a bare array of records
// or an object with a "questions" array.
func ParseJSON(path string) ([]bank.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read json: %w", err)
	}

	// Unwrap an optional {"questions": [...]} envelope.
	var envelope struct {
		Questions json.RawMessage `json:"questions"`
	}
	items := json.RawMessage(data)
	if err := json.Unmarshal(data, &envelope); err == nil && len(envelope.Questions) > 0 {
		items = envelope.Questions
	}

	if err := validateBank(items); err != nil {
		return nil, err
	}

	var records []jsonQuestion
	if err := json.Unmarshal(items, &records); err != nil {
		return nil, fmt.Errorf("decode json bank: %w", err)
	}

	var qs []bank.Question
	for _, rec := range records {
		text := rec.Question
		if text == "" {
			text = rec.Text
		}
		if text == "" {
			continue
		}
		unit := rec.Unit
		if unit == "" {
			unit = rec.Subject
		}
		q := bank.Question{
			Text:       text,
			Topic:      rec.Topic,
			Difficulty: bank.Difficulty(rec.Difficulty),
			Type:       bank.Type(rec.Type),
			Keywords:   rec.Keywords,
			Marks:      rec.Marks,
			Unit:       unit,
		}
		if rec.ID != nil {
			q.ID = fmt.Sprint(rec.ID)
		}
		qs = append(qs, q)
	}
	return qs, nil
}

func validateBank(items json.RawMessage) error {
	bankSchemaOnce.Do(func() {
		defBytes, err := json.Marshal(bankSchema)
		if err != nil {
			bankSchemaErr = err
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			bankSchemaErr = err
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://question-bank.json", def); err != nil {
			bankSchemaErr = err
			return
		}
		compiledBankSchema, bankSchemaErr = c.Compile("schema://question-bank.json")
	})
	if bankSchemaErr != nil {
		return fmt.Errorf("compile bank schema: %w", bankSchemaErr)
	}

	var parsed any
	if err := json.Unmarshal(items, &parsed); err != nil {
		return fmt.Errorf("invalid json bank: %w", err)
	}
	if err := compiledBankSchema.Validate(parsed); err != nil {
		return fmt.Errorf("bank failed schema validation: %w", err)
	}
	return nil
}
