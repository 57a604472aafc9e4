package criteria

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/abhisek/papergen/internal/bank"
)

var keywordSplit = regexp.MustCompile(`[,;]`)

// Normalize converts a raw field mapping into canonical Criteria.
// String values are comma-split into terms, terms are trimmed and
// lower-cased, invalid enum terms are dropped, and out-of-range numbers
// fall back to defaults. Unknown keys pass through in Extra. The second
// return value lists human-readable warnings for everything that was
// dropped or adjusted; Normalize itself never fails.
func Normalize(raw map[string]any) (Criteria, []string) {
	c := Criteria{Count: DefaultCount, Diversity: true}
	var warns []string

	for key, val := range raw {
		switch key {
		case "topic", "topics":
			c.Topics = parseTerms(val)
		case "difficulty", "difficulties":
			c.Difficulties, warns = parseDifficulties(val, warns)
		case "type", "types":
			c.Types, warns = parseTypes(val, warns)
		case "keywords":
			c.Keywords = parseKeywords(val)
		case "exclude_keywords":
			c.ExcludeKeywords = parseKeywords(val)
		case "text_contains":
			c.TextContains = fmt.Sprint(val)
		case "min_length":
			c.MinLength, warns = parseLength(key, val, warns)
		case "max_length":
			c.MaxLength, warns = parseLength(key, val, warns)
		case "count":
			c.Count, warns = parseCount(val, warns)
		case "diversity":
			c.Diversity = parseBool(val)
		case "reference_text":
			c.ReferenceText = fmt.Sprint(val)
		default:
			if c.Extra == nil {
				c.Extra = map[string]any{}
			}
			c.Extra[key] = val
		}
	}

	// Keep min <= max; a reversed pair is a user slip, not an error.
	if c.MinLength > 0 && c.MaxLength > 0 && c.MinLength > c.MaxLength {
		warns = append(warns, fmt.Sprintf("min_length %d > max_length %d, swapping", c.MinLength, c.MaxLength))
		c.MinLength, c.MaxLength = c.MaxLength, c.MinLength
	}

	// Overlapping include/exclude keywords are reported, not resolved:
	// exclusion runs after inclusion in the pipeline, so the overlapping
	// term acts as an exclude.
	if overlap := intersect(c.Keywords, c.ExcludeKeywords); len(overlap) > 0 {
		warns = append(warns, fmt.Sprintf("keywords appear in both include and exclude sets (exclude wins): %s",
			strings.Join(overlap, ", ")))
	}

	return c, warns
}

// ParseString parses the compact "key:value,key:value" criteria form
// used by the CLI and saved templates.
func ParseString(s string) (Criteria, []string) {
	return Normalize(StringMap(s))
}

// StringMap converts the compact form into a raw criteria map without
// normalizing, so callers can layer overrides before Normalize runs.
// Pairs missing a colon are skipped.
func StringMap(s string) map[string]any {
	raw := map[string]any{}
	for _, pair := range strings.Split(s, ",") {
		key, val, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		raw[strings.TrimSpace(key)] = strings.TrimSpace(val)
	}
	return raw
}

// parseTerms splits a string on commas, or stringifies list elements,
// then trims, lower-cases and drops empties.
func parseTerms(val any) []string {
	var items []string
	switch v := val.(type) {
	case string:
		items = strings.Split(v, ",")
	case []string:
		items = v
	case []any:
		for _, e := range v {
			items = append(items, fmt.Sprint(e))
		}
	default:
		items = []string{fmt.Sprint(v)}
	}
	var out []string
	for _, it := range items {
		it = strings.ToLower(strings.TrimSpace(it))
		if it != "" {
			out = append(out, it)
		}
	}
	return out
}

// parseKeywords is parseTerms with semicolons accepted as separators.
func parseKeywords(val any) []string {
	if s, ok := val.(string); ok {
		var out []string
		for _, it := range keywordSplit.Split(s, -1) {
			it = strings.ToLower(strings.TrimSpace(it))
			if it != "" {
				out = append(out, it)
			}
		}
		return out
	}
	return parseTerms(val)
}

func parseDifficulties(val any, warns []string) ([]bank.Difficulty, []string) {
	var out []bank.Difficulty
	for _, term := range parseTerms(val) {
		if !bank.ValidDifficulty(term) {
			warns = append(warns, fmt.Sprintf("invalid difficulty %q dropped", term))
			continue
		}
		out = append(out, bank.Difficulty(term))
	}
	if len(out) == 0 {
		out = []bank.Difficulty{bank.DifficultyMedium}
	}
	return out, warns
}

func parseTypes(val any, warns []string) ([]bank.Type, []string) {
	var out []bank.Type
	for _, term := range parseTerms(val) {
		if !bank.ValidType(term) {
			warns = append(warns, fmt.Sprintf("invalid question type %q dropped", term))
			continue
		}
		out = append(out, bank.Type(term))
	}
	if len(out) == 0 {
		out = []bank.Type{bank.TypeText}
	}
	return out, warns
}

func parseCount(val any, warns []string) (int, []string) {
	n, err := toInt(val)
	if err != nil || n <= 0 {
		warns = append(warns, fmt.Sprintf("invalid count %v, using default %d", val, DefaultCount))
		return DefaultCount, warns
	}
	if n > MaxCount {
		warns = append(warns, fmt.Sprintf("count %d capped at %d", n, MaxCount))
		return MaxCount, warns
	}
	return n, warns
}

func parseLength(key string, val any, warns []string) (int, []string) {
	n, err := toInt(val)
	if err != nil || n < 0 {
		warns = append(warns, fmt.Sprintf("invalid %s %v, ignoring", key, val))
		return 0, warns
	}
	return n, warns
}

func parseBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "1", "on":
			return true
		}
		return false
	default:
		return false
	}
}

func toInt(val any) (int, error) {
	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case string:
		return strconv.Atoi(strings.TrimSpace(v))
	}
	return 0, fmt.Errorf("not an integer: %v", val)
}

func intersect(a, b []string) []string {
	inA := map[string]bool{}
	for _, s := range a {
		inA[s] = true
	}
	var out []string
	for _, s := range b {
		if inA[s] {
			out = append(out, s)
		}
	}
	return out
}
