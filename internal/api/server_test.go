package api

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/papergen/internal/bank"
	"github.com/abhisek/papergen/internal/export"
	"github.com/abhisek/papergen/internal/selection"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	engine := selection.NewEngine(bank.New(), nil, rand.New(rand.NewSource(7)))

	var qs []bank.Question
	for i := 0; i < 10; i++ {
		qs = append(qs, bank.Question{
			Text:       "Explain the concept of electric flux in applied scenarios, variant " + string(rune('a'+i)) + ".",
			Topic:      "physics",
			Difficulty: bank.DifficultyMedium,
			Type:       bank.TypeText,
			Marks:      2,
			Unit:       "unit1",
		})
	}
	for i := 0; i < 3; i++ {
		qs = append(qs, bank.Question{
			Text:       "Derive and discuss Maxwell's equation number " + string(rune('1'+i)) + " with applications.",
			Topic:      "physics",
			Difficulty: bank.DifficultyHard,
			Type:       bank.TypeEssay,
			Marks:      16,
			Unit:       "unit2",
		})
	}
	_, err := engine.Load(context.Background(), qs)
	require.NoError(t, err)

	return NewServer(engine, export.DefaultLayout())
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), "body: %s", rec.Body.String())
	}
	return rec, decoded
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(t).Router().ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetUnits(t *testing.T) {
	rec, body := doJSON(t, newTestServer(t).Router(), "GET", "/api/units", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{"unit1", "unit2"}, body["units"])
}

func TestGetStats(t *testing.T) {
	rec, body := doJSON(t, newTestServer(t).Router(), "GET", "/api/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(13), body["total"])
	topics, ok := body["topics"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(13), topics["physics"])
}

func TestPostSelect(t *testing.T) {
	rec, body := doJSON(t, newTestServer(t).Router(), "POST", "/api/select", map[string]any{
		"topic": "physics",
		"count": 5,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(5), body["count"])
	questions, ok := body["questions"].([]any)
	require.True(t, ok)
	assert.Len(t, questions, 5)
}

func TestPostSelect_NoMatchesIsOKWithWarning(t *testing.T) {
	rec, body := doJSON(t, newTestServer(t).Router(), "POST", "/api/select", map[string]any{
		"topic": "botany",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), body["count"])
	assert.Equal(t, []any{}, body["questions"])
	warnings, ok := body["warnings"].([]any)
	require.True(t, ok)
	assert.NotEmpty(t, warnings)
}

func TestPostSelect_BadBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/select", bytes.NewBufferString("{broken"))
	rec := httptest.NewRecorder()
	newTestServer(t).Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostPaper(t *testing.T) {
	rec, body := doJSON(t, newTestServer(t).Router(), "POST", "/api/paper", map[string]any{
		"units":       []string{"unit1", "unit2"},
		"total_marks": 36,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(36), body["target_marks"])

	paper, ok := body["paper"].(map[string]any)
	require.True(t, ok, "paper missing: %v", body)
	sections, ok := paper["sections"].([]any)
	require.True(t, ok)
	assert.NotEmpty(t, sections)
}

func TestPostPaper_Validation(t *testing.T) {
	router := newTestServer(t).Router()

	rec, _ := doJSON(t, router, "POST", "/api/paper", map[string]any{"units": []string{"unit1"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body := doJSON(t, router, "POST", "/api/paper", map[string]any{
		"units":       []string{"nonexistent"},
		"total_marks": 20,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, body["error"], "nonexistent")
}
