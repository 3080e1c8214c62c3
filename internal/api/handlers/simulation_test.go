package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/finsim/backend/internal/montecarlo"
	"github.com/wonny/finsim/backend/pkg/config"
	"github.com/wonny/finsim/backend/pkg/logger"
)

func testHandler() *SimulationHandler {
	log := logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
	return NewSimulationHandler(config.SimulationConfig{MaxSims: 20000, MaxYears: 100}, log)
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestDrawdown_EmptyBodyUsesDefaults(t *testing.T) {
	h := testHandler()

	// keep the default-shaped request fast but preserve the horizon
	rec := postJSON(t, h.Drawdown, `{"n_sims": 50}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result montecarlo.DrawdownResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	// 30 years x 12 + 1
	assert.Len(t, result.Labels, 361)
	assert.Len(t, result.Percentiles.P10, 361)
	assert.Len(t, result.Percentiles.P50, 361)
	assert.Len(t, result.Percentiles.P90, 361)

	for _, label := range result.Labels {
		_, err := time.Parse("2006-01-02", label)
		require.NoError(t, err, "label %q", label)
	}
	assert.Equal(t, time.Now().Format("2006-01-02"), result.Labels[0])
}

func TestDrawdown_MalformedBodyFallsBackToDefaults(t *testing.T) {
	h := testHandler()

	rec := postJSON(t, h.Drawdown, `{"years": not-json`)
	require.Equal(t, http.StatusOK, rec.Code, "malformed bodies are tolerated")

	var result montecarlo.DrawdownResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Len(t, result.Labels, 361)
}

func TestDrawdown_BandOrderingOverHTTP(t *testing.T) {
	h := testHandler()

	rec := postJSON(t, h.Drawdown, `{"years": 5, "n_sims": 100, "seed": 42}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result montecarlo.DrawdownResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	require.Len(t, result.Percentiles.P50, 61)
	for i := range result.Percentiles.P50 {
		assert.LessOrEqual(t, result.Percentiles.P10[i], result.Percentiles.P50[i])
		assert.LessOrEqual(t, result.Percentiles.P50[i], result.Percentiles.P90[i])
		assert.LessOrEqual(t, result.Percentiles.P90[i], 0.0)
	}

	assert.Equal(t, montecarlo.Min(result.Percentiles.P50), result.Summary.MedianMaxDrawdown)
}

func TestDrawdown_SeededRequestsReproduce(t *testing.T) {
	h := testHandler()
	body := `{"years": 2, "n_sims": 50, "seed": 7, "start_date": "2026-01-01"}`

	first := postJSON(t, h.Drawdown, body)
	second := postJSON(t, h.Drawdown, body)

	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, first.Body.String(), second.Body.String(),
		"identical seeded requests must produce identical responses")
}

func TestDrawdown_InvalidParams(t *testing.T) {
	h := testHandler()

	tests := []struct {
		name string
		body string
	}{
		{"zero frequency", `{"frequency": 0}`},
		{"zero sims", `{"n_sims": 0}`},
		{"negative years", `{"years": -5}`},
		{"sims above cap", `{"n_sims": 100000}`},
		{"negative volatility", `{"volatility": -0.2}`},
		{"bad start date", `{"start_date": "01/02/2026"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h.Drawdown, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var errResp map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
			assert.NotEmpty(t, errResp["error"])
		})
	}
}

func TestCompound_Defaults(t *testing.T) {
	h := testHandler()

	rec := postJSON(t, h.Compound, `{"seed": 5}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result montecarlo.CompoundResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	assert.Len(t, result.Times, 361)
	assert.Len(t, result.Percentiles.P50Real, 361)
	assert.Greater(t, result.Summary.MedianFinal, 0.0)
	assert.Nil(t, result.Summary.ProbHitTarget)
	assert.Greater(t, result.Insights.TotalContrib, 0.0)
}

func TestCompound_WithTarget(t *testing.T) {
	h := testHandler()

	rec := postJSON(t, h.Compound, `{"seed": 5, "target": 1, "years": 3, "n_sims": 60}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result montecarlo.CompoundResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	require.NotNil(t, result.Summary.ProbHitTarget)
	assert.Equal(t, 1.0, *result.Summary.ProbHitTarget)
}

func TestFire_Defaults(t *testing.T) {
	h := testHandler()

	rec := postJSON(t, h.Fire, `{"seed": 5, "n_sims": 50}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result montecarlo.FireResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	// (20 + 30) years x 12 + 1
	assert.Len(t, result.Labels, 601)
	assert.Equal(t, 240, result.Summary.RetirementStartIndex)
}

func TestSuggestions_RequiresTarget(t *testing.T) {
	h := testHandler()

	rec := postJSON(t, h.Suggestions, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "missing target must be rejected")

	rec = postJSON(t, h.Suggestions, `{"target": 500000}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result montecarlo.SuggestionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Greater(t, result.Year1ContributionNeeded, 0.0)
	assert.NotEmpty(t, result.Note)
}
