package handlers

import (
	"net/http"
	"time"

	"github.com/wonny/finsim/backend/internal/montecarlo"
	"github.com/wonny/finsim/backend/pkg/config"
	"github.com/wonny/finsim/backend/pkg/logger"
)

// SimulationHandler handles the Monte Carlo simulation endpoints
// ⭐ SSOT: Monte Carlo API handlers live in this struct only
type SimulationHandler struct {
	caps   config.SimulationConfig
	logger *logger.Logger
}

// NewSimulationHandler creates a new simulation handler
func NewSimulationHandler(caps config.SimulationConfig, log *logger.Logger) *SimulationHandler {
	return &SimulationHandler{
		caps:   caps,
		logger: log,
	}
}

// drawdownRequest is the wire shape of a /drawdown body. Pointer fields
// distinguish "missing" from zero so each absent field takes its default.
type drawdownRequest struct {
	Years          *float64 `json:"years"`
	Frequency      *int     `json:"frequency"`
	NumSims        *int     `json:"n_sims"`
	ExpectedReturn *float64 `json:"expected_return"`
	Volatility     *float64 `json:"volatility"`
	ExpenseRatio   *float64 `json:"expense_ratio"`
	StartDate      *string  `json:"start_date"`
	Decimals       *int     `json:"decimals"`
	Seed           *int64   `json:"seed"`
}

// Drawdown simulates GBM price paths and returns drawdown percentile bands
// POST /drawdown
func (h *SimulationHandler) Drawdown(w http.ResponseWriter, r *http.Request) {
	var req drawdownRequest
	decodeLenient(r, &req, h.logger)

	params := montecarlo.DefaultDrawdownParams()
	if req.Years != nil {
		params.Years = *req.Years
	}
	if req.Frequency != nil {
		params.Frequency = *req.Frequency
	}
	if req.NumSims != nil {
		params.NumSims = *req.NumSims
	}
	if req.ExpectedReturn != nil {
		params.ExpectedReturn = *req.ExpectedReturn
	}
	if req.Volatility != nil {
		params.Volatility = *req.Volatility
	}
	if req.ExpenseRatio != nil {
		params.ExpenseRatio = *req.ExpenseRatio
	}
	if req.Decimals != nil {
		params.Decimals = *req.Decimals
	}
	if req.Seed != nil {
		params.Seed = *req.Seed
	}
	start, ok := parseStartDate(w, req.StartDate)
	if !ok {
		return
	}
	params.StartDate = start

	if err := params.Validate(h.caps.MaxSims, h.caps.MaxYears); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	started := time.Now()
	sim := montecarlo.NewDrawdownSimulator(montecarlo.NewBoxMullerSource(params.Seed))
	result := sim.Run(params)

	h.logger.WithFields(map[string]interface{}{
		"endpoint": "/drawdown",
		"n_sims":   params.NumSims,
		"years":    params.Years,
		"duration": time.Since(started),
	}).Info("Simulation complete")

	respondJSON(w, http.StatusOK, result)
}

// compoundRequest is the wire shape of a /simulate body
type compoundRequest struct {
	Initial            *float64 `json:"initial"`
	AnnualContribution *float64 `json:"annual_contribution"`
	ContributionGrowth *float64 `json:"contribution_growth"`
	Years              *int     `json:"years"`
	NumSims            *int     `json:"n_sims"`
	ExpectedReturn     *float64 `json:"expected_return"`
	Volatility         *float64 `json:"volatility"`
	ExpenseRatio       *float64 `json:"expense_ratio"`
	Inflation          *float64 `json:"inflation"`
	Target             *float64 `json:"target"`
	Frequency          *int     `json:"frequency"`
	Seed               *int64   `json:"seed"`
}

// Compound simulates wealth accumulation paths with growing contributions
// POST /simulate
func (h *SimulationHandler) Compound(w http.ResponseWriter, r *http.Request) {
	var req compoundRequest
	decodeLenient(r, &req, h.logger)

	params := montecarlo.DefaultCompoundParams()
	if req.Initial != nil {
		params.Initial = *req.Initial
	}
	if req.AnnualContribution != nil {
		params.AnnualContribution = *req.AnnualContribution
	}
	if req.ContributionGrowth != nil {
		params.ContributionGrowth = *req.ContributionGrowth
	}
	if req.Years != nil {
		params.Years = *req.Years
	}
	if req.NumSims != nil {
		params.NumSims = *req.NumSims
	}
	if req.ExpectedReturn != nil {
		params.ExpectedReturn = *req.ExpectedReturn
	}
	if req.Volatility != nil {
		params.Volatility = *req.Volatility
	}
	if req.ExpenseRatio != nil {
		params.ExpenseRatio = *req.ExpenseRatio
	}
	if req.Inflation != nil {
		params.Inflation = *req.Inflation
	}
	if req.Target != nil {
		params.Target = *req.Target
	}
	if req.Frequency != nil {
		params.Frequency = *req.Frequency
	}
	if req.Seed != nil {
		params.Seed = *req.Seed
	}

	if err := params.Validate(h.caps.MaxSims, h.caps.MaxYears); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	started := time.Now()
	sim := montecarlo.NewCompoundSimulator(montecarlo.NewBoxMullerSource(params.Seed))
	result := sim.Run(params)

	h.logger.WithFields(map[string]interface{}{
		"endpoint": "/simulate",
		"n_sims":   params.NumSims,
		"years":    params.Years,
		"duration": time.Since(started),
	}).Info("Simulation complete")

	respondJSON(w, http.StatusOK, result)
}

// fireRequest is the wire shape of a /fire body
type fireRequest struct {
	InitialBalance      *float64 `json:"initial_balance"`
	MonthlyDisposable   *float64 `json:"monthly_disposable"`
	MonthlyDrawdown     *float64 `json:"monthly_drawdown"`
	YearsToRetire       *int     `json:"years_to_retire"`
	YearsInRetirement   *int     `json:"years_in_retirement"`
	ExpectedReturnAccum *float64 `json:"expected_return_accum"`
	ExpectedReturnRet   *float64 `json:"expected_return_ret"`
	Volatility          *float64 `json:"volatility"`
	Inflation           *float64 `json:"inflation"`
	ExpenseRatio        *float64 `json:"expense_ratio"`
	NumSims             *int     `json:"n_sims"`
	Frequency           *int     `json:"frequency"`
	StartDate           *string  `json:"start_date"`
	Decimals            *int     `json:"decimals"`
	Seed                *int64   `json:"seed"`
}

// Fire simulates the two-phase accumulation/retirement wealth paths
// POST /fire
func (h *SimulationHandler) Fire(w http.ResponseWriter, r *http.Request) {
	var req fireRequest
	decodeLenient(r, &req, h.logger)

	params := montecarlo.DefaultFireParams()
	if req.InitialBalance != nil {
		params.InitialBalance = *req.InitialBalance
	}
	if req.MonthlyDisposable != nil {
		params.MonthlyDisposable = *req.MonthlyDisposable
	}
	if req.MonthlyDrawdown != nil {
		params.MonthlyDrawdown = *req.MonthlyDrawdown
	}
	if req.YearsToRetire != nil {
		params.YearsToRetire = *req.YearsToRetire
	}
	if req.YearsInRetirement != nil {
		params.YearsInRetirement = *req.YearsInRetirement
	}
	if req.ExpectedReturnAccum != nil {
		params.ExpectedReturnAccum = *req.ExpectedReturnAccum
	}
	if req.ExpectedReturnRet != nil {
		params.ExpectedReturnRet = *req.ExpectedReturnRet
	}
	if req.Volatility != nil {
		params.Volatility = *req.Volatility
	}
	if req.Inflation != nil {
		params.Inflation = *req.Inflation
	}
	if req.ExpenseRatio != nil {
		params.ExpenseRatio = *req.ExpenseRatio
	}
	if req.NumSims != nil {
		params.NumSims = *req.NumSims
	}
	if req.Frequency != nil {
		params.Frequency = *req.Frequency
	}
	if req.Decimals != nil {
		params.Decimals = *req.Decimals
	}
	if req.Seed != nil {
		params.Seed = *req.Seed
	}
	start, ok := parseStartDate(w, req.StartDate)
	if !ok {
		return
	}
	params.StartDate = start

	if err := params.Validate(h.caps.MaxSims, h.caps.MaxYears); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	started := time.Now()
	sim := montecarlo.NewFireSimulator(montecarlo.NewBoxMullerSource(params.Seed))
	result := sim.Run(params)

	h.logger.WithFields(map[string]interface{}{
		"endpoint": "/fire",
		"n_sims":   params.NumSims,
		"years":    params.YearsToRetire + params.YearsInRetirement,
		"duration": time.Since(started),
	}).Info("Simulation complete")

	respondJSON(w, http.StatusOK, result)
}

// suggestionRequest is the wire shape of a /suggestions body
type suggestionRequest struct {
	Target                    *float64 `json:"target"`
	HorizonYears              *int     `json:"horizon_years"`
	ExpectedReturn            *float64 `json:"expected_return"`
	Volatility                *float64 `json:"volatility"`
	ExpenseRatio              *float64 `json:"expense_ratio"`
	Initial                   *float64 `json:"initial"`
	CurrentAnnualContribution *float64 `json:"current_annual_contribution"`
	ContributionGrowth        *float64 `json:"contribution_growth"`
}

// Suggestions solves the contribution needed to reach a wealth target
// POST /suggestions
func (h *SimulationHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	var req suggestionRequest
	decodeLenient(r, &req, h.logger)

	params := montecarlo.DefaultSuggestionParams()
	if req.Target != nil {
		params.Target = *req.Target
	}
	if req.HorizonYears != nil {
		params.HorizonYears = *req.HorizonYears
	}
	if req.ExpectedReturn != nil {
		params.ExpectedReturn = *req.ExpectedReturn
	}
	if req.Volatility != nil {
		params.Volatility = *req.Volatility
	}
	if req.ExpenseRatio != nil {
		params.ExpenseRatio = *req.ExpenseRatio
	}
	if req.Initial != nil {
		params.Initial = *req.Initial
	}
	if req.CurrentAnnualContribution != nil {
		params.CurrentAnnualContribution = *req.CurrentAnnualContribution
	}
	if req.ContributionGrowth != nil {
		params.ContributionGrowth = *req.ContributionGrowth
	}

	if err := params.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, montecarlo.SolveContribution(params))
}

// parseStartDate turns an optional YYYY-MM-DD wire field into a time.Time.
// A missing field means "today" (zero value); an unparseable one is a 400.
func parseStartDate(w http.ResponseWriter, raw *string) (time.Time, bool) {
	if raw == nil || *raw == "" {
		return time.Time{}, true
	}

	start, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, "start_date must be formatted YYYY-MM-DD")
		return time.Time{}, false
	}
	return start, true
}
