package handlers

import (
	"net/http"
	"time"

	"github.com/wonny/finsim/backend/internal/mortgage"
	"github.com/wonny/finsim/backend/pkg/logger"
)

// MortgageHandler handles the amortization endpoint
type MortgageHandler struct {
	logger *logger.Logger
}

// NewMortgageHandler creates a new mortgage handler
func NewMortgageHandler(log *logger.Logger) *MortgageHandler {
	return &MortgageHandler{logger: log}
}

// mortgageRequest is the wire shape of a /mortgage body
type mortgageRequest struct {
	Principal          *float64                `json:"principal"`
	TermYears          *int                    `json:"term_years"`
	FixedYears         *int                    `json:"fixed_years"`
	FixedRate          *float64                `json:"fixed_rate"`
	VariableRate       *float64                `json:"variable_rate"`
	MonthlyOverpayment *float64                `json:"monthly_overpayment"`
	ExtraPayments      []mortgage.ExtraPayment `json:"extra_payments"`
	StartDate          *string                 `json:"start_date"`
	RecalcOnRateChange *bool                   `json:"recalc_on_rate_change"`
	Decimals           *int                    `json:"decimals"`
}

// Mortgage computes the amortization schedule and baseline comparison
// POST /mortgage
func (h *MortgageHandler) Mortgage(w http.ResponseWriter, r *http.Request) {
	var req mortgageRequest
	decodeLenient(r, &req, h.logger)

	params := mortgage.DefaultParams()
	if req.Principal != nil {
		params.Principal = *req.Principal
	}
	if req.TermYears != nil {
		params.TermYears = *req.TermYears
	}
	if req.FixedYears != nil {
		params.FixedYears = *req.FixedYears
	}
	if req.FixedRate != nil {
		params.FixedRate = *req.FixedRate
	}
	if req.VariableRate != nil {
		params.VariableRate = *req.VariableRate
	}
	if req.MonthlyOverpayment != nil {
		params.MonthlyOverpayment = *req.MonthlyOverpayment
	}
	if req.ExtraPayments != nil {
		params.ExtraPayments = req.ExtraPayments
	}
	if req.RecalcOnRateChange != nil {
		params.RecalcOnRateChange = *req.RecalcOnRateChange
	}
	if req.Decimals != nil {
		params.Decimals = *req.Decimals
	}
	start, ok := parseStartDate(w, req.StartDate)
	if !ok {
		return
	}
	params.StartDate = start

	if err := params.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	started := time.Now()
	result := mortgage.Run(params)

	h.logger.WithFields(map[string]interface{}{
		"endpoint":      "/mortgage",
		"term_years":    params.TermYears,
		"payoff_months": result.Summary.PayoffMonths,
		"duration":      time.Since(started),
	}).Info("Amortization complete")

	respondJSON(w, http.StatusOK, result)
}
