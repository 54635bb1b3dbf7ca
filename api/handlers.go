/*
handlers.go - HTTP API handlers for the termination-pay calculators

PURPOSE:
  Exposes the finiquito / liquidación calculators via REST API. Handles
  HTTP request/response, JSON serialization, and delegates to the
  severance package.

ENDPOINTS:
  Calculations:
    POST   /api/finiquito              Calculate and store a result
    GET    /api/finiquito/{id}         Fetch a stored result
    GET    /api/finiquito/{id}/pdf     Printable receipt of a stored result
    POST   /api/finiquito/validate     Form validation (dates vs. today)

  Reference data:
    GET    /api/legal-constants        Active legal table

  Scenarios:
    GET    /api/scenarios              List worked examples
    POST   /api/scenarios/{id}/run     Run a worked example

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Calculator: bound to the active legal table
  - Store: result persistence with expiry
  - TTL and clock for record expiry

ERROR HANDLING:
  Errors are returned in the envelope with an HTTP status:
  - 400: Validation errors (every issue listed), malformed JSON
  - 404: Unknown or expired result id, unknown scenario
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - response.go: Envelope and error mapping
  - scenarios.go: Worked examples
  - server.go: Router setup and middleware
*/
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/warp/severance-engine/severance"
	"github.com/warp/severance-engine/store"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

const maxBodyBytes = 1 << 20

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	calc   *severance.Calculator
	store  store.ResultStore
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

// HandlerOption customises a Handler.
type HandlerOption func(*Handler)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) HandlerOption {
	return func(h *Handler) { h.now = now }
}

// WithLogger sets the logger used for internal errors.
func WithLogger(logger *slog.Logger) HandlerOption {
	return func(h *Handler) { h.logger = logger }
}

// NewHandler creates a handler. Stored results expire ttl after creation.
func NewHandler(calc *severance.Calculator, results store.ResultStore, ttl time.Duration, opts ...HandlerOption) *Handler {
	h := &Handler{
		calc:   calc,
		store:  results,
		ttl:    ttl,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// =============================================================================
// CALCULATION HANDLERS
// =============================================================================

// Calculate runs the requested calculator and stores the result.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	h.calculate(w, r, req, "Calculation complete")
}

func (h *Handler) calculate(w http.ResponseWriter, r *http.Request, req CalculateRequest, message string) {
	kind, in, issues := req.toInput(h.calc.Table())
	if len(issues) > 0 {
		writeIssues(w, issues, nil)
		return
	}

	var (
		res severance.Result
		err error
	)
	switch kind {
	case severance.KindLiquidation:
		var liq *severance.LiquidationResult
		liq, err = h.calc.CalculateLiquidation(in)
		res = liq
	default:
		var fin *severance.SeveranceResult
		fin, err = h.calc.CalculateSeverance(in.TerminationInput)
		res = fin
	}
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	rec := store.NewRecord(res, h.now(), h.ttl)
	if err := h.store.Save(r.Context(), rec); err != nil {
		h.handleError(w, r, fmt.Errorf("save %s result: %w", kind, err))
		return
	}

	h.logger.Info("calculation stored",
		"id", rec.ID,
		"kind", string(kind),
		"total", res.GrandTotal().StringFixed(2),
	)
	created(w, message, toRecordDTO(rec))
}

// GetResult returns a stored calculation.
func (h *Handler) GetResult(w http.ResponseWriter, r *http.Request) {
	rec, err := h.store.Get(r.Context(), chi.URLParam(r, "id"), h.now())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	success(w, "", toRecordDTO(rec))
}

// GetResultPDF renders a stored calculation as a PDF receipt.
func (h *Handler) GetResultPDF(w http.ResponseWriter, r *http.Request) {
	rec, err := h.store.Get(r.Context(), chi.URLParam(r, "id"), h.now())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := RenderReceipt(&buf, rec, h.calc.Table()); err != nil {
		h.handleError(w, r, fmt.Errorf("render receipt %s: %w", rec.ID, err))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-%s.pdf"`, rec.Kind, rec.ID))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// Validate runs the form checks, which unlike the calculators reject dates
// after today and implausible tenure.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	kind, in, issues := req.toInput(h.calc.Table())
	if len(issues) == 0 {
		today := severance.FromTime(h.now())
		issues = severance.ValidateForm(in, kind, today, h.calc.Table())
	}

	dto := ValidationDTO{Valid: len(issues) == 0, Kind: kind, Issues: issues}
	if !dto.Valid {
		writeIssues(w, issues, dto)
		return
	}
	dto.Issues = severance.Issues{}
	success(w, "Input is valid", dto)
}

// =============================================================================
// REFERENCE DATA
// =============================================================================

// LegalConstants returns the legal table in use.
func (h *Handler) LegalConstants(w http.ResponseWriter, r *http.Request) {
	success(w, "", h.calc.Table().Snapshot())
}

// =============================================================================
// HELPERS
// =============================================================================

func decodeRequest(w http.ResponseWriter, r *http.Request) (CalculateRequest, bool) {
	var req CalculateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return req, false
	}
	return req, true
}
