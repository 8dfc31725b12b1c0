// internal/handler/finance.go
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/sindigo/sindigo/internal/middleware"
	"github.com/sindigo/sindigo/internal/service"
)

// FinanceHandler exposes the financial-record lifecycle. Every route here is
// mounted behind a FinanceGuard action, so by the time a method runs the
// request already carries a passed authorization context.
type FinanceHandler struct {
	ledger   *service.LedgerService
	validate *validator.Validate
}

func NewFinanceHandler(ledger *service.LedgerService) *FinanceHandler {
	return &FinanceHandler{
		ledger:   ledger,
		validate: validator.New(),
	}
}

// ListHandler lists an organization's financial records.
// GET /api/cobrancas?organizacaoId=...
func (h *FinanceHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	orgID, err := uuid.Parse(r.URL.Query().Get("organizacaoId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid organization id")
		return
	}

	records, err := h.ledger.ListByOrganization(r.Context(), orgID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, records)
}

// CreateHandler opens a new record in status aberto.
// POST /api/cobrancas
func (h *FinanceHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input service.CreateRecordInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	record, err := h.ledger.Create(r.Context(), input)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, record)
}

// GetHandler returns one record.
// GET /api/cobrancas/{id}
func (h *FinanceHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid record id")
		return
	}

	record, err := h.ledger.Get(r.Context(), id)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, record)
}

// ListByUnitHandler lists the records of one unit.
// GET /api/unidades/{unidadeId}/cobrancas
func (h *FinanceHandler) ListByUnitHandler(w http.ResponseWriter, r *http.Request) {
	unitID, err := uuid.Parse(chi.URLParam(r, "unidadeId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid unit id")
		return
	}

	records, err := h.ledger.ListByUnit(r.Context(), unitID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, records)
}

// TransitionHandler applies a named lifecycle transition.
// POST /api/cobrancas/{id}/transicao/{transicao}
func (h *FinanceHandler) TransitionHandler(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid record id")
		return
	}

	gctx, ok := middleware.GuardFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "Missing authorization context")
		return
	}

	record, err := h.ledger.ApplyTransition(r.Context(), gctx, id, chi.URLParam(r, "transicao"))
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, record)
}
