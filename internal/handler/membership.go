// internal/handler/membership.go
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

type MembershipHandler struct {
	memberships *service.MembershipService
	validate    *validator.Validate
}

func NewMembershipHandler(memberships *service.MembershipService) *MembershipHandler {
	return &MembershipHandler{
		memberships: memberships,
		validate:    validator.New(),
	}
}

// ListHandler lists an organization's active memberships.
// GET /api/organizacoes/{organizacaoId}/vinculos
func (h *MembershipHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	orgID, err := uuid.Parse(chi.URLParam(r, "organizacaoId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid organization id")
		return
	}

	memberships, err := h.memberships.ListByOrganization(r.Context(), orgID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, memberships)
}

// AssignHandler creates a membership in the path's organization.
// POST /api/organizacoes/{organizacaoId}/vinculos
func (h *MembershipHandler) AssignHandler(w http.ResponseWriter, r *http.Request) {
	orgID, err := uuid.Parse(chi.URLParam(r, "organizacaoId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid organization id")
		return
	}

	var input service.AssignInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	// The path, already authorized by the interceptor, names the tenant.
	input.OrganizationID = orgID
	if principal, ok := middleware.PrincipalFromContext(r.Context()); ok {
		inviter := principal.UserID
		input.InvitedByID = &inviter
	}

	membership, err := h.memberships.Assign(r.Context(), input)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, membership)
}

// DeactivateHandler soft-removes a membership. The membership must belong
// to the organization the request was authorized against.
// DELETE /api/organizacoes/{organizacaoId}/vinculos/{vinculoId}
func (h *MembershipHandler) DeactivateHandler(w http.ResponseWriter, r *http.Request) {
	orgID, err := uuid.Parse(chi.URLParam(r, "organizacaoId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid organization id")
		return
	}
	membershipID, err := uuid.Parse(chi.URLParam(r, "vinculoId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid membership id")
		return
	}

	if err := h.memberships.Deactivate(r.Context(), orgID, membershipID); err != nil {
		respondWithDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}
