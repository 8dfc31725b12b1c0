// internal/handler/me.go
package handler

import (
	"net/http"

	"github.com/sindigo/sindigo/internal/authz"
	"github.com/sindigo/sindigo/internal/middleware"
)

// MeHandler serves the token-derived view of the caller. The membership
// snapshot it exposes is the advisory one baked into the token; it gates
// what the UI shows, never what the API permits.
type MeHandler struct{}

func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

type meOrganizationsResponse struct {
	Organizations []string `json:"organizacoes"`
}

// OrganizationsHandler lists the organizations the caller's token claims
// membership in.
// GET /api/me/organizacoes
func (h *MeHandler) OrganizationsHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	orgs := authz.AdvisoryOrganizations(claims.Memberships)
	resp := meOrganizationsResponse{Organizations: make([]string, 0, len(orgs))}
	for _, id := range orgs {
		resp.Organizations = append(resp.Organizations, id.String())
	}

	respondWithJSON(w, http.StatusOK, resp)
}
