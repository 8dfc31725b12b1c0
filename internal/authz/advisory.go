// internal/authz/advisory.go
package authz

import (
	"github.com/google/uuid"

	"github.com/sindigo/sindigo/internal/auth"
	"github.com/sindigo/sindigo/internal/model"
)

// AdvisoryRole reads the role a token's membership snapshot claims for an
// organization. This is the fast-path claim-based check: cheap, I/O-free,
// and suitable only for coarse pre-filtering such as UI feature gating.
// It is never an authority; every enforcement path resolves the membership
// store instead, since the snapshot can be stale from the moment the token
// was issued.
func AdvisoryRole(snapshot []auth.MembershipClaim, orgID uuid.UUID) (model.Role, bool) {
	for _, claim := range snapshot {
		claimOrg, err := uuid.Parse(claim.OrganizationID)
		if err != nil {
			continue
		}
		if claimOrg == orgID {
			role := model.Role(claim.Role)
			if role.Valid() {
				return role, true
			}
			return "", false
		}
	}
	return "", false
}

// AdvisoryOrganizations lists the organization ids the snapshot claims
// membership in, skipping malformed entries. Used to gate which tenants the
// UI offers before any storage round-trip.
func AdvisoryOrganizations(snapshot []auth.MembershipClaim) []uuid.UUID {
	orgs := make([]uuid.UUID, 0, len(snapshot))
	for _, claim := range snapshot {
		claimOrg, err := uuid.Parse(claim.OrganizationID)
		if err != nil || claimOrg == uuid.Nil {
			continue
		}
		orgs = append(orgs, claimOrg)
	}
	return orgs
}
