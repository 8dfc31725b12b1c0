// internal/authz/principal.go
package authz

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/sindigo/sindigo/internal/domain"
)

// Principal is the identity acting on a request, derived once from verified
// token claims and immutable afterwards. Resolution never touches storage;
// the platform-admin flag is trusted as stamped at token issuance.
type Principal struct {
	UserID          uuid.UUID
	PersonID        *uuid.UUID
	IsPlatformAdmin bool
}

// ResolvePrincipal builds a Principal from raw claim values. A missing or
// unparseable user identifier is ErrUnauthenticated; a malformed person
// identifier is ignored rather than fatal, since staff accounts carry none.
func ResolvePrincipal(rawUserID, rawPersonID string, isPlatformAdmin bool) (Principal, error) {
	userID, err := uuid.Parse(rawUserID)
	if err != nil || userID == uuid.Nil {
		return Principal{}, fmt.Errorf("%w: no resolvable user identifier", domain.ErrUnauthenticated)
	}

	p := Principal{
		UserID:          userID,
		IsPlatformAdmin: isPlatformAdmin,
	}

	if rawPersonID != "" {
		if personID, err := uuid.Parse(rawPersonID); err == nil && personID != uuid.Nil {
			p.PersonID = &personID
		}
	}

	return p, nil
}
