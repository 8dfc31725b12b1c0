// internal/authz/guard.go
package authz

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sindigo/sindigo/internal/domain"
	"github.com/sindigo/sindigo/internal/model"
)

// Guard evaluates tenancy and scope policy for a request. It owns no state
// beyond its read-only collaborators, so a single instance serves all
// requests concurrently.
type Guard struct {
	memberships MembershipStore
	scopes      ScopeResolver
}

// MembershipStore is the slice of the membership repository the guard needs.
// Only active memberships are ever returned; storage faults surface as
// domain.ErrUnavailable.
type MembershipStore interface {
	ActiveByUser(ctx context.Context, userID uuid.UUID) ([]*model.Membership, error)
	ActiveByUserAndOrg(ctx context.Context, userID, orgID uuid.UUID) (*model.Membership, error)
}

func NewGuard(memberships MembershipStore, scopes ScopeResolver) *Guard {
	return &Guard{memberships: memberships, scopes: scopes}
}

// Context is the result of an authorization evaluation: the principal, the
// membership it was resolved under (nil for platform admins), and a terminal
// error. It is an immutable value threaded explicitly by the caller; once an
// error is set every further refinement returns the same failed context, so
// checks chain without branching after each step:
//
//	gctx := guard.RequireOrgAccess(ctx, p, orgID).RequireRole(model.RoleCondoAdmin)
//	if err := gctx.Err(); err != nil { ... }
type Context struct {
	Principal      Principal
	Membership     *model.Membership
	OrganizationID uuid.UUID
	err            error
}

// Err returns the terminal error, nil when every refinement passed.
func (c Context) Err() error {
	return c.err
}

// Role is the effective role the context was resolved under. Platform
// admins have no membership row and report RolePlatformAdmin.
func (c Context) Role() model.Role {
	if c.err != nil {
		return ""
	}
	if c.Principal.IsPlatformAdmin {
		return model.RolePlatformAdmin
	}
	if c.Membership != nil {
		return c.Membership.Role
	}
	return ""
}

// RequireRole refines a context with a role allow-list. Platform admins
// always pass, and an empty allow-list admits any role; scope checks call
// it unconditionally and only narrow when roles are supplied. A failed
// context is returned unchanged: first failure wins.
func (c Context) RequireRole(roles ...model.Role) Context {
	if c.err != nil {
		return c
	}
	if c.Principal.IsPlatformAdmin {
		return c
	}
	if len(roles) == 0 {
		return c
	}
	role := c.Role()
	for _, r := range roles {
		if role == r {
			return c
		}
	}
	c.err = fmt.Errorf("%w: role %s not permitted for this action", domain.ErrForbidden, role)
	return c
}

func (g *Guard) fail(p Principal, err error) Context {
	return Context{Principal: p, err: err}
}

// RequireOrgAccess establishes that the principal may act inside an
// organization. Platform admins pass with organization-wide scope and no
// membership; everyone else must hold an active membership there, with the
// role in the optional allow-list. Storage faults propagate as Unavailable
// and never degrade into a deny or an allow.
func (g *Guard) RequireOrgAccess(ctx context.Context, p Principal, orgID uuid.UUID, roles ...model.Role) Context {
	if orgID == uuid.Nil {
		return g.fail(p, fmt.Errorf("%w: missing organization identifier", domain.ErrInvalidArgument))
	}

	if p.IsPlatformAdmin {
		return Context{Principal: p, OrganizationID: orgID}
	}

	membership, err := g.memberships.ActiveByUserAndOrg(ctx, p.UserID, orgID)
	if err != nil {
		if errors.Is(err, domain.ErrMembershipNotFound) {
			return g.fail(p, fmt.Errorf("%w: no active membership in organization %s", domain.ErrForbidden, orgID))
		}
		return g.fail(p, err)
	}

	gctx := Context{Principal: p, Membership: membership, OrganizationID: orgID}
	return gctx.RequireRole(roles...)
}

// RequireUnitAccess resolves the unit's owning organization, establishes
// organization access, and pins residents to their own unit. Staff and
// admins pass on organization access alone.
func (g *Guard) RequireUnitAccess(ctx context.Context, p Principal, unitID uuid.UUID) Context {
	if unitID == uuid.Nil {
		return g.fail(p, fmt.Errorf("%w: missing unit identifier", domain.ErrInvalidArgument))
	}

	orgID, err := g.scopes.UnitOrganization(ctx, unitID)
	if err != nil {
		return g.fail(p, err)
	}

	gctx := g.RequireOrgAccess(ctx, p, orgID)
	if gctx.Err() != nil {
		return gctx
	}

	if gctx.Role() == model.RoleResident {
		m := gctx.Membership
		if m.UnitID == nil || *m.UnitID != unitID {
			gctx.err = fmt.Errorf("%w: resident not assigned to unit %s", domain.ErrForbidden, unitID)
		}
	}
	return gctx
}

// RequireEntityAccess authorizes access to one record of a registered kind.
// The kind token is normalized before dispatch; unknown kinds are
// InvalidArgument, never a silent allow. After organization access, the
// resident scope rule applies: a resident passes only when the record's
// owner is their person or the record's unit is their unit.
func (g *Guard) RequireEntityAccess(ctx context.Context, p Principal, kindToken string, entityID uuid.UUID) Context {
	kind, err := NormalizeKind(kindToken)
	if err != nil {
		return g.fail(p, err)
	}
	if entityID == uuid.Nil {
		return g.fail(p, fmt.Errorf("%w: missing %s identifier", domain.ErrInvalidArgument, kind))
	}

	scope, err := g.scopes.EntityScope(ctx, kind, entityID)
	if err != nil {
		return g.fail(p, err)
	}

	gctx := g.RequireOrgAccess(ctx, p, scope.OrganizationID)
	if gctx.Err() != nil {
		return gctx
	}

	if gctx.Role() == model.RoleResident && !residentOwns(gctx, scope) {
		gctx.err = fmt.Errorf("%w: %s %s is outside the resident's scope", domain.ErrForbidden, kind, entityID)
	}
	return gctx
}

// residentOwns applies the resident scope rule: the record's owning person
// matches the principal's person, or the record's unit matches the
// membership's unit.
func residentOwns(gctx Context, scope *EntityScope) bool {
	if scope.OwnerPersonID != nil && gctx.Principal.PersonID != nil &&
		*scope.OwnerPersonID == *gctx.Principal.PersonID {
		return true
	}
	m := gctx.Membership
	if scope.UnitID != nil && m != nil && m.UnitID != nil && *scope.UnitID == *m.UnitID {
		return true
	}
	return false
}
