// internal/middleware/finance.go
package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sindigo/sindigo/internal/authz"
	"github.com/sindigo/sindigo/internal/domain"
	"github.com/sindigo/sindigo/internal/model"
)

// GuardContextKey carries the successful authorization context into the
// handler, so the ledger layer can refine it with per-transition role
// checks without re-querying storage.
const GuardContextKey contextKey = "sindigo_guard_context"

// maxBodyPeek bounds how much of a request body the interceptor reads when
// an action declares its tenant id on the body.
const maxBodyPeek = 1 << 20

type scopeKind int

const (
	scopeOrg scopeKind = iota
	scopeUnit
	scopeEntity
)

type idSource int

const (
	fromPathParam idSource = iota
	fromQueryParam
	fromBodyField
)

// ActionRule declares, per action name, where the relevant identifier comes
// from and which roles may read or mutate. A static table instead of
// reflection over request payloads: every tenant-id source is auditable
// here.
type ActionRule struct {
	Scope      scopeKind
	Source     idSource
	Param      string
	EntityKind string
	ReadRoles  []model.Role
	WriteRoles []model.Role
}

var (
	adminOnly       = []model.Role{model.RoleCondoAdmin}
	staffRoles      = []model.Role{model.RoleCondoAdmin, model.RoleCondoStaff}
	residentVisible = []model.Role{model.RoleCondoAdmin, model.RoleCondoStaff, model.RoleResident}
	adminOrResident = []model.Role{model.RoleCondoAdmin, model.RoleResident}
)

// financeActions is the closed allow-list of guarded financial actions.
// Actions with no WriteRoles reject every mutating method; actions with no
// ReadRoles reject every read.
var financeActions = map[string]ActionRule{
	"listar-cobrancas": {
		Scope: scopeOrg, Source: fromQueryParam, Param: "organizacaoId",
		ReadRoles: staffRoles,
	},
	"criar-cobranca": {
		Scope: scopeOrg, Source: fromBodyField, Param: "organizacaoId",
		WriteRoles: adminOnly,
	},
	"detalhar-cobranca": {
		Scope: scopeEntity, Source: fromPathParam, Param: "id", EntityKind: "cobranca_unidade",
		ReadRoles: residentVisible,
	},
	"listar-cobrancas-unidade": {
		Scope: scopeUnit, Source: fromPathParam, Param: "unidadeId",
		ReadRoles: residentVisible,
	},
	// Per-transition role sets are tighter than this and enforced by the
	// ledger service on the guard context; this gate bounds who may attempt
	// any transition at all.
	"transicao-cobranca": {
		Scope: scopeEntity, Source: fromPathParam, Param: "id", EntityKind: "cobranca_unidade",
		WriteRoles: adminOrResident,
	},
	"listar-vinculos": {
		Scope: scopeOrg, Source: fromPathParam, Param: "organizacaoId",
		ReadRoles: staffRoles,
	},
	"gerir-vinculos": {
		Scope: scopeOrg, Source: fromPathParam, Param: "organizacaoId",
		WriteRoles: adminOnly,
	},
}

// FinanceGuard is the cross-cutting gate in front of every action in the
// financial domain. It resolves the identifier an action declares, runs the
// authorization core, applies the action's read/write role split, and
// short-circuits the request on any failure.
type FinanceGuard struct {
	guard  *authz.Guard
	logger *slog.Logger
}

func NewFinanceGuard(guard *authz.Guard, logger *slog.Logger) *FinanceGuard {
	return &FinanceGuard{guard: guard, logger: logger}
}

// Action returns the middleware for a named action. Unknown names panic at
// wiring time; a route guarded by a rule that does not exist is a
// programming error, not a runtime condition.
func (fg *FinanceGuard) Action(name string) func(http.Handler) http.Handler {
	rule, ok := financeActions[name]
	if !ok {
		panic(fmt.Sprintf("middleware: unknown guarded action %q", name))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok {
				respondWithError(w, http.StatusUnauthorized, "Not authenticated")
				return
			}

			roles := rule.ReadRoles
			if isMutating(r.Method) {
				roles = rule.WriteRoles
			}
			if len(roles) == 0 && !principal.IsPlatformAdmin {
				fg.logDenied(r, name, "method class not permitted for action")
				respondWithError(w, http.StatusForbidden, "Forbidden")
				return
			}

			id, err := fg.extractID(r, rule)
			if err != nil {
				respondWithError(w, http.StatusBadRequest, err.Error())
				return
			}

			var gctx authz.Context
			switch rule.Scope {
			case scopeOrg:
				gctx = fg.guard.RequireOrgAccess(r.Context(), principal, id)
			case scopeUnit:
				gctx = fg.guard.RequireUnitAccess(r.Context(), principal, id)
			case scopeEntity:
				gctx = fg.guard.RequireEntityAccess(r.Context(), principal, rule.EntityKind, id)
			}
			gctx = gctx.RequireRole(roles...)

			if err := gctx.Err(); err != nil {
				fg.logDenied(r, name, err.Error())
				respondWithAuthzError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), GuardContextKey, gctx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractID pulls the identifier the rule declares from the request.
func (fg *FinanceGuard) extractID(r *http.Request, rule ActionRule) (uuid.UUID, error) {
	var raw string

	switch rule.Source {
	case fromPathParam:
		raw = chi.URLParam(r, rule.Param)
		if raw == "" {
			raw = r.URL.Query().Get(rule.Param)
		}
	case fromQueryParam:
		raw = r.URL.Query().Get(rule.Param)
	case fromBodyField:
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyPeek))
		if err != nil {
			return uuid.Nil, fmt.Errorf("reading request body")
		}
		// The handler still needs the body after the peek.
		r.Body = io.NopCloser(bytes.NewReader(body))

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(body, &fields); err != nil {
			return uuid.Nil, fmt.Errorf("malformed request body")
		}
		if rawField, ok := fields[rule.Param]; ok {
			if err := json.Unmarshal(rawField, &raw); err != nil {
				return uuid.Nil, fmt.Errorf("malformed %s", rule.Param)
			}
		}
	}

	if raw == "" {
		return uuid.Nil, fmt.Errorf("missing %s", rule.Param)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("malformed %s", rule.Param)
	}
	return id, nil
}

func (fg *FinanceGuard) logDenied(r *http.Request, action, reason string) {
	fg.logger.Warn("authorization denied",
		"action", action,
		"method", r.Method,
		"path", r.URL.Path,
		"reason", reason,
	)
}

// GuardFromContext returns the authorization context established by the
// interceptor for this request.
func GuardFromContext(ctx context.Context) (authz.Context, bool) {
	gctx, ok := ctx.Value(GuardContextKey).(authz.Context)
	return gctx, ok
}

func isMutating(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return true
}

// respondWithAuthzError maps the guard's error taxonomy onto transport
// statuses. Forbidden and not-found stay distinct, matching the rest of the
// platform; collapse them here if existence leaks become a concern.
func respondWithAuthzError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
	case errors.Is(err, domain.ErrForbidden):
		respondWithError(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrUnitNotFound),
		errors.Is(err, domain.ErrRecordNotFound),
		errors.Is(err, domain.ErrOrganizationNotFound):
		respondWithError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, domain.ErrInvalidArgument):
		respondWithError(w, http.StatusBadRequest, "Invalid request")
	case errors.Is(err, domain.ErrUnavailable):
		respondWithError(w, http.StatusServiceUnavailable, "Service unavailable")
	default:
		respondWithError(w, http.StatusInternalServerError, "Internal error")
	}
}
