package auth

import (
	"errors"
	"net/http"

	"stockpilot/backend/internal/models"
)

// Action names an operation a caller may attempt on a resource type.
type Action string

const (
	ActionView   Action = "view"
	ActionManage Action = "manage"
)

var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNoPolicyDefined = errors.New("no policy defined for resource type")
)

// Policy decides whether an actor may perform an action on one
// resource type.
type Policy interface {
	Can(actor Actor, action Action) bool
}

// Gate is the central authorization checkpoint: a registry of
// policies keyed by resource type. Handlers and middleware ask the
// gate instead of inspecting roles themselves.
type Gate struct {
	policies map[string]Policy
}

func NewGate() *Gate {
	return &Gate{policies: make(map[string]Policy)}
}

// Register adds a policy for a resource type, overwriting any
// existing one.
func (g *Gate) Register(resourceType string, p Policy) {
	g.policies[resourceType] = p
}

// Authorize returns ErrUnauthorized for an anonymous actor or a
// denied action, and ErrNoPolicyDefined when the resource type has no
// registered policy.
func (g *Gate) Authorize(actor Actor, action Action, resourceType string) error {
	if actor == (Actor{}) {
		return ErrUnauthorized
	}
	p, ok := g.policies[resourceType]
	if !ok {
		return ErrNoPolicyDefined
	}
	if !p.Can(actor, action) {
		return ErrUnauthorized
	}
	return nil
}

func (g *Gate) Can(actor Actor, action Action, resourceType string) bool {
	return g.Authorize(actor, action, resourceType) == nil
}

// RolePolicy allows the listed actions per role.
type RolePolicy map[models.Role][]Action

func (p RolePolicy) Can(actor Actor, action Action) bool {
	for _, a := range p[actor.Role] {
		if a == action {
			return true
		}
	}
	return false
}

// DefaultGate registers the policies this API enforces: account
// management is admin-only.
func DefaultGate() *Gate {
	g := NewGate()
	g.Register("users", RolePolicy{
		models.RoleAdmin: {ActionView, ActionManage},
	})
	return g
}

// Require wraps a handler so only actors the gate authorizes for the
// action on the resource type get through. Anonymous callers get 401
// from RequireAuth, denied ones 403.
func (g *Gate) Require(action Action, resourceType string, next http.Handler) http.Handler {
	return RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, _ := ActorFromContext(r.Context())
		if err := g.Authorize(actor, action, resourceType); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":"forbidden"}`))
			return
		}
		next.ServeHTTP(w, r)
	}))
}
