// Package roles decides which route tree a session may reach.
package roles

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/gdg-garage/reso-client/internal/gateway"
	"github.com/gdg-garage/reso-client/internal/models"
)

type Role int

const (
	Unknown Role = iota
	Anonymous
	Participant
	EventAdmin
	SuperAdmin
)

func (r Role) String() string {
	switch r {
	case Anonymous:
		return "anonymous"
	case Participant:
		return "participant"
	case EventAdmin:
		return "event-admin"
	case SuperAdmin:
		return "super-admin"
	default:
		return "unknown"
	}
}

// FromClaim maps the server's role claim onto a Role.
func FromClaim(claim models.Role) (Role, bool) {
	switch claim {
	case models.RoleUser:
		return Participant, true
	case models.RoleAdmin:
		return EventAdmin, true
	case models.RoleSuperAdmin:
		return SuperAdmin, true
	}
	return Unknown, false
}

// Session is what the resolver needs from the session store.
type Session interface {
	Credential() (string, bool)
	Clear() error
}

// Resolver runs the identity check once and remembers the outcome.
type Resolver struct {
	session Session
	api     gateway.Requester

	once sync.Once
	mu   sync.Mutex
	role Role
}

func NewResolver(session Session, api gateway.Requester) *Resolver {
	return &Resolver{session: session, api: api}
}

// Role is Unknown until Resolve has finished.
func (r *Resolver) Role() Role {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.role
}

// Resolve performs the identity check. Any failure is an implicit logout.
// The result is final for the lifetime of the resolver.
func (r *Resolver) Resolve(ctx context.Context) Role {
	r.once.Do(func() {
		role := r.check(ctx)
		r.mu.Lock()
		r.role = role
		r.mu.Unlock()
	})
	return r.Role()
}

func (r *Resolver) check(ctx context.Context) Role {
	if _, ok := r.session.Credential(); !ok {
		return Anonymous
	}

	var status models.AuthStatus
	if err := r.api.DoAuth(ctx, http.MethodGet, "/islogIn", nil, &status); err != nil {
		log.Printf("Error fetching authentication status: %v", err)
		r.logout()
		return Anonymous
	}

	role, ok := FromClaim(status.Auth)
	if !ok {
		log.Printf("Unrecognised role claim %q", status.Auth)
		r.logout()
		return Anonymous
	}
	return role
}

func (r *Resolver) logout() {
	if err := r.session.Clear(); err != nil {
		log.Printf("Failed to clear session: %v", err)
	}
}
