// Package authctx builds the per-call authentication descriptor sent with
// every FileService request.
//
// A Session holds the default identity of a client (user, tenant, roles and
// claims). Each operation resolves a Descriptor from those defaults and the
// caller's overrides. An override is either omitted, in which case the
// session default applies, or supplied, in which case its value is used as is,
// including an explicitly empty role or claim list.
package authctx

import (
	"slices"
	"sort"
	"sync"
)

// DefaultUser is the user name assigned when a session is created without one.
const DefaultUser = "user"

// Override is an optional per-call value. The zero value means "omitted".
type Override[T any] struct {
	value T
	set   bool
}

// Some returns a supplied override holding v.
func Some[T any](v T) Override[T] {
	return Override[T]{value: v, set: true}
}

// IsSet reports whether the override was supplied.
func (o Override[T]) IsSet() bool {
	return o.set
}

// Value returns the supplied value, or the zero value when omitted.
func (o Override[T]) Value() T {
	return o.value
}

// Or returns the supplied value, or def when omitted.
func (o Override[T]) Or(def T) T {
	if o.set {
		return o.value
	}
	return def
}

// Overrides groups the per-call overrides of the four descriptor fields.
type Overrides struct {
	User   Override[string]
	Tenant Override[string]
	Roles  Override[[]string]
	Claims Override[[]Claim]
}

// Defaults is the externally supplied identity a Session starts from.
type Defaults struct {
	User   string
	Tenant string
	Roles  []string
	Claims []Claim
}

// Descriptor is the authentication payload attached to one request.
// It is a value: two descriptors with equal fields are interchangeable.
type Descriptor struct {
	User   string
	Tenant string
	Roles  []string
	Claims map[string]string
}

// ClaimKeys returns the descriptor's claim keys in sorted order.
func (d Descriptor) ClaimKeys() []string {
	keys := make([]string, 0, len(d.Claims))
	for k := range d.Claims {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Session holds the default identity of one client instance.
type Session struct {
	mu     sync.RWMutex
	user   string
	tenant string
	roles  []string
	claims []Claim
}

// NewSession creates a session from d. An empty user becomes DefaultUser and
// nil role/claim lists become empty lists.
func NewSession(d Defaults) *Session {
	user := d.User
	if user == "" {
		user = DefaultUser
	}
	return &Session{
		user:   user,
		tenant: d.Tenant,
		roles:  cloneOrEmpty(d.Roles),
		claims: cloneOrEmpty(d.Claims),
	}
}

// Defaults returns a copy of the session's current defaults.
func (s *Session) Defaults() Defaults {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Defaults{
		User:   s.user,
		Tenant: s.tenant,
		Roles:  slices.Clone(s.roles),
		Claims: slices.Clone(s.claims),
	}
}

// SetIdentity replaces the default user, roles and claims. Empty arguments
// leave the corresponding default unchanged. The tenant is fixed at creation.
func (s *Session) SetIdentity(user string, roles []string, claims []Claim) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user != "" {
		s.user = user
	}
	if len(roles) > 0 {
		s.roles = slices.Clone(roles)
	}
	if len(claims) > 0 {
		s.claims = slices.Clone(claims)
	}
}

// Resolve builds the descriptor for one call from the session defaults and o.
// The only failure is a claim element with an invalid shape.
func (s *Session) Resolve(o Overrides) (Descriptor, error) {
	s.mu.RLock()
	user := o.User.Or(s.user)
	tenant := o.Tenant.Or(s.tenant)
	roles := o.Roles.Or(s.roles)
	claims := o.Claims.Or(s.claims)
	s.mu.RUnlock()

	normalized, err := NormalizeClaims(claims)
	if err != nil {
		return Descriptor{}, err
	}

	return Descriptor{
		User:   user,
		Tenant: tenant,
		Roles:  cloneOrEmpty(roles),
		Claims: normalized,
	}, nil
}

func cloneOrEmpty[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return slices.Clone(in)
}
