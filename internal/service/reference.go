package service

import (
	"context"
	"sync"

	"github.com/forgo/haven/api/internal/model"
)

// InviteResolver loads the invite an identifier points at. A nil invite
// with a nil error means the identifier matched nothing.
type InviteResolver interface {
	GetByID(ctx context.Context, id string) (*model.Invite, error)
}

// InviteRef is a lazy handle on an invite identifier. The first successful
// Resolve fetches the invite from the resolver and pins it; later calls
// return the pinned value without touching the store. Failed lookups are
// not pinned, so a retry after a transient store error hits the store
// again.
type InviteRef struct {
	id string

	mu     sync.Mutex
	invite *model.Invite
}

// NewInviteRef creates an unresolved handle for the given invite identifier
func NewInviteRef(id string) *InviteRef {
	return &InviteRef{id: id}
}

// ID returns the identifier the handle was created with
func (r *InviteRef) ID() string {
	return r.id
}

// Resolved reports whether a successful resolution has been pinned
func (r *InviteRef) Resolved() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.invite != nil
}

// Resolve returns the invite for the handle's identifier, fetching it on
// first use. An empty identifier fails with ErrInviteNotFound before the
// resolver is consulted. Safe for concurrent callers; at most one fetch
// wins and all callers observe the same pinned invite.
func (r *InviteRef) Resolve(ctx context.Context, resolver InviteResolver) (*model.Invite, error) {
	if r.id == "" {
		return nil, ErrInviteNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.invite != nil {
		return r.invite, nil
	}

	invite, err := resolver.GetByID(ctx, r.id)
	if err != nil {
		return nil, err
	}
	if invite == nil {
		return nil, ErrInviteNotFound
	}

	r.invite = invite
	return invite, nil
}
