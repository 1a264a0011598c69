package store

import (
	"context"
	"errors"

	"github.com/spec-kit/dominion-roster/internal/domain"
)

// ErrNotFound is returned when a patched or removed document does not exist.
var ErrNotFound = errors.New("member document not found")

// Snapshot is the full members collection keyed by member id, delivered in
// its entirety on every change.
type Snapshot map[string]domain.Member

// Unsubscribe stops snapshot delivery for a subscription.
type Unsubscribe func()

// MemberStore is the remote document store holding the roster. One persistent
// subscription receives the whole collection after every mutation; writes are
// fire-and-forget from the caller's perspective and become visible through
// the next snapshot.
type MemberStore interface {
	Subscribe(ctx context.Context, onSnapshot func(Snapshot)) (Unsubscribe, error)
	Set(ctx context.Context, member domain.Member) error
	Update(ctx context.Context, id string, fields map[string]any) error
	Remove(ctx context.Context, id string) error
}
