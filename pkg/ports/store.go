package ports

import (
	"context"

	"github.com/arushahmd/compass-voice/pkg/domain"
)

// SessionStore persists conversation sessions between turns.
// Implementations must hand out copies: mutating a loaded session must not
// change what the store holds until Save is called.
type SessionStore interface {
	// Save persists the session under the given ID.
	Save(ctx context.Context, sessionID string, sess *domain.Session) error

	// Load retrieves the session for a given ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Session, error)

	// Delete removes the session. Deleting a missing session is not an error.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of the stored sessions.
	List(ctx context.Context) ([]string, error)
}
