package session

import (
	"context"
	"time"
)

// Session is a server-side record bound to a browser via an opaque
// cookie identifier. The Identity payload is serialized by the caller;
// the store treats it as bytes and makes no domain decisions.
type Session struct {
	SessionID string    // unique session identifier
	CreatedAt time.Time // when the session was first written
	ExpiresAt time.Time // absolute server-side expiry
	Identity  []byte    // opaque serialized identity payload
}

// Store defines how sessions are stored and retrieved. Implementations
// must be safe for concurrent access across distinct session keys.
// Get returns (nil, nil) when the session does not exist.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}
