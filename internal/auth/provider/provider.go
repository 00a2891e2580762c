package provider

import (
	"context"

	"github.com/lucas-hallgren/automatizador-backend/internal/auth"
)

// OAuthProvider defines the contract the external auth provider must
// implement. Implementations return identity facts only and must not
// touch session storage; the flow controller persists the result.
type OAuthProvider interface {
	// Name returns the provider identifier (e.g. "facebook").
	Name() string

	// AuthCodeURL returns the OAuth authorization URL for the given
	// anti-forgery state value.
	AuthCodeURL(state string) string

	// ExchangeCode exchanges the authorization code for an access token,
	// fetches the user profile, and returns a normalized identity.
	ExchangeCode(ctx context.Context, code string) (*auth.Identity, error)
}
