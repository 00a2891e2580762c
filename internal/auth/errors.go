package auth

import "errors"

var (
	// ErrStateMismatch is returned when the callback state does not match
	// the value issued at initiate time.
	ErrStateMismatch = errors.New("auth: state mismatch")

	// ErrExchangeFailed covers network failures and provider-side
	// rejections of the authorization code (expired/invalid code,
	// mismatched redirect URI, revoked app).
	ErrExchangeFailed = errors.New("auth: code exchange failed")

	// ErrProviderDenied is returned when the provider redirects back with
	// an error instead of an authorization code.
	ErrProviderDenied = errors.New("auth: provider denied authorization")

	// ErrTimeout is returned when the bounded exchange deadline elapses.
	ErrTimeout = errors.New("auth: provider call timed out")
)
