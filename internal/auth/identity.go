package auth

// Profile holds the provider-supplied user attributes granted at login.
type Profile struct {
	ID    string `json:"id"`              // provider-scoped unique user identifier
	Name  string `json:"name"`            // display name
	Email string `json:"email,omitempty"` // present only when the email scope was granted
}

// Identity represents one authenticated end-user for the lifetime of a
// session: the normalized provider profile plus the access token issued
// at login. It is immutable once created; there is no in-place refresh.
type Identity struct {
	Profile     Profile `json:"profile"`
	AccessToken string  `json:"accessToken"`
}
