package facebook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/lucas-hallgren/automatizador-backend/internal/auth"
	"github.com/lucas-hallgren/automatizador-backend/internal/logger"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
)

const providerName = "facebook"

// profileFields is the fixed field selection requested from the Graph
// profile endpoint.
const profileFields = "id,name,email"

// Config carries provider credentials. ClientID and ClientSecret are
// secrets: they must never be logged or echoed to the browser.
// RedirectURL must exactly match, scheme and host included, the value
// registered with the provider.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string

	// Endpoint and GraphBaseURL default to the real provider; tests
	// point them at local servers.
	Endpoint     oauth2.Endpoint
	GraphBaseURL string
}

// Provider implements the authorization-code exchange against Facebook.
// It returns identity facts only; no session decisions are made here.
type Provider struct {
	oauthConfig  *oauth2.Config
	graphBaseURL string
}

func New(cfg Config) (*Provider, error) {

	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RedirectURL == "" {
		return nil, errors.New("facebook oauth config missing required fields")
	}

	endpoint := cfg.Endpoint
	if endpoint.AuthURL == "" {
		endpoint = facebook.Endpoint
	}

	graphBaseURL := cfg.GraphBaseURL
	if graphBaseURL == "" {
		graphBaseURL = "https://graph.facebook.com/v19.0"
	}

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Endpoint:     endpoint,
		Scopes: []string{
			"email",
			"read_insights",
			"ads_read",
			"business_management",
		},
	}

	return &Provider{
		oauthConfig:  oauthCfg,
		graphBaseURL: graphBaseURL,
	}, nil
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return providerName
}

// AuthCodeURL builds the OAuth authorization URL bound to state.
func (p *Provider) AuthCodeURL(state string) string {
	return p.oauthConfig.AuthCodeURL(state)
}

// ExchangeCode exchanges the authorization code for an access token and
// fetches the user profile from the Graph API. The caller bounds the
// whole round trip through ctx.
func (p *Provider) ExchangeCode(
	ctx context.Context,
	code string,
) (*auth.Identity, error) {

	token, err := p.oauthConfig.Exchange(ctx, code)
	if err != nil {
		if timedOut(ctx, err) {
			return nil, fmt.Errorf("%w: token exchange: %v", auth.ErrTimeout, err)
		}
		logger.Error("facebook token exchange failed", map[string]any{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", auth.ErrExchangeFailed, err)
	}

	if token.AccessToken == "" {
		return nil, fmt.Errorf("%w: provider returned empty access token", auth.ErrExchangeFailed)
	}

	profile, err := p.fetchProfile(ctx, token)
	if err != nil {
		return nil, err
	}

	logger.Info("facebook login verified", map[string]any{
		"subject_present": profile.ID != "",
		"email_present":   profile.Email != "",
	})

	return &auth.Identity{
		Profile:     *profile,
		AccessToken: token.AccessToken,
	}, nil
}

func (p *Provider) fetchProfile(
	ctx context.Context,
	token *oauth2.Token,
) (*auth.Profile, error) {

	profileURL := fmt.Sprintf(
		"%s/me?fields=%s",
		p.graphBaseURL,
		url.QueryEscape(profileFields),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, profileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: profile request: %v", auth.ErrExchangeFailed, err)
	}

	// The oauth2 client attaches the bearer token to every request.
	client := p.oauthConfig.Client(ctx, token)

	resp, err := client.Do(req)
	if err != nil {
		if timedOut(ctx, err) {
			return nil, fmt.Errorf("%w: profile fetch: %v", auth.ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: profile fetch: %v", auth.ErrExchangeFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: profile read: %v", auth.ErrExchangeFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		logger.Error("facebook profile fetch rejected", map[string]any{
			"status": resp.StatusCode,
		})
		return nil, fmt.Errorf("%w: profile fetch status %d", auth.ErrExchangeFailed, resp.StatusCode)
	}

	var profile auth.Profile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("%w: profile parse: %v", auth.ErrExchangeFailed, err)
	}

	if profile.ID == "" {
		return nil, fmt.Errorf("%w: profile missing id", auth.ErrExchangeFailed)
	}

	return &profile, nil
}

// timedOut reports whether err was caused by the request deadline.
// Checks the context too: not every transport layer wraps the deadline
// error in a way errors.Is can see.
func timedOut(ctx context.Context, err error) bool {
	return errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(ctx.Err(), context.DeadlineExceeded)
}
