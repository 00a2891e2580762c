package graph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/lucas-hallgren/automatizador-backend/internal/auth"
)

// adAccountFields is the fixed field selection sent with every listing call.
const adAccountFields = "id,name,account_status"

var (
	// ErrTransport covers network failures where no upstream response
	// was received.
	ErrTransport = errors.New("graph: upstream transport failure")

	// ErrTimeout is returned when the bounded upstream deadline elapses.
	ErrTimeout = errors.New("graph: upstream call timed out")
)

// UpstreamError is a provider-returned error response. Raw holds the
// upstream "error" object when the response carried one; it is nil when
// the upstream body lacked the expected structure.
type UpstreamError struct {
	Status int
	Raw    json.RawMessage
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("graph: upstream returned status %d", e.Status)
}

// Client relays one authenticated resource-listing call to the Graph
// API. No retries, no caching, no payload transformation.
type Client struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		timeout:    timeout,
	}
}

// ListAdAccounts issues a single GET to the ad-accounts listing endpoint
// with the identity's access token and the fixed field selection. A 2xx
// body is returned unmodified.
func (c *Client) ListAdAccounts(
	ctx context.Context,
	identity *auth.Identity,
) ([]byte, error) {

	if identity == nil || identity.AccessToken == "" {
		return nil, errors.New("graph: identity has no access token")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	q := url.Values{}
	q.Set("fields", adAccountFields)
	q.Set("access_token", identity.AccessToken)

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.baseURL+"/me/adaccounts?"+q.Encode(),
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("graph: failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{
			Status: resp.StatusCode,
			Raw:    extractErrorObject(body),
		}
	}

	return body, nil
}

// extractErrorObject pulls the upstream {"error": {...}} object out of an
// error response. A missing or malformed body yields nil rather than a
// failure; the caller must stay alive whatever the upstream sent back.
func extractErrorObject(body []byte) json.RawMessage {
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}

	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil
	}

	return envelope.Error
}
