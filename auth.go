package trackvia

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
)

// credentials holds the live access/refresh token pair. The mutex guards
// the read-modify-write during refresh so a concurrent caller never sees
// a half-replaced pair.
type credentials struct {
	mu      sync.Mutex
	access  string
	refresh string
}

// accessToken snapshots the current access token for one dispatch.
func (c *credentials) accessToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.access
}

// refreshToken returns the stored refresh token, or ErrNotAuthorized if
// no authorization has succeeded yet.
func (c *credentials) refreshToken() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.refresh == "" {
		return "", ErrNotAuthorized
	}

	return c.refresh, nil
}

// replace atomically installs a new token pair, overwriting any prior one.
func (c *credentials) replace(access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.access = access
	c.refresh = refresh
}

// clear drops both tokens.
func (c *credentials) clear() {
	c.replace("", "")
}

// invalidate clears the access token only, keeping the refresh token.
// The next authenticated call then goes down the refresh path.
func (c *credentials) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.access = ""
}

// tokenResponse mirrors the token endpoint JSON.
type tokenResponse struct {
	Value        string `json:"value"`
	RefreshToken struct {
		Value string `json:"value"`
	} `json:"refreshToken"`
}

// Authorize performs a password-grant exchange and stores the resulting
// access/refresh token pair, overwriting any prior pair. On failure both
// tokens are cleared: a Client is either fully authorized or not at all.
func (c *Client) Authorize(ctx context.Context, username, password string) error {
	c.logger.Info("authorizing", slog.String("username", username))

	query := url.Values{
		"grant_type": {"password"},
		"username":   {username},
		"password":   {password},
	}

	if err := c.tokenGrant(ctx, query); err != nil {
		c.creds.clear()

		return fmt.Errorf("trackvia: authorize: %w", err)
	}

	c.logger.Info("authorized", slog.String("username", username))

	return nil
}

// Refresh performs a refresh-grant exchange using the stored refresh
// token and installs the new pair. It fails with ErrNotAuthorized, before
// any network call, when no refresh token is held. A failed refresh
// leaves the stored pair untouched.
func (c *Client) Refresh(ctx context.Context) error {
	refresh, err := c.creds.refreshToken()
	if err != nil {
		return err
	}

	c.logger.Info("refreshing access token")

	query := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refresh},
	}

	if err := c.tokenGrant(ctx, query); err != nil {
		return fmt.Errorf("trackvia: refresh: %w", err)
	}

	c.logger.Info("access token refreshed")

	return nil
}

// Invalidate clears the access token while retaining the refresh token,
// forcing the next authenticated call through a refresh cycle. Diagnostic
// hook — normal operation never needs it.
func (c *Client) Invalidate() {
	c.creds.invalidate()
	c.logger.Debug("access token invalidated")
}

// tokenGrant calls the token endpoint with the given grant parameters and
// installs the returned pair. It goes through transport directly — never
// the refresh-retry orchestrator — and sends no access token.
func (c *Client) tokenGrant(ctx context.Context, query url.Values) error {
	query.Set("client_id", clientID)

	req := &Request{
		Method: http.MethodGet,
		Path:   "/oauth/token",
		Query:  query,
	}

	body, err := c.transport(ctx, req, "")
	if err != nil {
		return err
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return fmt.Errorf("decoding token response: %w", err)
	}

	if tr.Value == "" {
		return fmt.Errorf("token response missing access token value")
	}

	c.creds.replace(tr.Value, tr.RefreshToken.Value)

	return nil
}
