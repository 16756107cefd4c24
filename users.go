package trackvia

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
)

// Users lists accounts, paginated. start is a zero-based offset; max
// caps the page size.
func (c *Client) Users(ctx context.Context, start, max int) ([]User, error) {
	c.logger.Info("listing users",
		slog.Int("start", start),
		slog.Int("max", max),
	)

	body, err := c.do(ctx, &Request{
		Method: http.MethodGet,
		Path:   "/openapi/users",
		Query: url.Values{
			"start": {strconv.Itoa(start)},
			"max":   {strconv.Itoa(max)},
		},
	})
	if err != nil {
		return nil, err
	}

	var us userSet
	if err := json.Unmarshal(body, &us); err != nil {
		return nil, fmt.Errorf("trackvia: decoding users response: %w", err)
	}

	return us.Data, nil
}

// CreateUser provisions a new account. The service sends the invitation
// email; the returned User reflects its initial (unconfirmed) state.
func (c *Client) CreateUser(ctx context.Context, email, firstName, lastName, timeZone string) (*User, error) {
	c.logger.Info("creating user", slog.String("email", email))

	body, err := c.do(ctx, &Request{
		Method: http.MethodPost,
		Path:   "/openapi/users",
		Query: url.Values{
			"email":     {email},
			"firstName": {firstName},
			"lastName":  {lastName},
			"timeZone":  {timeZone},
		},
	})
	if err != nil {
		return nil, err
	}

	var us userSet
	if err := json.Unmarshal(body, &us); err != nil {
		return nil, fmt.Errorf("trackvia: decoding create user response: %w", err)
	}

	if len(us.Data) == 0 {
		return nil, fmt.Errorf("trackvia: create user response contained no user")
	}

	return &us.Data[0], nil
}
