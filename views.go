package trackvia

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
)

// Views lists every view the authenticated user can read.
func (c *Client) Views(ctx context.Context) ([]View, error) {
	return c.views(ctx, "")
}

// ViewsByName lists views whose name matches exactly.
func (c *Client) ViewsByName(ctx context.Context, name string) ([]View, error) {
	return c.views(ctx, name)
}

func (c *Client) views(ctx context.Context, name string) ([]View, error) {
	c.logger.Info("listing views", slog.String("name", name))

	query := url.Values{}
	if name != "" {
		query.Set("name", name)
	}

	body, err := c.do(ctx, &Request{
		Method: http.MethodGet,
		Path:   "/openapi/views",
		Query:  query,
	})
	if err != nil {
		return nil, err
	}

	var views []View
	if err := json.Unmarshal(body, &views); err != nil {
		return nil, fmt.Errorf("trackvia: decoding views response: %w", err)
	}

	return views, nil
}

// View fetches a single view's metadata by id.
func (c *Client) View(ctx context.Context, viewID int64) (*View, error) {
	c.logger.Info("getting view", slog.Int64("view_id", viewID))

	body, err := c.do(ctx, &Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/openapi/views/%d", viewID),
	})
	if err != nil {
		return nil, err
	}

	var v View
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("trackvia: decoding view response: %w", err)
	}

	return &v, nil
}
