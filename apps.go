package trackvia

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Apps lists the applications visible to the authenticated user.
func (c *Client) Apps(ctx context.Context) ([]App, error) {
	c.logger.Info("listing apps")

	body, err := c.do(ctx, &Request{
		Method: http.MethodGet,
		Path:   "/openapi/apps",
	})
	if err != nil {
		return nil, err
	}

	var apps []App
	if err := json.Unmarshal(body, &apps); err != nil {
		return nil, fmt.Errorf("trackvia: decoding apps response: %w", err)
	}

	return apps, nil
}
