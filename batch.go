package trackvia

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// defaultBatchWorkers bounds batch parallelism when the caller passes 0.
const defaultBatchWorkers = 4

// BatchResult is the outcome of one request in a batch: the raw response
// body on success, or the error that call produced. Exactly one of the
// two is set.
type BatchResult struct {
	Body []byte
	Err  error
}

// DoBatch executes request descriptors in parallel through a bounded
// worker pool and returns one result per request, in request order. A
// failed request records its error in its slot; it does not cancel the
// rest of the batch. Each request gets the full refresh-and-retry
// treatment independently, so a batch dispatched with an expired token
// may trigger more than one refresh.
func (c *Client) DoBatch(ctx context.Context, reqs []*Request, parallel int) []BatchResult {
	if parallel <= 0 {
		parallel = defaultBatchWorkers
	}

	c.logger.Info("executing batch",
		slog.Int("requests", len(reqs)),
		slog.Int("parallel", parallel),
	)

	results := make([]BatchResult, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			body, err := c.do(gctx, req)
			results[i] = BatchResult{Body: body, Err: err}

			// Per-request errors live in the result slot; returning nil
			// keeps the group from cancelling sibling requests.
			return nil
		})
	}

	// Always nil: workers never return errors.
	_ = g.Wait()

	return results
}
