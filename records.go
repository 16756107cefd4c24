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

// identifierFields are the read-only columns the service echoes back on
// reads but rejects on update. They are stripped from every update
// payload; sending them fails the whole write.
var identifierFields = []string{"id", "ID", "Record ID"}

// Records reads a page of a view's records. start is a zero-based
// offset; max caps the page size.
func (c *Client) Records(ctx context.Context, viewID int64, start, max int) (*RecordSet, error) {
	c.logger.Info("listing records",
		slog.Int64("view_id", viewID),
		slog.Int("start", start),
		slog.Int("max", max),
	)

	body, err := c.do(ctx, RecordsRequest(viewID, start, max))
	if err != nil {
		return nil, err
	}

	return DecodeRecordSet(body)
}

// FindRecords runs the view's full-text search over q, paginated.
func (c *Client) FindRecords(ctx context.Context, viewID int64, q string, start, max int) (*RecordSet, error) {
	c.logger.Info("finding records",
		slog.Int64("view_id", viewID),
		slog.String("query", q),
	)

	body, err := c.do(ctx, FindRecordsRequest(viewID, q, start, max))
	if err != nil {
		return nil, err
	}

	return DecodeRecordSet(body)
}

// Record fetches a single record by id. A 404 means the record does not
// exist in the view and yields (nil, nil) — absence, not an error. This
// is deliberately different from every other operation, where a 404
// surfaces as an *APIError.
func (c *Client) Record(ctx context.Context, viewID, recordID int64) (*RecordSet, error) {
	c.logger.Info("getting record",
		slog.Int64("view_id", viewID),
		slog.Int64("record_id", recordID),
	)

	body, err := c.do(ctx, RecordRequest(viewID, recordID))
	if err != nil {
		if isNotFound(err) {
			c.logger.Debug("record not found",
				slog.Int64("view_id", viewID),
				slog.Int64("record_id", recordID),
			)

			return nil, nil
		}

		return nil, err
	}

	return DecodeRecordSet(body)
}

// recordPayload is the envelope for create and update submissions.
type recordPayload struct {
	Data []Record `json:"data"`
}

// CreateRecord inserts one record into the view's underlying table and
// returns it as the service stored it.
func (c *Client) CreateRecord(ctx context.Context, viewID int64, fields Record) (*RecordSet, error) {
	c.logger.Info("creating record", slog.Int64("view_id", viewID))

	payload, err := json.Marshal(recordPayload{Data: []Record{fields}})
	if err != nil {
		return nil, fmt.Errorf("trackvia: marshaling create record payload: %w", err)
	}

	body, err := c.do(ctx, &Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/openapi/views/%d/records", viewID),
		Body:   jsonBody(payload),
	})
	if err != nil {
		return nil, err
	}

	return DecodeRecordSet(body)
}

// UpdateRecord overwrites a record's fields. Identifier columns present
// in fields are dropped before submit; the record is addressed by
// recordID alone.
func (c *Client) UpdateRecord(ctx context.Context, viewID, recordID int64, fields Record) (*RecordSet, error) {
	c.logger.Info("updating record",
		slog.Int64("view_id", viewID),
		slog.Int64("record_id", recordID),
	)

	payload, err := json.Marshal(recordPayload{Data: []Record{stripIdentifiers(fields)}})
	if err != nil {
		return nil, fmt.Errorf("trackvia: marshaling update record payload: %w", err)
	}

	body, err := c.do(ctx, &Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/openapi/views/%d/records/%d", viewID, recordID),
		Body:   jsonBody(payload),
	})
	if err != nil {
		return nil, err
	}

	return DecodeRecordSet(body)
}

// stripIdentifiers copies fields without the read-only identifier
// columns. The input record is left untouched.
func stripIdentifiers(fields Record) Record {
	out := make(Record, len(fields))
	for k, v := range fields {
		out[k] = v
	}

	for _, k := range identifierFields {
		delete(out, k)
	}

	return out
}

// DeleteRecord removes a single record.
func (c *Client) DeleteRecord(ctx context.Context, viewID, recordID int64) error {
	c.logger.Info("deleting record",
		slog.Int64("view_id", viewID),
		slog.Int64("record_id", recordID),
	)

	_, err := c.do(ctx, &Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/openapi/views/%d/records/%d", viewID, recordID),
	})

	return err
}

// DeleteAllRecords removes every record reachable through the view.
func (c *Client) DeleteAllRecords(ctx context.Context, viewID int64) error {
	c.logger.Info("deleting all records", slog.Int64("view_id", viewID))

	_, err := c.do(ctx, &Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/openapi/views/%d/records/all", viewID),
	})

	return err
}

// RecordsRequest builds the descriptor for a paginated record read,
// for use with DoBatch.
func RecordsRequest(viewID int64, start, max int) *Request {
	return &Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/openapi/views/%d/records", viewID),
		Query: url.Values{
			"start": {strconv.Itoa(start)},
			"max":   {strconv.Itoa(max)},
		},
	}
}

// RecordRequest builds the descriptor for a single-record fetch, for use
// with DoBatch. Note that batch execution does not apply Record's
// 404-means-absent mapping; batch callers see the error.
func RecordRequest(viewID, recordID int64) *Request {
	return &Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/openapi/views/%d/records/%d", viewID, recordID),
	}
}

// FindRecordsRequest builds the descriptor for a record search, for use
// with DoBatch.
func FindRecordsRequest(viewID int64, q string, start, max int) *Request {
	return &Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/openapi/views/%d/find", viewID),
		Query: url.Values{
			"q":     {q},
			"start": {strconv.Itoa(start)},
			"max":   {strconv.Itoa(max)},
		},
	}
}

// DecodeRecordSet parses a record collection envelope, typically from a
// DoBatch result body.
func DecodeRecordSet(body []byte) (*RecordSet, error) {
	var rs RecordSet
	if err := json.Unmarshal(body, &rs); err != nil {
		return nil, fmt.Errorf("trackvia: decoding record set: %w", err)
	}

	return &rs, nil
}
