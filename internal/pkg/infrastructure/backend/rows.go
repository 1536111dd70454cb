package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
)

// Query narrows a bulk read. Filters are column -> wanted value, combined
// with equality semantics.
type Query struct {
	OrderBy    string
	Descending bool
	Limit      int
	Filter     map[string]string
}

func (q Query) values() url.Values {
	v := url.Values{}
	v.Set("select", "*")

	if q.OrderBy != "" {
		direction := "asc"
		if q.Descending {
			direction = "desc"
		}
		v.Set("order", q.OrderBy+"."+direction)
	}

	if q.Limit > 0 {
		v.Set("limit", fmt.Sprintf("%d", q.Limit))
	}

	for column, value := range q.Filter {
		v.Set(column, "eq."+value)
	}

	return v
}

//go:generate moq -rm -out rowstore_mock.go . RowStore
type RowStore interface {
	Select(ctx context.Context, table string, q Query) ([]json.RawMessage, error)
	Insert(ctx context.Context, table string, row any) error
	Update(ctx context.Context, table, id string, patch map[string]any) error
}

func (c *Client) Select(ctx context.Context, table string, q Query) ([]json.RawMessage, error) {
	var err error
	ctx, span := tracer.Start(ctx, "select-rows")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	req, err := c.newRequest(ctx, http.MethodGet, "/rest/v1/"+table, q.values(), nil)
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, req, KindFetch)
	if err != nil {
		return nil, err
	}

	rows := []json.RawMessage{}
	err = json.Unmarshal(body, &rows)
	if err != nil {
		err = &Error{Kind: KindFetch, Message: fmt.Sprintf("failed to unmarshal rows from %s: %s", table, err.Error())}
		return nil, err
	}

	return rows, nil
}

// Insert stores a new row. The return value only confirms that the request
// was accepted; the authoritative state change is observed later through the
// change feed.
func (c *Client) Insert(ctx context.Context, table string, row any) error {
	var err error
	ctx, span := tracer.Start(ctx, "insert-row")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	req, err := c.newRequest(ctx, http.MethodPost, "/rest/v1/"+table, nil, row)
	if err != nil {
		return err
	}
	req.Header.Set("Prefer", "return=minimal")

	_, err = c.do(ctx, req, KindWrite)
	return err
}

func (c *Client) Update(ctx context.Context, table, id string, patch map[string]any) error {
	var err error
	ctx, span := tracer.Start(ctx, "update-row")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	query := url.Values{}
	query.Set("id", "eq."+id)

	req, err := c.newRequest(ctx, http.MethodPatch, "/rest/v1/"+table, query, patch)
	if err != nil {
		return err
	}
	req.Header.Set("Prefer", "return=minimal")

	_, err = c.do(ctx, req, KindWrite)
	return err
}
