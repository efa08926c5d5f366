// Package live implements the table boundary against the hosted table API
// over HTTP. Timeouts and retries live here, not in the repositories; any
// transport failure is returned as an error for the caller to classify.
package live

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/mwalimu/darasa/core"
	"github.com/mwalimu/darasa/core/table"
)

type (
	Options struct {
		BaseURL   string
		ProjectID string
		APIKey    string
		Timeout   time.Duration
	}

	Client struct {
		opts Options
		http *http.Client
	}

	writePayload struct {
		Records []table.Record `json:"records"`
	}

	deletePayload struct {
		RecordIDs []int `json:"recordIds"`
	}

	getPayload struct {
		Fields []table.FieldSelector `json:"fields"`
	}
)

var _ table.Client = (*Client)(nil)

func NewClient(conf *core.Config) *Client {
	return NewClientWithOptions(Options{
		BaseURL:   conf.Boundary.BaseURL,
		ProjectID: conf.Boundary.ProjectID,
		APIKey:    conf.Boundary.APIKey,
		Timeout:   conf.Boundary.Timeout,
	})
}

func NewClientWithOptions(opts Options) *Client {
	return &Client{
		opts: opts,
		http: &http.Client{Timeout: opts.Timeout},
	}
}

func (c *Client) Fetch(ctx context.Context, tbl string, q table.Query) (table.FetchResponse, error) {
	var res table.FetchResponse
	err := c.post(ctx, fmt.Sprintf("/tables/%s/fetch", tbl), q, &res)
	return res, err
}

func (c *Client) Get(ctx context.Context, tbl string, id int, fields []table.FieldSelector) (table.GetResponse, error) {
	var res table.GetResponse
	err := c.post(ctx, fmt.Sprintf("/tables/%s/records/%d", tbl, id), getPayload{Fields: fields}, &res)
	return res, err
}

func (c *Client) Write(ctx context.Context, tbl string, records []table.Record) (table.WriteResponse, error) {
	var res table.WriteResponse
	err := c.post(ctx, fmt.Sprintf("/tables/%s/records", tbl), writePayload{Records: records}, &res)
	return res, err
}

func (c *Client) Delete(ctx context.Context, tbl string, ids []int) (table.DeleteResponse, error) {
	var res table.DeleteResponse
	err := c.post(ctx, fmt.Sprintf("/tables/%s/records/delete", tbl), deletePayload{RecordIDs: ids}, &res)
	return res, err
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "encoding request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Project-Id", c.opts.ProjectID)
	req.Header.Set("X-Api-Key", c.opts.APIKey)
	req.Header.Set("X-Request-Id", uuid.New().String())

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "calling boundary")
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "reading boundary response")
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return errors.Errorf("boundary returned status %d", resp.StatusCode)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, "decoding boundary response (status %d)", resp.StatusCode)
	}
	return nil
}
