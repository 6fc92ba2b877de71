package authsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

const PathRecords = "/records"

// CreateRecord stores a cooking record for the signed-in user.
func (c *Client) CreateRecord(ctx context.Context, req CreateRecordRequest) (*Record, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, PathRecords, req)
	if err != nil {
		return nil, err
	}

	var out Record
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListRecordsOptions filters and pages GET /records. Zero values use the
// server defaults.
type ListRecordsOptions struct {
	RecipeID string
	Limit    int
	Offset   int
	SortBy   string // cookedAt or createdAt
	Order    string // asc or desc
}

func (o ListRecordsOptions) query() string {
	v := url.Values{}
	if o.RecipeID != "" {
		v.Set("recipeId", o.RecipeID)
	}
	if o.Limit > 0 {
		v.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Offset > 0 {
		v.Set("offset", strconv.Itoa(o.Offset))
	}
	if o.SortBy != "" {
		v.Set("sortBy", o.SortBy)
	}
	if o.Order != "" {
		v.Set("order", o.Order)
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// ListRecords returns one page of the caller's records, newest first unless
// opts says otherwise.
func (c *Client) ListRecords(ctx context.Context, opts ListRecordsOptions) (*RecordList, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, PathRecords+opts.query(), nil)
	if err != nil {
		return nil, err
	}

	var out RecordList
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetRecord returns one record.
func (c *Client) GetRecord(ctx context.Context, id string) (*Record, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, PathRecords+"/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var out Record
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteRecord removes one record.
func (c *Client) DeleteRecord(ctx context.Context, id string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, PathRecords+"/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
