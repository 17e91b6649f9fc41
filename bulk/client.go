package bulk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ghie29/avmango/constant"
	"github.com/ghie29/avmango/log"
	"github.com/ghie29/avmango/network"
	"github.com/ghie29/avmango/util"
	"golang.org/x/time/rate"
)

// Response is a decoded listing page.
type Response struct {
	Items      []item
	Page       int
	TotalPages int
	// Limit is the page size the endpoint reported, zero when it didn't.
	Limit int
}

// Client talks to the bulk catalog API. It is safe for concurrent use.
type Client struct {
	http     *http.Client
	pageSize int
	limiter  *rate.Limiter
}

// NewClient creates a client. pageSize is the fallback native page size,
// delay the pause between pages while walking a whole listing.
func NewClient(httpClient *http.Client, pageSize int, delay time.Duration) *Client {
	if httpClient == nil {
		httpClient = network.Client
	}
	if pageSize <= 0 {
		pageSize = constant.BulkSourcePageSize
	}

	return &Client{
		http:     httpClient,
		pageSize: pageSize,
		limiter:  network.NewLimiter(delay),
	}
}

// Fetch performs a GET against a fully built listing URL.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: unexpected status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return decode(body)
}

func decode(body []byte) (*Response, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}

	var items []item
	list := bytes.TrimSpace(env.List)

	switch {
	case len(list) > 0 && list[0] == '[':
		if err := json.Unmarshal(list, &items); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
	case len(list) > 0 && list[0] == '{':
		var single item
		if err := json.Unmarshal(list, &single); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		items = []item{single}
	case env.ID != "":
		var single item
		if err := json.Unmarshal(body, &single); err != nil {
			return nil, fmt.Errorf("decode item: %w", err)
		}
		items = []item{single}
	}

	return &Response{
		Items:      items,
		Page:       int(env.Page),
		TotalPages: int(env.PageCount),
		Limit:      int(env.Limit),
	}, nil
}

// pageSize derives the native page size: the reported limit, else the item
// count when more pages follow, else the configured fallback.
func (c *Client) pageSizeOf(r *Response) int {
	switch {
	case r.Limit > 0:
		return r.Limit
	case r.TotalPages > 1 && len(r.Items) > 0:
		return len(r.Items)
	default:
		return c.pageSize
	}
}

// Wait blocks until the courtesy limiter lets the next page through.
func (c *Client) Wait(ctx context.Context) error {
	return c.limiter.Wait(ctx)
}

func logPageError(slug string, page int, err error) {
	log.WithFields(map[string]any{
		"category": slug,
		"page":     page,
	}).Warnf("bulk page failed: %v", err)
}
