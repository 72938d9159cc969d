// Package wikipedia is a small client for the Wikipedia page summary and title search REST APIs
package wikipedia

import (
	"context"
	"encoding/json"
	stderrs "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	perr "wikicord/internal/platform/errors"
	"wikicord/internal/platform/logger"
	"wikicord/internal/platform/metrics"
)

const (
	// DefaultSummaryURL is the base of the page summary endpoint
	DefaultSummaryURL = "https://en.wikipedia.org/api/rest_v1"
	// DefaultSearchURL is the base of the title search endpoint
	DefaultSearchURL = "https://en.wikipedia.org/w/rest.php/v1"
	// DefaultSearchLimit caps search hits
	DefaultSearchLimit = 10

	defaultTimeout = 10 * time.Second
	defaultUA      = "wikicord"
	maxBody        = 1 << 20

	opSummary = "page summary"
	opSearch  = "search results"
)

// FetchError is a non-2xx answer from Wikipedia; Reason is the response body
type FetchError struct {
	Op     string
	Status int
	Reason string
}

// Error interface
func (e *FetchError) Error() string { return "Failed to fetch " + e.Op + ": " + e.Reason }

// HTTPStatus interface
func (e *FetchError) HTTPStatus() int { return e.Status }

// Options configures the Client
type Options struct {
	SummaryURL  string
	SearchURL   string
	SearchLimit int
	UserAgent   string
	// Timeout applies only when the Client builds its own http.Client
	Timeout time.Duration
}

// Client calls the Wikipedia REST APIs
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
	now  func() time.Time
}

// NewClient creates a Client with defaults; hc may be nil
func NewClient(o Options, hc *http.Client) *Client {
	if o.SummaryURL == "" {
		o.SummaryURL = DefaultSummaryURL
	}
	if o.SearchURL == "" {
		o.SearchURL = DefaultSearchURL
	}
	o.SummaryURL = strings.TrimRight(o.SummaryURL, "/")
	o.SearchURL = strings.TrimRight(o.SearchURL, "/")
	if o.SearchLimit <= 0 {
		o.SearchLimit = DefaultSearchLimit
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if hc == nil {
		hc = &http.Client{Timeout: o.Timeout}
	}
	return &Client{
		http: hc,
		opts: o,
		log:  *logger.Named("wikipedia"),
		now:  time.Now,
	}
}

// Summary fetches the page summary for title
func (c *Client) Summary(ctx context.Context, title string) (Summary, error) {
	var out Summary
	u := c.opts.SummaryURL + "/page/summary/" + url.PathEscape(title)
	if err := c.get(ctx, opSummary, u, &out); err != nil {
		return Summary{}, err
	}
	return out, nil
}

// Search runs a title search for query
func (c *Client) Search(ctx context.Context, query string) ([]Page, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(c.opts.SearchLimit))
	var out SearchResult
	if err := c.get(ctx, opSearch, c.opts.SearchURL+"/search/title?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	if out.Pages == nil {
		out.Pages = []Page{}
	}
	return out.Pages, nil
}

// get issues one GET and decodes a 2xx JSON body into dst
func (c *Client) get(ctx context.Context, op, u string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "wikipedia new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")

	start := c.now()
	resp, err := c.http.Do(req)
	if err != nil {
		lat := c.now().Sub(start)
		status := "error"
		if ctxErr := ctx.Err(); ctxErr != nil {
			status = "canceled"
			// keep errors.Is(err, context.DeadlineExceeded) working for callers
			err = fmt.Errorf("%w: %w", ctxErr, err)
		}
		metrics.ObserveUpstream("wikipedia", op, status, lat)
		c.log.Warn().Err(err).Str("op", op).Dur("elapsed", lat).Msg("wikipedia transport error")
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "wikipedia %s failed", op)
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	lat := c.now().Sub(start)
	metrics.ObserveUpstream("wikipedia", op, strconv.Itoa(resp.StatusCode), lat)
	c.log.Debug().
		Str("op", op).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Dur("elapsed", lat).
		Msg("wikipedia response")

	if readErr != nil {
		return perr.Wrapf(readErr, perr.ErrorCodeUnavailable, "wikipedia %s read failed", op)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &FetchError{Op: op, Status: resp.StatusCode, Reason: string(body)}
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUpstream, "wikipedia %s decode failed", op)
	}
	return nil
}

// IsFetchError reports whether err carries a non-2xx Wikipedia answer
func IsFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	if stderrs.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
