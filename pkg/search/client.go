package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/shencore/shen/pkg/log"
)

const (
	// DefaultEndpoint is the Custom Search JSON API endpoint.
	DefaultEndpoint = "https://www.googleapis.com/customsearch/v1"

	// PageSize is the number of results the API returns per page.
	PageSize = 10

	// MaxPage is the last page the API serves. It returns at most 100
	// results, so start never exceeds 91.
	MaxPage = 10

	videoSites = "site:youtube.com OR site:aparat.com"
)

var logger = log.ForService("search")

// Executor runs a single page request. *Client is the production
// implementation; tests and decorators (history recording) provide others.
type Executor interface {
	Execute(ctx context.Context, req Request) (*Response, error)
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, req Request) (*Response, error)

func (f ExecutorFunc) Execute(ctx context.Context, req Request) (*Response, error) {
	return f(ctx, req)
}

// ClientConfig configures a Client. Only APIKey and CX are required.
type ClientConfig struct {
	APIKey     string
	CX         string
	Endpoint   string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client talks to the Custom Search JSON API.
type Client struct {
	mu       sync.RWMutex
	apiKey   string
	cx       string
	endpoint string
	http     *http.Client
}

// NewClient creates a client. A zero Timeout means 15 seconds.
func NewClient(cfg ClientConfig) *Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				IdleConnTimeout:       90 * time.Second,
				MaxIdleConns:          100,
				MaxIdleConnsPerHost:   10,
				ResponseHeaderTimeout: timeout,
			},
			Timeout: timeout,
		}
	}

	return &Client{
		apiKey:   cfg.APIKey,
		cx:       cfg.CX,
		endpoint: endpoint,
		http:     httpClient,
	}
}

// SetCredentials replaces the API key and search engine id. Safe to call
// while requests are in flight; they keep the credentials they started with.
func (c *Client) SetCredentials(apiKey, cx string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apiKey = apiKey
	c.cx = cx
}

// BuildQuery returns the query text sent upstream for term and type.
func BuildQuery(term string, t Type) string {
	if t == TypeVideo {
		return term + " " + videoSites
	}
	return term
}

// StartIndex maps a 1-based page number to the API's 1-based result offset.
// Pages outside 1..MaxPage are clamped.
func StartIndex(page int) int {
	page = max(1, min(page, MaxPage))
	return (page-1)*PageSize + 1
}

// BuildURL returns the full request URL for req.
func (c *Client) BuildURL(req Request) string {
	c.mu.RLock()
	apiKey, cx, endpoint := c.apiKey, c.cx, c.endpoint
	c.mu.RUnlock()

	params := url.Values{}
	params.Set("key", apiKey)
	params.Set("cx", cx)
	params.Set("q", BuildQuery(req.Term, req.Type))
	params.Set("start", strconv.Itoa(StartIndex(req.Page)))
	if req.Type == TypeImage {
		params.Set("searchType", "image")
	}

	return endpoint + "?" + params.Encode()
}

// Execute issues exactly one GET request for req and decodes the reply.
func (c *Client) Execute(ctx context.Context, req Request) (*Response, error) {
	apiURL := c.BuildURL(req)
	logger.Debugf("GET %s type=%s page=%d start=%d", c.endpoint, req.Type, req.Page, StartIndex(req.Page))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, &TransportError{Op: "creating request", Err: err}
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Op: "making request", Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Warnf("closing response body: %v", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: "reading response", Err: err}
	}

	var decoded Response
	if err := json.Unmarshal(body, &decoded); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &TransportError{Op: "search", StatusCode: resp.StatusCode}
		}
		return nil, &TransportError{Op: "decoding response", Err: err}
	}

	if decoded.Error != nil {
		logger.Debugf("upstream error code=%d status=%s", decoded.Error.Code, decoded.Error.Status)
		return nil, &APIError{
			Code:    decoded.Error.Code,
			Status:  decoded.Error.Status,
			Message: decoded.Error.Message,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{Op: "search", StatusCode: resp.StatusCode}
	}

	logger.Debugf("received %d items (next page: %t)", len(decoded.Items), decoded.HasNextPage())
	return &decoded, nil
}

// String implements fmt.Stringer without leaking credentials.
func (c *Client) String() string {
	return fmt.Sprintf("search.Client{endpoint: %s}", c.endpoint)
}
