package rest

import (
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/yomu-dev/yomu/internal/log"
)

const requestTimeout = 15 * time.Second

// Client is the shared HTTP client for the manga site REST API.  It is the
// single place where the base URL and default headers are configured; the
// bearer token set here is carried by every subsequent request until cleared.
type Client struct {
	r       *resty.Client
	baseURL string
}

// NewClient creates a client rooted at the given API base URL
func NewClient(baseURL string) *Client {
	baseURL = strings.TrimRight(baseURL, "/")

	r := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(requestTimeout).
		SetHeader("Accept", "application/json")

	// Tag every outgoing request so a log line can be matched to a backend one
	r.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		req.SetHeader("X-Request-ID", uuid.NewString())
		return nil
	})

	r.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		log.Trace("API response",
			"method", resp.Request.Method,
			"url", resp.Request.URL,
			"status", resp.StatusCode(),
			"request_id", resp.Request.Header.Get("X-Request-ID"))
		return nil
	})

	return &Client{
		r:       r,
		baseURL: baseURL,
	}
}

// SetToken attaches an access token as the default bearer credential for all
// requests made through this client.
func (c *Client) SetToken(token string) {
	c.r.SetAuthToken(token)
}

// ClearToken removes the default bearer credential
func (c *Client) ClearToken() {
	c.r.SetAuthToken("")
}

// BaseURL returns the configured API root
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ResolveImageURL normalises a media path from an API payload into an
// absolute URL.  Absolute URLs pass through untouched; relative paths are
// resolved against the API base URL; empty input stays empty.
func (c *Client) ResolveImageURL(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// request returns a fresh resty request ready for use
func (c *Client) request() *resty.Request {
	return c.r.R()
}

// check converts a resty response/error pair into the client error taxonomy.
// Transport failures become NetworkError; HTTP error statuses become the
// matching sentinel or an APIError built from the response body.
func (c *Client) check(resp *resty.Response, err error) error {
	if err != nil {
		return NetworkError{Err: err}
	}
	if resp.IsError() {
		return apiErrorFrom(resp)
	}
	return nil
}
