package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/opendatateam/ucli/internal/lib"
	"github.com/opendatateam/ucli/internal/models"
)

// APIPrefix is the versioned path every request is issued under
const APIPrefix = "api/1/"

// UserAgent identifies this client to the instance
const UserAgent = "ucli"

// Client wraps http.Client for the uData JSON API.
// It never retries: every transport error or unexpected status is returned to the caller.
type Client struct {
	root       string
	token      string
	httpClient *http.Client
	logger     *lib.Logger
}

// NewClient creates an API client from the connection configuration
func NewClient(config models.ClientConfig, logger *lib.Logger) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !config.SSLCheck {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in, test instances only
	}
	if logger == nil {
		logger = lib.DefaultLogger
	}

	return &Client{
		root:       NormalizeRoot(config.URL),
		token:      config.Token,
		httpClient: &http.Client{Transport: transport},
		logger:     logger,
	}
}

// NormalizeRoot forces root to end with the versioned API prefix
func NormalizeRoot(root string) string {
	if !strings.HasSuffix(root, "/") {
		root += "/"
	}
	if !strings.HasSuffix(root, APIPrefix) {
		root += APIPrefix
	}
	return root
}

// Root returns the normalized API root
func (c *Client) Root() string {
	return c.root
}

// URL returns the absolute URL of an API path
func (c *Client) URL(path string) string {
	return c.root + path
}

// RequestOption customizes a single API call
type RequestOption func(*requestOptions)

type requestOptions struct {
	query        url.Values
	fields       string
	allowFailure bool
}

// WithQuery adds a query string parameter
func WithQuery(key, value string) RequestOption {
	return func(o *requestOptions) {
		if o.query == nil {
			o.query = url.Values{}
		}
		o.query.Add(key, value)
	}
}

// WithFields restricts the response to a field mask (X-Fields header)
func WithFields(fields string) RequestOption {
	return func(o *requestOptions) {
		o.fields = fields
	}
}

// AllowFailure makes a non-2xx response a value instead of an error.
// Transport errors are still returned as errors.
func AllowFailure() RequestOption {
	return func(o *requestOptions) {
		o.allowFailure = true
	}
}

// Result is the outcome of an API call: a success, or a failure carrying the
// HTTP status and the server-provided message.
type Result struct {
	StatusCode int
	Status     string
	Message    string
	Body       []byte
}

// Failed reports whether the response status is outside 2xx
func (r *Result) Failed() bool {
	return r.StatusCode < 200 || r.StatusCode > 299
}

// Decode unmarshals the JSON body into v. An empty body leaves v untouched.
func (r *Result) Decode(v any) error {
	if len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Get performs a GET request
func (c *Client) Get(ctx context.Context, path string, opts ...RequestOption) (*Result, error) {
	return c.Do(ctx, http.MethodGet, path, nil, opts...)
}

// Post performs a POST request with a JSON body
func (c *Client) Post(ctx context.Context, path string, body any, opts ...RequestOption) (*Result, error) {
	return c.Do(ctx, http.MethodPost, path, body, opts...)
}

// Put performs a PUT request with a JSON body
func (c *Client) Put(ctx context.Context, path string, body any, opts ...RequestOption) (*Result, error) {
	return c.Do(ctx, http.MethodPut, path, body, opts...)
}

// Delete performs a DELETE request; only the status of the result matters
func (c *Client) Delete(ctx context.Context, path string, opts ...RequestOption) (*Result, error) {
	return c.Do(ctx, http.MethodDelete, path, nil, opts...)
}

// GetJSON performs a GET request and decodes the successful response into out
func (c *Client) GetJSON(ctx context.Context, path string, out any, opts ...RequestOption) error {
	result, err := c.Get(ctx, path, opts...)
	if err != nil {
		return err
	}
	return result.Decode(out)
}

// PostJSON performs a POST request and decodes the successful response into out
func (c *Client) PostJSON(ctx context.Context, path string, body any, out any, opts ...RequestOption) error {
	result, err := c.Post(ctx, path, body, opts...)
	if err != nil {
		return err
	}
	return result.Decode(out)
}

// Do executes a single API request
func (c *Client) Do(ctx context.Context, method string, path string, body any, opts ...RequestOption) (*Result, error) {
	options := &requestOptions{}
	for _, opt := range opts {
		opt(options)
	}

	target := c.URL(path)
	if len(options.query) > 0 {
		target += "?" + options.query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, lib.ErrInvalidConfig("url", fmt.Sprintf("cannot build request for %s: %v", target, err))
	}

	requestID := uuid.NewString()
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.token != "" {
		req.Header.Set("X-API-KEY", c.token)
	}
	if options.fields != "" {
		req.Header.Set("X-Fields", options.fields)
	}

	lib.LogServiceCall(c.logger, method, target, requestID)

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, lib.ClassifyError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, lib.ErrNetworkUnreachable(target, err)
	}

	lib.LogServiceResponse(c.logger, target, resp.StatusCode, time.Since(startTime))

	result := &Result{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       respBody,
	}

	if result.Failed() {
		result.Message = errorMessage(respBody)
		if !options.allowFailure {
			return nil, lib.ErrHTTPStatus(method, target, resp.StatusCode, resp.Status, result.Message)
		}
	}

	return result, nil
}

// errorMessage extracts the "message" field of an API error body
func errorMessage(body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	switch msg := payload["message"].(type) {
	case nil:
		return ""
	case string:
		return msg
	default:
		return fmt.Sprintf("%v", msg)
	}
}
