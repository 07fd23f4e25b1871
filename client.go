package surge

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/surgehq/surge-go/internal/requestor"
)

const sdkVersion = "1.0.0"

// Environment variables read by ClientFromEnv.
const (
	EnvAPIKey  = "SURGE_API_KEY"
	EnvBaseURL = "SURGE_BASE_URL"
)

// DefaultBaseURL is the production API host.
const DefaultBaseURL = requestor.DefaultBaseURL

// Client talks to the Surge API. Every resource operation is a method on
// Client, takes a context first, and accepts per-call overrides last.
//
// A Client is safe for concurrent use: it holds no mutable state across
// calls beyond its configuration, which is never written after
// construction.
type Client struct {
	requestor *requestor.Requestor

	// Polling knobs for the report loop, overridable in tests.
	pollInterval time.Duration
	now          func() time.Time
	sleep        func(ctx context.Context, d time.Duration) error
}

// NewClient creates a Client with the given options.
func NewClient(opts ...Option) *Client {
	options := NewOptions(opts...)
	req := requestor.New(options.BaseURL, options.APIKey, options.HTTPClient)
	req.UserAgent = options.UserAgent
	if req.UserAgent == "" {
		req.UserAgent = fmt.Sprintf("surge-go/%s", sdkVersion)
	}
	return &Client{
		requestor:    req,
		pollInterval: 2 * time.Second,
		now:          time.Now,
		sleep:        sleepContext,
	}
}

// ClientFromEnv creates a Client configured from process environment. A
// .env file in the working directory is loaded first when present. The
// returned client may carry no API key; calls made without one fail with
// MissingCredentialError.
func ClientFromEnv(opts ...Option) *Client {
	_ = godotenv.Load()
	envOpts := []Option{
		WithAPIKey(os.Getenv(EnvAPIKey)),
		WithBaseURL(os.Getenv(EnvBaseURL)),
	}
	return NewClient(append(envOpts, opts...)...)
}

// get issues a GET with query parameters.
func (c *Client) get(ctx context.Context, path string, params Params, opts []CallOption) (any, error) {
	return c.do(ctx, requestor.MethodGet, path, params, nil, opts)
}

// post issues a POST with a JSON body.
func (c *Client) post(ctx context.Context, path string, params Params, opts []CallOption) (any, error) {
	return c.do(ctx, requestor.MethodPost, path, params, nil, opts)
}

// put issues a PUT; an empty params yields a bodyless request.
func (c *Client) put(ctx context.Context, path string, params Params, opts []CallOption) (any, error) {
	return c.do(ctx, requestor.MethodPut, path, params, nil, opts)
}

// del issues a DELETE.
func (c *Client) del(ctx context.Context, path string, opts []CallOption) (any, error) {
	return c.do(ctx, requestor.MethodDelete, path, nil, nil, opts)
}

// do routes every operation through the requestor chokepoint.
func (c *Client) do(ctx context.Context, method, path string, params Params, files map[string]io.Reader, opts []CallOption) (any, error) {
	settings := newCallSettings(opts)
	return c.requestor.Do(ctx, requestor.Request{
		Method:  method,
		Path:    path,
		Params:  params,
		Files:   files,
		APIKey:  settings.apiKey,
		BaseURL: settings.baseURL,
	})
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
