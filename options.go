package surge

import "net/http"

// Option configures a Client at construction time.
type Option func(*Options)

// Options holds client configuration.
type Options struct {
	// APIKey authenticates every call unless overridden per call.
	APIKey string
	// BaseURL is the API host; empty means the production default.
	BaseURL string
	// HTTPClient executes the underlying requests; nil means
	// http.DefaultClient.
	HTTPClient *http.Client
	// UserAgent overrides the default User-Agent header.
	UserAgent string
}

// NewOptions creates an Options with the given options applied.
func NewOptions(opts ...Option) *Options {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// WithAPIKey sets the default API key.
func WithAPIKey(key string) Option {
	return func(o *Options) {
		o.APIKey = key
	}
}

// WithBaseURL overrides the API host.
func WithBaseURL(baseURL string) Option {
	return func(o *Options) {
		o.BaseURL = baseURL
	}
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *Options) {
		o.HTTPClient = client
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(o *Options) {
		o.UserAgent = userAgent
	}
}

// CallOption overrides client configuration for a single operation.
type CallOption func(*callSettings)

type callSettings struct {
	apiKey  string
	baseURL string
}

func newCallSettings(opts []CallOption) callSettings {
	settings := callSettings{}
	for _, opt := range opts {
		opt(&settings)
	}
	return settings
}

// WithCallAPIKey authenticates one call with a different API key.
func WithCallAPIKey(key string) CallOption {
	return func(s *callSettings) {
		s.apiKey = key
	}
}

// WithCallBaseURL directs one call at a different API host.
func WithCallBaseURL(baseURL string) CallOption {
	return func(s *callSettings) {
		s.baseURL = baseURL
	}
}
