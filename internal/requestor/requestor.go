// Package requestor executes HTTP calls against the Surge API.
//
// Every resource operation in the SDK funnels through Requestor.Do, so
// authentication, body encoding and error normalization behave uniformly.
package requestor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/surgehq/surge-go/internal/shared"
)

// DefaultBaseURL is the production API host.
const DefaultBaseURL = "https://app.surgehq.ai/api"

// Supported HTTP verbs, lower-cased.
const (
	MethodGet    = "get"
	MethodPost   = "post"
	MethodPut    = "put"
	MethodPatch  = "patch"
	MethodDelete = "delete"
)

// Requestor holds the connection configuration shared by every call.
type Requestor struct {
	BaseURL    string
	APIKey     string
	UserAgent  string
	HTTPClient *http.Client
}

// New creates a Requestor with the given defaults. Empty baseURL falls
// back to DefaultBaseURL; a nil client falls back to http.DefaultClient.
func New(baseURL, apiKey string, client *http.Client) *Requestor {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Requestor{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		HTTPClient: client,
	}
}

// Request describes a single API call.
type Request struct {
	Method string
	Path   string
	Params map[string]any
	// Files attaches multipart uploads; only valid with MethodPost.
	Files map[string]io.Reader
	// APIKey overrides the requestor default for this call only.
	APIKey string
	// BaseURL overrides the requestor default for this call only.
	BaseURL string
}

// Do executes exactly one HTTP call and returns the decoded JSON body.
// Validation failures (bad verb, files on a non-POST, no resolvable
// credential) return before any network I/O.
func (r *Requestor) Do(ctx context.Context, req Request) (any, error) {
	method := strings.ToLower(req.Method)
	switch method {
	case MethodGet, MethodPost, MethodPut, MethodPatch, MethodDelete:
	default:
		return nil, shared.NewRequestError("Invalid HTTP method.", nil)
	}

	if len(req.Files) > 0 && method != MethodPost {
		return nil, shared.NewRequestError("Can only upload files to a POST request", nil)
	}

	apiKey := req.APIKey
	if apiKey == "" {
		apiKey = r.APIKey
	}
	if apiKey == "" {
		return nil, shared.NewMissingCredentialError("")
	}

	baseURL := req.BaseURL
	if baseURL == "" {
		baseURL = r.BaseURL
	}
	endpoint := fmt.Sprintf("%s/%s", strings.TrimRight(baseURL, "/"), strings.TrimLeft(req.Path, "/"))

	var body io.Reader
	contentType := ""
	switch {
	case len(req.Files) > 0:
		buf, mpType, err := encodeMultipart(req.Params, req.Files)
		if err != nil {
			return nil, shared.NewRequestError("Failed to encode multipart body.", err)
		}
		body = buf
		contentType = mpType
	case method == MethodPost || method == MethodPatch:
		encoded, err := json.Marshal(paramsOrEmpty(req.Params))
		if err != nil {
			return nil, shared.NewRequestError("Failed to encode request body.", err)
		}
		body = bytes.NewReader(encoded)
		contentType = "application/json"
	case method == MethodPut && len(req.Params) > 0:
		// Bodyless PUTs are load-bearing: the action verb endpoints
		// (pause, resume, launch) reject unexpected bodies.
		encoded, err := json.Marshal(req.Params)
		if err != nil {
			return nil, shared.NewRequestError("Failed to encode request body.", err)
		}
		body = bytes.NewReader(encoded)
		contentType = "application/json"
	}

	if method == MethodGet && len(req.Params) > 0 {
		query := url.Values{}
		for key, value := range req.Params {
			query.Set(key, fmt.Sprintf("%v", value))
		}
		endpoint = endpoint + "?" + query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, strings.ToUpper(method), endpoint, body)
	if err != nil {
		return nil, shared.NewRequestError("Failed to build request.", err)
	}
	// The API key is the basic auth username; the password is empty.
	httpReq.SetBasicAuth(apiKey, "")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if r.UserAgent != "" {
		httpReq.Header.Set("User-Agent", r.UserAgent)
	}

	resp, err := r.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, shared.NewRequestError("Request failed.", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, shared.NewRequestError("Failed to read response body.", err)
	}

	if resp.StatusCode >= 400 {
		return nil, shared.NewHTTPRequestError(
			fmt.Sprintf("Request to %s failed: %s.", req.Path, resp.Status),
			resp.StatusCode,
			string(respBody),
		)
	}

	var decoded any
	if len(bytes.TrimSpace(respBody)) == 0 {
		return nil, nil
	}
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, shared.NewRequestError("Response body is not valid JSON.", err)
	}
	return decoded, nil
}

func paramsOrEmpty(params map[string]any) map[string]any {
	if params == nil {
		return map[string]any{}
	}
	return params
}

func encodeMultipart(params map[string]any, files map[string]io.Reader) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	for key, value := range params {
		if err := writer.WriteField(key, fmt.Sprintf("%v", value)); err != nil {
			return nil, "", err
		}
	}
	for name, reader := range files {
		part, err := writer.CreateFormFile(name, name)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, reader); err != nil {
			return nil, "", err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return buf, writer.FormDataContentType(), nil
}
