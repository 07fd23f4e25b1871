package requestor

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/surgehq/surge-go/internal/shared"
)

// recordingServer captures every request the requestor issues.
type recordingServer struct {
	mu       sync.Mutex
	requests []recordedRequest
	server   *httptest.Server
}

type recordedRequest struct {
	method      string
	path        string
	query       string
	body        string
	contentType string
	authUser    string
	authOK      bool
}

func newRecordingServer(t *testing.T, status int, responseBody string) *recordingServer {
	t.Helper()
	rs := &recordingServer{}
	rs.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		user, _, ok := r.BasicAuth()
		rs.mu.Lock()
		rs.requests = append(rs.requests, recordedRequest{
			method:      r.Method,
			path:        r.URL.Path,
			query:       r.URL.RawQuery,
			body:        string(body),
			contentType: r.Header.Get("Content-Type"),
			authUser:    user,
			authOK:      ok,
		})
		rs.mu.Unlock()
		w.WriteHeader(status)
		_, _ = w.Write([]byte(responseBody))
	}))
	t.Cleanup(rs.server.Close)
	return rs
}

func (rs *recordingServer) count() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return len(rs.requests)
}

func (rs *recordingServer) last(t *testing.T) recordedRequest {
	t.Helper()
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if len(rs.requests) == 0 {
		t.Fatal("no requests recorded")
	}
	return rs.requests[len(rs.requests)-1]
}

func TestDoValidationFailuresIssueNoNetworkCall(t *testing.T) {
	rs := newRecordingServer(t, http.StatusOK, `{}`)

	tests := []struct {
		name      string
		req       Request
		apiKey    string
		checkErr  func(error) bool
		errLabel  string
		wantInMsg string
	}{
		{
			name:      "invalid_method",
			req:       Request{Method: "fetch", Path: "projects"},
			apiKey:    "key",
			checkErr:  shared.IsRequestError,
			errLabel:  "RequestError",
			wantInMsg: "Invalid HTTP method.",
		},
		{
			name: "files_with_get",
			req: Request{
				Method: MethodGet,
				Path:   "projects",
				Files:  map[string]io.Reader{"file": strings.NewReader("x")},
			},
			apiKey:    "key",
			checkErr:  shared.IsRequestError,
			errLabel:  "RequestError",
			wantInMsg: "Can only upload files to a POST request",
		},
		{
			name: "files_with_put",
			req: Request{
				Method: MethodPut,
				Path:   "projects",
				Files:  map[string]io.Reader{"file": strings.NewReader("x")},
			},
			apiKey:    "key",
			checkErr:  shared.IsRequestError,
			errLabel:  "RequestError",
			wantInMsg: "Can only upload files to a POST request",
		},
		{
			name:     "missing_credential",
			req:      Request{Method: MethodGet, Path: "projects"},
			apiKey:   "",
			checkErr: shared.IsMissingCredentialError,
			errLabel: "MissingCredentialError",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := New(rs.server.URL, test.apiKey, nil)
			before := rs.count()
			_, err := r.Do(context.Background(), test.req)
			if err == nil {
				t.Fatalf("expected %s, got nil", test.errLabel)
			}
			if !test.checkErr(err) {
				t.Fatalf("expected %s, got %T: %v", test.errLabel, err, err)
			}
			if test.wantInMsg != "" && !strings.Contains(err.Error(), test.wantInMsg) {
				t.Errorf("error %q does not contain %q", err.Error(), test.wantInMsg)
			}
			if rs.count() != before {
				t.Errorf("validation failure issued a network call")
			}
		})
	}
}

func TestDoBasicAuthUsesKeyAsUsername(t *testing.T) {
	rs := newRecordingServer(t, http.StatusOK, `{}`)
	r := New(rs.server.URL, "key-123", nil)
	if _, err := r.Do(context.Background(), Request{Method: MethodGet, Path: "projects"}); err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	got := rs.last(t)
	if !got.authOK || got.authUser != "key-123" {
		t.Errorf("basic auth user = %q (ok=%v), want key-123", got.authUser, got.authOK)
	}
}

func TestDoCallOverridesBeatDefaults(t *testing.T) {
	rs := newRecordingServer(t, http.StatusOK, `{}`)
	r := New("http://unreachable.invalid", "default-key", nil)
	_, err := r.Do(context.Background(), Request{
		Method:  MethodGet,
		Path:    "projects",
		APIKey:  "override-key",
		BaseURL: rs.server.URL,
	})
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	if got := rs.last(t); got.authUser != "override-key" {
		t.Errorf("auth user = %q, want override-key", got.authUser)
	}
}

func TestDoGetSerializesQueryParams(t *testing.T) {
	rs := newRecordingServer(t, http.StatusOK, `[]`)
	r := New(rs.server.URL, "key", nil)
	_, err := r.Do(context.Background(), Request{
		Method: MethodGet,
		Path:   "projects",
		Params: map[string]any{"page": 3},
	})
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	got := rs.last(t)
	if got.method != http.MethodGet {
		t.Errorf("method = %q, want GET", got.method)
	}
	if got.query != "page=3" {
		t.Errorf("query = %q, want page=3", got.query)
	}
	if got.body != "" {
		t.Errorf("GET carried a body: %q", got.body)
	}
}

func TestDoPostSerializesJSONBody(t *testing.T) {
	rs := newRecordingServer(t, http.StatusOK, `{}`)
	r := New(rs.server.URL, "key", nil)
	_, err := r.Do(context.Background(), Request{
		Method: MethodPost,
		Path:   "projects",
		Params: map[string]any{"name": "Test"},
	})
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	got := rs.last(t)
	if got.contentType != "application/json" {
		t.Errorf("content type = %q, want application/json", got.contentType)
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(got.body), &decoded); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if decoded["name"] != "Test" {
		t.Errorf("body name = %v, want Test", decoded["name"])
	}
}

func TestDoPutBodySemantics(t *testing.T) {
	tests := []struct {
		name     string
		params   map[string]any
		wantBody bool
	}{
		{name: "empty_params_bodyless", params: nil, wantBody: false},
		{name: "empty_map_bodyless", params: map[string]any{}, wantBody: false},
		{name: "non_empty_params_json_body", params: map[string]any{"x": 1}, wantBody: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rs := newRecordingServer(t, http.StatusOK, `{}`)
			r := New(rs.server.URL, "key", nil)
			_, err := r.Do(context.Background(), Request{
				Method: MethodPut,
				Path:   "projects/1/pause",
				Params: test.params,
			})
			if err != nil {
				t.Fatalf("Do() error: %v", err)
			}
			got := rs.last(t)
			if test.wantBody && got.body == "" {
				t.Error("expected a JSON body, got none")
			}
			if !test.wantBody && got.body != "" {
				t.Errorf("expected a bodyless PUT, got body %q", got.body)
			}
		})
	}
}

func TestDoPostWithFilesBuildsMultipart(t *testing.T) {
	rs := newRecordingServer(t, http.StatusOK, `{}`)
	r := New(rs.server.URL, "key", nil)
	_, err := r.Do(context.Background(), Request{
		Method: MethodPost,
		Path:   "projects",
		Params: map[string]any{"name": "Test"},
		Files:  map[string]io.Reader{"attachment": strings.NewReader("file contents")},
	})
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	got := rs.last(t)
	if !strings.HasPrefix(got.contentType, "multipart/form-data") {
		t.Errorf("content type = %q, want multipart/form-data", got.contentType)
	}
	if !strings.Contains(got.body, "file contents") {
		t.Error("multipart body missing file contents")
	}
	if !strings.Contains(got.body, "Test") {
		t.Error("multipart body missing form field")
	}
}

func TestDoErrorStatusEmbedsDetailAndBody(t *testing.T) {
	rs := newRecordingServer(t, http.StatusUnprocessableEntity, `{"error":"name is taken"}`)
	r := New(rs.server.URL, "key", nil)
	_, err := r.Do(context.Background(), Request{Method: MethodGet, Path: "projects"})
	reqErr := shared.AsRequestError(err)
	if reqErr == nil {
		t.Fatalf("expected RequestError, got %T: %v", err, err)
	}
	if reqErr.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status code = %d, want 422", reqErr.StatusCode)
	}
	if !strings.Contains(err.Error(), "422") {
		t.Errorf("error %q missing status detail", err.Error())
	}
	if !strings.Contains(err.Error(), "name is taken") {
		t.Errorf("error %q missing response body text", err.Error())
	}
}

func TestDoInvalidJSONResponse(t *testing.T) {
	rs := newRecordingServer(t, http.StatusOK, `<html>not json</html>`)
	r := New(rs.server.URL, "key", nil)
	_, err := r.Do(context.Background(), Request{Method: MethodGet, Path: "projects"})
	if !shared.IsRequestError(err) {
		t.Fatalf("expected RequestError, got %T: %v", err, err)
	}
	if !strings.Contains(err.Error(), "not valid JSON") {
		t.Errorf("error %q does not mention JSON decoding", err.Error())
	}
}

func TestDoEmptyResponseBody(t *testing.T) {
	rs := newRecordingServer(t, http.StatusOK, "")
	r := New(rs.server.URL, "key", nil)
	decoded, err := r.Do(context.Background(), Request{Method: MethodDelete, Path: "teams/1"})
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	if decoded != nil {
		t.Errorf("decoded = %v, want nil for empty body", decoded)
	}
}

func TestDoIssuesExactlyOneCall(t *testing.T) {
	rs := newRecordingServer(t, http.StatusOK, `{}`)
	r := New(rs.server.URL, "key", nil)
	if _, err := r.Do(context.Background(), Request{Method: MethodPost, Path: "projects"}); err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	if rs.count() != 1 {
		t.Errorf("request count = %d, want 1", rs.count())
	}
}
