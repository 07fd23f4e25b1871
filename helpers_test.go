package surge

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"
)

// recordedCall is one request captured by the API stub.
type recordedCall struct {
	Method string
	Path   string
	Query  url.Values
	// Body is the decoded JSON payload; nil for bodyless requests.
	Body Params
	// HasBody distinguishes a bodyless request from an empty JSON body.
	HasBody bool
}

// apiStub is an httptest-backed fake of the remote API. Responses are
// served in order; the last one repeats when the queue runs out.
type apiStub struct {
	mu        sync.Mutex
	calls     []recordedCall
	responses []stubResponse
	next      int
	server    *httptest.Server
}

type stubResponse struct {
	status int
	body   string
}

func ok(body string) stubResponse {
	return stubResponse{status: http.StatusOK, body: body}
}

// newAPIStub starts a fake API server and returns a client pointed at it.
// The client's poll sleep is a no-op so report tests run instantly.
func newAPIStub(t *testing.T, responses ...stubResponse) (*apiStub, *Client) {
	t.Helper()
	stub := &apiStub{responses: responses}
	stub.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		call := recordedCall{
			Method:  r.Method,
			Path:    r.URL.Path,
			Query:   r.URL.Query(),
			HasBody: len(raw) > 0,
		}
		if len(raw) > 0 {
			var body Params
			if err := json.Unmarshal(raw, &body); err == nil {
				call.Body = body
			}
		}
		stub.mu.Lock()
		stub.calls = append(stub.calls, call)
		resp := stubResponse{status: http.StatusOK, body: `{}`}
		if len(stub.responses) > 0 {
			if stub.next >= len(stub.responses) {
				resp = stub.responses[len(stub.responses)-1]
			} else {
				resp = stub.responses[stub.next]
			}
			stub.next++
		}
		stub.mu.Unlock()
		w.WriteHeader(resp.status)
		_, _ = w.Write([]byte(resp.body))
	}))
	t.Cleanup(stub.server.Close)

	client := NewClient(WithAPIKey("test-key"), WithBaseURL(stub.server.URL))
	client.sleep = func(ctx context.Context, d time.Duration) error { return nil }
	return stub, client
}

func (s *apiStub) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func (s *apiStub) call(t *testing.T, i int) recordedCall {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	if i >= len(s.calls) {
		t.Fatalf("call %d not recorded (have %d)", i, len(s.calls))
	}
	return s.calls[i]
}

func (s *apiStub) lastCall(t *testing.T) recordedCall {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.calls) == 0 {
		t.Fatal("no calls recorded")
	}
	return s.calls[len(s.calls)-1]
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func floatPtr(f float64) *float64 { return &f }
