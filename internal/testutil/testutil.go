// Package testutil provides a fake tourism API server and HTTP helpers
// shared by the integration tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
)

// Envelope wraps item in the upstream response envelope. item may be an
// object, an array, or "" for an empty page.
func Envelope(item any) []byte {
	items := any("")
	if item != nil {
		items = map[string]any{"item": item}
	}
	body, _ := json.Marshal(map[string]any{
		"response": map[string]any{
			"header": map[string]any{"resultCode": "0000", "resultMsg": "OK"},
			"body":   map[string]any{"items": items, "totalCount": 0},
		},
	})
	return body
}

// Responder answers one upstream endpoint. Returning nil yields an empty
// page.
type Responder func(q url.Values) any

// Upstream is a fake tourism API. Endpoints without a responder answer
// with an empty page; endpoints listed in Fail answer 502.
type Upstream struct {
	URL string

	mu    sync.Mutex
	calls map[string]int
}

// NewUpstream starts a fake upstream for the duration of t.
func NewUpstream(t *testing.T, routes map[string]Responder, fail ...string) *Upstream {
	t.Helper()

	failing := make(map[string]bool, len(fail))
	for _, ep := range fail {
		failing[ep] = true
	}

	u := &Upstream{calls: make(map[string]int)}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		endpoint := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]

		u.mu.Lock()
		u.calls[endpoint]++
		u.mu.Unlock()

		if failing[endpoint] {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		var item any
		if respond, ok := routes[endpoint]; ok {
			item = respond(r.URL.Query())
		}
		_, _ = w.Write(Envelope(item))
	}))
	t.Cleanup(srv.Close)

	u.URL = srv.URL
	return u
}

// Calls reports how many requests endpoint has received.
func (u *Upstream) Calls(endpoint string) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.calls[endpoint]
}

// NewRequest creates a new HTTP request for testing with optional headers.
func NewRequest(method, path string, header map[string]string) *http.Request {
	r := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		r.Header.Set(k, v)
	}
	return r
}

// RecordResponse is a decoded HTTP response.
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   any
}

// RecordHTTPResponse decodes the recorded response body as JSON.
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var body any
	if len(bodyBytes) > 0 {
		_ = json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&body)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   body,
	}
}
