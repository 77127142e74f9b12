// Package testutil provides testing utilities for the Instagram API client.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"time"
)

// MockResponse defines one scripted upstream response.
type MockResponse struct {
	StatusCode int
	Body       string
	Delay      time.Duration
}

// MockUpstream is a scripted mock of the aggregation API. Each path replays
// its scripted responses in order and repeats the last one once exhausted.
type MockUpstream struct {
	server *httptest.Server
	mu     sync.RWMutex
	script map[string][]MockResponse
	served map[string]int

	queries    map[string][]url.Values
	lastHeader http.Header
}

// NewMockUpstream starts a new mock upstream server.
func NewMockUpstream() *MockUpstream {
	mock := &MockUpstream{
		script:  make(map[string][]MockResponse),
		served:  make(map[string]int),
		queries: make(map[string][]url.Values),
	}
	mock.server = httptest.NewServer(http.HandlerFunc(mock.handle))
	return mock
}

func (m *MockUpstream) handle(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	path := r.URL.Path
	m.queries[path] = append(m.queries[path], r.URL.Query())
	m.lastHeader = r.Header.Clone()

	responses := m.script[path]
	n := m.served[path]
	m.served[path]++
	m.mu.Unlock()

	if len(responses) == 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"endpoint not scripted"}`))
		return
	}
	if n >= len(responses) {
		n = len(responses) - 1
	}
	resp := responses[n]

	if resp.Delay > 0 {
		time.Sleep(resp.Delay)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	if resp.Body != "" {
		w.Write([]byte(resp.Body))
	}
}

// URL returns the mock server URL.
func (m *MockUpstream) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockUpstream) Close() {
	m.server.Close()
}

// Script sets the responses for path, replacing any earlier script.
func (m *MockUpstream) Script(path string, responses ...MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script[path] = responses
	m.served[path] = 0
}

// RequestCount returns the number of requests made to path.
func (m *MockUpstream) RequestCount(path string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.queries[path])
}

// TotalRequests returns the number of requests made to any path.
func (m *MockUpstream) TotalRequests() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := 0
	for _, q := range m.queries {
		total += len(q)
	}
	return total
}

// Queries returns the query strings received on path, in order.
func (m *MockUpstream) Queries(path string) []url.Values {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]url.Values(nil), m.queries[path]...)
}

// LastHeader returns the headers of the most recent request.
func (m *MockUpstream) LastHeader() http.Header {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastHeader
}

// Reset clears all tracking counters. Scripts are kept and replay from the start.
func (m *MockUpstream) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.served = make(map[string]int)
	m.queries = make(map[string][]url.Values)
	m.lastHeader = nil
}

// NewOKResponse creates a 200 response with status "ok" wrapping data.
func NewOKResponse(data any) MockResponse {
	body, err := json.Marshal(map[string]any{
		"status":  "ok",
		"message": "",
		"data":    data,
	})
	if err != nil {
		panic(fmt.Sprintf("marshal mock data: %v", err))
	}
	return MockResponse{StatusCode: http.StatusOK, Body: string(body)}
}

// NewFailResponse creates a 200 response with status "fail".
func NewFailResponse(message string) MockResponse {
	body, _ := json.Marshal(map[string]any{"status": "fail", "message": message})
	return MockResponse{StatusCode: http.StatusOK, Body: string(body)}
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"message": "Internal server error"}`,
	}
}

// NewMalformedResponse creates a 200 response whose body is not an envelope.
func NewMalformedResponse() MockResponse {
	return MockResponse{StatusCode: http.StatusOK, Body: `<html>gateway error</html>`}
}
