package mocks

import (
	"net/http"
	"net/http/httptest"
	"sync"
)

// MockServ answers every request with the same status and body
type MockServ struct {
	server *httptest.Server
	ExpURL string

	mu       sync.Mutex
	requests []string
}

// NewMockServer returns a pointer to a ready to use mock http server
// caller should call close when finished, to shut it down
func NewMockServer(statuscode int, body []byte) *MockServ {
	ms := &MockServ{}

	ms.server = httptest.NewServer(http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		ms.mu.Lock()
		ms.requests = append(ms.requests, req.URL.String())
		ms.mu.Unlock()

		res.WriteHeader(statuscode)
		res.Write(body)
	}))
	ms.ExpURL = ms.server.URL

	return ms
}

// Requests lists the urls asked for so far
func (ms *MockServ) Requests() []string {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	return append([]string{}, ms.requests...)
}

// Close the mock server
func (ms *MockServ) Close() {
	ms.server.Close()
}
