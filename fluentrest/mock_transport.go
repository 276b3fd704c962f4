package fluentrest

import (
	"bytes"
	"io"
	"net/http"
	"sync"
)

// MockTransport is a configurable http.RoundTripper for tests. It serves
// stubbed responses, records every request it sees, and implements
// MethodSupport so verb capability checks can be simulated.
type MockTransport struct {
	mu         sync.Mutex
	status     int
	body       string
	header     http.Header
	err        error
	stubs      []mockStub
	disabled   map[string]bool
	requests   []*http.Request
	bodiesSeen [][]byte
}

type mockStub struct {
	match  func(*http.Request) bool
	status int
	body   string
	err    error
}

// NewMockTransport creates a MockTransport answering 200 with an empty body
// until configured otherwise.
func NewMockTransport() *MockTransport {
	return &MockTransport{
		status:   http.StatusOK,
		header:   make(http.Header),
		disabled: make(map[string]bool),
	}
}

// Respond sets the default stubbed response.
func (m *MockTransport) Respond(status int, body string) *MockTransport {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = status
	m.body = body
	return m
}

// RespondHeader adds a header to the default stubbed response.
func (m *MockTransport) RespondHeader(name, value string) *MockTransport {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.header.Add(name, value)
	return m
}

// Fail makes every unmatched request return err.
func (m *MockTransport) Fail(err error) *MockTransport {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// RespondTo stubs the response for requests matched by the predicate. Stubs
// are checked in registration order before the default response applies.
func (m *MockTransport) RespondTo(match func(*http.Request) bool, status int, body string) *MockTransport {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stubs = append(m.stubs, mockStub{match: match, status: status, body: body})
	return m
}

// FailTo makes requests matched by the predicate return err.
func (m *MockTransport) FailTo(match func(*http.Request) bool, err error) *MockTransport {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stubs = append(m.stubs, mockStub{match: match, err: err})
	return m
}

// DisableMethods marks HTTP methods as unsupported by this transport.
func (m *MockTransport) DisableMethods(methods ...string) *MockTransport {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, method := range methods {
		m.disabled[method] = true
	}
	return m
}

// SupportsMethod implements MethodSupport.
func (m *MockTransport) SupportsMethod(method string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.disabled[method]
}

// RoundTrip implements http.RoundTripper.
func (m *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
		req.Body.Close()
		req.Body = io.NopCloser(bytes.NewReader(body))
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	m.bodiesSeen = append(m.bodiesSeen, body)

	for _, s := range m.stubs {
		if s.match(req) {
			if s.err != nil {
				return nil, s.err
			}
			return m.response(s.status, s.body, req), nil
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.response(m.status, m.body, req), nil
}

func (m *MockTransport) response(status int, body string, req *http.Request) *http.Response {
	return &http.Response{
		StatusCode:    status,
		Status:        http.StatusText(status),
		Header:        m.header.Clone(),
		Body:          io.NopCloser(bytes.NewBufferString(body)),
		ContentLength: int64(len(body)),
		Request:       req,
	}
}

// Requests returns every request recorded so far.
func (m *MockTransport) Requests() []*http.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*http.Request{}, m.requests...)
}

// RequestCount returns the number of requests recorded.
func (m *MockTransport) RequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// LastRequest returns the most recent request, or nil if none was made.
func (m *MockTransport) LastRequest() *http.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return nil
	}
	return m.requests[len(m.requests)-1]
}

// LastBody returns the body of the most recent request, or nil.
func (m *MockTransport) LastBody() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.bodiesSeen) == 0 {
		return nil
	}
	return m.bodiesSeen[len(m.bodiesSeen)-1]
}
