package discord

import (
	"bytes"
	"io"
	"net/http"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
)

// MockRoundTripper implements http.RoundTripper for intercepting requests
type MockRoundTripper struct {
	RoundTripFunc func(req *http.Request) (*http.Response, error)
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.RoundTripFunc(req)
}

// CapturedRequest is one Discord REST call seen by the test transport.
type CapturedRequest struct {
	Method string
	Path   string
	Body   []byte
}

// TestContext holds a session whose REST traffic never leaves the process
type TestContext struct {
	Session      *discordgo.Session
	DiscordMocks *MockRoundTripper

	mu       sync.Mutex
	requests []CapturedRequest
	// Responses maps "METHOD path" to a canned body; anything else gets "[]".
	Responses map[string]string
	// FailPaths maps "METHOD path" to a status code to return instead.
	FailPaths map[string]int
}

// SetupTestContext creates a session that records every Discord call
func SetupTestContext(t *testing.T) *TestContext {
	t.Helper()

	session, err := discordgo.New("Bot test-token")
	if err != nil {
		t.Fatalf("Failed to create mock session: %v", err)
	}
	// No retries so failures surface immediately.
	session.MaxRestRetries = 0

	ctx := &TestContext{
		Session:   session,
		Responses: make(map[string]string),
		FailPaths: make(map[string]int),
	}

	ctx.DiscordMocks = &MockRoundTripper{
		RoundTripFunc: func(req *http.Request) (*http.Response, error) {
			var body []byte
			if req.Body != nil {
				body, _ = io.ReadAll(req.Body)
			}
			key := req.Method + " " + req.URL.Path

			ctx.mu.Lock()
			ctx.requests = append(ctx.requests, CapturedRequest{Method: req.Method, Path: req.URL.Path, Body: body})
			status, fail := ctx.FailPaths[key]
			resp, canned := ctx.Responses[key]
			ctx.mu.Unlock()

			if fail {
				return jsonResponse(status, `{"message": "failure", "code": 0}`), nil
			}
			if !canned {
				resp = "[]"
			}
			return jsonResponse(http.StatusOK, resp), nil
		},
	}
	session.Client = &http.Client{Transport: ctx.DiscordMocks}

	return ctx
}

// Requests returns the captured calls in order
func (c *TestContext) Requests() []CapturedRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]CapturedRequest(nil), c.requests...)
}

// RequestsWithMethod filters captured calls by HTTP method
func (c *TestContext) RequestsWithMethod(method string) []CapturedRequest {
	var out []CapturedRequest
	for _, r := range c.Requests() {
		if r.Method == method {
			out = append(out, r)
		}
	}
	return out
}

func jsonResponse(status int, body string) *http.Response {
	header := make(http.Header)
	header.Set("Content-Type", "application/json")
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     header,
	}
}
