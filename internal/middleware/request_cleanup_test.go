package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/2beens/gymcoach/internal/middleware"

	"github.com/stretchr/testify/assert"
)

type trackingBody struct {
	io.Reader
	closed bool
}

func (b *trackingBody) Close() error {
	b.closed = true
	return nil
}

func TestDrainAndCloseRequest(t *testing.T) {
	body := &trackingBody{Reader: strings.NewReader(`{"type":"volume","reason":"unread"}`)}
	req := httptest.NewRequest(http.MethodPost, "/training/users/u1/deload", nil)
	req.Body = body

	// the handler ignores the body
	handler := middleware.DrainAndCloseRequest()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, body.closed)
	rest, _ := io.ReadAll(body.Reader)
	assert.Empty(t, rest)
}

func TestDrainAndCloseRequest_Bounded(t *testing.T) {
	oversized := middleware.MaxDrainBytes + 100
	body := &trackingBody{Reader: strings.NewReader(strings.Repeat("x", oversized))}
	req := httptest.NewRequest(http.MethodPost, "/training/users/u1/deload", nil)
	req.Body = body

	handler := middleware.DrainAndCloseRequest()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, body.closed)
	rest, _ := io.ReadAll(body.Reader)
	assert.Len(t, rest, 100)
}

func TestDrainAndCloseRequest_NoBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	called := false
	handler := middleware.DrainAndCloseRequest()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	assert.NotPanics(t, func() {
		handler.ServeHTTP(httptest.NewRecorder(), req)
	})
	assert.True(t, called)
}
