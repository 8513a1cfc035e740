package middleware

import (
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"data":"haven"}`))
	})
}

func TestChainOrder(t *testing.T) {
	t.Parallel()

	var order []string
	tag := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	handler := Chain(okHandler(), tag("first"), tag("second"), tag("third"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if len(order) != 3 || order[0] != "first" || order[1] != "second" || order[2] != "third" {
		t.Errorf("middlewares ran out of order: %v", order)
	}
}

func TestRequestIDGenerated(t *testing.T) {
	t.Parallel()

	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen == "" {
		t.Error("expected a generated request id in context")
	}
	if rec.Header().Get("X-Request-ID") != seen {
		t.Error("response header must echo the request id")
	}
}

func TestRequestIDHonorsCaller(t *testing.T) {
	t.Parallel()

	handler := RequestID(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "haven-trace-42")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Header().Get("X-Request-ID") != "haven-trace-42" {
		t.Errorf("caller-supplied id must be kept, got %q", rec.Header().Get("X-Request-ID"))
	}
}

func TestGetRequestIDEmptyContext(t *testing.T) {
	t.Parallel()

	if GetRequestID(context.Background()) != "" {
		t.Error("expected empty id for a bare context")
	}
}

func TestLoggerPreservesResponse(t *testing.T) {
	t.Parallel()

	handler := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/invites/abc", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Errorf("logger must not alter the status, got %d", rec.Code)
	}
	if rec.Body.String() != "short and stout" {
		t.Errorf("logger must not alter the body, got %q", rec.Body.String())
	}
}

func TestRecoveryTurnsPanicInto500(t *testing.T) {
	t.Parallel()

	handler := Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("group projection exploded")
	}))

	req := httptest.NewRequest(http.MethodPost, "/v1/invites/abc/join", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Internal Server Error") {
		t.Errorf("expected problem body, got %s", rec.Body.String())
	}
	if rec.Header().Get("Content-Type") != "application/json" {
		t.Errorf("expected JSON content type, got %q", rec.Header().Get("Content-Type"))
	}
}

func TestRecoveryPassthrough(t *testing.T) {
	t.Parallel()

	handler := Recovery(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestCORSAllowedOrigin(t *testing.T) {
	t.Parallel()

	handler := CORS([]string{"https://app.haven.chat"})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://app.haven.chat")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Header().Get("Access-Control-Allow-Origin") != "https://app.haven.chat" {
		t.Errorf("expected origin to be allowed, got %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestCORSDisallowedOrigin(t *testing.T) {
	t.Parallel()

	handler := CORS([]string{"https://app.haven.chat"})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("unknown origin must not be allowed")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("request itself must still pass, got %d", rec.Code)
	}
}

func TestCORSWildcard(t *testing.T) {
	t.Parallel()

	handler := CORS([]string{"*"})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://anywhere.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Header().Get("Access-Control-Allow-Origin") != "https://anywhere.example" {
		t.Error("wildcard must allow any origin")
	}
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })
	handler := CORS([]string{"*"})(next)

	req := httptest.NewRequest(http.MethodOptions, "/v1/invites/abc/join", nil)
	req.Header.Set("Origin", "https://app.haven.chat")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight must answer 204, got %d", rec.Code)
	}
	if called {
		t.Error("preflight must not reach the handler")
	}
	if rec.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Error("preflight must advertise allowed methods")
	}
}

func TestCompressGzipsWhenAccepted(t *testing.T) {
	t.Parallel()

	handler := Compress(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzip encoding, got %q", rec.Header().Get("Content-Encoding"))
	}

	gz, err := gzip.NewReader(rec.Body)
	if err != nil {
		t.Fatalf("body is not valid gzip: %v", err)
	}
	body, err := io.ReadAll(gz)
	if err != nil {
		t.Fatalf("reading gzip body: %v", err)
	}
	if string(body) != `{"data":"haven"}` {
		t.Errorf("unexpected decompressed body %q", body)
	}
}

func TestCompressSkipsWithoutAcceptEncoding(t *testing.T) {
	t.Parallel()

	handler := Compress(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Header().Get("Content-Encoding") != "" {
		t.Error("response must not be compressed without Accept-Encoding")
	}
	if rec.Body.String() != `{"data":"haven"}` {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}

func TestCompressSkipsEventStreams(t *testing.T) {
	t.Parallel()

	handler := Compress(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Header().Get("Content-Encoding") != "" {
		t.Error("event streams must not be compressed")
	}
}
