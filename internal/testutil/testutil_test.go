package testutil

import (
	"net/http"
	"strings"
	"testing"
)

func TestServeHelpers(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"method":"` + r.Method + `"}`))
	})

	rr := Serve(handler, http.MethodPost, "/x", strings.NewReader("{}"))
	AssertStatus(t, rr, http.StatusCreated)

	var body map[string]string
	DecodeJSON(t, rr, &body)
	if body["method"] != http.MethodPost {
		t.Fatalf("unexpected body %v", body)
	}

	rr = ServeJSON(t, handler, http.MethodPut, "/x", map[string]string{"a": "b"})
	AssertStatus(t, rr, http.StatusCreated)
}

func TestBufferLogger(t *testing.T) {
	logger, buf := NewBufferLogger()
	logger.Info("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("expected log line in buffer, got %q", buf.String())
	}
}
