package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"sik-configurator/internal/config"
	"sik-configurator/internal/utils"
)

func newRouter(middleware ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware...)
	router.GET("/ok", func(c *gin.Context) {
		utils.SuccessResponse(c, http.StatusOK, "ok", nil)
	})
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	return router
}

func TestRequestIDMiddleware(t *testing.T) {
	router := newRouter(RequestIDMiddleware())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	generated := w.Header().Get(RequestIDHeader)
	if generated == "" {
		t.Fatal("expected a generated request id")
	}
	var resp utils.APIResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.RequestID != generated {
		t.Errorf("expected the envelope to carry %s, got %s", generated, resp.RequestID)
	}

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("expected the caller's request id, got %s", got)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	router := newRouter(RequestIDMiddleware(), RecoveryMiddleware(zap.New(core)))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
	var resp utils.APIResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Success || resp.Error == nil || resp.Error.Code != "INTERNAL_SERVER_ERROR" {
		t.Errorf("unexpected body %s", w.Body.String())
	}
	entries := logs.FilterMessage("Panic recovered").All()
	if len(entries) != 1 {
		t.Fatal("expected the panic to be logged")
	}
	fields := entries[0].ContextMap()
	if fields["request_id"] != w.Header().Get(RequestIDHeader) || fields["route"] != "/panic" {
		t.Errorf("unexpected fields %v", fields)
	}
}

func TestLoggingMiddleware(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := utils.NewServiceLogger(zap.New(core), "test")
	router := newRouter(LoggingMiddleware(logger))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok?format=toml", nil))

	entries := logs.FilterMessage("API request").All()
	if len(entries) != 1 {
		t.Fatalf("expected one request log, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["path"] != "/ok?format=toml" || fields["status_code"] != int64(http.StatusOK) {
		t.Errorf("unexpected fields %v", fields)
	}
}

func TestCORSMiddleware(t *testing.T) {
	tests := []struct {
		origins []string
		origin  string
		allowed string
	}{
		{[]string{"*"}, "http://client.example", "*"},
		{[]string{"http://localhost:3000"}, "http://localhost:3000", "http://localhost:3000"},
		{[]string{"http://localhost:3000"}, "http://evil.example", ""},
	}

	for _, tt := range tests {
		router := newRouter(CORSMiddleware(&config.SecurityConfig{AllowedOrigins: tt.origins}))
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set("Origin", tt.origin)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.allowed {
			t.Errorf("origins %v, origin %s: expected %q, got %q", tt.origins, tt.origin, tt.allowed, got)
		}
	}
}
