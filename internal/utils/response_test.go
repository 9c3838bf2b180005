package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestSuccessResponse(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "req-1")

	SuccessResponse(c, http.StatusOK, "Radio status", gin.H{"connected": true})

	resp := decode(t, w)
	if w.Code != http.StatusOK || !resp.Success || resp.RequestID != "req-1" {
		t.Errorf("unexpected response %d %+v", w.Code, resp)
	}
	if resp.Error != nil {
		t.Errorf("expected no error, got %+v", resp.Error)
	}
}

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		status int
		code   string
	}{
		{http.StatusBadRequest, "BAD_REQUEST"},
		{http.StatusNotFound, "NOT_FOUND"},
		{http.StatusConflict, "CONFLICT"},
		{http.StatusBadGateway, "BAD_GATEWAY"},
		{http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{http.StatusTeapot, "UNKNOWN_ERROR"},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		ErrorResponse(c, tt.status, "failed", errors.New("cause"))

		resp := decode(t, w)
		if w.Code != tt.status || resp.Success {
			t.Errorf("unexpected response %d %+v", w.Code, resp)
		}
		if resp.Error == nil || resp.Error.Code != tt.code || resp.Error.Details != "cause" {
			t.Errorf("status %d: unexpected error %+v", tt.status, resp.Error)
		}
	}
}

func TestErrorResponseWithCode(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ErrorResponseWithCode(c, http.StatusConflict, "NOT_CONNECTED", "No radio is connected", nil)

	resp := decode(t, w)
	if resp.Error.Code != "NOT_CONNECTED" || resp.Error.Details != "" {
		t.Errorf("unexpected error %+v", resp.Error)
	}
}

func TestBindingErrorResponse(t *testing.T) {
	type connectRequest struct {
		Port     string `json:"port" binding:"required"`
		BaudRate int    `json:"baudrate" binding:"omitempty,min=1"`
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/connect", strings.NewReader(`{"baudrate":-1}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var req connectRequest
	BindingErrorResponse(c, "Invalid connect request", c.ShouldBindJSON(&req))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var resp struct {
		Error *APIError `json:"error"`
		Data  struct {
			ValidationErrors map[string]string `json:"validation_errors"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error == nil || resp.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("unexpected error %s", w.Body.String())
	}
	if resp.Data.ValidationErrors["port"] != "is required" || resp.Data.ValidationErrors["baudrate"] != "must be at least 1" {
		t.Errorf("unexpected fields %v", resp.Data.ValidationErrors)
	}

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	BindingErrorResponse(c, "Invalid connect request", errors.New("unexpected EOF"))
	if resp := decode(t, w); resp.Error == nil || resp.Error.Code != "BAD_REQUEST" {
		t.Errorf("malformed bodies are plain bad requests, got %s", w.Body.String())
	}
}
