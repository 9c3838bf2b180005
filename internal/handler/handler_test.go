package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sik-configurator/internal/config"
	"sik-configurator/internal/discovery"
	"sik-configurator/internal/protocol"
	"sik-configurator/internal/radio"
	"sik-configurator/internal/repository"
	"sik-configurator/internal/service"
	"sik-configurator/internal/simulator"
)

type testEnv struct {
	router   *gin.Engine
	radio    *radio.Service
	sim      *simulator.Dialer
	eventBus *EventBus
	ws       *WebSocketHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	sim := simulator.NewDialer(simulator.Options{})
	eventBus := NewEventBus(100, logger)
	radioService := radio.NewService(protocol.NewFactory(protocol.DefaultSerialConfig(), sim, logger), radio.Options{
		Timing: radio.Timing{
			GuardTime:          time.Millisecond,
			NegotiationTimeout: 100 * time.Millisecond,
			SettleTime:         time.Millisecond,
			CommandTimeout:     150 * time.Millisecond,
			PollInterval:       5 * time.Millisecond,
			ReadTimeout:        20 * time.Millisecond,
		},
		Events: eventBus,
		Logger: logger,
	})
	t.Cleanup(radioService.Disconnect)

	cfg := &config.Config{App: config.AppConfig{Name: "sik-configurator", Version: "test"}}
	profileService := service.NewProfileService(repository.NewMemoryProfileRepository(), radioService, logger)
	ws := NewWebSocketHandler(eventBus, radioService, []string{"*"}, logger)

	router := gin.New()
	NewHealthHandler(nil, radioService, eventBus, ws, cfg, logger).RegisterRoutes(&router.RouterGroup)
	ws.RegisterRoutes(router.Group("/ws"))
	v1 := router.Group("/api/v1")
	NewRadioHandler(radioService, discovery.NewScanner(logger, true), logger).RegisterRoutes(v1)
	NewProfileHandler(profileService, logger).RegisterRoutes(v1)

	return &testEnv{router: router, radio: radioService, sim: sim, eventBus: eventBus, ws: ws}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Details string `json:"details"`
	} `json:"error"`
}

func (e *testEnv) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("%s %s: invalid JSON %q", method, path, w.Body.String())
		}
	}
	return w, env
}

func expectError(t *testing.T, w *httptest.ResponseRecorder, env envelope, status int, code string) {
	t.Helper()
	if w.Code != status {
		t.Errorf("expected status %d, got %d: %s", status, w.Code, w.Body.String())
	}
	if env.Success || env.Error == nil || env.Error.Code != code {
		t.Errorf("expected error code %s, got %s", code, w.Body.String())
	}
}

func TestRadioEndpoints(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.do(t, http.MethodGet, "/api/v1/info", "")
	expectError(t, w, resp, http.StatusConflict, "NOT_CONNECTED")

	w, resp = env.do(t, http.MethodPost, "/api/v1/connect", `{}`)
	expectError(t, w, resp, http.StatusBadRequest, "VALIDATION_ERROR")
	if !strings.Contains(string(resp.Data), `"port":"is required"`) {
		t.Errorf("expected the missing field to be named, got %s", resp.Data)
	}

	w, resp = env.do(t, http.MethodPost, "/api/v1/connect", `{"port":"sim://radio","baudrate":57600}`)
	if w.Code != http.StatusOK {
		t.Fatalf("connect: %d %s", w.Code, w.Body.String())
	}
	var connected struct {
		Status radio.Status `json:"status"`
	}
	json.Unmarshal(resp.Data, &connected)
	if !connected.Status.Connected || *connected.Status.Port != "sim://radio" {
		t.Errorf("unexpected status %+v", connected.Status)
	}

	w, resp = env.do(t, http.MethodPost, "/api/v1/connect", `{"port":"sim://other"}`)
	expectError(t, w, resp, http.StatusConflict, "ALREADY_CONNECTED")

	w, resp = env.do(t, http.MethodGet, "/api/v1/settings", "")
	if w.Code != http.StatusOK {
		t.Fatalf("settings: %d %s", w.Code, w.Body.String())
	}
	var settings struct {
		Parameters []radio.ParameterEntry `json:"parameters"`
	}
	json.Unmarshal(resp.Data, &settings)
	if len(settings.Parameters) != 16 || settings.Parameters[3].Code != "S3" {
		t.Errorf("unexpected parameters %+v", settings.Parameters)
	}

	w, resp = env.do(t, http.MethodPost, "/api/v1/settings/s3", `{"value":"30"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("set: %d %s", w.Code, w.Body.String())
	}
	var updated struct {
		Parameter radio.ParameterEntry `json:"parameter"`
	}
	json.Unmarshal(resp.Data, &updated)
	if updated.Parameter.Code != "S3" || updated.Parameter.Value != "30" {
		t.Errorf("unexpected parameter %+v", updated.Parameter)
	}

	w, resp = env.do(t, http.MethodPost, "/api/v1/settings/3", `{}`)
	expectError(t, w, resp, http.StatusBadRequest, "VALIDATION_ERROR")

	w, resp = env.do(t, http.MethodGet, "/api/v1/settings/NETID", "")
	expectError(t, w, resp, http.StatusBadRequest, "INVALID_PARAMETER")

	w, _ = env.do(t, http.MethodPost, "/api/v1/settings/save", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"saved"`) {
		t.Errorf("save: %d %s", w.Code, w.Body.String())
	}

	w, resp = env.do(t, http.MethodPost, "/api/v1/raw", `{"command":"ATI"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("raw: %d %s", w.Code, w.Body.String())
	}
	var raw struct {
		Response []string `json:"response"`
	}
	json.Unmarshal(resp.Data, &raw)
	if len(raw.Response) == 0 || raw.Response[len(raw.Response)-1] != "OK" {
		t.Errorf("raw responses keep the completion token, got %v", raw.Response)
	}

	w, resp = env.do(t, http.MethodPost, "/api/v1/raw", `{"command":"ATI°"}`)
	expectError(t, w, resp, http.StatusBadRequest, "NON_ASCII_COMMAND")

	w, _ = env.do(t, http.MethodGet, "/api/v1/info", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "firmware") {
		t.Errorf("info: %d %s", w.Code, w.Body.String())
	}

	w, _ = env.do(t, http.MethodPost, "/api/v1/reboot", "")
	if w.Code != http.StatusOK {
		t.Errorf("reboot: %d %s", w.Code, w.Body.String())
	}
	if env.radio.Status().Connected {
		t.Error("reboot must end the session")
	}

	w, _ = env.do(t, http.MethodPost, "/api/v1/disconnect", "")
	if w.Code != http.StatusOK {
		t.Errorf("disconnect: %d", w.Code)
	}
}

func TestConnectPortUnavailable(t *testing.T) {
	env := newTestEnv(t)
	w, resp := env.do(t, http.MethodPost, "/api/v1/connect", `{"port":"/dev/sik-configurator-missing"}`)
	expectError(t, w, resp, http.StatusServiceUnavailable, "PORT_UNAVAILABLE")
}

func TestParameterDefinitions(t *testing.T) {
	env := newTestEnv(t)
	w, _ := env.do(t, http.MethodGet, "/api/v1/parameter-definitions", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "NETID") {
		t.Errorf("definitions: %d %s", w.Code, w.Body.String())
	}
}

func TestProfileEndpoints(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.do(t, http.MethodPost, "/api/v1/profiles", `{"name":"Snapshot"}`)
	expectError(t, w, resp, http.StatusConflict, "NOT_CONNECTED")

	w, resp = env.do(t, http.MethodPost, "/api/v1/profiles", `{"name":"Field","parameters":{"S3":"42","S4":"11"}}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}
	var created struct {
		ID string `json:"id"`
	}
	json.Unmarshal(resp.Data, &created)

	w, resp = env.do(t, http.MethodPost, "/api/v1/profiles/"+created.ID+"/apply", "")
	expectError(t, w, resp, http.StatusConflict, "NOT_CONNECTED")
	if !strings.Contains(string(resp.Data), `"results"`) {
		t.Errorf("failed apply must carry the partial result, got %s", w.Body.String())
	}

	if _, err := env.radio.Connect(simulator.DefaultPortName, 57600); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	w, resp = env.do(t, http.MethodPost, "/api/v1/profiles/"+created.ID+"/apply", `{"persist":true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("apply: %d %s", w.Code, w.Body.String())
	}
	var applied service.ApplyResult
	json.Unmarshal(resp.Data, &applied)
	if applied.Applied != 2 || !applied.Persisted {
		t.Errorf("unexpected apply result %+v", applied)
	}
	device, _ := env.sim.Device(simulator.DefaultPortName)
	if v, _ := device.Register(4); v != 11 {
		t.Errorf("expected S4=11 on the radio, got %d", v)
	}

	w, _ = env.do(t, http.MethodPost, "/api/v1/profiles", `{"name":"Snapshot","from_radio":true}`)
	if w.Code != http.StatusCreated {
		t.Errorf("snapshot: %d %s", w.Code, w.Body.String())
	}

	w, resp = env.do(t, http.MethodGet, "/api/v1/profiles", "")
	var listed struct {
		Profiles []struct {
			Name string `json:"name"`
		} `json:"profiles"`
	}
	json.Unmarshal(resp.Data, &listed)
	if w.Code != http.StatusOK || len(listed.Profiles) != 2 {
		t.Errorf("list: %d %s", w.Code, w.Body.String())
	}

	w, _ = env.do(t, http.MethodGet, "/api/v1/profiles/"+created.ID+"/export?format=toml", "")
	if w.Code != http.StatusOK || w.Header().Get("Content-Disposition") != `attachment; filename="field.toml"` {
		t.Errorf("export: %d %v", w.Code, w.Header())
	}
	if !strings.Contains(w.Body.String(), "[parameters]") {
		t.Errorf("unexpected TOML export %s", w.Body.String())
	}

	w, resp = env.do(t, http.MethodGet, "/api/v1/profiles/"+created.ID+"/export?format=xml", "")
	expectError(t, w, resp, http.StatusBadRequest, "UNSUPPORTED_FORMAT")

	w, resp = env.do(t, http.MethodPost, "/api/v1/profiles/import", `[{"name":"A","parameters":[{"code":"S3","value":7}]},{"name":"B"}]`)
	if w.Code != http.StatusCreated {
		t.Fatalf("import: %d %s", w.Code, w.Body.String())
	}
	var imported struct {
		Profiles []json.RawMessage `json:"profiles"`
	}
	json.Unmarshal(resp.Data, &imported)
	if len(imported.Profiles) != 1 {
		t.Errorf("expected one imported profile, got %s", w.Body.String())
	}

	w, resp = env.do(t, http.MethodPost, "/api/v1/profiles/import", `{"name":"empty"}`)
	expectError(t, w, resp, http.StatusBadRequest, "NO_PROFILES")

	w, resp = env.do(t, http.MethodPut, "/api/v1/profiles/"+created.ID, `{"name":"Renamed"}`)
	if w.Code != http.StatusOK || !strings.Contains(string(resp.Data), "Renamed") {
		t.Errorf("update: %d %s", w.Code, w.Body.String())
	}

	w, _ = env.do(t, http.MethodDelete, "/api/v1/profiles/"+created.ID, "")
	if w.Code != http.StatusOK {
		t.Errorf("delete: %d", w.Code)
	}

	w, resp = env.do(t, http.MethodGet, "/api/v1/profiles/"+created.ID, "")
	expectError(t, w, resp, http.StatusNotFound, "PROFILE_NOT_FOUND")

	w, resp = env.do(t, http.MethodGet, "/api/v1/profiles/not-a-uuid", "")
	expectError(t, w, resp, http.StatusBadRequest, "BAD_REQUEST")
}

func TestApplyRejectsInvalidProfile(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.do(t, http.MethodPost, "/api/v1/profiles", `{"name":"Bad","parameters":{"S5":"9"}}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d", w.Code)
	}
	var created struct {
		ID string `json:"id"`
	}
	json.Unmarshal(resp.Data, &created)

	w, resp = env.do(t, http.MethodPost, "/api/v1/profiles/"+created.ID+"/apply", `{}`)
	expectError(t, w, resp, http.StatusBadRequest, "INVALID_PROFILE")
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/health", "/ready", "/live"} {
		w, _ := env.do(t, http.MethodGet, path, "")
		if w.Code != http.StatusOK {
			t.Errorf("%s: %d %s", path, w.Code, w.Body.String())
		}
	}

	w, _ := env.do(t, http.MethodGet, "/health", "")
	var health HealthResponse
	json.Unmarshal(w.Body.Bytes(), &health)
	if health.Status != "healthy" || health.Checks["storage"].Message != "In-memory profile storage" {
		t.Errorf("unexpected health %+v", health)
	}

	if _, err := env.radio.Connect(simulator.DefaultPortName, 57600); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	w, _ = env.do(t, http.MethodGet, "/health", "")
	health = HealthResponse{}
	json.Unmarshal(w.Body.Bytes(), &health)
	check := health.Checks["radio"]
	if check.Data["connected"] != true || check.Data["port"] != simulator.DefaultPortName {
		t.Errorf("unexpected radio check %+v", check)
	}
	if _, ok := check.Data["transport"]; ok {
		t.Errorf("simulated ports report no transport counters, got %+v", check)
	}
}

type countedRadio struct {
	status radio.Status
	stats  radio.PortStats
}

func (r countedRadio) Status() radio.Status {
	return r.status
}

func (r countedRadio) PortStats() (radio.PortStats, bool) {
	return r.stats, r.status.Connected
}

func TestHealthReportsTransportStats(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	port, baud := "/dev/ttyUSB0", 57600
	source := countedRadio{
		status: radio.Status{Connected: true, Port: &port, BaudRate: &baud},
		stats:  radio.PortStats{BytesWritten: 42, BytesRead: 128, ErrorCount: 1, IsConnected: true},
	}

	eventBus := NewEventBus(10, logger)
	ws := NewWebSocketHandler(eventBus, source, []string{"*"}, logger)
	cfg := &config.Config{App: config.AppConfig{Name: "sik-configurator", Version: "test"}}
	router := gin.New()
	NewHealthHandler(nil, source, eventBus, ws, cfg, logger).RegisterRoutes(&router.RouterGroup)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var health struct {
		Checks map[string]struct {
			Data struct {
				Transport radio.PortStats `json:"transport"`
			} `json:"data"`
		} `json:"checks"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &health); err != nil {
		t.Fatalf("decode: %v", err)
	}
	transport := health.Checks["radio"].Data.Transport
	if transport.BytesWritten != 42 || transport.BytesRead != 128 || transport.ErrorCount != 1 {
		t.Errorf("unexpected transport stats %+v in %s", transport, w.Body.String())
	}
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{&radio.Error{Kind: radio.ErrInvalidParameter}, http.StatusBadRequest, "INVALID_PARAMETER"},
		{&radio.Error{Kind: radio.ErrEmptyCommand}, http.StatusBadRequest, "EMPTY_COMMAND"},
		{&radio.Error{Kind: radio.ErrAlreadyConnected}, http.StatusConflict, "ALREADY_CONNECTED"},
		{&radio.Error{Kind: radio.ErrPortUnavailable}, http.StatusServiceUnavailable, "PORT_UNAVAILABLE"},
		{&radio.Error{Kind: radio.ErrCommandModeRejected}, http.StatusBadGateway, "COMMAND_MODE_REJECTED"},
		{&radio.Error{Kind: radio.ErrReadFailure}, http.StatusBadGateway, "READ_FAILURE"},
		{&radio.Error{Kind: radio.ErrPersistFailure}, http.StatusBadGateway, "PERSIST_FAILURE"},
		{&radio.Error{Kind: radio.ErrRebootFailure}, http.StatusBadGateway, "REBOOT_FAILURE"},
		{&radio.Error{Kind: radio.ErrIO}, http.StatusBadGateway, "IO_ERROR"},
		{repository.ErrProfileNotFound, http.StatusNotFound, "PROFILE_NOT_FOUND"},
		{service.ErrInvalidProfile, http.StatusBadRequest, "INVALID_PROFILE"},
		{context.DeadlineExceeded, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		status, code := errorStatus(tt.err)
		if status != tt.status || code != tt.code {
			t.Errorf("%v: got %d %s, want %d %s", tt.err, status, code, tt.status, tt.code)
		}
	}
}
