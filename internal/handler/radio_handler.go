// internal/handler/radio_handler.go
package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sik-configurator/internal/discovery"
	"sik-configurator/internal/radio"
	"sik-configurator/internal/utils"
)

// RadioHandler handles radio session HTTP requests
type RadioHandler struct {
	radio       *radio.Service
	scanner     *discovery.Scanner
	logger      *utils.RadioLogger
	auditLogger *utils.AuditLogger
}

// NewRadioHandler creates a new radio handler
func NewRadioHandler(radioService *radio.Service, scanner *discovery.Scanner, logger *zap.Logger) *RadioHandler {
	return &RadioHandler{
		radio:       radioService,
		scanner:     scanner,
		logger:      utils.NewRadioLogger(logger),
		auditLogger: utils.NewAuditLogger(logger),
	}
}

// ConnectRequest represents a connect request
type ConnectRequest struct {
	Port     string `json:"port" binding:"required"`
	BaudRate int    `json:"baudrate" binding:"omitempty,min=1"`
}

// SetParameterRequest represents a register write request
type SetParameterRequest struct {
	Value string `json:"value" binding:"required"`
}

// RawCommandRequest represents a raw AT command request
type RawCommandRequest struct {
	Command string `json:"command" binding:"required"`
}

// RegisterRoutes registers radio routes
func (h *RadioHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/ports", h.ListPorts)
	router.GET("/status", h.GetStatus)
	router.POST("/connect", h.Connect)
	router.POST("/disconnect", h.Disconnect)
	router.GET("/info", h.GetDeviceInfo)
	router.GET("/parameter-definitions", h.GetParameterDefinitions)
	router.POST("/reboot", h.Reboot)
	router.POST("/raw", h.SendRawCommand)

	settings := router.Group("/settings")
	{
		settings.GET("", h.GetParameters)
		settings.POST("/save", h.SaveParameters)
		settings.GET("/:code", h.GetParameter)
		settings.POST("/:code", h.SetParameter)
	}
}

// ListPorts lists serial ports
// @Summary List serial ports
// @Description Enumerate serial ports that may host a SiK radio
// @Tags Radio
// @Produce json
// @Success 200 {object} utils.APIResponse{data=object{ports=[]discovery.PortInfo}} "Ports listed"
// @Failure 500 {object} utils.APIResponse "Enumeration failed"
// @Router /ports [get]
func (h *RadioHandler) ListPorts(c *gin.Context) {
	ports, err := h.scanner.ListPorts()
	if err != nil {
		h.logger.Error("Failed to list serial ports", zap.Error(err))
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to list serial ports", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ports listed", gin.H{"ports": ports})
}

// GetStatus returns the session status
// @Summary Session status
// @Tags Radio
// @Produce json
// @Success 200 {object} utils.APIResponse{data=object{status=radio.Status}} "Status"
// @Router /status [get]
func (h *RadioHandler) GetStatus(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Status retrieved", gin.H{"status": h.radio.Status()})
}

// Connect opens a session
// @Summary Connect to a radio
// @Description Open the serial port and enter AT command mode
// @Tags Radio
// @Accept json
// @Produce json
// @Param request body ConnectRequest true "Port and baud rate"
// @Success 200 {object} utils.APIResponse{data=object{status=radio.Status}} "Connected"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 409 {object} utils.APIResponse "Connected elsewhere"
// @Failure 502 {object} utils.APIResponse "Command mode rejected"
// @Failure 503 {object} utils.APIResponse "Port unavailable"
// @Router /connect [post]
func (h *RadioHandler) Connect(c *gin.Context) {
	var req ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindingErrorResponse(c, "Invalid connect request", err)
		return
	}

	status, err := h.radio.Connect(req.Port, req.BaudRate)
	h.logger.LogConnection("connect", req.Port, req.BaudRate, err)
	if err != nil {
		respondError(c, "Failed to connect to radio", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Connected", gin.H{"status": status})
}

// Disconnect closes the session
// @Summary Disconnect from the radio
// @Tags Radio
// @Produce json
// @Success 200 {object} utils.APIResponse{data=object{status=radio.Status}} "Disconnected"
// @Router /disconnect [post]
func (h *RadioHandler) Disconnect(c *gin.Context) {
	h.radio.Disconnect()
	h.logger.LogConnection("disconnect", "", 0, nil)
	utils.SuccessResponse(c, http.StatusOK, "Disconnected", gin.H{"status": h.radio.Status()})
}

// GetDeviceInfo reads firmware and board information
// @Summary Device information
// @Tags Radio
// @Produce json
// @Success 200 {object} utils.APIResponse{data=object{info=radio.DeviceInfo}} "Device info"
// @Failure 409 {object} utils.APIResponse "Not connected"
// @Router /info [get]
func (h *RadioHandler) GetDeviceInfo(c *gin.Context) {
	info, err := h.radio.GetDeviceInfo()
	if err != nil {
		respondError(c, "Failed to read device information", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Device info retrieved", gin.H{"info": info})
}

// GetParameters reads every register
// @Summary List parameters
// @Tags Settings
// @Produce json
// @Success 200 {object} utils.APIResponse{data=object{parameters=[]radio.ParameterEntry}} "Parameters"
// @Failure 409 {object} utils.APIResponse "Not connected"
// @Router /settings [get]
func (h *RadioHandler) GetParameters(c *gin.Context) {
	parameters, err := h.radio.GetParameters()
	if err != nil {
		respondError(c, "Failed to read parameters", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Parameters retrieved", gin.H{"parameters": parameters})
}

// GetParameter reads one register
// @Summary Read parameter
// @Tags Settings
// @Produce json
// @Param code path string true "Register (S3 or 3)"
// @Success 200 {object} utils.APIResponse{data=object{parameter=radio.ParameterEntry}} "Parameter"
// @Failure 400 {object} utils.APIResponse "Invalid identifier"
// @Failure 409 {object} utils.APIResponse "Not connected"
// @Failure 502 {object} utils.APIResponse "Read failure"
// @Router /settings/{code} [get]
func (h *RadioHandler) GetParameter(c *gin.Context) {
	parameter, err := h.radio.QueryParameter(c.Param("code"))
	if err != nil {
		respondError(c, "Failed to read parameter", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Parameter retrieved", gin.H{"parameter": parameter})
}

// SetParameter writes one register
// @Summary Write parameter
// @Tags Settings
// @Accept json
// @Produce json
// @Param code path string true "Register (S3 or 3)"
// @Param request body SetParameterRequest true "New value"
// @Success 200 {object} utils.APIResponse{data=object{parameter=radio.ParameterEntry}} "Value read back"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 409 {object} utils.APIResponse "Not connected"
// @Failure 502 {object} utils.APIResponse "Write rejected"
// @Router /settings/{code} [post]
func (h *RadioHandler) SetParameter(c *gin.Context) {
	code := c.Param("code")

	var req SetParameterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindingErrorResponse(c, "Value is required", err)
		return
	}

	parameter, err := h.radio.SetParameter(code, req.Value)
	h.auditLogger.LogParameterChange(code, req.Value, c.ClientIP(), err == nil)
	if err != nil {
		respondError(c, "Failed to update parameter", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Parameter updated", gin.H{"parameter": parameter})
}

// SaveParameters writes the registers to flash
// @Summary Save parameters
// @Tags Settings
// @Produce json
// @Success 200 {object} utils.APIResponse{data=object{status=string}} "Saved"
// @Failure 409 {object} utils.APIResponse "Not connected"
// @Failure 502 {object} utils.APIResponse "Persist failure"
// @Router /settings/save [post]
func (h *RadioHandler) SaveParameters(c *gin.Context) {
	err := h.radio.SaveParameters()
	h.auditLogger.LogRadioAction("save", "AT&W", c.ClientIP(), err == nil)
	if err != nil {
		respondError(c, "Failed to save parameters", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Parameters saved", gin.H{"status": "saved"})
}

// GetParameterDefinitions returns the register catalog
// @Summary Parameter definitions
// @Tags Settings
// @Produce json
// @Success 200 {object} utils.APIResponse{data=object{definitions=map[string]sikparams.Definition}} "Definitions"
// @Router /parameter-definitions [get]
func (h *RadioHandler) GetParameterDefinitions(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Parameter definitions retrieved",
		gin.H{"definitions": h.radio.Catalog().All()})
}

// Reboot restarts the radio and ends the session
// @Summary Reboot radio
// @Tags Radio
// @Produce json
// @Success 200 {object} utils.APIResponse{data=object{status=string}} "Rebooting"
// @Failure 409 {object} utils.APIResponse "Not connected"
// @Failure 502 {object} utils.APIResponse "Reboot failure"
// @Router /reboot [post]
func (h *RadioHandler) Reboot(c *gin.Context) {
	err := h.radio.Reboot()
	h.auditLogger.LogRadioAction("reboot", "ATZ", c.ClientIP(), err == nil)
	if err != nil {
		respondError(c, "Failed to reboot radio", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Radio rebooting", gin.H{"status": "rebooting"})
}

// SendRawCommand sends an AT command as typed
// @Summary Raw command
// @Tags Radio
// @Accept json
// @Produce json
// @Param request body RawCommandRequest true "AT command"
// @Success 200 {object} utils.APIResponse{data=object{response=[]string}} "Response lines"
// @Failure 400 {object} utils.APIResponse "Invalid command"
// @Failure 409 {object} utils.APIResponse "Not connected"
// @Router /raw [post]
func (h *RadioHandler) SendRawCommand(c *gin.Context) {
	var req RawCommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindingErrorResponse(c, "Command must not be empty", err)
		return
	}

	startTime := time.Now()
	lines, err := h.radio.SendRawCommand(req.Command)
	h.logger.LogCommand(req.Command, len(lines), time.Since(startTime), err)
	h.auditLogger.LogRadioAction("raw", req.Command, c.ClientIP(), err == nil)
	if err != nil {
		respondError(c, "Failed to send command", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Command sent", gin.H{"response": lines})
}
