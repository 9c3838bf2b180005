// internal/handler/profile_handler.go
package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"sik-configurator/internal/service"
	"sik-configurator/internal/utils"
)

const maxImportSize = 1 << 20

// ProfileHandler handles stored configuration HTTP requests
type ProfileHandler struct {
	profileService *service.ProfileService
	logger         *utils.ServiceLogger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *service.ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		logger:         utils.NewServiceLogger(logger, "profile-handler"),
	}
}

// RegisterRoutes registers profile routes
func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profiles := router.Group("/profiles")
	{
		profiles.GET("", h.ListProfiles)
		profiles.POST("", h.CreateProfile)
		profiles.POST("/import", h.ImportProfiles)

		profileRoutes := profiles.Group("/:id")
		{
			profileRoutes.GET("", h.GetProfile)
			profileRoutes.PUT("", h.UpdateProfile)
			profileRoutes.DELETE("", h.DeleteProfile)
			profileRoutes.POST("/apply", h.ApplyProfile)
			profileRoutes.GET("/export", h.ExportProfile)
		}
	}
}

// ListProfiles lists stored profiles
// @Summary List profiles
// @Description Stored configurations, most recently updated first
// @Tags Profiles
// @Produce json
// @Success 200 {object} utils.APIResponse{data=object{profiles=[]model.Profile}} "Profiles"
// @Router /profiles [get]
func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	profiles, err := h.profileService.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list profiles", zap.Error(err))
		respondError(c, "Failed to list profiles", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profiles retrieved", gin.H{"profiles": profiles})
}

// CreateProfile stores a profile
// @Summary Create profile
// @Description Store the given parameters, or a snapshot of the connected radio
// @Tags Profiles
// @Accept json
// @Produce json
// @Param request body service.CreateProfileRequest true "Profile"
// @Success 201 {object} utils.APIResponse{data=model.Profile} "Created"
// @Failure 400 {object} utils.APIResponse "Invalid profile"
// @Failure 409 {object} utils.APIResponse "Not connected"
// @Router /profiles [post]
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req service.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindingErrorResponse(c, "Invalid request body", err)
		return
	}

	profile, err := h.profileService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "Failed to create profile", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Profile created", profile)
}

// GetProfile returns one profile
// @Summary Get profile
// @Tags Profiles
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {object} utils.APIResponse{data=model.Profile} "Profile"
// @Failure 404 {object} utils.APIResponse "Not found"
// @Router /profiles/{id} [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	id, ok := parseProfileID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Profile not found", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile retrieved", profile)
}

// UpdateProfile renames a profile or replaces its parameters
// @Summary Update profile
// @Tags Profiles
// @Accept json
// @Produce json
// @Param id path string true "Profile ID"
// @Param request body service.UpdateProfileRequest true "Changes"
// @Success 200 {object} utils.APIResponse{data=model.Profile} "Updated"
// @Failure 400 {object} utils.APIResponse "Invalid profile"
// @Failure 404 {object} utils.APIResponse "Not found"
// @Router /profiles/{id} [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	id, ok := parseProfileID(c)
	if !ok {
		return
	}

	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindingErrorResponse(c, "Invalid request body", err)
		return
	}

	profile, err := h.profileService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, "Failed to update profile", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile updated", profile)
}

// DeleteProfile removes a profile
// @Summary Delete profile
// @Tags Profiles
// @Param id path string true "Profile ID"
// @Success 200 {object} utils.APIResponse "Deleted"
// @Failure 404 {object} utils.APIResponse "Not found"
// @Router /profiles/{id} [delete]
func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	id, ok := parseProfileID(c)
	if !ok {
		return
	}

	if err := h.profileService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "Failed to delete profile", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile deleted", nil)
}

// ApplyProfile writes a profile to the connected radio
// @Summary Apply profile
// @Description Write every parameter in register order, stopping at the first failure
// @Tags Profiles
// @Accept json
// @Produce json
// @Param id path string true "Profile ID"
// @Param request body service.ApplyProfileRequest false "Persist with AT&W"
// @Success 200 {object} utils.APIResponse{data=service.ApplyResult} "Applied"
// @Failure 400 {object} utils.APIResponse "Invalid values"
// @Failure 404 {object} utils.APIResponse "Not found"
// @Failure 409 {object} utils.APIResponse{data=service.ApplyResult} "Not connected"
// @Failure 502 {object} utils.APIResponse{data=service.ApplyResult} "Write rejected"
// @Router /profiles/{id}/apply [post]
func (h *ProfileHandler) ApplyProfile(c *gin.Context) {
	id, ok := parseProfileID(c)
	if !ok {
		return
	}

	var req service.ApplyProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.BindingErrorResponse(c, "Invalid request body", err)
		return
	}

	result, err := h.profileService.Apply(c.Request.Context(), id, &req)
	if err != nil {
		status, code := errorStatus(err)
		var data interface{}
		if result != nil {
			data = result
		}
		utils.ErrorResponseWithData(c, status, code, "Failed to apply profile", err, data)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile applied", result)
}

// ExportProfile downloads a profile
// @Summary Export profile
// @Tags Profiles
// @Produce json
// @Produce application/toml
// @Param id path string true "Profile ID"
// @Param format query string false "json or toml" Enums(json, toml) default(json)
// @Success 200 {file} file "Profile document"
// @Failure 400 {object} utils.APIResponse "Unsupported format"
// @Failure 404 {object} utils.APIResponse "Not found"
// @Router /profiles/{id}/export [get]
func (h *ProfileHandler) ExportProfile(c *gin.Context) {
	id, ok := parseProfileID(c)
	if !ok {
		return
	}

	format, err := service.ParseFormat(c.Query("format"))
	if err != nil {
		respondError(c, "Unsupported export format", err)
		return
	}

	data, filename, err := h.profileService.Export(c.Request.Context(), id, format)
	if err != nil {
		respondError(c, "Failed to export profile", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, service.ContentType(format), data)
}

// ImportProfiles stores profiles from an uploaded document
// @Summary Import profiles
// @Description Accepts one profile or a list as JSON or TOML
// @Tags Profiles
// @Accept json
// @Accept application/toml
// @Produce json
// @Param format query string false "json or toml" Enums(json, toml) default(json)
// @Success 201 {object} utils.APIResponse{data=object{profiles=[]model.Profile}} "Imported"
// @Failure 400 {object} utils.APIResponse "No valid profiles"
// @Router /profiles/import [post]
func (h *ProfileHandler) ImportProfiles(c *gin.Context) {
	format, err := service.ParseFormat(c.Query("format"))
	if err != nil {
		respondError(c, "Unsupported import format", err)
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportSize))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to read request body", err)
		return
	}

	profiles, err := h.profileService.Import(c.Request.Context(), format, body)
	if err != nil {
		respondError(c, "Failed to import profiles", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Profiles imported", gin.H{"profiles": profiles})
}

func parseProfileID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid profile ID", err)
		return uuid.Nil, false
	}
	return id, true
}
