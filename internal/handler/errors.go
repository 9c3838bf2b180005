// internal/handler/errors.go
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sik-configurator/internal/radio"
	"sik-configurator/internal/repository"
	"sik-configurator/internal/service"
	"sik-configurator/internal/utils"
)

var radioStatus = map[string]int{
	"INVALID_PARAMETER":     http.StatusBadRequest,
	"EMPTY_COMMAND":         http.StatusBadRequest,
	"NON_ASCII_COMMAND":     http.StatusBadRequest,
	"NOT_CONNECTED":         http.StatusConflict,
	"ALREADY_CONNECTED":     http.StatusConflict,
	"PORT_UNAVAILABLE":      http.StatusServiceUnavailable,
	"COMMAND_MODE_REJECTED": http.StatusBadGateway,
	"READ_FAILURE":          http.StatusBadGateway,
	"WRITE_REJECTED":        http.StatusBadGateway,
	"PERSIST_FAILURE":       http.StatusBadGateway,
	"REBOOT_FAILURE":        http.StatusBadGateway,
	"IO_ERROR":              http.StatusBadGateway,
}

// errorStatus returns the HTTP status and envelope code for err
func errorStatus(err error) (int, string) {
	if code := radio.Code(err); code != "" {
		if status, ok := radioStatus[code]; ok {
			return status, code
		}
	}

	switch {
	case errors.Is(err, repository.ErrProfileNotFound):
		return http.StatusNotFound, "PROFILE_NOT_FOUND"
	case errors.Is(err, service.ErrUnsupportedFormat):
		return http.StatusBadRequest, "UNSUPPORTED_FORMAT"
	case errors.Is(err, service.ErrNoProfiles):
		return http.StatusBadRequest, "NO_PROFILES"
	case errors.Is(err, service.ErrInvalidProfile):
		return http.StatusBadRequest, "INVALID_PROFILE"
	}
	return http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"
}

// respondError writes the error envelope for err
func respondError(c *gin.Context, message string, err error) {
	status, code := errorStatus(err)
	utils.ErrorResponseWithCode(c, status, code, message, err)
}
