package handler

import (
	"errors"
	"net/http"

	"github.com/BloggingApp/post-service/internal/dto"
	"github.com/BloggingApp/post-service/internal/service"
	"github.com/gin-gonic/gin"
)

var (
	errInvalidToken          = errors.New("invalid access token")
	errUsernameIsNotProvided = errors.New("please provide username")
	errInvalidID             = errors.New("provided an invalid ID")
	errInvalidRequestBody    = errors.New("invalid request body")
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders a service error. Anything unrecognised is reported as an
// internal error without its message.
func (h *Handler) writeError(c *gin.Context, err error) {
	status := statusFor(err)

	var verr *service.ValidationError
	if errors.As(err, &verr) {
		c.JSON(status, dto.NewValidationResponse(service.ErrValidation.Error(), verr.Fields))
		return
	}

	if status == http.StatusInternalServerError {
		c.JSON(status, dto.NewBasicResponse(false, service.ErrInternal.Error()))
		return
	}

	c.JSON(status, dto.NewBasicResponse(false, err.Error()))
}
