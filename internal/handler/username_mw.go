package handler

import (
	"net/http"
	"strings"

	"github.com/BloggingApp/post-service/internal/dto"
	"github.com/gin-gonic/gin"
)

// usernameMiddleware accepts the username with or without a leading '@'.
func (h *Handler) usernameMiddleware(c *gin.Context) {
	username := strings.TrimPrefix(strings.TrimSpace(c.Param("username")), "@")
	if strings.TrimSpace(username) == "" {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errUsernameIsNotProvided.Error()))
		c.Abort()
		return
	}

	c.Set("username", username)

	c.Next()
}
