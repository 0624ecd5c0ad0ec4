package handler

import (
	"net/http"

	"github.com/BloggingApp/post-service/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) followsFollow(c *gin.Context) {
	if err := h.services.Follow.Follow(c.Request.Context(), h.getIdentity(c), c.GetString("username")); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, ""))
}

func (h *Handler) followsUnfollow(c *gin.Context) {
	if err := h.services.Follow.Unfollow(c.Request.Context(), h.getIdentity(c), c.GetString("username")); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, ""))
}
