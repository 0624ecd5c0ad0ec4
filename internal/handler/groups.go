package handler

import (
	"net/http"

	"github.com/BloggingApp/post-service/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) groupsList(c *gin.Context) {
	groups, err := h.services.Group.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, groups)
}

func (h *Handler) groupsCreate(c *gin.Context) {
	var input dto.GroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidRequestBody.Error()))
		return
	}

	group, err := h.services.Group.Create(c.Request.Context(), h.getIdentity(c), input)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, group)
}

func (h *Handler) groupsDelete(c *gin.Context) {
	if err := h.services.Group.Delete(c.Request.Context(), h.getIdentity(c), c.Param("slug")); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, ""))
}

func (h *Handler) adminClearCache(c *gin.Context) {
	if err := h.services.Feed.ClearCache(c.Request.Context(), h.getIdentity(c)); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, ""))
}
