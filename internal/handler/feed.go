package handler

import (
	"net/http"

	"github.com/BloggingApp/post-service/internal/paginator"
	"github.com/gin-gonic/gin"
)

func pageParam(c *gin.Context) int {
	return paginator.ParseNumber(c.Query("page"))
}

func (h *Handler) postsList(c *gin.Context) {
	feed, err := h.services.Feed.Global(c.Request.Context(), pageParam(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, feed)
}

func (h *Handler) groupsFeed(c *gin.Context) {
	feed, err := h.services.Feed.Group(c.Request.Context(), c.Param("slug"), pageParam(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, feed)
}

func (h *Handler) profilesGet(c *gin.Context) {
	feed, err := h.services.Feed.Profile(c.Request.Context(), h.getIdentity(c), c.GetString("username"), pageParam(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, feed)
}

func (h *Handler) followsFeed(c *gin.Context) {
	feed, err := h.services.Feed.Following(c.Request.Context(), h.getIdentity(c), pageParam(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, feed)
}
