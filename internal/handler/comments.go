package handler

import (
	"net/http"

	"github.com/BloggingApp/post-service/internal/dto"
	"github.com/gin-gonic/gin"
)

type commentsAddInput struct {
	Text string `json:"text" form:"text"`
}

func (h *Handler) commentsAdd(c *gin.Context) {
	postID, ok := h.postIDParam(c)
	if !ok {
		return
	}

	var input commentsAddInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidRequestBody.Error()))
		return
	}

	comment, err := h.services.Comment.Add(c.Request.Context(), h.getIdentity(c), postID, input.Text)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}
