package handler

import (
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/BloggingApp/post-service/internal/dto"
	"github.com/BloggingApp/post-service/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type postsInput struct {
	Text    string `json:"text" form:"text"`
	GroupID string `json:"group_id" form:"group_id"`
}

func (h *Handler) postsGet(c *gin.Context) {
	postID, ok := h.postIDParam(c)
	if !ok {
		return
	}

	detail, err := h.services.Post.Detail(c.Request.Context(), postID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *Handler) postsCreate(c *gin.Context) {
	input, image, ok := h.bindPostInput(c)
	if !ok {
		return
	}
	if image != nil {
		defer image.close()
	}

	post, err := h.services.Post.Create(c.Request.Context(), h.getIdentity(c), input, image.upload())
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (h *Handler) postsEdit(c *gin.Context) {
	postID, ok := h.postIDParam(c)
	if !ok {
		return
	}

	input, image, ok := h.bindPostInput(c)
	if !ok {
		return
	}
	if image != nil {
		defer image.close()
	}

	post, err := h.services.Post.Edit(c.Request.Context(), h.getIdentity(c), postID, input, image.upload())
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *Handler) postsDelete(c *gin.Context) {
	postID, ok := h.postIDParam(c)
	if !ok {
		return
	}

	if err := h.services.Post.Delete(c.Request.Context(), h.getIdentity(c), postID); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, ""))
}

func (h *Handler) postIDParam(c *gin.Context) (uuid.UUID, bool) {
	postID, err := uuid.Parse(strings.TrimSpace(c.Param("postID")))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return uuid.Nil, false
	}

	return postID, true
}

// openedImage is an uploaded file held open for the duration of a request.
type openedImage struct {
	data   *dto.Upload
	closer func() error
}

func (i *openedImage) upload() *dto.Upload {
	if i == nil {
		return nil
	}
	return i.data
}

func (i *openedImage) close() {
	_ = i.closer()
}

// bindPostInput reads a post from a JSON body or a multipart form. The
// multipart form may carry the image in its "image" field.
func (h *Handler) bindPostInput(c *gin.Context) (dto.PostInput, *openedImage, bool) {
	var input postsInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidRequestBody.Error()))
		return dto.PostInput{}, nil, false
	}

	postInput := dto.PostInput{Text: input.Text}
	if groupID := strings.TrimSpace(input.GroupID); groupID != "" {
		id, err := uuid.Parse(groupID)
		if err != nil {
			h.writeError(c, &service.ValidationError{Fields: map[string]string{"group_id": errInvalidID.Error()}})
			return dto.PostInput{}, nil, false
		}
		postInput.GroupID = &id
	}

	if c.ContentType() != gin.MIMEMultipartPOSTForm {
		return postInput, nil, true
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile {
			return postInput, nil, true
		}
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return dto.PostInput{}, nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Sugar().Errorf("failed to open uploaded file: %s", err.Error())
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, service.ErrInternal.Error()))
		return dto.PostInput{}, nil, false
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = mime.TypeByExtension(filepath.Ext(fileHeader.Filename))
	}

	return postInput, &openedImage{
		data: &dto.Upload{
			Filename:    fileHeader.Filename,
			ContentType: contentType,
			Size:        fileHeader.Size,
			Content:     file,
		},
		closer: file.Close,
	}, true
}
