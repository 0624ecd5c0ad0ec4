package handler

import (
	"net/http"
	"strings"

	"github.com/BloggingApp/post-service/internal/dto"
	"github.com/BloggingApp/post-service/internal/model"
	"github.com/BloggingApp/post-service/internal/service"
	"github.com/BloggingApp/post-service/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const IDENTITY_KEY = "identity"

// identityMiddleware resolves the bearer token, if any, into the request
// identity. Requests without an Authorization header stay anonymous.
func (h *Handler) identityMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.Next()
		return
	}

	if !strings.HasPrefix(header, "Bearer ") {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errInvalidToken.Error()))
		c.Abort()
		return
	}

	accessToken := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if accessToken == "" {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errInvalidToken.Error()))
		c.Abort()
		return
	}

	identity, err := h.identityFromAccessToken(accessToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errInvalidToken.Error()))
		c.Abort()
		return
	}

	if _, err := h.services.Author.Ensure(c.Request.Context(), *identity); err != nil {
		h.writeError(c, err)
		c.Abort()
		return
	}

	c.Set(IDENTITY_KEY, *identity)

	c.Next()
}

// authMiddleware rejects anonymous requests.
func (h *Handler) authMiddleware(c *gin.Context) {
	if h.getIdentity(c) == nil {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, service.ErrUnauthenticated.Error()))
		c.Abort()
		return
	}

	c.Next()
}

func (h *Handler) identityFromAccessToken(accessToken string) (*model.Identity, error) {
	claims, err := utils.DecodeJWT(accessToken, h.accessSecret)
	if err != nil {
		return nil, err
	}

	idString, _ := claims["id"].(string)
	id, err := uuid.Parse(idString)
	if err != nil {
		return nil, err
	}

	username, _ := claims["username"].(string)
	if strings.TrimSpace(username) == "" {
		return nil, errInvalidToken
	}

	role, _ := claims["role"].(string)

	return &model.Identity{
		ID:       id,
		Username: username,
		Role:     role,
	}, nil
}
