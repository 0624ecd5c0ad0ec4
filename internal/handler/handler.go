package handler

import (
	"net/http"

	"github.com/BloggingApp/post-service/internal/dto"
	"github.com/BloggingApp/post-service/internal/model"
	"github.com/BloggingApp/post-service/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Handler struct {
	logger       *zap.Logger
	services     *service.Service
	accessSecret []byte
	origin       string
	metrics      http.Handler
}

type Options struct {
	AccessSecret string
	Origin       string
	// Metrics serves /metrics. Defaults to the global prometheus registry.
	Metrics http.Handler
}

func New(logger *zap.Logger, services *service.Service, opts Options) *Handler {
	if opts.Metrics == nil {
		opts.Metrics = promhttp.Handler()
	}

	return &Handler{
		logger:       logger,
		services:     services,
		accessSecret: []byte(opts.AccessSecret),
		origin:       opts.Origin,
		metrics:      opts.Metrics,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()

	r.Use(h.recoveryMiddleware(), h.accessLogMiddleware)

	corsConfig := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}
	if h.origin == "" || h.origin == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = []string{h.origin}
		corsConfig.AllowCredentials = true
	}
	r.Use(cors.New(corsConfig))

	r.GET("/healthz", h.healthz)
	r.GET("/metrics", gin.WrapH(h.metrics))

	v1 := r.Group("/api/v1", h.identityMiddleware)
	{
		posts := v1.Group("/posts")
		{
			posts.GET("", h.postsList)
			posts.GET("/:postID", h.postsGet)
			posts.POST("", h.authMiddleware, h.postsCreate)
			posts.PUT("/:postID", h.authMiddleware, h.postsEdit)
			posts.DELETE("/:postID", h.authMiddleware, h.postsDelete)
			posts.POST("/:postID/comments", h.authMiddleware, h.commentsAdd)
		}

		groups := v1.Group("/groups")
		{
			groups.GET("", h.groupsList)
			groups.GET("/:slug", h.groupsFeed)
		}

		profiles := v1.Group("/profiles/:username", h.usernameMiddleware)
		{
			profiles.GET("", h.profilesGet)
			profiles.PUT("/follow", h.authMiddleware, h.followsFollow)
			profiles.DELETE("/follow", h.authMiddleware, h.followsUnfollow)
		}

		v1.GET("/follow", h.authMiddleware, h.followsFeed)

		admin := v1.Group("/admin", h.authMiddleware)
		{
			admin.POST("/groups", h.groupsCreate)
			admin.DELETE("/groups/:slug", h.groupsDelete)
			admin.DELETE("/cache", h.adminClearCache)
		}
	}

	return r
}

func (h *Handler) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewBasicResponse(true, ""))
}

// getIdentity returns the caller set by identityMiddleware, or nil for
// anonymous requests.
func (h *Handler) getIdentity(c *gin.Context) *model.Identity {
	identityReq, _ := c.Get(IDENTITY_KEY)

	identity, ok := identityReq.(model.Identity)
	if !ok {
		return nil
	}

	return &identity
}
