package api

import (
	"errors"

	"github.com/Goodidea-backend-camp/medium-blog-backend/internal/middleware"
	"github.com/Goodidea-backend-camp/medium-blog-backend/internal/store"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BlogPrefix is where the blog routes are mounted.
const BlogPrefix = "/api/v1/blog"

var ErrEmptyJWTSecret = errors.New("JWT secret cannot be empty")

type Handler struct {
	store.PostStore
	jwtSecret string
	logger    *zap.Logger
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithLogger sets the logger used to record swallowed store failures.
func WithLogger(logger *zap.Logger) HandlerOption {
	return func(h *Handler) {
		h.logger = logger
	}
}

// NewHandler creates the blog handler. Every route it registers sits behind
// the authorization gate keyed with jwtSecret.
func NewHandler(postStore store.PostStore, jwtSecret string, opts ...HandlerOption) (*Handler, error) {
	if jwtSecret == "" {
		return nil, ErrEmptyJWTSecret
	}

	h := &Handler{
		PostStore: postStore,
		jwtSecret: jwtSecret,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

func (h *Handler) RegisterRoutes(router gin.IRouter) {
	blog := router.Group(BlogPrefix, middleware.AuthRequired(h.jwtSecret))
	{
		// Both "/api/v1/blog" and "/api/v1/blog/" reach create and update.
		blog.POST("", h.CreateBlog)
		blog.POST("/", h.CreateBlog)
		blog.PUT("", h.UpdateBlog)
		blog.PUT("/", h.UpdateBlog)
		blog.GET("/bulk", h.ListBlogs)
		blog.GET("/:id", h.GetBlog)
	}
}
