package server

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"blogd/internal/app/limiter"
	"blogd/internal/app/posts"
	"blogd/internal/app/settings"
	"blogd/internal/config"
	"blogd/internal/config/logger"
)

// Route prefixes
const (
	RootPrefix      = "/"
	BlogPostsPrefix = "/blog-posts"
)

// NewRouter binds every route to its handler. The literal /blog-posts/random route is
// registered ahead of /blog-posts/:id so the segment is never read as an id.
func NewRouter(cfg *config.Config, store posts.Store, provider settings.Provider, l limiter.Limiter, log logger.Logger) *gin.Engine {
	log = log.WithComponent("SERVER")

	if cfg.Logging.Level == logger.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	gin.DebugPrintRouteFunc = func(method, path, handler string, _ int) {
		log.Debug().Msgf("Route %s %s -> %s", method, path, handler)
	}

	h := newHandler(store, provider, log)

	router := gin.New()
	router.Use(
		requestLogger(log),
		gin.CustomRecoveryWithWriter(io.Discard, recovery(log)),
		limitInFlight(l, cfg.Server.QueueTimeout, log),
	)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorResponse{Error: http.StatusText(http.StatusNotFound)})
	})

	root := router.Group(RootPrefix)
	root.GET("/", h.index)
	root.GET("/config", h.getConfig)

	blogPosts := router.Group(BlogPostsPrefix)
	blogPosts.GET("/random", h.getRandomPost)
	blogPosts.GET("/:id", h.getPost)
	blogPosts.GET("/", h.listPosts)
	blogPosts.POST("/", h.createPost)
	blogPosts.PUT("/:id", h.updatePost)
	blogPosts.DELETE("/:id", h.deletePost)

	return router
}
