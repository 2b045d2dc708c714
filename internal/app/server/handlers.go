package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"blogd/internal/app/errors"
	"blogd/internal/app/posts"
	"blogd/internal/app/settings"
	"blogd/internal/config/logger"
)

const greeting = "Hello, world!"

// handler adapts HTTP requests to store calls
type handler struct {
	store    posts.Store
	settings settings.Provider
	log      logger.Logger
}

func newHandler(store posts.Store, provider settings.Provider, log logger.Logger) *handler {
	return &handler{
		store:    store,
		settings: provider,
		log:      log,
	}
}

func (h *handler) index(c *gin.Context) {
	c.String(http.StatusOK, greeting)
}

func (h *handler) getConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.settings.Get())
}

func (h *handler) listPosts(c *gin.Context) {
	list, err := h.store.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *handler) getRandomPost(c *gin.Context) {
	post, err := h.store.Random(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *handler) getPost(c *gin.Context) {
	id, err := postID(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	post, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *handler) createPost(c *gin.Context) {
	post, err := bindPost(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	created, err := h.store.Create(c.Request.Context(), post.NewBlogPost())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, created)
}

func (h *handler) updatePost(c *gin.Context) {
	id, err := postID(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	post, err := bindPost(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	updated, err := h.store.Update(c.Request.Context(), id, post)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *handler) deletePost(c *gin.Context) {
	id, err := postID(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	deleted, err := h.store.Delete(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, deleted)
}

// postID parses the :id segment; a non-integer segment matches no post
func postID(c *gin.Context) (int64, error) {
	raw := c.Param("id")

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errors.ErrInvalidPostID, raw)
	}

	return id, nil
}

// bindPost decodes a BlogPost body; syntax errors are reported apart from shape errors
func bindPost(c *gin.Context) (posts.BlogPost, error) {
	var post posts.BlogPost

	if err := c.ShouldBindJSON(&post); err != nil {
		if errors.KindOf(err) == errors.KindInvalidPayload {
			return posts.BlogPost{}, err
		}

		return posts.BlogPost{}, fmt.Errorf("%w: %w", errors.ErrMalformedBody, err)
	}

	return post, nil
}
