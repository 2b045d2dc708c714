package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blogd/internal/app/errors"
	"blogd/internal/config/logger"
)

// errorResponse is the body of every failed request
type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps an error kind to its response status
func statusFor(err error) int {
	switch errors.KindOf(err) {
	case errors.KindNotFound:
		return http.StatusNotFound
	case errors.KindInvalidPayload:
		if errors.Is(err, errors.ErrMalformedBody) {
			return http.StatusBadRequest
		}

		return http.StatusUnprocessableEntity
	case errors.KindStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the error response; server side failures keep their details out of the body
func (h *handler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	body := errorResponse{Error: err.Error()}

	switch status {
	case http.StatusServiceUnavailable:
		body.Error = errors.ErrStoreUnavailable.Error()
		h.log.Error().Stack().Err(err).Msgf("Store failure on %s %s", c.Request.Method, c.Request.URL.Path)
	case http.StatusInternalServerError:
		body.Error = http.StatusText(http.StatusInternalServerError)
		h.log.Error().Stack().Err(err).Msgf("Request failed on %s %s", c.Request.Method, c.Request.URL.Path)
	default:
		h.log.Debug().Err(err).Msgf("Request rejected on %s %s", c.Request.Method, c.Request.URL.Path)
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, body)
}

// recovery turns a handler panic into a 500 response
func recovery(log logger.Logger) gin.RecoveryFunc {
	return func(c *gin.Context, recovered any) {
		log.Error().Interface("panic", recovered).Msgf("Recovered panic on %s %s", c.Request.Method, c.Request.URL.Path)
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: http.StatusText(http.StatusInternalServerError)})
	}
}
