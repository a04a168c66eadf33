package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/JonasLeetTheWay/fyyur-go/internal/logger"
	"github.com/JonasLeetTheWay/fyyur-go/internal/store"
	"github.com/gin-gonic/gin"
)

func NotFound(c *gin.Context) {
	Render(c, http.StatusNotFound, "errors/404", gin.H{"title": "Not Found"})
}

func ServerError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	Render(c, http.StatusInternalServerError, "errors/500", gin.H{"title": "Server Error"})
}

// Recovery renders the 500 page for a panicking handler.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.FromContext(c.Request.Context()).Error().Interface("panic", recovered).Msg("handler panicked")
		ServerError(c, nil)
		c.Abort()
	})
}

// StoreError answers a failed read: 404 for unknown records, 500 otherwise.
func StoreError(c *gin.Context, err error) {
	LogStoreError(c, err, "store read failed")
	if errors.Is(err, store.ErrNotFound) {
		NotFound(c)
		return
	}
	ServerError(c, err)
}

func LogStoreError(c *gin.Context, err error, msg string) {
	event := logger.FromContext(c.Request.Context()).Error()
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrValidationFailed) {
		event = logger.FromContext(c.Request.Context()).Warn()
	}
	event.Err(err).Str("kind", store.Kind(err)).Str("path", c.Request.URL.Path).Msg(msg)
}

// ParamID parses the :id path parameter. Anything that is not a positive
// integer is treated as an unknown record.
func ParamID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		NotFound(c)
		return 0, false
	}
	return uint(id), true
}

// Redirect sends the browser to location with a GET, also after DELETE.
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}
