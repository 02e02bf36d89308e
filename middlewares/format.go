package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ErrorTemplate is the page rendered for failed requests.
const ErrorTemplate = "error.html"

// HttpError logs an error and renders the error page to the client.
func HttpError(c *gin.Context, message string, status int, err error) {
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", status).Str("path", c.Request.URL.Path).Msg(message)
	} else {
		log.Debug().Err(err).Int("status", status).Str("path", c.Request.URL.Path).Msg(message)
	}
	if err != nil {
		_ = c.Error(err)
	}

	p, _ := CurrentPrincipal(c)
	c.HTML(status, ErrorTemplate, gin.H{
		"Title":     http.StatusText(status),
		"Status":    status,
		"Message":   message,
		"Principal": p,
	})
	c.Abort()
}
