package handlers

import (
	"MediCore/middlewares"
	"MediCore/services"
	"MediCore/utils"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// view renders templates with the session identity and pending notices.
type view struct {
	sessions *utils.SessionManager
}

func (v view) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["Form"]; !ok {
		data["Form"] = map[string]string{}
	}
	p, _ := middlewares.CurrentPrincipal(c)
	data["Principal"] = p
	data["Flashes"] = v.sessions.Flashes(c)
	c.HTML(status, name, data)
}

func (v view) redirect(c *gin.Context, location, notice string) {
	if notice != "" {
		v.sessions.AddFlash(c, notice)
	}
	c.Redirect(http.StatusFound, location)
}

// fail maps service errors that no handler treats specially onto an error page.
func (v view) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		middlewares.HttpError(c, validationMessage(err), http.StatusBadRequest, err)
	case errors.Is(err, services.ErrNotFound):
		middlewares.HttpError(c, "The requested record does not exist.", http.StatusNotFound, err)
	case errors.Is(err, services.ErrUnauthorized):
		v.redirect(c, "/login", "Unauthorized access")
	default:
		middlewares.HttpError(c, "Something went wrong on our side. Please try again later.", http.StatusInternalServerError, err)
	}
}

// validationMessage strips the sentinel prefix for display.
func validationMessage(err error) string {
	return strings.TrimPrefix(err.Error(), services.ErrValidation.Error()+": ")
}

func formValues(c *gin.Context, keys ...string) map[string]string {
	values := make(map[string]string, len(keys))
	for _, key := range keys {
		values[key] = c.PostForm(key)
	}
	return values
}

// missingFields lists the keys absent from the submitted form. Empty values count as present.
func missingFields(c *gin.Context, keys ...string) []string {
	var missing []string
	for _, key := range keys {
		if _, ok := c.GetPostForm(key); !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

// paramID returns 0 for ids that do not parse, which never match a row.
func paramID(c *gin.Context, name string) int64 {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}
