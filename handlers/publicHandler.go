package handlers

import (
	"MediCore/cache"
	"MediCore/database"
	"MediCore/services"
	"MediCore/utils"
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var contactFields = []string{"firstname", "lastname", "email", "subject", "message"}

type PublicHandler struct {
	view
	doctors *services.DoctorService
	contact *services.ContactService
}

func NewPublicHandler(sessions *utils.SessionManager, doctors *services.DoctorService, contact *services.ContactService) *PublicHandler {
	return &PublicHandler{view: view{sessions: sessions}, doctors: doctors, contact: contact}
}

func (h *PublicHandler) Index(c *gin.Context) {
	h.render(c, http.StatusOK, "index.html", gin.H{"Title": "Home"})
}

func (h *PublicHandler) About(c *gin.Context) {
	h.render(c, http.StatusOK, "about.html", gin.H{"Title": "About"})
}

func (h *PublicHandler) Doctors(c *gin.Context) {
	doctors, err := h.doctors.ListDoctors(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "doctors.html", gin.H{"Title": "Our doctors", "Doctors": doctors})
}

func (h *PublicHandler) ContactForm(c *gin.Context) {
	h.render(c, http.StatusOK, "contact.html", gin.H{"Title": "Contact"})
}

func (h *PublicHandler) SubmitContact(c *gin.Context) {
	form := formValues(c, contactFields...)
	if missing := missingFields(c, contactFields...); len(missing) > 0 {
		h.render(c, http.StatusBadRequest, "contact.html", gin.H{
			"Title": "Contact",
			"Form":  form,
			"Error": "missing form fields: " + strings.Join(missing, ", "),
		})
		return
	}
	_, err := h.contact.Submit(c.Request.Context(), form["firstname"], form["lastname"], form["email"], form["subject"], form["message"])
	if errors.Is(err, services.ErrValidation) {
		h.render(c, http.StatusBadRequest, "contact.html", gin.H{"Title": "Contact", "Form": form, "Error": validationMessage(err)})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	h.redirect(c, "/contact", "Thank you for your message! We will get back to you soon.")
}

type HealthHandler struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewHealthHandler(db *gorm.DB, cache *cache.Cache) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Healthz pings the database and Redis.
func (h *HealthHandler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := database.Ping(ctx, h.db); err != nil {
		log.Error().Err(err).Msg("Health check: database unreachable")
		c.String(http.StatusServiceUnavailable, "database unavailable")
		return
	}
	if err := h.cache.Ping(ctx); err != nil {
		log.Error().Err(err).Msg("Health check: redis unreachable")
		c.String(http.StatusServiceUnavailable, "redis unavailable")
		return
	}
	c.String(http.StatusOK, "ok")
}
