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

type AppointmentHandler struct {
	view
	service *services.AppointmentService
}

func NewAppointmentHandler(sessions *utils.SessionManager, service *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{view: view{sessions: sessions}, service: service}
}

// Book schedules an appointment for the logged in user.
func (h *AppointmentHandler) Book(c *gin.Context) {
	p, _ := middlewares.CurrentPrincipal(c)

	// An unparsable id becomes 0 and fails validation.
	doctorID, _ := strconv.ParseInt(strings.TrimSpace(c.PostForm("doctor_id")), 10, 64)
	_, err := h.service.Book(c.Request.Context(), p, doctorID, strings.TrimSpace(c.PostForm("date")))
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		h.redirect(c, p.Role.DashboardPath(), "Only patients can book appointments")
		return
	case err != nil:
		h.fail(c, err)
		return
	}
	h.redirect(c, p.Role.DashboardPath(), "Your appointment has been scheduled")
}

// CompleteAppointment stores the visit record. Both fields must be submitted, empty values are kept.
func (h *AppointmentHandler) CompleteAppointment(c *gin.Context) {
	p, _ := middlewares.CurrentPrincipal(c)
	if missing := missingFields(c, "diagnosis", "prescription"); len(missing) > 0 {
		middlewares.HttpError(c, "missing form fields: "+strings.Join(missing, ", "), http.StatusBadRequest, nil)
		return
	}

	_, err := h.service.Complete(c.Request.Context(), p, paramID(c, "id"), c.PostForm("diagnosis"), c.PostForm("prescription"))
	switch {
	case errors.Is(err, services.ErrNotFound):
		middlewares.HttpError(c, "Appointment not found", http.StatusNotFound, err)
		return
	case errors.Is(err, services.ErrUnauthorized):
		h.redirect(c, p.Role.DashboardPath(), "Unauthorized access")
		return
	case err != nil:
		h.fail(c, err)
		return
	}
	h.redirect(c, doctorDashboardPath, "Patient record updated successfully")
}
