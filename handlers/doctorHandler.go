package handlers

import (
	"MediCore/middlewares"
	"MediCore/models"
	"MediCore/services"
	"MediCore/utils"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
)

const doctorDashboardPath = "/doctor/dashboard"

// DaySlots is one row of the weekly availability grid.
type DaySlots struct {
	Day   int
	Slots []models.DoctorAvailability
}

type DoctorHandler struct {
	view
	appointments *services.AppointmentService
	availability *services.AvailabilityService
}

func NewDoctorHandler(sessions *utils.SessionManager, appointments *services.AppointmentService, availability *services.AvailabilityService) *DoctorHandler {
	return &DoctorHandler{view: view{sessions: sessions}, appointments: appointments, availability: availability}
}

func weeklyGrid(slots []models.DoctorAvailability) []DaySlots {
	byDay := models.GroupByDay(slots)
	days := make([]int, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Ints(days)

	grid := make([]DaySlots, 0, len(days))
	for _, day := range days {
		grid = append(grid, DaySlots{Day: day, Slots: byDay[day]})
	}
	return grid
}

// Dashboard lists the doctor's appointments and weekly slots, seeding the default week on first visit.
func (h *DoctorHandler) Dashboard(c *gin.Context) {
	p, _ := middlewares.CurrentPrincipal(c)
	ctx := c.Request.Context()

	slots, err := h.availability.GetOrSeedWeeklySlots(ctx, p.UserID)
	if err != nil {
		h.fail(c, err)
		return
	}
	appointments, err := h.appointments.ListForDoctor(ctx, p.UserID)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "doctor_dashboard.html", gin.H{
		"Title":        "Doctor dashboard",
		"Appointments": appointments,
		"Days":         weeklyGrid(slots),
	})
}

func (h *DoctorHandler) ToggleAvailability(c *gin.Context) {
	p, _ := middlewares.CurrentPrincipal(c)
	slot, err := h.availability.Toggle(c.Request.Context(), p, paramID(c, "slot_id"))
	switch {
	case errors.Is(err, services.ErrNotFound):
		middlewares.HttpError(c, "Time slot not found", http.StatusNotFound, err)
		return
	case errors.Is(err, services.ErrUnauthorized):
		h.redirect(c, doctorDashboardPath, "Unauthorized access")
		return
	case err != nil:
		h.fail(c, err)
		return
	}

	state := "unavailable"
	if slot.IsAvailable {
		state = "available"
	}
	h.redirect(c, doctorDashboardPath, fmt.Sprintf("Time slot %s-%s marked as %s", slot.StartTime, slot.EndTime, state))
}
