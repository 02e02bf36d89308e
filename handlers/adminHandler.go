package handlers

import (
	"MediCore/services"
	"MediCore/utils"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const adminDashboardPath = "/admin/dashboard"

type AdminHandler struct {
	view
	doctors  *services.DoctorService
	patients *services.PatientService
	contact  *services.ContactService
}

func NewAdminHandler(sessions *utils.SessionManager, doctors *services.DoctorService, patients *services.PatientService, contact *services.ContactService) *AdminHandler {
	return &AdminHandler{view: view{sessions: sessions}, doctors: doctors, patients: patients, contact: contact}
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	doctors, err := h.doctors.ListDoctors(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	patients, err := h.patients.ListPatients(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	messages, err := h.contact.ListRecent(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "admin_dashboard.html", gin.H{
		"Title":    "Admin dashboard",
		"Doctors":  doctors,
		"Patients": patients,
		"Messages": messages,
	})
}

// doctorForm reads the doctor form. An unparsable experience is a validation error.
func doctorForm(c *gin.Context) (services.DoctorForm, error) {
	form := services.DoctorForm{
		Username:       strings.TrimSpace(c.PostForm("username")),
		Email:          strings.TrimSpace(c.PostForm("email")),
		Password:       c.PostForm("password"),
		Department:     strings.TrimSpace(c.PostForm("department")),
		Specialization: strings.TrimSpace(c.PostForm("specialization")),
	}
	if raw := strings.TrimSpace(c.PostForm("experience")); raw != "" {
		experience, err := strconv.Atoi(raw)
		if err != nil {
			return form, fmt.Errorf("%w: experience: must be a whole number of years", services.ErrValidation)
		}
		form.Experience = experience
	}
	return form, nil
}

func (h *AdminHandler) AddDoctor(c *gin.Context) {
	form, err := doctorForm(c)
	if err == nil {
		_, err = h.doctors.CreateDoctor(c.Request.Context(), form)
	}
	switch {
	case errors.Is(err, services.ErrDuplicateValue):
		h.redirect(c, adminDashboardPath, "Username or email already exists")
		return
	case err != nil:
		h.fail(c, err)
		return
	}
	h.redirect(c, adminDashboardPath, "Doctor profile created successfully")
}

func (h *AdminHandler) EditDoctorForm(c *gin.Context) {
	doctor, err := h.doctors.GetDoctor(c.Request.Context(), paramID(c, "id"))
	if errors.Is(err, services.ErrNotFound) {
		h.redirect(c, adminDashboardPath, "Doctor not found")
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "admin_edit_doctor.html", gin.H{"Title": "Edit doctor", "Doctor": doctor})
}

func (h *AdminHandler) EditDoctor(c *gin.Context) {
	form, err := doctorForm(c)
	if err == nil {
		err = h.doctors.EditDoctor(c.Request.Context(), paramID(c, "id"), form)
	}
	switch {
	case errors.Is(err, services.ErrNotFound):
		h.redirect(c, adminDashboardPath, "Doctor not found")
		return
	case errors.Is(err, services.ErrDuplicateValue):
		h.redirect(c, fmt.Sprintf("/admin/edit_doctor/%d", paramID(c, "id")), "Username or email already exists")
		return
	case err != nil:
		h.fail(c, err)
		return
	}
	h.redirect(c, adminDashboardPath, fmt.Sprintf("Dr. %s's profile updated successfully", form.Username))
}

func (h *AdminHandler) DeleteDoctor(c *gin.Context) {
	doctor, err := h.doctors.DeleteDoctor(c.Request.Context(), paramID(c, "id"))
	if errors.Is(err, services.ErrNotFound) {
		h.redirect(c, adminDashboardPath, "Doctor not found")
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	h.redirect(c, adminDashboardPath, fmt.Sprintf("Dr. %s has been removed successfully", doctor.Username))
}

func (h *AdminHandler) DeletePatient(c *gin.Context) {
	patient, err := h.patients.DeletePatient(c.Request.Context(), paramID(c, "id"))
	if errors.Is(err, services.ErrNotFound) {
		h.redirect(c, adminDashboardPath, "Patient not found")
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	h.redirect(c, adminDashboardPath, fmt.Sprintf("Patient %s has been removed", patient.Username))
}

// BlacklistDoctor confirms the action without suspending the account.
func (h *AdminHandler) BlacklistDoctor(c *gin.Context) {
	doctor, err := h.doctors.BlacklistDoctor(c.Request.Context(), paramID(c, "id"))
	if errors.Is(err, services.ErrNotFound) {
		h.redirect(c, adminDashboardPath, "Doctor not found")
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	h.redirect(c, adminDashboardPath, fmt.Sprintf("Dr. %s has been blacklisted (feature in development)", doctor.Username))
}
