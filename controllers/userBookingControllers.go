package controllers

import (
	"fmt"
	"net/http"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/authentication"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/services"
	"github.com/gin-gonic/gin"
)

// AppointmentController covers public booking, the patient area and the
// clinic's appointment desk.
type AppointmentController struct {
	appointments AppointmentService
}

func NewAppointmentController(appointments AppointmentService) *AppointmentController {
	return &AppointmentController{appointments: appointments}
}

// Booking an appointment from the public site
func (h *AppointmentController) Book(c *gin.Context) {
	var in services.BookingInput
	if !bindJSON(c, &in) {
		return
	}
	booking, err := h.appointments.Book(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "Appointment booked successfully", booking)
}

// Receipt streams the printable PDF receipt. The :id segment carries the reference number.
func (h *AppointmentController) Receipt(c *gin.Context) {
	pdf, appt, err := h.appointments.Receipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s.pdf"`, appt.ReferenceNumber))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// Listing the verified patient's appointments
func (h *AppointmentController) PatientAppointments(c *gin.Context) {
	appts, err := h.appointments.ListForPatient(c.Request.Context(), authentication.PatientPhone(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Appointments fetched successfully", appts)
}

func (h *AppointmentController) CancelByPatient(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	appt, err := h.appointments.CancelByPatient(c.Request.Context(), authentication.PatientPhone(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Appointment cancelled successfully", appt)
}
