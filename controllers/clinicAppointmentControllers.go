package controllers

import (
	"net/http"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/authentication"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/services"
	"github.com/gin-gonic/gin"
)

func appointmentQuery(c *gin.Context) services.AppointmentQuery {
	return services.AppointmentQuery{
		Date:     c.Query("date"),
		From:     c.Query("from"),
		To:       c.Query("to"),
		Status:   c.Query("status"),
		Source:   c.Query("source"),
		DoctorID: queryUint(c, "doctorId"),
		Search:   c.Query("search"),
	}
}

func (h *AppointmentController) ClinicAppointments(c *gin.Context) {
	appts, err := h.appointments.ListForCenter(c.Request.Context(), authentication.CenterID(c), appointmentQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Appointments fetched successfully", appts)
}

// History lists completed and cancelled appointments.
func (h *AppointmentController) History(c *gin.Context) {
	appts, err := h.appointments.History(c.Request.Context(), authentication.CenterID(c), appointmentQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Appointment history fetched successfully", appts)
}

func (h *AppointmentController) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in struct {
		Status string `json:"status"`
	}
	if !bindJSON(c, &in) {
		return
	}
	appt, err := h.appointments.UpdateStatus(c.Request.Context(), authentication.CenterID(c), id, in.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Appointment status updated", appt)
}

func (h *AppointmentController) UpdateFees(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in services.FeesInput
	if !bindJSON(c, &in) {
		return
	}
	appt, err := h.appointments.UpdateFees(c.Request.Context(), authentication.CenterID(c), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Appointment fees updated", appt)
}

func (h *AppointmentController) Dashboard(c *gin.Context) {
	dashboard, err := h.appointments.Dashboard(c.Request.Context(), authentication.CenterID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Dashboard fetched successfully", dashboard)
}
