package controllers

import (
	"net/http"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/authentication"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/services"
	"github.com/gin-gonic/gin"
)

// Registering an outstanding (walk-in) patient for today
func (h *AppointmentController) CreateWalkIn(c *gin.Context) {
	var in services.WalkInInput
	if !bindJSON(c, &in) {
		return
	}
	appt, err := h.appointments.WalkIn(c.Request.Context(), authentication.CenterID(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "Patient added to the queue", appt)
}

func (h *AppointmentController) ListWalkIns(c *gin.Context) {
	appts, err := h.appointments.ListWalkIns(c.Request.Context(), authentication.CenterID(c), appointmentQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Outstanding patients fetched successfully", appts)
}

func (h *AppointmentController) CompleteWalkIn(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in services.FeesInput
	if !bindJSON(c, &in) {
		return
	}
	appt, err := h.appointments.CompleteWalkIn(c.Request.Context(), authentication.CenterID(c), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Visit completed", appt)
}
