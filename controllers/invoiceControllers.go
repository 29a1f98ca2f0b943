package controllers

import (
	"net/http"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/authentication"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/services"
	"github.com/gin-gonic/gin"
)

// CreatePaymentOrder raises a Razorpay order the client opens checkout with.
func (h *AppointmentController) CreatePaymentOrder(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	order, err := h.appointments.CreatePaymentOrder(c.Request.Context(), authentication.PatientPhone(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Payment order created", order)
}

// VerifyPayment checks the checkout signature and marks the appointment paid.
func (h *AppointmentController) VerifyPayment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in services.VerifyPaymentInput
	if !bindJSON(c, &in) {
		return
	}
	appt, err := h.appointments.VerifyPayment(c.Request.Context(), authentication.PatientPhone(c), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Payment verified successfully", appt)
}

// Export downloads the clinic's appointments as a spreadsheet.
func (h *AppointmentController) Export(c *gin.Context) {
	from, to := c.Query("from"), c.Query("to")
	out, err := h.appointments.Export(c.Request.Context(), authentication.CenterID(c), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="appointments.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", out)
}
