package controllers

import (
	"net/http"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/services"
	"github.com/gin-gonic/gin"
)

// PatientController signs patients in with an SMS code.
type PatientController struct {
	patients PatientService
}

func NewPatientController(patients PatientService) *PatientController {
	return &PatientController{patients: patients}
}

func (h *PatientController) SendOTP(c *gin.Context) {
	var in services.SendOTPInput
	if !bindJSON(c, &in) {
		return
	}
	if err := h.patients.SendOTP(c.Request.Context(), in); err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Otp generated successfully. Proceed to verification", nil)
}

func (h *PatientController) VerifyOTP(c *gin.Context) {
	var in services.VerifyOTPInput
	if !bindJSON(c, &in) {
		return
	}
	token, err := h.patients.VerifyOTP(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Phone verified successfully", gin.H{"token": token})
}
