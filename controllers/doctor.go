package controllers

import (
	"net/http"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/repository"
	"github.com/gin-gonic/gin"
)

// Public doctor search by city, clinic, name and specialization
func (h *DoctorController) Search(c *gin.Context) {
	doctors, err := h.doctors.PublicSearch(c.Request.Context(), repository.DoctorSearch{
		City:           c.Query("city"),
		Clinic:         c.Query("clinic"),
		Name:           c.Query("name"),
		Specialization: c.Query("specialization"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Doctors fetched successfully", doctors)
}

func (h *DoctorController) PublicGet(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	doctor, err := h.doctors.PublicGet(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Doctor fetched successfully", doctor)
}

// PublicAvailability lists the bookable shifts of a date with their counts.
func (h *DoctorController) PublicAvailability(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	shifts, err := h.doctors.PublicAvailability(c.Request.Context(), id, c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Availability fetched successfully", shifts)
}
