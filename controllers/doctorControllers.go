package controllers

import (
	"net/http"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/authentication"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/repository"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/services"
	"github.com/gin-gonic/gin"
)

// DoctorController manages the doctors of the signed-in clinic and serves
// the public doctor search.
type DoctorController struct {
	doctors DoctorService
	uploads *Uploads
}

func NewDoctorController(doctors DoctorService, uploads *Uploads) *DoctorController {
	return &DoctorController{doctors: doctors, uploads: uploads}
}

func (h *DoctorController) Create(c *gin.Context) {
	var in services.DoctorInput
	if !bindJSON(c, &in) {
		return
	}
	doctor, err := h.doctors.Create(c.Request.Context(), authentication.CenterID(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "Doctor added successfully", doctor)
}

func (h *DoctorController) List(c *gin.Context) {
	doctors, err := h.doctors.List(c.Request.Context(), authentication.CenterID(c), repository.DoctorFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Doctors fetched successfully", doctors)
}

func (h *DoctorController) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	doctor, err := h.doctors.Get(c.Request.Context(), authentication.CenterID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Doctor fetched successfully", doctor)
}

func (h *DoctorController) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in services.DoctorInput
	if !bindJSON(c, &in) {
		return
	}
	doctor, err := h.doctors.Update(c.Request.Context(), authentication.CenterID(c), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Doctor updated successfully", doctor)
}

func (h *DoctorController) SetStatus(c *gin.Context) {
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
	doctor, err := h.doctors.SetStatus(c.Request.Context(), authentication.CenterID(c), id, in.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Doctor status updated", doctor)
}

func (h *DoctorController) UploadPhoto(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	centerID := authentication.CenterID(c)
	// check ownership before writing anything to disk
	if _, err := h.doctors.Get(c.Request.Context(), centerID, id); err != nil {
		respondError(c, err)
		return
	}

	photo, ok := h.uploads.saveImage(c, "photo", "doctors")
	if !ok {
		return
	}
	doctor, previous, err := h.doctors.SetPhoto(c.Request.Context(), centerID, id, photo)
	if err != nil {
		h.uploads.remove(photo)
		respondError(c, err)
		return
	}
	h.uploads.remove(previous)
	respondSuccess(c, http.StatusOK, "Photo uploaded successfully", doctor)
}

func (h *DoctorController) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.doctors.Delete(c.Request.Context(), authentication.CenterID(c), id); err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Doctor removed successfully", nil)
}

// SetAvailability replaces the shifts the doctor works on one date.
func (h *DoctorController) SetAvailability(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in services.AvailabilityInput
	if !bindJSON(c, &in) {
		return
	}
	entries, err := h.doctors.SetAvailability(c.Request.Context(), authentication.CenterID(c), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Availability saved successfully", entries)
}

func (h *DoctorController) ListAvailability(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	entries, err := h.doctors.ListAvailability(c.Request.Context(), authentication.CenterID(c), id, c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Availability fetched successfully", entries)
}

func (h *DoctorController) DeleteAvailability(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	entryID, ok := paramID(c, "entryId")
	if !ok {
		return
	}
	if err := h.doctors.DeleteAvailability(c.Request.Context(), authentication.CenterID(c), id, entryID); err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Availability removed", nil)
}
