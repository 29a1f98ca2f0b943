package controllers

import (
	"net/http"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/repository"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/services"
	"github.com/gin-gonic/gin"
)

// CenterController is the admin back-office over clinical centers.
type CenterController struct {
	centers CenterService
}

func NewCenterController(centers CenterService) *CenterController {
	return &CenterController{centers: centers}
}

// Registering a clinical center
func (h *CenterController) Register(c *gin.Context) {
	var in services.RegisterCenterInput
	if !bindJSON(c, &in) {
		return
	}
	center, err := h.centers.Register(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "Clinical center registered successfully", center)
}

// Listing clinical centers, filtered by status, city and a search term
func (h *CenterController) List(c *gin.Context) {
	centers, err := h.centers.List(c.Request.Context(), repository.CenterFilter{
		Status: c.Query("status"),
		City:   c.Query("city"),
		Search: c.Query("search"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Clinical centers fetched successfully", centers)
}

func (h *CenterController) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	center, err := h.centers.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Clinical center fetched successfully", center)
}

func (h *CenterController) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in services.CenterInput
	if !bindJSON(c, &in) {
		return
	}
	center, err := h.centers.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Clinical center updated successfully", center)
}

func (h *CenterController) SetStatus(c *gin.Context) {
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
	center, err := h.centers.SetStatus(c.Request.Context(), id, in.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Clinical center status updated", center)
}

// Approve accepts {"approved": false} to withdraw an approval; an empty body approves.
func (h *CenterController) Approve(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	in := struct {
		Approved *bool `json:"approved"`
	}{}
	if c.Request.ContentLength > 0 && !bindJSON(c, &in) {
		return
	}
	approved := in.Approved == nil || *in.Approved

	center, err := h.centers.SetApproval(c.Request.Context(), id, approved)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Clinical center approval updated", center)
}

func (h *CenterController) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.centers.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Clinical center removed successfully", nil)
}

// Cities lists where patients can book.
func (h *CenterController) Cities(c *gin.Context) {
	cities, err := h.centers.Cities(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Cities fetched successfully", cities)
}
