package controllers

import (
	"net/http"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/authentication"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/repository"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/services"
	"github.com/gin-gonic/gin"
)

// QueryController handles complaints raised by patients and clinics.
type QueryController struct {
	queries QueryService
	admins  AdminService
}

func NewQueryController(queries QueryService, admins AdminService) *QueryController {
	return &QueryController{queries: queries, admins: admins}
}

func (h *QueryController) CreateFromUser(c *gin.Context) {
	var in services.UserQueryInput
	if !bindJSON(c, &in) {
		return
	}
	query, err := h.queries.CreateFromUser(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "Complaint submitted successfully", query)
}

func (h *QueryController) CreateFromClinic(c *gin.Context) {
	var in services.ClinicQueryInput
	if !bindJSON(c, &in) {
		return
	}
	query, err := h.queries.CreateFromClinic(c.Request.Context(), authentication.CenterID(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "Complaint submitted successfully", query)
}

func (h *QueryController) ClinicQueries(c *gin.Context) {
	queries, err := h.queries.ListForClinic(c.Request.Context(), authentication.CenterID(c), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Complaints fetched successfully", queries)
}

func (h *QueryController) List(c *gin.Context) {
	queries, err := h.queries.List(c.Request.Context(), repository.QueryFilter{
		Status:     c.Query("status"),
		SenderType: c.Query("type"),
		Search:     c.Query("search"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Queries fetched successfully", queries)
}

// UpdateStatus answers with the query and its new status badge.
func (h *QueryController) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in services.QueryStatusInput
	if !bindJSON(c, &in) {
		return
	}
	query, err := h.queries.UpdateStatus(c.Request.Context(), c.Param("type"), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Query status updated", query)
}

func (h *QueryController) Reply(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in services.QueryReplyInput
	if !bindJSON(c, &in) {
		return
	}
	admin, err := h.admins.Profile(c.Request.Context(), authentication.AdminID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	query, err := h.queries.Reply(c.Request.Context(), c.Param("type"), id, admin.Name, in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Reply sent", query)
}
