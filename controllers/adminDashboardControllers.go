package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Dashboard counts centers, approvals, appointments and queries by status.
func (h *AdminController) Dashboard(c *gin.Context) {
	dashboard, err := h.admins.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Dashboard fetched successfully", dashboard)
}
