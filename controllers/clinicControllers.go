package controllers

import (
	"net/http"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/authentication"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/services"
	"github.com/gin-gonic/gin"
)

// ClinicController serves the signed-in merchant's own account.
type ClinicController struct {
	centers CenterService
	tokens  TokenRevoker
}

func NewClinicController(centers CenterService, tokens TokenRevoker) *ClinicController {
	return &ClinicController{centers: centers, tokens: tokens}
}

func (h *ClinicController) Login(c *gin.Context) {
	var in services.LoginInput
	if !bindJSON(c, &in) {
		return
	}
	token, center, err := h.centers.Login(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Login successful", gin.H{"token": token, "center": center})
}

func (h *ClinicController) Logout(c *gin.Context) {
	if err := h.tokens.Revoke(c); err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Logged out successfully", nil)
}

func (h *ClinicController) Profile(c *gin.Context) {
	center, err := h.centers.Get(c.Request.Context(), authentication.CenterID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Profile fetched successfully", center)
}

func (h *ClinicController) UpdateProfile(c *gin.Context) {
	var in services.ClinicProfileInput
	if !bindJSON(c, &in) {
		return
	}
	center, err := h.centers.UpdateOwnProfile(c.Request.Context(), authentication.CenterID(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Profile updated successfully", center)
}

func (h *ClinicController) ChangePassword(c *gin.Context) {
	var in services.ChangePasswordInput
	if !bindJSON(c, &in) {
		return
	}
	if err := h.centers.ChangePassword(c.Request.Context(), authentication.CenterID(c), in); err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Password changed successfully", nil)
}

// RegisterDevice stores an FCM token for new booking notifications.
func (h *ClinicController) RegisterDevice(c *gin.Context) {
	var in struct {
		Token string `json:"token"`
	}
	if !bindJSON(c, &in) {
		return
	}
	if err := h.centers.RegisterDevice(c.Request.Context(), authentication.CenterID(c), in.Token); err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Device registered", nil)
}
