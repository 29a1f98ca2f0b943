package controllers

import (
	"net/http"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/authentication"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/services"
	"github.com/gin-gonic/gin"
)

type AdminController struct {
	admins  AdminService
	tokens  TokenRevoker
	uploads *Uploads
}

func NewAdminController(admins AdminService, tokens TokenRevoker, uploads *Uploads) *AdminController {
	return &AdminController{admins: admins, tokens: tokens, uploads: uploads}
}

// Admin login
func (h *AdminController) Login(c *gin.Context) {
	var in services.LoginInput
	if !bindJSON(c, &in) {
		return
	}
	token, admin, err := h.admins.Login(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Login successful", gin.H{"token": token, "admin": admin})
}

// Admin logout
func (h *AdminController) Logout(c *gin.Context) {
	if err := h.tokens.Revoke(c); err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Logged out successfully", nil)
}

func (h *AdminController) Profile(c *gin.Context) {
	admin, err := h.admins.Profile(c.Request.Context(), authentication.AdminID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Profile fetched successfully", admin)
}

func (h *AdminController) UpdateProfile(c *gin.Context) {
	var in services.AdminProfileInput
	if !bindJSON(c, &in) {
		return
	}
	admin, err := h.admins.UpdateProfile(c.Request.Context(), authentication.AdminID(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Profile updated successfully", admin)
}

func (h *AdminController) ChangePassword(c *gin.Context) {
	var in services.ChangePasswordInput
	if !bindJSON(c, &in) {
		return
	}
	if err := h.admins.ChangePassword(c.Request.Context(), authentication.AdminID(c), in); err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Password changed successfully", nil)
}

func (h *AdminController) UploadProfileImage(c *gin.Context) {
	image, ok := h.uploads.saveImage(c, "image", "admins")
	if !ok {
		return
	}
	admin, previous, err := h.admins.SetProfileImage(c.Request.Context(), authentication.AdminID(c), image)
	if err != nil {
		h.uploads.remove(image)
		respondError(c, err)
		return
	}
	h.uploads.remove(previous)
	respondSuccess(c, http.StatusOK, "Profile image updated", admin)
}
