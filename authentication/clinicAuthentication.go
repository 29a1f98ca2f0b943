package authentication

import (
	"strconv"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/models"
	"github.com/gin-gonic/gin"
)

func (m *TokenManager) IssueClinicToken(center models.ClinicalCenter) (string, error) {
	claims := &models.ClinicClaims{
		CenterID:         center.ID,
		Email:            center.Email,
		RegisteredClaims: m.registered(strconv.FormatUint(uint64(center.ID), 10)),
	}
	return sign(claims, m.secrets.Clinic)
}

// Clinic Auth middleware
func (m *TokenManager) ClinicAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := &models.ClinicClaims{}
		if !m.authenticate(c, claims, &claims.RegisteredClaims, m.secrets.Clinic) {
			return
		}
		c.Set(CenterIDKey, claims.CenterID)
		c.Next()
	}
}

// CenterID is the clinical center of an authenticated merchant request.
func CenterID(c *gin.Context) uint {
	return c.GetUint(CenterIDKey)
}
