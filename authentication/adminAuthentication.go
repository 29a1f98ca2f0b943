package authentication

import (
	"strconv"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/models"
	"github.com/gin-gonic/gin"
)

func (m *TokenManager) IssueAdminToken(admin models.Admin) (string, error) {
	claims := &models.AdminClaims{
		AdminID:          admin.ID,
		Email:            admin.Email,
		Role:             admin.Role,
		RegisteredClaims: m.registered(strconv.FormatUint(uint64(admin.ID), 10)),
	}
	return sign(claims, m.secrets.Admin)
}

// Admin Auth middleware
func (m *TokenManager) AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := &models.AdminClaims{}
		if !m.authenticate(c, claims, &claims.RegisteredClaims, m.secrets.Admin) {
			return
		}
		c.Set(AdminIDKey, claims.AdminID)
		c.Next()
	}
}

func AdminID(c *gin.Context) uint {
	return c.GetUint(AdminIDKey)
}
