package authentication

import (
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/models"
	"github.com/gin-gonic/gin"
)

// Patients have no account: the token names the phone they verified.
func (m *TokenManager) IssuePatientToken(phone string) (string, error) {
	claims := &models.PatientClaims{
		Phone:            phone,
		RegisteredClaims: m.registered(phone),
	}
	return sign(claims, m.secrets.Patient)
}

func (m *TokenManager) PatientAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := &models.PatientClaims{}
		if !m.authenticate(c, claims, &claims.RegisteredClaims, m.secrets.Patient) {
			return
		}
		c.Set(PatientPhoneKey, claims.Phone)
		c.Next()
	}
}

func PatientPhone(c *gin.Context) string {
	return c.GetString(PatientPhoneKey)
}
