package authentication

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRevocations struct {
	mu   sync.Mutex
	keys map[string]time.Duration
}

func (m *memoryRevocations) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.keys[key]
	return "1", ok, nil
}

func (m *memoryRevocations) Set(_ context.Context, key, _ string, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[key] = expiration
	return nil
}

func newManager() (*TokenManager, *memoryRevocations) {
	revoked := &memoryRevocations{keys: map[string]time.Duration{}}
	m := NewTokenManager(Secrets{Admin: "a", Clinic: "c", Patient: "p"}, time.Hour, revoked)
	return m, revoked
}

func newRouter(m *TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", m.AdminAuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": AdminID(c)})
	})
	r.GET("/clinic", m.ClinicAuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": CenterID(c)})
	})
	r.GET("/patient", m.PatientAuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"phone": PatientPhone(c)})
	})
	r.POST("/logout", m.AdminAuthMiddleware(), func(c *gin.Context) {
		if err := m.Revoke(c); err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusNoContent)
	})
	return r
}

func call(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoleTokensAreAccepted(t *testing.T) {
	m, _ := newManager()
	r := newRouter(m)

	admin := models.Admin{Email: "admin@example.com", Role: "admin"}
	admin.ID = 3
	adminToken, err := m.IssueAdminToken(admin)
	require.NoError(t, err)

	center := models.ClinicalCenter{Email: "clinic@example.com"}
	center.ID = 8
	clinicToken, err := m.IssueClinicToken(center)
	require.NoError(t, err)

	patientToken, err := m.IssuePatientToken("9876543210")
	require.NoError(t, err)

	w := call(r, http.MethodGet, "/admin", adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":3}`, w.Body.String())

	w = call(r, http.MethodGet, "/clinic", clinicToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":8}`, w.Body.String())

	w = call(r, http.MethodGet, "/patient", patientToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"phone":"9876543210"}`, w.Body.String())
}

func TestTokenOfAnotherRoleIsRejected(t *testing.T) {
	m, _ := newManager()
	r := newRouter(m)

	clinicToken, err := m.IssueClinicToken(models.ClinicalCenter{})
	require.NoError(t, err)

	w := call(r, http.MethodGet, "/admin", clinicToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"invalid token"}`, w.Body.String())
}

func TestMissingHeader(t *testing.T) {
	m, _ := newManager()
	w := call(newRouter(m), http.MethodGet, "/patient", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"missing the authorization header"}`, w.Body.String())
}

func TestExpiredToken(t *testing.T) {
	m, _ := newManager()
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := m.IssuePatientToken("9876543210")
	require.NoError(t, err)
	m.now = time.Now

	w := call(newRouter(m), http.MethodGet, "/patient", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUnexpectedSigningMethodIsRejected(t *testing.T) {
	m, _ := newManager()
	claims := &models.PatientClaims{Phone: "9876543210", RegisteredClaims: m.registered("9876543210")}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("p"))
	require.NoError(t, err)

	w := call(newRouter(m), http.MethodGet, "/patient", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	m, revoked := newManager()
	r := newRouter(m)

	token, err := m.IssueAdminToken(models.Admin{})
	require.NoError(t, err)

	w := call(r, http.MethodPost, "/logout", token)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Len(t, revoked.keys, 1)
	for _, ttl := range revoked.keys {
		assert.InDelta(t, time.Hour.Seconds(), ttl.Seconds(), 5)
	}

	w = call(r, http.MethodGet, "/admin", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"token has been revoked"}`, w.Body.String())
}
