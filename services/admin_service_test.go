package services

import (
	"context"
	"testing"
	"time"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/models"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type adminFixture struct {
	admins       *mockAdminRepo
	centers      *mockCenterRepo
	appointments *mockAppointmentRepo
	queries      *mockQueryRepo
	svc          *AdminService
}

func newAdminFixture() *adminFixture {
	f := &adminFixture{
		admins:       new(mockAdminRepo),
		centers:      new(mockCenterRepo),
		appointments: new(mockAppointmentRepo),
		queries:      new(mockQueryRepo),
	}
	f.svc = NewAdminService(f.admins, f.centers, f.appointments, f.queries, stubTokens{}, fixedClock, zap.NewNop())
	return f
}

func TestSeedCreatesFirstAdmin(t *testing.T) {
	f := newAdminFixture()
	f.admins.On("Count", mock.Anything).Return(int64(0), nil)
	f.admins.On("Create", mock.Anything, mock.MatchedBy(func(a *models.Admin) bool {
		return a.Email == "root@clinic.in" && checkPassword(a.Password, "admin-pass")
	})).Return(nil)

	require.NoError(t, f.svc.Seed(context.Background(), " Root@Clinic.in ", "admin-pass"))
	f.admins.AssertExpectations(t)
}

func TestSeedSkipsWhenAdminsExist(t *testing.T) {
	f := newAdminFixture()
	f.admins.On("Count", mock.Anything).Return(int64(1), nil)

	require.NoError(t, f.svc.Seed(context.Background(), "root@clinic.in", "admin-pass"))
	f.admins.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminLogin(t *testing.T) {
	f := newAdminFixture()
	hashed, err := hashPassword("admin-pass")
	require.NoError(t, err)
	admin := &models.Admin{Email: "root@clinic.in", Password: hashed}
	f.admins.On("FindByEmail", mock.Anything, "root@clinic.in").Return(admin, nil)
	f.admins.On("FindByEmail", mock.Anything, "who@clinic.in").Return(nil, repository.ErrNotFound)

	token, _, err := f.svc.Login(context.Background(), LoginInput{Email: "root@clinic.in", Password: "admin-pass"})
	require.NoError(t, err)
	assert.Equal(t, "admin-token", token)

	_, _, err = f.svc.Login(context.Background(), LoginInput{Email: "root@clinic.in", Password: "wrong"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, _, err = f.svc.Login(context.Background(), LoginInput{Email: "who@clinic.in", Password: "admin-pass"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestUpdateAdminProfile(t *testing.T) {
	f := newAdminFixture()
	admin := &models.Admin{Name: "Root", Email: "root@clinic.in"}
	admin.ID = 1
	other := &models.Admin{Email: "ops@clinic.in"}
	other.ID = 2
	f.admins.On("FindByID", mock.Anything, uint(1)).Return(admin, nil)
	f.admins.On("FindByEmail", mock.Anything, "ops@clinic.in").Return(other, nil)
	f.admins.On("Update", mock.Anything, admin).Return(nil)

	_, err := f.svc.UpdateProfile(context.Background(), 1, AdminProfileInput{Name: "Root", Email: "ops@clinic.in"})
	assert.ErrorIs(t, err, ErrConflict)

	updated, err := f.svc.UpdateProfile(context.Background(), 1, AdminProfileInput{Name: " Site   Admin ", Email: "root@clinic.in", Phone: "98765 43210"})
	require.NoError(t, err)
	assert.Equal(t, "Site Admin", updated.Name)
	assert.Equal(t, "9876543210", updated.Phone)
}

func TestAdminDashboard(t *testing.T) {
	f := newAdminFixture()
	f.centers.On("CountByStatus", mock.Anything).Return(map[string]int64{"Active": 4, "On Hold": 1}, nil)
	f.centers.On("CountPendingApproval", mock.Anything).Return(int64(2), nil)
	f.appointments.On("CountByStatus", mock.Anything, uint(0), (*time.Time)(nil)).Return(map[string]int64{"pending": 9}, nil)
	f.queries.On("CountByStatus", mock.Anything).Return(map[string]int64{"pending": 3}, nil)

	dashboard, err := f.svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), dashboard.Centers["Active"])
	assert.Equal(t, int64(2), dashboard.PendingApprovals)
	assert.Equal(t, int64(9), dashboard.Appointments["pending"])
	assert.Equal(t, int64(3), dashboard.Queries["pending"])
}
