package repository

import (
	"testing"
	"time"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database with the doctor and appointment tables.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.Doctor{}, &models.Appointment{}))
	return db
}

func seedDoctor(t *testing.T, db *gorm.DB, centerID uint, name string) models.Doctor {
	t.Helper()
	doctor := models.Doctor{
		ClinicalCenterID: centerID,
		Name:             name,
		Gender:           "Female",
		Phone:            "9876543210",
		City:             "Kochi",
		ClinicName:       "City general",
		ShiftTime1:       "09:00 AM - 12:00 PM",
		Status:           models.DoctorAvailable,
	}
	require.NoError(t, db.Create(&doctor).Error)
	return doctor
}

var testDay = time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
