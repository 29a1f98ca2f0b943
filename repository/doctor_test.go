package repository

import (
	"context"
	"testing"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncCenterRewritesOnlyThatCentersDoctors(t *testing.T) {
	db := newTestDB(t)
	repo := NewDoctorRepository(db)
	asha := seedDoctor(t, db, 1, "Dr. Asha")
	ravi := seedDoctor(t, db, 1, "Dr. Ravi")
	other := seedDoctor(t, db, 2, "Dr. Meera")

	updated, err := repo.SyncCenter(context.Background(), 1, "Lakeside clinic", "Thrissur")
	require.NoError(t, err)
	require.Len(t, updated, 2)
	assert.Equal(t, asha.ID, updated[0].ID)
	assert.Equal(t, ravi.ID, updated[1].ID)
	for _, d := range updated {
		assert.Equal(t, "Lakeside clinic", d.ClinicName)
		assert.Equal(t, "Thrissur", d.City)
	}

	var untouched models.Doctor
	require.NoError(t, db.First(&untouched, other.ID).Error)
	assert.Equal(t, "City general", untouched.ClinicName)
	assert.Equal(t, "Kochi", untouched.City)
}
