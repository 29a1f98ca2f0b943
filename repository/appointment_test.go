package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type booker struct {
	repo   AppointmentRepository
	doctor models.Doctor
	seq    int
}

func (b *booker) book(contact string, capacity int) (*models.Appointment, error) {
	b.seq++
	appt := &models.Appointment{
		ReferenceNumber:  fmt.Sprintf("APT-20261017-%04d", b.seq),
		ClinicalCenterID: b.doctor.ClinicalCenterID,
		DoctorID:         b.doctor.ID,
		DoctorName:       b.doctor.Name,
		PatientName:      "Patient " + contact,
		PatientContact:   contact,
		Date:             testDay,
		ShiftTime:        b.doctor.ShiftTime1,
		Status:           models.AppointmentPending,
		Source:           models.SourceOnline,
		PaymentStatus:    models.PaymentUnpaid,
	}
	return appt, b.repo.Book(context.Background(), appt, capacity)
}

func newBooker(t *testing.T) (*booker, *gorm.DB) {
	db := newTestDB(t)
	doctor := seedDoctor(t, db, 1, "Dr. Asha")
	return &booker{repo: NewAppointmentRepository(db), doctor: doctor}, db
}

func TestBookNumbersQueueAndEnforcesCapacity(t *testing.T) {
	b, db := newBooker(t)

	a1, err := b.book("9000000001", 2)
	require.NoError(t, err)
	assert.Equal(t, 1, a1.QueueNumber)

	_, err = b.book("9000000001", 2)
	assert.ErrorIs(t, err, ErrAlreadyBooked)

	a3, err := b.book("9000000003", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, a3.QueueNumber)

	_, err = b.book("9000000004", 2)
	assert.ErrorIs(t, err, ErrFullyBooked)

	// Cancelling frees a place but its queue number stays taken.
	require.NoError(t, db.Model(a1).Update("status", models.AppointmentCancelled).Error)
	a5, err := b.book("9000000005", 2)
	require.NoError(t, err)
	assert.Equal(t, 3, a5.QueueNumber)

	// The cancelled patient may book again.
	_, err = b.book("9000000001", 3)
	require.NoError(t, err)

	var stored int64
	require.NoError(t, db.Model(&models.Appointment{}).Count(&stored).Error)
	assert.Equal(t, int64(4), stored)
}

func TestBookZeroCapacityIsUnlimited(t *testing.T) {
	b, _ := newBooker(t)

	for i := 1; i <= 5; i++ {
		appt, err := b.book(fmt.Sprintf("90000000%02d", i), 0)
		require.NoError(t, err)
		assert.Equal(t, i, appt.QueueNumber)
	}
}

func TestBookSkipsNumbersOfDeletedAppointments(t *testing.T) {
	b, db := newBooker(t)

	a1, err := b.book("9000000001", 0)
	require.NoError(t, err)
	a2, err := b.book("9000000002", 0)
	require.NoError(t, err)
	require.NoError(t, db.Delete(a2).Error)

	a3, err := b.book("9000000003", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, a1.QueueNumber)
	assert.Equal(t, 3, a3.QueueNumber)
}

func TestBookQueuesAreScopedToShift(t *testing.T) {
	b, db := newBooker(t)
	other := seedDoctor(t, db, 1, "Dr. Ravi")

	_, err := b.book("9000000001", 1)
	require.NoError(t, err)

	// A different doctor has its own queue and capacity.
	b.doctor = other
	appt, err := b.book("9000000001", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, appt.QueueNumber)
}

func TestBookUnknownDoctor(t *testing.T) {
	b, _ := newBooker(t)
	b.doctor.ID = 99

	_, err := b.book("9000000001", 0)
	assert.ErrorIs(t, err, ErrNotFound)
}
