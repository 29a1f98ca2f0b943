package documents

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAppointment() models.Appointment {
	return models.Appointment{
		ReferenceNumber: "APT-20261020-1A2B3C4D",
		DoctorName:      "Asha rao",
		ClinicName:      "City clinic",
		PatientName:     "Ravi kumar",
		PatientGender:   "Male",
		PatientAge:      34,
		PatientContact:  "9876543210",
		Date:            time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		ShiftTime:       "9am to 12pm",
		QueueNumber:     7,
		Status:          models.AppointmentPending,
		ConsultationFee: 300,
		PaymentStatus:   models.PaymentUnpaid,
	}
}

func TestQRPayload(t *testing.T) {
	var content QRContent
	require.NoError(t, json.Unmarshal([]byte(QRPayload(sampleAppointment())), &content))

	assert.Equal(t, "APT-20261020-1A2B3C4D", content.Reference)
	assert.Equal(t, 7, content.QueueNumber)
	assert.Equal(t, "2026-10-20", content.Date)
	assert.Equal(t, "9am to 12pm", content.ShiftTime)
}

func TestReceiptIsPDF(t *testing.T) {
	out, err := Receipt(sampleAppointment())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestAppointmentsWorkbook(t *testing.T) {
	out, err := AppointmentsWorkbook([]models.Appointment{sampleAppointment()})
	require.NoError(t, err)
	// xlsx files are zip archives
	assert.True(t, bytes.HasPrefix(out, []byte("PK")))
}

func TestCell(t *testing.T) {
	assert.Equal(t, "A1", cell(0, 1))
	assert.Equal(t, "O2", cell(14, 2))
	assert.Equal(t, "Z3", cell(25, 3))
	assert.Equal(t, "AA4", cell(26, 4))
}
