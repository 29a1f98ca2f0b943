package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCancelled = "cancelled"
	AppointmentCompleted = "completed"

	SourceOnline = "online"
	SourceWalkIn = "walk-in"

	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
)

type Appointment struct {
	gorm.Model
	ReferenceNumber  string    `json:"referenceNumber" gorm:"uniqueIndex;not null"`
	ClinicalCenterID uint      `json:"clinicalCenterId" gorm:"index;not null"`
	DoctorID         uint      `json:"doctorId" gorm:"index:idx_doctor_day;not null"`
	DoctorName       string    `json:"doctorName"`
	ClinicName       string    `json:"clinicName"`
	PatientName      string    `json:"patientName" gorm:"not null"`
	PatientGender    string    `json:"patientGender"`
	PatientAge       int       `json:"patientAge"`
	PatientContact   string    `json:"patientContact" gorm:"size:10;index;not null"`
	PatientEmail     string    `json:"patientEmail"`
	Date             time.Time `json:"date" gorm:"type:date;index:idx_doctor_day;not null"`
	ShiftTime        string    `json:"shiftTime" gorm:"index:idx_doctor_day;not null"`
	QueueNumber      int       `json:"queueNumber"`
	Status           string    `json:"status" gorm:"not null;default:pending"`
	Source           string    `json:"source" gorm:"not null;default:online"`
	ConsultationFee  float64   `json:"consultationFee"`
	DrugFee          float64   `json:"drugFee"`
	PaymentStatus    string    `json:"paymentStatus" gorm:"not null;default:unpaid"`
	PaymentOrderID   string    `json:"paymentOrderId,omitempty"`
	Notes            string    `json:"notes"`
	ReminderSent     bool      `json:"-"`
}

// TotalFee is the amount billed for the visit.
func (a Appointment) TotalFee() float64 {
	return a.ConsultationFee + a.DrugFee
}

// IsActive reports whether the appointment still holds its place in the queue.
func (a Appointment) IsActive() bool {
	return a.Status == AppointmentPending || a.Status == AppointmentConfirmed
}
