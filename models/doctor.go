package models

import (
	"gorm.io/gorm"
)

const (
	DoctorAvailable    = "Available"
	DoctorNotAvailable = "Not Available"
)

type Doctor struct {
	gorm.Model
	ClinicalCenterID uint                 `json:"clinicalCenterId" gorm:"index;not null"`
	Name             string               `json:"name" gorm:"not null"`
	Gender           string               `json:"gender" gorm:"not null"`
	Photo            string               `json:"photo"`
	Phone            string               `json:"phone" gorm:"size:10;not null"`
	Email            string               `json:"email"`
	City             string               `json:"city" gorm:"index"`
	ClinicName       string               `json:"clinicName"`
	Specialization   string               `json:"specialization"`
	ShiftTime1       string               `json:"shiftTime1"`
	ShiftTime2       string               `json:"shiftTime2"`
	ShiftTime3       string               `json:"shiftTime3"`
	ConsultationFee  float64              `json:"consultationFee"`
	Status           string               `json:"status" gorm:"not null;default:Available"`
	Availabilities   []DoctorAvailability `json:"availabilities,omitempty"`
}

// ShiftTimes returns the non-empty shift strings in slot order.
func (d Doctor) ShiftTimes() []string {
	var shifts []string
	for _, s := range []string{d.ShiftTime1, d.ShiftTime2, d.ShiftTime3} {
		if s != "" {
			shifts = append(shifts, s)
		}
	}
	return shifts
}

// SetShiftTimes fills the three shift slots, clearing unused ones.
func (d *Doctor) SetShiftTimes(shifts []string) {
	slots := [3]string{}
	copy(slots[:], shifts)
	d.ShiftTime1, d.ShiftTime2, d.ShiftTime3 = slots[0], slots[1], slots[2]
}

// HasShift reports whether shift is one of the doctor's shift times.
func (d Doctor) HasShift(shift string) bool {
	for _, s := range d.ShiftTimes() {
		if s == shift {
			return true
		}
	}
	return false
}
