package models

import "time"

// DoctorAvailability is one shift a doctor works on a given date.
// MaxPatients of zero means the shift has no booking cap.
type DoctorAvailability struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	DoctorID    uint      `json:"doctorId" gorm:"uniqueIndex:idx_doctor_date_shift;not null"`
	Date        time.Time `json:"date" gorm:"type:date;uniqueIndex:idx_doctor_date_shift;not null"`
	ShiftTime   string    `json:"shiftTime" gorm:"uniqueIndex:idx_doctor_date_shift;not null"`
	MaxPatients int       `json:"maxPatients"`
	CreatedAt   time.Time `json:"createdAt"`
}
