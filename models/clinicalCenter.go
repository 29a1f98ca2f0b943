package models

import (
	"gorm.io/gorm"
)

// Clinical center statuses as shown in the admin back-office.
const (
	CenterStatusActive      = "Active"
	CenterStatusOnHold      = "On Hold"
	CenterStatusDeactivated = "Deactivated"
)

// ClinicalCenter is a clinic tenant (merchant) of the platform.
type ClinicalCenter struct {
	gorm.Model
	ClinicName   string   `json:"clinicName" gorm:"not null"`
	City         string   `json:"city" gorm:"not null;index"`
	Address      string   `json:"address" gorm:"not null"`
	InChargeName string   `json:"inChargeName" gorm:"not null"`
	Phone        string   `json:"phone" gorm:"size:10;not null"`
	Email        string   `json:"email" gorm:"uniqueIndex;not null"`
	Password     string   `json:"-" gorm:"not null"`
	Status       string   `json:"status" gorm:"not null;default:Active"`
	Approved     bool     `json:"approved"`
	Doctors      []Doctor `json:"doctors,omitempty" gorm:"foreignKey:ClinicalCenterID"`
}

// CanOperate reports whether the center may log in and accept bookings.
func (c ClinicalCenter) CanOperate() bool {
	return c.Approved && c.Status == CenterStatusActive
}

// DeviceToken is a push token registered by clinic staff.
type DeviceToken struct {
	gorm.Model
	ClinicalCenterID uint   `json:"clinicalCenterId" gorm:"index;not null"`
	Token            string `json:"token" gorm:"uniqueIndex;not null"`
}
