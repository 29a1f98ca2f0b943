package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// Admin is a back-office user and their profile.
type Admin struct {
	gorm.Model
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	Phone        string    `json:"phone"`
	Role         string    `json:"role" gorm:"not null;default:admin"`
	JoinDate     time.Time `json:"joinDate"`
	ProfileImage string    `json:"profileImage"`
	Password     string    `json:"-" gorm:"not null"`
}

type AdminClaims struct {
	AdminID uint   `json:"adminId"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

type ClinicClaims struct {
	CenterID uint   `json:"centerId"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}
