package models

import "github.com/golang-jwt/jwt/v5"

// Patients are identified by the phone number they verified with an OTP.
type PatientClaims struct {
	Phone string `json:"phone"`
	jwt.RegisteredClaims
}
