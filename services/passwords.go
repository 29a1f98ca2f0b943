package services

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ChangePasswordInput is shared by the admin and clinic password forms.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"omitempty,eqfield=NewPassword"`
}

// newPasswordHash checks the current password and returns the hash of the new one.
func newPasswordHash(currentHash string, in ChangePasswordInput) (string, error) {
	if err := validateStruct(in); err != nil {
		return "", err
	}
	if !checkPassword(currentHash, in.CurrentPassword) {
		return "", fieldError(ErrValidation, "Current password is incorrect", "currentPassword", "Current password is incorrect")
	}
	if in.NewPassword == in.CurrentPassword {
		return "", fieldError(ErrValidation, "New password must differ from the current one", "newPassword", "New password must differ from the current one")
	}
	return hashPassword(in.NewPassword)
}
