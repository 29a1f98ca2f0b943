package models

import "time"

// Payment records a Razorpay order raised for an appointment.
type Payment struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	AppointmentID     uint      `json:"appointmentId" gorm:"index;not null"`
	RazorpayOrderID   string    `json:"razorpayOrderId" gorm:"uniqueIndex;not null"`
	RazorpayPaymentID string    `json:"razorpayPaymentId"`
	Amount            float64   `json:"amount" gorm:"not null"`
	Currency          string    `json:"currency" gorm:"not null;default:INR"`
	Status            string    `json:"status" gorm:"not null"`
	CreatedAt         time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt         time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

const (
	PaymentOrderCreated = "created"
	PaymentOrderPaid    = "paid"
)
