// Package payment raises and verifies Razorpay orders.
package payment

import (
	"fmt"

	"github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"
)

type Razorpay struct {
	client    *razorpay.Client
	keyID     string
	keySecret string
}

func NewRazorpay(keyID, keySecret string) *Razorpay {
	return &Razorpay{
		client:    razorpay.NewClient(keyID, keySecret),
		keyID:     keyID,
		keySecret: keySecret,
	}
}

// CreateOrder creates an order and returns its Razorpay id.
func (r *Razorpay) CreateOrder(amountPaise int64, currency, receipt string) (string, error) {
	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": currency,
		"receipt":  receipt,
	}
	body, err := r.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create razorpay order: %w", err)
	}
	id, ok := body["id"].(string)
	if !ok || id == "" {
		return "", fmt.Errorf("razorpay order response has no id")
	}
	return id, nil
}

// VerifySignature checks the checkout signature returned to the client.
func (r *Razorpay) VerifySignature(orderID, paymentID, signature string) bool {
	params := map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
	}
	return utils.VerifyPaymentSignature(params, signature, r.keySecret)
}

func (r *Razorpay) KeyID() string {
	return r.keyID
}
