package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(secret, payload string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	r := NewRazorpay("rzp_test_key", "shh")

	good := sign("shh", "order_1|pay_1")
	assert.True(t, r.VerifySignature("order_1", "pay_1", good))
	assert.False(t, r.VerifySignature("order_1", "pay_2", good))
	assert.False(t, r.VerifySignature("order_1", "pay_1", sign("other", "order_1|pay_1")))
}

func TestKeyID(t *testing.T) {
	assert.Equal(t, "rzp_test_key", NewRazorpay("rzp_test_key", "shh").KeyID())
}
