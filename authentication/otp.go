package authentication

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/twilio/twilio-go"
	"github.com/twilio/twilio-go/client"
	verify "github.com/twilio/twilio-go/rest/verify/v2"
)

const countryCode = "+91"

// TwilioVerifier sends and checks SMS codes through Twilio Verify.
type TwilioVerifier struct {
	client    *twilio.RestClient
	serviceID string
}

func NewTwilioVerifier(accountSID, authToken, serviceID string) *TwilioVerifier {
	return &TwilioVerifier{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		serviceID: serviceID,
	}
}

func (v *TwilioVerifier) SendCode(ctx context.Context, phone string) error {
	params := &verify.CreateVerificationParams{}
	params.SetTo(countryCode + phone)
	params.SetChannel("sms")

	if _, err := v.client.VerifyV2.CreateVerification(v.serviceID, params); err != nil {
		return fmt.Errorf("failed to create verification: %w", err)
	}
	return nil
}

// CheckCode reports whether code is the pending code for phone.
// An expired or already used verification is a wrong code, not an error.
func (v *TwilioVerifier) CheckCode(ctx context.Context, phone, code string) (bool, error) {
	params := &verify.CreateVerificationCheckParams{}
	params.SetTo(countryCode + phone)
	params.SetCode(code)

	response, err := v.client.VerifyV2.CreateVerificationCheck(v.serviceID, params)
	if err != nil {
		var restErr *client.TwilioRestError
		if errors.As(err, &restErr) && restErr.Status == http.StatusNotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to check verification: %w", err)
	}
	return response.Status != nil && *response.Status == "approved", nil
}
