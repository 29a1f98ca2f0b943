package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const otpResendWindow = 60 * time.Second

type SendOTPInput struct {
	Phone string `json:"phone" validate:"required,phone10"`
}

type VerifyOTPInput struct {
	Phone string `json:"phone" validate:"required,phone10"`
	Otp   string `json:"otp" validate:"required,numeric,min=4,max=8"`
}

// PatientService signs patients in with a one-time code sent to their phone.
type PatientService struct {
	verifier PhoneVerifier
	cache    Cache
	tokens   TokenIssuer
	log      *zap.Logger
}

func NewPatientService(verifier PhoneVerifier, cache Cache, tokens TokenIssuer, log *zap.Logger) *PatientService {
	return &PatientService{verifier: verifier, cache: cache, tokens: tokens, log: log}
}

func (s *PatientService) SendOTP(ctx context.Context, in SendOTPInput) error {
	in.Phone = NormalizePhone(in.Phone)
	if err := validateStruct(in); err != nil {
		return err
	}

	throttleKey := "otp:throttle:" + in.Phone
	fresh, err := s.cache.SetNX(ctx, throttleKey, "1", otpResendWindow)
	if err != nil {
		return fmt.Errorf("failed to throttle otp: %w", err)
	}
	if !fresh {
		return newError(ErrTooManyRequests, "Please wait a minute before requesting another code")
	}

	if err := s.verifier.SendCode(ctx, in.Phone); err != nil {
		s.log.Error("failed to send otp", zap.String("phone", maskPhone(in.Phone)), zap.Error(err))
		// No code went out, so the patient may retry straight away.
		if err := s.cache.Del(ctx, throttleKey); err != nil {
			s.log.Warn("failed to clear otp throttle", zap.String("phone", maskPhone(in.Phone)), zap.Error(err))
		}
		return newError(ErrUnavailable, "Could not send the verification code, try again later")
	}
	return nil
}

func (s *PatientService) VerifyOTP(ctx context.Context, in VerifyOTPInput) (string, error) {
	in.Phone = NormalizePhone(in.Phone)
	if err := validateStruct(in); err != nil {
		return "", err
	}

	ok, err := s.verifier.CheckCode(ctx, in.Phone, in.Otp)
	if err != nil {
		s.log.Error("failed to check otp", zap.String("phone", maskPhone(in.Phone)), zap.Error(err))
		return "", newError(ErrUnavailable, "Could not verify the code, try again later")
	}
	if !ok {
		return "", fieldError(ErrUnauthorized, "Invalid or expired code", "otp", "Invalid or expired code")
	}

	token, err := s.tokens.IssuePatientToken(in.Phone)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}

func maskPhone(phone string) string {
	if len(phone) < 4 {
		return "****"
	}
	return "******" + phone[len(phone)-4:]
}
