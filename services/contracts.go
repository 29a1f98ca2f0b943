package services

import (
	"context"
	"time"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/events"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/models"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/repository"
)

const dateLayout = "2006-01-02"

// Cache is the subset of redis the services rely on.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	SetNX(ctx context.Context, key string, value string, expiration time.Duration) (bool, error)
	Incr(ctx context.Context, key string) (int64, error)
	Del(ctx context.Context, key string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Mailer interface {
	Send(to, subject, body string, attachments ...Attachment) error
}

// Attachment is an in-memory file sent along with an email.
type Attachment struct {
	Name    string
	Content []byte
}

// DoctorSearcher returns ids of doctors matching a public search, best match first.
type DoctorSearcher interface {
	SearchDoctors(ctx context.Context, search repository.DoctorSearch) ([]uint, error)
}

type PhoneVerifier interface {
	SendCode(ctx context.Context, phone string) error
	CheckCode(ctx context.Context, phone, code string) (bool, error)
}

type PaymentGateway interface {
	CreateOrder(amountPaise int64, currency, receipt string) (string, error)
	VerifySignature(orderID, paymentID, signature string) bool
	KeyID() string
}

type Clock func() time.Time

// dateOnly truncates t to midnight in its own location.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// parseDate reads a YYYY-MM-DD date in the clock's location.
func parseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, loc)
}

// TokenIssuer signs the bearer tokens handed out at login.
type TokenIssuer interface {
	IssueAdminToken(admin models.Admin) (string, error)
	IssueClinicToken(center models.ClinicalCenter) (string, error)
	IssuePatientToken(phone string) (string, error)
}
