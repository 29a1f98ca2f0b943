package controllers

import (
	"context"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/models"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/repository"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/services"
	"github.com/gin-gonic/gin"
)

// The controllers depend on these use cases; the services package implements them.

type CenterService interface {
	Register(ctx context.Context, in services.RegisterCenterInput) (*models.ClinicalCenter, error)
	Login(ctx context.Context, in services.LoginInput) (string, *models.ClinicalCenter, error)
	Get(ctx context.Context, id uint) (*models.ClinicalCenter, error)
	List(ctx context.Context, filter repository.CenterFilter) ([]models.ClinicalCenter, error)
	Update(ctx context.Context, id uint, in services.CenterInput) (*models.ClinicalCenter, error)
	SetStatus(ctx context.Context, id uint, status string) (*models.ClinicalCenter, error)
	SetApproval(ctx context.Context, id uint, approved bool) (*models.ClinicalCenter, error)
	Delete(ctx context.Context, id uint) error
	UpdateOwnProfile(ctx context.Context, id uint, in services.ClinicProfileInput) (*models.ClinicalCenter, error)
	ChangePassword(ctx context.Context, id uint, in services.ChangePasswordInput) error
	Cities(ctx context.Context) ([]string, error)
	RegisterDevice(ctx context.Context, centerID uint, token string) error
}

type DoctorService interface {
	Create(ctx context.Context, centerID uint, in services.DoctorInput) (*models.Doctor, error)
	List(ctx context.Context, centerID uint, filter repository.DoctorFilter) ([]models.Doctor, error)
	Get(ctx context.Context, centerID, id uint) (*models.Doctor, error)
	Update(ctx context.Context, centerID, id uint, in services.DoctorInput) (*models.Doctor, error)
	SetStatus(ctx context.Context, centerID, id uint, status string) (*models.Doctor, error)
	SetPhoto(ctx context.Context, centerID, id uint, photo string) (*models.Doctor, string, error)
	Delete(ctx context.Context, centerID, id uint) error
	SetAvailability(ctx context.Context, centerID, id uint, in services.AvailabilityInput) ([]models.DoctorAvailability, error)
	ListAvailability(ctx context.Context, centerID, id uint, from, to string) ([]models.DoctorAvailability, error)
	DeleteAvailability(ctx context.Context, centerID, id, entryID uint) error
	PublicSearch(ctx context.Context, search repository.DoctorSearch) ([]models.Doctor, error)
	PublicGet(ctx context.Context, id uint) (*models.Doctor, error)
	PublicAvailability(ctx context.Context, id uint, date string) ([]services.ShiftAvailability, error)
}

type AppointmentService interface {
	Book(ctx context.Context, in services.BookingInput) (*services.Booking, error)
	WalkIn(ctx context.Context, centerID uint, in services.WalkInInput) (*models.Appointment, error)
	ListForCenter(ctx context.Context, centerID uint, q services.AppointmentQuery) ([]models.Appointment, error)
	History(ctx context.Context, centerID uint, q services.AppointmentQuery) ([]models.Appointment, error)
	ListWalkIns(ctx context.Context, centerID uint, q services.AppointmentQuery) ([]models.Appointment, error)
	UpdateStatus(ctx context.Context, centerID, id uint, status string) (*models.Appointment, error)
	UpdateFees(ctx context.Context, centerID, id uint, in services.FeesInput) (*models.Appointment, error)
	CompleteWalkIn(ctx context.Context, centerID, id uint, in services.FeesInput) (*models.Appointment, error)
	ListForPatient(ctx context.Context, phone string) ([]models.Appointment, error)
	CancelByPatient(ctx context.Context, phone string, id uint) (*models.Appointment, error)
	Receipt(ctx context.Context, reference string) ([]byte, *models.Appointment, error)
	Export(ctx context.Context, centerID uint, from, to string) ([]byte, error)
	Dashboard(ctx context.Context, centerID uint) (*services.ClinicDashboard, error)
	CreatePaymentOrder(ctx context.Context, phone string, id uint) (*services.PaymentOrder, error)
	VerifyPayment(ctx context.Context, phone string, id uint, in services.VerifyPaymentInput) (*models.Appointment, error)
}

type QueryService interface {
	CreateFromUser(ctx context.Context, in services.UserQueryInput) (*services.QueryView, error)
	CreateFromClinic(ctx context.Context, centerID uint, in services.ClinicQueryInput) (*services.QueryView, error)
	ListForClinic(ctx context.Context, centerID uint, status string) ([]services.QueryView, error)
	List(ctx context.Context, filter repository.QueryFilter) ([]services.QueryView, error)
	UpdateStatus(ctx context.Context, senderType string, id uint, in services.QueryStatusInput) (*services.QueryView, error)
	Reply(ctx context.Context, senderType string, id uint, adminName string, in services.QueryReplyInput) (*services.QueryView, error)
}

type AdminService interface {
	Login(ctx context.Context, in services.LoginInput) (string, *models.Admin, error)
	Profile(ctx context.Context, id uint) (*models.Admin, error)
	UpdateProfile(ctx context.Context, id uint, in services.AdminProfileInput) (*models.Admin, error)
	ChangePassword(ctx context.Context, id uint, in services.ChangePasswordInput) error
	SetProfileImage(ctx context.Context, id uint, path string) (*models.Admin, string, error)
	Dashboard(ctx context.Context) (*services.AdminDashboard, error)
}

type PatientService interface {
	SendOTP(ctx context.Context, in services.SendOTPInput) error
	VerifyOTP(ctx context.Context, in services.VerifyOTPInput) (string, error)
}

// TokenRevoker ends the session of the token that authenticated the request.
type TokenRevoker interface {
	Revoke(c *gin.Context) error
}
