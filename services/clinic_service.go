package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/events"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/models"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/repository"
	"go.uber.org/zap"
)

const emailTaken = "Email already registered"

type CenterInput struct {
	ClinicName   string `json:"clinicName" validate:"required,max=120"`
	City         string `json:"city" validate:"required,max=80"`
	Address      string `json:"address" validate:"required,max=255"`
	InChargeName string `json:"inChargeName" validate:"required,max=80"`
	Phone        string `json:"phone" validate:"required,phone10"`
	Email        string `json:"email" validate:"required,emailaddr,max=120"`
}

type RegisterCenterInput struct {
	CenterInput
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// ClinicProfileInput holds the fields a clinic may edit on its own profile.
type ClinicProfileInput struct {
	Address      string `json:"address" validate:"required,max=255"`
	InChargeName string `json:"inChargeName" validate:"required,max=80"`
	Phone        string `json:"phone" validate:"required,phone10"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,emailaddr"`
	Password string `json:"password" validate:"required"`
}

func (in *CenterInput) normalize() {
	in.ClinicName = SentenceCase(in.ClinicName)
	in.City = SentenceCase(in.City)
	in.Address = strings.TrimSpace(in.Address)
	in.InChargeName = SentenceCase(in.InChargeName)
	in.Phone = NormalizePhone(in.Phone)
	in.Email = NormalizeEmail(in.Email)
}

func (in *ClinicProfileInput) normalize() {
	in.Address = strings.TrimSpace(in.Address)
	in.InChargeName = SentenceCase(in.InChargeName)
	in.Phone = NormalizePhone(in.Phone)
}

type ClinicService struct {
	centers   repository.CenterRepository
	doctors   repository.DoctorRepository
	tokens    TokenIssuer
	cache     Cache
	publisher EventPublisher
	log       *zap.Logger
}

func NewClinicService(
	centers repository.CenterRepository,
	doctors repository.DoctorRepository,
	tokens TokenIssuer,
	cache Cache,
	publisher EventPublisher,
	log *zap.Logger,
) *ClinicService {
	return &ClinicService{centers: centers, doctors: doctors, tokens: tokens, cache: cache, publisher: publisher, log: log}
}

// Register creates a clinical center. New centers are active but wait for approval.
func (s *ClinicService) Register(ctx context.Context, in RegisterCenterInput) (*models.ClinicalCenter, error) {
	in.normalize()
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, in.Email, 0); err != nil {
		return nil, err
	}

	hashed, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	center := &models.ClinicalCenter{
		ClinicName:   in.ClinicName,
		City:         in.City,
		Address:      in.Address,
		InChargeName: in.InChargeName,
		Phone:        in.Phone,
		Email:        in.Email,
		Password:     hashed,
		Status:       models.CenterStatusActive,
	}
	if err := s.centers.Create(ctx, center); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fieldError(ErrConflict, emailTaken, "email", emailTaken)
		}
		return nil, fmt.Errorf("failed to create clinical center: %w", err)
	}

	s.log.Info("clinical center registered", zap.Uint("center_id", center.ID), zap.String("email", center.Email))
	return center, nil
}

func (s *ClinicService) Login(ctx context.Context, in LoginInput) (string, *models.ClinicalCenter, error) {
	in.Email = NormalizeEmail(in.Email)
	if err := validateStruct(in); err != nil {
		return "", nil, err
	}

	center, err := s.centers.FindByEmail(ctx, in.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil, newError(ErrUnauthorized, "Invalid email or password")
	}
	if err != nil {
		return "", nil, fmt.Errorf("failed to load clinical center: %w", err)
	}
	if !checkPassword(center.Password, in.Password) {
		return "", nil, newError(ErrUnauthorized, "Invalid email or password")
	}
	if !center.Approved {
		return "", nil, newError(ErrForbidden, "Clinical center is awaiting approval")
	}
	if center.Status != models.CenterStatusActive {
		return "", nil, newError(ErrForbidden, "Clinical center is "+strings.ToLower(center.Status))
	}

	token, err := s.tokens.IssueClinicToken(*center)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return token, center, nil
}

func (s *ClinicService) Get(ctx context.Context, id uint) (*models.ClinicalCenter, error) {
	center, err := s.centers.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newError(ErrNotFound, "Clinical center not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load clinical center: %w", err)
	}
	return center, nil
}

func (s *ClinicService) List(ctx context.Context, filter repository.CenterFilter) ([]models.ClinicalCenter, error) {
	if filter.Status != "" && !validCenterStatus(filter.Status) {
		return nil, fieldError(ErrValidation, "Invalid status filter", "status", "Unknown status")
	}
	centers, err := s.centers.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list clinical centers: %w", err)
	}
	return centers, nil
}

// Update is the admin edit of a center's details.
func (s *ClinicService) Update(ctx context.Context, id uint, in CenterInput) (*models.ClinicalCenter, error) {
	in.normalize()
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	center, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Email != center.Email {
		if err := s.ensureEmailFree(ctx, in.Email, center.ID); err != nil {
			return nil, err
		}
	}

	nameChanged := center.ClinicName != in.ClinicName || center.City != in.City
	center.ClinicName = in.ClinicName
	center.City = in.City
	center.Address = in.Address
	center.InChargeName = in.InChargeName
	center.Phone = in.Phone
	center.Email = in.Email

	if err := s.save(ctx, center); err != nil {
		return nil, err
	}
	if nameChanged {
		if err := s.syncDoctors(ctx, center); err != nil {
			return nil, err
		}
		bumpSearchVersion(ctx, s.cache, s.log)
	}
	return center, nil
}

// syncDoctors copies the center's name and city onto its doctors and reindexes them.
func (s *ClinicService) syncDoctors(ctx context.Context, center *models.ClinicalCenter) error {
	doctors, err := s.doctors.SyncCenter(ctx, center.ID, center.ClinicName, center.City)
	if err != nil {
		return fmt.Errorf("failed to update doctors of clinical center: %w", err)
	}
	for _, doctor := range doctors {
		if err := s.publisher.Publish(ctx, events.NewDoctorEvent(events.DoctorUpserted, doctor)); err != nil {
			s.log.Warn("failed to publish doctor event", zap.Uint("doctor_id", doctor.ID), zap.Error(err))
		}
	}
	s.log.Info("clinical center doctors updated", zap.Uint("center_id", center.ID), zap.Int("doctors", len(doctors)))
	return nil
}

func (s *ClinicService) SetStatus(ctx context.Context, id uint, status string) (*models.ClinicalCenter, error) {
	if !validCenterStatus(status) {
		return nil, fieldError(ErrValidation, "Invalid status", "status", "Must be one of: Active, On Hold, Deactivated")
	}
	center, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	center.Status = status
	if err := s.save(ctx, center); err != nil {
		return nil, err
	}
	bumpSearchVersion(ctx, s.cache, s.log)
	s.log.Info("clinical center status changed", zap.Uint("center_id", id), zap.String("status", status))
	return center, nil
}

func (s *ClinicService) SetApproval(ctx context.Context, id uint, approved bool) (*models.ClinicalCenter, error) {
	center, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	center.Approved = approved
	if err := s.save(ctx, center); err != nil {
		return nil, err
	}
	bumpSearchVersion(ctx, s.cache, s.log)
	return center, nil
}

func (s *ClinicService) Delete(ctx context.Context, id uint) error {
	err := s.centers.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return newError(ErrNotFound, "Clinical center not found")
	}
	if err != nil {
		return fmt.Errorf("failed to delete clinical center: %w", err)
	}
	bumpSearchVersion(ctx, s.cache, s.log)
	s.log.Info("clinical center deleted", zap.Uint("center_id", id))
	return nil
}

func (s *ClinicService) UpdateOwnProfile(ctx context.Context, id uint, in ClinicProfileInput) (*models.ClinicalCenter, error) {
	in.normalize()
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	center, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	center.Address = in.Address
	center.InChargeName = in.InChargeName
	center.Phone = in.Phone
	if err := s.save(ctx, center); err != nil {
		return nil, err
	}
	return center, nil
}

func (s *ClinicService) ChangePassword(ctx context.Context, id uint, in ChangePasswordInput) error {
	center, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	hashed, err := newPasswordHash(center.Password, in)
	if err != nil {
		return err
	}
	center.Password = hashed
	return s.save(ctx, center)
}

// Cities lists the cities that have at least one bookable center.
func (s *ClinicService) Cities(ctx context.Context) ([]string, error) {
	cities, err := s.centers.Cities(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	return cities, nil
}

func (s *ClinicService) RegisterDevice(ctx context.Context, centerID uint, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fieldError(ErrValidation, "Validation failed", "token", "This field is required")
	}
	err := s.centers.SaveDeviceToken(ctx, &models.DeviceToken{ClinicalCenterID: centerID, Token: token})
	if err != nil {
		return fmt.Errorf("failed to save device token: %w", err)
	}
	return nil
}

func (s *ClinicService) ensureEmailFree(ctx context.Context, email string, selfID uint) error {
	existing, err := s.centers.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("failed to check email: %w", err)
	case existing.ID != selfID:
		return fieldError(ErrConflict, emailTaken, "email", emailTaken)
	}
	return nil
}

func (s *ClinicService) save(ctx context.Context, center *models.ClinicalCenter) error {
	err := s.centers.Update(ctx, center)
	if errors.Is(err, repository.ErrDuplicate) {
		return fieldError(ErrConflict, emailTaken, "email", emailTaken)
	}
	if err != nil {
		return fmt.Errorf("failed to update clinical center: %w", err)
	}
	return nil
}

func validCenterStatus(status string) bool {
	switch status {
	case models.CenterStatusActive, models.CenterStatusOnHold, models.CenterStatusDeactivated:
		return true
	}
	return false
}
