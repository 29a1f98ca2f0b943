package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/models"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/repository"
	"go.uber.org/zap"
)

type AdminProfileInput struct {
	Name  string `json:"name" validate:"required,max=80"`
	Email string `json:"email" validate:"required,emailaddr,max=120"`
	Phone string `json:"phone" validate:"omitempty,phone10"`
}

type AdminDashboard struct {
	Centers          map[string]int64 `json:"centers"`
	PendingApprovals int64            `json:"pendingApprovals"`
	Appointments     map[string]int64 `json:"appointments"`
	Queries          map[string]int64 `json:"queries"`
}

type AdminService struct {
	admins       repository.AdminRepository
	centers      repository.CenterRepository
	appointments repository.AppointmentRepository
	queries      repository.QueryRepository
	tokens       TokenIssuer
	now          Clock
	log          *zap.Logger
}

func NewAdminService(
	admins repository.AdminRepository,
	centers repository.CenterRepository,
	appointments repository.AppointmentRepository,
	queries repository.QueryRepository,
	tokens TokenIssuer,
	now Clock,
	log *zap.Logger,
) *AdminService {
	return &AdminService{
		admins:       admins,
		centers:      centers,
		appointments: appointments,
		queries:      queries,
		tokens:       tokens,
		now:          now,
		log:          log,
	}
}

// Seed creates the first admin account when none exists yet.
func (s *AdminService) Seed(ctx context.Context, email, password string) error {
	count, err := s.admins.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count admins: %w", err)
	}
	if count > 0 {
		return nil
	}
	email = NormalizeEmail(email)
	if !IsValidEmail(email) || len(password) < 8 {
		s.log.Warn("no admin account exists and ADMIN_EMAIL/ADMIN_PASSWORD are not usable")
		return nil
	}
	hashed, err := hashPassword(password)
	if err != nil {
		return err
	}
	admin := &models.Admin{
		Name:     "Administrator",
		Email:    email,
		Role:     "admin",
		JoinDate: s.now(),
		Password: hashed,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	s.log.Info("seeded admin account", zap.String("email", email))
	return nil
}

func (s *AdminService) Login(ctx context.Context, in LoginInput) (string, *models.Admin, error) {
	in.Email = NormalizeEmail(in.Email)
	if err := validateStruct(in); err != nil {
		return "", nil, err
	}
	admin, err := s.admins.FindByEmail(ctx, in.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil, newError(ErrUnauthorized, "Invalid email or password")
	}
	if err != nil {
		return "", nil, fmt.Errorf("failed to load admin: %w", err)
	}
	if !checkPassword(admin.Password, in.Password) {
		return "", nil, newError(ErrUnauthorized, "Invalid email or password")
	}
	token, err := s.tokens.IssueAdminToken(*admin)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return token, admin, nil
}

func (s *AdminService) Profile(ctx context.Context, id uint) (*models.Admin, error) {
	admin, err := s.admins.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newError(ErrNotFound, "Admin not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load admin: %w", err)
	}
	return admin, nil
}

func (s *AdminService) UpdateProfile(ctx context.Context, id uint, in AdminProfileInput) (*models.Admin, error) {
	in.Name = strings.Join(strings.Fields(in.Name), " ")
	in.Email = NormalizeEmail(in.Email)
	in.Phone = NormalizePhone(in.Phone)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	admin, err := s.Profile(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Email != admin.Email {
		other, err := s.admins.FindByEmail(ctx, in.Email)
		if err == nil && other.ID != admin.ID {
			return nil, fieldError(ErrConflict, emailTaken, "email", emailTaken)
		}
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
	}
	admin.Name = in.Name
	admin.Email = in.Email
	admin.Phone = in.Phone
	if err := s.save(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *AdminService) ChangePassword(ctx context.Context, id uint, in ChangePasswordInput) error {
	admin, err := s.Profile(ctx, id)
	if err != nil {
		return err
	}
	hashed, err := newPasswordHash(admin.Password, in)
	if err != nil {
		return err
	}
	admin.Password = hashed
	return s.save(ctx, admin)
}

// SetProfileImage stores the public path of a new image and returns the previous one.
func (s *AdminService) SetProfileImage(ctx context.Context, id uint, path string) (*models.Admin, string, error) {
	admin, err := s.Profile(ctx, id)
	if err != nil {
		return nil, "", err
	}
	previous := admin.ProfileImage
	admin.ProfileImage = path
	if err := s.save(ctx, admin); err != nil {
		return nil, "", err
	}
	return admin, previous, nil
}

func (s *AdminService) Dashboard(ctx context.Context) (*AdminDashboard, error) {
	centers, err := s.centers.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count centers: %w", err)
	}
	pending, err := s.centers.CountPendingApproval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending approvals: %w", err)
	}
	appointments, err := s.appointments.CountByStatus(ctx, 0, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count appointments: %w", err)
	}
	queries, err := s.queries.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count queries: %w", err)
	}
	return &AdminDashboard{
		Centers:          centers,
		PendingApprovals: pending,
		Appointments:     appointments,
		Queries:          queries,
	}, nil
}

func (s *AdminService) save(ctx context.Context, admin *models.Admin) error {
	err := s.admins.Update(ctx, admin)
	if errors.Is(err, repository.ErrDuplicate) {
		return fieldError(ErrConflict, emailTaken, "email", emailTaken)
	}
	if err != nil {
		return fmt.Errorf("failed to update admin: %w", err)
	}
	return nil
}
