package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/events"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/models"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/repository"
	"go.uber.org/zap"
)

const (
	searchVersionKey = "doctors:search:version"
	searchCacheTTL   = 5 * time.Minute
	availabilityDays = 30
)

type DoctorInput struct {
	Name            string  `json:"name" validate:"required,max=80"`
	Gender          string  `json:"gender" validate:"required,oneof=Male Female Other"`
	Phone           string  `json:"phone" validate:"required,phone10"`
	Email           string  `json:"email" validate:"omitempty,emailaddr,max=120"`
	Specialization  string  `json:"specialization" validate:"required,max=80"`
	ShiftTime1      string  `json:"shiftTime1" validate:"required,shift"`
	ShiftTime2      string  `json:"shiftTime2" validate:"omitempty,shift"`
	ShiftTime3      string  `json:"shiftTime3" validate:"omitempty,shift"`
	ConsultationFee float64 `json:"consultationFee" validate:"gte=0,lte=100000"`
}

func (in *DoctorInput) normalize() {
	in.Name = SentenceCase(in.Name)
	in.Gender = SentenceCase(in.Gender)
	in.Phone = NormalizePhone(in.Phone)
	in.Email = NormalizeEmail(in.Email)
	in.Specialization = SentenceCase(in.Specialization)
	in.ShiftTime1 = NormalizeShift(in.ShiftTime1)
	in.ShiftTime2 = NormalizeShift(in.ShiftTime2)
	in.ShiftTime3 = NormalizeShift(in.ShiftTime3)
}

func (in DoctorInput) validate() error {
	if err := validateStruct(in); err != nil {
		return err
	}
	seen := map[string]string{}
	for field, shift := range map[string]string{"shiftTime1": in.ShiftTime1, "shiftTime2": in.ShiftTime2, "shiftTime3": in.ShiftTime3} {
		if shift == "" {
			continue
		}
		if other, dup := seen[shift]; dup {
			later := field
			if later < other {
				later = other
			}
			return fieldError(ErrValidation, "Validation failed", later, "Shift times must be different")
		}
		seen[shift] = field
	}
	return nil
}

type ShiftCapacity struct {
	ShiftTime   string `json:"shiftTime" validate:"required"`
	MaxPatients int    `json:"maxPatients" validate:"gte=0,lte=500"`
}

// AvailabilityInput replaces the shifts a doctor works on one date. An empty list clears the date.
type AvailabilityInput struct {
	Date   string          `json:"date" validate:"required,datetime=2006-01-02"`
	Shifts []ShiftCapacity `json:"shifts" validate:"max=3,dive"`
}

// ShiftAvailability is a public view of one shift with its booking counts.
// Remaining is nil when the shift has no cap.
type ShiftAvailability struct {
	ID          uint   `json:"id"`
	Date        string `json:"date"`
	ShiftTime   string `json:"shiftTime"`
	MaxPatients int    `json:"maxPatients"`
	Booked      int64  `json:"booked"`
	Remaining   *int64 `json:"remaining"`
}

type DoctorService struct {
	doctors      repository.DoctorRepository
	centers      repository.CenterRepository
	appointments repository.AppointmentRepository
	searcher     DoctorSearcher
	cache        Cache
	publisher    EventPublisher
	now          Clock
	log          *zap.Logger
}

// NewDoctorService wires the doctor use cases. searcher may be nil, in which case
// public search runs on SQL only.
func NewDoctorService(
	doctors repository.DoctorRepository,
	centers repository.CenterRepository,
	appointments repository.AppointmentRepository,
	searcher DoctorSearcher,
	cache Cache,
	publisher EventPublisher,
	now Clock,
	log *zap.Logger,
) *DoctorService {
	return &DoctorService{
		doctors:      doctors,
		centers:      centers,
		appointments: appointments,
		searcher:     searcher,
		cache:        cache,
		publisher:    publisher,
		now:          now,
		log:          log,
	}
}

func (s *DoctorService) Create(ctx context.Context, centerID uint, in DoctorInput) (*models.Doctor, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}
	center, err := s.centers.FindByID(ctx, centerID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newError(ErrNotFound, "Clinical center not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load clinical center: %w", err)
	}

	doctor := &models.Doctor{
		ClinicalCenterID: centerID,
		City:             center.City,
		ClinicName:       center.ClinicName,
		Status:           models.DoctorAvailable,
	}
	in.apply(doctor)
	if err := s.doctors.Create(ctx, doctor); err != nil {
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}

	s.changed(ctx, events.DoctorUpserted, *doctor)
	s.log.Info("doctor created", zap.Uint("center_id", centerID), zap.Uint("doctor_id", doctor.ID))
	return doctor, nil
}

func (s *DoctorService) List(ctx context.Context, centerID uint, filter repository.DoctorFilter) ([]models.Doctor, error) {
	doctors, err := s.doctors.ListByCenter(ctx, centerID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

// Get loads a doctor that belongs to the given center.
func (s *DoctorService) Get(ctx context.Context, centerID, id uint) (*models.Doctor, error) {
	doctor, err := s.doctors.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && doctor.ClinicalCenterID != centerID) {
		return nil, newError(ErrNotFound, "Doctor not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load doctor: %w", err)
	}
	return doctor, nil
}

func (s *DoctorService) Update(ctx context.Context, centerID, id uint, in DoctorInput) (*models.Doctor, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}
	doctor, err := s.Get(ctx, centerID, id)
	if err != nil {
		return nil, err
	}
	in.apply(doctor)
	if err := s.doctors.Update(ctx, doctor); err != nil {
		return nil, fmt.Errorf("failed to update doctor: %w", err)
	}
	s.changed(ctx, events.DoctorUpserted, *doctor)
	return doctor, nil
}

func (s *DoctorService) SetStatus(ctx context.Context, centerID, id uint, status string) (*models.Doctor, error) {
	if status != models.DoctorAvailable && status != models.DoctorNotAvailable {
		return nil, fieldError(ErrValidation, "Invalid status", "status", "Must be one of: Available, Not Available")
	}
	doctor, err := s.Get(ctx, centerID, id)
	if err != nil {
		return nil, err
	}
	doctor.Status = status
	if err := s.doctors.Update(ctx, doctor); err != nil {
		return nil, fmt.Errorf("failed to update doctor: %w", err)
	}
	s.changed(ctx, events.DoctorUpserted, *doctor)
	return doctor, nil
}

// SetPhoto stores the public path of an uploaded photo and returns the previous one.
func (s *DoctorService) SetPhoto(ctx context.Context, centerID, id uint, photo string) (*models.Doctor, string, error) {
	doctor, err := s.Get(ctx, centerID, id)
	if err != nil {
		return nil, "", err
	}
	previous := doctor.Photo
	doctor.Photo = photo
	if err := s.doctors.Update(ctx, doctor); err != nil {
		return nil, "", fmt.Errorf("failed to update doctor: %w", err)
	}
	s.changed(ctx, events.DoctorUpserted, *doctor)
	return doctor, previous, nil
}

func (s *DoctorService) Delete(ctx context.Context, centerID, id uint) error {
	doctor, err := s.Get(ctx, centerID, id)
	if err != nil {
		return err
	}
	if err := s.doctors.Delete(ctx, doctor.ID); err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}
	s.changed(ctx, events.DoctorDeleted, *doctor)
	s.log.Info("doctor deleted", zap.Uint("center_id", centerID), zap.Uint("doctor_id", id))
	return nil
}

func (s *DoctorService) SetAvailability(ctx context.Context, centerID, id uint, in AvailabilityInput) ([]models.DoctorAvailability, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	today := dateOnly(s.now())
	date, err := parseDate(in.Date, today.Location())
	if err != nil {
		return nil, fieldError(ErrValidation, "Validation failed", "date", "Use the YYYY-MM-DD format")
	}
	if date.Before(today) {
		return nil, fieldError(ErrValidation, "Date cannot be in the past", "date", "Date cannot be in the past")
	}

	doctor, err := s.Get(ctx, centerID, id)
	if err != nil {
		return nil, err
	}

	entries := make([]models.DoctorAvailability, 0, len(in.Shifts))
	seen := map[string]bool{}
	for _, shift := range in.Shifts {
		name := NormalizeShift(shift.ShiftTime)
		if !doctor.HasShift(name) {
			return nil, fieldError(ErrValidation, "Validation failed", "shifts", fmt.Sprintf("%q is not one of the doctor's shift times", shift.ShiftTime))
		}
		if seen[name] {
			return nil, fieldError(ErrValidation, "Validation failed", "shifts", "Each shift may appear only once")
		}
		seen[name] = true
		entries = append(entries, models.DoctorAvailability{
			DoctorID:    doctor.ID,
			Date:        date,
			ShiftTime:   name,
			MaxPatients: shift.MaxPatients,
		})
	}

	if err := s.doctors.ReplaceAvailability(ctx, doctor.ID, date, entries); err != nil {
		return nil, fmt.Errorf("failed to save availability: %w", err)
	}
	return entries, nil
}

// ListAvailability returns shift entries between from and to, defaulting to the next thirty days.
func (s *DoctorService) ListAvailability(ctx context.Context, centerID, id uint, from, to string) ([]models.DoctorAvailability, error) {
	start, end, err := s.dateRange(from, to, availabilityDays)
	if err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, centerID, id); err != nil {
		return nil, err
	}
	entries, err := s.doctors.ListAvailability(ctx, id, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability: %w", err)
	}
	return entries, nil
}

func (s *DoctorService) DeleteAvailability(ctx context.Context, centerID, id, entryID uint) error {
	if _, err := s.Get(ctx, centerID, id); err != nil {
		return err
	}
	err := s.doctors.DeleteAvailability(ctx, id, entryID)
	if errors.Is(err, repository.ErrNotFound) {
		return newError(ErrNotFound, "Availability entry not found")
	}
	if err != nil {
		return fmt.Errorf("failed to delete availability: %w", err)
	}
	return nil
}

// PublicSearch lists bookable doctors. Results are cached under the current search version.
func (s *DoctorService) PublicSearch(ctx context.Context, search repository.DoctorSearch) ([]models.Doctor, error) {
	search = repository.DoctorSearch{
		City:           strings.TrimSpace(search.City),
		Clinic:         strings.TrimSpace(search.Clinic),
		Name:           strings.TrimSpace(search.Name),
		Specialization: strings.TrimSpace(search.Specialization),
	}
	key := s.searchKey(ctx, search)
	if raw, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		var cached []models.Doctor
		if json.Unmarshal([]byte(raw), &cached) == nil {
			return cached, nil
		}
	}

	doctors, err := s.search(ctx, search)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(doctors); err == nil {
		if err := s.cache.Set(ctx, key, string(raw), searchCacheTTL); err != nil {
			s.log.Warn("failed to cache doctor search", zap.Error(err))
		}
	}
	return doctors, nil
}

func (s *DoctorService) search(ctx context.Context, search repository.DoctorSearch) ([]models.Doctor, error) {
	hasText := search.City != "" || search.Clinic != "" || search.Name != "" || search.Specialization != ""
	if s.searcher != nil && hasText {
		ids, err := s.searcher.SearchDoctors(ctx, search)
		if err == nil {
			if len(ids) == 0 {
				return []models.Doctor{}, nil
			}
			search.IDs = ids
			doctors, err := s.doctors.Search(ctx, search)
			if err != nil {
				return nil, fmt.Errorf("failed to search doctors: %w", err)
			}
			return rankByIDs(doctors, ids), nil
		}
		s.log.Warn("search index unavailable, falling back to SQL", zap.Error(err))
	}

	doctors, err := s.doctors.Search(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("failed to search doctors: %w", err)
	}
	if doctors == nil {
		doctors = []models.Doctor{}
	}
	return doctors, nil
}

// PublicGet returns a doctor only while it can be booked.
func (s *DoctorService) PublicGet(ctx context.Context, id uint) (*models.Doctor, error) {
	doctor, err := s.doctors.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newError(ErrNotFound, "Doctor not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load doctor: %w", err)
	}
	center, err := s.centers.FindByID(ctx, doctor.ClinicalCenterID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newError(ErrNotFound, "Doctor not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load clinical center: %w", err)
	}
	if !center.CanOperate() || doctor.Status != models.DoctorAvailable {
		return nil, newError(ErrNotFound, "Doctor not found")
	}
	return doctor, nil
}

func (s *DoctorService) PublicAvailability(ctx context.Context, id uint, date string) ([]ShiftAvailability, error) {
	today := dateOnly(s.now())
	day := today
	if date != "" {
		parsed, err := parseDate(date, today.Location())
		if err != nil {
			return nil, fieldError(ErrValidation, "Validation failed", "date", "Use the YYYY-MM-DD format")
		}
		day = parsed
	}
	if day.Before(today) {
		return nil, fieldError(ErrValidation, "Date cannot be in the past", "date", "Date cannot be in the past")
	}

	doctor, err := s.PublicGet(ctx, id)
	if err != nil {
		return nil, err
	}
	entries, err := s.doctors.ListAvailability(ctx, doctor.ID, day, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability: %w", err)
	}
	counts, err := s.appointments.ActiveCountsByShift(ctx, doctor.ID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}

	result := make([]ShiftAvailability, 0, len(entries))
	for _, entry := range entries {
		view := ShiftAvailability{
			ID:          entry.ID,
			Date:        day.Format(dateLayout),
			ShiftTime:   entry.ShiftTime,
			MaxPatients: entry.MaxPatients,
			Booked:      counts[entry.ShiftTime],
		}
		if entry.MaxPatients > 0 {
			remaining := int64(entry.MaxPatients) - view.Booked
			if remaining < 0 {
				remaining = 0
			}
			view.Remaining = &remaining
		}
		result = append(result, view)
	}
	return result, nil
}

func (s *DoctorService) searchKey(ctx context.Context, search repository.DoctorSearch) string {
	version := "0"
	if v, ok, err := s.cache.Get(ctx, searchVersionKey); err == nil && ok {
		version = v
	}
	raw, _ := json.Marshal(search)
	return fmt.Sprintf("doctors:search:v%s:%s", version, strings.ToLower(string(raw)))
}

func (s *DoctorService) changed(ctx context.Context, eventType string, doctor models.Doctor) {
	bumpSearchVersion(ctx, s.cache, s.log)
	if err := s.publisher.Publish(ctx, events.NewDoctorEvent(eventType, doctor)); err != nil {
		s.log.Warn("failed to publish doctor event", zap.String("event", eventType), zap.Uint("doctor_id", doctor.ID), zap.Error(err))
	}
}

// dateRange parses optional from/to dates, defaulting to today plus days.
func (s *DoctorService) dateRange(from, to string, days int) (time.Time, time.Time, error) {
	return parseRange(s.now(), from, to, days)
}

func (in DoctorInput) apply(doctor *models.Doctor) {
	doctor.Name = in.Name
	doctor.Gender = in.Gender
	doctor.Phone = in.Phone
	doctor.Email = in.Email
	doctor.Specialization = in.Specialization
	doctor.SetShiftTimes(compact(in.ShiftTime1, in.ShiftTime2, in.ShiftTime3))
	doctor.ConsultationFee = in.ConsultationFee
}

func compact(values ...string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// rankByIDs orders doctors the way the search index ranked them.
func rankByIDs(doctors []models.Doctor, ids []uint) []models.Doctor {
	byID := make(map[uint]models.Doctor, len(doctors))
	for _, d := range doctors {
		byID[d.ID] = d
	}
	ranked := make([]models.Doctor, 0, len(doctors))
	for _, id := range ids {
		if d, ok := byID[id]; ok {
			ranked = append(ranked, d)
		}
	}
	return ranked
}

func bumpSearchVersion(ctx context.Context, cache Cache, log *zap.Logger) {
	if _, err := cache.Incr(ctx, searchVersionKey); err != nil {
		log.Warn("failed to bump doctor search version", zap.Error(err))
	}
}

// parseRange reads optional YYYY-MM-DD bounds. A missing from is today, a missing to is from plus days.
func parseRange(now time.Time, from, to string, days int) (time.Time, time.Time, error) {
	start := dateOnly(now)
	if from != "" {
		parsed, err := parseDate(from, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fieldError(ErrValidation, "Validation failed", "from", "Use the YYYY-MM-DD format")
		}
		start = parsed
	}
	end := start.AddDate(0, 0, days)
	if to != "" {
		parsed, err := parseDate(to, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fieldError(ErrValidation, "Validation failed", "to", "Use the YYYY-MM-DD format")
		}
		end = parsed
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fieldError(ErrValidation, "Validation failed", "to", "End date is before start date")
	}
	return start, end, nil
}
