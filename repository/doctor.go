package repository

import (
	"context"
	"time"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/models"
	"gorm.io/gorm"
)

type DoctorFilter struct {
	Status string
	Search string
}

// DoctorSearch is the public search over bookable doctors.
// When IDs is set the text filters have already been applied by the search index.
type DoctorSearch struct {
	City           string `json:"city,omitempty"`
	Clinic         string `json:"clinic,omitempty"`
	Name           string `json:"name,omitempty"`
	Specialization string `json:"specialization,omitempty"`
	IDs            []uint `json:"-"`
}

type DoctorRepository interface {
	Create(ctx context.Context, doctor *models.Doctor) error
	FindByID(ctx context.Context, id uint) (*models.Doctor, error)
	ListByCenter(ctx context.Context, centerID uint, filter DoctorFilter) ([]models.Doctor, error)
	Search(ctx context.Context, search DoctorSearch) ([]models.Doctor, error)
	Update(ctx context.Context, doctor *models.Doctor) error
	Delete(ctx context.Context, id uint) error
	CountByCenter(ctx context.Context, centerID uint) (int64, error)
	// SyncCenter rewrites the clinic name and city copied onto the center's doctors
	// and returns the updated doctors.
	SyncCenter(ctx context.Context, centerID uint, clinicName, city string) ([]models.Doctor, error)

	ReplaceAvailability(ctx context.Context, doctorID uint, date time.Time, entries []models.DoctorAvailability) error
	ListAvailability(ctx context.Context, doctorID uint, from, to time.Time) ([]models.DoctorAvailability, error)
	FindAvailability(ctx context.Context, doctorID uint, date time.Time, shift string) (*models.DoctorAvailability, error)
	DeleteAvailability(ctx context.Context, doctorID, entryID uint) error
}

type doctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *models.Doctor) error {
	return translate(r.db.WithContext(ctx).Create(doctor).Error)
}

func (r *doctorRepository) FindByID(ctx context.Context, id uint) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := r.db.WithContext(ctx).First(&doctor, id).Error; err != nil {
		return nil, translate(err)
	}
	return &doctor, nil
}

func (r *doctorRepository) ListByCenter(ctx context.Context, centerID uint, filter DoctorFilter) ([]models.Doctor, error) {
	query := r.db.WithContext(ctx).Where("clinical_center_id = ?", centerID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		p := likePattern(filter.Search)
		query = query.Where("name ILIKE ? OR specialization ILIKE ? OR phone ILIKE ?", p, p, p)
	}

	var doctors []models.Doctor
	if err := query.Order("name").Find(&doctors).Error; err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) Search(ctx context.Context, search DoctorSearch) ([]models.Doctor, error) {
	query := r.db.WithContext(ctx).Model(&models.Doctor{}).
		Joins("JOIN clinical_centers ON clinical_centers.id = doctors.clinical_center_id AND clinical_centers.deleted_at IS NULL").
		Where("clinical_centers.status = ? AND clinical_centers.approved = ?", models.CenterStatusActive, true).
		Where("doctors.status = ?", models.DoctorAvailable)

	if search.IDs != nil {
		var doctors []models.Doctor
		err := query.Where("doctors.id IN ?", search.IDs).Find(&doctors).Error
		return doctors, err
	}

	if search.City != "" {
		query = query.Where("doctors.city ILIKE ?", likePattern(search.City))
	}
	if search.Clinic != "" {
		query = query.Where("doctors.clinic_name ILIKE ?", likePattern(search.Clinic))
	}
	if search.Name != "" {
		query = query.Where("doctors.name ILIKE ?", likePattern(search.Name))
	}
	if search.Specialization != "" {
		query = query.Where("doctors.specialization ILIKE ?", likePattern(search.Specialization))
	}

	var doctors []models.Doctor
	if err := query.Order("doctors.name").Find(&doctors).Error; err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) Update(ctx context.Context, doctor *models.Doctor) error {
	return translate(r.db.WithContext(ctx).Save(doctor).Error)
}

func (r *doctorRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Doctor{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *doctorRepository) CountByCenter(ctx context.Context, centerID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Doctor{}).Where("clinical_center_id = ?", centerID).Count(&count).Error
	return count, err
}

func (r *doctorRepository) SyncCenter(ctx context.Context, centerID uint, clinicName, city string) ([]models.Doctor, error) {
	var doctors []models.Doctor
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Doctor{}).
			Where("clinical_center_id = ?", centerID).
			Updates(map[string]interface{}{"clinic_name": clinicName, "city": city}).Error
		if err != nil {
			return err
		}
		return tx.Where("clinical_center_id = ?", centerID).Order("id").Find(&doctors).Error
	})
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

// ReplaceAvailability swaps every shift entry of the doctor on date for entries.
func (r *doctorRepository) ReplaceAvailability(ctx context.Context, doctorID uint, date time.Time, entries []models.DoctorAvailability) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("doctor_id = ? AND date = ?", doctorID, date).Delete(&models.DoctorAvailability{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return translate(tx.Create(&entries).Error)
	})
}

func (r *doctorRepository) ListAvailability(ctx context.Context, doctorID uint, from, to time.Time) ([]models.DoctorAvailability, error) {
	var entries []models.DoctorAvailability
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND date BETWEEN ? AND ?", doctorID, from, to).
		Order("date, id").Find(&entries).Error
	return entries, err
}

func (r *doctorRepository) FindAvailability(ctx context.Context, doctorID uint, date time.Time, shift string) (*models.DoctorAvailability, error) {
	var entry models.DoctorAvailability
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND date = ? AND shift_time = ?", doctorID, date, shift).
		First(&entry).Error
	if err != nil {
		return nil, translate(err)
	}
	return &entry, nil
}

func (r *doctorRepository) DeleteAvailability(ctx context.Context, doctorID, entryID uint) error {
	result := r.db.WithContext(ctx).Where("doctor_id = ?", doctorID).Delete(&models.DoctorAvailability{}, entryID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
