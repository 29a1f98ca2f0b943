package repository

import (
	"context"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/models"
	"gorm.io/gorm"
)

type CenterFilter struct {
	Status string
	City   string
	Search string
}

type CenterRepository interface {
	Create(ctx context.Context, center *models.ClinicalCenter) error
	FindByID(ctx context.Context, id uint) (*models.ClinicalCenter, error)
	FindByEmail(ctx context.Context, email string) (*models.ClinicalCenter, error)
	List(ctx context.Context, filter CenterFilter) ([]models.ClinicalCenter, error)
	Update(ctx context.Context, center *models.ClinicalCenter) error
	Delete(ctx context.Context, id uint) error
	Cities(ctx context.Context) ([]string, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	CountPendingApproval(ctx context.Context) (int64, error)
	SaveDeviceToken(ctx context.Context, token *models.DeviceToken) error
	DeviceTokens(ctx context.Context, centerID uint) ([]string, error)
}

type centerRepository struct {
	db *gorm.DB
}

func NewCenterRepository(db *gorm.DB) CenterRepository {
	return &centerRepository{db: db}
}

func (r *centerRepository) Create(ctx context.Context, center *models.ClinicalCenter) error {
	return translate(r.db.WithContext(ctx).Create(center).Error)
}

func (r *centerRepository) FindByID(ctx context.Context, id uint) (*models.ClinicalCenter, error) {
	var center models.ClinicalCenter
	if err := r.db.WithContext(ctx).First(&center, id).Error; err != nil {
		return nil, translate(err)
	}
	return &center, nil
}

func (r *centerRepository) FindByEmail(ctx context.Context, email string) (*models.ClinicalCenter, error) {
	var center models.ClinicalCenter
	if err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&center).Error; err != nil {
		return nil, translate(err)
	}
	return &center, nil
}

func (r *centerRepository) List(ctx context.Context, filter CenterFilter) ([]models.ClinicalCenter, error) {
	query := r.db.WithContext(ctx).Model(&models.ClinicalCenter{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.City != "" {
		query = query.Where("LOWER(city) = LOWER(?)", filter.City)
	}
	if filter.Search != "" {
		p := likePattern(filter.Search)
		query = query.Where("clinic_name ILIKE ? OR city ILIKE ? OR email ILIKE ? OR in_charge_name ILIKE ?", p, p, p, p)
	}

	var centers []models.ClinicalCenter
	if err := query.Order("created_at DESC").Find(&centers).Error; err != nil {
		return nil, err
	}
	return centers, nil
}

func (r *centerRepository) Update(ctx context.Context, center *models.ClinicalCenter) error {
	return translate(r.db.WithContext(ctx).Save(center).Error)
}

func (r *centerRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.ClinicalCenter{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *centerRepository) Cities(ctx context.Context) ([]string, error) {
	var cities []string
	err := r.db.WithContext(ctx).Model(&models.ClinicalCenter{}).
		Where("status = ? AND approved = ?", models.CenterStatusActive, true).
		Distinct().Order("city").Pluck("city", &cities).Error
	return cities, err
}

func (r *centerRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&models.ClinicalCenter{}).
		Select("status, COUNT(*) as count").Group("status").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *centerRepository) CountPendingApproval(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ClinicalCenter{}).Where("approved = ?", false).Count(&count).Error
	return count, err
}

func (r *centerRepository) SaveDeviceToken(ctx context.Context, token *models.DeviceToken) error {
	var existing models.DeviceToken
	err := r.db.WithContext(ctx).Where("token = ?", token.Token).First(&existing).Error
	if err == nil {
		existing.ClinicalCenterID = token.ClinicalCenterID
		return r.db.WithContext(ctx).Save(&existing).Error
	}
	if translate(err) != ErrNotFound {
		return err
	}
	return translate(r.db.WithContext(ctx).Create(token).Error)
}

func (r *centerRepository) DeviceTokens(ctx context.Context, centerID uint) ([]string, error) {
	var tokens []string
	err := r.db.WithContext(ctx).Model(&models.DeviceToken{}).
		Where("clinical_center_id = ?", centerID).Pluck("token", &tokens).Error
	return tokens, err
}
