package repository

import (
	"context"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/models"
	"gorm.io/gorm"
)

type QueryFilter struct {
	Status     string
	SenderType string
	CenterID   uint
	Search     string
}

type QueryRepository interface {
	Create(ctx context.Context, query *models.Query) error
	FindByID(ctx context.Context, id uint) (*models.Query, error)
	List(ctx context.Context, filter QueryFilter) ([]models.Query, error)
	Update(ctx context.Context, query *models.Query) error
	AddReply(ctx context.Context, query *models.Query, reply *models.QueryReply) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type queryRepository struct {
	db *gorm.DB
}

func NewQueryRepository(db *gorm.DB) QueryRepository {
	return &queryRepository{db: db}
}

func (r *queryRepository) Create(ctx context.Context, query *models.Query) error {
	return translate(r.db.WithContext(ctx).Create(query).Error)
}

func (r *queryRepository) FindByID(ctx context.Context, id uint) (*models.Query, error) {
	var query models.Query
	err := r.db.WithContext(ctx).
		Preload("Replies", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		First(&query, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &query, nil
}

func (r *queryRepository) List(ctx context.Context, filter QueryFilter) ([]models.Query, error) {
	q := r.db.WithContext(ctx).Model(&models.Query{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.SenderType != "" {
		q = q.Where("sender_type = ?", filter.SenderType)
	}
	if filter.CenterID != 0 {
		q = q.Where("clinical_center_id = ?", filter.CenterID)
	}
	if filter.Search != "" {
		p := likePattern(filter.Search)
		q = q.Where("subject ILIKE ? OR message ILIKE ? OR sender_name ILIKE ? OR sender_email ILIKE ?", p, p, p, p)
	}

	var queries []models.Query
	err := q.Preload("Replies", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		Order("created_at DESC").Find(&queries).Error
	return queries, err
}

func (r *queryRepository) Update(ctx context.Context, query *models.Query) error {
	return translate(r.db.WithContext(ctx).Omit("Replies").Save(query).Error)
}

// AddReply appends reply to the thread and saves the query's status and notes with it.
func (r *queryRepository) AddReply(ctx context.Context, query *models.Query, reply *models.QueryReply) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reply.QueryID = query.ID
		if err := tx.Create(reply).Error; err != nil {
			return err
		}
		return tx.Omit("Replies").Save(query).Error
	})
}

func (r *queryRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&models.Query{}).
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
