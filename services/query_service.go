package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/models"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/monitoring"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/repository"
	"go.uber.org/zap"
)

var queryTransitions = map[string][]string{
	models.QueryPending:    {models.QueryInProgress, models.QueryResolved, models.QueryRejected},
	models.QueryInProgress: {models.QueryPending, models.QueryResolved, models.QueryRejected},
}

func CanTransitionQuery(from, to string) bool {
	for _, next := range queryTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Badge is the label and colour the back-office shows for a query status.
type Badge struct {
	Text  string `json:"text"`
	Color string `json:"color"`
}

func StatusBadge(status string) Badge {
	switch status {
	case models.QueryPending:
		return Badge{Text: "Pending", Color: "warning"}
	case models.QueryInProgress:
		return Badge{Text: "In Progress", Color: "info"}
	case models.QueryResolved:
		return Badge{Text: "Resolved", Color: "success"}
	case models.QueryRejected:
		return Badge{Text: "Rejected", Color: "danger"}
	}
	return Badge{Text: status, Color: "secondary"}
}

type UserQueryInput struct {
	Name    string `json:"name" validate:"required,max=80"`
	Email   string `json:"email" validate:"required,emailaddr,max=120"`
	Phone   string `json:"phone" validate:"omitempty,phone10"`
	Subject string `json:"subject" validate:"required,max=150"`
	Message string `json:"message" validate:"required,max=5000"`
}

type ClinicQueryInput struct {
	Subject string `json:"subject" validate:"required,max=150"`
	Message string `json:"message" validate:"required,max=5000"`
}

type QueryStatusInput struct {
	Status string `json:"status" validate:"required,oneof=pending in-progress resolved rejected"`
	Notes  string `json:"notes" validate:"max=2000"`
}

type QueryReplyInput struct {
	Message string `json:"message" validate:"required,max=5000"`
	Notes   string `json:"notes" validate:"max=2000"`
	Status  string `json:"status" validate:"omitempty,oneof=pending in-progress resolved rejected"`
}

// QueryView pairs a query with its display badge.
type QueryView struct {
	*models.Query
	Badge Badge `json:"badge"`
}

func viewOf(q *models.Query) QueryView {
	return QueryView{Query: q, Badge: StatusBadge(q.Status)}
}

type QueryService struct {
	queries repository.QueryRepository
	centers repository.CenterRepository
	mailer  Mailer
	log     *zap.Logger
}

func NewQueryService(queries repository.QueryRepository, centers repository.CenterRepository, mailer Mailer, log *zap.Logger) *QueryService {
	return &QueryService{queries: queries, centers: centers, mailer: mailer, log: log}
}

func (s *QueryService) CreateFromUser(ctx context.Context, in UserQueryInput) (*QueryView, error) {
	in.Name = SentenceCase(in.Name)
	in.Email = NormalizeEmail(in.Email)
	in.Phone = NormalizePhone(in.Phone)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	query := &models.Query{
		SenderType:  models.SenderUser,
		SenderName:  in.Name,
		SenderEmail: in.Email,
		SenderPhone: in.Phone,
		Subject:     in.Subject,
		Message:     in.Message,
		Status:      models.QueryPending,
	}
	return s.create(ctx, query)
}

func (s *QueryService) CreateFromClinic(ctx context.Context, centerID uint, in ClinicQueryInput) (*QueryView, error) {
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	center, err := s.centers.FindByID(ctx, centerID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newError(ErrNotFound, "Clinical center not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load clinical center: %w", err)
	}
	query := &models.Query{
		SenderType:       models.SenderClinic,
		ClinicalCenterID: &center.ID,
		SenderName:       center.ClinicName,
		SenderEmail:      center.Email,
		SenderPhone:      center.Phone,
		Subject:          in.Subject,
		Message:          in.Message,
		Status:           models.QueryPending,
	}
	return s.create(ctx, query)
}

func (s *QueryService) create(ctx context.Context, query *models.Query) (*QueryView, error) {
	if err := s.queries.Create(ctx, query); err != nil {
		return nil, fmt.Errorf("failed to create query: %w", err)
	}
	monitoring.QueriesCreated.WithLabelValues(query.SenderType).Inc()
	s.log.Info("query created", zap.Uint("query_id", query.ID), zap.String("sender", query.SenderType))
	view := viewOf(query)
	return &view, nil
}

func (s *QueryService) ListForClinic(ctx context.Context, centerID uint, status string) ([]QueryView, error) {
	return s.List(ctx, repository.QueryFilter{CenterID: centerID, SenderType: models.SenderClinic, Status: status})
}

func (s *QueryService) List(ctx context.Context, filter repository.QueryFilter) ([]QueryView, error) {
	if filter.SenderType != "" && filter.SenderType != models.SenderClinic && filter.SenderType != models.SenderUser {
		return nil, fieldError(ErrValidation, "Invalid type filter", "type", "Must be one of: clinic, user")
	}
	queries, err := s.queries.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list queries: %w", err)
	}
	views := make([]QueryView, len(queries))
	for i := range queries {
		views[i] = viewOf(&queries[i])
	}
	return views, nil
}

// UpdateStatus moves a query along its lifecycle. senderType must match the query's sender.
func (s *QueryService) UpdateStatus(ctx context.Context, senderType string, id uint, in QueryStatusInput) (*QueryView, error) {
	in.Notes = strings.TrimSpace(in.Notes)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	query, err := s.load(ctx, senderType, id)
	if err != nil {
		return nil, err
	}
	if err := s.transition(query, in.Status); err != nil {
		return nil, err
	}
	if in.Notes != "" {
		query.Notes = in.Notes
	}
	if err := s.queries.Update(ctx, query); err != nil {
		return nil, fmt.Errorf("failed to update query: %w", err)
	}
	view := viewOf(query)
	return &view, nil
}

// Reply appends an admin reply to the thread and emails it to the sender.
func (s *QueryService) Reply(ctx context.Context, senderType string, id uint, adminName string, in QueryReplyInput) (*QueryView, error) {
	in.Message = strings.TrimSpace(in.Message)
	in.Notes = strings.TrimSpace(in.Notes)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	query, err := s.load(ctx, senderType, id)
	if err != nil {
		return nil, err
	}
	if in.Status != "" && in.Status != query.Status {
		if err := s.transition(query, in.Status); err != nil {
			return nil, err
		}
	}
	if in.Notes != "" {
		query.Notes = in.Notes
	}

	reply := &models.QueryReply{Author: "admin", AuthorName: adminName, Message: in.Message}
	if err := s.queries.AddReply(ctx, query, reply); err != nil {
		return nil, fmt.Errorf("failed to save reply: %w", err)
	}
	query.Replies = append(query.Replies, *reply)

	if query.SenderEmail != "" {
		subject := "Re: " + query.Subject
		body := fmt.Sprintf("Hello %s,\n\n%s\n\nStatus: %s\n", query.SenderName, reply.Message, StatusBadge(query.Status).Text)
		if err := s.mailer.Send(query.SenderEmail, subject, body); err != nil {
			s.log.Warn("reply email failed", zap.Uint("query_id", query.ID), zap.Error(err))
		}
	}

	view := viewOf(query)
	return &view, nil
}

func (s *QueryService) load(ctx context.Context, senderType string, id uint) (*models.Query, error) {
	if senderType != models.SenderClinic && senderType != models.SenderUser {
		return nil, newError(ErrNotFound, "Query not found")
	}
	query, err := s.queries.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && query.SenderType != senderType) {
		return nil, newError(ErrNotFound, "Query not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load query: %w", err)
	}
	return query, nil
}

func (s *QueryService) transition(query *models.Query, status string) error {
	if query.Status == status {
		return nil
	}
	if !CanTransitionQuery(query.Status, status) {
		return newError(ErrInvalidTransition, fmt.Sprintf("Cannot change status from %s to %s", query.Status, status))
	}
	query.Status = status
	return nil
}
