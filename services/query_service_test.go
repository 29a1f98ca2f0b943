package services

import (
	"context"
	"testing"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/models"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newQueryService() (*QueryService, *mockQueryRepo, *mockCenterRepo, *recordingMailer) {
	queries := new(mockQueryRepo)
	centers := new(mockCenterRepo)
	mailer := &recordingMailer{}
	return NewQueryService(queries, centers, mailer, zap.NewNop()), queries, centers, mailer
}

func storedQuery(id uint, sender, status string) *models.Query {
	q := &models.Query{
		SenderType:  sender,
		SenderName:  "Ravi",
		SenderEmail: "ravi@example.com",
		Subject:     "Late doctor",
		Message:     "The doctor arrived an hour late.",
		Status:      status,
	}
	q.ID = id
	return q
}

func TestStatusBadge(t *testing.T) {
	assert.Equal(t, Badge{Text: "Pending", Color: "warning"}, StatusBadge(models.QueryPending))
	assert.Equal(t, Badge{Text: "In Progress", Color: "info"}, StatusBadge(models.QueryInProgress))
	assert.Equal(t, Badge{Text: "Resolved", Color: "success"}, StatusBadge(models.QueryResolved))
	assert.Equal(t, Badge{Text: "Rejected", Color: "danger"}, StatusBadge(models.QueryRejected))
}

func TestQueryStatusChangeReturnsNewBadge(t *testing.T) {
	svc, queries, _, _ := newQueryService()
	query := storedQuery(3, models.SenderUser, models.QueryPending)
	queries.On("FindByID", mock.Anything, uint(3)).Return(query, nil)
	queries.On("Update", mock.Anything, query).Return(nil)

	view, err := svc.UpdateStatus(context.Background(), models.SenderUser, 3, QueryStatusInput{Status: models.QueryInProgress})
	require.NoError(t, err)
	assert.Equal(t, models.QueryInProgress, view.Status)
	assert.Equal(t, Badge{Text: "In Progress", Color: "info"}, view.Badge)

	view, err = svc.UpdateStatus(context.Background(), models.SenderUser, 3, QueryStatusInput{Status: models.QueryResolved, Notes: "Apologised to patient"})
	require.NoError(t, err)
	assert.Equal(t, Badge{Text: "Resolved", Color: "success"}, view.Badge)
	assert.Equal(t, "Apologised to patient", view.Notes)

	_, err = svc.UpdateStatus(context.Background(), models.SenderUser, 3, QueryStatusInput{Status: models.QueryPending})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestQueryStatusTypeMustMatchSender(t *testing.T) {
	svc, queries, _, _ := newQueryService()
	queries.On("FindByID", mock.Anything, uint(3)).Return(storedQuery(3, models.SenderUser, models.QueryPending), nil)

	_, err := svc.UpdateStatus(context.Background(), models.SenderClinic, 3, QueryStatusInput{Status: models.QueryResolved})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.UpdateStatus(context.Background(), "vendor", 3, QueryStatusInput{Status: models.QueryResolved})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.UpdateStatus(context.Background(), models.SenderUser, 3, QueryStatusInput{Status: "closed"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestQueryTransitions(t *testing.T) {
	assert.True(t, CanTransitionQuery(models.QueryPending, models.QueryInProgress))
	assert.True(t, CanTransitionQuery(models.QueryInProgress, models.QueryPending))
	assert.True(t, CanTransitionQuery(models.QueryInProgress, models.QueryRejected))
	assert.False(t, CanTransitionQuery(models.QueryResolved, models.QueryPending))
	assert.False(t, CanTransitionQuery(models.QueryRejected, models.QueryInProgress))
}

func TestReplyEmailsSender(t *testing.T) {
	svc, queries, _, mailer := newQueryService()
	query := storedQuery(3, models.SenderUser, models.QueryPending)
	queries.On("FindByID", mock.Anything, uint(3)).Return(query, nil)
	queries.On("AddReply", mock.Anything, query, mock.AnythingOfType("*models.QueryReply")).Return(nil)

	view, err := svc.Reply(context.Background(), models.SenderUser, 3, "Admin", QueryReplyInput{
		Message: "We have spoken to the clinic.",
		Status:  models.QueryResolved,
	})
	require.NoError(t, err)
	assert.Equal(t, models.QueryResolved, view.Status)
	require.Len(t, view.Replies, 1)
	assert.Equal(t, "admin", view.Replies[0].Author)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "ravi@example.com", mailer.sent[0].To)
	assert.Equal(t, "Re: Late doctor", mailer.sent[0].Subject)
	assert.Contains(t, mailer.sent[0].Body, "Resolved")
}

func TestCreateFromClinicUsesCenterDetails(t *testing.T) {
	svc, queries, centers, _ := newQueryService()
	center := activeCenter(1)
	center.Email = "desk@cityclinic.in"
	centers.On("FindByID", mock.Anything, uint(1)).Return(center, nil)
	queries.On("Create", mock.Anything, mock.AnythingOfType("*models.Query")).Return(nil)

	view, err := svc.CreateFromClinic(context.Background(), 1, ClinicQueryInput{Subject: " Payout delay ", Message: "Payout pending since Monday"})
	require.NoError(t, err)
	assert.Equal(t, models.SenderClinic, view.SenderType)
	assert.Equal(t, "City clinic", view.SenderName)
	assert.Equal(t, "Payout delay", view.Subject)
	require.NotNil(t, view.ClinicalCenterID)
	assert.Equal(t, uint(1), *view.ClinicalCenterID)
	assert.Equal(t, Badge{Text: "Pending", Color: "warning"}, view.Badge)
}

func TestCreateFromUserValidation(t *testing.T) {
	svc, queries, _, _ := newQueryService()
	_, err := svc.CreateFromUser(context.Background(), UserQueryInput{Name: "Ravi", Email: "ravi@example", Subject: "Hi"})
	assert.ErrorIs(t, err, ErrValidation)
	queries.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestListRejectsUnknownType(t *testing.T) {
	svc, _, _, _ := newQueryService()
	_, err := svc.List(context.Background(), repository.QueryFilter{SenderType: "vendor"})
	assert.ErrorIs(t, err, ErrValidation)
}
