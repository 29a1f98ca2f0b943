package events

import (
	"context"
	"errors"
	"testing"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/models"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type mockIndexer struct{ mock.Mock }

func (m *mockIndexer) IndexDoctor(ctx context.Context, doctor models.Doctor) error {
	return m.Called(ctx, doctor).Error(0)
}

func (m *mockIndexer) DeleteDoctor(ctx context.Context, doctorID uint) error {
	return m.Called(ctx, doctorID).Error(0)
}

type recordingBroadcaster struct {
	centers []uint
}

func (r *recordingBroadcaster) Broadcast(centerID uint, _ Event) {
	r.centers = append(r.centers, centerID)
}

type mockPusher struct{ mock.Mock }

func (m *mockPusher) NotifyCenter(ctx context.Context, centerID uint, title, body string) error {
	return m.Called(ctx, centerID, title, body).Error(0)
}

func TestDispatcherIndexesDoctors(t *testing.T) {
	indexer := new(mockIndexer)
	doctor := models.Doctor{Name: "Asha", ClinicalCenterID: 3}
	doctor.ID = 7
	indexer.On("IndexDoctor", mock.Anything, doctor).Return(nil)
	indexer.On("DeleteDoctor", mock.Anything, uint(7)).Return(errors.New("es down"))

	d := NewDispatcher(indexer, nil, nil, zap.NewNop())

	assert.NoError(t, d.Handle(context.Background(), NewDoctorEvent(DoctorUpserted, doctor)))
	err := d.Handle(context.Background(), NewDoctorEvent(DoctorDeleted, doctor))
	assert.ErrorContains(t, err, "es down")
	indexer.AssertExpectations(t)
}

func TestDispatcherAppointmentCreated(t *testing.T) {
	pusher := new(mockPusher)
	broadcaster := &recordingBroadcaster{}
	appt := models.Appointment{ClinicalCenterID: 4, PatientName: "Ravi", DoctorName: "Asha", QueueNumber: 2, ShiftTime: "9am to 12pm"}
	pusher.On("NotifyCenter", mock.Anything, uint(4), "New appointment", mock.AnythingOfType("string")).Return(nil)

	d := NewDispatcher(nil, broadcaster, pusher, zap.NewNop())
	assert.NoError(t, d.Handle(context.Background(), NewAppointmentEvent(AppointmentCreated, appt)))

	assert.Equal(t, []uint{4}, broadcaster.centers)
	pusher.AssertExpectations(t)
}

func TestDispatcherStatusChangeOnlyBroadcasts(t *testing.T) {
	pusher := new(mockPusher)
	broadcaster := &recordingBroadcaster{}
	appt := models.Appointment{ClinicalCenterID: 9}

	d := NewDispatcher(nil, broadcaster, pusher, zap.NewNop())
	assert.NoError(t, d.Handle(context.Background(), NewAppointmentEvent(AppointmentStatusChanged, appt)))

	assert.Equal(t, []uint{9}, broadcaster.centers)
	pusher.AssertNotCalled(t, "NotifyCenter", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConsumerGroups(t *testing.T) {
	shared := sharedReaderConfig("kafka:9092")
	assert.Equal(t, consumerGroup, shared.GroupID)
	assert.ElementsMatch(t, []string{TopicDoctors, TopicAppointments}, shared.GroupTopics)

	a := broadcastReaderConfig("kafka:9092", "api-7f9c")
	b := broadcastReaderConfig("kafka:9092", "api-2d41")
	assert.NotEqual(t, a.GroupID, b.GroupID)
	assert.NotEqual(t, consumerGroup, a.GroupID)
	assert.Equal(t, []string{TopicAppointments}, a.GroupTopics)
	assert.Equal(t, kafka.LastOffset, a.StartOffset)
}

func TestEventTopicAndKey(t *testing.T) {
	doctor := models.Doctor{}
	doctor.ID = 12
	e := NewDoctorEvent(DoctorUpserted, doctor)
	assert.Equal(t, TopicDoctors, e.Topic())
	assert.Equal(t, "doctor:12", e.Key())

	appt := models.Appointment{}
	appt.ID = 5
	e = NewAppointmentEvent(AppointmentCreated, appt)
	assert.Equal(t, TopicAppointments, e.Topic())
	assert.Equal(t, "appointment:5", e.Key())
}
