package services

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/events"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/models"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/repository"
	"github.com/stretchr/testify/mock"
)

type mockCenterRepo struct{ mock.Mock }

func (m *mockCenterRepo) Create(ctx context.Context, center *models.ClinicalCenter) error {
	return m.Called(ctx, center).Error(0)
}

func (m *mockCenterRepo) FindByID(ctx context.Context, id uint) (*models.ClinicalCenter, error) {
	args := m.Called(ctx, id)
	center, _ := args.Get(0).(*models.ClinicalCenter)
	return center, args.Error(1)
}

func (m *mockCenterRepo) FindByEmail(ctx context.Context, email string) (*models.ClinicalCenter, error) {
	args := m.Called(ctx, email)
	center, _ := args.Get(0).(*models.ClinicalCenter)
	return center, args.Error(1)
}

func (m *mockCenterRepo) List(ctx context.Context, filter repository.CenterFilter) ([]models.ClinicalCenter, error) {
	args := m.Called(ctx, filter)
	centers, _ := args.Get(0).([]models.ClinicalCenter)
	return centers, args.Error(1)
}

func (m *mockCenterRepo) Update(ctx context.Context, center *models.ClinicalCenter) error {
	return m.Called(ctx, center).Error(0)
}

func (m *mockCenterRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCenterRepo) Cities(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	cities, _ := args.Get(0).([]string)
	return cities, args.Error(1)
}

func (m *mockCenterRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).(map[string]int64)
	return counts, args.Error(1)
}

func (m *mockCenterRepo) CountPendingApproval(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCenterRepo) SaveDeviceToken(ctx context.Context, token *models.DeviceToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockCenterRepo) DeviceTokens(ctx context.Context, centerID uint) ([]string, error) {
	args := m.Called(ctx, centerID)
	tokens, _ := args.Get(0).([]string)
	return tokens, args.Error(1)
}

type mockDoctorRepo struct{ mock.Mock }

func (m *mockDoctorRepo) Create(ctx context.Context, doctor *models.Doctor) error {
	return m.Called(ctx, doctor).Error(0)
}

func (m *mockDoctorRepo) FindByID(ctx context.Context, id uint) (*models.Doctor, error) {
	args := m.Called(ctx, id)
	doctor, _ := args.Get(0).(*models.Doctor)
	return doctor, args.Error(1)
}

func (m *mockDoctorRepo) SyncCenter(ctx context.Context, centerID uint, clinicName, city string) ([]models.Doctor, error) {
	args := m.Called(ctx, centerID, clinicName, city)
	doctors, _ := args.Get(0).([]models.Doctor)
	return doctors, args.Error(1)
}

func (m *mockDoctorRepo) ListByCenter(ctx context.Context, centerID uint, filter repository.DoctorFilter) ([]models.Doctor, error) {
	args := m.Called(ctx, centerID, filter)
	doctors, _ := args.Get(0).([]models.Doctor)
	return doctors, args.Error(1)
}

func (m *mockDoctorRepo) Search(ctx context.Context, search repository.DoctorSearch) ([]models.Doctor, error) {
	args := m.Called(ctx, search)
	doctors, _ := args.Get(0).([]models.Doctor)
	return doctors, args.Error(1)
}

func (m *mockDoctorRepo) Update(ctx context.Context, doctor *models.Doctor) error {
	return m.Called(ctx, doctor).Error(0)
}

func (m *mockDoctorRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockDoctorRepo) CountByCenter(ctx context.Context, centerID uint) (int64, error) {
	args := m.Called(ctx, centerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockDoctorRepo) ReplaceAvailability(ctx context.Context, doctorID uint, date time.Time, entries []models.DoctorAvailability) error {
	return m.Called(ctx, doctorID, date, entries).Error(0)
}

func (m *mockDoctorRepo) ListAvailability(ctx context.Context, doctorID uint, from, to time.Time) ([]models.DoctorAvailability, error) {
	args := m.Called(ctx, doctorID, from, to)
	entries, _ := args.Get(0).([]models.DoctorAvailability)
	return entries, args.Error(1)
}

func (m *mockDoctorRepo) FindAvailability(ctx context.Context, doctorID uint, date time.Time, shift string) (*models.DoctorAvailability, error) {
	args := m.Called(ctx, doctorID, date, shift)
	entry, _ := args.Get(0).(*models.DoctorAvailability)
	return entry, args.Error(1)
}

func (m *mockDoctorRepo) DeleteAvailability(ctx context.Context, doctorID, entryID uint) error {
	return m.Called(ctx, doctorID, entryID).Error(0)
}

type mockAppointmentRepo struct{ mock.Mock }

func (m *mockAppointmentRepo) Book(ctx context.Context, appt *models.Appointment, capacity int) error {
	return m.Called(ctx, appt, capacity).Error(0)
}

func (m *mockAppointmentRepo) FindByID(ctx context.Context, id uint) (*models.Appointment, error) {
	args := m.Called(ctx, id)
	appt, _ := args.Get(0).(*models.Appointment)
	return appt, args.Error(1)
}

func (m *mockAppointmentRepo) FindByReference(ctx context.Context, reference string) (*models.Appointment, error) {
	args := m.Called(ctx, reference)
	appt, _ := args.Get(0).(*models.Appointment)
	return appt, args.Error(1)
}

func (m *mockAppointmentRepo) List(ctx context.Context, filter repository.AppointmentFilter) ([]models.Appointment, error) {
	args := m.Called(ctx, filter)
	appts, _ := args.Get(0).([]models.Appointment)
	return appts, args.Error(1)
}

func (m *mockAppointmentRepo) Update(ctx context.Context, appt *models.Appointment) error {
	return m.Called(ctx, appt).Error(0)
}

func (m *mockAppointmentRepo) ActiveCountsByShift(ctx context.Context, doctorID uint, date time.Time) (map[string]int64, error) {
	args := m.Called(ctx, doctorID, date)
	counts, _ := args.Get(0).(map[string]int64)
	return counts, args.Error(1)
}

func (m *mockAppointmentRepo) CountByStatus(ctx context.Context, centerID uint, date *time.Time) (map[string]int64, error) {
	args := m.Called(ctx, centerID, date)
	counts, _ := args.Get(0).(map[string]int64)
	return counts, args.Error(1)
}

func (m *mockAppointmentRepo) CountUpcoming(ctx context.Context, centerID uint, after time.Time) (int64, error) {
	args := m.Called(ctx, centerID, after)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAppointmentRepo) Revenue(ctx context.Context, centerID uint, from, to time.Time) (float64, error) {
	args := m.Called(ctx, centerID, from, to)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockAppointmentRepo) DueReminders(ctx context.Context, date time.Time) ([]models.Appointment, error) {
	args := m.Called(ctx, date)
	appts, _ := args.Get(0).([]models.Appointment)
	return appts, args.Error(1)
}

func (m *mockAppointmentRepo) ExpirePending(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAppointmentRepo) CreatePayment(ctx context.Context, payment *models.Payment) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *mockAppointmentRepo) FindPaymentByOrderID(ctx context.Context, orderID string) (*models.Payment, error) {
	args := m.Called(ctx, orderID)
	payment, _ := args.Get(0).(*models.Payment)
	return payment, args.Error(1)
}

func (m *mockAppointmentRepo) MarkPaid(ctx context.Context, payment *models.Payment, appt *models.Appointment) error {
	return m.Called(ctx, payment, appt).Error(0)
}

type mockQueryRepo struct{ mock.Mock }

func (m *mockQueryRepo) Create(ctx context.Context, query *models.Query) error {
	return m.Called(ctx, query).Error(0)
}

func (m *mockQueryRepo) FindByID(ctx context.Context, id uint) (*models.Query, error) {
	args := m.Called(ctx, id)
	query, _ := args.Get(0).(*models.Query)
	return query, args.Error(1)
}

func (m *mockQueryRepo) List(ctx context.Context, filter repository.QueryFilter) ([]models.Query, error) {
	args := m.Called(ctx, filter)
	queries, _ := args.Get(0).([]models.Query)
	return queries, args.Error(1)
}

func (m *mockQueryRepo) Update(ctx context.Context, query *models.Query) error {
	return m.Called(ctx, query).Error(0)
}

func (m *mockQueryRepo) AddReply(ctx context.Context, query *models.Query, reply *models.QueryReply) error {
	return m.Called(ctx, query, reply).Error(0)
}

func (m *mockQueryRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).(map[string]int64)
	return counts, args.Error(1)
}

type mockAdminRepo struct{ mock.Mock }

func (m *mockAdminRepo) Create(ctx context.Context, admin *models.Admin) error {
	return m.Called(ctx, admin).Error(0)
}

func (m *mockAdminRepo) FindByID(ctx context.Context, id uint) (*models.Admin, error) {
	args := m.Called(ctx, id)
	admin, _ := args.Get(0).(*models.Admin)
	return admin, args.Error(1)
}

func (m *mockAdminRepo) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	args := m.Called(ctx, email)
	admin, _ := args.Get(0).(*models.Admin)
	return admin, args.Error(1)
}

func (m *mockAdminRepo) Update(ctx context.Context, admin *models.Admin) error {
	return m.Called(ctx, admin).Error(0)
}

func (m *mockAdminRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// memoryCache is an in-process Cache.
type memoryCache struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string]string{}}
}

func (c *memoryCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	return v, ok, nil
}

func (c *memoryCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *memoryCache) SetNX(_ context.Context, key, value string, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.values[key]; ok {
		return false, nil
	}
	c.values[key] = value
	return true, nil
}

func (c *memoryCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, _ := strconv.ParseInt(c.values[key], 10, 64)
	n++
	c.values[key] = strconv.FormatInt(n, 10)
	return n, nil
}

func (c *memoryCache) Del(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type sentMail struct {
	To, Subject, Body string
	Attachments       []Attachment
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *recordingMailer) Send(to, subject, body string, attachments ...Attachment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body, Attachments: attachments})
	return nil
}

type stubTokens struct{}

func (stubTokens) IssueAdminToken(admin models.Admin) (string, error) {
	return "admin-token", nil
}

func (stubTokens) IssueClinicToken(center models.ClinicalCenter) (string, error) {
	return "clinic-token", nil
}

func (stubTokens) IssuePatientToken(phone string) (string, error) {
	return "patient-token:" + phone, nil
}

type mockVerifier struct{ mock.Mock }

func (m *mockVerifier) SendCode(ctx context.Context, phone string) error {
	return m.Called(ctx, phone).Error(0)
}

func (m *mockVerifier) CheckCode(ctx context.Context, phone, code string) (bool, error) {
	args := m.Called(ctx, phone, code)
	return args.Bool(0), args.Error(1)
}

type mockGateway struct{ mock.Mock }

func (m *mockGateway) CreateOrder(amountPaise int64, currency, receipt string) (string, error) {
	args := m.Called(amountPaise, currency, receipt)
	return args.String(0), args.Error(1)
}

func (m *mockGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return m.Called(orderID, paymentID, signature).Bool(0)
}

func (m *mockGateway) KeyID() string {
	return "rzp_test_key"
}

// fixedClock pins "now" to 2026-10-17 10:00 UTC.
func fixedClock() time.Time {
	return time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)
}
