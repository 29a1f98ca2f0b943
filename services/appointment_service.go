package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/documents"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/events"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/models"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/monitoring"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const bookingAttempts = 3

// appointmentTransitions lists the statuses each status may move to.
var appointmentTransitions = map[string][]string{
	models.AppointmentPending:   {models.AppointmentConfirmed, models.AppointmentCancelled},
	models.AppointmentConfirmed: {models.AppointmentCompleted, models.AppointmentCancelled},
}

// CanTransitionAppointment reports whether an appointment may move from one status to another.
func CanTransitionAppointment(from, to string) bool {
	for _, next := range appointmentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type PatientInput struct {
	PatientName    string `json:"patientName" validate:"required,max=80"`
	PatientGender  string `json:"patientGender" validate:"required,oneof=Male Female Other"`
	PatientAge     int    `json:"patientAge" validate:"required,gte=1,lte=120"`
	PatientContact string `json:"patientContact" validate:"required,phone10"`
	PatientEmail   string `json:"patientEmail" validate:"omitempty,emailaddr,max=120"`
}

func (in *PatientInput) normalize() {
	in.PatientName = SentenceCase(in.PatientName)
	in.PatientGender = SentenceCase(in.PatientGender)
	in.PatientContact = NormalizePhone(in.PatientContact)
	in.PatientEmail = NormalizeEmail(in.PatientEmail)
}

type BookingInput struct {
	PatientInput
	DoctorID  uint   `json:"doctorId" validate:"required"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	ShiftTime string `json:"shiftTime" validate:"required"`
}

// WalkInInput registers an outstanding patient for today.
type WalkInInput struct {
	PatientInput
	DoctorID  uint   `json:"doctorId" validate:"required"`
	ShiftTime string `json:"shiftTime" validate:"required"`
	Notes     string `json:"notes" validate:"max=500"`
}

// FeesInput updates the amounts billed; nil fields are left unchanged.
type FeesInput struct {
	ConsultationFee *float64 `json:"consultationFee" validate:"omitempty,gte=0,lte=100000"`
	DrugFee         *float64 `json:"drugFee" validate:"omitempty,gte=0,lte=100000"`
}

type VerifyPaymentInput struct {
	OrderID   string `json:"razorpay_order_id" validate:"required"`
	PaymentID string `json:"razorpay_payment_id" validate:"required"`
	Signature string `json:"razorpay_signature" validate:"required"`
}

// Booking is the confirmation handed back to the patient.
type Booking struct {
	Appointment *models.Appointment `json:"appointment"`
	QRPayload   string              `json:"qrPayload"`
	ReceiptURL  string              `json:"receiptUrl"`
}

type PaymentOrder struct {
	OrderID  string  `json:"orderId"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	KeyID    string  `json:"keyId"`
}

type AppointmentQuery struct {
	Date     string
	From     string
	To       string
	Status   string
	Source   string
	DoctorID uint
	Search   string
}

type ClinicDashboard struct {
	Today        map[string]int64 `json:"today"`
	TodayTotal   int64            `json:"todayTotal"`
	Upcoming     int64            `json:"upcoming"`
	RevenueToday float64          `json:"revenueToday"`
	RevenueMonth float64          `json:"revenueMonth"`
	Doctors      int64            `json:"doctors"`
}

type AppointmentDeps struct {
	Appointments repository.AppointmentRepository
	Doctors      repository.DoctorRepository
	Centers      repository.CenterRepository
	Gateway      PaymentGateway
	Mailer       Mailer
	Publisher    EventPublisher
	Now          Clock
	ServiceFee   float64
	Log          *zap.Logger
}

type AppointmentService struct {
	appointments repository.AppointmentRepository
	doctors      repository.DoctorRepository
	centers      repository.CenterRepository
	gateway      PaymentGateway
	mailer       Mailer
	publisher    EventPublisher
	now          Clock
	serviceFee   float64
	log          *zap.Logger
}

func NewAppointmentService(deps AppointmentDeps) *AppointmentService {
	return &AppointmentService{
		appointments: deps.Appointments,
		doctors:      deps.Doctors,
		centers:      deps.Centers,
		gateway:      deps.Gateway,
		mailer:       deps.Mailer,
		publisher:    deps.Publisher,
		now:          deps.Now,
		serviceFee:   deps.ServiceFee,
		log:          deps.Log,
	}
}

// Book places a public online booking. It starts pending until the clinic confirms it.
func (s *AppointmentService) Book(ctx context.Context, in BookingInput) (*Booking, error) {
	in.normalize()
	in.ShiftTime = NormalizeShift(in.ShiftTime)
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

	doctor, center, err := s.bookableDoctor(ctx, in.DoctorID)
	if err != nil {
		return nil, err
	}
	if !doctor.HasShift(in.ShiftTime) {
		return nil, fieldError(ErrValidation, "Validation failed", "shiftTime", "Not one of the doctor's shift times")
	}
	entry, err := s.doctors.FindAvailability(ctx, doctor.ID, date, in.ShiftTime)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fieldError(ErrConflict, "Doctor is not available for this shift on the selected date", "shiftTime", "Doctor is not available for this shift on the selected date")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load availability: %w", err)
	}

	appt := &models.Appointment{
		ClinicalCenterID: center.ID,
		DoctorID:         doctor.ID,
		DoctorName:       doctor.Name,
		ClinicName:       center.ClinicName,
		PatientName:      in.PatientName,
		PatientGender:    in.PatientGender,
		PatientAge:       in.PatientAge,
		PatientContact:   in.PatientContact,
		PatientEmail:     in.PatientEmail,
		Date:             date,
		ShiftTime:        in.ShiftTime,
		Status:           models.AppointmentPending,
		Source:           models.SourceOnline,
		ConsultationFee:  doctor.ConsultationFee,
		PaymentStatus:    models.PaymentUnpaid,
	}
	if err := s.book(ctx, appt, entry.MaxPatients); err != nil {
		return nil, err
	}

	if appt.PatientEmail != "" {
		go s.sendConfirmation(*appt)
	}
	return &Booking{
		Appointment: appt,
		QRPayload:   documents.QRPayload(*appt),
		ReceiptURL:  ReceiptPath(appt.ReferenceNumber),
	}, nil
}

// WalkIn books an outstanding patient into today's queue. Walk-ins are confirmed on arrival.
func (s *AppointmentService) WalkIn(ctx context.Context, centerID uint, in WalkInInput) (*models.Appointment, error) {
	in.normalize()
	in.ShiftTime = NormalizeShift(in.ShiftTime)
	in.Notes = strings.TrimSpace(in.Notes)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	doctor, err := s.doctors.FindByID(ctx, in.DoctorID)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && doctor.ClinicalCenterID != centerID) {
		return nil, fieldError(ErrNotFound, "Doctor not found", "doctorId", "Doctor not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load doctor: %w", err)
	}
	if !doctor.HasShift(in.ShiftTime) {
		return nil, fieldError(ErrValidation, "Validation failed", "shiftTime", "Not one of the doctor's shift times")
	}

	today := dateOnly(s.now())
	capacity := 0
	entry, err := s.doctors.FindAvailability(ctx, doctor.ID, today, in.ShiftTime)
	switch {
	case err == nil:
		capacity = entry.MaxPatients
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("failed to load availability: %w", err)
	}

	appt := &models.Appointment{
		ClinicalCenterID: centerID,
		DoctorID:         doctor.ID,
		DoctorName:       doctor.Name,
		ClinicName:       doctor.ClinicName,
		PatientName:      in.PatientName,
		PatientGender:    in.PatientGender,
		PatientAge:       in.PatientAge,
		PatientContact:   in.PatientContact,
		PatientEmail:     in.PatientEmail,
		Date:             today,
		ShiftTime:        in.ShiftTime,
		Status:           models.AppointmentConfirmed,
		Source:           models.SourceWalkIn,
		ConsultationFee:  doctor.ConsultationFee,
		PaymentStatus:    models.PaymentUnpaid,
		Notes:            in.Notes,
	}
	if err := s.book(ctx, appt, capacity); err != nil {
		return nil, err
	}
	return appt, nil
}

// book stores appt under a fresh reference, retrying when a reference collides.
func (s *AppointmentService) book(ctx context.Context, appt *models.Appointment, capacity int) error {
	var err error
	for attempt := 0; attempt < bookingAttempts; attempt++ {
		appt.ReferenceNumber = NewReference(s.now())
		err = s.appointments.Book(ctx, appt, capacity)
		if !errors.Is(err, repository.ErrDuplicate) {
			break
		}
	}

	switch {
	case err == nil:
	case errors.Is(err, repository.ErrAlreadyBooked):
		return fieldError(ErrConflict, "An appointment for this contact already exists in this shift", "patientContact", "Already booked for this shift")
	case errors.Is(err, repository.ErrFullyBooked):
		return fieldError(ErrFullyBooked, "Shift is fully booked", "shiftTime", "Shift is fully booked")
	case errors.Is(err, repository.ErrNotFound):
		return newError(ErrNotFound, "Doctor not found")
	default:
		return fmt.Errorf("failed to book appointment: %w", err)
	}

	monitoring.AppointmentsBooked.WithLabelValues(appt.Source).Inc()
	s.publish(ctx, events.AppointmentCreated, *appt)
	s.log.Info("appointment booked",
		zap.String("reference", appt.ReferenceNumber),
		zap.Uint("doctor_id", appt.DoctorID),
		zap.String("source", appt.Source),
		zap.Int("queue_number", appt.QueueNumber))
	return nil
}

func (s *AppointmentService) bookableDoctor(ctx context.Context, doctorID uint) (*models.Doctor, *models.ClinicalCenter, error) {
	doctor, err := s.doctors.FindByID(ctx, doctorID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, fieldError(ErrNotFound, "Doctor not found", "doctorId", "Doctor not found")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load doctor: %w", err)
	}
	if doctor.Status != models.DoctorAvailable {
		return nil, nil, fieldError(ErrConflict, "Doctor is not available", "doctorId", "Doctor is not available")
	}
	center, err := s.centers.FindByID(ctx, doctor.ClinicalCenterID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, fieldError(ErrNotFound, "Doctor not found", "doctorId", "Doctor not found")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load clinical center: %w", err)
	}
	if !center.CanOperate() {
		return nil, nil, newError(ErrConflict, "Clinic is not accepting bookings")
	}
	return doctor, center, nil
}

func (s *AppointmentService) ListForCenter(ctx context.Context, centerID uint, q AppointmentQuery) ([]models.Appointment, error) {
	filter := repository.AppointmentFilter{
		CenterID: centerID,
		DoctorID: q.DoctorID,
		Source:   q.Source,
		Search:   strings.TrimSpace(q.Search),
	}
	if q.Status != "" {
		if !validAppointmentStatus(q.Status) {
			return nil, fieldError(ErrValidation, "Invalid status filter", "status", "Unknown status")
		}
		filter.Statuses = []string{q.Status}
	}
	if err := s.applyDates(&filter, q); err != nil {
		return nil, err
	}
	return s.list(ctx, filter)
}

// History lists finished appointments: completed and cancelled.
func (s *AppointmentService) History(ctx context.Context, centerID uint, q AppointmentQuery) ([]models.Appointment, error) {
	filter := repository.AppointmentFilter{
		CenterID: centerID,
		DoctorID: q.DoctorID,
		Statuses: []string{models.AppointmentCompleted, models.AppointmentCancelled},
		Search:   strings.TrimSpace(q.Search),
	}
	if q.Status == models.AppointmentCompleted || q.Status == models.AppointmentCancelled {
		filter.Statuses = []string{q.Status}
	}
	if err := s.applyDates(&filter, q); err != nil {
		return nil, err
	}
	return s.list(ctx, filter)
}

// ListWalkIns lists outstanding patients of a day, today by default.
func (s *AppointmentService) ListWalkIns(ctx context.Context, centerID uint, q AppointmentQuery) ([]models.Appointment, error) {
	if q.Date == "" && q.From == "" && q.To == "" {
		q.Date = s.now().Format(dateLayout)
	}
	q.Source = models.SourceWalkIn
	return s.ListForCenter(ctx, centerID, q)
}

func (s *AppointmentService) UpdateStatus(ctx context.Context, centerID, id uint, status string) (*models.Appointment, error) {
	if !validAppointmentStatus(status) {
		return nil, fieldError(ErrValidation, "Invalid status", "status", "Must be one of: pending, confirmed, cancelled, completed")
	}
	appt, err := s.forCenter(ctx, centerID, id)
	if err != nil {
		return nil, err
	}
	if err := s.transition(ctx, appt, status); err != nil {
		return nil, err
	}
	return appt, nil
}

func (s *AppointmentService) UpdateFees(ctx context.Context, centerID, id uint, in FeesInput) (*models.Appointment, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	appt, err := s.forCenter(ctx, centerID, id)
	if err != nil {
		return nil, err
	}
	if appt.Status == models.AppointmentCancelled {
		return nil, newError(ErrInvalidTransition, "Fees of a cancelled appointment cannot be changed")
	}
	in.apply(appt)
	if err := s.appointments.Update(ctx, appt); err != nil {
		return nil, fmt.Errorf("failed to update fees: %w", err)
	}
	return appt, nil
}

// CompleteWalkIn records the fees of an outstanding patient and closes the visit.
func (s *AppointmentService) CompleteWalkIn(ctx context.Context, centerID, id uint, in FeesInput) (*models.Appointment, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	appt, err := s.forCenter(ctx, centerID, id)
	if err != nil {
		return nil, err
	}
	if appt.Source != models.SourceWalkIn {
		return nil, newError(ErrNotFound, "Outstanding patient not found")
	}
	if !CanTransitionAppointment(appt.Status, models.AppointmentCompleted) {
		return nil, newError(ErrInvalidTransition, fmt.Sprintf("Cannot change status from %s to %s", appt.Status, models.AppointmentCompleted))
	}
	in.apply(appt)
	if err := s.transition(ctx, appt, models.AppointmentCompleted); err != nil {
		return nil, err
	}
	return appt, nil
}

func (s *AppointmentService) ListForPatient(ctx context.Context, phone string) ([]models.Appointment, error) {
	return s.list(ctx, repository.AppointmentFilter{Contact: phone})
}

// CancelByPatient cancels one of the patient's own upcoming appointments.
func (s *AppointmentService) CancelByPatient(ctx context.Context, phone string, id uint) (*models.Appointment, error) {
	appt, err := s.forPatient(ctx, phone, id)
	if err != nil {
		return nil, err
	}
	if appt.Date.Before(dateOnly(s.now())) {
		return nil, newError(ErrInvalidTransition, "Past appointments cannot be cancelled")
	}
	if err := s.transition(ctx, appt, models.AppointmentCancelled); err != nil {
		return nil, err
	}
	return appt, nil
}

// Receipt renders the PDF receipt of the appointment with the given reference.
func (s *AppointmentService) Receipt(ctx context.Context, reference string) ([]byte, *models.Appointment, error) {
	appt, err := s.appointments.FindByReference(ctx, strings.ToUpper(strings.TrimSpace(reference)))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, newError(ErrNotFound, "Appointment not found")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load appointment: %w", err)
	}
	pdf, err := documents.Receipt(*appt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to render receipt: %w", err)
	}
	return pdf, appt, nil
}

// Export writes the center's appointments between from and to into a workbook.
// The range defaults to the current month.
func (s *AppointmentService) Export(ctx context.Context, centerID uint, from, to string) ([]byte, error) {
	now := s.now()
	if from == "" {
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format(dateLayout)
	}
	start, end, err := parseRange(now, from, to, 0)
	if err != nil {
		return nil, err
	}
	if to == "" {
		end = start.AddDate(0, 1, -1)
	}

	appts, err := s.list(ctx, repository.AppointmentFilter{CenterID: centerID, From: &start, To: &end})
	if err != nil {
		return nil, err
	}
	out, err := documents.AppointmentsWorkbook(appts)
	if err != nil {
		return nil, fmt.Errorf("failed to build workbook: %w", err)
	}
	return out, nil
}

func (s *AppointmentService) Dashboard(ctx context.Context, centerID uint) (*ClinicDashboard, error) {
	today := dateOnly(s.now())
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())

	counts, err := s.appointments.CountByStatus(ctx, centerID, &today)
	if err != nil {
		return nil, fmt.Errorf("failed to count appointments: %w", err)
	}
	dashboard := &ClinicDashboard{Today: map[string]int64{}}
	for _, status := range []string{models.AppointmentPending, models.AppointmentConfirmed, models.AppointmentCancelled, models.AppointmentCompleted} {
		dashboard.Today[status] = counts[status]
		dashboard.TodayTotal += counts[status]
	}

	if dashboard.Upcoming, err = s.appointments.CountUpcoming(ctx, centerID, today); err != nil {
		return nil, fmt.Errorf("failed to count upcoming appointments: %w", err)
	}
	if dashboard.RevenueToday, err = s.appointments.Revenue(ctx, centerID, today, today); err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}
	if dashboard.RevenueMonth, err = s.appointments.Revenue(ctx, centerID, monthStart, today); err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}
	if dashboard.Doctors, err = s.doctors.CountByCenter(ctx, centerID); err != nil {
		return nil, fmt.Errorf("failed to count doctors: %w", err)
	}
	return dashboard, nil
}

// CreatePaymentOrder raises a Razorpay order for the consultation fee plus the booking fee.
func (s *AppointmentService) CreatePaymentOrder(ctx context.Context, phone string, id uint) (*PaymentOrder, error) {
	appt, err := s.forPatient(ctx, phone, id)
	if err != nil {
		return nil, err
	}
	if appt.PaymentStatus == models.PaymentPaid {
		return nil, newError(ErrConflict, "Appointment is already paid")
	}
	if !appt.IsActive() {
		return nil, newError(ErrConflict, "Only pending or confirmed appointments can be paid")
	}

	amount := appt.ConsultationFee + s.serviceFee
	orderID, err := s.gateway.CreateOrder(int64(math.Round(amount*100)), "INR", appt.ReferenceNumber)
	if err != nil {
		s.log.Error("razorpay order failed", zap.String("reference", appt.ReferenceNumber), zap.Error(err))
		return nil, newError(ErrUnavailable, "Payment gateway is unavailable, try again later")
	}

	payment := &models.Payment{
		AppointmentID:   appt.ID,
		RazorpayOrderID: orderID,
		Amount:          amount,
		Currency:        "INR",
		Status:          models.PaymentOrderCreated,
	}
	if err := s.appointments.CreatePayment(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to store payment: %w", err)
	}
	appt.PaymentOrderID = orderID
	if err := s.appointments.Update(ctx, appt); err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}

	return &PaymentOrder{OrderID: orderID, Amount: amount, Currency: "INR", KeyID: s.gateway.KeyID()}, nil
}

func (s *AppointmentService) VerifyPayment(ctx context.Context, phone string, id uint, in VerifyPaymentInput) (*models.Appointment, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	appt, err := s.forPatient(ctx, phone, id)
	if err != nil {
		return nil, err
	}
	payment, err := s.appointments.FindPaymentByOrderID(ctx, in.OrderID)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && payment.AppointmentID != appt.ID) {
		return nil, fieldError(ErrNotFound, "Payment order not found", "razorpay_order_id", "Unknown order")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load payment: %w", err)
	}
	if payment.Status == models.PaymentOrderPaid {
		return appt, nil
	}
	if !s.gateway.VerifySignature(in.OrderID, in.PaymentID, in.Signature) {
		s.log.Warn("payment signature mismatch", zap.String("order_id", in.OrderID))
		return nil, newError(ErrValidation, "Invalid payment signature")
	}

	payment.RazorpayPaymentID = in.PaymentID
	payment.Status = models.PaymentOrderPaid
	appt.PaymentStatus = models.PaymentPaid
	if err := s.appointments.MarkPaid(ctx, payment, appt); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}
	s.log.Info("appointment paid", zap.String("reference", appt.ReferenceNumber), zap.String("payment_id", in.PaymentID))
	return appt, nil
}

// SendReminders emails every patient with a confirmed appointment today, once.
func (s *AppointmentService) SendReminders(ctx context.Context) (int, error) {
	appts, err := s.appointments.DueReminders(ctx, dateOnly(s.now()))
	if err != nil {
		return 0, fmt.Errorf("failed to load reminders: %w", err)
	}

	sent := 0
	for i := range appts {
		appt := &appts[i]
		body := fmt.Sprintf("Dear %s,\n\nThis is a reminder of your appointment with Dr. %s at %s today (%s).\nYour queue number is %d and your reference is %s.\n\nThank you.",
			appt.PatientName, appt.DoctorName, appt.ClinicName, appt.ShiftTime, appt.QueueNumber, appt.ReferenceNumber)
		if err := s.mailer.Send(appt.PatientEmail, "Appointment reminder", body); err != nil {
			s.log.Warn("reminder email failed", zap.String("reference", appt.ReferenceNumber), zap.Error(err))
			continue
		}
		appt.ReminderSent = true
		if err := s.appointments.Update(ctx, appt); err != nil {
			return sent, fmt.Errorf("failed to mark reminder sent: %w", err)
		}
		sent++
	}
	return sent, nil
}

// ExpireStalePending cancels pending bookings whose day has already passed.
func (s *AppointmentService) ExpireStalePending(ctx context.Context) (int64, error) {
	n, err := s.appointments.ExpirePending(ctx, dateOnly(s.now()))
	if err != nil {
		return 0, fmt.Errorf("failed to expire pending appointments: %w", err)
	}
	return n, nil
}

func (s *AppointmentService) transition(ctx context.Context, appt *models.Appointment, status string) error {
	if !CanTransitionAppointment(appt.Status, status) {
		return newError(ErrInvalidTransition, fmt.Sprintf("Cannot change status from %s to %s", appt.Status, status))
	}
	appt.Status = status
	if err := s.appointments.Update(ctx, appt); err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}
	s.publish(ctx, events.AppointmentStatusChanged, *appt)
	return nil
}

func (s *AppointmentService) forCenter(ctx context.Context, centerID, id uint) (*models.Appointment, error) {
	appt, err := s.appointments.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && appt.ClinicalCenterID != centerID) {
		return nil, newError(ErrNotFound, "Appointment not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load appointment: %w", err)
	}
	return appt, nil
}

func (s *AppointmentService) forPatient(ctx context.Context, phone string, id uint) (*models.Appointment, error) {
	appt, err := s.appointments.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && appt.PatientContact != phone) {
		return nil, newError(ErrNotFound, "Appointment not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load appointment: %w", err)
	}
	return appt, nil
}

func (s *AppointmentService) list(ctx context.Context, filter repository.AppointmentFilter) ([]models.Appointment, error) {
	appts, err := s.appointments.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	if appts == nil {
		appts = []models.Appointment{}
	}
	return appts, nil
}

func (s *AppointmentService) applyDates(filter *repository.AppointmentFilter, q AppointmentQuery) error {
	loc := s.now().Location()
	if q.Date != "" {
		date, err := parseDate(q.Date, loc)
		if err != nil {
			return fieldError(ErrValidation, "Validation failed", "date", "Use the YYYY-MM-DD format")
		}
		filter.Date = &date
	}
	if q.From != "" {
		from, err := parseDate(q.From, loc)
		if err != nil {
			return fieldError(ErrValidation, "Validation failed", "from", "Use the YYYY-MM-DD format")
		}
		filter.From = &from
	}
	if q.To != "" {
		to, err := parseDate(q.To, loc)
		if err != nil {
			return fieldError(ErrValidation, "Validation failed", "to", "Use the YYYY-MM-DD format")
		}
		filter.To = &to
	}
	return nil
}

func (s *AppointmentService) publish(ctx context.Context, eventType string, appt models.Appointment) {
	if err := s.publisher.Publish(ctx, events.NewAppointmentEvent(eventType, appt)); err != nil {
		s.log.Warn("failed to publish appointment event", zap.String("event", eventType), zap.String("reference", appt.ReferenceNumber), zap.Error(err))
	}
}

func (s *AppointmentService) sendConfirmation(appt models.Appointment) {
	receipt, err := documents.Receipt(appt)
	if err != nil {
		s.log.Warn("failed to render receipt", zap.String("reference", appt.ReferenceNumber), zap.Error(err))
		return
	}
	body := fmt.Sprintf("Dear %s,\n\nYour appointment with Dr. %s at %s on %s (%s) has been received.\nQueue number: %d\nReference: %s\n\nThe receipt is attached.",
		appt.PatientName, appt.DoctorName, appt.ClinicName, appt.Date.Format("02 Jan 2006"), appt.ShiftTime, appt.QueueNumber, appt.ReferenceNumber)
	attachment := Attachment{Name: appt.ReferenceNumber + ".pdf", Content: receipt}
	if err := s.mailer.Send(appt.PatientEmail, "Appointment booked", body, attachment); err != nil {
		s.log.Warn("confirmation email failed", zap.String("reference", appt.ReferenceNumber), zap.Error(err))
	}
}

func (in FeesInput) apply(appt *models.Appointment) {
	if in.ConsultationFee != nil {
		appt.ConsultationFee = *in.ConsultationFee
	}
	if in.DrugFee != nil {
		appt.DrugFee = *in.DrugFee
	}
}

// NewReference returns a booking reference such as APT-20261020-1A2B3C4D.
func NewReference(now time.Time) string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("APT-%s-%s", now.Format("20060102"), id[:8])
}

func ReceiptPath(reference string) string {
	return "/api/v1/user/appointments/" + reference + "/receipt"
}

func validAppointmentStatus(status string) bool {
	switch status {
	case models.AppointmentPending, models.AppointmentConfirmed, models.AppointmentCancelled, models.AppointmentCompleted:
		return true
	}
	return false
}
