package repository

import (
	"context"
	"time"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AppointmentFilter struct {
	CenterID uint
	DoctorID uint
	Contact  string
	Source   string
	Statuses []string
	Date     *time.Time
	From     *time.Time
	To       *time.Time
	Search   string
}

type AppointmentRepository interface {
	// Book stores appt with the next queue number of its doctor/date/shift.
	// capacity caps the active appointments of that shift; zero disables the cap.
	Book(ctx context.Context, appt *models.Appointment, capacity int) error
	FindByID(ctx context.Context, id uint) (*models.Appointment, error)
	FindByReference(ctx context.Context, reference string) (*models.Appointment, error)
	List(ctx context.Context, filter AppointmentFilter) ([]models.Appointment, error)
	Update(ctx context.Context, appt *models.Appointment) error
	ActiveCountsByShift(ctx context.Context, doctorID uint, date time.Time) (map[string]int64, error)
	CountByStatus(ctx context.Context, centerID uint, date *time.Time) (map[string]int64, error)
	CountUpcoming(ctx context.Context, centerID uint, after time.Time) (int64, error)
	Revenue(ctx context.Context, centerID uint, from, to time.Time) (float64, error)
	DueReminders(ctx context.Context, date time.Time) ([]models.Appointment, error)
	ExpirePending(ctx context.Context, before time.Time) (int64, error)

	CreatePayment(ctx context.Context, payment *models.Payment) error
	FindPaymentByOrderID(ctx context.Context, orderID string) (*models.Payment, error)
	MarkPaid(ctx context.Context, payment *models.Payment, appt *models.Appointment) error
}

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

var activeStatuses = []string{models.AppointmentPending, models.AppointmentConfirmed}

func (r *appointmentRepository) Book(ctx context.Context, appt *models.Appointment, capacity int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The doctor row is the lock that serialises queue numbering.
		var doctor models.Doctor
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").First(&doctor, appt.DoctorID).Error; err != nil {
			return translate(err)
		}

		shift := tx.Model(&models.Appointment{}).
			Where("doctor_id = ? AND date = ? AND shift_time = ?", appt.DoctorID, appt.Date, appt.ShiftTime).
			Session(&gorm.Session{})

		var duplicates int64
		if err := shift.
			Where("patient_contact = ? AND status IN ?", appt.PatientContact, activeStatuses).
			Count(&duplicates).Error; err != nil {
			return err
		}
		if duplicates > 0 {
			return ErrAlreadyBooked
		}

		if capacity > 0 {
			var active int64
			if err := shift.Where("status IN ?", activeStatuses).Count(&active).Error; err != nil {
				return err
			}
			if active >= int64(capacity) {
				return ErrFullyBooked
			}
		}

		var last int
		if err := shift.Unscoped().
			Select("COALESCE(MAX(queue_number), 0)").Scan(&last).Error; err != nil {
			return err
		}
		appt.QueueNumber = last + 1

		return translate(tx.Create(appt).Error)
	})
}

func (r *appointmentRepository) FindByID(ctx context.Context, id uint) (*models.Appointment, error) {
	var appt models.Appointment
	if err := r.db.WithContext(ctx).First(&appt, id).Error; err != nil {
		return nil, translate(err)
	}
	return &appt, nil
}

func (r *appointmentRepository) FindByReference(ctx context.Context, reference string) (*models.Appointment, error) {
	var appt models.Appointment
	if err := r.db.WithContext(ctx).Where("reference_number = ?", reference).First(&appt).Error; err != nil {
		return nil, translate(err)
	}
	return &appt, nil
}

func (r *appointmentRepository) List(ctx context.Context, filter AppointmentFilter) ([]models.Appointment, error) {
	query := r.db.WithContext(ctx).Model(&models.Appointment{})
	if filter.CenterID != 0 {
		query = query.Where("clinical_center_id = ?", filter.CenterID)
	}
	if filter.DoctorID != 0 {
		query = query.Where("doctor_id = ?", filter.DoctorID)
	}
	if filter.Contact != "" {
		query = query.Where("patient_contact = ?", filter.Contact)
	}
	if filter.Source != "" {
		query = query.Where("source = ?", filter.Source)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if filter.Date != nil {
		query = query.Where("date = ?", *filter.Date)
	}
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date <= ?", *filter.To)
	}
	if filter.Search != "" {
		p := likePattern(filter.Search)
		query = query.Where("patient_name ILIKE ? OR patient_contact ILIKE ? OR reference_number ILIKE ? OR doctor_name ILIKE ?", p, p, p, p)
	}

	var appts []models.Appointment
	if err := query.Order("date DESC, shift_time, queue_number").Find(&appts).Error; err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appt *models.Appointment) error {
	return translate(r.db.WithContext(ctx).Save(appt).Error)
}

func (r *appointmentRepository) ActiveCountsByShift(ctx context.Context, doctorID uint, date time.Time) (map[string]int64, error) {
	var rows []struct {
		ShiftTime string
		Count     int64
	}
	err := r.db.WithContext(ctx).Model(&models.Appointment{}).
		Select("shift_time, COUNT(*) as count").
		Where("doctor_id = ? AND date = ? AND status IN ?", doctorID, date, activeStatuses).
		Group("shift_time").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.ShiftTime] = row.Count
	}
	return counts, nil
}

func (r *appointmentRepository) CountByStatus(ctx context.Context, centerID uint, date *time.Time) (map[string]int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Appointment{}).Select("status, COUNT(*) as count")
	if centerID != 0 {
		query = query.Where("clinical_center_id = ?", centerID)
	}
	if date != nil {
		query = query.Where("date = ?", *date)
	}

	var rows []struct {
		Status string
		Count  int64
	}
	if err := query.Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *appointmentRepository) CountUpcoming(ctx context.Context, centerID uint, after time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("clinical_center_id = ? AND date > ? AND status IN ?", centerID, after, activeStatuses).
		Count(&count).Error
	return count, err
}

// Revenue sums fees of completed appointments dated within [from, to].
func (r *appointmentRepository) Revenue(ctx context.Context, centerID uint, from, to time.Time) (float64, error) {
	var total float64
	query := r.db.WithContext(ctx).Model(&models.Appointment{}).
		Select("COALESCE(SUM(consultation_fee + drug_fee), 0)").
		Where("status = ? AND date BETWEEN ? AND ?", models.AppointmentCompleted, from, to)
	if centerID != 0 {
		query = query.Where("clinical_center_id = ?", centerID)
	}
	err := query.Scan(&total).Error
	return total, err
}

func (r *appointmentRepository) DueReminders(ctx context.Context, date time.Time) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := r.db.WithContext(ctx).
		Where("date = ? AND status = ? AND reminder_sent = ? AND patient_email <> ''", date, models.AppointmentConfirmed, false).
		Find(&appts).Error
	return appts, err
}

func (r *appointmentRepository) ExpirePending(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("status = ? AND date < ?", models.AppointmentPending, before).
		Update("status", models.AppointmentCancelled)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) CreatePayment(ctx context.Context, payment *models.Payment) error {
	return translate(r.db.WithContext(ctx).Create(payment).Error)
}

func (r *appointmentRepository) FindPaymentByOrderID(ctx context.Context, orderID string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).Where("razorpay_order_id = ?", orderID).First(&payment).Error; err != nil {
		return nil, translate(err)
	}
	return &payment, nil
}

// MarkPaid saves the captured payment and the paid appointment together.
func (r *appointmentRepository) MarkPaid(ctx context.Context, payment *models.Payment, appt *models.Appointment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(payment).Error; err != nil {
			return err
		}
		return tx.Save(appt).Error
	})
}
