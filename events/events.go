// Package events carries doctor and appointment changes to the search index,
// the clinic dashboards and staff devices, over Kafka or in-process.
package events

import (
	"strconv"
	"time"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/models"
)

const (
	TopicDoctors      = "doctor_events"
	TopicAppointments = "appointment_events"

	DoctorUpserted           = "doctor_upserted"
	DoctorDeleted            = "doctor_deleted"
	AppointmentCreated       = "appointment_created"
	AppointmentStatusChanged = "appointment_status_changed"
)

type Event struct {
	Type        string              `json:"event"`
	OccurredAt  time.Time           `json:"occurredAt"`
	CenterID    uint                `json:"centerId"`
	Doctor      *models.Doctor      `json:"doctor,omitempty"`
	Appointment *models.Appointment `json:"appointment,omitempty"`
}

func NewDoctorEvent(eventType string, doctor models.Doctor) Event {
	return Event{
		Type:       eventType,
		OccurredAt: time.Now(),
		CenterID:   doctor.ClinicalCenterID,
		Doctor:     &doctor,
	}
}

func NewAppointmentEvent(eventType string, appt models.Appointment) Event {
	return Event{
		Type:        eventType,
		OccurredAt:  time.Now(),
		CenterID:    appt.ClinicalCenterID,
		Appointment: &appt,
	}
}

// Topic is the Kafka topic the event is written to.
func (e Event) Topic() string {
	if e.Doctor != nil {
		return TopicDoctors
	}
	return TopicAppointments
}

// Key keeps every event of one entity on the same partition.
func (e Event) Key() string {
	switch {
	case e.Doctor != nil:
		return "doctor:" + strconv.FormatUint(uint64(e.Doctor.ID), 10)
	case e.Appointment != nil:
		return "appointment:" + strconv.FormatUint(uint64(e.Appointment.ID), 10)
	}
	return ""
}
