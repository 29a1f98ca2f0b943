package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/models"
	"go.uber.org/zap"
)

type DoctorIndexer interface {
	IndexDoctor(ctx context.Context, doctor models.Doctor) error
	DeleteDoctor(ctx context.Context, doctorID uint) error
}

type Broadcaster interface {
	Broadcast(centerID uint, event Event)
}

type DevicePusher interface {
	NotifyCenter(ctx context.Context, centerID uint, title, body string) error
}

// Dispatcher fans an event out to whichever sinks are configured; nil sinks are skipped.
type Dispatcher struct {
	indexer     DoctorIndexer
	broadcaster Broadcaster
	pusher      DevicePusher
	log         *zap.Logger
}

func NewDispatcher(indexer DoctorIndexer, broadcaster Broadcaster, pusher DevicePusher, log *zap.Logger) *Dispatcher {
	return &Dispatcher{indexer: indexer, broadcaster: broadcaster, pusher: pusher, log: log}
}

func (d *Dispatcher) Handle(ctx context.Context, event Event) error {
	var errs []error

	switch event.Type {
	case DoctorUpserted:
		if d.indexer != nil && event.Doctor != nil {
			if err := d.indexer.IndexDoctor(ctx, *event.Doctor); err != nil {
				errs = append(errs, fmt.Errorf("index doctor %d: %w", event.Doctor.ID, err))
			}
		}
	case DoctorDeleted:
		if d.indexer != nil && event.Doctor != nil {
			if err := d.indexer.DeleteDoctor(ctx, event.Doctor.ID); err != nil {
				errs = append(errs, fmt.Errorf("delete doctor %d: %w", event.Doctor.ID, err))
			}
		}
	case AppointmentCreated:
		if d.pusher != nil && event.Appointment != nil {
			a := event.Appointment
			body := fmt.Sprintf("%s booked with Dr. %s on %s (%s), queue #%d",
				a.PatientName, a.DoctorName, a.Date.Format("02 Jan 2006"), a.ShiftTime, a.QueueNumber)
			if err := d.pusher.NotifyCenter(ctx, event.CenterID, "New appointment", body); err != nil {
				errs = append(errs, fmt.Errorf("push appointment %d: %w", a.ID, err))
			}
		}
	}

	if d.broadcaster != nil && event.Appointment != nil {
		d.broadcaster.Broadcast(event.CenterID, event)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
