// Package handler implements the HTTP surface: credential management and
// the appointment workflow. Handlers depend on small store interfaces so
// tests can run against in-memory fakes.
package handler

import (
	"context"

	"github.com/medbook/appointment-api/internal/model"
	"github.com/medbook/appointment-api/internal/queue"
)

// UserStore is the credential-store slice the handlers need.
type UserStore interface {
	Create(ctx context.Context, u model.User, password string, cost int) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id string) (model.User, error)
	ListDoctors(ctx context.Context) ([]model.User, error)
}

// AppointmentStore is the appointment-store slice the handlers need.
type AppointmentStore interface {
	Create(ctx context.Context, a model.Appointment) (model.Appointment, error)
	ListByPatient(ctx context.Context, patientID string) ([]model.Appointment, error)
	ListUnconsulted(ctx context.Context, doctorUsername string) ([]model.Appointment, error)
	MarkConsulted(ctx context.Context, id string) (model.Appointment, error)
}

// EventPublisher emits appointment domain events. Publishing is
// best-effort; failures never fail the originating request.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.AppointmentEvent) error
}
