package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/medbook/appointment-api/internal/model"
)

type AppointmentRepo struct{ DB *sql.DB }

func NewAppointmentRepo(db *sql.DB) *AppointmentRepo { return &AppointmentRepo{DB: db} }

const apptColumns = "id, doctor_username, patient_id, appointment_date, appointment_time, problem_description, consulted, created_at"

// Create assigns an id and inserts the appointment. The doctor username
// is stored as given; nothing checks that it resolves to a doctor.
func (r *AppointmentRepo) Create(ctx context.Context, a model.Appointment) (model.Appointment, error) {
	a.ID = uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO appointments (id, doctor_username, patient_id, appointment_date, appointment_time, problem_description, consulted)
		 VALUES (?,?,?,?,?,?,?)`,
		a.ID, a.DoctorUsername, a.PatientID, a.AppointmentDate, a.AppointmentTime, a.ProblemDescription, a.Consulted)
	if err != nil {
		return model.Appointment{}, err
	}
	return a, nil
}

// ListByPatient returns every appointment booked by the patient.
func (r *AppointmentRepo) ListByPatient(ctx context.Context, patientID string) ([]model.Appointment, error) {
	return r.list(ctx,
		"SELECT "+apptColumns+" FROM appointments WHERE patient_id=? ORDER BY created_at", patientID)
}

// ListUnconsulted returns the doctor's open appointments.
func (r *AppointmentRepo) ListUnconsulted(ctx context.Context, doctorUsername string) ([]model.Appointment, error) {
	return r.list(ctx,
		"SELECT "+apptColumns+" FROM appointments WHERE doctor_username=? AND consulted=0 ORDER BY created_at",
		doctorUsername)
}

// GetByID fetches one appointment, mapping a missing row to ErrNotFound.
func (r *AppointmentRepo) GetByID(ctx context.Context, id string) (model.Appointment, error) {
	a, err := scanAppointment(r.DB.QueryRowContext(ctx,
		"SELECT "+apptColumns+" FROM appointments WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Appointment{}, ErrNotFound
	}
	return a, err
}

// MarkConsulted unconditionally flips the consulted flag and returns the
// updated record. The flip is one-way and idempotent; a second call on
// the same id succeeds and leaves the flag true.
func (r *AppointmentRepo) MarkConsulted(ctx context.Context, id string) (model.Appointment, error) {
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE appointments SET consulted=1 WHERE id=?", id); err != nil {
		return model.Appointment{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *AppointmentRepo) list(ctx context.Context, query string, args ...any) ([]model.Appointment, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	appts := make([]model.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appts = append(appts, a)
	}
	return appts, rows.Err()
}

func scanAppointment(row rowScanner) (model.Appointment, error) {
	var a model.Appointment
	err := row.Scan(&a.ID, &a.DoctorUsername, &a.PatientID, &a.AppointmentDate,
		&a.AppointmentTime, &a.ProblemDescription, &a.Consulted, &a.CreatedAt)
	return a, err
}
