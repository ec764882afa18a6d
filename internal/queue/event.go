// Package queue defines the appointment domain events exchanged over the
// message broker and the background consumer that records them.
package queue

// QueueName is the durable queue carrying all appointment events.
const QueueName = "appointment.events"

// Event types.
const (
	EventBooked    = "booked"
	EventConsulted = "consulted"
)

// AppointmentEvent is published when an appointment is booked or marked
// consulted. It carries enough for downstream consumers to log or notify
// without querying the primary database.
type AppointmentEvent struct {
	Type            string `json:"type"`
	AppointmentID   string `json:"appointment_id"`
	PatientID       string `json:"patient_id,omitempty"`
	DoctorUsername  string `json:"doctor_username"`
	AppointmentDate string `json:"appointment_date,omitempty"`
	AppointmentTime string `json:"appointment_time,omitempty"`
	OccurredAt      string `json:"occurred_at"`
}
