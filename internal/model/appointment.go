package model

import "time"

// Appointment mirrors the 'appointments' table. The doctor is referenced
// by username, not by id; renaming or reusing usernames breaks the link.
// Date and time are stored as the client supplied them and are never
// computed on.
type Appointment struct {
	ID                 string    `json:"id"`
	DoctorUsername     string    `json:"doctorUsername"`
	PatientID          string    `json:"patient"`
	AppointmentDate    string    `json:"appointmentDate"`
	AppointmentTime    string    `json:"appointmentTime"`
	ProblemDescription string    `json:"problemDescription"`
	Consulted          bool      `json:"consulted"`
	CreatedAt          time.Time `json:"-"`
}
