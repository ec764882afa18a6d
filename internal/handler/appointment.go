package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medbook/appointment-api/internal/middleware"
	"github.com/medbook/appointment-api/internal/model"
	"github.com/medbook/appointment-api/internal/queue"
	"github.com/medbook/appointment-api/internal/repository"
)

// AppointmentHandler implements the booking workflow: book, list
// doctors, patient history, the doctor's open list and consult
// completion.
type AppointmentHandler struct {
	Users        UserStore
	Appointments AppointmentStore
	Events       EventPublisher // optional
}

func NewAppointmentHandler(users UserStore, appts AppointmentStore, events EventPublisher) *AppointmentHandler {
	return &AppointmentHandler{Users: users, Appointments: appts, Events: events}
}

type bookReq struct {
	DoctorUsername     string `json:"doctorUsername"`
	AppointmentDate    string `json:"appointmentDate"`
	AppointmentTime    string `json:"appointmentTime"`
	ProblemDescription string `json:"problemDescription"`
}

type doctorResp struct {
	UserName string `json:"userName"`
}

type patientResp struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
	Contact  string `json:"contact"`
}

type unconsultedResp struct {
	ID                 string      `json:"id"`
	AppointmentDate    string      `json:"appointmentDate"`
	AppointmentTime    string      `json:"appointmentTime"`
	ProblemDescription string      `json:"problemDescription"`
	Patient            patientResp `json:"patient"`
}

// Book creates an appointment for the authenticated caller. All four
// fields are required; nothing verifies that the doctor exists, that the
// slot lies in the future or that it is free — acknowledged gaps kept as
// product behavior.
func (h *AppointmentHandler) Book(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Authentication required."})
	}
	var req bookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body."})
	}
	if req.DoctorUsername == "" || req.AppointmentDate == "" || req.AppointmentTime == "" || req.ProblemDescription == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "All fields are required."})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	appt, err := h.Appointments.Create(ctx, model.Appointment{
		DoctorUsername:     req.DoctorUsername,
		PatientID:          u.ID,
		AppointmentDate:    req.AppointmentDate,
		AppointmentTime:    req.AppointmentTime,
		ProblemDescription: req.ProblemDescription,
		Consulted:          false,
	})
	if err != nil {
		log.Printf("book: create appointment for patient %s: %v", u.ID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error booking appointment."})
	}

	h.publish(ctx, queue.AppointmentEvent{
		Type:            queue.EventBooked,
		AppointmentID:   appt.ID,
		PatientID:       appt.PatientID,
		DoctorUsername:  appt.DoctorUsername,
		AppointmentDate: appt.AppointmentDate,
		AppointmentTime: appt.AppointmentTime,
		OccurredAt:      time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{"message": "Appointment booked successfully!"})
}

// GetDoctors lists the username of every registered doctor. An empty
// list is a valid response, not an error.
func (h *AppointmentHandler) GetDoctors(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	doctors, err := h.Users.ListDoctors(ctx)
	if err != nil {
		log.Printf("getdoctors: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
	}
	out := make([]doctorResp, 0, len(doctors))
	for _, d := range doctors {
		out = append(out, doctorResp{UserName: d.UserName})
	}
	return c.JSON(http.StatusOK, out)
}

// History returns every appointment the caller has booked. An empty
// result is reported as 404, matching the modeled behavior rather than
// returning an empty collection.
func (h *AppointmentHandler) History(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Authentication required."})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	appts, err := h.Appointments.ListByPatient(ctx, u.ID)
	if err != nil {
		log.Printf("history: list for patient %s: %v", u.ID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
	}
	if len(appts) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "No appointments found."})
	}
	return c.JSON(http.StatusOK, echo.Map{"appointments": appts})
}

// Unconsulted returns the caller's open appointments (matched by the
// caller's username against the denormalized doctor reference), each
// joined with the patient's public profile. A missing patient record
// fails the whole request; there is no per-item skip.
func (h *AppointmentHandler) Unconsulted(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Authentication required."})
	}
	if u.UserName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Doctor username is missing in the token."})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	appts, err := h.Appointments.ListUnconsulted(ctx, u.UserName)
	if err != nil {
		log.Printf("unconsulted: list for doctor %s: %v", u.UserName, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
	}
	if len(appts) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "No unconsulted appointments found for this doctor."})
	}

	out := make([]unconsultedResp, 0, len(appts))
	for _, a := range appts {
		p, err := h.Users.GetByID(ctx, a.PatientID)
		if err != nil {
			log.Printf("unconsulted: load patient %s for appointment %s: %v", a.PatientID, a.ID, err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
		}
		out = append(out, unconsultedResp{
			ID:                 a.ID,
			AppointmentDate:    a.AppointmentDate,
			AppointmentTime:    a.AppointmentTime,
			ProblemDescription: a.ProblemDescription,
			Patient: patientResp{
				UserName: p.UserName,
				Email:    p.Email,
				Age:      p.Age,
				Gender:   p.Gender,
				Contact:  p.Contact,
			},
		})
	}
	return c.JSON(http.StatusOK, out)
}

// Complete flips the consulted flag for any authenticated caller; no
// ownership check ties the caller to the assigned doctor (kept as
// modeled, pending product sign-off). Idempotent on repeat calls.
func (h *AppointmentHandler) Complete(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Authentication required."})
	}
	id := c.Param("appointmentId")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	appt, err := h.Appointments.MarkConsulted(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Appointment not found."})
		}
		log.Printf("complete: appointment %s by user %s: %v", id, u.ID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
	}

	h.publish(ctx, queue.AppointmentEvent{
		Type:           queue.EventConsulted,
		AppointmentID:  appt.ID,
		PatientID:      appt.PatientID,
		DoctorUsername: appt.DoctorUsername,
		OccurredAt:     time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "Appointment marked as consulted!", "appointment": appt})
}

func (h *AppointmentHandler) publish(ctx context.Context, ev queue.AppointmentEvent) {
	if h.Events == nil {
		return
	}
	if err := h.Events.Publish(ctx, ev); err != nil {
		log.Printf("events: publish %s for appointment %s: %v", ev.Type, ev.AppointmentID, err)
	}
}
