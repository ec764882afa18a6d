// Package router maps the HTTP surface onto handlers and applies the
// authentication gate to protected routes.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/medbook/appointment-api/internal/handler"
	"github.com/medbook/appointment-api/internal/middleware"
)

// Register wires every route. Registration, login and the doctor list
// are public; everything else sits behind UserAuth.
func Register(e *echo.Echo, a *handler.AuthHandler, ap *handler.AppointmentHandler, jwtSecret string, users middleware.UserLoader) {
	e.GET("/healthz", handler.Health)

	e.POST("/register", a.Register)
	e.POST("/login", a.Login)
	e.GET("/getdoctors", ap.GetDoctors)

	g := e.Group("", middleware.UserAuth(jwtSecret, users))
	g.POST("/bookappointment", ap.Book)
	g.GET("/getappointmenthistory", ap.History)
	g.GET("/unconsulted", ap.Unconsulted)
	g.POST("/complete/:appointmentId", ap.Complete)
}
