package handler

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medbook/appointment-api/internal/auth"
	"github.com/medbook/appointment-api/internal/config"
	"github.com/medbook/appointment-api/internal/middleware"
	"github.com/medbook/appointment-api/internal/model"
	"github.com/medbook/appointment-api/internal/repository"
)

// AuthHandler bundles dependencies for registration and login.
type AuthHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewAuthHandler(cfg config.Config, users UserStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

type registerReq struct {
	Role      string `json:"role"`
	UserName  string `json:"userName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Gender    string `json:"gender"`
	Age       int    `json:"age"`
	Contact   string `json:"contact"`
	Address   string `json:"address"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a user and returns a token right away, both in the
// response body and as an http-only cookie so browser and API clients
// can consume either.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body."})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" || req.UserName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "userName, email and password are required."})
	}
	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role != model.RoleDoctor {
		role = model.RolePatient
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.Create(ctx, model.User{
		Role:      role,
		UserName:  req.UserName,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Gender:    req.Gender,
		Age:       req.Age,
		Contact:   req.Contact,
		Address:   req.Address,
	}, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Email already exists. Please choose another."})
		}
		log.Printf("register: create user %s: %v", req.Email, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
	}

	token, exp, err := auth.Issue(h.Cfg.JWTSecret, u)
	if err != nil {
		log.Printf("register: issue token for %s: %v", u.ID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
	}
	setTokenCookie(c, token, exp)
	return c.JSON(http.StatusCreated, echo.Map{"message": "Registration successful!", "token": token})
}

// Login verifies credentials and issues a token identically to Register.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body."})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "email and password are required."})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "No user found. Please try again."})
		}
		log.Printf("login: lookup %s: %v", req.Email, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
	}
	if !auth.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid login credentials. Please try again."})
	}

	token, exp, err := auth.Issue(h.Cfg.JWTSecret, u)
	if err != nil {
		log.Printf("login: issue token for %s: %v", u.ID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
	}
	setTokenCookie(c, token, exp)
	return c.JSON(http.StatusOK, echo.Map{"message": "Login successful!", "token": token})
}

func setTokenCookie(c echo.Context, token string, exp time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Expires:  exp,
		Path:     "/",
		HttpOnly: true,
	})
}
