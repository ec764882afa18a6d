package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/medbook/appointment-api/internal/auth"
	"github.com/medbook/appointment-api/internal/model"
)

var ErrEmailExists = errors.New("email already exists")

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id, role, user_name, email, password_hash, first_name, last_name, gender, age, contact, address, created_at, updated_at"

// Create hashes the password, assigns an id and inserts the user. A
// duplicate email (unique key violation 1062) maps to ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, u model.User, password string, cost int) (model.User, error) {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	hash, err := auth.HashPassword(password, cost)
	if err != nil {
		return model.User{}, err
	}
	u.ID = uuid.NewString()
	u.PasswordHash = hash

	_, err = r.DB.ExecContext(ctx,
		`INSERT INTO users (id, role, user_name, email, password_hash, first_name, last_name, gender, age, contact, address)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		u.ID, u.Role, u.UserName, u.Email, u.PasswordHash,
		u.FirstName, u.LastName, u.Gender, u.Age, u.Contact, u.Address)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return model.User{}, ErrEmailExists
		}
		return model.User{}, err
	}
	return u, nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.get(ctx, "SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	return r.get(ctx, "SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id)
}

// ListDoctors returns every user registered with the doctor role. An
// empty result is a valid empty slice, not an error.
func (r *UserRepo) ListDoctors(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE role=? ORDER BY user_name", model.RoleDoctor)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	doctors := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		doctors = append(doctors, u)
	}
	return doctors, rows.Err()
}

func (r *UserRepo) get(ctx context.Context, query string, arg any) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx, query, arg))
}

type rowScanner interface{ Scan(dest ...any) error }

func scanUser(row rowScanner) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Role, &u.UserName, &u.Email, &u.PasswordHash,
		&u.FirstName, &u.LastName, &u.Gender, &u.Age, &u.Contact, &u.Address,
		&u.CreatedAt, &u.UpdatedAt)
	return u, err
}
