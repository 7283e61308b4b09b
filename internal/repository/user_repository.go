package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/travel-listing-booking/internal/model"
	"github.com/iliyamo/travel-listing-booking/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

var ErrEmailExists = errors.New("email already exists")

// Create inserts a user and returns its ID.
func (r *UserRepo) Create(ctx context.Context, email, password, role string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, role) VALUES (?,?,?)",
		email, hash, role)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,role,is_active,created_at,updated_at FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,role,is_active,created_at,updated_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetOrCreate returns the ID of the user with the given email, creating
// the row first when it does not exist.  Used by the sample-data
// generator so repeated runs do not duplicate accounts.  The second
// return value reports whether a new row was inserted.
func (r *UserRepo) GetOrCreate(ctx context.Context, email, password, role string, cost int) (uint64, bool, error) {
	if u, err := r.GetByEmail(ctx, email); err == nil {
		return u.ID, false, nil
	} else if err != sql.ErrNoRows {
		return 0, false, err
	}
	id, err := r.Create(ctx, email, password, role, cost)
	if err == ErrEmailExists {
		// lost a race with a concurrent insert; read it back
		u, gerr := r.GetByEmail(ctx, email)
		if gerr != nil {
			return 0, false, gerr
		}
		return u.ID, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}
