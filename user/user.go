package user

import (
	"net/mail"
	"strings"
	"time"

	"moviecatalog/errs"
)

var (
	ErrInvalidEmail    = errs.Errorf(errs.EINVALID, "user: invalid email")
	ErrInvalidPassword = errs.Errorf(errs.EINVALID, "user: invalid password")
	ErrPasswordTooLong = errs.Errorf(errs.EINVALID, "user: password must be at most %d bytes", MaxPasswordBytes)
	ErrInvalidRole     = errs.Errorf(errs.EINVALID, "user: invalid role")
	ErrUserNotFound    = errs.Errorf(errs.ENOTFOUND, "user: not found")
	ErrEmailTaken      = errs.Errorf(errs.ECONFLICT, "user: email already registered")
)

// Role is ordered by privilege: a lower value may do everything a higher one can.
type Role int

const (
	RoleAdmin Role = iota
	RolePaidUser
	RoleUser
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RolePaidUser:
		return "paidUser"
	case RoleUser:
		return "user"
	}
	return "unknown"
}

func (r Role) Valid() bool {
	return r >= RoleAdmin && r <= RoleUser
}

// Satisfies reports whether r is at least as privileged as required.
func (r Role) Satisfies(required Role) bool {
	return r.Valid() && r <= required
}

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Password     string    `json:"-"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Version      int       `json:"version"`
}

func (u User) Validate() error {
	if err := validateEmail(u.Email); err != nil {
		return err
	}
	if err := ValidatePassword(u.Password); err != nil {
		return err
	}
	if !u.Role.Valid() {
		return ErrInvalidRole
	}
	return nil
}

func ValidatePassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return ErrInvalidPassword
	}
	if len(password) > MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmail
	}
	return nil
}
