package user

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrInvalidRole     = errors.New("invalid role")
	ErrPasswordTooWeak = errors.New("password must be at least 8 characters long")
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type Email string

func NewEmail(email string) (Email, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegex.MatchString(email) {
		return Email(""), ErrInvalidEmail
	}
	return Email(email), nil
}

func (e Email) String() string {
	return string(e)
}

type Role string

const (
	// RoleAdmin manages the coupon catalog and products.
	RoleAdmin Role = "admin"
	// RoleStaff has read access to the admin surface.
	RoleStaff Role = "staff"
)

func NewRole(role string) (Role, error) {
	switch Role(role) {
	case RoleAdmin, RoleStaff:
		return Role(role), nil
	default:
		return Role(""), ErrInvalidRole
	}
}

func (r Role) String() string {
	return string(r)
}

type Password string

func NewPassword(raw string) (Password, error) {
	if len(raw) < 8 {
		return Password(""), ErrPasswordTooWeak
	}
	return Password(raw), nil
}

func (p Password) Value() string {
	return string(p)
}

// Credentials couples a validated email with a raw password for login.
type Credentials struct {
	email    Email
	password Password
}

func NewCredentials(email, rawPassword string) (Credentials, error) {
	e, err := NewEmail(email)
	if err != nil {
		return Credentials{}, err
	}
	p, err := NewPassword(rawPassword)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{email: e, password: p}, nil
}

func (c Credentials) Email() Email       { return c.email }
func (c Credentials) Password() Password { return c.password }
