package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lifecurriculum/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the work factor for password hashing
const bcryptCost = 12

// Role describes what a user may do within their family
type Role string

const (
	RoleParent    Role = "parent"
	RoleCaregiver Role = "caregiver"
)

// IsValid reports whether the role is a known value
func (r Role) IsValid() bool {
	return r == RoleParent || r == RoleCaregiver
}

// User is an account belonging to a family
type User struct {
	shared.FamilyEntity
	Email         string
	PasswordHash  string
	FirstName     string
	LastName      string
	Role          Role
	EmailVerified bool
	IsActive      bool
	LastLoginAt   *time.Time
}

// NewUser creates an active, unverified user in the given family
func NewUser(familyID uuid.UUID, email, password, firstName, lastName string, role Role) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "A valid email address is required")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown user role")
	}

	u := &User{
		FamilyEntity: shared.NewFamilyEntity(familyID),
		Email:        email,
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		Role:         role,
		IsActive:     true,
	}

	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// SetPassword hashes and stores a new password
func (u *User) SetPassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("WEAK_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		// bcrypt truncates input beyond 72 bytes
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at most 72 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// VerifyPassword checks the given password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// CanLogin reports whether the account may authenticate
func (u *User) CanLogin() bool {
	return u.IsActive
}

// MarkEmailVerified records a successful email verification
func (u *User) MarkEmailVerified() {
	u.EmailVerified = true
	u.IncrementVersion()
}

// RecordLogin stamps the last login time
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
}

// Deactivate disables the account
func (u *User) Deactivate() {
	u.IsActive = false
	u.IncrementVersion()
}

// FullName returns the display name
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
