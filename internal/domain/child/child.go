package child

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lifecurriculum/backend/internal/domain/shared"
)

// maxAgeYears bounds how old a tracked child may be
const maxAgeYears = 18

// Child is a family member whose development is being tracked
type Child struct {
	shared.FamilyEntity
	Name      string
	BirthDate time.Time
	Gender    *string
	AvatarKey *string
}

// NewChild creates a child profile after validating the birth date
func NewChild(familyID uuid.UUID, name string, birthDate time.Time, gender *string) (*Child, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CHILD_NAME", "Child name is required")
	}
	if err := validateBirthDate(birthDate); err != nil {
		return nil, err
	}

	return &Child{
		FamilyEntity: shared.NewFamilyEntity(familyID),
		Name:         name,
		BirthDate:    birthDate,
		Gender:       gender,
	}, nil
}

func validateBirthDate(birthDate time.Time) error {
	now := time.Now()
	if birthDate.After(now) {
		return shared.NewDomainError("INVALID_BIRTH_DATE", "Birth date must be in the past")
	}
	if birthDate.Before(now.AddDate(-maxAgeYears, 0, 0)) {
		return shared.NewDomainError("INVALID_BIRTH_DATE", "Child must be under 18 years old")
	}
	return nil
}

// UpdateProfile changes the mutable profile fields
func (c *Child) UpdateProfile(name string, birthDate time.Time, gender *string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_CHILD_NAME", "Child name is required")
	}
	if err := validateBirthDate(birthDate); err != nil {
		return err
	}

	c.Name = name
	c.BirthDate = birthDate
	c.Gender = gender
	c.IncrementVersion()
	return nil
}

// SetAvatar stores the object storage key of the child's avatar
func (c *Child) SetAvatar(key string) {
	c.AvatarKey = &key
	c.IncrementVersion()
}

// AgeInMonths computes the child's age in whole months at the given time
func (c *Child) AgeInMonths(at time.Time) int {
	months := (at.Year()-c.BirthDate.Year())*12 + int(at.Month()) - int(c.BirthDate.Month())
	if at.Day() < c.BirthDate.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
