package models

import (
	"time"

	"github.com/lifecurriculum/backend/internal/domain/child"
)

// ChildModel is the persistence model for the Child entity
type ChildModel struct {
	FamilyModel
	Name      string    `gorm:"type:varchar(100);not null"`
	BirthDate time.Time `gorm:"type:date;not null"`
	Gender    *string   `gorm:"type:varchar(20)"`
	AvatarKey *string   `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (ChildModel) TableName() string {
	return "children"
}

// ToDomain converts the persistence model to a domain Child
func (m *ChildModel) ToDomain() *child.Child {
	return &child.Child{
		FamilyEntity: m.ToDomainFamilyEntity(),
		Name:         m.Name,
		BirthDate:    m.BirthDate,
		Gender:       m.Gender,
		AvatarKey:    m.AvatarKey,
	}
}

// FromDomain populates the persistence model from a domain Child
func (m *ChildModel) FromDomain(c *child.Child) {
	m.FromDomainFamilyEntity(c.FamilyEntity)
	m.Name = c.Name
	m.BirthDate = c.BirthDate
	m.Gender = c.Gender
	m.AvatarKey = c.AvatarKey
}
