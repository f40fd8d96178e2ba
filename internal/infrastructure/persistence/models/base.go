// Package models contains the GORM persistence models. Each model maps to
// and from its domain entity; domain types never carry GORM tags.
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lifecurriculum/backend/internal/domain/shared"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// VersionedModel extends BaseModel with a version for optimistic locking
type VersionedModel struct {
	BaseModel
	Version int `gorm:"not null;default:1"`
}

// ToDomainVersioned converts to the domain VersionedEntity
func (m *VersionedModel) ToDomainVersioned() shared.VersionedEntity {
	return shared.VersionedEntity{
		BaseEntity: m.ToDomain(),
		Version:    m.Version,
	}
}

// FromDomainVersioned populates from the domain VersionedEntity
func (m *VersionedModel) FromDomainVersioned(e shared.VersionedEntity) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.Version = e.Version
}

// FamilyModel extends VersionedModel with the owning family
type FamilyModel struct {
	VersionedModel
	FamilyID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// ToDomainFamilyEntity converts to the domain FamilyEntity
func (m *FamilyModel) ToDomainFamilyEntity() shared.FamilyEntity {
	return shared.FamilyEntity{
		VersionedEntity: m.ToDomainVersioned(),
		FamilyID:        m.FamilyID,
	}
}

// FromDomainFamilyEntity populates from the domain FamilyEntity
func (m *FamilyModel) FromDomainFamilyEntity(e shared.FamilyEntity) {
	m.FromDomainVersioned(e.VersionedEntity)
	m.FamilyID = e.FamilyID
}
