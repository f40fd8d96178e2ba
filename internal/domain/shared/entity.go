package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is the base interface for all domain entities
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// BaseEntity provides common fields for all entities
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}

// GetCreatedAt returns the creation timestamp
func (e *BaseEntity) GetCreatedAt() time.Time {
	return e.CreatedAt
}

// GetUpdatedAt returns the last update timestamp
func (e *BaseEntity) GetUpdatedAt() time.Time {
	return e.UpdatedAt
}

// NewBaseEntity creates a new base entity with generated ID
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// VersionedEntity adds optimistic locking to an entity
type VersionedEntity struct {
	BaseEntity
	Version int
}

// IncrementVersion bumps the version for optimistic locking
func (e *VersionedEntity) IncrementVersion() {
	e.Version++
}

// NewVersionedEntity creates a versioned entity at version 1
func NewVersionedEntity() VersionedEntity {
	return VersionedEntity{
		BaseEntity: NewBaseEntity(),
		Version:    1,
	}
}

// FamilyEntity is a versioned entity scoped to a single family.
// All application data except curriculum reference tables hangs off a family.
type FamilyEntity struct {
	VersionedEntity
	FamilyID uuid.UUID
}

// NewFamilyEntity creates a family-scoped entity
func NewFamilyEntity(familyID uuid.UUID) FamilyEntity {
	return FamilyEntity{
		VersionedEntity: NewVersionedEntity(),
		FamilyID:        familyID,
	}
}

// BelongsTo reports whether the entity is owned by the given family
func (e *FamilyEntity) BelongsTo(familyID uuid.UUID) bool {
	return e.FamilyID == familyID
}
