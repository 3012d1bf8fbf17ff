package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PersonaRole string

const (
	RoleReporter    PersonaRole = "reporter"
	RoleCommentator PersonaRole = "commentator"
	RoleContributor PersonaRole = "contributor"
)

func (r PersonaRole) Valid() bool {
	switch r {
	case RoleReporter, RoleCommentator, RoleContributor:
		return true
	}
	return false
}

// Persona is an author identity under which articles are published. It is
// independent of the admin account used to log in. Personas are never
// physically removed: deactivation (IsActive=false) hides them from the
// public surface while keeping historical articles resolvable.
type Persona struct {
	ID              string      `json:"id" gorm:"primarykey"`
	Name            string      `json:"name" gorm:"not null"`
	Bio             string      `json:"bio" gorm:"type:text;not null"`
	Role            PersonaRole `json:"role" gorm:"not null"`
	ProfileImageUrl *string     `json:"profileImageUrl"`
	MoreInfoText    *string     `json:"moreInfoText" gorm:"type:text"`
	ExternalLinks   *string     `json:"externalLinks"` // serialized platform -> URL object, stored verbatim
	DisplayOrder    int         `json:"displayOrder" gorm:"not null"`
	IsActive        bool        `json:"isActive" gorm:"not null"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

func (p *Persona) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func (p *Persona) VisibleToPublic() bool {
	return p.IsActive
}
