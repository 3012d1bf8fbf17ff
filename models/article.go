package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Article is a single piece of content authored under a persona. PersonaName
// is a denormalized copy of the referenced persona's name, rewritten whenever
// the persona is renamed, so public listings never need a join. Articles are
// hard-deleted; only personas soft-delete.
type Article struct {
	ID               string    `json:"id" gorm:"primarykey"`
	Title            string    `json:"title" gorm:"not null"`
	Body             string    `json:"body" gorm:"type:text;not null"`
	Excerpt          string    `json:"excerpt" gorm:"type:text;not null"`
	FeaturedImageUrl *string   `json:"featuredImageUrl"`
	PersonaID        string    `json:"personaId" gorm:"not null;index"`
	Persona          *Persona  `json:"persona,omitempty" gorm:"foreignKey:PersonaID"`
	PersonaName      string    `json:"personaName" gorm:"not null"`
	Category         *string   `json:"category" gorm:"index"`
	Tags             *string   `json:"tags"` // serialized tag list, stored verbatim
	Style            *string   `json:"style"`
	IsPublic         bool      `json:"isPublic" gorm:"not null"`
	PublishedAt      time.Time `json:"publishedAt"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (a *Article) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

func (a *Article) VisibleToPublic() bool {
	return a.IsPublic
}
