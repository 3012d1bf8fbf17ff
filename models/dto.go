package models

import (
	"encoding/json"
	"time"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	Admin Admin  `json:"admin"`
}

type CreatePersonaRequest struct {
	Name            string          `json:"name" binding:"required"`
	Bio             string          `json:"bio" binding:"required"`
	Role            PersonaRole     `json:"role" binding:"required"`
	ProfileImageUrl *string         `json:"profileImageUrl"`
	MoreInfoText    *string         `json:"moreInfoText"`
	ExternalLinks   json.RawMessage `json:"externalLinks"`
	DisplayOrder    int             `json:"displayOrder"`
}

// Update requests use Optional fields so an omitted field keeps the stored
// value while an explicit null clears a nullable one.
type UpdatePersonaRequest struct {
	Name            Optional[string]          `json:"name"`
	Bio             Optional[string]          `json:"bio"`
	Role            Optional[PersonaRole]     `json:"role"`
	ProfileImageUrl Optional[string]          `json:"profileImageUrl"`
	MoreInfoText    Optional[string]          `json:"moreInfoText"`
	ExternalLinks   Optional[json.RawMessage] `json:"externalLinks"`
	DisplayOrder    Optional[int]             `json:"displayOrder"`
	IsActive        Optional[bool]            `json:"isActive"`
}

type CreateArticleRequest struct {
	Title            string          `json:"title" binding:"required"`
	Body             string          `json:"body" binding:"required"`
	PersonaID        string          `json:"personaId" binding:"required"`
	Excerpt          *string         `json:"excerpt"`
	FeaturedImageUrl *string         `json:"featuredImageUrl"`
	Category         *string         `json:"category"`
	Tags             json.RawMessage `json:"tags"`
	Style            *string         `json:"style"`
	IsPublic         *bool           `json:"isPublic"`
	PublishedAt      *time.Time      `json:"publishedAt"`
}

type UpdateArticleRequest struct {
	Title            Optional[string]          `json:"title"`
	Body             Optional[string]          `json:"body"`
	Excerpt          Optional[string]          `json:"excerpt"`
	FeaturedImageUrl Optional[string]          `json:"featuredImageUrl"`
	PersonaID        Optional[string]          `json:"personaId"`
	Category         Optional[string]          `json:"category"`
	Tags             Optional[json.RawMessage] `json:"tags"`
	Style            Optional[string]          `json:"style"`
	IsPublic         Optional[bool]            `json:"isPublic"`
	PublishedAt      Optional[time.Time]       `json:"publishedAt"`
}

type UpdateSettingsRequest struct {
	SiteName Optional[string] `json:"siteName"`
	Tagline  Optional[string] `json:"tagline"`
	IsPublic Optional[bool]   `json:"isPublic"`
}

type ArticleListParams struct {
	Category  string `form:"category"`
	PersonaID string `form:"personaId"`
	Search    string `form:"search"`
}

// PersonaWithCount is the admin listing row: the persona plus how many
// articles currently reference it.
type PersonaWithCount struct {
	Persona
	ArticleCount int64 `json:"articleCount"`
}

// PersonaPublic is the projection of a persona embedded in public article
// responses.
type PersonaPublic struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Bio             string      `json:"bio"`
	Role            PersonaRole `json:"role"`
	ProfileImageUrl *string     `json:"profileImageUrl"`
}

func (p *Persona) PublicFields() PersonaPublic {
	return PersonaPublic{
		ID:              p.ID,
		Name:            p.Name,
		Bio:             p.Bio,
		Role:            p.Role,
		ProfileImageUrl: p.ProfileImageUrl,
	}
}

// ArticleListItem is the reduced public listing projection: no body, no
// persona bio. PersonaID/PersonaName are dropped on the persona detail page
// where they would repeat the surrounding persona.
type ArticleListItem struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Excerpt          string    `json:"excerpt"`
	FeaturedImageUrl *string   `json:"featuredImageUrl"`
	PersonaID        string    `json:"personaId,omitempty"`
	PersonaName      string    `json:"personaName,omitempty"`
	Category         *string   `json:"category"`
	PublishedAt      time.Time `json:"publishedAt"`
}

func (a *Article) ToListItem() ArticleListItem {
	return ArticleListItem{
		ID:               a.ID,
		Title:            a.Title,
		Excerpt:          a.Excerpt,
		FeaturedImageUrl: a.FeaturedImageUrl,
		PersonaID:        a.PersonaID,
		PersonaName:      a.PersonaName,
		Category:         a.Category,
		PublishedAt:      a.PublishedAt,
	}
}

func (a *Article) ToPersonaPageItem() ArticleListItem {
	item := a.ToListItem()
	item.PersonaID = ""
	item.PersonaName = ""
	return item
}

// PublicArticleDetail is the public single-article response: the article as
// stored plus the persona's public fields.
type PublicArticleDetail struct {
	Article
	Persona PersonaPublic `json:"persona"`
}

// PersonaDetail is the public persona page: the persona plus its public
// articles, newest first.
type PersonaDetail struct {
	Persona  Persona           `json:"persona"`
	Articles []ArticleListItem `json:"articles"`
}
