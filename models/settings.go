package models

import "time"

// SettingsID is the fixed identity of the singleton settings row.
const SettingsID = "site"

const (
	DefaultSiteName = "The Artificial Intelligencer"
	DefaultTagline  = "AI-Powered Editorial Content"
)

// Settings is the single global site configuration record. IsPublic gates the
// whole public site: when false, listings are to be treated by callers as
// "site offline", but the settings record itself stays readable.
type Settings struct {
	ID        string    `json:"id" gorm:"primarykey"`
	SiteName  string    `json:"siteName" gorm:"not null"`
	Tagline   *string   `json:"tagline"`
	IsPublic  bool      `json:"isPublic" gorm:"not null"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DefaultSettings returns the record created lazily on first read.
func DefaultSettings() *Settings {
	tagline := DefaultTagline
	return &Settings{
		ID:       SettingsID,
		SiteName: DefaultSiteName,
		Tagline:  &tagline,
		IsPublic: true,
	}
}
