package services

import (
	"errors"
	"strings"

	"aier-cms/models"
	"aier-cms/repositories"

	"gorm.io/gorm"
)

type SettingsService interface {
	Get() (*models.Settings, error)
	Update(req models.UpdateSettingsRequest) (*models.Settings, error)
}

type settingsService struct {
	settingsRepo repositories.SettingsRepository
}

func NewSettingsService(settingsRepo repositories.SettingsRepository) SettingsService {
	return &settingsService{settingsRepo: settingsRepo}
}

// Get returns the singleton, creating it with defaults on first read. It
// never reports not-found.
func (s *settingsService) Get() (*models.Settings, error) {
	settings, err := s.settingsRepo.Get()
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	settings = models.DefaultSettings()
	if err := s.settingsRepo.Create(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// Update upserts against the fixed singleton identity: defaults overlaid
// with the supplied fields when the row is absent, a merge otherwise.
func (s *settingsService) Update(req models.UpdateSettingsRequest) (*models.Settings, error) {
	settings, err := s.settingsRepo.Get()
	created := false
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		settings = models.DefaultSettings()
		created = true
	}

	if req.SiteName.Set && req.SiteName.Valid {
		if strings.TrimSpace(req.SiteName.Value) == "" {
			return nil, models.ErrorValidation{Message: "Site name must not be empty"}
		}
		settings.SiteName = req.SiteName.Value
	}
	if req.Tagline.Set {
		settings.Tagline = req.Tagline.Ptr()
	}
	if req.IsPublic.Set && req.IsPublic.Valid {
		settings.IsPublic = req.IsPublic.Value
	}

	if created {
		err = s.settingsRepo.Create(settings)
	} else {
		err = s.settingsRepo.Update(settings)
	}
	if err != nil {
		return nil, err
	}

	return settings, nil
}
