package services

import (
	"encoding/json"
	"errors"
	"strings"

	"aier-cms/models"
	"aier-cms/repositories"

	"gorm.io/gorm"
)

type PersonaService interface {
	Create(req models.CreatePersonaRequest) (*models.Persona, error)
	Update(id string, req models.UpdatePersonaRequest) (*models.Persona, error)
	Delete(id string) (*models.Persona, error)
	Get(id string, asAdmin bool) (*models.Persona, error)
	ListAdmin() ([]models.PersonaWithCount, error)
	ListPublic() ([]models.Persona, error)
	GetPublicDetail(id string) (*models.PersonaDetail, error)
}

type personaService struct {
	personaRepo repositories.PersonaRepository
	articleRepo repositories.ArticleRepository
}

func NewPersonaService(personaRepo repositories.PersonaRepository, articleRepo repositories.ArticleRepository) PersonaService {
	return &personaService{
		personaRepo: personaRepo,
		articleRepo: articleRepo,
	}
}

func (s *personaService) Create(req models.CreatePersonaRequest) (*models.Persona, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Bio) == "" {
		return nil, models.ErrorValidation{Message: "Name, bio, and role are required"}
	}
	if !req.Role.Valid() {
		return nil, models.ErrorValidation{Message: "Role must be reporter, commentator, or contributor"}
	}

	persona := &models.Persona{
		Name:            req.Name,
		Bio:             req.Bio,
		Role:            req.Role,
		ProfileImageUrl: req.ProfileImageUrl,
		MoreInfoText:    req.MoreInfoText,
		ExternalLinks:   rawToString(req.ExternalLinks),
		DisplayOrder:    req.DisplayOrder,
		IsActive:        true,
	}

	if err := s.personaRepo.Create(persona); err != nil {
		return nil, err
	}

	return persona, nil
}

func (s *personaService) Update(id string, req models.UpdatePersonaRequest) (*models.Persona, error) {
	persona, err := s.personaRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "Persona not found"}
		}
		return nil, err
	}

	nameChanged := false
	if req.Name.Set && req.Name.Valid {
		if strings.TrimSpace(req.Name.Value) == "" {
			return nil, models.ErrorValidation{Message: "Name must not be empty"}
		}
		if req.Name.Value != persona.Name {
			nameChanged = true
		}
		persona.Name = req.Name.Value
	}
	if req.Bio.Set && req.Bio.Valid {
		if strings.TrimSpace(req.Bio.Value) == "" {
			return nil, models.ErrorValidation{Message: "Bio must not be empty"}
		}
		persona.Bio = req.Bio.Value
	}
	if req.Role.Set && req.Role.Valid {
		if !req.Role.Value.Valid() {
			return nil, models.ErrorValidation{Message: "Role must be reporter, commentator, or contributor"}
		}
		persona.Role = req.Role.Value
	}
	if req.DisplayOrder.Set && req.DisplayOrder.Valid {
		persona.DisplayOrder = req.DisplayOrder.Value
	}
	if req.IsActive.Set && req.IsActive.Valid {
		persona.IsActive = req.IsActive.Value
	}

	// Nullable attributes: explicit null clears, omission keeps.
	if req.ProfileImageUrl.Set {
		persona.ProfileImageUrl = req.ProfileImageUrl.Ptr()
	}
	if req.MoreInfoText.Set {
		persona.MoreInfoText = req.MoreInfoText.Ptr()
	}
	if req.ExternalLinks.Set {
		if req.ExternalLinks.Valid {
			persona.ExternalLinks = rawToString(req.ExternalLinks.Value)
		} else {
			persona.ExternalLinks = nil
		}
	}

	// A rename must land together with the persona_name rewrite on every
	// referencing article.
	if nameChanged {
		err = s.personaRepo.UpdateWithNamePropagation(persona)
	} else {
		err = s.personaRepo.Update(persona)
	}
	if err != nil {
		return nil, err
	}

	return persona, nil
}

// Delete soft-deletes: the row is kept so historical articles stay
// resolvable, and it refuses while any article still references the persona.
func (s *personaService) Delete(id string) (*models.Persona, error) {
	persona, err := s.personaRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "Persona not found"}
		}
		return nil, err
	}

	count, err := s.articleRepo.CountByPersona(id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, models.NewPersonaConflict(count)
	}

	persona.IsActive = false
	if err := s.personaRepo.Update(persona); err != nil {
		return nil, err
	}

	return persona, nil
}

func (s *personaService) Get(id string, asAdmin bool) (*models.Persona, error) {
	persona, err := s.personaRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "Persona not found"}
		}
		return nil, err
	}

	if !asAdmin && !persona.VisibleToPublic() {
		return nil, models.ErrorNotFound{Message: "Persona not found"}
	}

	return persona, nil
}

func (s *personaService) ListAdmin() ([]models.PersonaWithCount, error) {
	personas, err := s.personaRepo.GetAll(false)
	if err != nil {
		return nil, err
	}

	result := make([]models.PersonaWithCount, 0, len(personas))
	for _, persona := range personas {
		count, err := s.articleRepo.CountByPersona(persona.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, models.PersonaWithCount{Persona: persona, ArticleCount: count})
	}

	return result, nil
}

func (s *personaService) ListPublic() ([]models.Persona, error) {
	return s.personaRepo.GetAll(true)
}

func (s *personaService) GetPublicDetail(id string) (*models.PersonaDetail, error) {
	persona, err := s.Get(id, false)
	if err != nil {
		return nil, err
	}

	articles, err := s.articleRepo.GetByPersona(id, true)
	if err != nil {
		return nil, err
	}

	items := make([]models.ArticleListItem, 0, len(articles))
	for i := range articles {
		items = append(items, articles[i].ToPersonaPageItem())
	}

	return &models.PersonaDetail{Persona: *persona, Articles: items}, nil
}

// rawToString stores client-supplied JSON (tags, external links) verbatim so
// ordering survives the round trip.
func rawToString(raw json.RawMessage) *string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	s := string(raw)
	return &s
}
