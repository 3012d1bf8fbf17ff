package repositories

import (
	"aier-cms/models"

	"gorm.io/gorm"
)

type PersonaRepository interface {
	Create(persona *models.Persona) error
	GetByID(id string) (*models.Persona, error)
	GetAll(activeOnly bool) ([]models.Persona, error)
	Update(persona *models.Persona) error
	UpdateWithNamePropagation(persona *models.Persona) error
}

type personaRepository struct {
	db *gorm.DB
}

func NewPersonaRepository(db *gorm.DB) PersonaRepository {
	return &personaRepository{db: db}
}

func (r *personaRepository) Create(persona *models.Persona) error {
	return r.db.Create(persona).Error
}

func (r *personaRepository) GetByID(id string) (*models.Persona, error) {
	var persona models.Persona
	err := r.db.Where("id = ?", id).First(&persona).Error
	return &persona, err
}

func (r *personaRepository) GetAll(activeOnly bool) ([]models.Persona, error) {
	var personas []models.Persona

	query := r.db.Model(&models.Persona{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	err := query.Order("display_order asc").Find(&personas).Error
	return personas, err
}

func (r *personaRepository) Update(persona *models.Persona) error {
	return r.db.Save(persona).Error
}

// UpdateWithNamePropagation saves the persona and rewrites the denormalized
// persona_name on every article referencing it, as one transaction. Readers
// never observe a renamed persona alongside articles carrying the old name.
func (r *personaRepository) UpdateWithNamePropagation(persona *models.Persona) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(persona).Error; err != nil {
			return err
		}
		return tx.Model(&models.Article{}).
			Where("persona_id = ?", persona.ID).
			Update("persona_name", persona.Name).Error
	})
}
