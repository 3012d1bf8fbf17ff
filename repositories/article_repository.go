package repositories

import (
	"aier-cms/models"

	"gorm.io/gorm"
)

type ArticleRepository interface {
	Create(article *models.Article) error
	GetByID(id string) (*models.Article, error)
	GetList(params models.ArticleListParams, publicOnly bool) ([]models.Article, error)
	GetByPersona(personaID string, publicOnly bool) ([]models.Article, error)
	CountByPersona(personaID string) (int64, error)
	Update(article *models.Article) error
	Delete(id string) error
}

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(article *models.Article) error {
	return r.db.Create(article).Error
}

func (r *articleRepository) GetByID(id string) (*models.Article, error) {
	var article models.Article
	err := r.db.Preload("Persona").Where("id = ?", id).First(&article).Error
	return &article, err
}

// GetList applies the optional category/persona/search filters. Search is a
// substring match ORed across title, excerpt and body, ANDed with the other
// filters. Anonymous callers always get is_public = true compiled in; order
// is published_at desc for them and created_at desc for admins.
func (r *articleRepository) GetList(params models.ArticleListParams, publicOnly bool) ([]models.Article, error) {
	var articles []models.Article

	query := r.db.Model(&models.Article{})

	if publicOnly {
		query = query.Where("is_public = ?", true)
	} else {
		query = query.Preload("Persona")
	}

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if params.PersonaID != "" {
		query = query.Where("persona_id = ?", params.PersonaID)
	}

	if params.Search != "" {
		term := "%" + params.Search + "%"
		query = query.Where("title LIKE ? OR excerpt LIKE ? OR body LIKE ?", term, term, term)
	}

	if publicOnly {
		query = query.Order("published_at desc")
	} else {
		query = query.Order("created_at desc")
	}

	err := query.Find(&articles).Error
	return articles, err
}

func (r *articleRepository) GetByPersona(personaID string, publicOnly bool) ([]models.Article, error) {
	var articles []models.Article

	query := r.db.Where("persona_id = ?", personaID)
	if publicOnly {
		query = query.Where("is_public = ?", true)
	}

	err := query.Order("published_at desc").Find(&articles).Error
	return articles, err
}

func (r *articleRepository) CountByPersona(personaID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Article{}).Where("persona_id = ?", personaID).Count(&count).Error
	return count, err
}

func (r *articleRepository) Update(article *models.Article) error {
	return r.db.Save(article).Error
}

func (r *articleRepository) Delete(id string) error {
	return r.db.Delete(&models.Article{}, "id = ?", id).Error
}
