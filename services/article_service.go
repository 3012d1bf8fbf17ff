package services

import (
	"errors"
	"strings"
	"time"

	"aier-cms/models"
	"aier-cms/repositories"

	"gorm.io/gorm"
)

// excerptLength is how much of the body a derived excerpt keeps before the
// trailing ellipsis.
const excerptLength = 200

type ArticleService interface {
	Create(req models.CreateArticleRequest) (*models.Article, error)
	Update(id string, req models.UpdateArticleRequest) (*models.Article, error)
	Delete(id string) error
	Get(id string, asAdmin bool) (*models.Article, error)
	List(params models.ArticleListParams, asAdmin bool) ([]models.Article, error)
}

type articleService struct {
	articleRepo repositories.ArticleRepository
	personaRepo repositories.PersonaRepository
}

func NewArticleService(articleRepo repositories.ArticleRepository, personaRepo repositories.PersonaRepository) ArticleService {
	return &articleService{
		articleRepo: articleRepo,
		personaRepo: personaRepo,
	}
}

func (s *articleService) Create(req models.CreateArticleRequest) (*models.Article, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Body) == "" {
		return nil, models.ErrorValidation{Message: "Title, body, and persona are required"}
	}

	persona, err := s.personaRepo.GetByID(req.PersonaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorValidation{Message: "Persona not found"}
		}
		return nil, err
	}

	excerpt := deriveExcerpt(req.Body)
	if req.Excerpt != nil && *req.Excerpt != "" {
		excerpt = *req.Excerpt
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	publishedAt := time.Now()
	if req.PublishedAt != nil {
		publishedAt = *req.PublishedAt
	}

	article := &models.Article{
		Title:            req.Title,
		Body:             req.Body,
		Excerpt:          excerpt,
		FeaturedImageUrl: req.FeaturedImageUrl,
		PersonaID:        persona.ID,
		PersonaName:      persona.Name,
		Category:         req.Category,
		Tags:             rawToString(req.Tags),
		Style:            req.Style,
		IsPublic:         isPublic,
		PublishedAt:      publishedAt,
	}

	if err := s.articleRepo.Create(article); err != nil {
		return nil, err
	}

	article.Persona = persona
	return article, nil
}

func (s *articleService) Update(id string, req models.UpdateArticleRequest) (*models.Article, error) {
	article, err := s.articleRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "Article not found"}
		}
		return nil, err
	}

	// Re-resolve the denormalized persona name when the association moves. An
	// unresolvable persona fails the whole update; nothing is persisted.
	if req.PersonaID.Set && req.PersonaID.Valid && req.PersonaID.Value != article.PersonaID {
		persona, err := s.personaRepo.GetByID(req.PersonaID.Value)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.ErrorValidation{Message: "Persona not found"}
			}
			return nil, err
		}
		article.PersonaID = persona.ID
		article.PersonaName = persona.Name
		article.Persona = persona
	}

	if req.Title.Set && req.Title.Valid {
		if strings.TrimSpace(req.Title.Value) == "" {
			return nil, models.ErrorValidation{Message: "Title must not be empty"}
		}
		article.Title = req.Title.Value
	}

	bodyChanged := false
	if req.Body.Set && req.Body.Valid {
		if strings.TrimSpace(req.Body.Value) == "" {
			return nil, models.ErrorValidation{Message: "Body must not be empty"}
		}
		bodyChanged = req.Body.Value != article.Body
		article.Body = req.Body.Value
	}

	// An explicit excerpt wins verbatim; otherwise a body change re-derives it.
	if req.Excerpt.Set && req.Excerpt.Valid && req.Excerpt.Value != "" {
		article.Excerpt = req.Excerpt.Value
	} else if bodyChanged {
		article.Excerpt = deriveExcerpt(article.Body)
	}

	if req.IsPublic.Set && req.IsPublic.Valid {
		article.IsPublic = req.IsPublic.Value
	}
	if req.PublishedAt.Set && req.PublishedAt.Valid {
		article.PublishedAt = req.PublishedAt.Value
	}

	// Nullable attributes: explicit null clears, omission keeps.
	if req.FeaturedImageUrl.Set {
		article.FeaturedImageUrl = req.FeaturedImageUrl.Ptr()
	}
	if req.Category.Set {
		article.Category = req.Category.Ptr()
	}
	if req.Style.Set {
		article.Style = req.Style.Ptr()
	}
	if req.Tags.Set {
		if req.Tags.Valid {
			article.Tags = rawToString(req.Tags.Value)
		} else {
			article.Tags = nil
		}
	}

	if err := s.articleRepo.Update(article); err != nil {
		return nil, err
	}

	return article, nil
}

func (s *articleService) Delete(id string) error {
	if _, err := s.articleRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrorNotFound{Message: "Article not found"}
		}
		return err
	}

	return s.articleRepo.Delete(id)
}

func (s *articleService) Get(id string, asAdmin bool) (*models.Article, error) {
	article, err := s.articleRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "Article not found"}
		}
		return nil, err
	}

	// Private articles are reported as absent, never as forbidden.
	if !asAdmin && !article.VisibleToPublic() {
		return nil, models.ErrorNotFound{Message: "Article not found"}
	}

	return article, nil
}

func (s *articleService) List(params models.ArticleListParams, asAdmin bool) ([]models.Article, error) {
	return s.articleRepo.GetList(params, !asAdmin)
}

// deriveExcerpt takes the first excerptLength characters of the body, trims
// surrounding whitespace, and marks the cut with an ellipsis.
func deriveExcerpt(body string) string {
	runes := []rune(body)
	if len(runes) > excerptLength {
		runes = runes[:excerptLength]
	}
	return strings.TrimSpace(string(runes)) + "..."
}
