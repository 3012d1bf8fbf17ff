package handlers

import (
	"aier-cms/helper"
	"aier-cms/models"
	"aier-cms/services"

	"github.com/gin-gonic/gin"
)

type ArticleHandler struct {
	articleService services.ArticleService
	Helper         *helper.HTTPHelper
}

func NewArticleHandler(articleService services.ArticleService) *ArticleHandler {
	return &ArticleHandler{
		articleService: articleService,
		Helper:         &helper.HTTPHelper{},
	}
}

func (h *ArticleHandler) GetArticles(c *gin.Context) {
	var params models.ArticleListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, "Invalid query parameters", h.Helper.EmptyJsonMap())
		return
	}

	articles, err := h.articleService.List(params, true)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Articles loaded", articles)
}

func (h *ArticleHandler) GetArticle(c *gin.Context) {
	article, err := h.articleService.Get(c.Param("id"), true)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Article loaded", article)
}

func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	var req models.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "Title, body, and persona are required", h.Helper.EmptyJsonMap())
		return
	}

	article, err := h.articleService.Create(req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Article created", article)
}

func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	var req models.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "Invalid request body", h.Helper.EmptyJsonMap())
		return
	}

	article, err := h.articleService.Update(c.Param("id"), req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Article updated", article)
}

func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	if err := h.articleService.Delete(c.Param("id")); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Article deleted", h.Helper.EmptyJsonMap())
}

// GetPublicArticles lists public articles as the reduced projection, newest
// published first.
func (h *ArticleHandler) GetPublicArticles(c *gin.Context) {
	var params models.ArticleListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, "Invalid query parameters", h.Helper.EmptyJsonMap())
		return
	}

	articles, err := h.articleService.List(params, false)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	items := make([]models.ArticleListItem, 0, len(articles))
	for i := range articles {
		items = append(items, articles[i].ToListItem())
	}

	h.Helper.SendSuccess(c, "Articles loaded", items)
}

// GetPublicArticle returns a public article with its persona's public fields.
func (h *ArticleHandler) GetPublicArticle(c *gin.Context) {
	article, err := h.articleService.Get(c.Param("id"), false)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	detail := models.PublicArticleDetail{Article: *article}
	if article.Persona != nil {
		detail.Persona = article.Persona.PublicFields()
	}
	detail.Article.Persona = nil

	h.Helper.SendSuccess(c, "Article loaded", detail)
}
