package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"aier-cms/handlers"
	"aier-cms/middleware"
	"aier-cms/models"
	"aier-cms/repositories"
	"aier-cms/services"
)

type envelope struct {
	Code        int             `json:"code"`
	CodeType    string          `json:"code_type"`
	CodeMessage string          `json:"code_message"`
	Data        json.RawMessage `json:"data"`
}

type IntegrationTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
	token  string
}

func (suite *IntegrationTestSuite) SetupSuite() {
	db, err := gorm.Open(sqlite.Open("file:integration?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		suite.T().Fatal("Failed to open test database:", err)
	}
	suite.db = db

	if err := db.AutoMigrate(&models.Admin{}, &models.Persona{}, &models.Article{}, &models.Settings{}); err != nil {
		suite.T().Fatal("Failed to migrate test database:", err)
	}

	suite.setupRouter()

	// Seed the default admin and log in once for the whole suite
	adminRepo := repositories.NewAdminRepository(db)
	authService := services.NewAuthService(adminRepo)
	if _, err := authService.EnsureDefaultAdmin(); err != nil {
		suite.T().Fatal("Failed to seed default admin:", err)
	}
	suite.login()
}

func (suite *IntegrationTestSuite) setupRouter() {
	gin.SetMode(gin.TestMode)

	adminRepo := repositories.NewAdminRepository(suite.db)
	personaRepo := repositories.NewPersonaRepository(suite.db)
	articleRepo := repositories.NewArticleRepository(suite.db)
	settingsRepo := repositories.NewSettingsRepository(suite.db)

	authService := services.NewAuthService(adminRepo)
	personaService := services.NewPersonaService(personaRepo, articleRepo)
	articleService := services.NewArticleService(articleRepo, personaRepo)
	settingsService := services.NewSettingsService(settingsRepo)

	authHandler := handlers.NewAuthHandler(authService)
	personaHandler := handlers.NewPersonaHandler(personaService)
	articleHandler := handlers.NewArticleHandler(articleService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)

	router := gin.New()

	api := router.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)

		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware())
		{
			admin.GET("/profile", authHandler.GetProfile)

			admin.GET("/personas", personaHandler.GetPersonas)
			admin.POST("/personas", personaHandler.CreatePersona)
			admin.GET("/personas/:id", personaHandler.GetPersona)
			admin.PUT("/personas/:id", personaHandler.UpdatePersona)
			admin.DELETE("/personas/:id", personaHandler.DeletePersona)

			admin.GET("/articles", articleHandler.GetArticles)
			admin.POST("/articles", articleHandler.CreateArticle)
			admin.GET("/articles/:id", articleHandler.GetArticle)
			admin.PUT("/articles/:id", articleHandler.UpdateArticle)
			admin.DELETE("/articles/:id", articleHandler.DeleteArticle)

			admin.GET("/settings", settingsHandler.GetSettings)
			admin.PUT("/settings", settingsHandler.UpdateSettings)
		}

		public := api.Group("/public")
		{
			public.GET("/settings", settingsHandler.GetSettings)
			public.GET("/personas", personaHandler.GetPublicPersonas)
			public.GET("/personas/:id", personaHandler.GetPublicPersona)
			public.GET("/articles", articleHandler.GetPublicArticles)
			public.GET("/articles/:id", articleHandler.GetPublicArticle)
		}
	}

	suite.router = router
}

func (suite *IntegrationTestSuite) SetupTest() {
	// Articles first: they reference personas
	suite.db.Exec("DELETE FROM articles")
	suite.db.Exec("DELETE FROM personas")
	suite.db.Exec("DELETE FROM settings")
}

func (suite *IntegrationTestSuite) login() {
	payload := models.LoginRequest{
		Email:    services.DefaultAdminEmail,
		Password: services.DefaultAdminPassword,
	}

	w := suite.do("POST", "/api/auth/login", payload, true)
	suite.Require().Equal(http.StatusOK, w.Code)

	var resp models.AuthResponse
	suite.decode(w, &resp)
	suite.Require().NotEmpty(resp.Token)
	suite.token = resp.Token
}

// do issues a request against the router; authed requests carry the suite's
// admin token.
func (suite *IntegrationTestSuite) do(method, path string, payload interface{}, authed bool) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	switch body := payload.(type) {
	case nil:
		reqBody = bytes.NewBuffer(nil)
	case string:
		reqBody = bytes.NewBufferString(body)
	default:
		raw, err := json.Marshal(payload)
		suite.Require().NoError(err)
		reqBody = bytes.NewBuffer(raw)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if authed && suite.token != "" {
		req.Header.Set("Authorization", "Bearer "+suite.token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *IntegrationTestSuite) decode(w *httptest.ResponseRecorder, out interface{}) {
	var env envelope
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env))
	suite.Require().NoError(json.Unmarshal(env.Data, out))
}

func (suite *IntegrationTestSuite) createPersona(name string) models.Persona {
	payload := models.CreatePersonaRequest{
		Name: name,
		Bio:  "Covers technology and AI.",
		Role: models.RoleReporter,
	}

	w := suite.do("POST", "/api/admin/personas", payload, true)
	suite.Require().Equal(http.StatusCreated, w.Code)

	var persona models.Persona
	suite.decode(w, &persona)
	return persona
}

func (suite *IntegrationTestSuite) createArticle(personaID string, payload map[string]interface{}) models.Article {
	if payload == nil {
		payload = map[string]interface{}{}
	}
	if _, ok := payload["title"]; !ok {
		payload["title"] = "Test Article"
	}
	if _, ok := payload["body"]; !ok {
		payload["body"] = "Some body text.\n\nSecond paragraph."
	}
	payload["personaId"] = personaID

	w := suite.do("POST", "/api/admin/articles", payload, true)
	suite.Require().Equal(http.StatusCreated, w.Code)

	var article models.Article
	suite.decode(w, &article)
	return article
}

func (suite *IntegrationTestSuite) TestLoginAndProfile() {
	w := suite.do("GET", "/api/admin/profile", nil, true)
	suite.Equal(http.StatusOK, w.Code)

	var admin models.Admin
	suite.decode(w, &admin)
	suite.Equal(services.DefaultAdminEmail, admin.Email)
}

func (suite *IntegrationTestSuite) TestAdminGateRunsBeforeValidation() {
	// Malformed and unauthenticated: must report 401, not 400
	w := suite.do("POST", "/api/admin/personas", `{"name":`, false)
	suite.Equal(http.StatusUnauthorized, w.Code)

	// Same body with identity reaches validation
	w = suite.do("POST", "/api/admin/personas", `{"name":"x"}`, true)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *IntegrationTestSuite) TestRenamePropagation() {
	persona := suite.createPersona("Alex Chen")
	first := suite.createArticle(persona.ID, map[string]interface{}{"title": "First"})
	second := suite.createArticle(persona.ID, map[string]interface{}{"title": "Second"})

	w := suite.do("PUT", "/api/admin/personas/"+persona.ID, `{"name":"Alexandra Chen"}`, true)
	suite.Require().Equal(http.StatusOK, w.Code)

	for _, id := range []string{first.ID, second.ID} {
		w = suite.do("GET", "/api/admin/articles/"+id, nil, true)
		suite.Require().Equal(http.StatusOK, w.Code)

		var article models.Article
		suite.decode(w, &article)
		suite.Equal("Alexandra Chen", article.PersonaName)
	}
}

func (suite *IntegrationTestSuite) TestDeletePersonaBlockedByArticles() {
	persona := suite.createPersona("Blocked")
	article := suite.createArticle(persona.ID, nil)

	w := suite.do("DELETE", "/api/admin/personas/"+persona.ID, nil, true)
	suite.Equal(http.StatusBadRequest, w.Code)

	// Still active
	w = suite.do("GET", "/api/admin/personas/"+persona.ID, nil, true)
	suite.Require().Equal(http.StatusOK, w.Code)
	var stored models.Persona
	suite.decode(w, &stored)
	suite.True(stored.IsActive)

	// Remove the article, then the delete succeeds as a soft delete
	w = suite.do("DELETE", "/api/admin/articles/"+article.ID, nil, true)
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.do("DELETE", "/api/admin/personas/"+persona.ID, nil, true)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.decode(w, &stored)
	suite.False(stored.IsActive)

	// Admin can still fetch it, the public cannot
	w = suite.do("GET", "/api/admin/personas/"+persona.ID, nil, true)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do("GET", "/api/public/personas/"+persona.ID, nil, false)
	suite.Equal(http.StatusNotFound, w.Code)

	var personas []models.Persona
	w = suite.do("GET", "/api/public/personas", nil, false)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.decode(w, &personas)
	suite.Empty(personas)
}

func (suite *IntegrationTestSuite) TestCreateArticleUnknownPersona() {
	payload := map[string]interface{}{
		"title":     "Orphan",
		"body":      "Body",
		"personaId": "does-not-exist",
	}
	w := suite.do("POST", "/api/admin/articles", payload, true)
	suite.Equal(http.StatusBadRequest, w.Code)

	// Nothing persisted
	w = suite.do("GET", "/api/admin/articles", nil, true)
	suite.Require().Equal(http.StatusOK, w.Code)
	var articles []models.Article
	suite.decode(w, &articles)
	suite.Empty(articles)
}

func (suite *IntegrationTestSuite) TestExcerptDerivation() {
	persona := suite.createPersona("Excerpt Author")
	longBody := strings.Repeat("a", 300)

	article := suite.createArticle(persona.ID, map[string]interface{}{"body": longBody})
	suite.Equal(strings.Repeat("a", 200)+"...", article.Excerpt)

	explicit := suite.createArticle(persona.ID, map[string]interface{}{
		"body":    longBody,
		"excerpt": "Hand-written summary",
	})
	suite.Equal("Hand-written summary", explicit.Excerpt)
}

func (suite *IntegrationTestSuite) TestPublicVisibilityAndFilters() {
	persona := suite.createPersona("Filter Author")
	suite.createArticle(persona.ID, map[string]interface{}{
		"title":    "AI rises",
		"category": "technology",
	})
	hidden := suite.createArticle(persona.ID, map[string]interface{}{
		"title":    "Secret draft",
		"isPublic": false,
	})

	var items []models.ArticleListItem

	w := suite.do("GET", "/api/public/articles?category=technology&search=rises", nil, false)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.decode(w, &items)
	suite.Require().Len(items, 1)
	suite.Equal("AI rises", items[0].Title)

	w = suite.do("GET", "/api/public/articles?category=world&search=rises", nil, false)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.decode(w, &items)
	suite.Empty(items)

	w = suite.do("GET", "/api/public/articles?search=zz", nil, false)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.decode(w, &items)
	suite.Empty(items)

	// Private articles never appear in any public listing or fetch
	w = suite.do("GET", "/api/public/articles", nil, false)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.decode(w, &items)
	for _, item := range items {
		suite.NotEqual(hidden.ID, item.ID)
	}

	w = suite.do("GET", "/api/public/articles/"+hidden.ID, nil, false)
	suite.Equal(http.StatusNotFound, w.Code)

	// Admin sees it
	w = suite.do("GET", "/api/admin/articles/"+hidden.ID, nil, true)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *IntegrationTestSuite) TestPublicArticleIncludesPersona() {
	persona := suite.createPersona("Embedded Author")
	article := suite.createArticle(persona.ID, nil)

	w := suite.do("GET", "/api/public/articles/"+article.ID, nil, false)
	suite.Require().Equal(http.StatusOK, w.Code)

	var detail models.PublicArticleDetail
	suite.decode(w, &detail)
	suite.Equal(article.ID, detail.ID)
	suite.Equal(persona.ID, detail.Persona.ID)
	suite.Equal("Embedded Author", detail.Persona.Name)
	suite.NotEmpty(detail.Persona.Bio)
}

func (suite *IntegrationTestSuite) TestPublicPersonaDetail() {
	persona := suite.createPersona("Page Author")
	visible := suite.createArticle(persona.ID, map[string]interface{}{"title": "Visible"})
	suite.createArticle(persona.ID, map[string]interface{}{"title": "Hidden", "isPublic": false})

	w := suite.do("GET", "/api/public/personas/"+persona.ID, nil, false)
	suite.Require().Equal(http.StatusOK, w.Code)

	var detail models.PersonaDetail
	suite.decode(w, &detail)
	suite.Equal(persona.ID, detail.Persona.ID)
	suite.Require().Len(detail.Articles, 1)
	suite.Equal(visible.ID, detail.Articles[0].ID)
}

func (suite *IntegrationTestSuite) TestSettingsGetOrCreate() {
	w := suite.do("GET", "/api/public/settings", nil, false)
	suite.Require().Equal(http.StatusOK, w.Code)

	var settings models.Settings
	suite.decode(w, &settings)
	suite.Equal(models.DefaultSiteName, settings.SiteName)
	suite.True(settings.IsPublic)

	// Second read returns the same singleton, no duplicate
	w = suite.do("GET", "/api/admin/settings", nil, true)
	suite.Require().Equal(http.StatusOK, w.Code)
	var again models.Settings
	suite.decode(w, &again)
	suite.Equal(settings.ID, again.ID)

	var count int64
	suite.db.Model(&models.Settings{}).Count(&count)
	suite.Equal(int64(1), count)

	// Upsert-style update
	w = suite.do("PUT", "/api/admin/settings", `{"siteName":"Renamed","isPublic":false}`, true)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.decode(w, &again)
	suite.Equal("Renamed", again.SiteName)
	suite.False(again.IsPublic)
}

func (suite *IntegrationTestSuite) TestPartialArticleUpdate() {
	persona := suite.createPersona("Partial Author")
	article := suite.createArticle(persona.ID, map[string]interface{}{
		"title":    "Keep me",
		"category": "technology",
	})

	w := suite.do("PUT", "/api/admin/articles/"+article.ID, `{"isPublic":false}`, true)
	suite.Require().Equal(http.StatusOK, w.Code)

	var updated models.Article
	suite.decode(w, &updated)
	suite.False(updated.IsPublic)
	suite.Equal(article.Title, updated.Title)
	suite.Equal(article.Body, updated.Body)
	suite.Equal(article.Excerpt, updated.Excerpt)
	suite.Require().NotNil(updated.Category)
	suite.Equal("technology", *updated.Category)
}

func (suite *IntegrationTestSuite) TestOmitVersusExplicitNull() {
	persona := suite.createPersona("Nullable Author")

	w := suite.do("PUT", "/api/admin/personas/"+persona.ID, `{"profileImageUrl":"https://example.com/a.png"}`, true)
	suite.Require().Equal(http.StatusOK, w.Code)

	// Omitting the field keeps the stored value
	w = suite.do("PUT", "/api/admin/personas/"+persona.ID, `{"displayOrder":3}`, true)
	suite.Require().Equal(http.StatusOK, w.Code)
	var updated models.Persona
	suite.decode(w, &updated)
	suite.Equal(3, updated.DisplayOrder)
	suite.Require().NotNil(updated.ProfileImageUrl)
	suite.Equal("https://example.com/a.png", *updated.ProfileImageUrl)

	// An explicit null clears it
	w = suite.do("PUT", "/api/admin/personas/"+persona.ID, `{"profileImageUrl":null}`, true)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.decode(w, &updated)
	suite.Nil(updated.ProfileImageUrl)
}

func (suite *IntegrationTestSuite) TestDeleteArticleNotFound() {
	w := suite.do("DELETE", "/api/admin/articles/missing-id", nil, true)
	suite.Equal(http.StatusNotFound, w.Code)
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}
