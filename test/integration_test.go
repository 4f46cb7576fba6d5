package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	appcache "github.com/hassanjrao/translation-management/cache"
	"github.com/hassanjrao/translation-management/handlers"
	"github.com/hassanjrao/translation-management/helper"
	"github.com/hassanjrao/translation-management/middleware"
	"github.com/hassanjrao/translation-management/models"
	"github.com/hassanjrao/translation-management/repositories"
	"github.com/hassanjrao/translation-management/seeder"
	"github.com/hassanjrao/translation-management/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type IntegrationTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
	token  string
}

func (suite *IntegrationTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		suite.T().Fatal("Failed to open test database:", err)
	}
	suite.db = db

	if err := models.AutoMigrate(db); err != nil {
		suite.T().Fatal("Failed to run migrations:", err)
	}
	if err := seeder.SeedBaseData(db); err != nil {
		suite.T().Fatal("Failed to seed base data:", err)
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	admin := models.User{Name: "Admin", Email: "admin@example.com", Password: string(hash)}
	if err := db.Create(&admin).Error; err != nil {
		suite.T().Fatal("Failed to create admin user:", err)
	}

	suite.setupRouter()
	suite.token = suite.issueToken("admin@example.com", "password")
}

func (suite *IntegrationTestSuite) setupRouter() {
	httpHelper := helper.NewHTTPHelper()
	cacheStore := appcache.New()

	// Initialize repositories
	userRepo := repositories.NewUserRepository(suite.db)
	tokenRepo := repositories.NewApiTokenRepository(suite.db)
	localeRepo := repositories.NewLocaleRepository(suite.db)
	tagRepo := repositories.NewTagRepository(suite.db)
	translationRepo := repositories.NewTranslationRepository(suite.db, cacheStore, time.Hour)

	// Initialize services
	authService := services.NewAuthService(userRepo, tokenRepo)
	translationService := services.NewTranslationService(translationRepo, localeRepo, tagRepo)
	tagService := services.NewTagService(tagRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, httpHelper)
	translationHandler := handlers.NewTranslationHandler(translationService, httpHelper)
	tagHandler := handlers.NewTagHandler(tagService, httpHelper)

	router := gin.New()

	v1 := router.Group("/v1")
	{
		v1.POST("/auth/token", authHandler.IssueToken)

		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware(authService))
		{
			protected.DELETE("/auth/token", authHandler.RevokeToken)

			translations := protected.Group("/translations")
			{
				translations.POST("", translationHandler.Store)
				translations.GET("/search", translationHandler.Search)
				translations.GET("/export", translationHandler.Export)
				translations.GET("/:id", translationHandler.Show)
				translations.PUT("/:id", translationHandler.Update)
				translations.DELETE("/:id", translationHandler.Destroy)
			}

			tags := protected.Group("/tags")
			{
				tags.POST("", tagHandler.CreateTag)
				tags.GET("", tagHandler.GetTags)
			}
		}
	}

	suite.router = router
}

func (suite *IntegrationTestSuite) request(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			suite.T().Fatal("Failed to encode request body:", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp := httptest.NewRecorder()
	suite.router.ServeHTTP(resp, req)
	return resp
}

func (suite *IntegrationTestSuite) decode(resp *httptest.ResponseRecorder) map[string]interface{} {
	var decoded map[string]interface{}
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		suite.T().Fatalf("Failed to decode response %q: %v", resp.Body.String(), err)
	}
	return decoded
}

func (suite *IntegrationTestSuite) issueToken(email, password string) string {
	resp := suite.request("POST", "/v1/auth/token", map[string]string{
		"email": email, "password": password, "name": "test",
	}, "")
	suite.Require().Equal(http.StatusCreated, resp.Code, resp.Body.String())

	data := suite.decode(resp)["data"].(map[string]interface{})
	return data["token"].(string)
}

func (suite *IntegrationTestSuite) createTranslation(locale, key, value string, tags []string) map[string]interface{} {
	payload := map[string]interface{}{"locale": locale, "key": key, "value": value}
	if tags != nil {
		payload["tags"] = tags
	}
	resp := suite.request("POST", "/v1/translations", payload, suite.token)
	suite.Require().Equal(http.StatusCreated, resp.Code, resp.Body.String())
	return suite.decode(resp)["data"].(map[string]interface{})
}

func (suite *IntegrationTestSuite) TestIssueToken() {
	token := suite.issueToken("admin@example.com", "password")
	suite.Len(token, 64)
}

func (suite *IntegrationTestSuite) TestIssueTokenRejectsBadCredentials() {
	resp := suite.request("POST", "/v1/auth/token", map[string]string{
		"email": "admin@example.com", "password": "wrong",
	}, "")

	suite.Equal(http.StatusUnauthorized, resp.Code)
	suite.Equal("Invalid credentials", suite.decode(resp)["message"])
}

func (suite *IntegrationTestSuite) TestIssueTokenValidatesPayload() {
	resp := suite.request("POST", "/v1/auth/token", map[string]string{
		"email": "not-an-email", "password": "password",
	}, "")

	suite.Equal(http.StatusUnprocessableEntity, resp.Code)
	errs := suite.decode(resp)["errors"].(map[string]interface{})
	suite.Contains(errs, "email")
}

func (suite *IntegrationTestSuite) TestProtectedRoutesRejectMissingToken() {
	resp := suite.request("GET", "/v1/translations/search", nil, "")

	suite.Equal(http.StatusUnauthorized, resp.Code)
	suite.JSONEq(`{"message":"Unauthorized"}`, resp.Body.String())
}

func (suite *IntegrationTestSuite) TestProtectedRoutesRejectInvalidToken() {
	resp := suite.request("GET", "/v1/translations/search", nil, strings.Repeat("ab", 32))

	suite.Equal(http.StatusUnauthorized, resp.Code)
	suite.JSONEq(`{"message":"Unauthorized"}`, resp.Body.String())
}

func (suite *IntegrationTestSuite) TestCreateTranslation() {
	data := suite.createTranslation("en", "a.b", "v1", nil)

	suite.Equal("a.b", data["key"])
	suite.Equal("v1", data["value"])
	suite.NotZero(data["locale_id"])
	suite.NotNil(data["tags"])
	suite.Empty(data["tags"])
}

func (suite *IntegrationTestSuite) TestCreateDuplicateKeyForLocale() {
	suite.createTranslation("en", "a.b", "v1", nil)

	resp := suite.request("POST", "/v1/translations", map[string]interface{}{
		"locale": "en", "key": "a.b", "value": "v2",
	}, suite.token)

	suite.Equal(http.StatusUnprocessableEntity, resp.Code)
	errs := suite.decode(resp)["errors"].(map[string]interface{})
	suite.Contains(errs, "key")
}

func (suite *IntegrationTestSuite) TestCreateUnknownLocale() {
	resp := suite.request("POST", "/v1/translations", map[string]interface{}{
		"locale": "xx", "key": "a.b", "value": "v1",
	}, suite.token)

	suite.Equal(http.StatusUnprocessableEntity, resp.Code)
	errs := suite.decode(resp)["errors"].(map[string]interface{})
	suite.Contains(errs, "locale")
}

func (suite *IntegrationTestSuite) TestCreateUnknownTag() {
	resp := suite.request("POST", "/v1/translations", map[string]interface{}{
		"locale": "en", "key": "a.b", "value": "v1", "tags": []string{"nope"},
	}, suite.token)

	suite.Equal(http.StatusUnprocessableEntity, resp.Code)
	errs := suite.decode(resp)["errors"].(map[string]interface{})
	suite.Contains(errs, "tags")
}

func (suite *IntegrationTestSuite) TestShowTranslation() {
	data := suite.createTranslation("en", "a.b", "v1", []string{"mobile"})
	id := int(data["id"].(float64))

	resp := suite.request("GET", fmt.Sprintf("/v1/translations/%d", id), nil, suite.token)
	suite.Equal(http.StatusOK, resp.Code)

	shown := suite.decode(resp)["data"].(map[string]interface{})
	suite.Equal("a.b", shown["key"])
	locale := shown["locale"].(map[string]interface{})
	suite.Equal("en", locale["code"])
	tags := shown["tags"].([]interface{})
	suite.Len(tags, 1)
}

func (suite *IntegrationTestSuite) TestShowMissingTranslationIs404() {
	resp := suite.request("GET", "/v1/translations/99999", nil, suite.token)
	suite.Equal(http.StatusNotFound, resp.Code)
}

func (suite *IntegrationTestSuite) TestUpdateLocaleMoveInvalidatesBothExports() {
	data := suite.createTranslation("en", "a.b", "v1", nil)
	id := int(data["id"].(float64))

	// Warm both export caches.
	resp := suite.request("GET", "/v1/translations/export?locale=en", nil, suite.token)
	suite.Require().Equal(http.StatusOK, resp.Code)
	suite.Contains(suite.decode(resp)["data"].(map[string]interface{}), "a.b")

	resp = suite.request("GET", "/v1/translations/export?locale=fr", nil, suite.token)
	suite.Require().Equal(http.StatusOK, resp.Code)
	suite.Empty(suite.decode(resp)["data"])

	resp = suite.request("PUT", fmt.Sprintf("/v1/translations/%d", id), map[string]interface{}{
		"locale": "fr",
	}, suite.token)
	suite.Require().Equal(http.StatusOK, resp.Code, resp.Body.String())

	resp = suite.request("GET", "/v1/translations/export?locale=en", nil, suite.token)
	suite.NotContains(suite.decode(resp)["data"].(map[string]interface{}), "a.b")

	resp = suite.request("GET", "/v1/translations/export?locale=fr", nil, suite.token)
	suite.Contains(suite.decode(resp)["data"].(map[string]interface{}), "a.b")
}

func (suite *IntegrationTestSuite) TestExportUnknownLocale() {
	resp := suite.request("GET", "/v1/translations/export?locale=xx", nil, suite.token)
	suite.Equal(http.StatusUnprocessableEntity, resp.Code)
}

func (suite *IntegrationTestSuite) TestExportRequiresLocaleParam() {
	resp := suite.request("GET", "/v1/translations/export", nil, suite.token)
	suite.Equal(http.StatusUnprocessableEntity, resp.Code)
}

func (suite *IntegrationTestSuite) TestSearchByTagOrderedByRecency() {
	suite.createTranslation("en", "app.one", "First", []string{"mobile"})
	suite.createTranslation("en", "app.two", "Second", []string{"web"})
	data := suite.createTranslation("en", "app.three", "Third", []string{"mobile"})
	id := int(data["id"].(float64))

	// Push app.three's update timestamp clearly ahead.
	suite.Require().NoError(suite.db.Model(&models.Translation{}).
		Where("id = ?", id).
		Update("updated_at", time.Now().Add(time.Hour)).Error)

	resp := suite.request("GET", "/v1/translations/search?tags=mobile", nil, suite.token)
	suite.Require().Equal(http.StatusOK, resp.Code)

	data2 := suite.decode(resp)["data"].(map[string]interface{})
	items := data2["items"].([]interface{})
	suite.Require().Len(items, 2)
	suite.Equal("app.three", items[0].(map[string]interface{})["key"])
	suite.Equal("app.one", items[1].(map[string]interface{})["key"])

	pagination := data2["pagination"].(map[string]interface{})
	suite.Equal(float64(2), pagination["total_records"])
}

func (suite *IntegrationTestSuite) TestSearchAfterMutationReflectsNewState() {
	suite.createTranslation("en", "a.b", "v1", nil)

	resp := suite.request("GET", "/v1/translations/search", nil, suite.token)
	suite.Require().Equal(http.StatusOK, resp.Code)
	items := suite.decode(resp)["data"].(map[string]interface{})["items"].([]interface{})
	suite.Len(items, 1)

	suite.createTranslation("en", "c.d", "v2", nil)

	resp = suite.request("GET", "/v1/translations/search", nil, suite.token)
	items = suite.decode(resp)["data"].(map[string]interface{})["items"].([]interface{})
	suite.Len(items, 2)
}

func (suite *IntegrationTestSuite) TestSearchRejectsOutOfRangePageSize() {
	resp := suite.request("GET", "/v1/translations/search?per_page=1000", nil, suite.token)

	suite.Equal(http.StatusUnprocessableEntity, resp.Code)
	errs := suite.decode(resp)["errors"].(map[string]interface{})
	suite.Contains(errs, "per_page")
}

func (suite *IntegrationTestSuite) TestDeleteTranslation() {
	data := suite.createTranslation("en", "a.b", "v1", nil)
	id := int(data["id"].(float64))

	resp := suite.request("DELETE", fmt.Sprintf("/v1/translations/%d", id), nil, suite.token)
	suite.Equal(http.StatusOK, resp.Code)
	suite.Equal(true, suite.decode(resp)["data"])

	resp = suite.request("GET", fmt.Sprintf("/v1/translations/%d", id), nil, suite.token)
	suite.Equal(http.StatusNotFound, resp.Code)

	resp = suite.request("GET", "/v1/translations/export?locale=en", nil, suite.token)
	suite.Empty(suite.decode(resp)["data"])
}

func (suite *IntegrationTestSuite) TestDeleteMissingTranslationIs404() {
	resp := suite.request("DELETE", "/v1/translations/99999", nil, suite.token)
	suite.Equal(http.StatusNotFound, resp.Code)
}

func (suite *IntegrationTestSuite) TestRevokedTokenIsRejected() {
	token := suite.issueToken("admin@example.com", "password")

	resp := suite.request("DELETE", "/v1/auth/token", nil, token)
	suite.Require().Equal(http.StatusOK, resp.Code)

	resp = suite.request("GET", "/v1/translations/search", nil, token)
	suite.Equal(http.StatusUnauthorized, resp.Code)
	suite.JSONEq(`{"message":"Unauthorized"}`, resp.Body.String())
}

func (suite *IntegrationTestSuite) TestTagEndpoints() {
	resp := suite.request("POST", "/v1/tags", map[string]string{
		"name": "backend", "description": "Backend strings",
	}, suite.token)
	suite.Equal(http.StatusCreated, resp.Code)

	// Duplicate names are rejected.
	resp = suite.request("POST", "/v1/tags", map[string]string{"name": "backend"}, suite.token)
	suite.Equal(http.StatusUnprocessableEntity, resp.Code)

	resp = suite.request("GET", "/v1/tags", nil, suite.token)
	suite.Require().Equal(http.StatusOK, resp.Code)
	tags := suite.decode(resp)["data"].([]interface{})

	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.(map[string]interface{})["name"].(string))
	}
	suite.Contains(names, "backend")
	suite.Contains(names, "mobile")
}

func TestIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}
