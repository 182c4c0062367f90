package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/quiz_go_server/config"
	"github.com/qs3c/quiz_go_server/internal/api/middleware"
	"github.com/qs3c/quiz_go_server/internal/model"
	"github.com/qs3c/quiz_go_server/internal/pkg/response"
	"github.com/qs3c/quiz_go_server/internal/repository"
	"github.com/qs3c/quiz_go_server/internal/service"
	"github.com/qs3c/quiz_go_server/internal/testutil"
)

const testSessionSecret = "handler-test-secret"

type fakeTextGenerator struct {
	calls int
	text  string
	err   error
}

func (f *fakeTextGenerator) GenerateText(ctx context.Context, modelName string, parts []genai.Part, genCfg genai.GenerationConfig) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type testEnv struct {
	db     *gorm.DB
	engine *gin.Engine
	cfg    *config.Config
	gen    *fakeTextGenerator
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	cfg := &config.Config{}
	cfg.Session.Secret = testSessionSecret
	cfg.Session.UserExpireHours = 720
	cfg.Session.AdminExpireHours = 12
	cfg.Admin.PasswordHash = "admin-pass"

	codeRepo := repository.NewCodeRepository(db)
	configRepo := repository.NewConfigRepository(db)
	quizRepo := repository.NewQuizRepository(db)

	quotaSvc := service.NewQuotaService(codeRepo, configRepo)
	activationSvc := service.NewActivationService(codeRepo)
	cacheSvc := service.NewCacheService(quizRepo, nil)
	adminSvc := service.NewAdminService(codeRepo, cfg)

	gen := &fakeTextGenerator{text: `{"questions":[{"q":"?"}]}`}
	generationSvc := service.NewGenerationService(quotaSvc, cacheSvc, gen)

	activationHandler := NewActivationHandler(activationSvc, quotaSvc, cfg)
	generateHandler := NewGenerateHandler(generationSvc)
	quizHandler := NewQuizHandler(cacheSvc)
	adminHandler := NewAdminHandler(adminSvc, quotaSvc, cacheSvc, cfg)

	engine := gin.New()
	api := engine.Group("/api")
	{
		api.POST("/activate", activationHandler.Activate)
		api.POST("/logout", activationHandler.Logout)
		api.POST("/quiz/check", quizHandler.Check)
		api.POST("/quiz/save", quizHandler.Save)

		sessioned := api.Group("")
		sessioned.Use(middleware.SessionAuth(cfg.Session.Secret))
		{
			sessioned.POST("/generate", generateHandler.Generate)
			sessioned.GET("/quota", activationHandler.GetQuota)
		}

		api.POST("/admin/login", adminHandler.Login)

		admin := api.Group("/admin")
		admin.Use(middleware.AdminAuth(cfg.Session.Secret))
		{
			admin.GET("/quizzes", adminHandler.ListQuizzes)
			admin.DELETE("/quiz/:id", adminHandler.DeleteQuiz)
			admin.GET("/codes", adminHandler.ListCodes)
			admin.POST("/codes/generate", adminHandler.GenerateCodes)
			admin.DELETE("/code/:id", adminHandler.DeleteCode)
			admin.GET("/config", adminHandler.GetConfig)
			admin.POST("/config", adminHandler.UpdateConfig)
		}
	}

	return &testEnv{db: db, engine: engine, cfg: cfg, gen: gen}
}

func performRequest(t *testing.T, engine *gin.Engine, method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

type apiResponse struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func dataMap(t *testing.T, resp apiResponse) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Data, &m))
	return m
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestActivateHandler_Success(t *testing.T) {
	env := setupTestEnv(t)
	code := testutil.TestCode(t, env.db, testutil.WithPlan(model.PlanPro))

	w := performRequest(t, env.engine, http.MethodPost, "/api/activate", gin.H{
		"code":      code.Code,
		"device_id": "device-1",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeSuccess, resp.Code)

	data := dataMap(t, resp)
	assert.Equal(t, true, data["valid"])
	assert.Equal(t, model.PlanPro, data["plan"])

	cookie := findCookie(w, middleware.SessionCookie)
	require.NotNil(t, cookie, "session cookie should be set")
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
}

func TestActivateHandler_MissingCode(t *testing.T) {
	env := setupTestEnv(t)

	w := performRequest(t, env.engine, http.MethodPost, "/api/activate", gin.H{"device_id": "device-1"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.CodeParamError, parseResponse(t, w).Code)
}

func TestActivateHandler_InvalidCode(t *testing.T) {
	env := setupTestEnv(t)

	w := performRequest(t, env.engine, http.MethodPost, "/api/activate", gin.H{"code": "NOSUCHCODE"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, response.CodeInvalidCode, parseResponse(t, w).Code)
	assert.Nil(t, findCookie(w, middleware.SessionCookie))
}

func TestActivateHandler_DeviceConflict(t *testing.T) {
	env := setupTestEnv(t)
	code := testutil.TestCode(t, env.db, testutil.WithDevice("device-1"))

	w := performRequest(t, env.engine, http.MethodPost, "/api/activate", gin.H{
		"code":      code.Code,
		"device_id": "device-2",
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, response.CodeDeviceConflict, parseResponse(t, w).Code)
}

func TestLogoutHandler_ClearsCookie(t *testing.T) {
	env := setupTestEnv(t)

	w := performRequest(t, env.engine, http.MethodPost, "/api/logout", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	cookie := findCookie(w, middleware.SessionCookie)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)
}

func TestQuotaHandler_ByQueryCode(t *testing.T) {
	env := setupTestEnv(t)
	code := testutil.TestCode(t, env.db, testutil.WithUsage(1))

	w := performRequest(t, env.engine, http.MethodGet, "/api/quota?code="+code.Code, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataMap(t, parseResponse(t, w))
	assert.Equal(t, float64(3), data["daily_limit"])
	assert.Equal(t, float64(1), data["daily_used"])
	assert.Equal(t, float64(2), data["daily_remain"])
}

func TestQuotaHandler_ByCookie(t *testing.T) {
	env := setupTestEnv(t)
	code := testutil.TestCode(t, env.db)

	activate := performRequest(t, env.engine, http.MethodPost, "/api/activate", gin.H{"code": code.Code})
	cookie := findCookie(activate, middleware.SessionCookie)
	require.NotNil(t, cookie)

	w := performRequest(t, env.engine, http.MethodGet, "/api/quota", nil, cookie)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataMap(t, parseResponse(t, w))
	assert.Equal(t, model.PlanFree, data["plan"])
}

func TestQuotaHandler_NoIdentity(t *testing.T) {
	env := setupTestEnv(t)

	w := performRequest(t, env.engine, http.MethodGet, "/api/quota", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, response.CodeAuthFailed, parseResponse(t, w).Code)
}
