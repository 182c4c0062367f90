package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/quiz_go_server/internal/api/middleware"
	"github.com/qs3c/quiz_go_server/internal/model"
	"github.com/qs3c/quiz_go_server/internal/pkg/response"
	"github.com/qs3c/quiz_go_server/internal/repository"
	"github.com/qs3c/quiz_go_server/internal/testutil"
)

func adminLogin(t *testing.T, env *testEnv) *http.Cookie {
	t.Helper()
	w := performRequest(t, env.engine, http.MethodPost, "/api/admin/login", gin.H{"password": "admin-pass"})
	require.Equal(t, http.StatusOK, w.Code)
	cookie := findCookie(w, middleware.AdminCookie)
	require.NotNil(t, cookie, "admin cookie should be set")
	return cookie
}

func TestAdminHandler_LoginWrongPassword(t *testing.T) {
	env := setupTestEnv(t)

	w := performRequest(t, env.engine, http.MethodPost, "/api/admin/login", gin.H{"password": "nope"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, response.CodeAuthFailed, parseResponse(t, w).Code)
	assert.Nil(t, findCookie(w, middleware.AdminCookie))
}

func TestAdminHandler_LoginSuccess(t *testing.T) {
	env := setupTestEnv(t)

	cookie := adminLogin(t, env)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
}

func TestAdminHandler_ProtectedWithoutCookie(t *testing.T) {
	env := setupTestEnv(t)

	w := performRequest(t, env.engine, http.MethodGet, "/api/admin/codes", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, response.CodeAuthFailed, parseResponse(t, w).Code)
}

func TestAdminHandler_UserCookieRejected(t *testing.T) {
	env := setupTestEnv(t)
	code := testutil.TestCode(t, env.db)

	// 用户会话 cookie 放进管理 cookie 位也过不了校验
	activate := performRequest(t, env.engine, http.MethodPost, "/api/activate", gin.H{"code": code.Code})
	userCookie := findCookie(activate, middleware.SessionCookie)
	require.NotNil(t, userCookie)

	w := performRequest(t, env.engine, http.MethodGet, "/api/admin/codes", nil,
		&http.Cookie{Name: middleware.AdminCookie, Value: userCookie.Value})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminHandler_GenerateAndListCodes(t *testing.T) {
	env := setupTestEnv(t)
	cookie := adminLogin(t, env)

	w := performRequest(t, env.engine, http.MethodPost, "/api/admin/codes/generate", gin.H{
		"count":     3,
		"plan_type": model.PlanGold,
	}, cookie)
	assert.Equal(t, http.StatusOK, w.Code)

	data := dataMap(t, parseResponse(t, w))
	codes, ok := data["codes"].([]interface{})
	require.True(t, ok)
	assert.Len(t, codes, 3)

	list := performRequest(t, env.engine, http.MethodGet, "/api/admin/codes", nil, cookie)
	assert.Equal(t, http.StatusOK, list.Code)

	records, err := repository.NewCodeRepository(env.db).List()
	require.NoError(t, err)
	assert.Len(t, records, 3)
	for _, record := range records {
		assert.Equal(t, model.PlanGold, record.PlanType)
	}
}

func TestAdminHandler_GenerateCodesInvalidCount(t *testing.T) {
	env := setupTestEnv(t)
	cookie := adminLogin(t, env)

	w := performRequest(t, env.engine, http.MethodPost, "/api/admin/codes/generate", gin.H{
		"count":     0,
		"plan_type": model.PlanFree,
	}, cookie)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminHandler_GenerateCodesInvalidPlan(t *testing.T) {
	env := setupTestEnv(t)
	cookie := adminLogin(t, env)

	w := performRequest(t, env.engine, http.MethodPost, "/api/admin/codes/generate", gin.H{
		"count":     1,
		"plan_type": "platinum",
	}, cookie)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminHandler_DeleteCode(t *testing.T) {
	env := setupTestEnv(t)
	cookie := adminLogin(t, env)
	code := testutil.TestCode(t, env.db, testutil.WithCode("DELETEME00000001"))

	w := performRequest(t, env.engine, http.MethodDelete, "/api/admin/code/"+code.Code, nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)

	_, err := repository.NewCodeRepository(env.db).GetByCode(code.Code)
	assert.Error(t, err)
}

func TestAdminHandler_ConfigRoundTrip(t *testing.T) {
	env := setupTestEnv(t)
	cookie := adminLogin(t, env)

	get := performRequest(t, env.engine, http.MethodGet, "/api/admin/config", nil, cookie)
	assert.Equal(t, http.StatusOK, get.Code)
	data := dataMap(t, parseResponse(t, get))
	assert.Equal(t, float64(3), data["free"])
	assert.Equal(t, float64(20), data["pro"])

	update := performRequest(t, env.engine, http.MethodPost, "/api/admin/config", gin.H{
		"plan_limits": gin.H{"pro": 50},
	}, cookie)
	assert.Equal(t, http.StatusOK, update.Code)

	data = dataMap(t, parseResponse(t, update))
	assert.Equal(t, float64(50), data["pro"])
	assert.Equal(t, float64(3), data["free"]) // 未指定的套餐保持原值
}

func TestAdminHandler_QuizManagement(t *testing.T) {
	env := setupTestEnv(t)
	cookie := adminLogin(t, env)

	testutil.TestQuiz(t, env.db, "admin-hash-1", testutil.WithTitle("待删除"))

	list := performRequest(t, env.engine, http.MethodGet, "/api/admin/quizzes", nil, cookie)
	assert.Equal(t, http.StatusOK, list.Code)

	del := performRequest(t, env.engine, http.MethodDelete, "/api/admin/quiz/admin-hash-1", nil, cookie)
	assert.Equal(t, http.StatusOK, del.Code)

	_, err := repository.NewQuizRepository(env.db).GetByHash("admin-hash-1")
	assert.Error(t, err)
}
