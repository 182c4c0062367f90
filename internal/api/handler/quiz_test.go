package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/quiz_go_server/internal/pkg/response"
	"github.com/qs3c/quiz_go_server/internal/repository"
	"github.com/qs3c/quiz_go_server/internal/testutil"
)

func TestQuizHandler_CheckMiss(t *testing.T) {
	env := setupTestEnv(t)

	w := performRequest(t, env.engine, http.MethodPost, "/api/quiz/check", gin.H{"hash": "no-such-hash"})

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataMap(t, parseResponse(t, w))
	assert.Equal(t, false, data["found"])
	assert.NotContains(t, data, "quiz")
}

func TestQuizHandler_SaveThenCheck(t *testing.T) {
	env := setupTestEnv(t)

	save := performRequest(t, env.engine, http.MethodPost, "/api/quiz/save", gin.H{
		"hash":  "round-trip-hash",
		"title": "化学第三章",
		"quiz":  gin.H{"questions": []gin.H{{"q": "H2O?"}, {"q": "CO2?"}}},
	})
	assert.Equal(t, http.StatusOK, save.Code)

	check := performRequest(t, env.engine, http.MethodPost, "/api/quiz/check", gin.H{"hash": "round-trip-hash"})
	assert.Equal(t, http.StatusOK, check.Code)

	data := dataMap(t, parseResponse(t, check))
	assert.Equal(t, true, data["found"])
	assert.Equal(t, "化学第三章", data["title"])
	assert.Contains(t, data, "quiz")

	// 题目数在保存时统计
	quiz, err := repository.NewQuizRepository(env.db).GetByHash("round-trip-hash")
	require.NoError(t, err)
	assert.Equal(t, 2, quiz.QuestionCount)
}

func TestQuizHandler_CheckMissingHash(t *testing.T) {
	env := setupTestEnv(t)

	w := performRequest(t, env.engine, http.MethodPost, "/api/quiz/check", gin.H{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.CodeParamError, parseResponse(t, w).Code)
}

func TestQuizHandler_SaveMissingFields(t *testing.T) {
	env := setupTestEnv(t)

	w := performRequest(t, env.engine, http.MethodPost, "/api/quiz/save", gin.H{"title": "缺指纹"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.CodeParamError, parseResponse(t, w).Code)
}

func TestQuizHandler_SaveOverwrites(t *testing.T) {
	env := setupTestEnv(t)
	testutil.TestQuiz(t, env.db, "overwrite-hash", testutil.WithTitle("旧标题"))

	w := performRequest(t, env.engine, http.MethodPost, "/api/quiz/save", gin.H{
		"hash":  "overwrite-hash",
		"title": "新标题",
		"quiz":  gin.H{"questions": []gin.H{}},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	check := performRequest(t, env.engine, http.MethodPost, "/api/quiz/check", gin.H{"hash": "overwrite-hash"})
	data := dataMap(t, parseResponse(t, check))
	assert.Equal(t, "新标题", data["title"])
}
