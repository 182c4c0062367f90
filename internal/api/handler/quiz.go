package handler

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/quiz_go_server/internal/model/dto"
	"github.com/qs3c/quiz_go_server/internal/pkg/response"
	"github.com/qs3c/quiz_go_server/internal/service"
)

type QuizHandler struct {
	cacheService *service.CacheService
}

func NewQuizHandler(cacheService *service.CacheService) *QuizHandler {
	return &QuizHandler{
		cacheService: cacheService,
	}
}

// Check 按指纹查缓存
// POST /api/quiz/check
func (h *QuizHandler) Check(c *gin.Context) {
	var req dto.QuizCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	quiz, found, err := h.cacheService.Lookup(c.Request.Context(), req.Hash)
	if err != nil {
		response.ServerError(c, "")
		return
	}
	if !found {
		response.Success(c, dto.QuizCheckResponse{Found: false})
		return
	}

	response.Success(c, dto.QuizCheckResponse{
		Found: true,
		Quiz:  json.RawMessage(quiz.Payload),
		Title: quiz.Title,
	})
}

// Save 保存生成结果到缓存（也用作手动重存路径）
// POST /api/quiz/save
func (h *QuizHandler) Save(c *gin.Context) {
	var req dto.QuizSaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	if err := h.cacheService.Save(req.Hash, req.Title, string(req.Quiz)); err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, gin.H{"success": true})
}
