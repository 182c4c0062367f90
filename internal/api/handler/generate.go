package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/quiz_go_server/internal/api/middleware"
	"github.com/qs3c/quiz_go_server/internal/model/dto"
	"github.com/qs3c/quiz_go_server/internal/pkg/gemini"
	"github.com/qs3c/quiz_go_server/internal/pkg/response"
	"github.com/qs3c/quiz_go_server/internal/service"
)

type GenerateHandler struct {
	generationService *service.GenerationService
}

func NewGenerateHandler(generationService *service.GenerationService) *GenerateHandler {
	return &GenerateHandler{
		generationService: generationService,
	}
}

// Generate 生成代理入口
// POST /api/generate
func (h *GenerateHandler) Generate(c *gin.Context) {
	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	code, ok := middleware.ResolveCode(c, req.Code)
	if !ok {
		response.AuthError(c, "请先激活")
		return
	}

	resp, err := h.generationService.Generate(c.Request.Context(), code, &req)
	if err != nil {
		var quotaErr *service.QuotaExceededError
		switch {
		case errors.As(err, &quotaErr):
			response.QuotaError(c, quotaErr.Error())
		case errors.Is(err, service.ErrInvalidSession):
			response.ForbiddenError(c, err.Error())
		case errors.Is(err, service.ErrNoContent), errors.Is(err, service.ErrBadInline):
			response.ParamError(c, err.Error())
		case errors.Is(err, gemini.ErrNoKeysConfigured):
			response.ServerError(c, err.Error())
		default:
			// 上游失败，保留底层错误信息供客户端识别限流类消息
			response.ServerError(c, err.Error())
		}
		return
	}

	response.Success(c, resp)
}
