package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/quiz_go_server/config"
	"github.com/qs3c/quiz_go_server/internal/api/middleware"
	"github.com/qs3c/quiz_go_server/internal/model/dto"
	"github.com/qs3c/quiz_go_server/internal/pkg/response"
	"github.com/qs3c/quiz_go_server/internal/pkg/session"
	"github.com/qs3c/quiz_go_server/internal/service"
)

type ActivationHandler struct {
	activationService *service.ActivationService
	quotaService      *service.QuotaService
	cfg               *config.Config
}

func NewActivationHandler(activationService *service.ActivationService, quotaService *service.QuotaService, cfg *config.Config) *ActivationHandler {
	return &ActivationHandler{
		activationService: activationService,
		quotaService:      quotaService,
		cfg:               cfg,
	}
}

// Activate 激活并签发会话 cookie
// POST /api/activate
func (h *ActivationHandler) Activate(c *gin.Context) {
	var req dto.ActivateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "请提供激活码")
		return
	}

	record, err := h.activationService.Activate(req.Code, req.DeviceID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCode):
			response.InvalidCodeError(c, err.Error())
		case errors.Is(err, service.ErrDeviceConflict):
			response.DeviceConflictError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	token, err := session.GenerateUserToken(record.Code, h.cfg.Session.Secret, h.cfg.Session.UserExpireHours)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, h.cfg.Session.UserExpireHours*3600, "/", "", h.cfg.Session.CookieSecure, true)

	response.Success(c, dto.ActivateResponse{
		Valid: true,
		Plan:  record.PlanType,
	})
}

// Logout 清除会话 cookie
// POST /api/logout
func (h *ActivationHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.cfg.Session.CookieSecure, true)
	response.Success(c, nil)
}

// GetQuota 查询当前配额状态
// GET /api/quota
func (h *ActivationHandler) GetQuota(c *gin.Context) {
	code, ok := middleware.ResolveCode(c, c.Query("code"))
	if !ok {
		response.AuthError(c, "请先激活")
		return
	}

	info, err := h.quotaService.GetQuotaInfo(code)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSession) {
			response.ForbiddenError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, info)
}
