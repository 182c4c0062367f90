package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/quiz_go_server/config"
	"github.com/qs3c/quiz_go_server/internal/api/middleware"
	"github.com/qs3c/quiz_go_server/internal/model"
	"github.com/qs3c/quiz_go_server/internal/model/dto"
	"github.com/qs3c/quiz_go_server/internal/pkg/response"
	"github.com/qs3c/quiz_go_server/internal/pkg/session"
	"github.com/qs3c/quiz_go_server/internal/service"
)

type AdminHandler struct {
	adminService *service.AdminService
	quotaService *service.QuotaService
	cacheService *service.CacheService
	cfg          *config.Config
}

func NewAdminHandler(adminService *service.AdminService, quotaService *service.QuotaService, cacheService *service.CacheService, cfg *config.Config) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		quotaService: quotaService,
		cacheService: cacheService,
		cfg:          cfg,
	}
}

// Login 管理员登录，签发短期管理会话 cookie
// POST /api/admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var req dto.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	if err := h.adminService.Login(req.Password); err != nil {
		response.AuthError(c, err.Error())
		return
	}

	token, err := session.GenerateAdminToken(h.cfg.Session.Secret, h.cfg.Session.AdminExpireHours)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AdminCookie, token, h.cfg.Session.AdminExpireHours*3600, "/", "", h.cfg.Session.CookieSecure, true)

	response.Success(c, gin.H{"success": true})
}

// ListQuizzes 缓存列表
// GET /api/admin/quizzes
func (h *AdminHandler) ListQuizzes(c *gin.Context) {
	summaries, err := h.cacheService.List()
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, summaries)
}

// DeleteQuiz 删除缓存条目
// DELETE /api/admin/quiz/:id
func (h *AdminHandler) DeleteQuiz(c *gin.Context) {
	if err := h.cacheService.Delete(c.Param("id")); err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, gin.H{"success": true})
}

// ListCodes 激活码列表
// GET /api/admin/codes
func (h *AdminHandler) ListCodes(c *gin.Context) {
	codes, err := h.adminService.ListCodes()
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, codes)
}

// GenerateCodes 批量生成激活码
// POST /api/admin/codes/generate
func (h *AdminHandler) GenerateCodes(c *gin.Context) {
	var req dto.GenerateCodesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	codes, err := h.adminService.GenerateCodes(req.Count, req.PlanType)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, dto.GenerateCodesResponse{Codes: codes})
}

// DeleteCode 删除激活码
// DELETE /api/admin/code/:id
func (h *AdminHandler) DeleteCode(c *gin.Context) {
	if err := h.adminService.DeleteCode(c.Param("id")); err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, gin.H{"success": true})
}

// GetConfig 读取配额配置
// GET /api/admin/config
func (h *AdminHandler) GetConfig(c *gin.Context) {
	cfg, err := h.quotaService.GetConfig()
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, configResponse(cfg))
}

// UpdateConfig 部分更新配额配置
// POST /api/admin/config
func (h *AdminHandler) UpdateConfig(c *gin.Context) {
	var req dto.UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	cfg, err := h.quotaService.UpdateConfig(req.PlanLimits)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, configResponse(cfg))
}

func configResponse(cfg *model.QuotaConfig) dto.ConfigResponse {
	return dto.ConfigResponse{
		Free:      cfg.FreeLimit,
		Pro:       cfg.ProLimit,
		Gold:      cfg.GoldLimit,
		Unlimited: cfg.UnlimitedLimit,
		UpdatedAt: cfg.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
