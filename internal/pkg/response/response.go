package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 错误码定义
const (
	CodeSuccess        = 0
	CodeParamError     = 1000
	CodeAuthFailed     = 1001
	CodeInvalidCode    = 1002
	CodeDeviceConflict = 1003
	CodeQuotaExceeded  = 1004
	CodeNotFound       = 1005
	CodeServerError    = 5000
)

// 错误码对应的默认消息
var codeMessages = map[int]string{
	CodeSuccess:        "success",
	CodeParamError:     "参数错误",
	CodeAuthFailed:     "认证失败",
	CodeInvalidCode:    "激活码无效",
	CodeDeviceConflict: "激活码已绑定其他设备",
	CodeQuotaExceeded:  "配额不足",
	CodeNotFound:       "资源不存在",
	CodeServerError:    "服务器内部错误",
}

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: "success",
		Data:    data,
	})
}

// SuccessWithMessage 带自定义消息的成功响应
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: message,
		Data:    data,
	})
}

// Error 错误响应，HTTP 状态与业务码一并返回
func Error(c *gin.Context, status, code int, message string) {
	if message == "" {
		message = codeMessages[code]
	}
	c.JSON(status, Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// ParamError 参数错误 400
func ParamError(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, CodeParamError, message)
}

// AuthError 认证失败 401
func AuthError(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, CodeAuthFailed, message)
}

// InvalidCodeError 激活码无效 401
func InvalidCodeError(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, CodeInvalidCode, message)
}

// DeviceConflictError 设备冲突 403
func DeviceConflictError(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, CodeDeviceConflict, message)
}

// QuotaError 配额不足 403
func QuotaError(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, CodeQuotaExceeded, message)
}

// ForbiddenError 会话无效 403
func ForbiddenError(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, CodeAuthFailed, message)
}

// NotFoundError 资源不存在 404
func NotFoundError(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, CodeNotFound, message)
}

// ServerError 服务器错误 500
func ServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, CodeServerError, message)
}
