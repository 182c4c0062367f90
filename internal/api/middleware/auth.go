package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/quiz_go_server/internal/pkg/response"
	"github.com/qs3c/quiz_go_server/internal/pkg/session"
)

const (
	// Cookie 名称
	SessionCookie = "session_code"
	AdminCookie   = "admin_session"

	codeKey = "activationCode"
)

// SessionAuth 解析激活会话 cookie，解析成功把激活码放进上下文
// 不在这里强制失败：没有 cookie 的客户端可以在请求体里带激活码回退
func SessionAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(SessionCookie); err == nil && token != "" {
			if claims, err := session.ParseToken(token, secret, session.KindUser); err == nil {
				c.Set(codeKey, claims.Code)
			}
		}
		c.Next()
	}
}

// ResolveCode 双来源身份解析：cookie 优先，请求体激活码为回退
func ResolveCode(c *gin.Context, bodyCode string) (string, bool) {
	if v, exists := c.Get(codeKey); exists {
		if code, ok := v.(string); ok && code != "" {
			return code, true
		}
	}
	if bodyCode != "" {
		return bodyCode, true
	}
	return "", false
}

// AdminAuth 管理会话校验中间件，全部管理端点强制要求
func AdminAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(AdminCookie)
		if err != nil || token == "" {
			response.AuthError(c, "请先登录管理后台")
			c.Abort()
			return
		}

		if _, err := session.ParseToken(token, secret, session.KindAdmin); err != nil {
			response.AuthError(c, "管理会话无效或已过期")
			c.Abort()
			return
		}

		c.Next()
	}
}
