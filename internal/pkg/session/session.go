package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// 会话类型，用户会话与管理会话不能互换
const (
	KindUser  = "user"
	KindAdmin = "admin"
)

var (
	ErrInvalidToken = errors.New("会话无效或已过期")
)

// Claims 会话令牌载荷
// 激活会话的 Code 为激活码；管理会话无 Code，仅凭 Kind 区分
type Claims struct {
	Code string `json:"code,omitempty"`
	Kind string `json:"kind"`
	jwt.RegisteredClaims
}

// GenerateUserToken 签发激活会话令牌（长期有效）
func GenerateUserToken(code, secret string, expireHours int) (string, error) {
	return generate(code, KindUser, secret, expireHours)
}

// GenerateAdminToken 签发管理会话令牌（短期有效）
func GenerateAdminToken(secret string, expireHours int) (string, error) {
	return generate("", KindAdmin, secret, expireHours)
}

func generate(code, kind, secret string, expireHours int) (string, error) {
	now := time.Now()
	claims := Claims{
		Code: code,
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expireHours) * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken 解析并校验令牌，同时校验会话类型
func ParseToken(tokenString, secret, wantKind string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Kind != wantKind {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
