// internal/app/middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/lanyu-o/lanyu-blog/internal/pkg/auth"
	"github.com/lanyu-o/lanyu-blog/pkg/constant"
	"github.com/lanyu-o/lanyu-blog/pkg/response"

	"github.com/gin-gonic/gin"
)

type Middleware struct {
	jwtSecret []byte
}

func NewMiddleware(jwtSecret []byte) *Middleware {
	return &Middleware{jwtSecret: jwtSecret}
}

// JWTAuth 是一个强制性的JWT认证中间件
func (m *Middleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.Request.Header.Get("Authorization")
		if authHeader == "" {
			response.Fail(c, http.StatusUnauthorized, "请求未携带Token，无权限访问")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			response.Fail(c, http.StatusUnauthorized, "Token格式不正确")
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(parts[1], m.jwtSecret)
		if err != nil {
			response.Fail(c, http.StatusUnauthorized, "无效或过期的Token")
			c.Abort()
			return
		}

		// system 是保留的内部身份，不接受携带该身份的外部请求
		if claims.UserID == "" || claims.UserID == constant.SystemUserID {
			response.Fail(c, http.StatusUnauthorized, "Token携带的身份无效")
			c.Abort()
			return
		}

		c.Set(auth.ClaimsKey, claims)
		c.Next()
	}
}

// CallerID 从上下文取出调用者的公共用户 ID，未认证时返回空串。
func CallerID(c *gin.Context) string {
	claimsValue, exists := c.Get(auth.ClaimsKey)
	if !exists {
		return ""
	}
	claims, ok := claimsValue.(*auth.CustomClaims)
	if !ok {
		return ""
	}
	return claims.UserID
}
