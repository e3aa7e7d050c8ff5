/*
 * @Description: JWT 令牌的签发与解析
 * @Author: 蓝屿
 * @Date: 2026-03-12 10:48:30
 * @LastEditTime: 2026-06-26 17:12:48
 * @LastEditors: 蓝屿
 */
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken 为指定的公共用户 ID 签发一个 Access Token，测试和运维工具使用。
// 生产流量的令牌由上游身份服务颁发，本服务只负责校验。
func GenerateToken(publicUserID string, secretKey []byte, ttl time.Duration) (string, error) {
	if len(secretKey) == 0 {
		return "", fmt.Errorf("JWT Secret 不能为空")
	}

	now := time.Now()
	claims := CustomClaims{
		UserID: publicUserID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "lanyu-blog",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}

// ParseToken 解析并校验 JWT Token。
func ParseToken(tokenStr string, secretKey []byte) (*CustomClaims, error) {
	if len(secretKey) == 0 {
		return nil, fmt.Errorf("JWT Secret 不能为空")
	}

	claims := &CustomClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("解析token失败: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("无效或过期Token")
	}
	return claims, nil
}
