/*
 * @Description:
 * @Author: 蓝屿
 * @Date: 2026-03-12 10:40:05
 * @LastEditTime: 2026-04-28 09:22:13
 * @LastEditors: 蓝屿
 */
package auth

import "github.com/golang-jwt/jwt/v5"

// ClaimsKey 是用于在 gin.Context 中存储和检索用户信息的键。
const ClaimsKey = "user_claims"

// CustomClaims 定义了 JWT 的自定义 Claims 结构体。
// UserID 是上游颁发的公共用户 ID，也是访问控制校验时的调用者身份。
type CustomClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}
