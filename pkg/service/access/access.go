/*
 * @Description: 访问控制校验服务（远程服务 + 本地放行 + Redis 结果缓存）
 * @Author: 蓝屿
 * @Date: 2026-03-09 10:08:15
 * @LastEditTime: 2026-06-20 15:42:37
 * @LastEditors: 蓝屿
 */
package access

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/lanyu-o/lanyu-blog/pkg/apperr"
	"github.com/lanyu-o/lanyu-blog/pkg/config"
	"github.com/lanyu-o/lanyu-blog/pkg/constant"

	"github.com/redis/go-redis/v9"
)

// Verifier 校验调用者是否有权对某资源执行某级别的操作。
// 通过时返回 nil，拒绝时返回包装了 apperr.ErrForbidden 的错误。
type Verifier interface {
	Verify(ctx context.Context, callerID, resource string, level constant.AccessLevel) error
}

// NewVerifier 根据配置选择实现：allow_all 直接放行（本地开发用），
// remote 调用上游访问控制服务，并在 Redis 可用时缓存校验结果。
func NewVerifier(cfg *config.Config, rdb *redis.Client) (Verifier, error) {
	mode := cfg.GetStringOrDefault(config.KeyAccessMode, "allow_all")
	switch mode {
	case "allow_all":
		log.Println("⚠️  访问控制运行在 allow_all 模式，仅用于本地开发")
		return &allowAllVerifier{}, nil
	case "remote":
		endpoint := cfg.GetString(config.KeyAccessEndpoint)
		if endpoint == "" {
			return nil, fmt.Errorf("访问控制模式为 remote 但未配置 Access.Endpoint")
		}
		var v Verifier = &httpVerifier{
			endpoint: endpoint,
			client:   &http.Client{Timeout: 5 * time.Second},
		}
		if rdb != nil {
			ttl := cfg.GetInt(config.KeyAccessCacheTTL)
			if ttl <= 0 {
				ttl = 60
			}
			v = &cachedVerifier{next: v, rdb: rdb, ttl: time.Duration(ttl) * time.Second}
		}
		return v, nil
	default:
		return nil, fmt.Errorf("未知的访问控制模式: %s (支持 allow_all / remote)", mode)
	}
}

type allowAllVerifier struct{}

func (v *allowAllVerifier) Verify(_ context.Context, callerID, _ string, _ constant.AccessLevel) error {
	if callerID == "" || callerID == constant.SystemUserID {
		return fmt.Errorf("调用者身份缺失: %w", apperr.ErrUnauthorized)
	}
	return nil
}

// httpVerifier 调用上游访问控制服务做校验。
type httpVerifier struct {
	endpoint string
	client   *http.Client
}

type verifyRequest struct {
	UserID   string `json:"user_id"`
	Resource string `json:"resource"`
	Level    string `json:"level"`
}

type verifyResponse struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason"`
}

func (v *httpVerifier) Verify(ctx context.Context, callerID, resource string, level constant.AccessLevel) error {
	if callerID == "" || callerID == constant.SystemUserID {
		return fmt.Errorf("调用者身份缺失: %w", apperr.ErrUnauthorized)
	}

	body, err := json.Marshal(verifyRequest{
		UserID:   callerID,
		Resource: resource,
		Level:    level.String(),
	})
	if err != nil {
		return fmt.Errorf("序列化访问校验请求失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("构造访问校验请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("调用访问控制服务失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("访问控制服务返回异常状态码 %d", resp.StatusCode)
	}

	var vr verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return fmt.Errorf("解析访问控制响应失败: %w", err)
	}
	if !vr.Allowed {
		return fmt.Errorf("用户 %s 对资源 %s 无 %s 权限: %w",
			callerID, resource, level.String(), apperr.ErrForbidden)
	}
	return nil
}

// cachedVerifier 把放行结果缓存到 Redis，拒绝结果不缓存，
// 保证权限回收后最多一个 TTL 内生效，收紧权限则立即生效。
type cachedVerifier struct {
	next Verifier
	rdb  *redis.Client
	ttl  time.Duration
}

func (v *cachedVerifier) cacheKey(callerID, resource string, level constant.AccessLevel) string {
	return fmt.Sprintf("access:verdict:%s:%s:%d", callerID, resource, level)
}

func (v *cachedVerifier) Verify(ctx context.Context, callerID, resource string, level constant.AccessLevel) error {
	key := v.cacheKey(callerID, resource, level)

	if val, err := v.rdb.Get(ctx, key).Result(); err == nil && val == "1" {
		return nil
	}

	if err := v.next.Verify(ctx, callerID, resource, level); err != nil {
		return err
	}

	if err := v.rdb.Set(ctx, key, "1", v.ttl).Err(); err != nil {
		log.Printf("[Access] 写入校验结果缓存失败: %v", err)
	}
	return nil
}
