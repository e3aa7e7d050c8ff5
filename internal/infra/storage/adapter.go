/*
 * @Description: 定义了所有存储后端需要遵守的适配器契约和公共结构
 * @Author: 蓝屿
 * @Date: 2026-03-05 10:40:17
 * @LastEditTime: 2026-06-12 11:28:50
 * @LastEditors: 蓝屿
 */
package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/lanyu-o/lanyu-blog/pkg/config"
)

// Adapter 定义了媒体子系统对对象存储的全部要求。
//
// 预期内的失败（认证、网络、配额）不通过 error 传播：写入/读取/删除
// 返回布尔结果，失败细节通过 LastError 获取，由下一次操作覆盖。
// URL 是纯函数，不做存在性检查。
type Adapter interface {
	// Save 写入或覆盖一个对象，失败时返回 false。
	Save(ctx context.Context, key string, data []byte, contentType string) bool
	// Open 读取对象内容；对象不存在或读取失败时返回 (nil, false)。
	Open(ctx context.Context, key string) ([]byte, bool)
	// Delete 删除对象；对象本来就不存在时同样返回 true（幂等）。
	Delete(ctx context.Context, key string) bool
	// URL 返回对象的可访问链接，不校验对象是否存在。
	URL(key string) string
	// LastError 返回最近一次失败的诊断信息。
	LastError() string
}

// Lister 是可选能力：支持按前缀列举对象键的后端实现它，
// 孤儿对象清扫任务依赖该能力，不支持的后端会被任务跳过。
type Lister interface {
	ListKeys(ctx context.Context, prefix string) ([]string, error)
}

// errTracker 记录适配器实例上最近一次失败，成功操作会清掉它。
type errTracker struct {
	mu   sync.Mutex
	last string
}

// fail 记录失败信息并返回 false，方便各实现直接 return。
func (t *errTracker) fail(format string, args ...interface{}) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.last = fmt.Sprintf(format, args...)
	return false
}

// clear 清除失败信息（在成功操作之后调用）。
func (t *errTracker) clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.last = ""
}

func (t *errTracker) LastError() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last
}

// NewAdapter 按配置选择存储后端，进程启动时调用一次，之后以接口注入。
func NewAdapter(ctx context.Context, cfg *config.Config) (Adapter, error) {
	storageType := cfg.GetStringOrDefault(config.KeyStorageType, "local")

	switch storageType {
	case "s3":
		return NewS3Adapter(ctx, cfg)
	case "oss":
		return NewOSSAdapter(cfg)
	case "local":
		return NewLocalAdapter(
			cfg.GetStringOrDefault(config.KeyLocalDir, "data/storage"),
			cfg.GetStringOrDefault(config.KeyLocalBaseURL, "http://localhost:8800/media"),
		)
	default:
		return nil, fmt.Errorf("不支持的存储类型: %s (支持: s3, oss, local)", storageType)
	}
}
