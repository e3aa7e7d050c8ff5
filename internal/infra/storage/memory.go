/*
 * @Description: 内存存储适配器，用于测试和本地快速验证
 * @Author: 蓝屿
 * @Date: 2026-03-05 16:40:21
 * @LastEditTime: 2026-06-12 11:55:08
 * @LastEditors: 蓝屿
 */
package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
)

type memObject struct {
	data        []byte
	contentType string
}

// MemoryAdapter 实现了 Adapter 接口，对象保存在进程内存里。
// Fail* 字段可以为指定的键注入失败，用来验证调用方的回滚和重试路径。
type MemoryAdapter struct {
	errTracker

	mu      sync.Mutex
	objects map[string]memObject
	baseURL string

	// FailSaveKeys 中的键在 Save 时失败；FailDeleteKeys / FailOpenKeys 同理。
	FailSaveKeys   map[string]bool
	FailDeleteKeys map[string]bool
	FailOpenKeys   map[string]bool
}

// NewMemoryAdapter 是 MemoryAdapter 的构造函数。
func NewMemoryAdapter(baseURL string) *MemoryAdapter {
	return &MemoryAdapter{
		objects:        make(map[string]memObject),
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		FailSaveKeys:   make(map[string]bool),
		FailDeleteKeys: make(map[string]bool),
		FailOpenKeys:   make(map[string]bool),
	}
}

// Save 写入或覆盖一个对象。
func (a *MemoryAdapter) Save(_ context.Context, key string, data []byte, contentType string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.FailSaveKeys[key] {
		return a.fail("模拟写入失败: %s", key)
	}

	buf := make([]byte, len(data))
	copy(buf, data)
	a.objects[key] = memObject{data: buf, contentType: contentType}
	a.clear()
	return true
}

// Open 读取对象内容。
func (a *MemoryAdapter) Open(_ context.Context, key string) ([]byte, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.FailOpenKeys[key] {
		a.fail("模拟读取失败: %s", key)
		return nil, false
	}

	obj, ok := a.objects[key]
	if !ok {
		a.fail("对象 %s 不存在", key)
		return nil, false
	}

	buf := make([]byte, len(obj.data))
	copy(buf, obj.data)
	a.clear()
	return buf, true
}

// Delete 删除对象，键不存在时同样返回 true。
func (a *MemoryAdapter) Delete(_ context.Context, key string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.FailDeleteKeys[key] {
		return a.fail("模拟删除失败: %s", key)
	}

	delete(a.objects, key)
	a.clear()
	return true
}

// URL 返回对象的访问链接。
func (a *MemoryAdapter) URL(key string) string {
	return a.baseURL + "/" + key
}

// ListKeys 返回全部匹配前缀的对象键（排序后），供清扫任务和断言使用。
func (a *MemoryAdapter) ListKeys(_ context.Context, prefix string) ([]string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var keys []string
	for k := range a.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Has 检查对象是否存在，测试断言用。
func (a *MemoryAdapter) Has(key string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.objects[key]
	return ok
}

// Len 返回当前对象数量，测试断言用。
func (a *MemoryAdapter) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.objects)
}

// ContentType 返回对象保存时的 Content-Type，测试断言用。
func (a *MemoryAdapter) ContentType(key string) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.objects[key].contentType
}
