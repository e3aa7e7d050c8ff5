/*
 * @Description: 本机磁盘存储适配器，主要用于开发和单机部署
 * @Author: 蓝屿
 * @Date: 2026-03-05 16:05:48
 * @LastEditTime: 2026-05-30 09:20:31
 * @LastEditors: 蓝屿
 */
package storage

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// LocalAdapter 实现了 Adapter 接口，把对象键映射为 baseDir 下的相对路径。
type LocalAdapter struct {
	errTracker

	baseDir string
	baseURL string
}

// NewLocalAdapter 是 LocalAdapter 的构造函数，启动时保证根目录存在。
func NewLocalAdapter(baseDir, baseURL string) (*LocalAdapter, error) {
	if err := os.MkdirAll(baseDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("创建本地存储目录 '%s' 失败: %w", baseDir, err)
	}

	log.Printf("[LocalStorage] 本地存储就绪 - 目录: %s", baseDir)

	return &LocalAdapter{
		baseDir: baseDir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// path 把对象键转换为磁盘路径。键由服务端推导，斜杠只来自公共ID分段。
func (a *LocalAdapter) path(key string) string {
	return filepath.Join(a.baseDir, filepath.FromSlash(key))
}

// Save 写入或覆盖一个对象。
func (a *LocalAdapter) Save(_ context.Context, key string, data []byte, _ string) bool {
	fullPath := a.path(key)

	if err := os.MkdirAll(filepath.Dir(fullPath), os.ModePerm); err != nil {
		return a.fail("创建对象目录 %s 失败: %v", key, err)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return a.fail("写入对象 %s 失败: %v", key, err)
	}

	a.clear()
	return true
}

// Open 读取对象内容。
func (a *LocalAdapter) Open(_ context.Context, key string) ([]byte, bool) {
	data, err := os.ReadFile(a.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			a.fail("对象 %s 不存在", key)
		} else {
			a.fail("读取对象 %s 失败: %v", key, err)
		}
		return nil, false
	}

	a.clear()
	return data, true
}

// Delete 删除对象，文件本来就不存在时同样算成功。
func (a *LocalAdapter) Delete(_ context.Context, key string) bool {
	if err := os.Remove(a.path(key)); err != nil && !os.IsNotExist(err) {
		return a.fail("删除对象 %s 失败: %v", key, err)
	}

	a.clear()
	return true
}

// URL 返回对象的访问链接。
func (a *LocalAdapter) URL(key string) string {
	return a.baseURL + "/" + key
}

// ListKeys 遍历存储目录，返回全部对象键。
func (a *LocalAdapter) ListKeys(_ context.Context, prefix string) ([]string, error) {
	var keys []string

	err := filepath.WalkDir(a.baseDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(a.baseDir, p)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("遍历本地存储目录失败: %w", err)
	}

	return keys, nil
}
