/*
 * @Description: 阿里云 OSS 存储适配器实现
 * @Author: 蓝屿
 * @Date: 2026-03-05 15:21:09
 * @LastEditTime: 2026-05-30 09:14:52
 * @LastEditors: 蓝屿
 */
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"

	"github.com/lanyu-o/lanyu-blog/pkg/config"
)

// OSSAdapter 实现了 Adapter 接口，处理与阿里云 OSS 的所有交互。
// OSS SDK 自身不接受 context，超时由 SDK 的 HTTP 客户端配置控制。
type OSSAdapter struct {
	errTracker

	bucket    *oss.Bucket
	bucketURL string
	cdnDomain string
}

// NewOSSAdapter 是 OSSAdapter 的构造函数。
func NewOSSAdapter(cfg *config.Config) (*OSSAdapter, error) {
	endpoint := cfg.GetString(config.KeyOSSEndpoint)
	bucketName := cfg.GetString(config.KeyOSSBucket)
	accessKey := cfg.GetString(config.KeyOSSAccessKey)
	secretKey := cfg.GetString(config.KeyOSSSecretKey)

	if endpoint == "" || bucketName == "" {
		return nil, fmt.Errorf("OSS 配置缺少 Endpoint/Bucket")
	}
	if accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("OSS 配置缺少 AccessKey/SecretKey")
	}

	client, err := oss.New(endpoint, accessKey, secretKey)
	if err != nil {
		return nil, fmt.Errorf("创建 OSS 客户端失败: %w", err)
	}

	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("获取 OSS 存储桶 '%s' 失败: %w", bucketName, err)
	}

	// 把 endpoint 转换成 bucket 级别的访问域名
	host := strings.TrimPrefix(strings.TrimPrefix(endpoint, "https://"), "http://")
	bucketURL := fmt.Sprintf("https://%s.%s", bucketName, host)

	log.Printf("[OSS] 客户端创建成功 - 存储桶: %s", bucketName)

	return &OSSAdapter{
		bucket:    bucket,
		bucketURL: bucketURL,
		cdnDomain: strings.TrimSuffix(cfg.GetString(config.KeyOSSCDNDomain), "/"),
	}, nil
}

// Save 写入或覆盖一个对象。
func (a *OSSAdapter) Save(_ context.Context, key string, data []byte, contentType string) bool {
	var options []oss.Option
	if contentType != "" {
		options = append(options, oss.ContentType(contentType))
	}

	if err := a.bucket.PutObject(key, bytes.NewReader(data), options...); err != nil {
		log.Printf("[OSS] 上传对象失败: key=%s, 错误: %v", key, err)
		return a.fail("上传对象 %s 失败: %v", key, err)
	}

	a.clear()
	return true
}

// Open 读取对象内容。
func (a *OSSAdapter) Open(_ context.Context, key string) ([]byte, bool) {
	body, err := a.bucket.GetObject(key)
	if err != nil {
		log.Printf("[OSS] 读取对象失败: key=%s, 错误: %v", key, err)
		a.fail("读取对象 %s 失败: %v", key, err)
		return nil, false
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		a.fail("读取对象 %s 内容失败: %v", key, err)
		return nil, false
	}

	a.clear()
	return data, true
}

// Delete 删除对象。OSS 对不存在的键同样返回成功，满足幂等要求。
func (a *OSSAdapter) Delete(_ context.Context, key string) bool {
	if err := a.bucket.DeleteObject(key); err != nil {
		log.Printf("[OSS] 删除对象失败: key=%s, 错误: %v", key, err)
		return a.fail("删除对象 %s 失败: %v", key, err)
	}

	a.clear()
	return true
}

// URL 返回对象的公开访问链接，优先使用 CDN 域名。
func (a *OSSAdapter) URL(key string) string {
	if a.cdnDomain != "" {
		base := a.cdnDomain
		if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
			base = "https://" + base
		}
		return fmt.Sprintf("%s/%s", base, key)
	}
	return fmt.Sprintf("%s/%s", a.bucketURL, key)
}

// ListKeys 按前缀列举全部对象键（marker 分页聚合）。
func (a *OSSAdapter) ListKeys(_ context.Context, prefix string) ([]string, error) {
	var keys []string

	marker := ""
	for {
		result, err := a.bucket.ListObjects(oss.Prefix(prefix), oss.Marker(marker))
		if err != nil {
			return nil, fmt.Errorf("列举 OSS 对象失败: %w", err)
		}
		for _, obj := range result.Objects {
			keys = append(keys, obj.Key)
		}
		if !result.IsTruncated {
			break
		}
		marker = result.NextMarker
	}

	return keys, nil
}
