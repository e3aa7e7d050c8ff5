/*
 * @Description: AWS S3 存储适配器实现（使用 aws-sdk-go-v2）
 * @Author: 蓝屿
 * @Date: 2026-03-05 14:02:33
 * @LastEditTime: 2026-06-12 11:40:06
 * @LastEditors: 蓝屿
 */
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/lanyu-o/lanyu-blog/pkg/config"
)

// S3Adapter 实现了 Adapter 接口，处理与 AWS S3（或 S3 兼容服务）的所有交互。
type S3Adapter struct {
	errTracker

	client    *s3.Client
	bucket    string
	region    string
	endpoint  string
	cdnDomain string
}

// NewS3Adapter 是 S3Adapter 的构造函数，客户端在进程启动时创建一次。
func NewS3Adapter(ctx context.Context, cfg *config.Config) (*S3Adapter, error) {
	bucket := cfg.GetString(config.KeyS3Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("S3 配置缺少存储桶名称")
	}

	accessKey := cfg.GetString(config.KeyS3AccessKey)
	secretKey := cfg.GetString(config.KeyS3SecretKey)
	if accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("S3 配置缺少 AccessKey/SecretKey")
	}

	region := cfg.GetStringOrDefault(config.KeyS3Region, "us-east-1")
	endpoint := cfg.GetString(config.KeyS3Endpoint)

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKey, secretKey, "",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("创建 AWS S3 配置失败: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			// 自定义 endpoint（MinIO、Ceph RGW 等）通常需要 path-style
			o.UsePathStyle = true
		}
	})

	log.Printf("[S3] 客户端创建成功 - 区域: %s, 存储桶: %s", region, bucket)

	return &S3Adapter{
		client:    client,
		bucket:    bucket,
		region:    region,
		endpoint:  endpoint,
		cdnDomain: strings.TrimSuffix(cfg.GetString(config.KeyS3CDNDomain), "/"),
	}, nil
}

// Save 写入或覆盖一个对象。
func (a *S3Adapter) Save(ctx context.Context, key string, data []byte, contentType string) bool {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		log.Printf("[S3] 上传对象失败: key=%s, 错误: %v", key, err)
		return a.fail("上传对象 %s 失败: %v", key, err)
	}

	a.clear()
	return true
}

// Open 读取对象内容，对象缺失或读取失败返回 (nil, false)。
func (a *S3Adapter) Open(ctx context.Context, key string) ([]byte, bool) {
	output, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			a.fail("对象 %s 不存在", key)
		} else {
			log.Printf("[S3] 读取对象失败: key=%s, 错误: %v", key, err)
			a.fail("读取对象 %s 失败: %v", key, err)
		}
		return nil, false
	}
	defer output.Body.Close()

	data, err := io.ReadAll(output.Body)
	if err != nil {
		a.fail("读取对象 %s 内容失败: %v", key, err)
		return nil, false
	}

	a.clear()
	return data, true
}

// Delete 删除对象。S3 对不存在的键同样返回成功，天然满足幂等要求。
func (a *S3Adapter) Delete(ctx context.Context, key string) bool {
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Printf("[S3] 删除对象失败: key=%s, 错误: %v", key, err)
		return a.fail("删除对象 %s 失败: %v", key, err)
	}

	a.clear()
	return true
}

// URL 返回对象的公开访问链接，优先使用 CDN 域名。
func (a *S3Adapter) URL(key string) string {
	if a.cdnDomain != "" {
		base := a.cdnDomain
		if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
			base = "https://" + base
		}
		return fmt.Sprintf("%s/%s", base, key)
	}

	if a.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(a.endpoint, "/"), a.bucket, key)
	}

	return fmt.Sprintf("https://s3.%s.amazonaws.com/%s/%s", a.region, a.bucket, key)
}

// ListKeys 按前缀列举全部对象键（分页聚合），供清扫任务使用。
func (a *S3Adapter) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string

	paginator := s3.NewListObjectsV2Paginator(a.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(a.bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("列举 S3 对象失败: %w", err)
		}
		for _, obj := range page.Contents {
			if obj.Key != nil {
				keys = append(keys, *obj.Key)
			}
		}
	}

	return keys, nil
}
