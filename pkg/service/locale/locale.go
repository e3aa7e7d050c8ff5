/*
 * @Description: 语言区域存在性校验客户端
 * @Author: 蓝屿
 * @Date: 2026-03-09 11:30:02
 * @LastEditTime: 2026-05-30 09:17:44
 * @LastEditors: 蓝屿
 */
package locale

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/lanyu-o/lanyu-blog/pkg/config"
)

// Checker 校验语言区域代码是否是系统已知的合法区域。
type Checker interface {
	// Exists 返回区域是否存在；上游不可达时返回错误而不是 false。
	Exists(ctx context.Context, locale string) (bool, error)
}

// 形如 en、zh-CN、pt-BR 的区域代码
var localePattern = regexp.MustCompile(`^[a-z]{2}(-[A-Z]{2})?$`)

// NewChecker 根据配置构造 Checker。未配置上游地址时退化为
// 仅做格式校验的本地实现。
func NewChecker(cfg *config.Config) Checker {
	endpoint := cfg.GetString(config.KeyLocaleEndpoint)
	if endpoint == "" {
		log.Println("⚠️  未配置 Locale.Endpoint，语言区域仅做格式校验")
		return &patternChecker{}
	}
	return &httpChecker{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

type patternChecker struct{}

func (c *patternChecker) Exists(_ context.Context, locale string) (bool, error) {
	return localePattern.MatchString(locale), nil
}

// httpChecker 向上游区域服务查询，404 表示区域不存在。
type httpChecker struct {
	endpoint string
	client   *http.Client
}

func (c *httpChecker) Exists(ctx context.Context, locale string) (bool, error) {
	if !localePattern.MatchString(locale) {
		return false, nil
	}

	reqURL := fmt.Sprintf("%s/%s", c.endpoint, url.PathEscape(locale))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return false, fmt.Errorf("构造区域查询请求失败: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("调用区域服务失败: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("区域服务返回异常状态码 %d", resp.StatusCode)
	}
}
