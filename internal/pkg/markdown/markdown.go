/*
 * @Description: Markdown 渲染与 HTML 清理
 * @Author: 蓝屿
 * @Date: 2026-03-11 14:02:50
 * @LastEditTime: 2026-05-14 10:31:27
 * @LastEditors: 蓝屿
 */
package markdown

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var md goldmark.Markdown
var policy *bluemonday.Policy

func init() {
	md = goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			extension.Linkify,
			extension.Strikethrough,
			extension.Table,
			extension.TaskList,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(), // 标题锚点
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
			html.WithUnsafe(), // 原始 HTML 交给 bluemonday 清理
		),
	)

	policy = bluemonday.UGCPolicy()
	// 代码高亮需要的 class 属性
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "span")
	policy.AllowElements("table", "thead", "tbody", "tr", "th", "td")
	// 标题的 id 属性，用于锚点链接
	policy.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
}

// ToHTML 把 Markdown 渲染为经过 XSS 清理的 HTML。
func ToHTML(content string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	return policy.Sanitize(buf.String()), nil
}
