/*
 * @Description:
 * @Author: 蓝屿
 * @Date: 2026-03-04 11:31:40
 * @LastEditTime: 2026-04-22 19:05:33
 * @LastEditors: 蓝屿
 */
package model

import "time"

// --- 核心领域对象 (Domain Object) ---

// Post 是博客文章的核心领域模型。
type Post struct {
	ID         string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	CreatorID  string
	Categories []string
	Locales    []*PostLocale
}

// PostLocale 是文章在单个语言区域下的翻译行，标签挂在翻译上。
type PostLocale struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
	Locale    string
	Slug      string
	Title     string
	Content   string
	Tags      []string
}

// --- API 数据传输对象 (Data Transfer Objects) ---

// CreatePostRequest 定义了创建文章的请求体，首个翻译随文章一起创建。
type CreatePostRequest struct {
	Locale     string   `json:"locale" binding:"required"`
	Slug       string   `json:"slug" binding:"required"`
	Title      string   `json:"title" binding:"required"`
	Content    string   `json:"content" binding:"required"`
	Categories []string `json:"categories"`
	Tags       []string `json:"tags"`
}

// PostLocaleInput 是为已有文章追加翻译时的载荷。
type PostLocaleInput struct {
	Slug    string   `json:"slug" binding:"required"`
	Title   string   `json:"title" binding:"required"`
	Content string   `json:"content" binding:"required"`
	Tags    []string `json:"tags"`
}

// UpdatePostLocaleRequest 定义了更新文章翻译的请求体。
type UpdatePostLocaleRequest struct {
	Slug    *string   `json:"slug"`
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	Tags    *[]string `json:"tags"`
}

// PostLocaleResponse 定义了文章翻译的响应结构。
// ContentHTML 是服务端渲染出的 HTML，Content 保留原始 Markdown。
type PostLocaleResponse struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Locale      string    `json:"locale"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"content_html"`
	Tags        []string  `json:"tags"`
}

// PostResponse 定义了文章的标准 API 响应结构。
type PostResponse struct {
	ID         string                `json:"id"`
	CreatedAt  time.Time             `json:"created_at"`
	UpdatedAt  time.Time             `json:"updated_at"`
	CreatorID  string                `json:"creator_id"`
	Categories []string              `json:"categories"`
	Locales    []*PostLocaleResponse `json:"locales"`
}
