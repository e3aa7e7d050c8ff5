/*
 * @Description:
 * @Author: 蓝屿
 * @Date: 2026-03-04 11:02:55
 * @LastEditTime: 2026-04-09 17:21:18
 * @LastEditors: 蓝屿
 */
package model

import "time"

// --- 核心领域对象 (Domain Object) ---

// Category 是文章分类的核心领域模型，Locales 按语言区域代码索引。
type Category struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
	Locales   map[string]*CategoryLocale
}

// CategoryLocale 是分类在单个语言区域下的翻译行。
type CategoryLocale struct {
	ID          string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Locale      string
	Slug        string
	Title       string
	Description string
}

// --- API 数据传输对象 (Data Transfer Objects) ---

// CategoryLocaleInput 是创建/更新分类翻译时的载荷。
type CategoryLocaleInput struct {
	Slug        string `json:"slug" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// CreateCategoryRequest 定义了创建分类的请求体，键是语言区域代码。
type CreateCategoryRequest struct {
	Locales map[string]CategoryLocaleInput `json:"locales" binding:"required"`
}

// UpdateCategoryLocaleRequest 定义了更新分类翻译的请求体。
type UpdateCategoryLocaleRequest struct {
	Slug        *string `json:"slug"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// CategoryLocaleResponse 定义了分类翻译的响应结构。
type CategoryLocaleResponse struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
}

// CategoryResponse 定义了分类的标准 API 响应结构。
type CategoryResponse struct {
	ID        string                             `json:"id"`
	CreatedAt time.Time                          `json:"created_at"`
	UpdatedAt time.Time                          `json:"updated_at"`
	Locales   map[string]*CategoryLocaleResponse `json:"locales"`
}
