/*
 * @Description: GORM 表结构定义
 * @Author: 蓝屿
 * @Date: 2026-03-06 10:12:44
 * @LastEditTime: 2026-06-15 09:28:31
 * @LastEditors: 蓝屿
 */
package gormrepo

import (
	"time"

	"gorm.io/datatypes"
)

// MediaEntity 对应 media 表。(uploader_id, filename) 上的唯一索引
// 保证同一上传者不会出现同名文件，重复上传在数据库层面被拒绝。
type MediaEntity struct {
	ID         uint      `gorm:"primaryKey"`
	CreatedAt  time.Time `gorm:"index"`
	Filename   string    `gorm:"size:255;not null;uniqueIndex:idx_media_uploader_filename"`
	Mime       string    `gorm:"size:127;not null"`
	Length     int64     `gorm:"not null"`
	UploaderID string    `gorm:"size:64;not null;uniqueIndex:idx_media_uploader_filename"`
	// Image 仅在媒体是图片时非空，内容为分辨率和缩略图变体列表的 JSON。
	Image datatypes.JSON
}

func (MediaEntity) TableName() string { return "media" }

// CategoryEntity 对应 categories 表，本体只有时间戳，内容都在翻译行上。
type CategoryEntity struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Locales []CategoryLocaleEntity `gorm:"foreignKey:CategoryID"`
}

func (CategoryEntity) TableName() string { return "categories" }

// CategoryLocaleEntity 对应 category_locales 表。
// slug 全局唯一；同一分类下每个语言区域至多一行。
type CategoryLocaleEntity struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CategoryID  uint   `gorm:"not null;uniqueIndex:idx_category_locale"`
	Locale      string `gorm:"size:16;not null;uniqueIndex:idx_category_locale"`
	Slug        string `gorm:"size:255;not null;uniqueIndex"`
	Title       string `gorm:"size:255;not null"`
	Description string `gorm:"type:text"`
}

func (CategoryLocaleEntity) TableName() string { return "category_locales" }

// PostEntity 对应 posts 表。
type PostEntity struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	CreatorID string `gorm:"size:64;not null;index"`

	Locales []PostLocaleEntity `gorm:"foreignKey:PostID"`
}

func (PostEntity) TableName() string { return "posts" }

// PostLocaleEntity 对应 post_locales 表，结构与分类翻译对称。
type PostLocaleEntity struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	PostID    uint   `gorm:"not null;uniqueIndex:idx_post_locale"`
	Locale    string `gorm:"size:16;not null;uniqueIndex:idx_post_locale"`
	Slug      string `gorm:"size:255;not null;uniqueIndex"`
	Title     string `gorm:"size:255;not null"`
	Content   string `gorm:"type:text;not null"`

	Tags []PostTagEntity `gorm:"foreignKey:PostLocaleID"`
}

func (PostLocaleEntity) TableName() string { return "post_locales" }

// PostTagEntity 对应 post_tags 表，标签挂在翻译行上。
type PostTagEntity struct {
	ID           uint   `gorm:"primaryKey"`
	PostLocaleID uint   `gorm:"not null;uniqueIndex:idx_post_locale_tag"`
	Name         string `gorm:"size:64;not null;uniqueIndex:idx_post_locale_tag"`
}

func (PostTagEntity) TableName() string { return "post_tags" }

// PostCategoryEntity 对应 post_categories 关联表。
type PostCategoryEntity struct {
	ID         uint `gorm:"primaryKey"`
	PostID     uint `gorm:"not null;uniqueIndex:idx_post_category"`
	CategoryID uint `gorm:"not null;uniqueIndex:idx_post_category;index"`
}

func (PostCategoryEntity) TableName() string { return "post_categories" }

// CommentEntity 对应 comments 表。
type CommentEntity struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	PostID    uint   `gorm:"not null;index"`
	AuthorID  string `gorm:"size:64;not null"`
	Content   string `gorm:"type:text;not null"`
}

func (CommentEntity) TableName() string { return "comments" }

// AllEntities 返回全部表结构，供启动时迁移使用。
func AllEntities() []any {
	return []any{
		&MediaEntity{},
		&CategoryEntity{},
		&CategoryLocaleEntity{},
		&PostEntity{},
		&PostLocaleEntity{},
		&PostTagEntity{},
		&PostCategoryEntity{},
		&CommentEntity{},
	}
}
