/*
 * @Description: 媒体资产的核心领域模型与存储键推导规则
 * @Author: 蓝屿
 * @Date: 2026-03-04 10:18:02
 * @LastEditTime: 2026-06-10 15:44:21
 * @LastEditors: 蓝屿
 */
package model

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/lanyu-o/lanyu-blog/pkg/apperr"
)

// MediaSourceVariant 是原始文件在存储键推导中使用的哨兵变体名。
const MediaSourceVariant = "source"

// MediaResolution 记录图片的像素分辨率。
type MediaResolution struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// MediaImage 仅当媒体是可识别的图片类型时存在。
// Thumbnails 中的每个变体串都必须对应存储后端中实际存在的对象；
// create/thumbnail 操作的步骤顺序就是为了尽量维持这一对应关系。
type MediaImage struct {
	Resolution MediaResolution `json:"resolution"`
	Thumbnails []string        `json:"thumbnails"`
}

// HasThumbnail 检查某个变体串是否已经登记。
func (i *MediaImage) HasThumbnail(spec string) bool {
	for _, s := range i.Thumbnails {
		if s == spec {
			return true
		}
	}
	return false
}

// Media 是媒体资产的核心领域模型。ID 是对外暴露的公共 ID。
type Media struct {
	ID         string
	CreatedAt  time.Time
	Filename   string
	Mime       string
	Length     int64
	UploaderID string
	Image      *MediaImage
}

// StorageKey 根据变体名推导存储对象键。
// 规则: "{公共ID}/{文件名主体}{变体后缀}{扩展名}"，原始文件无后缀，
// 其余变体的后缀为 "_{变体串}"。该函数是纯函数，仅凭记录即可复现所有键，
// 因此不需要单独持久化对象键。
func (m *Media) StorageKey(size string) string {
	return MediaStorageKey(m.ID, m.Filename, size)
}

// StorageKeys 返回该媒体在存储后端应当存在的全部对象键（原始文件 + 每个缩略图）。
func (m *Media) StorageKeys() []string {
	keys := []string{m.StorageKey(MediaSourceVariant)}
	if m.Image != nil {
		for _, spec := range m.Image.Thumbnails {
			keys = append(keys, m.StorageKey(spec))
		}
	}
	return keys
}

// MediaStorageKey 是 StorageKey 的静态版本，供尚未构造领域对象的调用方使用。
func MediaStorageKey(publicID, filename, size string) string {
	name := path.Base(filename)
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)

	suffix := ""
	if size != MediaSourceVariant {
		suffix = "_" + size
	}

	return fmt.Sprintf("%s/%s%s%s", publicID, base, suffix, ext)
}

// Validate 对记录做模式校验，返回逐字段的失败列表；通过时返回 nil。
func (m *Media) Validate() *apperr.ValidationError {
	var v *apperr.ValidationError
	add := func(field, reason string) {
		if v == nil {
			v = &apperr.ValidationError{}
		}
		v.Append(field, reason)
	}

	if strings.TrimSpace(m.Filename) == "" {
		add("filename", "missing")
	}
	if m.Length <= 0 {
		add("length", "invalid")
	}
	if strings.TrimSpace(m.UploaderID) == "" {
		add("uploader", "missing")
	}
	if m.Image != nil {
		if m.Image.Resolution.Width <= 0 || m.Image.Resolution.Height <= 0 {
			add("image.resolution", "invalid")
		}
	}
	return v
}

// --- API 数据传输对象 (Data Transfer Objects) ---

// CreateMediaRequest 定义了上传媒体的请求体
type CreateMediaRequest struct {
	Base64     string   `json:"base64" binding:"required"`
	Filename   string   `json:"filename" binding:"required"`
	Thumbnails []string `json:"thumbnails"`
}

// MediaResponse 定义了媒体的标准 API 响应结构，URLs 按变体名索引。
type MediaResponse struct {
	ID         string            `json:"id"`
	CreatedAt  time.Time         `json:"created_at"`
	Filename   string            `json:"filename"`
	Mime       string            `json:"mime"`
	Length     int64             `json:"length"`
	UploaderID string            `json:"uploader_id"`
	Image      *MediaImage       `json:"image,omitempty"`
	URLs       map[string]string `json:"urls"`
}

// MediaContentResponse 在 MediaResponse 基础上附带 base64 编码的原始内容。
type MediaContentResponse struct {
	MediaResponse
	Base64 string `json:"base64"`
}

// MediaFilterRequest 定义了媒体检索条件，至少需要一个条件。
type MediaFilterRequest struct {
	CreatedFrom      *int64 `json:"created_from"`
	CreatedTo        *int64 `json:"created_to"`
	FilenameContains string `json:"filename"`
	Mine             bool   `json:"mine"`
}

// IsEmpty 检查是否一个条件都没有给。
func (r *MediaFilterRequest) IsEmpty() bool {
	return r.CreatedFrom == nil && r.CreatedTo == nil &&
		r.FilenameContains == "" && !r.Mine
}

// MediaFilter 是仓库层使用的检索条件，UploaderID 非空时表示只查调用者自己的上传。
type MediaFilter struct {
	CreatedFrom      *time.Time
	CreatedTo        *time.Time
	FilenameContains string
	UploaderID       string
}
