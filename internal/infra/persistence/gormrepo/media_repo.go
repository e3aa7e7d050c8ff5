/*
 * @Description: 媒体记录仓储实现
 * @Author: 蓝屿
 * @Date: 2026-03-06 11:02:17
 * @LastEditTime: 2026-06-15 10:40:52
 * @LastEditors: 蓝屿
 */
package gormrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/lanyu-o/lanyu-blog/pkg/apperr"
	"github.com/lanyu-o/lanyu-blog/pkg/domain/model"
	"github.com/lanyu-o/lanyu-blog/pkg/domain/repository"
	"github.com/lanyu-o/lanyu-blog/pkg/idgen"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type mediaRepo struct {
	db *gorm.DB
}

// NewMediaRepo 是 mediaRepo 的构造函数。
func NewMediaRepo(db *gorm.DB) repository.MediaRepository {
	return &mediaRepo{db: db}
}

// toModel 负责将 MediaEntity 转换为 model.Media 领域模型。
func (r *mediaRepo) toModel(e *MediaEntity) (*model.Media, error) {
	publicID, err := idgen.GeneratePublicID(e.ID, idgen.EntityTypeMedia)
	if err != nil {
		return nil, fmt.Errorf("生成媒体公共ID失败: dbID=%d: %w", e.ID, err)
	}

	var image *model.MediaImage
	if len(e.Image) > 0 {
		image = &model.MediaImage{}
		if err := json.Unmarshal(e.Image, image); err != nil {
			return nil, fmt.Errorf("解析媒体 image 列失败: dbID=%d: %w", e.ID, err)
		}
	}

	return &model.Media{
		ID:         publicID,
		CreatedAt:  e.CreatedAt,
		Filename:   e.Filename,
		Mime:       e.Mime,
		Length:     e.Length,
		UploaderID: e.UploaderID,
		Image:      image,
	}, nil
}

func marshalImage(image *model.MediaImage) (datatypes.JSON, error) {
	if image == nil {
		return nil, nil
	}
	buf, err := json.Marshal(image)
	if err != nil {
		return nil, fmt.Errorf("序列化媒体 image 列失败: %w", err)
	}
	return datatypes.JSON(buf), nil
}

func (r *mediaRepo) Create(ctx context.Context, m *model.Media) (*model.Media, error) {
	imageJSON, err := marshalImage(m.Image)
	if err != nil {
		return nil, &apperr.PersistenceError{Op: "media.create", Err: err}
	}

	e := &MediaEntity{
		Filename:   m.Filename,
		Mime:       m.Mime,
		Length:     m.Length,
		UploaderID: m.UploaderID,
		Image:      imageJSON,
	}
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		return nil, translate("media.create", err)
	}
	return r.toModel(e)
}

func (r *mediaRepo) GetByID(ctx context.Context, publicID string) (*model.Media, error) {
	dbID, err := idgen.DecodeTyped(publicID, idgen.EntityTypeMedia)
	if err != nil {
		return nil, fmt.Errorf("无效的媒体ID '%s': %w", publicID, apperr.ErrNotFound)
	}

	var e MediaEntity
	if err := r.db.WithContext(ctx).First(&e, dbID).Error; err != nil {
		return nil, translate("media.get", err)
	}
	return r.toModel(&e)
}

func (r *mediaRepo) UpdateImage(ctx context.Context, publicID string, image *model.MediaImage) error {
	dbID, err := idgen.DecodeTyped(publicID, idgen.EntityTypeMedia)
	if err != nil {
		return fmt.Errorf("无效的媒体ID '%s': %w", publicID, apperr.ErrNotFound)
	}

	imageJSON, err := marshalImage(image)
	if err != nil {
		return &apperr.PersistenceError{Op: "media.update_image", Err: err}
	}

	res := r.db.WithContext(ctx).Model(&MediaEntity{}).
		Where("id = ?", dbID).
		Update("image", imageJSON)
	if res.Error != nil {
		return translate("media.update_image", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("媒体记录不存在: %w", apperr.ErrNotFound)
	}
	return nil
}

func (r *mediaRepo) Delete(ctx context.Context, publicID string, operatorID string) error {
	dbID, err := idgen.DecodeTyped(publicID, idgen.EntityTypeMedia)
	if err != nil {
		return fmt.Errorf("无效的媒体ID '%s': %w", publicID, apperr.ErrNotFound)
	}

	res := r.db.WithContext(ctx).Delete(&MediaEntity{}, dbID)
	if res.Error != nil {
		return translate("media.delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("媒体记录不存在: %w", apperr.ErrNotFound)
	}

	log.Printf("[MediaRepo] 媒体记录已删除: id=%s, operator=%s", publicID, operatorID)
	return nil
}

func (r *mediaRepo) Filter(ctx context.Context, f *model.MediaFilter) ([]*model.Media, error) {
	q := r.db.WithContext(ctx).Model(&MediaEntity{})

	if f.CreatedFrom != nil {
		q = q.Where("created_at >= ?", *f.CreatedFrom)
	}
	if f.CreatedTo != nil {
		q = q.Where("created_at <= ?", *f.CreatedTo)
	}
	if f.FilenameContains != "" {
		q = q.Where("filename LIKE ?", "%"+f.FilenameContains+"%")
	}
	if f.UploaderID != "" {
		q = q.Where("uploader_id = ?", f.UploaderID)
	}

	var entities []MediaEntity
	if err := q.Order("created_at DESC").Find(&entities).Error; err != nil {
		return nil, translate("media.filter", err)
	}

	result := make([]*model.Media, 0, len(entities))
	for i := range entities {
		m, err := r.toModel(&entities[i])
		if err != nil {
			return nil, &apperr.PersistenceError{Op: "media.filter", Err: err}
		}
		result = append(result, m)
	}
	return result, nil
}

func (r *mediaRepo) Exists(ctx context.Context, publicID string) (bool, error) {
	dbID, err := idgen.DecodeTyped(publicID, idgen.EntityTypeMedia)
	if err != nil {
		// 无法解码说明不可能对应任何记录
		return false, nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&MediaEntity{}).
		Where("id = ?", dbID).Count(&count).Error; err != nil {
		return false, translate("media.exists", err)
	}
	return count > 0, nil
}
