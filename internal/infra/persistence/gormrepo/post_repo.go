/*
 * @Description: 文章、翻译、标签与分类关联仓储实现
 * @Author: 蓝屿
 * @Date: 2026-03-06 15:48:22
 * @LastEditTime: 2026-06-18 11:26:54
 * @LastEditors: 蓝屿
 */
package gormrepo

import (
	"context"
	"fmt"

	"github.com/lanyu-o/lanyu-blog/pkg/apperr"
	"github.com/lanyu-o/lanyu-blog/pkg/domain/model"
	"github.com/lanyu-o/lanyu-blog/pkg/domain/repository"
	"github.com/lanyu-o/lanyu-blog/pkg/idgen"

	"gorm.io/gorm"
)

type postRepo struct {
	db *gorm.DB
}

// NewPostRepo 是 postRepo 的构造函数。
func NewPostRepo(db *gorm.DB) repository.PostRepository {
	return &postRepo{db: db}
}

func (r *postRepo) toLocaleModel(e *PostLocaleEntity) (*model.PostLocale, error) {
	publicID, err := idgen.GeneratePublicID(e.ID, idgen.EntityTypePostLocale)
	if err != nil {
		return nil, fmt.Errorf("生成文章翻译公共ID失败: dbID=%d: %w", e.ID, err)
	}

	tags := make([]string, 0, len(e.Tags))
	for _, t := range e.Tags {
		tags = append(tags, t.Name)
	}

	return &model.PostLocale{
		ID:        publicID,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
		Locale:    e.Locale,
		Slug:      e.Slug,
		Title:     e.Title,
		Content:   e.Content,
		Tags:      tags,
	}, nil
}

// toModel 组装完整的领域对象，categoryIDs 是已解码的分类数据库 ID。
func (r *postRepo) toModel(e *PostEntity, categoryIDs []uint) (*model.Post, error) {
	publicID, err := idgen.GeneratePublicID(e.ID, idgen.EntityTypePost)
	if err != nil {
		return nil, fmt.Errorf("生成文章公共ID失败: dbID=%d: %w", e.ID, err)
	}

	categories := make([]string, 0, len(categoryIDs))
	for _, cid := range categoryIDs {
		cpub, err := idgen.GeneratePublicID(cid, idgen.EntityTypeCategory)
		if err != nil {
			return nil, fmt.Errorf("生成分类公共ID失败: dbID=%d: %w", cid, err)
		}
		categories = append(categories, cpub)
	}

	locales := make([]*model.PostLocale, 0, len(e.Locales))
	for i := range e.Locales {
		l, err := r.toLocaleModel(&e.Locales[i])
		if err != nil {
			return nil, err
		}
		locales = append(locales, l)
	}

	return &model.Post{
		ID:         publicID,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
		CreatorID:  e.CreatorID,
		Categories: categories,
		Locales:    locales,
	}, nil
}

func (r *postRepo) decodeID(publicID string) (uint, error) {
	dbID, err := idgen.DecodeTyped(publicID, idgen.EntityTypePost)
	if err != nil {
		return 0, fmt.Errorf("无效的文章ID '%s': %w", publicID, apperr.ErrNotFound)
	}
	return dbID, nil
}

func (r *postRepo) categoryIDs(tx *gorm.DB, postID uint) ([]uint, error) {
	var links []PostCategoryEntity
	if err := tx.Where("post_id = ?", postID).Find(&links).Error; err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.CategoryID)
	}
	return ids, nil
}

func (r *postRepo) Create(ctx context.Context, creatorID string, req *model.CreatePostRequest) (*model.Post, error) {
	e := &PostEntity{CreatorID: creatorID}
	var categoryIDs []uint

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(e).Error; err != nil {
			return err
		}

		locale := PostLocaleEntity{
			PostID:  e.ID,
			Locale:  req.Locale,
			Slug:    req.Slug,
			Title:   req.Title,
			Content: req.Content,
		}
		if err := tx.Create(&locale).Error; err != nil {
			return err
		}
		for _, name := range req.Tags {
			tag := PostTagEntity{PostLocaleID: locale.ID, Name: name}
			if err := tx.Create(&tag).Error; err != nil {
				return err
			}
			locale.Tags = append(locale.Tags, tag)
		}
		e.Locales = []PostLocaleEntity{locale}

		for _, catPublicID := range req.Categories {
			cid, err := idgen.DecodeTyped(catPublicID, idgen.EntityTypeCategory)
			if err != nil {
				return fmt.Errorf("无效的分类ID '%s': %w", catPublicID, apperr.ErrNotFound)
			}
			var count int64
			if err := tx.Model(&CategoryEntity{}).Where("id = ?", cid).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return fmt.Errorf("分类 '%s' 不存在: %w", catPublicID, apperr.ErrNotFound)
			}
			if err := tx.Create(&PostCategoryEntity{PostID: e.ID, CategoryID: cid}).Error; err != nil {
				return err
			}
			categoryIDs = append(categoryIDs, cid)
		}
		return nil
	})
	if err != nil {
		return nil, translate("post.create", err)
	}
	return r.toModel(e, categoryIDs)
}

func (r *postRepo) GetByID(ctx context.Context, publicID string) (*model.Post, error) {
	dbID, err := r.decodeID(publicID)
	if err != nil {
		return nil, err
	}

	var e PostEntity
	if err := r.db.WithContext(ctx).
		Preload("Locales").Preload("Locales.Tags").
		First(&e, dbID).Error; err != nil {
		return nil, translate("post.get", err)
	}

	categoryIDs, err := r.categoryIDs(r.db.WithContext(ctx), dbID)
	if err != nil {
		return nil, translate("post.get", err)
	}
	return r.toModel(&e, categoryIDs)
}

func (r *postRepo) List(ctx context.Context) ([]*model.Post, error) {
	var entities []PostEntity
	if err := r.db.WithContext(ctx).
		Preload("Locales").Preload("Locales.Tags").
		Order("created_at DESC").Find(&entities).Error; err != nil {
		return nil, translate("post.list", err)
	}

	result := make([]*model.Post, 0, len(entities))
	for i := range entities {
		categoryIDs, err := r.categoryIDs(r.db.WithContext(ctx), entities[i].ID)
		if err != nil {
			return nil, translate("post.list", err)
		}
		p, err := r.toModel(&entities[i], categoryIDs)
		if err != nil {
			return nil, &apperr.PersistenceError{Op: "post.list", Err: err}
		}
		result = append(result, p)
	}
	return result, nil
}

func (r *postRepo) Delete(ctx context.Context, publicID string) error {
	dbID, err := r.decodeID(publicID)
	if err != nil {
		return err
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var localeIDs []uint
		if err := tx.Model(&PostLocaleEntity{}).Where("post_id = ?", dbID).
			Pluck("id", &localeIDs).Error; err != nil {
			return err
		}
		if len(localeIDs) > 0 {
			if err := tx.Where("post_locale_id IN ?", localeIDs).
				Delete(&PostTagEntity{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("post_id = ?", dbID).Delete(&PostLocaleEntity{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", dbID).Delete(&PostCategoryEntity{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", dbID).Delete(&CommentEntity{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&PostEntity{}, dbID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate("post.delete", err)
}

func (r *postRepo) CountByCategory(ctx context.Context, categoryPublicID string) (int, error) {
	cid, err := idgen.DecodeTyped(categoryPublicID, idgen.EntityTypeCategory)
	if err != nil {
		return 0, fmt.Errorf("无效的分类ID '%s': %w", categoryPublicID, apperr.ErrNotFound)
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&PostCategoryEntity{}).
		Where("category_id = ?", cid).Count(&count).Error; err != nil {
		return 0, translate("post.count_by_category", err)
	}
	return int(count), nil
}

func (r *postRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&PostLocaleEntity{}).
		Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, translate("post.slug_exists", err)
	}
	return count > 0, nil
}

func (r *postRepo) AddLocale(ctx context.Context, publicID, locale string, in model.PostLocaleInput) (*model.PostLocale, error) {
	dbID, err := r.decodeID(publicID)
	if err != nil {
		return nil, err
	}

	row := &PostLocaleEntity{
		PostID:  dbID,
		Locale:  locale,
		Slug:    in.Slug,
		Title:   in.Title,
		Content: in.Content,
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&PostEntity{}).Where("id = ?", dbID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Create(row).Error; err != nil {
			return err
		}
		for _, name := range in.Tags {
			tag := PostTagEntity{PostLocaleID: row.ID, Name: name}
			if err := tx.Create(&tag).Error; err != nil {
				return err
			}
			row.Tags = append(row.Tags, tag)
		}
		return tx.Model(&PostEntity{}).Where("id = ?", dbID).
			Update("updated_at", tx.NowFunc()).Error
	})
	if err != nil {
		return nil, translate("post.add_locale", err)
	}
	return r.toLocaleModel(row)
}

func (r *postRepo) UpdateLocale(ctx context.Context, publicID, locale string, req *model.UpdatePostLocaleRequest) (*model.PostLocale, error) {
	dbID, err := r.decodeID(publicID)
	if err != nil {
		return nil, err
	}

	var row PostLocaleEntity
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ? AND locale = ?", dbID, locale).
			First(&row).Error; err != nil {
			return err
		}

		updates := make(map[string]any)
		if req.Slug != nil {
			updates["slug"] = *req.Slug
		}
		if req.Title != nil {
			updates["title"] = *req.Title
		}
		if req.Content != nil {
			updates["content"] = *req.Content
		}
		if len(updates) > 0 {
			if err := tx.Model(&row).Updates(updates).Error; err != nil {
				return err
			}
		}

		// Tags 为整体替换语义
		if req.Tags != nil {
			if err := tx.Where("post_locale_id = ?", row.ID).
				Delete(&PostTagEntity{}).Error; err != nil {
				return err
			}
			for _, name := range *req.Tags {
				if err := tx.Create(&PostTagEntity{PostLocaleID: row.ID, Name: name}).Error; err != nil {
					return err
				}
			}
		}

		if err := tx.Preload("Tags").First(&row, row.ID).Error; err != nil {
			return err
		}
		return tx.Model(&PostEntity{}).Where("id = ?", dbID).
			Update("updated_at", tx.NowFunc()).Error
	})
	if err != nil {
		return nil, translate("post.update_locale", err)
	}
	return r.toLocaleModel(&row)
}

func (r *postRepo) DeleteLocale(ctx context.Context, publicID, locale string) error {
	dbID, err := r.decodeID(publicID)
	if err != nil {
		return err
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row PostLocaleEntity
		if err := tx.Where("post_id = ? AND locale = ?", dbID, locale).
			First(&row).Error; err != nil {
			return err
		}
		if err := tx.Where("post_locale_id = ?", row.ID).
			Delete(&PostTagEntity{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&PostLocaleEntity{}, row.ID).Error; err != nil {
			return err
		}
		return tx.Model(&PostEntity{}).Where("id = ?", dbID).
			Update("updated_at", tx.NowFunc()).Error
	})
	return translate("post.delete_locale", err)
}

func (r *postRepo) CountLocales(ctx context.Context, publicID string) (int, error) {
	dbID, err := r.decodeID(publicID)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&PostLocaleEntity{}).
		Where("post_id = ?", dbID).Count(&count).Error; err != nil {
		return 0, translate("post.count_locales", err)
	}
	return int(count), nil
}
