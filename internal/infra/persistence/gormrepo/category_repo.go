/*
 * @Description: 分类与翻译行仓储实现
 * @Author: 蓝屿
 * @Date: 2026-03-06 14:25:09
 * @LastEditTime: 2026-06-16 17:03:26
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

type categoryRepo struct {
	db *gorm.DB
}

// NewCategoryRepo 是 categoryRepo 的构造函数。
func NewCategoryRepo(db *gorm.DB) repository.CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) toLocaleModel(e *CategoryLocaleEntity) (*model.CategoryLocale, error) {
	publicID, err := idgen.GeneratePublicID(e.ID, idgen.EntityTypeCategoryLocale)
	if err != nil {
		return nil, fmt.Errorf("生成分类翻译公共ID失败: dbID=%d: %w", e.ID, err)
	}
	return &model.CategoryLocale{
		ID:          publicID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
		Locale:      e.Locale,
		Slug:        e.Slug,
		Title:       e.Title,
		Description: e.Description,
	}, nil
}

func (r *categoryRepo) toModel(e *CategoryEntity) (*model.Category, error) {
	publicID, err := idgen.GeneratePublicID(e.ID, idgen.EntityTypeCategory)
	if err != nil {
		return nil, fmt.Errorf("生成分类公共ID失败: dbID=%d: %w", e.ID, err)
	}

	locales := make(map[string]*model.CategoryLocale, len(e.Locales))
	for i := range e.Locales {
		l, err := r.toLocaleModel(&e.Locales[i])
		if err != nil {
			return nil, err
		}
		locales[e.Locales[i].Locale] = l
	}

	return &model.Category{
		ID:        publicID,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
		Locales:   locales,
	}, nil
}

func (r *categoryRepo) decodeID(publicID string) (uint, error) {
	dbID, err := idgen.DecodeTyped(publicID, idgen.EntityTypeCategory)
	if err != nil {
		return 0, fmt.Errorf("无效的分类ID '%s': %w", publicID, apperr.ErrNotFound)
	}
	return dbID, nil
}

func (r *categoryRepo) Create(ctx context.Context, locales map[string]model.CategoryLocaleInput) (*model.Category, error) {
	e := &CategoryEntity{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(e).Error; err != nil {
			return err
		}
		for locale, in := range locales {
			row := &CategoryLocaleEntity{
				CategoryID:  e.ID,
				Locale:      locale,
				Slug:        in.Slug,
				Title:       in.Title,
				Description: in.Description,
			}
			if err := tx.Create(row).Error; err != nil {
				return err
			}
			e.Locales = append(e.Locales, *row)
		}
		return nil
	})
	if err != nil {
		return nil, translate("category.create", err)
	}
	return r.toModel(e)
}

func (r *categoryRepo) GetByID(ctx context.Context, publicID string) (*model.Category, error) {
	dbID, err := r.decodeID(publicID)
	if err != nil {
		return nil, err
	}

	var e CategoryEntity
	if err := r.db.WithContext(ctx).Preload("Locales").First(&e, dbID).Error; err != nil {
		return nil, translate("category.get", err)
	}
	return r.toModel(&e)
}

func (r *categoryRepo) List(ctx context.Context) ([]*model.Category, error) {
	var entities []CategoryEntity
	if err := r.db.WithContext(ctx).Preload("Locales").
		Order("created_at ASC").Find(&entities).Error; err != nil {
		return nil, translate("category.list", err)
	}

	result := make([]*model.Category, 0, len(entities))
	for i := range entities {
		c, err := r.toModel(&entities[i])
		if err != nil {
			return nil, &apperr.PersistenceError{Op: "category.list", Err: err}
		}
		result = append(result, c)
	}
	return result, nil
}

func (r *categoryRepo) Delete(ctx context.Context, publicID string) error {
	dbID, err := r.decodeID(publicID)
	if err != nil {
		return err
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", dbID).Delete(&CategoryLocaleEntity{}).Error; err != nil {
			return err
		}
		if err := tx.Where("category_id = ?", dbID).Delete(&PostCategoryEntity{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&CategoryEntity{}, dbID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate("category.delete", err)
}

func (r *categoryRepo) Exists(ctx context.Context, publicID string) (bool, error) {
	dbID, err := idgen.DecodeTyped(publicID, idgen.EntityTypeCategory)
	if err != nil {
		return false, nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&CategoryEntity{}).
		Where("id = ?", dbID).Count(&count).Error; err != nil {
		return false, translate("category.exists", err)
	}
	return count > 0, nil
}

func (r *categoryRepo) CreateLocale(ctx context.Context, publicID, locale string, in model.CategoryLocaleInput) (*model.CategoryLocale, error) {
	dbID, err := r.decodeID(publicID)
	if err != nil {
		return nil, err
	}

	row := &CategoryLocaleEntity{
		CategoryID:  dbID,
		Locale:      locale,
		Slug:        in.Slug,
		Title:       in.Title,
		Description: in.Description,
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&CategoryEntity{}).Where("id = ?", dbID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Create(row).Error; err != nil {
			return err
		}
		// 翻译行变化也刷新分类本体的更新时间
		return tx.Model(&CategoryEntity{}).Where("id = ?", dbID).
			Update("updated_at", tx.NowFunc()).Error
	})
	if err != nil {
		return nil, translate("category.create_locale", err)
	}
	return r.toLocaleModel(row)
}

func (r *categoryRepo) UpdateLocale(ctx context.Context, publicID, locale string, req *model.UpdateCategoryLocaleRequest) (*model.CategoryLocale, error) {
	dbID, err := r.decodeID(publicID)
	if err != nil {
		return nil, err
	}

	var row CategoryLocaleEntity
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ? AND locale = ?", dbID, locale).
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
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&row).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.First(&row, row.ID).Error; err != nil {
			return err
		}
		return tx.Model(&CategoryEntity{}).Where("id = ?", dbID).
			Update("updated_at", tx.NowFunc()).Error
	})
	if err != nil {
		return nil, translate("category.update_locale", err)
	}
	return r.toLocaleModel(&row)
}

func (r *categoryRepo) DeleteLocale(ctx context.Context, publicID, locale string) error {
	dbID, err := r.decodeID(publicID)
	if err != nil {
		return err
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("category_id = ? AND locale = ?", dbID, locale).
			Delete(&CategoryLocaleEntity{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&CategoryEntity{}).Where("id = ?", dbID).
			Update("updated_at", tx.NowFunc()).Error
	})
	return translate("category.delete_locale", err)
}

func (r *categoryRepo) CountLocales(ctx context.Context, publicID string) (int, error) {
	dbID, err := r.decodeID(publicID)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&CategoryLocaleEntity{}).
		Where("category_id = ?", dbID).Count(&count).Error; err != nil {
		return 0, translate("category.count_locales", err)
	}
	return int(count), nil
}

func (r *categoryRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&CategoryLocaleEntity{}).
		Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, translate("category.slug_exists", err)
	}
	return count > 0, nil
}
