/*
 * @Description: 评论仓储实现
 * @Author: 蓝屿
 * @Date: 2026-03-06 16:55:41
 * @LastEditTime: 2026-05-28 14:12:09
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

type commentRepo struct {
	db *gorm.DB
}

// NewCommentRepo 是 commentRepo 的构造函数。
func NewCommentRepo(db *gorm.DB) repository.CommentRepository {
	return &commentRepo{db: db}
}

func (r *commentRepo) toModel(e *CommentEntity) (*model.Comment, error) {
	publicID, err := idgen.GeneratePublicID(e.ID, idgen.EntityTypeComment)
	if err != nil {
		return nil, fmt.Errorf("生成评论公共ID失败: dbID=%d: %w", e.ID, err)
	}
	postPublicID, err := idgen.GeneratePublicID(e.PostID, idgen.EntityTypePost)
	if err != nil {
		return nil, fmt.Errorf("生成文章公共ID失败: dbID=%d: %w", e.PostID, err)
	}
	return &model.Comment{
		ID:        publicID,
		CreatedAt: e.CreatedAt,
		PostID:    postPublicID,
		AuthorID:  e.AuthorID,
		Content:   e.Content,
	}, nil
}

func (r *commentRepo) Create(ctx context.Context, postPublicID, authorID, content string) (*model.Comment, error) {
	postID, err := idgen.DecodeTyped(postPublicID, idgen.EntityTypePost)
	if err != nil {
		return nil, fmt.Errorf("无效的文章ID '%s': %w", postPublicID, apperr.ErrNotFound)
	}

	e := &CommentEntity{PostID: postID, AuthorID: authorID, Content: content}
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&PostEntity{}).Where("id = ?", postID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(e).Error
	})
	if err != nil {
		return nil, translate("comment.create", err)
	}
	return r.toModel(e)
}

func (r *commentRepo) ListByPost(ctx context.Context, postPublicID string) ([]*model.Comment, error) {
	postID, err := idgen.DecodeTyped(postPublicID, idgen.EntityTypePost)
	if err != nil {
		return nil, fmt.Errorf("无效的文章ID '%s': %w", postPublicID, apperr.ErrNotFound)
	}

	var entities []CommentEntity
	if err := r.db.WithContext(ctx).Where("post_id = ?", postID).
		Order("created_at ASC").Find(&entities).Error; err != nil {
		return nil, translate("comment.list", err)
	}

	result := make([]*model.Comment, 0, len(entities))
	for i := range entities {
		c, err := r.toModel(&entities[i])
		if err != nil {
			return nil, &apperr.PersistenceError{Op: "comment.list", Err: err}
		}
		result = append(result, c)
	}
	return result, nil
}

func (r *commentRepo) Delete(ctx context.Context, publicID string) error {
	dbID, err := idgen.DecodeTyped(publicID, idgen.EntityTypeComment)
	if err != nil {
		return fmt.Errorf("无效的评论ID '%s': %w", publicID, apperr.ErrNotFound)
	}

	res := r.db.WithContext(ctx).Delete(&CommentEntity{}, dbID)
	if res.Error != nil {
		return translate("comment.delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("评论不存在: %w", apperr.ErrNotFound)
	}
	return nil
}
