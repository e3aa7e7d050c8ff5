package repository

import (
	"context"

	"github.com/lanyu-o/lanyu-blog/pkg/domain/model"
)

// CommentRepository 定义了评论的数据仓库接口。
type CommentRepository interface {
	Create(ctx context.Context, postPublicID, authorID, content string) (*model.Comment, error)
	ListByPost(ctx context.Context, postPublicID string) ([]*model.Comment, error)
	Delete(ctx context.Context, publicID string) error
}
