/*
 * @Description: 评论服务：发表、列举、删除，内容经过 XSS 清理
 * @Author: 蓝屿
 * @Date: 2026-03-12 09:08:37
 * @LastEditTime: 2026-06-24 15:33:19
 * @LastEditors: 蓝屿
 */
package comment

import (
	"context"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/lanyu-o/lanyu-blog/pkg/apperr"
	"github.com/lanyu-o/lanyu-blog/pkg/constant"
	"github.com/lanyu-o/lanyu-blog/pkg/domain/model"
	"github.com/lanyu-o/lanyu-blog/pkg/domain/repository"
	"github.com/lanyu-o/lanyu-blog/pkg/service/access"
)

// Service 封装评论的业务操作。
type Service struct {
	repo      repository.CommentRepository
	sanitizer *bluemonday.Policy
	access    access.Verifier
}

// NewService 是 Service 的构造函数。
func NewService(repo repository.CommentRepository, verifier access.Verifier) *Service {
	return &Service{
		repo:      repo,
		sanitizer: bluemonday.UGCPolicy(),
		access:    verifier,
	}
}

func toResponse(c *model.Comment) *model.CommentResponse {
	return &model.CommentResponse{
		ID:        c.ID,
		CreatedAt: c.CreatedAt,
		PostID:    c.PostID,
		AuthorID:  c.AuthorID,
		Content:   c.Content,
	}
}

// Create 在文章下发表评论，内容先做 XSS 清理再落库。
func (s *Service) Create(ctx context.Context, callerID, postPublicID string, req *model.CreateCommentRequest) (*model.CommentResponse, error) {
	if err := s.access.Verify(ctx, callerID, constant.ResourceComment, constant.AccessCreate); err != nil {
		return nil, err
	}

	content := strings.TrimSpace(s.sanitizer.Sanitize(req.Content))
	if content == "" {
		return nil, apperr.NewValidation("content", "清理后内容为空")
	}

	c, err := s.repo.Create(ctx, postPublicID, callerID, content)
	if err != nil {
		return nil, err
	}
	return toResponse(c), nil
}

// ListByPost 按时间顺序返回文章下的全部评论。
func (s *Service) ListByPost(ctx context.Context, callerID, postPublicID string) ([]*model.CommentResponse, error) {
	if err := s.access.Verify(ctx, callerID, constant.ResourceComment, constant.AccessRead); err != nil {
		return nil, err
	}

	items, err := s.repo.ListByPost(ctx, postPublicID)
	if err != nil {
		return nil, err
	}
	result := make([]*model.CommentResponse, 0, len(items))
	for _, c := range items {
		result = append(result, toResponse(c))
	}
	return result, nil
}

// Delete 删除一条评论。
func (s *Service) Delete(ctx context.Context, callerID, publicID string) error {
	if err := s.access.Verify(ctx, callerID, constant.ResourceComment, constant.AccessDelete); err != nil {
		return err
	}
	return s.repo.Delete(ctx, publicID)
}
