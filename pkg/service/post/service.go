/*
 * @Description: 文章服务：多语言文章的增删改查、标签与分类关联
 * @Author: 蓝屿
 * @Date: 2026-03-11 15:20:44
 * @LastEditTime: 2026-07-05 10:55:12
 * @LastEditors: 蓝屿
 */
package post

import (
	"context"
	"fmt"
	"log"

	"github.com/lanyu-o/lanyu-blog/internal/pkg/markdown"
	"github.com/lanyu-o/lanyu-blog/pkg/apperr"
	"github.com/lanyu-o/lanyu-blog/pkg/constant"
	"github.com/lanyu-o/lanyu-blog/pkg/domain/model"
	"github.com/lanyu-o/lanyu-blog/pkg/domain/repository"
	"github.com/lanyu-o/lanyu-blog/pkg/service/access"
	"github.com/lanyu-o/lanyu-blog/pkg/service/locale"
)

// Service 封装文章的业务操作。
type Service struct {
	repo    repository.PostRepository
	catRepo repository.CategoryRepository
	locales locale.Checker
	access  access.Verifier
}

// NewService 是 Service 的构造函数。
func NewService(repo repository.PostRepository, catRepo repository.CategoryRepository, checker locale.Checker, verifier access.Verifier) *Service {
	return &Service{repo: repo, catRepo: catRepo, locales: checker, access: verifier}
}

func toLocaleResponse(l *model.PostLocale) *model.PostLocaleResponse {
	contentHTML, err := markdown.ToHTML(l.Content)
	if err != nil {
		// 渲染失败不阻塞响应，原始 Markdown 仍然可用
		log.Printf("[PostService] 渲染翻译 %s 的 Markdown 失败: %v", l.ID, err)
		contentHTML = ""
	}
	return &model.PostLocaleResponse{
		ID:          l.ID,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
		Locale:      l.Locale,
		Slug:        l.Slug,
		Title:       l.Title,
		Content:     l.Content,
		ContentHTML: contentHTML,
		Tags:        l.Tags,
	}
}

func toResponse(p *model.Post) *model.PostResponse {
	locales := make([]*model.PostLocaleResponse, 0, len(p.Locales))
	for _, l := range p.Locales {
		locales = append(locales, toLocaleResponse(l))
	}
	return &model.PostResponse{
		ID:         p.ID,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
		CreatorID:  p.CreatorID,
		Categories: p.Categories,
		Locales:    locales,
	}
}

func (s *Service) checkLocale(ctx context.Context, code string) error {
	ok, err := s.locales.Exists(ctx, code)
	if err != nil {
		return fmt.Errorf("校验语言区域 '%s' 失败: %w", code, err)
	}
	if !ok {
		return apperr.NewValidation("locale", fmt.Sprintf("未知的语言区域 '%s'", code))
	}
	return nil
}

// Create 创建文章，首个翻译随文章一起落库。引用的分类必须已存在。
func (s *Service) Create(ctx context.Context, callerID string, req *model.CreatePostRequest) (*model.PostResponse, error) {
	if err := s.access.Verify(ctx, callerID, constant.ResourcePost, constant.AccessCreate); err != nil {
		return nil, err
	}

	if err := s.checkLocale(ctx, req.Locale); err != nil {
		return nil, err
	}
	for _, catID := range req.Categories {
		exists, err := s.catRepo.Exists(ctx, catID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("分类 '%s' 不存在: %w", catID, apperr.ErrNotFound)
		}
	}

	p, err := s.repo.Create(ctx, callerID, req)
	if err != nil {
		return nil, err
	}
	return toResponse(p), nil
}

// Get 按公共 ID 读取文章。
func (s *Service) Get(ctx context.Context, callerID, publicID string) (*model.PostResponse, error) {
	if err := s.access.Verify(ctx, callerID, constant.ResourcePost, constant.AccessRead); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	return toResponse(p), nil
}

// List 返回全部文章。
func (s *Service) List(ctx context.Context, callerID string) ([]*model.PostResponse, error) {
	if err := s.access.Verify(ctx, callerID, constant.ResourcePost, constant.AccessRead); err != nil {
		return nil, err
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*model.PostResponse, 0, len(items))
	for _, p := range items {
		result = append(result, toResponse(p))
	}
	return result, nil
}

// Delete 级联删除文章及其翻译、标签、分类关联和评论。
func (s *Service) Delete(ctx context.Context, callerID, publicID string) error {
	if err := s.access.Verify(ctx, callerID, constant.ResourcePost, constant.AccessDelete); err != nil {
		return err
	}
	return s.repo.Delete(ctx, publicID)
}

// AddLocale 为已有文章追加一个翻译。
func (s *Service) AddLocale(ctx context.Context, callerID, publicID, code string, in model.PostLocaleInput) (*model.PostLocaleResponse, error) {
	if err := s.access.Verify(ctx, callerID, constant.ResourcePost, constant.AccessUpdate); err != nil {
		return nil, err
	}
	if err := s.checkLocale(ctx, code); err != nil {
		return nil, err
	}

	l, err := s.repo.AddLocale(ctx, publicID, code, in)
	if err != nil {
		return nil, err
	}
	return toLocaleResponse(l), nil
}

// UpdateLocale 更新翻译的部分字段，Tags 为整体替换。
func (s *Service) UpdateLocale(ctx context.Context, callerID, publicID, code string, req *model.UpdatePostLocaleRequest) (*model.PostLocaleResponse, error) {
	if err := s.access.Verify(ctx, callerID, constant.ResourcePost, constant.AccessUpdate); err != nil {
		return nil, err
	}

	l, err := s.repo.UpdateLocale(ctx, publicID, code, req)
	if err != nil {
		return nil, err
	}
	return toLocaleResponse(l), nil
}

// DeleteLocale 删除一个翻译。文章必须始终保留至少一个翻译。
func (s *Service) DeleteLocale(ctx context.Context, callerID, publicID, code string) error {
	if err := s.access.Verify(ctx, callerID, constant.ResourcePost, constant.AccessUpdate); err != nil {
		return err
	}

	n, err := s.repo.CountLocales(ctx, publicID)
	if err != nil {
		return err
	}
	if n < 2 {
		return fmt.Errorf("文章 '%s' 只剩最后一个翻译，不能删除: %w", publicID, apperr.ErrConflict)
	}

	return s.repo.DeleteLocale(ctx, publicID, code)
}
