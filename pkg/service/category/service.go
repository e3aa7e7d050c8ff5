/*
 * @Description: 分类服务：多语言翻译行的增删改查与删除保护
 * @Author: 蓝屿
 * @Date: 2026-03-11 09:30:18
 * @LastEditTime: 2026-07-03 11:09:26
 * @LastEditors: 蓝屿
 */
package category

import (
	"context"
	"fmt"

	"github.com/lanyu-o/lanyu-blog/pkg/apperr"
	"github.com/lanyu-o/lanyu-blog/pkg/constant"
	"github.com/lanyu-o/lanyu-blog/pkg/domain/model"
	"github.com/lanyu-o/lanyu-blog/pkg/domain/repository"
	"github.com/lanyu-o/lanyu-blog/pkg/service/access"
	"github.com/lanyu-o/lanyu-blog/pkg/service/locale"
)

// Service 封装分类的业务操作。
type Service struct {
	repo     repository.CategoryRepository
	postRepo repository.PostRepository
	locales  locale.Checker
	access   access.Verifier
}

// NewService 是 Service 的构造函数。
func NewService(repo repository.CategoryRepository, postRepo repository.PostRepository, checker locale.Checker, verifier access.Verifier) *Service {
	return &Service{repo: repo, postRepo: postRepo, locales: checker, access: verifier}
}

func toLocaleResponse(l *model.CategoryLocale) *model.CategoryLocaleResponse {
	return &model.CategoryLocaleResponse{
		ID:          l.ID,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
		Slug:        l.Slug,
		Title:       l.Title,
		Description: l.Description,
	}
}

func toResponse(c *model.Category) *model.CategoryResponse {
	locales := make(map[string]*model.CategoryLocaleResponse, len(c.Locales))
	for code, l := range c.Locales {
		locales[code] = toLocaleResponse(l)
	}
	return &model.CategoryResponse{
		ID:        c.ID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Locales:   locales,
	}
}

// checkLocale 校验语言区域代码是否合法且存在。
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

// Create 创建分类，至少要携带一个翻译。slug 全局唯一，冲突时整体失败。
func (s *Service) Create(ctx context.Context, callerID string, req *model.CreateCategoryRequest) (*model.CategoryResponse, error) {
	if err := s.access.Verify(ctx, callerID, constant.ResourceCategory, constant.AccessCreate); err != nil {
		return nil, err
	}

	if len(req.Locales) == 0 {
		return nil, apperr.NewValidation("locales", "至少需要一个翻译")
	}
	for code := range req.Locales {
		if err := s.checkLocale(ctx, code); err != nil {
			return nil, err
		}
	}

	c, err := s.repo.Create(ctx, req.Locales)
	if err != nil {
		return nil, err
	}
	return toResponse(c), nil
}

// Get 按公共 ID 读取分类。
func (s *Service) Get(ctx context.Context, callerID, publicID string) (*model.CategoryResponse, error) {
	if err := s.access.Verify(ctx, callerID, constant.ResourceCategory, constant.AccessRead); err != nil {
		return nil, err
	}

	c, err := s.repo.GetByID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	return toResponse(c), nil
}

// List 返回全部分类。
func (s *Service) List(ctx context.Context, callerID string) ([]*model.CategoryResponse, error) {
	if err := s.access.Verify(ctx, callerID, constant.ResourceCategory, constant.AccessRead); err != nil {
		return nil, err
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*model.CategoryResponse, 0, len(items))
	for _, c := range items {
		result = append(result, toResponse(c))
	}
	return result, nil
}

// Delete 删除分类及其全部翻译。仍有文章引用该分类时拒绝删除。
func (s *Service) Delete(ctx context.Context, callerID, publicID string) error {
	if err := s.access.Verify(ctx, callerID, constant.ResourceCategory, constant.AccessDelete); err != nil {
		return err
	}

	exists, err := s.repo.Exists(ctx, publicID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("分类 '%s' 不存在: %w", publicID, apperr.ErrNotFound)
	}

	n, err := s.postRepo.CountByCategory(ctx, publicID)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("仍有 %d 篇文章引用分类 '%s'，不能删除: %w", n, publicID, apperr.ErrConflict)
	}

	return s.repo.Delete(ctx, publicID)
}

// CreateLocale 为已有分类追加一个翻译行。
func (s *Service) CreateLocale(ctx context.Context, callerID, publicID, code string, in model.CategoryLocaleInput) (*model.CategoryLocaleResponse, error) {
	if err := s.access.Verify(ctx, callerID, constant.ResourceCategory, constant.AccessUpdate); err != nil {
		return nil, err
	}
	if err := s.checkLocale(ctx, code); err != nil {
		return nil, err
	}

	l, err := s.repo.CreateLocale(ctx, publicID, code, in)
	if err != nil {
		return nil, err
	}
	return toLocaleResponse(l), nil
}

// UpdateLocale 更新翻译行的部分字段。
func (s *Service) UpdateLocale(ctx context.Context, callerID, publicID, code string, req *model.UpdateCategoryLocaleRequest) (*model.CategoryLocaleResponse, error) {
	if err := s.access.Verify(ctx, callerID, constant.ResourceCategory, constant.AccessUpdate); err != nil {
		return nil, err
	}

	l, err := s.repo.UpdateLocale(ctx, publicID, code, req)
	if err != nil {
		return nil, err
	}
	return toLocaleResponse(l), nil
}

// DeleteLocale 删除一个翻译行。分类必须始终保留至少一个翻译，
// 删除最后一个翻译应当走删除整个分类的路径。
func (s *Service) DeleteLocale(ctx context.Context, callerID, publicID, code string) error {
	if err := s.access.Verify(ctx, callerID, constant.ResourceCategory, constant.AccessUpdate); err != nil {
		return err
	}

	n, err := s.repo.CountLocales(ctx, publicID)
	if err != nil {
		return err
	}
	if n < 2 {
		return fmt.Errorf("分类 '%s' 只剩最后一个翻译，不能删除: %w", publicID, apperr.ErrConflict)
	}

	return s.repo.DeleteLocale(ctx, publicID, code)
}
