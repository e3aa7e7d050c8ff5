/*
 * @Description: 媒体资产服务：上传、删除、读取、检索、缩略图管理与 URL 解析
 * @Author: 蓝屿
 * @Date: 2026-03-10 10:05:33
 * @LastEditTime: 2026-07-02 18:21:40
 * @LastEditors: 蓝屿
 */
package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"log"
	"mime"
	"path/filepath"
	"time"

	_ "image/jpeg"
	_ "image/png"

	"github.com/lanyu-o/lanyu-blog/internal/infra/storage"
	"github.com/lanyu-o/lanyu-blog/pkg/apperr"
	"github.com/lanyu-o/lanyu-blog/pkg/constant"
	"github.com/lanyu-o/lanyu-blog/pkg/domain/model"
	"github.com/lanyu-o/lanyu-blog/pkg/domain/repository"
	"github.com/lanyu-o/lanyu-blog/pkg/service/access"
)

// Service 封装媒体资产的全部业务操作。
//
// 存储对象和数据库记录之间没有事务，所有操作都按固定顺序执行副作用，
// 保证任何中途失败后留下的不一致都偏向"存储里有孤儿对象"而不是
// "记录引用了不存在的对象"，前者由后台清扫任务兜底。
type Service struct {
	repo   repository.MediaRepository
	store  storage.Adapter
	access access.Verifier
}

// NewService 是 Service 的构造函数。
func NewService(repo repository.MediaRepository, store storage.Adapter, verifier access.Verifier) *Service {
	return &Service{repo: repo, store: store, access: verifier}
}

// toResponse 组装标准响应，URLs 按变体名索引（原始文件键为 source）。
func (s *Service) toResponse(m *model.Media) *model.MediaResponse {
	urls := map[string]string{
		model.MediaSourceVariant: s.store.URL(m.StorageKey(model.MediaSourceVariant)),
	}
	if m.Image != nil {
		for _, spec := range m.Image.Thumbnails {
			urls[spec] = s.store.URL(m.StorageKey(spec))
		}
	}
	return &model.MediaResponse{
		ID:         m.ID,
		CreatedAt:  m.CreatedAt,
		Filename:   m.Filename,
		Mime:       m.Mime,
		Length:     m.Length,
		UploaderID: m.UploaderID,
		Image:      m.Image,
		URLs:       urls,
	}
}

// Create 上传一份新媒体。
//
// 副作用顺序：全部缩略图先在内存中渲染完成，然后建记录，再写原始
// 对象，最后写缩略图对象。渲染失败发生在任何持久化之前，不会留下
// 任何痕迹；存储写入失败触发回滚：删掉已写入的对象和刚建的记录，
// 对外表现为整个操作从未发生。回滚删除以系统身份入审计日志。
func (s *Service) Create(ctx context.Context, callerID string, req *model.CreateMediaRequest) (*model.MediaResponse, error) {
	if err := s.access.Verify(ctx, callerID, constant.ResourceMedia, constant.AccessCreate); err != nil {
		return nil, err
	}

	data, err := base64.StdEncoding.DecodeString(req.Base64)
	if err != nil {
		return nil, &apperr.DecodeError{Field: "base64", Err: err}
	}

	isImage := IsImageFilename(req.Filename)

	// 缩略图规格只对图片类型有意义
	if len(req.Thumbnails) > 0 && !isImage {
		return nil, fmt.Errorf("文件 '%s' 不是图片，不能携带缩略图规格: %w",
			req.Filename, apperr.ErrNotAnImage)
	}

	variants := make(map[string]Variant, len(req.Thumbnails))
	var vErr *apperr.ValidationError
	for _, spec := range req.Thumbnails {
		v, ok := ParseVariant(spec)
		if !ok {
			if vErr == nil {
				vErr = &apperr.ValidationError{}
			}
			vErr.Append("thumbnails", fmt.Sprintf("无效的变体串 '%s'", spec))
			continue
		}
		variants[spec] = v
	}
	if vErr != nil {
		return nil, vErr
	}

	m := &model.Media{
		Filename:   req.Filename,
		Length:     int64(len(data)),
		UploaderID: callerID,
	}

	if isImage {
		cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return nil, apperr.NewValidation("base64", fmt.Sprintf("图片内容无法解码: %v", err))
		}
		m.Mime = "image/" + format
		m.Image = &model.MediaImage{
			Resolution: model.MediaResolution{Width: cfg.Width, Height: cfg.Height},
			Thumbnails: req.Thumbnails,
		}
	} else {
		// 非图片类型按扩展名推导 MIME，认不出的扩展名存空串
		m.Mime = mime.TypeByExtension(filepath.Ext(req.Filename))
	}

	if v := m.Validate(); v != nil {
		return nil, v
	}

	// 全部缩略图先在内存中渲染完，任何一个失败都还没碰到数据库
	rendered := make(map[string][]byte, len(variants))
	for spec, v := range variants {
		buf, err := renderVariant(data, v)
		if err != nil {
			return nil, apperr.NewValidation("thumbnails",
				fmt.Sprintf("渲染变体 '%s' 失败: %v", spec, err))
		}
		rendered[spec] = buf
	}

	created, err := s.repo.Create(ctx, m)
	if err != nil {
		return nil, err
	}

	// 写入原始对象和缩略图对象，第一个失败就回滚全部
	saved := make([]string, 0, 1+len(rendered))
	sourceKey := created.StorageKey(model.MediaSourceVariant)
	if !s.store.Save(ctx, sourceKey, data, created.Mime) {
		detail := s.store.LastError()
		s.rollbackObjects(ctx, created.ID, saved)
		return nil, &apperr.StorageError{Op: "save", Detail: detail}
	}
	saved = append(saved, sourceKey)

	for spec, buf := range rendered {
		key := created.StorageKey(spec)
		if !s.store.Save(ctx, key, buf, created.Mime) {
			detail := s.store.LastError()
			s.rollbackObjects(ctx, created.ID, saved)
			return nil, &apperr.StorageError{Op: "save", Detail: detail}
		}
		saved = append(saved, key)
	}

	log.Printf("[MediaService] 媒体创建成功: id=%s, filename=%s, uploader=%s, objects=%d",
		created.ID, created.Filename, callerID, len(saved))
	return s.toResponse(created), nil
}

// rollbackObjects 删除已写入的对象后删除记录，尽力而为。
func (s *Service) rollbackObjects(ctx context.Context, publicID string, keys []string) {
	for _, key := range keys {
		if !s.store.Delete(ctx, key) {
			log.Printf("[MediaService] 回滚时删除对象 %s 失败: %s，留给清扫任务处理",
				key, s.store.LastError())
		}
	}
	s.rollbackRecord(ctx, publicID)
}

func (s *Service) rollbackRecord(ctx context.Context, publicID string) {
	if err := s.repo.Delete(ctx, publicID, constant.SystemUserID); err != nil {
		log.Printf("[MediaService] 回滚时删除记录 %s 失败: %v", publicID, err)
	}
}

// Delete 删除媒体及其全部存储对象。
//
// 先删对象后删记录：任何对象删除失败都保留记录原样返回，调用方可以
// 直接重试（对象删除是幂等的，已删掉的部分不会让重试失败）。
func (s *Service) Delete(ctx context.Context, callerID, publicID string) error {
	if err := s.access.Verify(ctx, callerID, constant.ResourceMedia, constant.AccessDelete); err != nil {
		return err
	}

	m, err := s.repo.GetByID(ctx, publicID)
	if err != nil {
		return err
	}

	for _, key := range m.StorageKeys() {
		if !s.store.Delete(ctx, key) {
			return &apperr.StorageError{Op: "delete", Detail: s.store.LastError()}
		}
	}

	return s.repo.Delete(ctx, publicID, callerID)
}

// Read 返回媒体记录连同 base64 编码的原始内容。
func (s *Service) Read(ctx context.Context, callerID, publicID string) (*model.MediaContentResponse, error) {
	if err := s.access.Verify(ctx, callerID, constant.ResourceMedia, constant.AccessRead); err != nil {
		return nil, err
	}

	m, err := s.repo.GetByID(ctx, publicID)
	if err != nil {
		return nil, err
	}

	data, ok := s.store.Open(ctx, m.StorageKey(model.MediaSourceVariant))
	if !ok {
		return nil, &apperr.StorageError{Op: "open", Detail: s.store.LastError()}
	}

	return &model.MediaContentResponse{
		MediaResponse: *s.toResponse(m),
		Base64:        base64.StdEncoding.EncodeToString(data),
	}, nil
}

// Filter 按条件检索媒体记录，至少需要一个条件。
func (s *Service) Filter(ctx context.Context, callerID string, req *model.MediaFilterRequest) ([]*model.MediaResponse, error) {
	if err := s.access.Verify(ctx, callerID, constant.ResourceMedia, constant.AccessRead); err != nil {
		return nil, err
	}

	if req.IsEmpty() {
		return nil, apperr.NewValidation("filter", "至少需要一个检索条件")
	}

	f := &model.MediaFilter{FilenameContains: req.FilenameContains}
	if req.CreatedFrom != nil {
		t := time.Unix(*req.CreatedFrom, 0)
		f.CreatedFrom = &t
	}
	if req.CreatedTo != nil {
		t := time.Unix(*req.CreatedTo, 0)
		f.CreatedTo = &t
	}
	if req.Mine {
		f.UploaderID = callerID
	}

	items, err := s.repo.Filter(ctx, f)
	if err != nil {
		return nil, err
	}

	result := make([]*model.MediaResponse, 0, len(items))
	for _, m := range items {
		result = append(result, s.toResponse(m))
	}
	return result, nil
}

// CreateThumbnail 为已有图片追加一个缩略图变体，返回新变体的访问链接。
//
// 副作用顺序：先写对象再更新记录。对象写入成功但记录更新失败时，
// 存储里会多出一个记录未引用的对象，由清扫任务回收。
func (s *Service) CreateThumbnail(ctx context.Context, callerID, publicID, spec string) (string, error) {
	if err := s.access.Verify(ctx, callerID, constant.ResourceMedia, constant.AccessUpdate); err != nil {
		return "", err
	}

	v, ok := ParseVariant(spec)
	if !ok {
		return "", apperr.NewValidation("thumbnail", fmt.Sprintf("无效的变体串 '%s'", spec))
	}

	m, err := s.repo.GetByID(ctx, publicID)
	if err != nil {
		return "", err
	}
	if m.Image == nil {
		return "", fmt.Errorf("媒体 '%s' 不是图片: %w", publicID, apperr.ErrNotAnImage)
	}
	if m.Image.HasThumbnail(spec) {
		return "", fmt.Errorf("缩略图 '%s' 已存在: %w", spec, apperr.ErrConflict)
	}

	src, ok := s.store.Open(ctx, m.StorageKey(model.MediaSourceVariant))
	if !ok {
		return "", &apperr.StorageError{Op: "open", Detail: s.store.LastError()}
	}

	buf, err := renderVariant(src, v)
	if err != nil {
		return "", &apperr.StorageError{Op: "render", Detail: err.Error()}
	}

	key := m.StorageKey(spec)
	if !s.store.Save(ctx, key, buf, m.Mime) {
		return "", &apperr.StorageError{Op: "save", Detail: s.store.LastError()}
	}

	updated := &model.MediaImage{
		Resolution: m.Image.Resolution,
		Thumbnails: append(append([]string{}, m.Image.Thumbnails...), spec),
	}
	if err := s.repo.UpdateImage(ctx, publicID, updated); err != nil {
		return "", err
	}

	log.Printf("[MediaService] 缩略图创建成功: id=%s, spec=%s", publicID, spec)
	return s.store.URL(key), nil
}

// DeleteThumbnail 删除一个缩略图变体。
// 变体未登记时不产生任何副作用，返回 false 表示无事可做。
func (s *Service) DeleteThumbnail(ctx context.Context, callerID, publicID, spec string) (bool, error) {
	if err := s.access.Verify(ctx, callerID, constant.ResourceMedia, constant.AccessUpdate); err != nil {
		return false, err
	}

	if _, ok := ParseVariant(spec); !ok {
		return false, apperr.NewValidation("thumbnail", fmt.Sprintf("无效的变体串 '%s'", spec))
	}

	m, err := s.repo.GetByID(ctx, publicID)
	if err != nil {
		return false, err
	}
	if m.Image == nil {
		return false, fmt.Errorf("媒体 '%s' 不是图片: %w", publicID, apperr.ErrNotAnImage)
	}
	if !m.Image.HasThumbnail(spec) {
		return false, nil
	}

	if !s.store.Delete(ctx, m.StorageKey(spec)) {
		return false, &apperr.StorageError{Op: "delete", Detail: s.store.LastError()}
	}

	remaining := make([]string, 0, len(m.Image.Thumbnails)-1)
	for _, t := range m.Image.Thumbnails {
		if t != spec {
			remaining = append(remaining, t)
		}
	}
	updated := &model.MediaImage{Resolution: m.Image.Resolution, Thumbnails: remaining}
	if err := s.repo.UpdateImage(ctx, publicID, updated); err != nil {
		return false, err
	}
	return true, nil
}

// ResolveURL 解析某个变体的访问链接。variant 为 source 时返回原始文件
// 链接；其余变体必须已登记。链接是纯推导结果，不校验对象实际存在。
func (s *Service) ResolveURL(ctx context.Context, callerID, publicID, variant string) (string, error) {
	if err := s.access.Verify(ctx, callerID, constant.ResourceMedia, constant.AccessRead); err != nil {
		return "", err
	}

	m, err := s.repo.GetByID(ctx, publicID)
	if err != nil {
		return "", err
	}

	if variant != model.MediaSourceVariant {
		if m.Image == nil {
			return "", fmt.Errorf("媒体 '%s' 不是图片: %w", publicID, apperr.ErrNotAnImage)
		}
		if !m.Image.HasThumbnail(variant) {
			return "", fmt.Errorf("变体 '%s' 未登记: %w", variant, apperr.ErrNotFound)
		}
	}
	return s.store.URL(m.StorageKey(variant)), nil
}
