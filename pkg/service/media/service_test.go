package media

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lanyu-o/lanyu-blog/internal/infra/storage"
	"github.com/lanyu-o/lanyu-blog/pkg/apperr"
	"github.com/lanyu-o/lanyu-blog/pkg/constant"
	"github.com/lanyu-o/lanyu-blog/pkg/domain/model"
)

// stubVerifier 是测试用的访问控制桩，denied 为真时拒绝一切操作。
type stubVerifier struct {
	denied bool
}

func (v *stubVerifier) Verify(_ context.Context, callerID, _ string, _ constant.AccessLevel) error {
	if v.denied {
		return fmt.Errorf("测试桩拒绝: %w", apperr.ErrForbidden)
	}
	if callerID == "" {
		return fmt.Errorf("调用者身份缺失: %w", apperr.ErrUnauthorized)
	}
	return nil
}

// fakeMediaRepo 是内存版的媒体仓库，行为与真实实现的错误契约一致。
type fakeMediaRepo struct {
	mu    sync.Mutex
	seq   int
	items map[string]*model.Media
}

func newFakeMediaRepo() *fakeMediaRepo {
	return &fakeMediaRepo{items: make(map[string]*model.Media)}
}

func (r *fakeMediaRepo) Create(_ context.Context, m *model.Media) (*model.Media, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.UploaderID == m.UploaderID && existing.Filename == m.Filename {
			return nil, fmt.Errorf("media.create: %w", apperr.ErrConflict)
		}
	}

	r.seq++
	stored := *m
	stored.ID = fmt.Sprintf("m%d", r.seq)
	stored.CreatedAt = time.Now()
	if m.Image != nil {
		img := *m.Image
		img.Thumbnails = append([]string{}, m.Image.Thumbnails...)
		stored.Image = &img
	}
	r.items[stored.ID] = &stored

	result := stored
	return &result, nil
}

func (r *fakeMediaRepo) GetByID(_ context.Context, publicID string) (*model.Media, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.items[publicID]
	if !ok {
		return nil, fmt.Errorf("media.get: %w", apperr.ErrNotFound)
	}
	result := *m
	if m.Image != nil {
		img := *m.Image
		img.Thumbnails = append([]string{}, m.Image.Thumbnails...)
		result.Image = &img
	}
	return &result, nil
}

func (r *fakeMediaRepo) UpdateImage(_ context.Context, publicID string, image *model.MediaImage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.items[publicID]
	if !ok {
		return fmt.Errorf("media.update_image: %w", apperr.ErrNotFound)
	}
	m.Image = image
	return nil
}

func (r *fakeMediaRepo) Delete(_ context.Context, publicID string, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[publicID]; !ok {
		return fmt.Errorf("media.delete: %w", apperr.ErrNotFound)
	}
	delete(r.items, publicID)
	return nil
}

func (r *fakeMediaRepo) Filter(_ context.Context, f *model.MediaFilter) ([]*model.Media, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*model.Media
	for _, m := range r.items {
		if f.UploaderID != "" && m.UploaderID != f.UploaderID {
			continue
		}
		copied := *m
		result = append(result, &copied)
	}
	return result, nil
}

func (r *fakeMediaRepo) Exists(_ context.Context, publicID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.items[publicID]
	return ok, nil
}

func (r *fakeMediaRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

func newTestService() (*Service, *fakeMediaRepo, *storage.MemoryAdapter) {
	repo := newFakeMediaRepo()
	store := storage.NewMemoryAdapter("memory://bucket")
	svc := NewService(repo, store, &stubVerifier{})
	return svc, repo, store
}

func pngRequest(t *testing.T, thumbnails ...string) *model.CreateMediaRequest {
	t.Helper()
	return &model.CreateMediaRequest{
		Base64:     base64.StdEncoding.EncodeToString(encodeTestPNG(t, 100, 50)),
		Filename:   "pic.png",
		Thumbnails: thumbnails,
	}
}

func TestCreateMedia(t *testing.T) {
	ctx := context.Background()

	t.Run("创建图片并生成缩略图", func(t *testing.T) {
		svc, repo, store := newTestService()

		resp, err := svc.Create(ctx, "user1", pngRequest(t, "c50x50"))
		if err != nil {
			t.Fatalf("创建失败: %v", err)
		}

		if resp.Image == nil {
			t.Fatal("期望响应携带图片信息")
		}
		if resp.Image.Resolution.Width != 100 || resp.Image.Resolution.Height != 50 {
			t.Errorf("分辨率 = %+v, 期望 100x50", resp.Image.Resolution)
		}
		if len(resp.URLs) != 2 {
			t.Errorf("URL 数量 = %d, 期望 2 (source + c50x50)", len(resp.URLs))
		}
		if !store.Has(resp.ID+"/pic.png") || !store.Has(resp.ID+"/pic_c50x50.png") {
			t.Error("期望存储后端中存在原始对象和缩略图对象")
		}
		if repo.count() != 1 {
			t.Errorf("记录数 = %d, 期望 1", repo.count())
		}
	})

	t.Run("缩略图写入失败时整体回滚", func(t *testing.T) {
		svc, repo, store := newTestService()
		store.FailSaveKeys["m1/pic_c50x50.png"] = true

		_, err := svc.Create(ctx, "user1", pngRequest(t, "c50x50"))

		var sErr *apperr.StorageError
		if !errors.As(err, &sErr) {
			t.Fatalf("期望 StorageError, 实际 %v", err)
		}
		if sErr.Detail == "" {
			t.Error("期望错误携带存储后端的诊断信息")
		}
		if repo.count() != 0 {
			t.Errorf("回滚后记录数 = %d, 期望 0", repo.count())
		}
		if store.Len() != 0 {
			t.Errorf("回滚后对象数 = %d, 期望 0（原始对象也应被删掉）", store.Len())
		}
	})

	t.Run("损坏的图片内容不留任何痕迹", func(t *testing.T) {
		svc, repo, store := newTestService()

		_, err := svc.Create(ctx, "user1", &model.CreateMediaRequest{
			Base64:   base64.StdEncoding.EncodeToString([]byte("definitely not a png")),
			Filename: "pic.png",
		})

		var vErr *apperr.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("期望 ValidationError, 实际 %v", err)
		}
		if repo.count() != 0 || store.Len() != 0 {
			t.Error("解码失败不应留下记录或对象")
		}
	})

	t.Run("渲染失败发生在持久化之前", func(t *testing.T) {
		svc, repo, store := newTestService()

		// 只保留文件头：DecodeConfig 能读出尺寸，完整解码必然失败
		full := encodeTestPNG(t, 100, 50)
		truncated := full[:50]

		_, err := svc.Create(ctx, "user1", &model.CreateMediaRequest{
			Base64:     base64.StdEncoding.EncodeToString(truncated),
			Filename:   "pic.png",
			Thumbnails: []string{"c10x10"},
		})

		var vErr *apperr.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("期望 ValidationError, 实际 %v", err)
		}
		if repo.count() != 0 {
			t.Errorf("渲染失败后记录数 = %d, 期望 0（渲染必须先于建记录）", repo.count())
		}
		if store.Len() != 0 {
			t.Errorf("渲染失败后对象数 = %d, 期望 0", store.Len())
		}
	})

	t.Run("非图片携带缩略图规格", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.Create(ctx, "user1", &model.CreateMediaRequest{
			Base64:     base64.StdEncoding.EncodeToString([]byte("%PDF-1.4 fake")),
			Filename:   "report.pdf",
			Thumbnails: []string{"c50x50"},
		})
		if !errors.Is(err, apperr.ErrNotAnImage) {
			t.Fatalf("期望 ErrNotAnImage, 实际 %v", err)
		}
	})

	t.Run("非图片正常入库", func(t *testing.T) {
		svc, repo, store := newTestService()

		resp, err := svc.Create(ctx, "user1", &model.CreateMediaRequest{
			Base64:   base64.StdEncoding.EncodeToString([]byte("plain text payload")),
			Filename: "notes.txt",
		})
		if err != nil {
			t.Fatalf("创建失败: %v", err)
		}
		if resp.Image != nil {
			t.Error("非图片不应携带图片信息")
		}
		if !strings.HasPrefix(resp.Mime, "text/plain") {
			t.Errorf("mime = %q, 期望按扩展名推导出 text/plain", resp.Mime)
		}
		if repo.count() != 1 || store.Len() != 1 {
			t.Error("期望一条记录和一个原始对象")
		}
	})

	t.Run("认不出的扩展名存空mime", func(t *testing.T) {
		svc, _, _ := newTestService()

		resp, err := svc.Create(ctx, "user1", &model.CreateMediaRequest{
			Base64:   base64.StdEncoding.EncodeToString([]byte("opaque bytes")),
			Filename: "blob.zzunknown",
		})
		if err != nil {
			t.Fatalf("创建失败: %v", err)
		}
		if resp.Mime != "" {
			t.Errorf("mime = %q, 期望空串", resp.Mime)
		}
	})

	t.Run("无效的变体串", func(t *testing.T) {
		svc, repo, _ := newTestService()

		_, err := svc.Create(ctx, "user1", pngRequest(t, "c0x50"))

		var vErr *apperr.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("期望 ValidationError, 实际 %v", err)
		}
		if repo.count() != 0 {
			t.Error("校验失败不应落库")
		}
	})

	t.Run("非法base64", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.Create(ctx, "user1", &model.CreateMediaRequest{
			Base64:   "!!!not base64!!!",
			Filename: "pic.png",
		})

		var dErr *apperr.DecodeError
		if !errors.As(err, &dErr) {
			t.Fatalf("期望 DecodeError, 实际 %v", err)
		}
	})

	t.Run("访问被拒绝", func(t *testing.T) {
		repo := newFakeMediaRepo()
		store := storage.NewMemoryAdapter("memory://bucket")
		svc := NewService(repo, store, &stubVerifier{denied: true})

		_, err := svc.Create(ctx, "user1", pngRequest(t))
		if !errors.Is(err, apperr.ErrForbidden) {
			t.Fatalf("期望 ErrForbidden, 实际 %v", err)
		}
	})
}

func TestDeleteMedia(t *testing.T) {
	ctx := context.Background()

	t.Run("存储删除失败时保留记录并支持重试", func(t *testing.T) {
		svc, repo, store := newTestService()

		resp, err := svc.Create(ctx, "user1", pngRequest(t, "c50x50"))
		if err != nil {
			t.Fatalf("创建失败: %v", err)
		}

		thumbKey := resp.ID + "/pic_c50x50.png"
		store.FailDeleteKeys[thumbKey] = true

		err = svc.Delete(ctx, "user1", resp.ID)
		var sErr *apperr.StorageError
		if !errors.As(err, &sErr) {
			t.Fatalf("期望 StorageError, 实际 %v", err)
		}
		if repo.count() != 1 {
			t.Fatal("删除失败后记录应该保留")
		}

		// 故障恢复后重试应当成功，之前已删掉的对象不影响幂等删除
		delete(store.FailDeleteKeys, thumbKey)
		if err := svc.Delete(ctx, "user1", resp.ID); err != nil {
			t.Fatalf("重试删除失败: %v", err)
		}
		if repo.count() != 0 || store.Len() != 0 {
			t.Error("重试成功后记录和对象都应清空")
		}
	})

	t.Run("删除不存在的媒体", func(t *testing.T) {
		svc, _, _ := newTestService()
		if err := svc.Delete(ctx, "user1", "missing"); !errors.Is(err, apperr.ErrNotFound) {
			t.Fatalf("期望 ErrNotFound, 实际 %v", err)
		}
	})
}

func TestReadMedia(t *testing.T) {
	ctx := context.Background()
	svc, _, store := newTestService()

	resp, err := svc.Create(ctx, "user1", pngRequest(t))
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	t.Run("读取返回原始内容", func(t *testing.T) {
		content, err := svc.Read(ctx, "user1", resp.ID)
		if err != nil {
			t.Fatalf("读取失败: %v", err)
		}
		data, err := base64.StdEncoding.DecodeString(content.Base64)
		if err != nil {
			t.Fatalf("响应内容不是合法 base64: %v", err)
		}
		if int64(len(data)) != content.Length {
			t.Errorf("内容长度 = %d, 期望 %d", len(data), content.Length)
		}
	})

	t.Run("对象丢失时报存储错误", func(t *testing.T) {
		store.FailOpenKeys[resp.ID+"/pic.png"] = true
		defer delete(store.FailOpenKeys, resp.ID+"/pic.png")

		_, err := svc.Read(ctx, "user1", resp.ID)
		var sErr *apperr.StorageError
		if !errors.As(err, &sErr) {
			t.Fatalf("期望 StorageError, 实际 %v", err)
		}
	})
}

func TestFilterMedia(t *testing.T) {
	ctx := context.Background()

	t.Run("空条件被拒绝", func(t *testing.T) {
		svc, _, _ := newTestService()
		_, err := svc.Filter(ctx, "user1", &model.MediaFilterRequest{})
		var vErr *apperr.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("期望 ValidationError, 实际 %v", err)
		}
	})

	t.Run("只看自己的上传", func(t *testing.T) {
		svc, _, _ := newTestService()
		if _, err := svc.Create(ctx, "user1", pngRequest(t)); err != nil {
			t.Fatalf("创建失败: %v", err)
		}
		if _, err := svc.Create(ctx, "user2", &model.CreateMediaRequest{
			Base64:   base64.StdEncoding.EncodeToString(encodeTestPNG(t, 10, 10)),
			Filename: "other.png",
		}); err != nil {
			t.Fatalf("创建失败: %v", err)
		}

		result, err := svc.Filter(ctx, "user1", &model.MediaFilterRequest{Mine: true})
		if err != nil {
			t.Fatalf("检索失败: %v", err)
		}
		if len(result) != 1 || result[0].UploaderID != "user1" {
			t.Errorf("期望只返回 user1 的一条记录, 实际 %d 条", len(result))
		}
	})
}

func TestCreateThumbnail(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*Service, *storage.MemoryAdapter, string) {
		svc, _, store := newTestService()
		resp, err := svc.Create(ctx, "user1", pngRequest(t, "c50x50"))
		if err != nil {
			t.Fatalf("创建失败: %v", err)
		}
		return svc, store, resp.ID
	}

	t.Run("追加新变体", func(t *testing.T) {
		svc, store, id := setup(t)

		url, err := svc.CreateThumbnail(ctx, "user1", id, "f20x20")
		if err != nil {
			t.Fatalf("追加缩略图失败: %v", err)
		}
		expected := "memory://bucket/" + id + "/pic_f20x20.png"
		if url != expected {
			t.Errorf("url = %q, 期望 %q", url, expected)
		}
		if !store.Has(id + "/pic_f20x20.png") {
			t.Error("新变体对象应写入存储")
		}

		m, err := svc.repo.GetByID(ctx, id)
		if err != nil {
			t.Fatalf("读取记录失败: %v", err)
		}
		if !m.Image.HasThumbnail("f20x20") {
			t.Error("新变体应出现在记录里")
		}
	})

	t.Run("重复变体", func(t *testing.T) {
		svc, _, id := setup(t)
		if _, err := svc.CreateThumbnail(ctx, "user1", id, "c50x50"); !errors.Is(err, apperr.ErrConflict) {
			t.Fatalf("期望 ErrConflict, 实际 %v", err)
		}
	})

	t.Run("无效变体串", func(t *testing.T) {
		svc, _, id := setup(t)
		_, err := svc.CreateThumbnail(ctx, "user1", id, "bogus")
		var vErr *apperr.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("期望 ValidationError, 实际 %v", err)
		}
	})

	t.Run("非图片媒体", func(t *testing.T) {
		svc, _, _ := newTestService()
		resp, err := svc.Create(ctx, "user1", &model.CreateMediaRequest{
			Base64:   base64.StdEncoding.EncodeToString([]byte("plain text")),
			Filename: "notes.txt",
		})
		if err != nil {
			t.Fatalf("创建失败: %v", err)
		}
		if _, err := svc.CreateThumbnail(ctx, "user1", resp.ID, "c10x10"); !errors.Is(err, apperr.ErrNotAnImage) {
			t.Fatalf("期望 ErrNotAnImage, 实际 %v", err)
		}
	})
}

func TestDeleteThumbnail(t *testing.T) {
	ctx := context.Background()
	svc, _, store := newTestService()

	resp, err := svc.Create(ctx, "user1", pngRequest(t, "c50x50"))
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	t.Run("非法变体串被拒绝", func(t *testing.T) {
		before := store.Len()
		_, err := svc.DeleteThumbnail(ctx, "user1", resp.ID, "x10x10")
		var vErr *apperr.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("期望 ValidationError, 实际 %v", err)
		}
		if store.Len() != before {
			t.Error("校验失败不应触碰存储")
		}
	})

	t.Run("未登记的变体是无操作", func(t *testing.T) {
		before := store.Len()
		removed, err := svc.DeleteThumbnail(ctx, "user1", resp.ID, "f99x99")
		if err != nil {
			t.Fatalf("期望无操作成功返回, 实际 %v", err)
		}
		if removed {
			t.Error("未登记的变体不应报告已删除")
		}
		if store.Len() != before {
			t.Error("无操作不应触碰存储")
		}
	})

	t.Run("删除已登记的变体", func(t *testing.T) {
		removed, err := svc.DeleteThumbnail(ctx, "user1", resp.ID, "c50x50")
		if err != nil {
			t.Fatalf("删除失败: %v", err)
		}
		if !removed {
			t.Fatal("期望报告已删除")
		}
		if store.Has(resp.ID + "/pic_c50x50.png") {
			t.Error("变体对象应从存储中删除")
		}

		m, err := svc.repo.GetByID(ctx, resp.ID)
		if err != nil {
			t.Fatalf("读取记录失败: %v", err)
		}
		if m.Image.HasThumbnail("c50x50") {
			t.Error("变体应从记录中摘除")
		}
	})
}

func TestResolveURL(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	resp, err := svc.Create(ctx, "user1", pngRequest(t, "c50x50"))
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	t.Run("原始文件链接", func(t *testing.T) {
		url, err := svc.ResolveURL(ctx, "user1", resp.ID, model.MediaSourceVariant)
		if err != nil {
			t.Fatalf("解析失败: %v", err)
		}
		expected := "memory://bucket/" + resp.ID + "/pic.png"
		if url != expected {
			t.Errorf("url = %q, 期望 %q", url, expected)
		}
	})

	t.Run("已登记的变体", func(t *testing.T) {
		url, err := svc.ResolveURL(ctx, "user1", resp.ID, "c50x50")
		if err != nil {
			t.Fatalf("解析失败: %v", err)
		}
		if url != "memory://bucket/"+resp.ID+"/pic_c50x50.png" {
			t.Errorf("意外的 url: %q", url)
		}
	})

	t.Run("未登记的变体", func(t *testing.T) {
		if _, err := svc.ResolveURL(ctx, "user1", resp.ID, "f1x1"); !errors.Is(err, apperr.ErrNotFound) {
			t.Fatalf("期望 ErrNotFound, 实际 %v", err)
		}
	})

	t.Run("非图片媒体请求变体", func(t *testing.T) {
		plain, err := svc.Create(ctx, "user1", &model.CreateMediaRequest{
			Base64:   base64.StdEncoding.EncodeToString([]byte("plain text")),
			Filename: "notes.txt",
		})
		if err != nil {
			t.Fatalf("创建失败: %v", err)
		}

		if _, err := svc.ResolveURL(ctx, "user1", plain.ID, "c10x10"); !errors.Is(err, apperr.ErrNotAnImage) {
			t.Fatalf("期望 ErrNotAnImage, 实际 %v", err)
		}

		// 原始文件链接对非图片照常可解析
		if _, err := svc.ResolveURL(ctx, "user1", plain.ID, model.MediaSourceVariant); err != nil {
			t.Fatalf("原始文件解析失败: %v", err)
		}
	})
}
