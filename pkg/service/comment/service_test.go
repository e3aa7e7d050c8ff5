package comment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/lanyu-o/lanyu-blog/pkg/apperr"
	"github.com/lanyu-o/lanyu-blog/pkg/constant"
	"github.com/lanyu-o/lanyu-blog/pkg/domain/model"
)

type stubVerifier struct{}

func (v *stubVerifier) Verify(_ context.Context, callerID, _ string, _ constant.AccessLevel) error {
	if callerID == "" {
		return fmt.Errorf("调用者身份缺失: %w", apperr.ErrUnauthorized)
	}
	return nil
}

// fakeCommentRepo 是内存版的评论仓库。
type fakeCommentRepo struct {
	seq        int
	knownPosts map[string]bool
	items      map[string]*model.Comment
}

func newFakeCommentRepo(posts ...string) *fakeCommentRepo {
	known := make(map[string]bool, len(posts))
	for _, p := range posts {
		known[p] = true
	}
	return &fakeCommentRepo{knownPosts: known, items: make(map[string]*model.Comment)}
}

func (r *fakeCommentRepo) Create(_ context.Context, postPublicID, authorID, content string) (*model.Comment, error) {
	if !r.knownPosts[postPublicID] {
		return nil, fmt.Errorf("comment.create: %w", apperr.ErrNotFound)
	}
	r.seq++
	c := &model.Comment{
		ID:        fmt.Sprintf("c%d", r.seq),
		CreatedAt: time.Now(),
		PostID:    postPublicID,
		AuthorID:  authorID,
		Content:   content,
	}
	r.items[c.ID] = c
	return c, nil
}

func (r *fakeCommentRepo) ListByPost(_ context.Context, postPublicID string) ([]*model.Comment, error) {
	var result []*model.Comment
	for _, c := range r.items {
		if c.PostID == postPublicID {
			result = append(result, c)
		}
	}
	return result, nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, publicID string) error {
	if _, ok := r.items[publicID]; !ok {
		return fmt.Errorf("comment.delete: %w", apperr.ErrNotFound)
	}
	delete(r.items, publicID)
	return nil
}

func TestCreateComment(t *testing.T) {
	ctx := context.Background()

	t.Run("脚本标签被清理", func(t *testing.T) {
		repo := newFakeCommentRepo("p1")
		svc := NewService(repo, &stubVerifier{})

		resp, err := svc.Create(ctx, "user1", "p1", &model.CreateCommentRequest{
			Content: `好文章<script>alert("xss")</script>`,
		})
		if err != nil {
			t.Fatalf("发表评论失败: %v", err)
		}
		if strings.Contains(resp.Content, "<script>") {
			t.Errorf("内容应剔除脚本标签: %q", resp.Content)
		}
		if !strings.Contains(resp.Content, "好文章") {
			t.Errorf("正常文本应保留: %q", resp.Content)
		}
	})

	t.Run("清理后为空则拒绝", func(t *testing.T) {
		repo := newFakeCommentRepo("p1")
		svc := NewService(repo, &stubVerifier{})

		_, err := svc.Create(ctx, "user1", "p1", &model.CreateCommentRequest{
			Content: `<script>alert(1)</script>`,
		})
		var vErr *apperr.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("期望 ValidationError, 实际 %v", err)
		}
		if len(repo.items) != 0 {
			t.Error("被拒绝的评论不应落库")
		}
	})

	t.Run("文章不存在", func(t *testing.T) {
		repo := newFakeCommentRepo()
		svc := NewService(repo, &stubVerifier{})

		_, err := svc.Create(ctx, "user1", "missing", &model.CreateCommentRequest{Content: "hi"})
		if !errors.Is(err, apperr.ErrNotFound) {
			t.Fatalf("期望 ErrNotFound, 实际 %v", err)
		}
	})

	t.Run("匿名调用被拒绝", func(t *testing.T) {
		repo := newFakeCommentRepo("p1")
		svc := NewService(repo, &stubVerifier{})

		_, err := svc.Create(ctx, "", "p1", &model.CreateCommentRequest{Content: "hi"})
		if !errors.Is(err, apperr.ErrUnauthorized) {
			t.Fatalf("期望 ErrUnauthorized, 实际 %v", err)
		}
	})
}

func TestListAndDeleteComment(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCommentRepo("p1")
	svc := NewService(repo, &stubVerifier{})

	created, err := svc.Create(ctx, "user1", "p1", &model.CreateCommentRequest{Content: "第一条"})
	if err != nil {
		t.Fatalf("发表评论失败: %v", err)
	}
	if _, err := svc.Create(ctx, "user2", "p1", &model.CreateCommentRequest{Content: "第二条"}); err != nil {
		t.Fatalf("发表评论失败: %v", err)
	}

	list, err := svc.ListByPost(ctx, "user1", "p1")
	if err != nil {
		t.Fatalf("列举评论失败: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("评论数 = %d, 期望 2", len(list))
	}

	if err := svc.Delete(ctx, "user1", created.ID); err != nil {
		t.Fatalf("删除评论失败: %v", err)
	}
	if err := svc.Delete(ctx, "user1", created.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("重复删除期望 ErrNotFound, 实际 %v", err)
	}
}
