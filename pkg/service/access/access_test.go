package access

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lanyu-o/lanyu-blog/pkg/apperr"
	"github.com/lanyu-o/lanyu-blog/pkg/constant"
)

func TestAllowAllVerifier(t *testing.T) {
	v := &allowAllVerifier{}
	ctx := context.Background()

	t.Run("正常用户放行", func(t *testing.T) {
		if err := v.Verify(ctx, "user1", constant.ResourcePost, constant.AccessRead); err != nil {
			t.Fatalf("期望放行, 实际 %v", err)
		}
	})

	t.Run("空身份拒绝", func(t *testing.T) {
		if err := v.Verify(ctx, "", constant.ResourcePost, constant.AccessRead); !errors.Is(err, apperr.ErrUnauthorized) {
			t.Fatalf("期望 ErrUnauthorized, 实际 %v", err)
		}
	})

	t.Run("系统身份不能走外部接口", func(t *testing.T) {
		if err := v.Verify(ctx, constant.SystemUserID, constant.ResourcePost, constant.AccessRead); !errors.Is(err, apperr.ErrUnauthorized) {
			t.Fatalf("期望 ErrUnauthorized, 实际 %v", err)
		}
	})
}

func TestHTTPVerifier(t *testing.T) {
	ctx := context.Background()

	var lastReq verifyRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&lastReq); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		allowed := lastReq.UserID == "alice"
		json.NewEncoder(w).Encode(verifyResponse{Allowed: allowed, Reason: "policy"})
	}))
	defer srv.Close()

	v := &httpVerifier{endpoint: srv.URL, client: srv.Client()}

	t.Run("上游放行", func(t *testing.T) {
		if err := v.Verify(ctx, "alice", constant.ResourceMedia, constant.AccessCreate); err != nil {
			t.Fatalf("期望放行, 实际 %v", err)
		}
		if lastReq.Resource != constant.ResourceMedia || lastReq.Level != constant.AccessCreate.String() {
			t.Errorf("请求载荷不完整: %+v", lastReq)
		}
	})

	t.Run("上游拒绝", func(t *testing.T) {
		if err := v.Verify(ctx, "bob", constant.ResourceMedia, constant.AccessDelete); !errors.Is(err, apperr.ErrForbidden) {
			t.Fatalf("期望 ErrForbidden, 实际 %v", err)
		}
	})

	t.Run("空身份不走网络", func(t *testing.T) {
		if err := v.Verify(ctx, "", constant.ResourceMedia, constant.AccessRead); !errors.Is(err, apperr.ErrUnauthorized) {
			t.Fatalf("期望 ErrUnauthorized, 实际 %v", err)
		}
	})

	t.Run("上游异常状态码", func(t *testing.T) {
		bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer bad.Close()

		v := &httpVerifier{endpoint: bad.URL, client: bad.Client()}
		if err := v.Verify(ctx, "alice", constant.ResourceMedia, constant.AccessRead); err == nil {
			t.Error("期望返回错误")
		}
	})
}
