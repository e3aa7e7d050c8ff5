package storage

import (
	"context"
	"reflect"
	"testing"
)

func TestMemoryAdapterContract(t *testing.T) {
	ctx := context.Background()

	t.Run("写入后可读取", func(t *testing.T) {
		a := NewMemoryAdapter("memory://bucket")

		if !a.Save(ctx, "id/a.png", []byte("payload"), "image/png") {
			t.Fatalf("写入失败: %s", a.LastError())
		}
		data, ok := a.Open(ctx, "id/a.png")
		if !ok {
			t.Fatalf("读取失败: %s", a.LastError())
		}
		if string(data) != "payload" {
			t.Errorf("内容 = %q, 期望 %q", data, "payload")
		}
		if a.ContentType("id/a.png") != "image/png" {
			t.Errorf("Content-Type = %q", a.ContentType("id/a.png"))
		}
	})

	t.Run("删除是幂等的", func(t *testing.T) {
		a := NewMemoryAdapter("memory://bucket")
		a.Save(ctx, "id/a.png", []byte("x"), "image/png")

		if !a.Delete(ctx, "id/a.png") {
			t.Fatal("第一次删除应成功")
		}
		if !a.Delete(ctx, "id/a.png") {
			t.Fatal("重复删除同样应返回 true")
		}
	})

	t.Run("失败信息由下一次成功操作清除", func(t *testing.T) {
		a := NewMemoryAdapter("memory://bucket")
		a.FailSaveKeys["bad"] = true

		if a.Save(ctx, "bad", []byte("x"), "text/plain") {
			t.Fatal("注入的失败应生效")
		}
		if a.LastError() == "" {
			t.Fatal("失败后 LastError 应非空")
		}

		if !a.Save(ctx, "good", []byte("x"), "text/plain") {
			t.Fatalf("写入失败: %s", a.LastError())
		}
		if a.LastError() != "" {
			t.Errorf("成功操作后 LastError 应清空, 实际 %q", a.LastError())
		}
	})

	t.Run("读取不存在的对象", func(t *testing.T) {
		a := NewMemoryAdapter("memory://bucket")
		if _, ok := a.Open(ctx, "missing"); ok {
			t.Fatal("不存在的对象不应读取成功")
		}
		if a.LastError() == "" {
			t.Error("期望 LastError 携带诊断信息")
		}
	})

	t.Run("URL是纯推导", func(t *testing.T) {
		a := NewMemoryAdapter("memory://bucket/")
		if got := a.URL("id/a.png"); got != "memory://bucket/id/a.png" {
			t.Errorf("URL = %q", got)
		}
	})

	t.Run("按前缀列举", func(t *testing.T) {
		a := NewMemoryAdapter("memory://bucket")
		a.Save(ctx, "aa/1.png", []byte("x"), "")
		a.Save(ctx, "aa/2.png", []byte("x"), "")
		a.Save(ctx, "bb/1.png", []byte("x"), "")

		keys, err := a.ListKeys(ctx, "aa/")
		if err != nil {
			t.Fatalf("列举失败: %v", err)
		}
		if !reflect.DeepEqual(keys, []string{"aa/1.png", "aa/2.png"}) {
			t.Errorf("keys = %v", keys)
		}

		all, err := a.ListKeys(ctx, "")
		if err != nil {
			t.Fatalf("列举失败: %v", err)
		}
		if len(all) != 3 {
			t.Errorf("全量列举 = %d 个, 期望 3", len(all))
		}
	})
}
