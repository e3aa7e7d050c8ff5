/*
 * @Description: 孤儿存储对象清扫任务
 * @Author: 蓝屿
 * @Date: 2026-03-14 10:05:52
 * @LastEditTime: 2026-07-09 11:38:20
 * @LastEditors: 蓝屿
 */
package task

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/lanyu-o/lanyu-blog/internal/infra/storage"
	"github.com/lanyu-o/lanyu-blog/pkg/domain/repository"
)

// OrphanSweepJob 回收存储后端中没有对应媒体记录的对象。
//
// 媒体操作的副作用顺序保证失败只会留下"有对象无记录"的孤儿，
// 反方向的不一致（记录引用不存在的对象）不会产生，所以这里只
// 需要单向清扫。对象键的首段就是媒体公共 ID，按前缀分组后逐组
// 核对记录是否存在。
type OrphanSweepJob struct {
	store storage.Adapter
	repo  repository.MediaRepository
	log   *slog.Logger
}

// NewOrphanSweepJob 是 OrphanSweepJob 的构造函数。
func NewOrphanSweepJob(store storage.Adapter, repo repository.MediaRepository, logger *slog.Logger) *OrphanSweepJob {
	return &OrphanSweepJob{store: store, repo: repo, log: logger}
}

func (j *OrphanSweepJob) Name() string { return "OrphanSweep" }

func (j *OrphanSweepJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	lister, ok := j.store.(storage.Lister)
	if !ok {
		j.log.Warn("存储后端不支持对象列举，跳过孤儿清扫")
		return
	}

	keys, err := lister.ListKeys(ctx, "")
	if err != nil {
		j.log.Error("列举存储对象失败", slog.Any("error", err))
		return
	}

	// 按公共 ID 分组
	groups := make(map[string][]string)
	for _, key := range keys {
		id, _, found := strings.Cut(key, "/")
		if !found || id == "" {
			continue
		}
		groups[id] = append(groups[id], key)
	}

	var swept, failed int
	for id, groupKeys := range groups {
		exists, err := j.repo.Exists(ctx, id)
		if err != nil {
			j.log.Error("核对媒体记录失败", slog.String("id", id), slog.Any("error", err))
			failed++
			continue
		}
		if exists {
			continue
		}

		for _, key := range groupKeys {
			if !j.store.Delete(ctx, key) {
				j.log.Error("删除孤儿对象失败",
					slog.String("key", key),
					slog.String("detail", j.store.LastError()))
				failed++
				continue
			}
			swept++
		}
	}

	j.log.Info("孤儿对象清扫完成",
		slog.Int("total_keys", len(keys)),
		slog.Int("swept", swept),
		slog.Int("failed", failed))
}
