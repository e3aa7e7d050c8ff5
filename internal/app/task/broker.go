// internal/app/task/broker.go
package task

import (
	"log/slog"
	"os"

	"github.com/lanyu-o/lanyu-blog/internal/infra/storage"
	"github.com/lanyu-o/lanyu-blog/pkg/config"
	"github.com/lanyu-o/lanyu-blog/pkg/domain/repository"

	"github.com/robfig/cron/v3"
)

// Broker 是后台任务模块的协调者，负责注册并调度全部 cron 任务。
type Broker struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// NewBroker 是 Broker 的构造函数。
func NewBroker(cfg *config.Config, store storage.Adapter, mediaRepo repository.MediaRepository) (*Broker, error) {
	slogHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger := slog.New(slogHandler).With("system", "task_broker")

	c := cron.New(
		cron.WithSeconds(),
		cron.WithChain(
			NewPanicRecoveryWrapper(logger),
			NewLoggingWrapper(logger),
			cron.DelayIfStillRunning(cron.DefaultLogger),
		),
	)

	b := &Broker{cron: c, logger: logger}

	sweepSpec := cfg.GetString(config.KeyOrphanSweepCron)
	if sweepSpec == "" {
		logger.Warn("未配置孤儿清扫的 cron 表达式，任务已禁用")
	} else {
		job := NewOrphanSweepJob(store, mediaRepo, logger)
		if _, err := c.AddJob(sweepSpec, job); err != nil {
			return nil, err
		}
		logger.Info("孤儿清扫任务已注册", slog.String("cron", sweepSpec))
	}

	return b, nil
}

// Start 启动调度器（非阻塞）。
func (b *Broker) Start() {
	b.cron.Start()
	b.logger.Info("后台任务调度器已启动")
}

// Stop 停止调度器并等待执行中的任务结束。
func (b *Broker) Stop() {
	ctx := b.cron.Stop()
	<-ctx.Done()
	b.logger.Info("后台任务调度器已停止")
}
