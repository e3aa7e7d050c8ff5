// internal/app/bootstrap/bootstrap.go
package bootstrap

import (
	"fmt"
	"log"

	"github.com/lanyu-o/lanyu-blog/internal/infra/persistence/gormrepo"

	"gorm.io/gorm"
)

type Bootstrapper struct {
	db *gorm.DB
}

func NewBootstrapper(db *gorm.DB) *Bootstrapper {
	return &Bootstrapper{db: db}
}

// InitializeDatabase 同步全部表结构。
func (b *Bootstrapper) InitializeDatabase() error {
	log.Println("--- 开始执行数据库初始化引导程序 ---")

	if err := b.db.AutoMigrate(gormrepo.AllEntities()...); err != nil {
		return fmt.Errorf("数据库 schema 创建/更新失败: %w", err)
	}

	log.Println("--- 数据库 Schema 同步成功 ---")
	return nil
}
