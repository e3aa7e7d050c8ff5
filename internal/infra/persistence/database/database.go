/*
 * @Description: 数据库连接管理 (支持 postgres / sqlite)
 * @Author: 蓝屿
 * @Date: 2026-03-05 17:02:33
 * @LastEditTime: 2026-06-12 14:18:02
 * @LastEditors: 蓝屿
 */
package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/lanyu-o/lanyu-blog/pkg/config"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewGormDB 根据配置创建并返回一个 GORM 数据库连接，支持 postgres 和 sqlite。
func NewGormDB(cfg *config.Config) (*gorm.DB, error) {
	driver := cfg.GetString(config.KeyDBType)
	if driver == "" {
		log.Println("提示: 配置文件中未指定 'Database.Type'，将默认使用 'sqlite'")
		driver = "sqlite"
	}

	logLevel := logger.Warn
	if cfg.GetBool(config.KeyServerDebug) {
		logLevel = logger.Info
	}
	gormCfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	}

	var db *gorm.DB
	var err error

	switch driver {
	case "postgres":
		dbUser := cfg.GetString(config.KeyDBUser)
		dbPass := cfg.GetString(config.KeyDBPassword)
		dbHost := cfg.GetString(config.KeyDBHost)
		dbPort := cfg.GetString(config.KeyDBPort)
		dbName := cfg.GetString(config.KeyDBName)
		if dbUser == "" || dbHost == "" || dbPort == "" || dbName == "" {
			return nil, fmt.Errorf("PostgreSQL 连接参数不完整 (需要 User, Host, Port, Name)")
		}
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			dbHost, dbPort, dbUser, dbPass, dbName)
		db, err = gorm.Open(postgres.Open(dsn), gormCfg)
	case "sqlite", "sqlite3":
		dataDir := "./data"
		if mkErr := os.MkdirAll(dataDir, os.ModePerm); mkErr != nil {
			return nil, fmt.Errorf("无法创建 data 目录: %w", mkErr)
		}

		finalDbName := cfg.GetString(config.KeyDBName)
		if finalDbName == "" {
			finalDbName = "lanyu_blog.db"
		}

		finalPath := filepath.Join(dataDir, finalDbName)
		log.Printf("【提示】SQLite 数据库路径: %s\n", finalPath)

		// file: DSN 格式并启用外键约束
		dsn := fmt.Sprintf("file:%s?_fk=1&cache=shared", finalPath)
		db, err = gorm.Open(sqlite.Open(dsn), gormCfg)
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %s (支持: postgres, sqlite)", driver)
	}

	if err != nil {
		return nil, fmt.Errorf("打开数据库连接失败 (驱动: %s): %w", driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}

	// 设置连接池参数
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("无法 Ping 通数据库 (驱动: %s): %w", driver, err)
	}

	log.Printf("✅ %s 数据库连接池创建成功！\n", driver)
	return db, nil
}
