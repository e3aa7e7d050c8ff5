/*
 * @Description:
 * @Author: 蓝屿
 * @Date: 2026-03-05 17:10:48
 * @LastEditTime: 2026-05-20 10:03:15
 * @LastEditors: 蓝屿
 */
package database

import (
	"context"
	"log"
	"strconv"

	"github.com/lanyu-o/lanyu-blog/pkg/config"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient 接收配置并返回 Redis 客户端或 nil（用于自动降级）。
// 如果 Redis 未配置或连接失败，返回 nil 而不是错误，让上层决定是否降级。
func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	redisAddr := cfg.GetString(config.KeyRedisAddr)
	redisPassword := cfg.GetString(config.KeyRedisPassword)

	// 如果 Redis 地址未配置，返回 nil（这不是错误，只是没有配置）
	if redisAddr == "" {
		log.Println("⚠️  Redis 地址未配置，访问控制结果将不做缓存")
		return nil, nil
	}

	redisDB := 0
	if dbStr := cfg.GetString(config.KeyRedisDB); dbStr != "" {
		var err error
		redisDB, err = strconv.Atoi(dbStr)
		if err != nil {
			log.Printf("⚠️  无效的 Redis.DB 值 '%s': %v，将不做缓存", dbStr, err)
			return nil, nil
		}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       redisDB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️  连接 Redis (%s, DB %d) 失败: %v，将不做缓存", redisAddr, redisDB, err)
		rdb.Close()
		return nil, nil
	}

	log.Printf("✅ 成功连接到 Redis (%s, DB %d)", redisAddr, redisDB)
	return rdb, nil
}
