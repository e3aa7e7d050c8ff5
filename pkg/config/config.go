/*
 * @Description: 统一配置管理（ini 文件 + 环境变量覆盖，手动加载）
 * @Author: 蓝屿
 * @Date: 2026-03-02 09:40:12
 * @LastEditTime: 2026-06-08 13:11:46
 * @LastEditors: 蓝屿
 */
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-ini/ini"
	"github.com/spf13/viper"
)

const (
	KeyServerPort  = "System.Port"
	KeyServerDebug = "System.Debug"

	KeyDBType     = "Database.Type"
	KeyDBHost     = "Database.Host"
	KeyDBPort     = "Database.Port"
	KeyDBUser     = "Database.User"
	KeyDBPassword = "Database.Password"
	KeyDBName     = "Database.Name"

	KeyRedisAddr     = "Redis.Addr"
	KeyRedisPassword = "Redis.Password"
	KeyRedisDB       = "Redis.DB"

	KeyStorageType = "Storage.Type"

	KeyS3Bucket    = "S3.Bucket"
	KeyS3Region    = "S3.Region"
	KeyS3Endpoint  = "S3.Endpoint"
	KeyS3AccessKey = "S3.AccessKey"
	KeyS3SecretKey = "S3.SecretKey"
	KeyS3CDNDomain = "S3.CDNDomain"

	KeyOSSEndpoint  = "OSS.Endpoint"
	KeyOSSBucket    = "OSS.Bucket"
	KeyOSSAccessKey = "OSS.AccessKey"
	KeyOSSSecretKey = "OSS.SecretKey"
	KeyOSSCDNDomain = "OSS.CDNDomain"

	KeyLocalDir     = "Local.Dir"
	KeyLocalBaseURL = "Local.BaseURL"

	KeyAccessMode     = "Access.Mode"
	KeyAccessEndpoint = "Access.Endpoint"
	KeyAccessCacheTTL = "Access.CacheTTL"

	KeyLocaleEndpoint = "Locale.Endpoint"

	KeyJWTSecret = "Auth.JWTSecret"
	KeyIDSeed    = "Auth.IDSeed"

	KeyOrphanSweepCron = "Task.OrphanSweepCron"
)

// 定义所有已知的配置键，环境变量覆盖时逐个检查
var allKeys = []string{
	KeyServerPort, KeyServerDebug,
	KeyDBType, KeyDBHost, KeyDBPort, KeyDBUser, KeyDBPassword, KeyDBName,
	KeyRedisAddr, KeyRedisPassword, KeyRedisDB,
	KeyStorageType,
	KeyS3Bucket, KeyS3Region, KeyS3Endpoint, KeyS3AccessKey, KeyS3SecretKey, KeyS3CDNDomain,
	KeyOSSEndpoint, KeyOSSBucket, KeyOSSAccessKey, KeyOSSSecretKey, KeyOSSCDNDomain,
	KeyLocalDir, KeyLocalBaseURL,
	KeyAccessMode, KeyAccessEndpoint, KeyAccessCacheTTL,
	KeyLocaleEndpoint,
	KeyJWTSecret, KeyIDSeed,
	KeyOrphanSweepCron,
}

type Config struct {
	vp *viper.Viper
}

// NewConfig 手动加载 data/conf.ini 并应用 LANYU_ 前缀的环境变量覆盖。
func NewConfig() (*Config, error) {
	vp := viper.New()
	filePath := "data/conf.ini"

	iniCfg, err := ini.Load(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("提示: 未找到 %s，将创建默认配置文件。", filePath)
			if err := createDefaultConfigFile(filePath); err != nil {
				log.Printf("警告: 创建默认配置文件失败: %v，将仅依赖环境变量或内部默认值。", err)
			} else {
				iniCfg, err = ini.Load(filePath)
				if err != nil {
					log.Printf("警告: 重新加载配置文件失败: %v", err)
				}
			}
		} else {
			return nil, fmt.Errorf("解析配置文件 '%s' 失败: %w", filePath, err)
		}
	}

	if iniCfg != nil {
		for _, section := range iniCfg.Sections() {
			for _, key := range section.Keys() {
				viperKey := fmt.Sprintf("%s.%s", section.Name(), key.Name())
				if section.Name() == "DEFAULT" {
					viperKey = key.Name()
				}
				vp.Set(viperKey, key.Value())
			}
		}
	}

	// 环境变量覆盖，例如 LANYU_DATABASE_HOST 覆盖 Database.Host
	envReplacer := strings.NewReplacer(".", "_")
	const envPrefix = "LANYU"

	for _, key := range allKeys {
		envVarName := fmt.Sprintf("%s_%s", envPrefix, envReplacer.Replace(strings.ToUpper(key)))
		if value, found := os.LookupEnv(envVarName); found {
			vp.Set(key, value)
			log.Printf("发现环境变量: %s, 已覆盖配置 '%s'。", envVarName, key)
		}
	}

	log.Println("✅ 配置加载器初始化完成。")
	return &Config{vp: vp}, nil
}

func (c *Config) GetString(key string) string {
	return c.vp.GetString(key)
}

func (c *Config) GetInt(key string) int {
	return c.vp.GetInt(key)
}

func (c *Config) GetBool(key string) bool {
	return c.vp.GetBool(key)
}

// GetStringOrDefault 读取字符串配置，空值时返回给定默认值。
func (c *Config) GetStringOrDefault(key, def string) string {
	if v := c.vp.GetString(key); v != "" {
		return v
	}
	return def
}

// createDefaultConfigFile 写出一份带注释的默认配置，方便首次部署。
func createDefaultConfigFile(filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), os.ModePerm); err != nil {
		return fmt.Errorf("创建配置目录失败: %w", err)
	}

	content := `[System]
Port = 8800
Debug = false

[Database]
; 支持 postgres / sqlite
Type = sqlite
Host =
Port =
User =
Password =
Name =

[Redis]
Addr =
Password =
DB = 0

[Storage]
; 支持 s3 / oss / local
Type = local

[S3]
Bucket =
Region =
Endpoint =
AccessKey =
SecretKey =
CDNDomain =

[OSS]
Endpoint =
Bucket =
AccessKey =
SecretKey =
CDNDomain =

[Local]
Dir = data/storage
BaseURL = http://localhost:8800/media

[Access]
; allow_all 仅用于本地开发，remote 调用上游访问控制服务
Mode = allow_all
Endpoint =
CacheTTL = 60

[Locale]
Endpoint =

[Auth]
JWTSecret =
IDSeed =

[Task]
; 孤儿对象清扫任务的 cron 表达式，留空则禁用
OrphanSweepCron = 0 30 4 * * *
`
	return os.WriteFile(filePath, []byte(content), 0o644)
}
