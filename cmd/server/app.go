/*
 * @Description: 应用组装：按依赖顺序初始化基础设施、仓库、服务、处理器和路由
 * @Author: 蓝屿
 * @Date: 2026-03-14 15:10:26
 * @LastEditTime: 2026-07-10 18:02:33
 * @LastEditors: 蓝屿
 */
// lanyu-blog/cmd/server/app.go
package server

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/lanyu-o/lanyu-blog/internal/app/bootstrap"
	"github.com/lanyu-o/lanyu-blog/internal/app/middleware"
	"github.com/lanyu-o/lanyu-blog/internal/app/task"
	"github.com/lanyu-o/lanyu-blog/internal/infra/persistence/database"
	"github.com/lanyu-o/lanyu-blog/internal/infra/persistence/gormrepo"
	"github.com/lanyu-o/lanyu-blog/internal/infra/router"
	"github.com/lanyu-o/lanyu-blog/internal/infra/storage"
	"github.com/lanyu-o/lanyu-blog/pkg/config"
	category_handler "github.com/lanyu-o/lanyu-blog/pkg/handler/category"
	comment_handler "github.com/lanyu-o/lanyu-blog/pkg/handler/comment"
	media_handler "github.com/lanyu-o/lanyu-blog/pkg/handler/media"
	post_handler "github.com/lanyu-o/lanyu-blog/pkg/handler/post"
	"github.com/lanyu-o/lanyu-blog/pkg/idgen"
	access_service "github.com/lanyu-o/lanyu-blog/pkg/service/access"
	category_service "github.com/lanyu-o/lanyu-blog/pkg/service/category"
	comment_service "github.com/lanyu-o/lanyu-blog/pkg/service/comment"
	locale_service "github.com/lanyu-o/lanyu-blog/pkg/service/locale"
	media_service "github.com/lanyu-o/lanyu-blog/pkg/service/media"
	post_service "github.com/lanyu-o/lanyu-blog/pkg/service/post"
)

// App 结构体，封装应用的所有核心组件
type App struct {
	cfg        *config.Config
	engine     *gin.Engine
	taskBroker *task.Broker
}

// NewApp 按依赖顺序组装整个应用，返回 App 和清理函数。
func NewApp() (*App, func(), error) {
	// --- Phase 1: 加载外部配置 ---
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("加载配置失败: %w", err)
	}

	// --- Phase 2: 初始化基础设施 ---
	db, err := database.NewGormDB(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("创建数据库连接失败: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("获取底层连接池失败: %w", err)
	}

	redisClient, err := database.NewRedisClient(context.Background(), cfg)
	if err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("redis 初始化失败: %w", err)
	}

	cleanup := func() {
		log.Println("执行清理操作：关闭数据库连接...")
		sqlDB.Close()
		if redisClient != nil {
			log.Println("关闭 Redis 连接...")
			redisClient.Close()
		}
	}

	store, err := storage.NewAdapter(context.Background(), cfg)
	if err != nil {
		return nil, cleanup, fmt.Errorf("初始化存储适配器失败: %w", err)
	}

	// --- Phase 3: 初始化应用引导程序 ---
	bootstrapper := bootstrap.NewBootstrapper(db)
	if err := bootstrapper.InitializeDatabase(); err != nil {
		return nil, cleanup, fmt.Errorf("数据库初始化失败: %w", err)
	}

	// --- Phase 3.5: 初始化 ID 编码器 ---
	if err := idgen.Init(cfg.GetString(config.KeyIDSeed)); err != nil {
		return nil, cleanup, fmt.Errorf("初始化 ID 编码器失败: %w", err)
	}
	log.Println("✅ ID 编码器初始化成功")

	// --- Phase 4: 初始化数据仓库层 ---
	mediaRepo := gormrepo.NewMediaRepo(db)
	categoryRepo := gormrepo.NewCategoryRepo(db)
	postRepo := gormrepo.NewPostRepo(db)
	commentRepo := gormrepo.NewCommentRepo(db)

	// --- Phase 5: 初始化业务逻辑层 ---
	verifier, err := access_service.NewVerifier(cfg, redisClient)
	if err != nil {
		return nil, cleanup, fmt.Errorf("初始化访问控制校验器失败: %w", err)
	}
	localeChecker := locale_service.NewChecker(cfg)

	mediaSvc := media_service.NewService(mediaRepo, store, verifier)
	categorySvc := category_service.NewService(categoryRepo, postRepo, localeChecker, verifier)
	postSvc := post_service.NewService(postRepo, categoryRepo, localeChecker, verifier)
	commentSvc := comment_service.NewService(commentRepo, verifier)

	// --- Phase 6: 初始化处理器与路由 ---
	mw := middleware.NewMiddleware([]byte(cfg.GetString(config.KeyJWTSecret)))

	r := router.NewRouter(
		media_handler.NewMediaHandler(mediaSvc),
		category_handler.NewCategoryHandler(categorySvc),
		post_handler.NewPostHandler(postSvc),
		comment_handler.NewCommentHandler(commentSvc),
		mw,
	)

	if !cfg.GetBool(config.KeyServerDebug) {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.Default()
	r.Setup(engine)

	// --- Phase 7: 初始化后台任务 ---
	broker, err := task.NewBroker(cfg, store, mediaRepo)
	if err != nil {
		return nil, cleanup, fmt.Errorf("初始化后台任务失败: %w", err)
	}

	app := &App{
		cfg:        cfg,
		engine:     engine,
		taskBroker: broker,
	}
	return app, cleanup, nil
}

// Run 启动后台任务调度器和 HTTP 服务（阻塞）。
func (a *App) Run() error {
	a.taskBroker.Start()

	port := a.cfg.GetString(config.KeyServerPort)
	if port == "" {
		port = "8800"
	}
	fmt.Printf("应用程序启动成功，正在监听端口: %s\n", port)

	return a.engine.Run(":" + port)
}

// Stop 停止后台任务调度器。
func (a *App) Stop() {
	a.taskBroker.Stop()
}
