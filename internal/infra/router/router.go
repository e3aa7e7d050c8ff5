/*
 * @Description: 应用路由表
 * @Author: 蓝屿
 * @Date: 2026-03-13 15:32:08
 * @LastEditTime: 2026-07-08 14:26:31
 * @LastEditors: 蓝屿
 */
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/lanyu-o/lanyu-blog/internal/app/middleware"
	category_handler "github.com/lanyu-o/lanyu-blog/pkg/handler/category"
	comment_handler "github.com/lanyu-o/lanyu-blog/pkg/handler/comment"
	media_handler "github.com/lanyu-o/lanyu-blog/pkg/handler/media"
	post_handler "github.com/lanyu-o/lanyu-blog/pkg/handler/post"
)

// NoCacheMiddleware 全局反缓存中间件，确保所有API响应都不会被CDN缓存
func NoCacheMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-cache, no-store, must-revalidate, private, max-age=0")
		c.Header("Pragma", "no-cache")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Next()
	}
}

// Router 封装了应用的所有路由和其依赖的处理器。
type Router struct {
	mediaHandler    *media_handler.MediaHandler
	categoryHandler *category_handler.CategoryHandler
	postHandler     *post_handler.PostHandler
	commentHandler  *comment_handler.CommentHandler
	mw              *middleware.Middleware
}

// NewRouter 是 Router 的构造函数。
func NewRouter(
	mediaHandler *media_handler.MediaHandler,
	categoryHandler *category_handler.CategoryHandler,
	postHandler *post_handler.PostHandler,
	commentHandler *comment_handler.CommentHandler,
	mw *middleware.Middleware,
) *Router {
	return &Router{
		mediaHandler:    mediaHandler,
		categoryHandler: categoryHandler,
		postHandler:     postHandler,
		commentHandler:  commentHandler,
		mw:              mw,
	}
}

// Setup 把全部路由挂到 gin 引擎上。
func (r *Router) Setup(engine *gin.Engine) {
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Cors())

	api := engine.Group("/api")
	api.Use(NoCacheMiddleware())
	api.Use(middleware.RateLimit(120, 240))
	api.Use(r.mw.JWTAuth())

	mediaGroup := api.Group("/media")
	{
		mediaGroup.POST("", r.mediaHandler.Create)
		mediaGroup.POST("/filter", r.mediaHandler.Filter)
		mediaGroup.GET("/:id", r.mediaHandler.Read)
		mediaGroup.DELETE("/:id", r.mediaHandler.Delete)
		mediaGroup.GET("/:id/url", r.mediaHandler.ResolveURL)
		mediaGroup.POST("/:id/thumbnail/:spec", r.mediaHandler.CreateThumbnail)
		mediaGroup.DELETE("/:id/thumbnail/:spec", r.mediaHandler.DeleteThumbnail)
	}

	categoryGroup := api.Group("/categories")
	{
		categoryGroup.POST("", r.categoryHandler.Create)
		categoryGroup.GET("", r.categoryHandler.List)
		categoryGroup.GET("/:id", r.categoryHandler.Get)
		categoryGroup.DELETE("/:id", r.categoryHandler.Delete)
		categoryGroup.POST("/:id/locales/:locale", r.categoryHandler.CreateLocale)
		categoryGroup.PUT("/:id/locales/:locale", r.categoryHandler.UpdateLocale)
		categoryGroup.DELETE("/:id/locales/:locale", r.categoryHandler.DeleteLocale)
	}

	postGroup := api.Group("/posts")
	{
		postGroup.POST("", r.postHandler.Create)
		postGroup.GET("", r.postHandler.List)
		postGroup.GET("/:id", r.postHandler.Get)
		postGroup.DELETE("/:id", r.postHandler.Delete)
		postGroup.POST("/:id/locales/:locale", r.postHandler.AddLocale)
		postGroup.PUT("/:id/locales/:locale", r.postHandler.UpdateLocale)
		postGroup.DELETE("/:id/locales/:locale", r.postHandler.DeleteLocale)

		postGroup.POST("/:id/comments", r.commentHandler.Create)
		postGroup.GET("/:id/comments", r.commentHandler.ListByPost)
		postGroup.DELETE("/:id/comments/:commentId", r.commentHandler.Delete)
	}
}
