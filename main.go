/*
 * @Description:
 * @Author: 蓝屿
 * @Date: 2026-03-02 09:20:15
 * @LastEditTime: 2026-07-10 18:10:44
 * @LastEditors: 蓝屿
 */
package main

import (
	"log"

	"github.com/lanyu-o/lanyu-blog/cmd/server"
)

// @title           Lanyu Blog API
// @version         1.0
// @description     博客内容服务接口文档

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8800
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 在请求头中添加 Bearer Token，格式为: Bearer {token}
func main() {
	app, cleanup, err := server.NewApp()
	if err != nil {
		log.Fatalf("应用初始化失败: %v", err)
	}
	defer cleanup()
	defer app.Stop()

	if err := app.Run(); err != nil {
		log.Fatalf("应用运行失败: %v", err)
	}
}
