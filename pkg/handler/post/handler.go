/*
 * @Description: 文章相关的控制器方法
 * @Author: 蓝屿
 * @Date: 2026-03-13 11:18:27
 * @LastEditTime: 2026-07-07 09:36:55
 * @LastEditors: 蓝屿
 */
package post_handler

import (
	"net/http"

	"github.com/lanyu-o/lanyu-blog/internal/app/middleware"
	"github.com/lanyu-o/lanyu-blog/pkg/domain/model"
	"github.com/lanyu-o/lanyu-blog/pkg/response"
	"github.com/lanyu-o/lanyu-blog/pkg/service/post"

	"github.com/gin-gonic/gin"
)

// PostHandler 封装了文章相关的控制器方法
type PostHandler struct {
	postSvc *post.Service
}

// NewPostHandler 是 PostHandler 的构造函数
func NewPostHandler(postSvc *post.Service) *PostHandler {
	return &PostHandler{postSvc: postSvc}
}

// Create 创建文章，首个翻译随文章一起创建
// @Summary      创建文章
// @Tags         文章管理
// @Security     BearerAuth
// @Router       /posts [post]
func (h *PostHandler) Create(c *gin.Context) {
	var req model.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "无效的请求参数: "+err.Error())
		return
	}

	result, err := h.postSvc.Create(c.Request.Context(), middleware.CallerID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result, "文章创建成功")
}

// Get 按公共 ID 读取文章
func (h *PostHandler) Get(c *gin.Context) {
	result, err := h.postSvc.Get(c.Request.Context(), middleware.CallerID(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result, "获取成功")
}

// List 返回全部文章
func (h *PostHandler) List(c *gin.Context) {
	result, err := h.postSvc.List(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result, "获取成功")
}

// Delete 级联删除文章
func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.postSvc.Delete(c.Request.Context(), middleware.CallerID(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil, "文章删除成功")
}

// AddLocale 为文章追加一个翻译
func (h *PostHandler) AddLocale(c *gin.Context) {
	var in model.PostLocaleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, http.StatusBadRequest, "无效的请求参数: "+err.Error())
		return
	}

	result, err := h.postSvc.AddLocale(
		c.Request.Context(), middleware.CallerID(c), c.Param("id"), c.Param("locale"), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result, "翻译创建成功")
}

// UpdateLocale 更新文章翻译的部分字段
func (h *PostHandler) UpdateLocale(c *gin.Context) {
	var req model.UpdatePostLocaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "无效的请求参数: "+err.Error())
		return
	}

	result, err := h.postSvc.UpdateLocale(
		c.Request.Context(), middleware.CallerID(c), c.Param("id"), c.Param("locale"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result, "翻译更新成功")
}

// DeleteLocale 删除文章翻译，最后一个翻译不可删除
func (h *PostHandler) DeleteLocale(c *gin.Context) {
	if err := h.postSvc.DeleteLocale(
		c.Request.Context(), middleware.CallerID(c), c.Param("id"), c.Param("locale")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil, "翻译删除成功")
}
