/*
 * @Description: 分类相关的控制器方法
 * @Author: 蓝屿
 * @Date: 2026-03-13 10:30:12
 * @LastEditTime: 2026-07-06 17:20:08
 * @LastEditors: 蓝屿
 */
package category_handler

import (
	"net/http"

	"github.com/lanyu-o/lanyu-blog/internal/app/middleware"
	"github.com/lanyu-o/lanyu-blog/pkg/domain/model"
	"github.com/lanyu-o/lanyu-blog/pkg/response"
	"github.com/lanyu-o/lanyu-blog/pkg/service/category"

	"github.com/gin-gonic/gin"
)

// CategoryHandler 封装了分类相关的控制器方法
type CategoryHandler struct {
	categorySvc *category.Service
}

// NewCategoryHandler 是 CategoryHandler 的构造函数
func NewCategoryHandler(categorySvc *category.Service) *CategoryHandler {
	return &CategoryHandler{categorySvc: categorySvc}
}

// Create 创建分类，请求体至少携带一个翻译
// @Summary      创建分类
// @Tags         分类管理
// @Security     BearerAuth
// @Router       /categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req model.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "无效的请求参数: "+err.Error())
		return
	}

	result, err := h.categorySvc.Create(c.Request.Context(), middleware.CallerID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result, "分类创建成功")
}

// Get 按公共 ID 读取分类
func (h *CategoryHandler) Get(c *gin.Context) {
	result, err := h.categorySvc.Get(c.Request.Context(), middleware.CallerID(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result, "获取成功")
}

// List 返回全部分类
func (h *CategoryHandler) List(c *gin.Context) {
	result, err := h.categorySvc.List(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result, "获取成功")
}

// Delete 删除分类，有文章引用时返回 409
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categorySvc.Delete(c.Request.Context(), middleware.CallerID(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil, "分类删除成功")
}

// CreateLocale 为分类追加一个翻译
func (h *CategoryHandler) CreateLocale(c *gin.Context) {
	var in model.CategoryLocaleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, http.StatusBadRequest, "无效的请求参数: "+err.Error())
		return
	}

	result, err := h.categorySvc.CreateLocale(
		c.Request.Context(), middleware.CallerID(c), c.Param("id"), c.Param("locale"), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result, "翻译创建成功")
}

// UpdateLocale 更新分类翻译的部分字段
func (h *CategoryHandler) UpdateLocale(c *gin.Context) {
	var req model.UpdateCategoryLocaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "无效的请求参数: "+err.Error())
		return
	}

	result, err := h.categorySvc.UpdateLocale(
		c.Request.Context(), middleware.CallerID(c), c.Param("id"), c.Param("locale"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result, "翻译更新成功")
}

// DeleteLocale 删除分类翻译，最后一个翻译不可删除
func (h *CategoryHandler) DeleteLocale(c *gin.Context) {
	if err := h.categorySvc.DeleteLocale(
		c.Request.Context(), middleware.CallerID(c), c.Param("id"), c.Param("locale")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil, "翻译删除成功")
}
