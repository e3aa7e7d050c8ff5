/*
 * @Description: 媒体资产相关的控制器方法
 * @Author: 蓝屿
 * @Date: 2026-03-13 09:15:40
 * @LastEditTime: 2026-07-06 16:44:21
 * @LastEditors: 蓝屿
 */
package media_handler

import (
	"net/http"

	"github.com/lanyu-o/lanyu-blog/internal/app/middleware"
	"github.com/lanyu-o/lanyu-blog/pkg/domain/model"
	"github.com/lanyu-o/lanyu-blog/pkg/response"
	"github.com/lanyu-o/lanyu-blog/pkg/service/media"

	"github.com/gin-gonic/gin"
)

// MediaHandler 封装了媒体资产相关的控制器方法
type MediaHandler struct {
	mediaSvc *media.Service
}

// NewMediaHandler 是 MediaHandler 的构造函数
func NewMediaHandler(mediaSvc *media.Service) *MediaHandler {
	return &MediaHandler{mediaSvc: mediaSvc}
}

// Create 处理上传媒体的请求
// @Summary      上传媒体
// @Tags         媒体管理
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Router       /media [post]
func (h *MediaHandler) Create(c *gin.Context) {
	var req model.CreateMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "无效的请求参数: "+err.Error())
		return
	}

	result, err := h.mediaSvc.Create(c.Request.Context(), middleware.CallerID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result, "媒体上传成功")
}

// Read 返回媒体记录和 base64 编码的原始内容
func (h *MediaHandler) Read(c *gin.Context) {
	result, err := h.mediaSvc.Read(c.Request.Context(), middleware.CallerID(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result, "获取成功")
}

// Delete 删除媒体及其全部存储对象
func (h *MediaHandler) Delete(c *gin.Context) {
	if err := h.mediaSvc.Delete(c.Request.Context(), middleware.CallerID(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil, "媒体删除成功")
}

// Filter 按条件检索媒体，至少需要一个条件
// @Summary      检索媒体
// @Tags         媒体管理
// @Security     BearerAuth
// @Router       /media/filter [post]
func (h *MediaHandler) Filter(c *gin.Context) {
	var req model.MediaFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "无效的请求参数: "+err.Error())
		return
	}

	result, err := h.mediaSvc.Filter(c.Request.Context(), middleware.CallerID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result, "检索成功")
}

// CreateThumbnail 为图片追加一个缩略图变体，返回新变体的访问链接
func (h *MediaHandler) CreateThumbnail(c *gin.Context) {
	url, err := h.mediaSvc.CreateThumbnail(
		c.Request.Context(), middleware.CallerID(c), c.Param("id"), c.Param("spec"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"url": url}, "缩略图创建成功")
}

// DeleteThumbnail 删除一个缩略图变体，变体未登记时返回 removed=false
func (h *MediaHandler) DeleteThumbnail(c *gin.Context) {
	removed, err := h.mediaSvc.DeleteThumbnail(
		c.Request.Context(), middleware.CallerID(c), c.Param("id"), c.Param("spec"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"removed": removed}, "缩略图删除完成")
}

// ResolveURL 解析某个变体的访问链接，variant 缺省为原始文件
func (h *MediaHandler) ResolveURL(c *gin.Context) {
	variant := c.DefaultQuery("variant", model.MediaSourceVariant)

	url, err := h.mediaSvc.ResolveURL(c.Request.Context(), middleware.CallerID(c), c.Param("id"), variant)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"url": url}, "解析成功")
}
