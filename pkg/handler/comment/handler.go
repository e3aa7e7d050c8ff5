/*
 * @Description: 评论相关的控制器方法
 * @Author: 蓝屿
 * @Date: 2026-03-13 14:05:49
 * @LastEditTime: 2026-06-30 11:42:16
 * @LastEditors: 蓝屿
 */
package comment_handler

import (
	"net/http"

	"github.com/lanyu-o/lanyu-blog/internal/app/middleware"
	"github.com/lanyu-o/lanyu-blog/pkg/domain/model"
	"github.com/lanyu-o/lanyu-blog/pkg/response"
	"github.com/lanyu-o/lanyu-blog/pkg/service/comment"

	"github.com/gin-gonic/gin"
)

// CommentHandler 封装了评论相关的控制器方法
type CommentHandler struct {
	commentSvc *comment.Service
}

// NewCommentHandler 是 CommentHandler 的构造函数
func NewCommentHandler(commentSvc *comment.Service) *CommentHandler {
	return &CommentHandler{commentSvc: commentSvc}
}

// Create 在文章下发表评论
func (h *CommentHandler) Create(c *gin.Context) {
	var req model.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "无效的请求参数: "+err.Error())
		return
	}

	result, err := h.commentSvc.Create(c.Request.Context(), middleware.CallerID(c), c.Param("id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result, "评论发表成功")
}

// ListByPost 返回文章下的全部评论
func (h *CommentHandler) ListByPost(c *gin.Context) {
	result, err := h.commentSvc.ListByPost(c.Request.Context(), middleware.CallerID(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result, "获取成功")
}

// Delete 删除一条评论
func (h *CommentHandler) Delete(c *gin.Context) {
	if err := h.commentSvc.Delete(c.Request.Context(), middleware.CallerID(c), c.Param("commentId")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil, "评论删除成功")
}
