/*
 * @Description: 统一的 API 返回结构与错误映射
 * @Author: 蓝屿
 * @Date: 2026-03-02 11:20:31
 * @LastEditTime: 2026-05-26 10:02:14
 * @LastEditors: 蓝屿
 */
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lanyu-o/lanyu-blog/pkg/apperr"
)

// Response 是统一的API返回结构体
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: message,
		Data:    data,
	})
}

// Fail 失败响应
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

// FailWithData 失败响应，同时携带结构化的错误详情（例如逐字段的校验失败列表）。
func FailWithData(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// Error 把 Service 层返回的业务错误转换为对应的 HTTP 响应。
// 校验类错误会把字段级详情放进 data，保证前端能逐字段渲染提示。
func Error(c *gin.Context, err error) {
	var (
		vErr *apperr.ValidationError
		dErr *apperr.DecodeError
		sErr *apperr.StorageError
		pErr *apperr.PersistenceError
	)

	switch {
	case errors.As(err, &vErr):
		FailWithData(c, http.StatusBadRequest, "字段校验失败", vErr.Fields)
	case errors.As(err, &dErr):
		FailWithData(c, http.StatusBadRequest, "请求载荷解码失败", []apperr.FieldError{
			{Field: dErr.Field, Reason: "无法解码"},
		})
	case errors.Is(err, apperr.ErrNotFound):
		Fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, apperr.ErrConflict):
		Fail(c, http.StatusConflict, err.Error())
	case errors.Is(err, apperr.ErrNotAnImage):
		Fail(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, apperr.ErrUnauthorized):
		Fail(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, apperr.ErrForbidden):
		Fail(c, http.StatusForbidden, err.Error())
	case errors.As(err, &sErr):
		// 存储后端失败，携带后端诊断信息
		Fail(c, http.StatusBadGateway, sErr.Error())
	case errors.As(err, &pErr):
		Fail(c, http.StatusInternalServerError, pErr.Error())
	default:
		Fail(c, http.StatusInternalServerError, err.Error())
	}
}
