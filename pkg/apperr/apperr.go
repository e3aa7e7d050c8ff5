/*
 * @Description: 业务错误类型定义，供 Service 层返回、Handler 层转换为 HTTP 状态码
 * @Author: 蓝屿
 * @Date: 2026-03-02 11:02:10
 * @LastEditTime: 2026-05-26 09:31:57
 * @LastEditors: 蓝屿
 */
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// 哨兵错误，由 Handler 转换为对应的 HTTP 状态码。
var (
	// ErrNotFound 表示引用的资源不存在，转换为 404
	ErrNotFound = errors.New("资源未找到")

	// ErrConflict 表示唯一性冲突或重复操作，转换为 409
	ErrConflict = errors.New("资源冲突")

	// ErrNotAnImage 表示对非图片媒体执行了缩略图操作，转换为 422
	ErrNotAnImage = errors.New("目标媒体不是图片")

	// ErrUnauthorized 表示调用方身份缺失或无效，转换为 401
	ErrUnauthorized = errors.New("未经授权的访问")

	// ErrForbidden 表示访问控制服务拒绝了本次操作，转换为 403
	ErrForbidden = errors.New("操作禁止")
)

// FieldError 描述单个字段的校验失败原因。
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError 携带逐字段的校验失败，保证调用方能渲染出可操作的提示。
type ValidationError struct {
	Fields []FieldError
}

// NewValidation 以单个字段错误构造 ValidationError。
func NewValidation(field, reason string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Reason: reason}}}
}

// Append 追加一个字段错误并返回自身，方便链式收集。
func (e *ValidationError) Append(field, reason string) *ValidationError {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: reason})
	return e
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Reason)
	}
	return "字段校验失败: " + strings.Join(parts, "; ")
}

// DecodeError 表示请求载荷（如 base64 内容）无法解码。
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("字段 %s 无法解码: %v", e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// StorageError 表示对象存储操作失败，Detail 始终携带存储后端的诊断信息。
type StorageError struct {
	Op     string
	Detail string
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("存储操作 %s 失败: %s", e.Op, e.Detail)
}

// PersistenceError 表示数据库写入因非唯一性原因失败。
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("持久化操作 %s 失败: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
