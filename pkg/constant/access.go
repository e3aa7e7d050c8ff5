/*
 * @Description: 访问控制相关的常量定义
 * @Author: 蓝屿
 * @Date: 2026-03-02 10:12:44
 * @LastEditTime: 2026-04-18 16:40:02
 * @LastEditors: 蓝屿
 */
package constant

// AccessLevel 表示一次操作所需要的权限级别。
type AccessLevel uint8

const (
	AccessRead AccessLevel = iota + 1
	AccessCreate
	AccessUpdate
	AccessDelete
)

// String 返回权限级别的可读名称，用于日志和上游校验请求。
func (l AccessLevel) String() string {
	switch l {
	case AccessRead:
		return "read"
	case AccessCreate:
		return "create"
	case AccessUpdate:
		return "update"
	case AccessDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// 受访问控制保护的资源名称。
const (
	ResourceMedia    = "blog_media"
	ResourceCategory = "blog_category"
	ResourcePost     = "blog_post"
	ResourceComment  = "blog_comment"
)

// SystemUserID 是保留的内部身份，仅用于服务自身的清理操作（例如创建媒体
// 失败后的回滚删除）。该身份不可登录，不会出现在任何上游颁发的凭证里。
const SystemUserID = "system"
