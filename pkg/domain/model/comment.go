package model

import "time"

// Comment 是挂在文章下的单条评论。
type Comment struct {
	ID        string
	CreatedAt time.Time
	PostID    string
	AuthorID  string
	Content   string
}

// CreateCommentRequest 定义了发表评论的请求体。
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// CommentResponse 定义了评论的标准 API 响应结构。
type CommentResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	PostID    string    `json:"post_id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
}
