package model

import (
	"github.com/google/uuid"
)

// Blog is an authored post.
type Blog struct {
	Base
	AuthorID uuid.UUID `json:"author_id" db:"author_id"`
	Title    string    `json:"title" db:"title"`
	Content  string    `json:"content" db:"content"`
}

// BlogComment is a comment on a blog post.
type BlogComment struct {
	Base
	BlogID  uuid.UUID `json:"blog_id" db:"blog_id"`
	UserID  uuid.UUID `json:"user_id" db:"user_id"`
	Content string    `json:"content" db:"content"`
}

type CreateBlogRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type CreateBlogCommentRequest struct {
	Content string `json:"content" binding:"required"`
}
