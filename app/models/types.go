package models

// Post represents a blog post as served by the blog API.
type Post struct {
	ID       FlexInt    `json:"id"`
	Title    string     `json:"title"`
	Content  string     `json:"content"`
	Author   string     `json:"author"`
	Date     string     `json:"date"`
	Likes    FlexInt    `json:"likes"`
	Comments []*Comment `json:"comments,omitempty"`
}

// Comment represents a comment on a blog post.
type Comment struct {
	ID      FlexInt `json:"id"`
	Content string  `json:"content"`
	Likes   FlexInt `json:"likes"`
}

// PostInput is the body sent when creating or updating a post.
type PostInput struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
	Author  string `json:"author" validate:"required"`
}

// CommentInput is the body sent when adding a comment.
type CommentInput struct {
	Content string `json:"content" validate:"required"`
}

// Settings holds everything an operation needs to know about where and how
// to talk to the blog API.
type Settings struct {
	BaseURL   string `validate:"required,url,httpurl"`
	SortField string `validate:"oneof=title content author date"`
	Direction string `validate:"oneof=asc desc"`
	Query     string `validate:"-"`
	Page      int    `validate:"gte=0"`
	Limit     int    `validate:"gte=0"`
}
