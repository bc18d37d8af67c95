package dto

// CreatePostRequest creates a new post. Body is markdown.
type CreatePostRequest struct {
	Title string `json:"title" binding:"required,min=3,max=255"`
	Body  string `json:"body" binding:"required"`
}

// CreateCommentRequest adds a comment to a post
type CreateCommentRequest struct {
	Body string `json:"body" binding:"required,min=1"`
}

// PostListParams filter the post feed
type PostListParams struct {
	Search   string
	AuthorID *int64
	Page     int
	Size     int
}
