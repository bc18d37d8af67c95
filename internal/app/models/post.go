package models

import (
	"time"
)

// Post defines the post model based on the 'posts' table.
// Posts are authored by alumni; likes only ever increment and the comment
// count is derived from the comments table, never stored.
type Post struct {
	ID           int64     `json:"id" db:"id"`
	AuthorID     int64     `json:"authorId" db:"author_id"`
	Title        string    `json:"title" db:"title"`
	Body         string    `json:"body" db:"body"`          // Raw markdown as submitted
	BodyHTML     string    `json:"bodyHtml" db:"body_html"` // Rendered HTML, produced at write time
	Likes        int64     `json:"likes" db:"likes"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
	Author       *User     `json:"author,omitempty"`      // Relation, no db tag
	CommentCount int64     `json:"commentCount" db:"-"`   // Derived via COUNT over comments
}

// Comment defines the comment model based on the 'comments' table
type Comment struct {
	ID        int64     `json:"id" db:"id"`
	PostID    int64     `json:"postId" db:"post_id"`
	AuthorID  int64     `json:"authorId" db:"author_id"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	Author    *User     `json:"author,omitempty"` // Relation, no db tag
}
