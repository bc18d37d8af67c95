package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arnav/gradlink/internal/app/models"
	"github.com/arnav/gradlink/internal/app/models/dto"
	"github.com/arnav/gradlink/internal/pkg/apperrors"
	"github.com/arnav/gradlink/internal/pkg/logger"
)

// PostRepository handles post and comment database operations
type PostRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new post and sets its ID
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	sql, args, err := r.sb.Insert("posts").
		Columns("author_id", "title", "body", "body_html").
		Values(post.AuthorID, post.Title, post.Body, post.BodyHTML).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create post query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Int64("authorID", post.AuthorID).Msg("Error executing create post query")
		return fmt.Errorf("error creating post: %w", err)
	}
	return nil
}

// GetByID retrieves a post with its author and comment count
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `
		SELECT p.id, p.author_id, p.title, p.body, p.body_html, p.likes,
			p.created_at, p.updated_at,
			u.first_name, u.last_name, u.department, u.profile_photo_url,
			(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comment_count
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.id = $1`

	post := &models.Post{}
	author := &models.User{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&post.ID, &post.AuthorID, &post.Title, &post.Body, &post.BodyHTML, &post.Likes,
		&post.CreatedAt, &post.UpdatedAt,
		&author.FirstName, &author.LastName, &author.Department, &author.ProfilePhotoURL,
		&post.CommentCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPostNotFound
		}
		logger.Error().Err(err).Int64("postID", id).Msg("Error scanning post row")
		return nil, fmt.Errorf("error getting post by ID: %w", err)
	}
	author.ID = post.AuthorID
	post.Author = author
	return post, nil
}

// GetAll retrieves the post feed with filtering and pagination. Search
// matches title and body case-insensitively.
func (r *PostRepository) GetAll(ctx context.Context, params dto.PostListParams) ([]models.Post, int64, error) {
	builder := r.sb.Select(
		"p.id", "p.author_id", "p.title", "p.body", "p.body_html", "p.likes",
		"p.created_at", "p.updated_at",
		"u.first_name", "u.last_name", "u.department", "u.profile_photo_url",
		"(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comment_count",
		"COUNT(*) OVER() AS total_count").
		From("posts p").
		Join("users u ON u.id = p.author_id")

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"p.title": pattern},
			squirrel.ILike{"p.body": pattern},
		})
	}
	if params.AuthorID != nil {
		builder = builder.Where(squirrel.Eq{"p.author_id": *params.AuthorID})
	}

	offset := (params.Page - 1) * params.Size
	sql, args, err := builder.
		OrderBy("p.created_at DESC").
		Limit(uint64(params.Size)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build post list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing post list query")
		return nil, 0, fmt.Errorf("error querying posts: %w", err)
	}
	defer rows.Close()

	posts := []models.Post{}
	var total int64
	for rows.Next() {
		var post models.Post
		var author models.User
		err := rows.Scan(
			&post.ID, &post.AuthorID, &post.Title, &post.Body, &post.BodyHTML, &post.Likes,
			&post.CreatedAt, &post.UpdatedAt,
			&author.FirstName, &author.LastName, &author.Department, &author.ProfilePhotoURL,
			&post.CommentCount, &total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning post row: %w", err)
		}
		author.ID = post.AuthorID
		post.Author = &author
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating post rows: %w", err)
	}
	return posts, total, nil
}

// IncrementLikes adds one like to a post. Likes only ever go up.
func (r *PostRepository) IncrementLikes(ctx context.Context, postID int64) (int64, error) {
	var likes int64
	err := r.db.QueryRow(ctx,
		"UPDATE posts SET likes = likes + 1, updated_at = NOW() WHERE id = $1 RETURNING likes",
		postID).Scan(&likes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrPostNotFound
		}
		return 0, fmt.Errorf("error incrementing likes: %w", err)
	}
	return likes, nil
}

// Delete removes a post; comments go with it via cascade
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, "DELETE FROM posts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("error deleting post: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}
	return nil
}

// CreateComment inserts a comment on a post
func (r *PostRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	sql, args, err := r.sb.Insert("comments").
		Columns("post_id", "author_id", "body").
		Values(comment.PostID, comment.AuthorID, comment.Body).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create comment query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating comment: %w", err)
	}
	return nil
}

// GetComments retrieves all comments for a post, oldest first
func (r *PostRepository) GetComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	query := `
		SELECT c.id, c.post_id, c.author_id, c.body, c.created_at,
			u.first_name, u.last_name, u.profile_photo_url
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC`

	rows, err := r.db.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("error querying comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		var author models.User
		err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Body, &c.CreatedAt,
			&author.FirstName, &author.LastName, &author.ProfilePhotoURL)
		if err != nil {
			return nil, fmt.Errorf("error scanning comment row: %w", err)
		}
		author.ID = c.AuthorID
		c.Author = &author
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}
	return comments, nil
}
