package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/arnav/gradlink/internal/app/models"
	"github.com/arnav/gradlink/internal/app/models/dto"
	"github.com/arnav/gradlink/internal/app/repositories"
	"github.com/arnav/gradlink/internal/pkg/apperrors"
	"github.com/arnav/gradlink/internal/pkg/markdown"
)

// PostService handles the alumni post feed
type PostService struct {
	postRepo *repositories.PostRepository
	userRepo *repositories.UserRepository
	logger   zerolog.Logger
}

// NewPostService creates a new PostService
func NewPostService(postRepo *repositories.PostRepository, userRepo *repositories.UserRepository, logger zerolog.Logger) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

// CreatePost renders the markdown body to HTML and persists the post.
// Only alumni author posts.
func (s *PostService) CreatePost(ctx context.Context, authorID int64, req dto.CreatePostRequest) (*models.Post, error) {
	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if author.RoleType != models.RoleAlumni {
		return nil, apperrors.NewForbiddenError("only alumni can publish posts")
	}

	bodyHTML, err := markdown.Render(req.Body)
	if err != nil {
		return nil, apperrors.NewBadRequestError("post body could not be rendered")
	}

	post := &models.Post{
		AuthorID: authorID,
		Title:    req.Title,
		Body:     req.Body,
		BodyHTML: bodyHTML,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	post.Author = author
	s.logger.Info().Int64("postID", post.ID).Int64("authorID", authorID).Msg("Post published")
	return post, nil
}

// ListPosts returns the feed with search and pagination
func (s *PostService) ListPosts(ctx context.Context, params dto.PostListParams) ([]models.Post, int64, error) {
	return s.postRepo.GetAll(ctx, params)
}

// GetPost returns one post with author and comment count
func (s *PostService) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// LikePost adds a like and returns the new count. Likes only go up.
func (s *PostService) LikePost(ctx context.Context, postID int64) (int64, error) {
	return s.postRepo.IncrementLikes(ctx, postID)
}

// DeletePost removes a post. Authors may delete their own; admins any.
func (s *PostService) DeletePost(ctx context.Context, postID, callerID int64, callerRole models.RoleType) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != callerID && callerRole != models.RoleAdmin {
		return apperrors.NewForbiddenError("you can only delete your own posts")
	}
	return s.postRepo.Delete(ctx, postID)
}

// AddComment creates a comment on a post
func (s *PostService) AddComment(ctx context.Context, postID, authorID int64, req dto.CreateCommentRequest) (*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Body:     req.Body,
	}
	if err := s.postRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments returns a post's comments, oldest first
func (s *PostService) ListComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.postRepo.GetComments(ctx, postID)
}
