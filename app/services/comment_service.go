package services

import (
	"context"
	"fmt"
	"log"

	"blogfront/app/models"
)

// CommentService runs comment mutations. Comments only exist under their
// post's path, so every call takes the post id too.
type CommentService struct {
	api   API
	posts *PostService
}

// NewCommentService creates a new CommentService
func NewCommentService(api API, posts *PostService) *CommentService {
	return &CommentService{
		api:   api,
		posts: posts,
	}
}

// Add posts a comment and reloads the list.
func (s *CommentService) Add(ctx context.Context, clientID string, settings models.Settings, postID int, in models.CommentInput) (*models.Comment, error) {
	settings = settings.WithDefaults()
	if err := checkBaseURL(settings); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		log.Printf("Error: invalid comment: %v", err)
		return nil, fmt.Errorf("invalid comment: %w", err)
	}

	comment, err := s.api.AddComment(ctx, settings.BaseURL, postID, in)
	if err != nil {
		log.Printf("Error: %v", err)
		return nil, err
	}
	log.Printf("Comment added: %d on post %d", comment.ID, postID)

	s.posts.reload(ctx, clientID, settings)
	return comment, nil
}

// Delete removes a comment and reloads the list.
func (s *CommentService) Delete(ctx context.Context, clientID string, settings models.Settings, postID, commentID int) error {
	settings = settings.WithDefaults()
	if err := checkBaseURL(settings); err != nil {
		return err
	}

	msg, err := s.api.DeleteComment(ctx, settings.BaseURL, postID, commentID)
	if err != nil {
		log.Printf("Error: %v", err)
		return err
	}
	log.Printf("Comment deleted: %s", msg.Message)

	s.posts.reload(ctx, clientID, settings)
	return nil
}

// Like adds a like to a comment and reloads the list.
func (s *CommentService) Like(ctx context.Context, clientID string, settings models.Settings, postID, commentID int) error {
	settings = settings.WithDefaults()
	if err := checkBaseURL(settings); err != nil {
		return err
	}

	msg, err := s.api.LikeComment(ctx, settings.BaseURL, postID, commentID)
	if err != nil {
		log.Printf("Error: %v", err)
		return err
	}
	log.Printf("Comment liked: %s", msg.Message)

	s.posts.reload(ctx, clientID, settings)
	return nil
}
