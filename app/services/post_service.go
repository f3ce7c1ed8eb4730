package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"blogfront/app/client"
	"blogfront/app/models"
	"blogfront/app/repositories"
)

// ErrStaleResponse is returned by Load when a newer load for the same
// browser was issued before this one's response arrived.
var ErrStaleResponse = errors.New("stale response discarded")

// API is the subset of the blog REST API the front end uses.
type API interface {
	ListPosts(ctx context.Context, s models.Settings) ([]*models.Post, error)
	CreatePost(ctx context.Context, baseURL string, in models.PostInput) (*models.Post, error)
	UpdatePost(ctx context.Context, baseURL string, id int, in models.PostInput) (*models.Post, error)
	DeletePost(ctx context.Context, baseURL string, id int) (*client.Message, error)
	LikePost(ctx context.Context, baseURL string, id int) (*client.Message, error)
	AddComment(ctx context.Context, baseURL string, postID int, in models.CommentInput) (*models.Comment, error)
	DeleteComment(ctx context.Context, baseURL string, postID, commentID int) (*client.Message, error)
	LikeComment(ctx context.Context, baseURL string, postID, commentID int) (*client.Message, error)
}

// PostService loads the post list for a browser and runs post mutations.
// Every mutation but Update is followed by a full reload of the list.
type PostService struct {
	api       API
	snapshots repositories.SnapshotRepository
	board     *Board
}

// NewPostService creates a new PostService
func NewPostService(api API, snapshots repositories.SnapshotRepository, board *Board) *PostService {
	return &PostService{
		api:       api,
		snapshots: snapshots,
		board:     board,
	}
}

// Current returns what the browser has rendered right now.
func (s *PostService) Current(clientID string) ([]*models.Post, bool) {
	return s.board.Current(clientID)
}

// Load fetches the post list and installs it as the browser's render.
// A response that lost the race against a newer load is dropped and
// ErrStaleResponse is returned; the newer render stays in place.
func (s *PostService) Load(ctx context.Context, clientID string, settings models.Settings) ([]*models.Post, error) {
	settings = settings.WithDefaults()
	if err := settings.Validate(); err != nil {
		log.Printf("Error: invalid settings: %v", err)
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	seq := s.board.Begin(clientID)
	posts, err := s.api.ListPosts(ctx, settings)
	if err != nil {
		log.Printf("Error: %v", err)
		return nil, err
	}

	applied := s.board.Apply(clientID, seq, posts, func() {
		if err := s.snapshots.ReplaceAll(clientID, posts); err != nil {
			log.Printf("Error: failed to store post snapshots: %v", err)
		}
	})
	if !applied {
		log.Printf("Discarded stale load #%d for %s", seq, clientID)
		return nil, ErrStaleResponse
	}
	return posts, nil
}

// Create sends a new post and reloads the list.
func (s *PostService) Create(ctx context.Context, clientID string, settings models.Settings, in models.PostInput) (*models.Post, error) {
	settings = settings.WithDefaults()
	if err := checkBaseURL(settings); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		log.Printf("Error: invalid post: %v", err)
		return nil, fmt.Errorf("invalid post: %w", err)
	}

	post, err := s.api.CreatePost(ctx, settings.BaseURL, in)
	if err != nil {
		log.Printf("Error: %v", err)
		return nil, err
	}
	log.Printf("Post added: %d %q", post.ID, post.Title)

	s.reload(ctx, clientID, settings)
	return post, nil
}

// Update sends the edited post. Blank fields fall back to the values the
// browser is displaying: the post in its current render, or the stored
// snapshot when the render is gone.
// On success the post is updated in place in the current render.
func (s *PostService) Update(ctx context.Context, clientID string, settings models.Settings, id int, in models.PostInput) (*models.Post, error) {
	settings = settings.WithDefaults()
	if err := checkBaseURL(settings); err != nil {
		return nil, err
	}

	in.Merge(s.displayed(clientID, id))
	if err := in.Validate(); err != nil {
		log.Printf("Error: invalid post: %v", err)
		return nil, fmt.Errorf("invalid post: %w", err)
	}

	post, err := s.api.UpdatePost(ctx, settings.BaseURL, id, in)
	if err != nil {
		log.Printf("Error: %v", err)
		return nil, err
	}
	log.Printf("Post updated: %d", id)

	s.board.Patch(clientID, id, func(p *models.Post) {
		p.Title = post.Title
		p.Content = post.Content
		p.Author = post.Author
	}, func(posts []*models.Post) {
		if err := s.snapshots.ReplaceAll(clientID, posts); err != nil {
			log.Printf("Error: failed to store post snapshots: %v", err)
		}
	})
	return post, nil
}

// Delete removes a post and reloads the list.
func (s *PostService) Delete(ctx context.Context, clientID string, settings models.Settings, id int) error {
	settings = settings.WithDefaults()
	if err := checkBaseURL(settings); err != nil {
		return err
	}

	msg, err := s.api.DeletePost(ctx, settings.BaseURL, id)
	if err != nil {
		log.Printf("Error: %v", err)
		return err
	}
	log.Printf("Post deleted: %s", msg.Message)

	s.reload(ctx, clientID, settings)
	return nil
}

// Like adds a like to a post and reloads the list.
func (s *PostService) Like(ctx context.Context, clientID string, settings models.Settings, id int) error {
	settings = settings.WithDefaults()
	if err := checkBaseURL(settings); err != nil {
		return err
	}

	msg, err := s.api.LikePost(ctx, settings.BaseURL, id)
	if err != nil {
		log.Printf("Error: %v", err)
		return err
	}
	log.Printf("Post liked: %s", msg.Message)

	s.reload(ctx, clientID, settings)
	return nil
}

// Snapshot returns the post as it was last rendered for the browser.
func (s *PostService) Snapshot(clientID string, id int) (*models.Post, error) {
	return s.snapshots.Get(clientID, id)
}

// displayed returns the post as the browser shows it, or nil if neither the
// render nor the snapshot store has it.
func (s *PostService) displayed(clientID string, id int) *models.Post {
	posts, _ := s.board.Current(clientID)
	for _, p := range posts {
		if p.ID.Int() == id {
			return p
		}
	}
	post, err := s.snapshots.Get(clientID, id)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			log.Printf("Error: failed to read snapshot of post %d: %v", id, err)
		}
		return nil
	}
	return post
}

// reload refreshes the list after a mutation. Its failure does not undo the
// mutation, so it is only logged.
func (s *PostService) reload(ctx context.Context, clientID string, settings models.Settings) {
	if _, err := s.Load(ctx, clientID, settings); err != nil && !errors.Is(err, ErrStaleResponse) {
		log.Printf("Error: reload after mutation failed: %v", err)
	}
}

func checkBaseURL(settings models.Settings) error {
	if settings.BaseURL == "" {
		log.Printf("Error: %v", client.ErrNoBaseURL)
		return client.ErrNoBaseURL
	}
	return nil
}
