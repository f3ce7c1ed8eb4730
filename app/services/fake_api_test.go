package services

import (
	"context"
	"sync"

	"blogfront/app/client"
	"blogfront/app/models"
)

type apiCall struct {
	Name      string
	BaseURL   string
	Settings  models.Settings
	PostID    int
	CommentID int
	Post      models.PostInput
	Comment   models.CommentInput
}

// fakeAPI records every call and answers from its fields.
type fakeAPI struct {
	mu      sync.Mutex
	calls   []apiCall
	posts   []*models.Post
	err     error
	listErr error
	// listHook, if set, runs inside ListPosts before answering.
	listHook func(call int) []*models.Post
}

func (f *fakeAPI) record(c apiCall) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
	return len(f.calls)
}

func (f *fakeAPI) Calls() []apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]apiCall, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *fakeAPI) Names() []string {
	var names []string
	for _, c := range f.Calls() {
		names = append(names, c.Name)
	}
	return names
}

func (f *fakeAPI) ListPosts(ctx context.Context, s models.Settings) ([]*models.Post, error) {
	n := f.record(apiCall{Name: "list", BaseURL: s.BaseURL, Settings: s})
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.listHook != nil {
		return f.listHook(n), nil
	}
	return f.posts, nil
}

func (f *fakeAPI) CreatePost(ctx context.Context, baseURL string, in models.PostInput) (*models.Post, error) {
	f.record(apiCall{Name: "create", BaseURL: baseURL, Post: in})
	if f.err != nil {
		return nil, f.err
	}
	return &models.Post{ID: 99, Title: in.Title, Content: in.Content, Author: in.Author}, nil
}

func (f *fakeAPI) UpdatePost(ctx context.Context, baseURL string, id int, in models.PostInput) (*models.Post, error) {
	f.record(apiCall{Name: "update", BaseURL: baseURL, PostID: id, Post: in})
	if f.err != nil {
		return nil, f.err
	}
	return &models.Post{ID: models.FlexInt(id), Title: in.Title, Content: in.Content, Author: in.Author}, nil
}

func (f *fakeAPI) DeletePost(ctx context.Context, baseURL string, id int) (*client.Message, error) {
	f.record(apiCall{Name: "delete", BaseURL: baseURL, PostID: id})
	if f.err != nil {
		return nil, f.err
	}
	return &client.Message{Message: "deleted"}, nil
}

func (f *fakeAPI) LikePost(ctx context.Context, baseURL string, id int) (*client.Message, error) {
	f.record(apiCall{Name: "like", BaseURL: baseURL, PostID: id})
	if f.err != nil {
		return nil, f.err
	}
	return &client.Message{Message: "Post liked +1"}, nil
}

func (f *fakeAPI) AddComment(ctx context.Context, baseURL string, postID int, in models.CommentInput) (*models.Comment, error) {
	f.record(apiCall{Name: "comment", BaseURL: baseURL, PostID: postID, Comment: in})
	if f.err != nil {
		return nil, f.err
	}
	return &models.Comment{ID: 1, Content: in.Content}, nil
}

func (f *fakeAPI) DeleteComment(ctx context.Context, baseURL string, postID, commentID int) (*client.Message, error) {
	f.record(apiCall{Name: "delete-comment", BaseURL: baseURL, PostID: postID, CommentID: commentID})
	if f.err != nil {
		return nil, f.err
	}
	return &client.Message{Message: "deleted"}, nil
}

func (f *fakeAPI) LikeComment(ctx context.Context, baseURL string, postID, commentID int) (*client.Message, error) {
	f.record(apiCall{Name: "like-comment", BaseURL: baseURL, PostID: postID, CommentID: commentID})
	if f.err != nil {
		return nil, f.err
	}
	return &client.Message{Message: "Post liked +1"}, nil
}
