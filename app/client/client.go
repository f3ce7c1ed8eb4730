package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"blogfront/app/models"
)

const userAgent = "blogfront/1.0"

// ErrNoBaseURL is returned when an operation is attempted without a base URL.
var ErrNoBaseURL = errors.New("api base url is not set")

// APIError is a non-2xx answer from the blog API.
type APIError struct {
	Method  string
	URL     string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d: %s", e.Method, e.URL, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.Status, http.StatusText(e.Status))
}

// Message is the acknowledgement body returned by delete and like calls.
type Message struct {
	Message string `json:"message"`
}

// Client talks to the blog REST API. The base URL is passed per call so one
// client can serve many browsers, each with its own configured API.
type Client struct {
	httpClient *http.Client
}

// New creates a Client whose requests time out after timeout.
func New(timeout time.Duration) *Client {
	return &Client{httpClient: &http.Client{Timeout: timeout}}
}

// ListPosts loads the post collection, or searches it when s has a query.
// The posts are returned in the order the API sent them.
func (c *Client) ListPosts(ctx context.Context, s models.Settings) ([]*models.Post, error) {
	var posts []*models.Post
	if err := c.do(ctx, http.MethodGet, s.BaseURL, s.ListPath(), nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// CreatePost sends POST /posts.
func (c *Client) CreatePost(ctx context.Context, baseURL string, in models.PostInput) (*models.Post, error) {
	var post models.Post
	if err := c.do(ctx, http.MethodPost, baseURL, "/posts", in, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost sends PUT /posts/{id}.
func (c *Client) UpdatePost(ctx context.Context, baseURL string, id int, in models.PostInput) (*models.Post, error) {
	var post models.Post
	if err := c.do(ctx, http.MethodPut, baseURL, postPath(id), in, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost sends DELETE /posts/{id}.
func (c *Client) DeletePost(ctx context.Context, baseURL string, id int) (*Message, error) {
	var msg Message
	if err := c.do(ctx, http.MethodDelete, baseURL, postPath(id), nil, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// LikePost sends POST /posts/{id}/like.
func (c *Client) LikePost(ctx context.Context, baseURL string, id int) (*Message, error) {
	var msg Message
	if err := c.do(ctx, http.MethodPost, baseURL, postPath(id)+"/like", nil, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// AddComment sends POST /posts/{id}/comments.
func (c *Client) AddComment(ctx context.Context, baseURL string, postID int, in models.CommentInput) (*models.Comment, error) {
	var comment models.Comment
	if err := c.do(ctx, http.MethodPost, baseURL, postPath(postID)+"/comments", in, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment sends DELETE /posts/{id}/comments/{commentId}.
func (c *Client) DeleteComment(ctx context.Context, baseURL string, postID, commentID int) (*Message, error) {
	var msg Message
	if err := c.do(ctx, http.MethodDelete, baseURL, commentPath(postID, commentID), nil, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// LikeComment sends POST /posts/{id}/comments/{commentId}/like.
func (c *Client) LikeComment(ctx context.Context, baseURL string, postID, commentID int) (*Message, error) {
	var msg Message
	if err := c.do(ctx, http.MethodPost, baseURL, commentPath(postID, commentID)+"/like", nil, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func postPath(id int) string {
	return "/posts/" + strconv.Itoa(id)
}

func commentPath(postID, commentID int) string {
	return postPath(postID) + "/comments/" + strconv.Itoa(commentID)
}

// do sends one request and decodes the JSON answer into out.
func (c *Client) do(ctx context.Context, method, baseURL, path string, body, out interface{}) error {
	if baseURL == "" {
		return ErrNoBaseURL
	}
	url := baseURL + path

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Method: method, URL: url, Status: resp.StatusCode}
		var payload struct {
			Error string `json:"Error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
			apiErr.Message = payload.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: failed to decode response: %w", method, url, err)
	}
	return nil
}
