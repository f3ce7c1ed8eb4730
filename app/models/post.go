package models

import (
	"encoding/json"
	"errors"
	"strings"
)

// Validate checks the input before it is sent to the API.
func (in *PostInput) Validate() error {
	return validate.Struct(in)
}

// Merge fills blank fields of in with the values of the given post,
// so an update never blanks out what was displayed.
func (in *PostInput) Merge(current *Post) {
	if current == nil {
		return
	}
	if strings.TrimSpace(in.Title) == "" {
		in.Title = current.Title
	}
	if strings.TrimSpace(in.Content) == "" {
		in.Content = current.Content
	}
	if strings.TrimSpace(in.Author) == "" {
		in.Author = current.Author
	}
}

// CommentCount returns the number of comments, zero when the API omitted them.
func (p *Post) CommentCount() int {
	return len(p.Comments)
}

// Snapshot returns the JSON serialization of the post as it was rendered.
func (p *Post) Snapshot() (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ParseSnapshot restores a post from a snapshot produced by Snapshot.
func ParseSnapshot(data []byte) (*Post, error) {
	if len(data) == 0 {
		return nil, errors.New("empty snapshot")
	}
	var p Post
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
