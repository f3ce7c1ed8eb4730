package models

import "strings"

// Validate checks the comment input before it is sent to the API.
func (in *CommentInput) Validate() error {
	in.Content = strings.TrimSpace(in.Content)
	return validate.Struct(in)
}
