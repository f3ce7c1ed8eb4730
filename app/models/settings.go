package models

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultSortField = "date"
	DefaultDirection = "desc"
	// DefaultPageSize is the number of posts the API returns when no limit is sent.
	DefaultPageSize = 10
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("httpurl", func(fl validator.FieldLevel) bool {
		u, err := url.Parse(fl.Field().String())
		if err != nil {
			return false
		}
		return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
	})
	return v
}

// WithDefaults returns a copy of s with empty sort settings replaced by the
// defaults and the base URL trimmed of surrounding space and trailing slashes.
func (s Settings) WithDefaults() Settings {
	s.BaseURL = strings.TrimRight(strings.TrimSpace(s.BaseURL), "/")
	if s.SortField == "" {
		s.SortField = DefaultSortField
	}
	if s.Direction == "" {
		s.Direction = DefaultDirection
	}
	s.Query = strings.TrimSpace(s.Query)
	return s
}

// Validate checks that the settings can be used to build a request.
func (s *Settings) Validate() error {
	return validate.Struct(s)
}

// IsSearch reports whether a load should hit the search endpoint.
func (s Settings) IsSearch() bool {
	return strings.TrimSpace(s.Query) != ""
}

// ListPath returns the API path and query for loading posts.
// A plain load carries exactly sort and direction; a search adds q first.
// Page and limit are only added to a plain load when they differ from the
// API defaults. The search endpoint is not paged.
func (s Settings) ListPath() string {
	path := "/posts?"
	var b strings.Builder
	if s.IsSearch() {
		path = "/posts/search?"
		b.WriteString("q=" + url.QueryEscape(strings.TrimSpace(s.Query)) + "&")
	}
	b.WriteString("sort=" + url.QueryEscape(s.SortField))
	b.WriteString("&direction=" + url.QueryEscape(s.Direction))
	if s.IsSearch() {
		return path + b.String()
	}
	if s.Page > 1 {
		b.WriteString("&page=" + strconv.Itoa(s.Page))
	}
	if s.Limit > 0 && s.Limit != DefaultPageSize {
		b.WriteString("&limit=" + strconv.Itoa(s.Limit))
	}
	return path + b.String()
}
