package controllers

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"blogfront/app/middleware"
	"blogfront/app/models"

	"golang.org/x/crypto/sha3"
)

var (
	sortFields = []string{"date", "title", "content", "author"}
	directions = []string{"desc", "asc"}
)

// postView is one rendered post element.
type postView struct {
	Post       *models.Post
	Snapshot   string
	Settings   models.Settings
	Editing    bool
	Commenting bool
}

// pageData feeds the posts/index template.
type pageData struct {
	Settings   models.Settings
	SortFields []string
	Directions []string
	Form       models.PostInput
	Posts      []postView
	Loaded     bool
	HasPrev    bool
	HasNext    bool
	Prev       models.Settings
	Next       models.Settings
}

// pageOptions say which post, if any, has its edit or comment form open and
// what the create form should still hold.
type pageOptions struct {
	EditingID    int
	CommentingID int
	Form         models.PostInput
}

// Renderer turns a browser's current render into an HTML page.
type Renderer struct {
	templates *template.Template
}

// NewRenderer creates a Renderer over parsed page templates.
func NewRenderer(templates *template.Template) *Renderer {
	return &Renderer{templates: templates}
}

func (rd *Renderer) page(s models.Settings, posts []*models.Post, loaded bool, opts pageOptions) pageData {
	data := pageData{
		Settings:   s,
		SortFields: sortFields,
		Directions: directions,
		Form:       opts.Form,
		Loaded:     loaded,
	}
	for _, p := range posts {
		snap, err := p.Snapshot()
		if err != nil {
			log.Printf("Error: failed to serialize post %d: %v", p.ID, err)
		}
		data.Posts = append(data.Posts, postView{
			Post:       p,
			Snapshot:   snap,
			Settings:   s,
			Editing:    opts.EditingID != 0 && p.ID.Int() == opts.EditingID,
			Commenting: opts.CommentingID != 0 && p.ID.Int() == opts.CommentingID,
		})
	}

	// The search endpoint returns every match in one response.
	if s.IsSearch() {
		return data
	}
	pageSize := s.Limit
	if pageSize <= 0 {
		pageSize = models.DefaultPageSize
	}
	current := s.Page
	if current < 1 {
		current = 1
	}
	data.Prev = s
	data.Prev.Page = current - 1
	data.Next = s
	data.Next.Page = current + 1
	data.HasPrev = loaded && current > 1
	data.HasNext = loaded && len(posts) >= pageSize
	return data
}

// Render writes the page. The body is built first so a template failure
// never leaves a half-written page, and GET requests get an ETag so an
// unchanged list answers 304.
func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, s models.Settings, posts []*models.Post, loaded bool, opts pageOptions) {
	var buf bytes.Buffer
	if err := rd.templates.ExecuteTemplate(&buf, "layout", rd.page(s, posts, loaded, opts)); err != nil {
		log.Printf("[%s] Template error: %v", middleware.RequestIDFrom(r.Context()), err)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	if r.Method == http.MethodGet {
		etag := pageETag(buf.Bytes())
		w.Header().Set("ETag", etag)
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Write(buf.Bytes())
}

// pageETag fingerprints a rendered page.
func pageETag(body []byte) string {
	sum := sha3.Sum256(body)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}

func sendJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func sendError(w http.ResponseWriter, r *http.Request, message string, status int) {
	accept := r.Header.Get("Accept")
	if accept == "application/json" || len(r.URL.Path) >= 4 && r.URL.Path[:4] == "/api" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{"error": message})
	} else {
		http.Error(w, message, status)
	}
}

// settingsFromRequest collects the settings a form submitted. Load and Sort
// ignore the search box; only Search and the hidden fields of action forms
// carry the query along.
func settingsFromRequest(r *http.Request) models.Settings {
	s := models.Settings{
		BaseURL:   r.FormValue("base_url"),
		SortField: r.FormValue("sort"),
		Direction: r.FormValue("direction"),
		Query:     r.FormValue("q"),
	}
	if p, err := strconv.Atoi(r.FormValue("page")); err == nil && p > 0 {
		s.Page = p
	}
	if l, err := strconv.Atoi(r.FormValue("limit")); err == nil && l > 0 {
		s.Limit = l
	}
	switch r.FormValue("action") {
	case "load", "sort":
		s.Query = ""
		s.Page = 0
	case "search":
		s.Page = 0
	}
	return s.WithDefaults()
}
