package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"blogfront/app/middleware"
	"blogfront/app/models"
	"blogfront/app/repositories"
	"blogfront/app/services"

	"github.com/gorilla/mux"
)

// PostController handles the post list page and post actions
type PostController struct {
	postService     *services.PostService
	settingsService *services.SettingsService
	renderer        *Renderer
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService, settingsService *services.SettingsService, renderer *Renderer) *PostController {
	return &PostController{
		postService:     postService,
		settingsService: settingsService,
		renderer:        renderer,
	}
}

// Home renders the page for a returning or new browser. A base URL the
// browser stored earlier is prefilled and loaded right away.
func (pc *PostController) Home(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.ClientIDFrom(r.Context())
	baseURL, stored := pc.settingsService.BaseURL(clientID)
	s := models.Settings{BaseURL: baseURL}.WithDefaults()

	if stored {
		pc.postService.Load(r.Context(), clientID, s)
	}
	pc.render(w, r, s, pageOptions{})
}

// Index loads, sorts or searches the post list with the submitted settings.
// Cancel closes an open form over the current render without a request.
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.ClientIDFrom(r.Context())
	s := settingsFromRequest(r)

	if r.FormValue("action") == "cancel" {
		if _, loaded := pc.postService.Current(clientID); loaded {
			pc.render(w, r, s, pageOptions{})
			return
		}
	}
	if _, err := pc.postService.Load(r.Context(), clientID, s); err == nil {
		pc.settingsService.Remember(clientID, s.BaseURL)
	}
	pc.render(w, r, s, pageOptions{})
}

// Create handles the new post form. The inputs are cleared only when the
// post was created.
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		sendError(w, r, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}
	clientID := middleware.ClientIDFrom(r.Context())
	s := settingsFromRequest(r)
	in := models.PostInput{
		Title:   strings.TrimSpace(r.FormValue("title")),
		Content: strings.TrimSpace(r.FormValue("content")),
		Author:  strings.TrimSpace(r.FormValue("author")),
	}

	opts := pageOptions{}
	if _, err := pc.postService.Create(r.Context(), clientID, s, in); err != nil {
		opts.Form = in
	}
	pc.render(w, r, s, opts)
}

// Edit opens the inline edit form inside one post.
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	clientID := middleware.ClientIDFrom(r.Context())
	s := settingsFromRequest(r)

	if _, loaded := pc.postService.Current(clientID); !loaded {
		pc.postService.Load(r.Context(), clientID, s)
	}
	pc.render(w, r, s, pageOptions{EditingID: id})
}

// Update saves the inline edit form. Blank fields keep the displayed values.
func (pc *PostController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		sendError(w, r, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}
	clientID := middleware.ClientIDFrom(r.Context())
	s := settingsFromRequest(r)
	in := models.PostInput{
		Title:   strings.TrimSpace(r.FormValue("title")),
		Content: strings.TrimSpace(r.FormValue("content")),
		Author:  strings.TrimSpace(r.FormValue("author")),
	}

	opts := pageOptions{}
	if _, err := pc.postService.Update(r.Context(), clientID, s, id, in); err != nil {
		opts.EditingID = id
	}
	pc.render(w, r, s, opts)
}

// Delete removes a post.
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	clientID := middleware.ClientIDFrom(r.Context())
	s := settingsFromRequest(r)

	pc.postService.Delete(r.Context(), clientID, s, id)
	pc.render(w, r, s, pageOptions{})
}

// Like adds a like to a post.
func (pc *PostController) Like(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	clientID := middleware.ClientIDFrom(r.Context())
	s := settingsFromRequest(r)

	pc.postService.Like(r.Context(), clientID, s, id)
	pc.render(w, r, s, pageOptions{})
}

// Rendered returns the browser's current render as JSON.
func (pc *PostController) Rendered(w http.ResponseWriter, r *http.Request) {
	posts, _ := pc.postService.Current(middleware.ClientIDFrom(r.Context()))
	if posts == nil {
		posts = []*models.Post{}
	}
	sendJSON(w, posts)
}

// Snapshot returns the serialized post a rendered element was built from.
func (pc *PostController) Snapshot(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	post, err := pc.postService.Snapshot(middleware.ClientIDFrom(r.Context()), id)
	if errors.Is(err, repositories.ErrNotFound) {
		sendError(w, r, "Post not rendered", http.StatusNotFound)
		return
	}
	if err != nil {
		sendError(w, r, "Failed to read snapshot: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, post)
}

func (pc *PostController) render(w http.ResponseWriter, r *http.Request, s models.Settings, opts pageOptions) {
	posts, loaded := pc.postService.Current(middleware.ClientIDFrom(r.Context()))
	pc.renderer.Render(w, r, s, posts, loaded, opts)
}

// pathID parses a numeric route variable, answering 400 when it is not one.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || id <= 0 {
		sendError(w, r, "Invalid "+name, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
