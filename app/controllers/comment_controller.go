package controllers

import (
	"net/http"

	"blogfront/app/middleware"
	"blogfront/app/models"
	"blogfront/app/services"
)

// CommentController handles comment actions
type CommentController struct {
	commentService *services.CommentService
	postService    *services.PostService
	renderer       *Renderer
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService, postService *services.PostService, renderer *Renderer) *CommentController {
	return &CommentController{
		commentService: commentService,
		postService:    postService,
		renderer:       renderer,
	}
}

// New opens the comment form inside one post.
func (cc *CommentController) New(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r, "postId")
	if !ok {
		return
	}
	clientID := middleware.ClientIDFrom(r.Context())
	s := settingsFromRequest(r)

	if _, loaded := cc.postService.Current(clientID); !loaded {
		cc.postService.Load(r.Context(), clientID, s)
	}
	cc.render(w, r, s, pageOptions{CommentingID: postID})
}

// Create adds the submitted comment to a post.
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r, "postId")
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		sendError(w, r, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}
	clientID := middleware.ClientIDFrom(r.Context())
	s := settingsFromRequest(r)

	opts := pageOptions{}
	in := models.CommentInput{Content: r.FormValue("content")}
	if _, err := cc.commentService.Add(r.Context(), clientID, s, postID, in); err != nil {
		opts.CommentingID = postID
	}
	cc.render(w, r, s, opts)
}

// Delete removes a comment.
func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r, "postId")
	if !ok {
		return
	}
	commentID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	clientID := middleware.ClientIDFrom(r.Context())
	s := settingsFromRequest(r)

	cc.commentService.Delete(r.Context(), clientID, s, postID, commentID)
	cc.render(w, r, s, pageOptions{})
}

// Like adds a like to a comment.
func (cc *CommentController) Like(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r, "postId")
	if !ok {
		return
	}
	commentID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	clientID := middleware.ClientIDFrom(r.Context())
	s := settingsFromRequest(r)

	cc.commentService.Like(r.Context(), clientID, s, postID, commentID)
	cc.render(w, r, s, pageOptions{})
}

func (cc *CommentController) render(w http.ResponseWriter, r *http.Request, s models.Settings, opts pageOptions) {
	posts, loaded := cc.postService.Current(middleware.ClientIDFrom(r.Context()))
	cc.renderer.Render(w, r, s, posts, loaded, opts)
}
