package routes

import (
	"html/template"
	"io/fs"
	"net/http"

	"blogfront/app/client"
	"blogfront/app/controllers"
	"blogfront/app/middleware"
	"blogfront/app/repositories"
	"blogfront/app/services"
	"blogfront/app/views"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
)

// Options configures the front end router.
type Options struct {
	API            services.API
	DefaultBaseURL string
	Templates      *template.Template
}

// SetupRoutes wires the front end on top of a Badger store and the blog API.
func SetupRoutes(db *badger.DB, opts Options) *mux.Router {
	if opts.Templates == nil {
		opts.Templates = views.MustLoad()
	}
	if opts.API == nil {
		opts.API = client.New(0)
	}

	settingsRepo := repositories.NewBadgerSettingsRepository(db)
	snapshotRepo := repositories.NewBadgerSnapshotRepository(db)

	postService := services.NewPostService(opts.API, snapshotRepo, services.NewBoard())
	commentService := services.NewCommentService(opts.API, postService)
	settingsService := services.NewSettingsService(settingsRepo, opts.DefaultBaseURL)

	renderer := controllers.NewRenderer(opts.Templates)
	postController := controllers.NewPostController(postService, settingsService, renderer)
	commentController := controllers.NewCommentController(commentService, postService, renderer)

	return setupRouter(postController, commentController)
}

func setupRouter(postController *controllers.PostController, commentController *controllers.CommentController) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.ClientID)

	static, _ := fs.Sub(views.Static, "static")
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	// Web routes
	router.HandleFunc("/", postController.Home).Methods("GET")

	posts := router.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("", postController.Index).Methods("GET")
	posts.HandleFunc("", postController.Create).Methods("POST")
	posts.HandleFunc("/{id:[0-9]+}", postController.Update).Methods("POST")
	posts.HandleFunc("/{id:[0-9]+}/edit", postController.Edit).Methods("GET")
	posts.HandleFunc("/{id:[0-9]+}/delete", postController.Delete).Methods("POST")
	posts.HandleFunc("/{id:[0-9]+}/like", postController.Like).Methods("POST")

	posts.HandleFunc("/{postId:[0-9]+}/comments/new", commentController.New).Methods("GET")
	posts.HandleFunc("/{postId:[0-9]+}/comments", commentController.Create).Methods("POST")
	posts.HandleFunc("/{postId:[0-9]+}/comments/{id:[0-9]+}/delete", commentController.Delete).Methods("POST")
	posts.HandleFunc("/{postId:[0-9]+}/comments/{id:[0-9]+}/like", commentController.Like).Methods("POST")

	// Inspection API over what the browser has rendered
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)
	api.HandleFunc("/rendered", postController.Rendered).Methods("GET")
	api.HandleFunc("/rendered/{id:[0-9]+}", postController.Snapshot).Methods("GET")

	return router
}
