package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"blogfront/app/client"
	"blogfront/app/middleware"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"github.com/yhat/scrape"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type apiRequest struct {
	Method   string
	Path     string
	RawQuery string
	Body     map[string]interface{}
}

type fakeComment struct {
	ID      int    `json:"id"`
	Content string `json:"content"`
	Likes   int    `json:"likes"`
}

type fakePost struct {
	ID       int            `json:"id"`
	Title    string         `json:"title"`
	Content  string         `json:"content"`
	Author   string         `json:"author"`
	Date     string         `json:"date"`
	Likes    int            `json:"likes"`
	Comments []*fakeComment `json:"comments"`
}

// blogAPI is an in-memory stand-in for the blog REST API.
type blogAPI struct {
	mu       sync.Mutex
	posts    []*fakePost
	requests []apiRequest
	fail     bool
	server   *httptest.Server
}

func newBlogAPI(t *testing.T) *blogAPI {
	api := &blogAPI{
		posts: []*fakePost{
			{ID: 1, Title: "First post", Content: "Hello there", Author: "Ann", Date: "2023-06-01", Likes: 2,
				Comments: []*fakeComment{{ID: 1, Content: "Welcome", Likes: 1}, {ID: 2, Content: "Nice", Likes: 0}}},
			{ID: 2, Title: "Second post", Content: "No comments yet", Author: "Bob", Date: "2023-06-02", Comments: []*fakeComment{}},
		},
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/posts", api.list).Methods("GET")
	r.HandleFunc("/api/posts/search", api.list).Methods("GET")
	r.HandleFunc("/api/posts", api.create).Methods("POST")
	r.HandleFunc("/api/posts/{id:[0-9]+}", api.update).Methods("PUT")
	r.HandleFunc("/api/posts/{id:[0-9]+}", api.deletePost).Methods("DELETE")
	r.HandleFunc("/api/posts/{id:[0-9]+}/like", api.likePost).Methods("POST")
	r.HandleFunc("/api/posts/{id:[0-9]+}/comments", api.addComment).Methods("POST")
	r.HandleFunc("/api/posts/{id:[0-9]+}/comments/{cid:[0-9]+}", api.deleteComment).Methods("DELETE")
	r.HandleFunc("/api/posts/{id:[0-9]+}/comments/{cid:[0-9]+}/like", api.likeComment).Methods("POST")

	api.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		rec := apiRequest{Method: req.Method, Path: req.URL.Path, RawQuery: req.URL.RawQuery}
		if req.Body != nil {
			_ = json.NewDecoder(req.Body).Decode(&rec.Body)
		}
		api.mu.Lock()
		api.requests = append(api.requests, rec)
		fail := api.fail
		api.mu.Unlock()
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"Error": "down"}`))
			return
		}
		r.ServeHTTP(w, req)
	}))
	t.Cleanup(api.server.Close)
	return api
}

func (a *blogAPI) BaseURL() string {
	return a.server.URL + "/api"
}

func (a *blogAPI) Requests() []apiRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]apiRequest, len(a.requests))
	copy(out, a.requests)
	return out
}

func (a *blogAPI) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.requests = nil
}

func (a *blogAPI) SetFail(fail bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.fail = fail
}

func (a *blogAPI) find(req *http.Request) *fakePost {
	id, _ := strconv.Atoi(mux.Vars(req)["id"])
	for _, p := range a.posts {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (a *blogAPI) list(w http.ResponseWriter, req *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	q := strings.ToLower(req.URL.Query().Get("q"))
	out := []*fakePost{}
	for _, p := range a.posts {
		if q == "" || strings.Contains(strings.ToLower(p.Title+p.Content+p.Author), q) {
			out = append(out, p)
		}
	}
	json.NewEncoder(w).Encode(out)
}

func (a *blogAPI) create(w http.ResponseWriter, req *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	body := a.requests[len(a.requests)-1].Body
	p := &fakePost{ID: len(a.posts) + 10, Title: body["title"].(string), Content: body["content"].(string),
		Author: body["author"].(string), Date: "2024-01-01", Comments: []*fakeComment{}}
	a.posts = append(a.posts, p)
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(p)
}

func (a *blogAPI) update(w http.ResponseWriter, req *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	p := a.find(req)
	if p == nil {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"Error": "No such post"}`))
		return
	}
	body := a.requests[len(a.requests)-1].Body
	p.Title, _ = body["title"].(string)
	p.Content, _ = body["content"].(string)
	p.Author, _ = body["author"].(string)
	// The real API quotes id and likes in this answer.
	json.NewEncoder(w).Encode(map[string]string{
		"id": strconv.Itoa(p.ID), "title": p.Title, "content": p.Content,
		"author": p.Author, "date": p.Date, "likes": strconv.Itoa(p.Likes),
	})
}

func (a *blogAPI) deletePost(w http.ResponseWriter, req *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	p := a.find(req)
	for i := range a.posts {
		if a.posts[i] == p {
			a.posts = append(a.posts[:i], a.posts[i+1:]...)
			break
		}
	}
	w.Write([]byte(`{"message": "deleted"}`))
}

func (a *blogAPI) likePost(w http.ResponseWriter, req *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.find(req).Likes++
	w.Write([]byte(`{"message": "Post liked +1"}`))
}

func (a *blogAPI) addComment(w http.ResponseWriter, req *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	p := a.find(req)
	body := a.requests[len(a.requests)-1].Body
	c := &fakeComment{ID: len(p.Comments) + 1, Content: body["content"].(string)}
	p.Comments = append(p.Comments, c)
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

func (a *blogAPI) comment(req *http.Request) (*fakePost, int) {
	p := a.find(req)
	cid, _ := strconv.Atoi(mux.Vars(req)["cid"])
	for i, c := range p.Comments {
		if c.ID == cid {
			return p, i
		}
	}
	return p, -1
}

func (a *blogAPI) deleteComment(w http.ResponseWriter, req *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, i := a.comment(req)
	if i >= 0 {
		p.Comments = append(p.Comments[:i], p.Comments[i+1:]...)
	}
	w.Write([]byte(`{"message": "deleted"}`))
}

func (a *blogAPI) likeComment(w http.ResponseWriter, req *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, i := a.comment(req)
	p.Comments[i].Likes++
	w.Write([]byte(`{"message": "Post liked +1"}`))
}

func setupTestDB(t *testing.T) *badger.DB {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// browser sends requests through the router with a fixed client cookie.
type browser struct {
	t        *testing.T
	router   http.Handler
	clientID string
}

func setupBrowser(t *testing.T, defaultBaseURL string) *browser {
	router := SetupRoutes(setupTestDB(t), Options{
		API:            client.New(0),
		DefaultBaseURL: defaultBaseURL,
	})
	return &browser{t: t, router: router, clientID: uuid.NewString()}
}

func (b *browser) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	return b.doWithHeader(method, target, form, "", "")
}

func (b *browser) doWithHeader(method, target string, form url.Values, header, value string) *httptest.ResponseRecorder {
	var req *http.Request
	if method == http.MethodPost {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		if form != nil {
			target += "?" + form.Encode()
		}
		req = httptest.NewRequest(method, target, nil)
	}
	if header != "" {
		req.Header.Set(header, value)
	}
	req.AddCookie(&http.Cookie{Name: middleware.ClientCookie, Value: b.clientID})
	w := httptest.NewRecorder()
	b.router.ServeHTTP(w, req)
	return w
}

// listSettings are the hidden fields every action form carries.
func listSettings(api *blogAPI) url.Values {
	return url.Values{
		"base_url":  {api.BaseURL()},
		"sort":      {"title"},
		"direction": {"asc"},
	}
}

func parsePage(t *testing.T, w *httptest.ResponseRecorder) *html.Node {
	root, err := html.Parse(strings.NewReader(w.Body.String()))
	require.NoError(t, err)
	return root
}

func byID(root *html.Node, id string) (*html.Node, bool) {
	return scrape.Find(root, scrape.ById(id))
}

func byClass(root *html.Node, class string) []*html.Node {
	return scrape.FindAll(root, scrape.ByClass(class))
}

func inputValue(root *html.Node, id string) string {
	n, ok := byID(root, id)
	if !ok {
		return ""
	}
	if n.DataAtom == atom.Textarea {
		return scrape.Text(n)
	}
	return scrape.Attr(n, "value")
}
