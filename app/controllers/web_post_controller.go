package controllers

import (
	"bytes"
	"net/http"

	"firstblog/app/models"
	"firstblog/app/views"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// WebPostController renders posts as HTML pages.
type WebPostController struct {
	postService PostService
	views       *views.Views
}

// NewWebPostController creates a new WebPostController
func NewWebPostController(postService PostService, v *views.Views) *WebPostController {
	return &WebPostController{
		postService: postService,
		views:       v,
	}
}

// RegisterRoutes mounts the HTML routes on router.
func (pc *WebPostController) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/", pc.Index).Methods(http.MethodGet)
	router.HandleFunc("/posts", pc.Index).Methods(http.MethodGet)
	router.HandleFunc("/posts/{"+PostIDVar+"}", pc.Show).Methods(http.MethodGet)
	router.HandleFunc("/post_new", pc.New).Methods(http.MethodGet)
	router.HandleFunc("/post_new", pc.Create).Methods(http.MethodPost)
}

// Index renders the homepage with every post.
func (pc *WebPostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.postService.GetAllPosts(r.Context())
	if err != nil {
		pc.sendError(w, r, err)
		return
	}
	data := struct {
		Posts []*models.Post
	}{
		Posts: posts,
	}
	pc.render(w, r, views.Index, data)
}

// Show renders a single post.
func (pc *WebPostController) Show(w http.ResponseWriter, r *http.Request) {
	post, err := pc.postService.GetOnePost(r.Context(), mux.Vars(r)[PostIDVar])
	if err != nil {
		pc.sendError(w, r, err)
		return
	}
	pc.render(w, r, views.Show, post)
}

// New displays the form for creating a new post
func (pc *WebPostController) New(w http.ResponseWriter, r *http.Request) {
	pc.render(w, r, views.New, nil)
}

// Create handles the new post form and redirects to the post list.
func (pc *WebPostController) Create(w http.ResponseWriter, r *http.Request) {
	if _, err := createFromForm(pc.postService, r); err != nil {
		pc.sendError(w, r, err)
		return
	}
	redirectToPosts(w)
}

// render executes the page into a buffer first so a template error can still
// become a 500.
func (pc *WebPostController) render(w http.ResponseWriter, r *http.Request, page string, data interface{}) {
	var buf bytes.Buffer
	if err := pc.views.Render(&buf, page, data); err != nil {
		log.WithFields(log.Fields{"page": page, "err": err}).Error("Template error")
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

func (pc *WebPostController) sendError(w http.ResponseWriter, r *http.Request, err error) {
	logServiceError(r, err)
	http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
}
