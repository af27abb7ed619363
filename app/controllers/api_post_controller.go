package controllers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// APIPostController serves posts as JSON. Any service failure is answered
// with 503 Service Unavailable.
type APIPostController struct {
	postService PostService
}

// NewAPIPostController creates a new APIPostController
func NewAPIPostController(postService PostService) *APIPostController {
	return &APIPostController{postService: postService}
}

// RegisterRoutes mounts the JSON routes on router.
func (pc *APIPostController) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/posts", pc.Index).Methods(http.MethodGet)
	router.HandleFunc("/posts/{"+PostIDVar+"}", pc.Show).Methods(http.MethodGet)
	router.HandleFunc("/post_new", pc.Create).Methods(http.MethodPost)
}

// Index handles listing all posts
func (pc *APIPostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.postService.GetAllPosts(r.Context())
	if err != nil {
		pc.sendError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, posts)
}

// Show handles displaying a single post
func (pc *APIPostController) Show(w http.ResponseWriter, r *http.Request) {
	post, err := pc.postService.GetOnePost(r.Context(), mux.Vars(r)[PostIDVar])
	if err != nil {
		pc.sendError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Create handles creating a new post from a form submission
func (pc *APIPostController) Create(w http.ResponseWriter, r *http.Request) {
	if _, err := createFromForm(pc.postService, r); err != nil {
		pc.sendError(w, r, err)
		return
	}
	redirectToPosts(w)
}

func (pc *APIPostController) sendError(w http.ResponseWriter, r *http.Request, err error) {
	logServiceError(r, err)
	sendJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
}
