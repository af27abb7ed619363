package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"firstblog/app/models"

	log "github.com/sirupsen/logrus"
)

// PostService is what the controllers need from the service layer.
// *services.PostService satisfies it.
type PostService interface {
	GetAllPosts(ctx context.Context) ([]*models.Post, error)
	GetOnePost(ctx context.Context, id string) (*models.Post, error)
	CreateNewPost(ctx context.Context, title, author, body string) (*models.Post, error)
}

// PostIDVar is the mux variable holding the post identifier.
const PostIDVar = "post_id"

// postsLocation is sent verbatim as the Location of the post-creation redirect.
const postsLocation = "posts"

// Helper methods for consistent response handling

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.WithField("err", err).Warn("Could not write JSON response")
	}
}

// redirectToPosts answers a successful creation. http.Redirect is not used
// because it rewrites the relative location into an absolute path.
func redirectToPosts(w http.ResponseWriter) {
	w.Header().Set("Location", postsLocation)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusFound)
	fmt.Fprintf(w, "%s. Redirecting to %s", http.StatusText(http.StatusFound), postsLocation)
}

// logServiceError records a failed service call before it is turned into a 503.
func logServiceError(r *http.Request, err error) {
	log.WithFields(log.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"err":    err,
	}).Warn("Post service call failed")
}

// createFromForm reads the title, author and body form fields and hands them
// to the service in that order. Missing fields arrive as empty strings and are
// rejected by the service.
func createFromForm(svc PostService, r *http.Request) (*models.Post, error) {
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("failed to parse form: %w", err)
	}
	return svc.CreateNewPost(r.Context(), r.PostFormValue("title"), r.PostFormValue("author"), r.PostFormValue("body"))
}
