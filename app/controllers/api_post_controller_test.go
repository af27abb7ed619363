package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"firstblog/app/models"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAPIRouter(service PostService) *mux.Router {
	router := mux.NewRouter()
	NewAPIPostController(service).RegisterRoutes(router)
	return router
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestAPIPostControllerIndex(t *testing.T) {
	service := newFakePostService()
	router := setupAPIRouter(service)

	t.Run("calls GetAllPosts and returns the posts as JSON", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/posts", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "json")
		assert.Equal(t, 1, service.allCalls)

		var response []models.Post
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response, 3)
		for i, post := range response {
			assert.Equal(t, service.posts[i].Title, post.Title)
			assert.Equal(t, service.posts[i].Author, post.Author)
			assert.Equal(t, service.posts[i].Body, post.Body)
			assert.Equal(t, service.posts[i].ID, post.ID)
		}
	})

	t.Run("repeated calls return identical content", func(t *testing.T) {
		first := httptest.NewRecorder()
		router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/posts", nil))
		second := httptest.NewRecorder()
		router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/posts", nil))

		assert.Equal(t, first.Body.String(), second.Body.String())
	})

	t.Run("empty store encodes an empty array", func(t *testing.T) {
		empty := newFakePostService()
		empty.posts = []*models.Post{}
		w := httptest.NewRecorder()
		setupAPIRouter(empty).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/posts", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("service rejection yields 503", func(t *testing.T) {
		failing := newFakePostService()
		failing.err = errors.New("rejected")
		w := httptest.NewRecorder()
		setupAPIRouter(failing).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/posts", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	})
}

func TestAPIPostControllerShow(t *testing.T) {
	service := newFakePostService()
	router := setupAPIRouter(service)

	t.Run("calls GetOnePost with the path identifier", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/posts/post_id", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"post_id"}, service.oneCalls)
	})

	t.Run("returns the resolved post as JSON", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/posts/post_id", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "json")

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, service.one.Title, response["title"])
		assert.Equal(t, service.one.Author, response["author"])
		assert.Equal(t, service.one.Body, response["body"])
		assert.Equal(t, service.one.ID, response["_id"])
	})

	t.Run("service rejection yields 503", func(t *testing.T) {
		failing := newFakePostService()
		failing.err = errors.New("not found")
		w := httptest.NewRecorder()
		setupAPIRouter(failing).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/posts/post_id", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestAPIPostControllerCreate(t *testing.T) {
	t.Run("calls CreateNewPost with the form fields in order", func(t *testing.T) {
		service := newFakePostService()
		w := httptest.NewRecorder()
		setupAPIRouter(service).ServeHTTP(w, postForm("/post_new", url.Values{
			"title":  {"title"},
			"author": {"author"},
			"body":   {"body"},
		}))

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "posts", w.Header().Get("Location"))
		assert.Equal(t, [][3]string{{"title", "author", "body"}}, service.createCalls)
	})

	t.Run("service rejection yields 503", func(t *testing.T) {
		service := newFakePostService()
		service.err = errors.New("rejected")
		w := httptest.NewRecorder()
		setupAPIRouter(service).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/post_new", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("missing fields are passed through empty", func(t *testing.T) {
		service := newFakePostService()
		w := httptest.NewRecorder()
		setupAPIRouter(service).ServeHTTP(w, postForm("/post_new", url.Values{"title": {"only"}}))

		assert.Equal(t, [][3]string{{"only", "", ""}}, service.createCalls)
	})

	t.Run("GET is not routed", func(t *testing.T) {
		w := httptest.NewRecorder()
		setupAPIRouter(newFakePostService()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/post_new", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}
