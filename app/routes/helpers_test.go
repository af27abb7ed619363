package routes

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"firstblog/app/repositories"
	"firstblog/app/services"

	"github.com/stretchr/testify/require"
)

// setupTestService returns a post service over an in-memory badger database
// seeded with post1..post3.
func setupTestService(t *testing.T) *services.PostService {
	db, err := repositories.OpenBadger("")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	service := services.NewPostService(repositories.NewBadgerPostRepository(db))
	for i := 1; i <= 3; i++ {
		_, err := service.CreateNewPost(context.Background(),
			fmt.Sprintf("post%d", i), fmt.Sprintf("author%d", i), fmt.Sprintf("body%d", i))
		require.NoError(t, err)
	}
	return service
}

func setupStaticDir(t *testing.T) string {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "style.css"), []byte("body { background: #f0f0f0; }"), 0644))
	return dir
}

func newFormRequest(path string, form url.Values) *http.Request {
	req, _ := http.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}
