package controllers

import (
	"context"
	"fmt"
	"sync"

	"firstblog/app/models"
)

// fakePostService records calls and returns canned results.
type fakePostService struct {
	mu sync.Mutex

	posts   []*models.Post
	one     *models.Post
	created *models.Post
	err     error

	allCalls    int
	oneCalls    []string
	createCalls [][3]string
}

func newFakePostService() *fakePostService {
	posts := make([]*models.Post, 3)
	for i := range posts {
		posts[i] = &models.Post{
			ID:     fmt.Sprintf("5c8a1d5b0190b214360dc03%d", i+1),
			Title:  fmt.Sprintf("post%d", i+1),
			Author: fmt.Sprintf("author%d", i+1),
			Body:   fmt.Sprintf("body%d", i+1),
		}
	}
	return &fakePostService{posts: posts, one: posts[0], created: posts[0]}
}

func (f *fakePostService) GetAllPosts(ctx context.Context) ([]*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.allCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.posts, nil
}

func (f *fakePostService) GetOnePost(ctx context.Context, id string) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.oneCalls = append(f.oneCalls, id)
	if f.err != nil {
		return nil, f.err
	}
	return f.one, nil
}

func (f *fakePostService) CreateNewPost(ctx context.Context, title, author, body string) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls = append(f.createCalls, [3]string{title, author, body})
	if f.err != nil {
		return nil, f.err
	}
	return f.created, nil
}
