package mock

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"firstblog/app/models"
	"firstblog/app/repositories"
)

// PostRepository is an in-memory repositories.PostRepository. Setting Err
// makes every call fail with it.
type PostRepository struct {
	posts  map[string]*models.Post
	order  []string
	nextID int
	mutex  sync.RWMutex

	Err error
}

func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts:  make(map[string]*models.Post),
		nextID: 1,
	}
}

func (m *PostRepository) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.posts = make(map[string]*models.Post)
	m.order = nil
	m.nextID = 1
}

func (m *PostRepository) Create(ctx context.Context, post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	post.ID = strconv.Itoa(m.nextID)
	m.nextID++
	stored := *post
	m.posts[post.ID] = &stored
	m.order = append(m.order, post.ID)
	return nil
}

func (m *PostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	post, exists := m.posts[id]
	if !exists {
		return nil, fmt.Errorf("post %q: %w", id, repositories.ErrNotFound)
	}
	found := *post
	return &found, nil
}

func (m *PostRepository) List(ctx context.Context) ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	posts := make([]*models.Post, 0, len(m.order))
	for _, id := range m.order {
		post := *m.posts[id]
		posts = append(posts, &post)
	}
	return posts, nil
}
