package services

import (
	"context"
	"errors"
	"fmt"

	"firstblog/app/models"
	"firstblog/app/repositories"

	log "github.com/sirupsen/logrus"
)

// ErrInvalidPost is wrapped by CreateNewPost when a field fails validation.
var ErrInvalidPost = errors.New("invalid post")

// ServiceError is the only error kind PostService returns. Op names the
// failing operation; Err keeps the cause for errors.Is and errors.As.
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// PostService handles business logic for blog posts
type PostService struct {
	postRepo repositories.PostRepository
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// GetAllPosts returns every post in repository order.
func (s *PostService) GetAllPosts(ctx context.Context) ([]*models.Post, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, s.fail("getAllPosts", err)
	}
	return posts, nil
}

// GetOnePost returns the post with the given identifier.
func (s *PostService) GetOnePost(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.fail("getOnePost", err)
	}
	return post, nil
}

// CreateNewPost validates and persists a new post and returns it with its
// assigned identifier.
func (s *PostService) CreateNewPost(ctx context.Context, title, author, body string) (*models.Post, error) {
	post := models.NewPost(title, author, body)
	if err := post.Validate(); err != nil {
		return nil, s.fail("createNewPost", fmt.Errorf("%w: %v", ErrInvalidPost, err))
	}
	post.BeforeCreate()

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, s.fail("createNewPost", err)
	}
	log.WithFields(log.Fields{"id": post.ID, "author": post.Author}).Debug("Created post")
	return post, nil
}

func (s *PostService) fail(op string, err error) error {
	log.WithFields(log.Fields{"op": op, "err": err}).Debug("Post service call failed")
	return &ServiceError{Op: op, Err: err}
}
