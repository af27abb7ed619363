package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Post represents a blog post.
type Post struct {
	ID        string    `json:"_id" bson:"_id,omitempty" validate:"-"`
	Title     string    `json:"title" bson:"title" validate:"required,max=200"`
	Author    string    `json:"author" bson:"author" validate:"required"`
	Body      string    `json:"body" bson:"body" validate:"required"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"-"`
}
