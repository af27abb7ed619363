package models

import (
	"time"
)

// NewPost builds an unsaved post from the three user supplied fields.
func NewPost(title, author, body string) *Post {
	return &Post{
		Title:  title,
		Author: author,
		Body:   body,
	}
}

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	return validate.Struct(p)
}

// BeforeCreate sets up any necessary fields before creation
func (p *Post) BeforeCreate() {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
}
