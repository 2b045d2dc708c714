package posts

import (
	"encoding/json"
	"fmt"

	"github.com/uptrace/bun"

	"blogd/internal/app/errors"
)

// BlogPost is the only persisted entity; ID is assigned by the store and never read from clients
type BlogPost struct {
	bun.BaseModel `bun:"table:blog_posts"`

	ID        int64  `bun:"id,pk,autoincrement" json:"id"`
	Title     string `bun:"title,notnull" json:"title"`
	Body      string `bun:"body,notnull" json:"body"`
	Published *bool  `bun:"published" json:"published"`
}

// NewBlogPost is the write-shape accepted on creation
type NewBlogPost struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// blogPostPayload mirrors the accepted request body; pointers detect missing fields
type blogPostPayload struct {
	Title     *string `json:"title"`
	Body      *string `json:"body"`
	Published *bool   `json:"published"`
}

// UnmarshalJSON decodes a request body, dropping any client supplied id
func (p *BlogPost) UnmarshalJSON(data []byte) error {
	var payload blogPostPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidPayload, err)
	}

	if payload.Title == nil {
		return fmt.Errorf("%w: %w: title", errors.ErrInvalidPayload, errors.ErrMissingField)
	}

	if payload.Body == nil {
		return fmt.Errorf("%w: %w: body", errors.ErrInvalidPayload, errors.ErrMissingField)
	}

	*p = BlogPost{
		Title:     *payload.Title,
		Body:      *payload.Body,
		Published: payload.Published,
	}

	return nil
}

// NewBlogPost projects the fields accepted on creation
func (p BlogPost) NewBlogPost() NewBlogPost {
	return NewBlogPost{
		Title: p.Title,
		Body:  p.Body,
	}
}

// clone returns a copy that shares no memory with p
func (p BlogPost) clone() BlogPost {
	if p.Published != nil {
		published := *p.Published
		p.Published = &published
	}

	return p
}
