// Package schema holds the request payload shapes accepted by the blog
// routes and the validators that check raw bodies against them.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin/binding"
)

var ErrEmptyBody = errors.New("request body is empty")

// CreateBlogInput is the body of a create request. Both fields must be
// present and be strings; empty strings are allowed.
type CreateBlogInput struct {
	Title   *string `json:"title" binding:"required"`
	Content *string `json:"content" binding:"required"`
}

// UpdateBlogInput is the body of an update request. ID is any JSON number;
// narrowing it to a stored key is left to the caller.
type UpdateBlogInput struct {
	ID      *float64 `json:"id" binding:"required"`
	Title   *string  `json:"title" binding:"required"`
	Content *string  `json:"content" binding:"required"`
}

// Result is the outcome of checking a payload against a schema.
// Data is only meaningful when Success is true.
type Result[T any] struct {
	Success bool
	Data    T
	Err     error
}

// SafeParseCreateBlog checks body against CreateBlogInput.
func SafeParseCreateBlog(body []byte) Result[CreateBlogInput] {
	return safeParse[CreateBlogInput](body)
}

// SafeParseUpdateBlog checks body against UpdateBlogInput.
func SafeParseUpdateBlog(body []byte) Result[UpdateBlogInput] {
	return safeParse[UpdateBlogInput](body)
}

func safeParse[T any](body []byte) Result[T] {
	var in T
	if len(body) == 0 {
		return Result[T]{Err: ErrEmptyBody}
	}
	if err := json.Unmarshal(body, &in); err != nil {
		return Result[T]{Err: fmt.Errorf("decode payload: %w", err)}
	}
	if err := binding.Validator.ValidateStruct(&in); err != nil {
		return Result[T]{Err: fmt.Errorf("validate payload: %w", err)}
	}
	return Result[T]{Success: true, Data: in}
}
