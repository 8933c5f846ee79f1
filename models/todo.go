package models

import (
	"errors"
	"strings"
)

// TodoItem là một công việc thuộc về đúng một người dùng
type TodoItem struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	OwnerID     int64  `json:"owner_id"`
}

// TodoRequest là payload của POST /todo/ và PUT /todo/{id}
type TodoRequest struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	Completed   bool   `json:"completed" form:"completed"`
}

// Validate kiểm tra title và description không rỗng
func (r TodoRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title is required")
	}
	if strings.TrimSpace(r.Description) == "" {
		return errors.New("description is required")
	}
	return nil
}

// CompletedRequest là body tuỳ chọn của PATCH /todo/{id}/completed/
type CompletedRequest struct {
	Completed *bool `json:"completed" form:"completed"`
}

// ImportSummary là kết quả của POST /todo/csv-import/
type ImportSummary struct {
	Message  string `json:"message"`
	Imported int    `json:"imported"`
}

// ErrorResponse là dạng body lỗi chung
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse là body của GET /health
type MessageResponse struct {
	Status string `json:"status"`
}
