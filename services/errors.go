package services

import (
	"errors"
	"fmt"
)

// Lỗi nghiệp vụ. Handler ánh xạ chúng sang HTTP status bằng errors.Is.
var (
	// ErrNotFound: không tồn tại hoặc không thuộc về người gọi, hai trường hợp không phân biệt
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrNoContent          = errors.New("no content")
	ErrValidation         = errors.New("validation error")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Error gắn thông điệp cho người dùng vào một lỗi nghiệp vụ
type Error struct {
	Kind   error
	Detail string
}

func (e *Error) Error() string { return e.Detail }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

func todoNotFound(id int64) error {
	return newError(ErrNotFound, "Todo with ID %d not found", id)
}
