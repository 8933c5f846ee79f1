package models

import (
	"errors"
	"net/mail"
	"strings"
)

type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // không bao giờ trả về cho client
}

type CreateUserRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Identity trả về email, hoặc username khi client gửi theo biến thể cũ
func (r CreateUserRequest) Identity() string {
	if r.Email != "" {
		return strings.TrimSpace(r.Email)
	}
	return strings.TrimSpace(r.Username)
}

func (r CreateUserRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	id := r.Identity()
	if id == "" {
		return errors.New("email is required")
	}
	if strings.Contains(id, "@") {
		if _, err := mail.ParseAddress(id); err != nil {
			return errors.New("email is invalid")
		}
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (r LoginRequest) Identity() string {
	if r.Email != "" {
		return strings.TrimSpace(r.Email)
	}
	return strings.TrimSpace(r.Username)
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
