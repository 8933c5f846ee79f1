package services

import (
	"context"
	"errors"
	"testing"

	"github.com/biosecret/go-todo/models"
	"golang.org/x/crypto/bcrypt"
)

func TestUserService_Create(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	user, err := f.users.Create(ctx, models.CreateUserRequest{Name: "Carol", Email: "carol@example.com", Password: "hunter2"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if user.ID == 0 || user.Email != "carol@example.com" {
		t.Errorf("Create() = %+v", user)
	}
	if user.PasswordHash == "hunter2" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter2")); err != nil {
		t.Errorf("hash does not match password: %v", err)
	}
}

func TestUserService_CreateConflict(t *testing.T) {
	f := setupFixture(t)
	_, err := f.users.Create(context.Background(), models.CreateUserRequest{Name: "Other Alice", Email: "alice@example.com", Password: "x"})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("Create() duplicate error = %v, want ErrConflict", err)
	}
}

func TestUserService_CreateValidation(t *testing.T) {
	f := setupFixture(t)
	_, err := f.users.Create(context.Background(), models.CreateUserRequest{Name: "NoPass", Email: "np@example.com"})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Create() error = %v, want ErrValidation", err)
	}
}

func TestUserService_Get(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	user, err := f.users.Get(ctx, f.alice)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if user.Name != "Alice" || user.Email != "alice@example.com" {
		t.Errorf("Get() = %+v", user)
	}
	if _, err := f.users.Get(ctx, 424242); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
}

func TestUserService_Authenticate(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	user, err := f.users.Authenticate(ctx, "alice@example.com", "pw")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if user.ID != f.alice {
		t.Errorf("Authenticate() id = %d, want %d", user.ID, f.alice)
	}

	tests := []struct {
		name, email, password string
	}{
		{"wrong password", "alice@example.com", "nope"},
		{"unknown email", "nobody@example.com", "pw"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.users.Authenticate(ctx, tt.email, tt.password); !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Authenticate() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestNewUserService_ClampsCost(t *testing.T) {
	s := NewUserService(nil, 99, nil)
	if s.cost != bcrypt.DefaultCost {
		t.Errorf("cost = %d, want %d", s.cost, bcrypt.DefaultCost)
	}
}
