package handlers

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/biosecret/go-todo/logging"
	"github.com/biosecret/go-todo/middleware"
	"github.com/biosecret/go-todo/services"
	"github.com/gofiber/fiber/v2"
)

func TestOptionalBool(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{"", "<nil>", false},
		{"true", "true", false},
		{"0", "false", false},
		{"False", "false", false},
		{"maybe", "", true},
	}
	for _, tt := range tests {
		got, err := optionalBool(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("optionalBool(%q) err = %v", tt.raw, err)
			continue
		}
		if tt.wantErr {
			continue
		}
		s := "<nil>"
		if got != nil {
			s = map[bool]string{true: "true", false: "false"}[*got]
		}
		if s != tt.want {
			t.Errorf("optionalBool(%q) = %s, want %s", tt.raw, s, tt.want)
		}
	}
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{services.ErrNotFound, fiber.StatusNotFound},
		{services.ErrConflict, fiber.StatusConflict},
		{services.ErrValidation, fiber.StatusUnprocessableEntity},
		{services.ErrInvalidCredentials, fiber.StatusUnauthorized},
		{services.ErrNoContent, fiber.StatusNoContent},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logging.Discard())})
		app.Get("/", func(c *fiber.Ctx) error { return respondError(c, tt.err) })

		resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
		if err != nil {
			t.Fatal(err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if resp.StatusCode != tt.code {
			t.Errorf("respondError(%v) status = %d, want %d", tt.err, resp.StatusCode, tt.code)
		}
		if tt.code == fiber.StatusInternalServerError && strings.Contains(string(body), "boom") {
			t.Errorf("internal error leaked to client: %s", body)
		}
	}
}

func TestGenerateJWT_AcceptedByMiddleware(t *testing.T) {
	token, err := generateJWT("secret", 42, time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	app := fiber.New()
	app.Get("/", middleware.JWTMiddleware("secret"), func(c *fiber.Ctx) error {
		id, err := caller(c)
		if err != nil {
			return err
		}
		if id != 42 {
			t.Errorf("caller = %d, want 42", id)
		}
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	expired, err := generateJWT("secret", 42, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("expired token status = %d, want 401", resp.StatusCode)
	}
}
