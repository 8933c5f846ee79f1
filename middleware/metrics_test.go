package middleware

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestMetrics_RecordsRoutePattern(t *testing.T) {
	m := NewMetrics()
	app := fiber.New()
	app.Use(m.Handler())
	app.Get("/metrics", m.Expose())
	app.Get("/todo/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNotFound)
	})

	for _, path := range []string{"/todo/1", "/todo/2"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil), -1)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	body := string(data)

	want := `todo_http_requests_total{method="GET",route="/todo/:id",status="404"} 2`
	if !strings.Contains(body, want) {
		t.Errorf("metrics output missing %q:\n%s", want, body)
	}
	if strings.Contains(body, `route="/todo/1"`) {
		t.Error("raw path used as label")
	}
}
