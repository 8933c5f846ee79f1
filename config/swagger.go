package config

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"github.com/biosecret/go-todo/docs"
)

// AddSwaggerRoutes mount Swagger UI tại /swagger/*
func AddSwaggerRoutes(app *fiber.App) {
	app.Get("/swagger/*", swagger.New(swagger.Config{
		Title:                docs.SwaggerInfo.Title,
		DeepLinking:          true,
		PersistAuthorization: true,
	}))
}
