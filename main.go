package main

import (
	"os"

	"github.com/biosecret/go-todo/app"
	"github.com/charmbracelet/log"
)

// @title                      Go Todo API
// @version                    1.0
// @description                Owner-scoped todo list service with CSV import/export.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	// setup and run app
	if err := app.SetupAndRunApp(); err != nil {
		log.Error("todo service stopped", "err", err)
		os.Exit(1)
	}
}
