// Package web serves the single page front end of the quiz generator.
package web

import (
	"embed"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
)

//go:embed static
var staticFS embed.FS

// Handler serves the embedded page and its assets.
func Handler() fiber.Handler {
	return filesystem.New(filesystem.Config{
		Root:       http.FS(staticFS),
		PathPrefix: "static",
		Index:      "index.html",
		MaxAge:     300,
	})
}
