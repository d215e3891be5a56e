package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"blogapi/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Article routes are mounted under basePath; health routes stay at the root.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc service.ArticleService, basePath string) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	api := app.Group(basePath)

	create := CreateArticle(svc)
	api.Post("/articulos", create)
	api.Post("/articulo", create)
	api.Post("/crear", create)

	api.Get("/articulos", ListArticles(svc))
	api.Get("/articulos/imagen/:imagen", GetImage(svc))
	api.Get("/articulos/:id", GetArticle(svc))

	api.Put("/articulos/imagen/:id", ReplaceArticleImage(svc))
	api.Put("/articulos/:id", UpdateArticle(svc))

	api.Delete("/articulos/:id", DeleteArticle(svc))
}

// HealthCheck reports readiness: 200 when the database answers a ping within 2s, 503 otherwise.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if db == nil || db.PingContext(ctx) != nil {
			return writeError(c, fiber.StatusServiceUnavailable, codeServiceUnavailable, msgUnavailable)
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe answers 200 as long as the process serves requests.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
