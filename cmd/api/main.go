package main

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"tickly/internal/config"
	"tickly/internal/handler"
	"tickly/internal/middleware"
	"tickly/internal/query"
	"tickly/internal/repository"
	"tickly/internal/service"
	"tickly/internal/service/auth"
	"tickly/migrations"
)

func main() {
	cfg := config.Load()
	log := config.NewLogger(cfg)

	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found, using environment variables")
	}

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	if err := config.RunMigrations(context.Background(), db, log, migrations.FS); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to Redis")
	}
	defer redisClient.Close()

	minioClient, err := config.NewMinIOClient(cfg, log)
	if err != nil {
		log.WithError(err).Warn("failed to connect to MinIO, media upload will not work")
	}

	repos := repository.NewRepositories(db)
	builder := query.NewBuilder(db)
	services := service.NewServices(repos, builder, redisClient, minioClient, cfg, log)
	handlers := handler.NewHandlers(services, cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	setupRoutes(app, handlers, services.Auth, cfg)

	log.WithField("port", cfg.Port).Info("server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("failed to start server")
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService auth.Service, cfg *config.Config) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.Post("/signin", h.Auth.Login)
	authGroup.Post("/signout", h.Auth.Logout)

	protected := v1.Group("", middleware.AuthRequired(authService, cfg))

	protected.Get("/auth/session", h.Auth.Session)
	protected.Get("/auth/me", h.Auth.Me)

	users := protected.Group("/users")
	users.Post("/", h.User.Create)
	users.Get("/", h.User.List)
	users.Get("/by-login/:login", h.User.GetByLogin)
	users.Get("/:id", h.User.GetByID)
	users.Patch("/:id", h.User.Update)
	users.Delete("/:id", middleware.RequireRole("ADMIN"), h.User.Delete)
	users.Get("/:id/audit-logs", h.User.AuditLogs)

	structures := protected.Group("/structures")
	structures.Post("/", h.Structure.Create)
	structures.Get("/", h.Structure.List)
	structures.Get("/:id", h.Structure.GetByID)
	structures.Patch("/:id", h.Structure.Update)
	structures.Delete("/:id", middleware.RequireRole("ADMIN"), h.Structure.Delete)
	structures.Get("/:id/users", h.Structure.ListUsers)
	structures.Post("/:id/users/:userId", h.Structure.AddUser)
	structures.Delete("/:id/users/:userId", h.Structure.RemoveUser)
	structures.Get("/:id/audit-logs", h.Structure.AuditLogs)

	tickets := protected.Group("/tickets")
	tickets.Post("/", h.Ticket.Create)
	tickets.Get("/", h.Ticket.List)
	tickets.Get("/open", h.Ticket.OpenTickets)
	tickets.Get("/stats", h.Ticket.Stats)
	tickets.Get("/by-structure/:id", h.Ticket.ListByStructure)
	tickets.Get("/by-user/:id", h.Ticket.ListByAuthor)
	tickets.Get("/:id", h.Ticket.GetByID)
	tickets.Patch("/:id", h.Ticket.Update)
	tickets.Delete("/:id", h.Ticket.Delete)
	tickets.Post("/:id/assignees/:userId", h.Ticket.AssignUser)
	tickets.Delete("/:id/assignees/:userId", h.Ticket.UnassignUser)
	tickets.Get("/:id/audit-logs", h.Ticket.AuditLogs)
	tickets.Post("/:id/comments", h.Comment.Create)
	tickets.Get("/:id/comments", h.Comment.ListByTicket)

	comments := protected.Group("/comments")
	comments.Get("/:id", h.Comment.GetByID)
	comments.Patch("/:id", h.Comment.Update)
	comments.Delete("/:id", h.Comment.Delete)

	addresses := protected.Group("/addresses")
	addresses.Post("/", h.Address.Create)
	addresses.Get("/", h.Address.List)
	addresses.Get("/:id", h.Address.GetByID)
	addresses.Patch("/:id", h.Address.Update)
	addresses.Delete("/:id", h.Address.Delete)

	mediaGroup := protected.Group("/media")
	mediaGroup.Post("/", h.Media.Upload)
	mediaGroup.Get("/", h.Media.List)
	mediaGroup.Get("/:id", h.Media.GetByID)
	mediaGroup.Delete("/:id", h.Media.Delete)

	categories := protected.Group("/categories")
	categories.Get("/", h.Reference.ListCategories)
	categories.Get("/:id", h.Reference.GetCategory)
	categories.Post("/", middleware.RequireRole("ADMIN"), h.Reference.CreateCategory)
	categories.Patch("/:id", middleware.RequireRole("ADMIN"), h.Reference.UpdateCategory)
	categories.Delete("/:id", middleware.RequireRole("ADMIN"), h.Reference.DeleteCategory)

	priorities := protected.Group("/priorities")
	priorities.Get("/", h.Reference.ListPriorities)
	priorities.Get("/:id", h.Reference.GetPriority)
	priorities.Post("/", middleware.RequireRole("ADMIN"), h.Reference.CreatePriority)
	priorities.Patch("/:id", middleware.RequireRole("ADMIN"), h.Reference.UpdatePriority)
	priorities.Delete("/:id", middleware.RequireRole("ADMIN"), h.Reference.DeletePriority)

	statuses := protected.Group("/statuses")
	statuses.Get("/", h.Reference.ListStatuses)
	statuses.Get("/:id", h.Reference.GetStatus)
	statuses.Post("/", middleware.RequireRole("ADMIN"), h.Reference.CreateStatus)
	statuses.Patch("/:id", middleware.RequireRole("ADMIN"), h.Reference.UpdateStatus)
	statuses.Delete("/:id", middleware.RequireRole("ADMIN"), h.Reference.DeleteStatus)

	protected.Get("/audit-log/:linkedTable/:linkedId", h.AuditLog.List)
}
