package api

import (
	"support-bot/docs"
	"support-bot/internal/api/handlers"
	"support-bot/pkg/config"
	"support-bot/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(chatHandler *handlers.ChatHandler, serverCfg *config.ServerConfig, appLogger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  serverCfg.ReadTimeout,
		WriteTimeout: serverCfg.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			if code == fiber.StatusInternalServerError {
				appLogger.Error("Unhandled request error", zap.String("path", c.Path()), zap.Error(err))
				return c.Status(code).JSON(fiber.Map{
					"error": "Internal server error",
				})
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  "GET,POST,OPTIONS",
		AllowHeaders:  "Origin,Content-Type,Accept," + middleware.SessionIDHeader,
		ExposeHeaders: middleware.SessionIDHeader,
	}))
	app.Use(logger.New())

	_ = docs.SwaggerInfo // registers the swagger spec through init()
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/", chatHandler.Status)
	app.Post("/chat", middleware.SessionMiddleware(appLogger), chatHandler.Chat)
	app.Get("/history/:session_id", chatHandler.History)

	return app
}
