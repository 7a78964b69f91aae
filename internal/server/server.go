package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"estatehub/config"
	"estatehub/internal/app"
	"estatehub/internal/handlers"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberLogs "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/helmet/v2"
)

// Listing photos arrive as multipart bodies, up to 20 per request.
const MAX_BODY_SIZE = 50 * 1024 * 1024

type AppServer struct {
	FiberApp *fiber.App
	log      logger.Logger
}

func New(app *app.App) (*AppServer, error) {
	log := logger.New("server").Function("New")
	log.Info("Initializing server", "environment", app.Config.Environment)

	server := fiber.New(fiberConfig(app.Config, log))

	server.Use(recover.New())
	server.Use(cors.New(cors.Config{
		AllowOrigins:     app.Config.CorsAllowOrigins,
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Upgrade, Connection, X-Trace-ID",
		AllowCredentials: true,
		MaxAge:           300,
		ExposeHeaders:    "Upgrade, X-Trace-ID",
	}))
	server.Use(fiberLogs.New(fiberLogs.Config{
		Format: "${time} ${status} ${latency} ${method} ${path} ${respHeader:X-Trace-ID}\n",
	}))
	server.Use(compress.New())
	server.Use(securityHeaders())

	if err := handlers.Router(server, app); err != nil {
		return nil, log.Err("failed to initialize handlers", err)
	}

	return &AppServer{FiberApp: server, log: log}, nil
}

func fiberConfig(cfg config.Config, log logger.Logger) fiber.Config {
	fiberCfg := fiber.Config{
		ServerHeader:            fmt.Sprintf("EstateHub/%s", cfg.GeneralVersion),
		AppName:                 "estatehub_server",
		BodyLimit:               MAX_BODY_SIZE,
		ReadBufferSize:          16384,
		WriteBufferSize:         16384,
		EnableTrustedProxyCheck: true,
		ReadTimeout:             30 * time.Second,
		WriteTimeout:            30 * time.Second,
		IdleTimeout:             120 * time.Second,
		DisableStartupMessage:   true,
		ErrorHandler:            errorHandler(log),
	}

	if cfg.Environment == "development" {
		log.Info("Enabling development mode")
		fiberCfg.DisableStartupMessage = false
		fiberCfg.EnablePrintRoutes = true
	}

	return fiberCfg
}

// errorHandler keeps framework errors (unknown route, oversized body, panics)
// in the same {"error": ...} shape the handlers return.
func errorHandler(log logger.Logger) fiber.ErrorHandler {
	log = log.Function("errorHandler")

	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := "Internal server error"

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
			message = fiberErr.Message
		} else {
			log.TraceFromContext(c.UserContext()).Er("unhandled error", err, "path", c.Path())
		}

		return c.Status(status).JSON(fiber.Map{"error": message})
	}
}

func securityHeaders() fiber.Handler {
	return helmet.New(helmet.Config{
		XSSProtection:             "1; mode=block",
		ContentTypeNosniff:        "nosniff",
		XFrameOptions:             "DENY",
		ReferrerPolicy:            "strict-origin-when-cross-origin",
		CrossOriginEmbedderPolicy: "require-corp",
		CrossOriginOpenerPolicy:   "same-origin",
		// Listing images are linked from other origins.
		CrossOriginResourcePolicy: "cross-origin",
		OriginAgentCluster:        "?1",
		XDNSPrefetchControl:       "off",
		XDownloadOptions:          "noopen",
		XPermittedCrossDomain:     "none",
		ContentSecurityPolicy:     "",
	})
}

func (s *AppServer) Listen(port int) error {
	log := s.log.Function("Listen")

	if port <= 0 {
		return log.Error("invalid server port", "port", port)
	}

	log.Info("Starting server", "port", port)
	return s.FiberApp.Listen(fmt.Sprintf(":%d", port))
}

func (s *AppServer) Shutdown(ctx context.Context) error {
	return s.FiberApp.ShutdownWithContext(ctx)
}
