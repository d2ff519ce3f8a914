package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jinkisoma/web-manager/internal/catalog"
	"github.com/jinkisoma/web-manager/internal/config"
	"github.com/jinkisoma/web-manager/internal/export"
	"github.com/jinkisoma/web-manager/internal/handler"
	"github.com/jinkisoma/web-manager/internal/model"
	"github.com/jinkisoma/web-manager/internal/policy"
	"github.com/jinkisoma/web-manager/internal/repository"
	"github.com/jinkisoma/web-manager/internal/service"
	"github.com/jinkisoma/web-manager/internal/storage"
	"github.com/jinkisoma/web-manager/pkg/database"
	"github.com/jinkisoma/web-manager/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	cfg := config.Load()

	zlog := logger.New(cfg.AppEnv)
	defer zlog.Sync()

	// 2. Setup Database
	db := database.Connect(cfg)
	db.AutoMigrate(&model.Record{})

	// 3. Catalog (immutable, loaded once)
	cat := catalog.Default()
	if cfg.CatalogFile != "" {
		loaded, err := catalog.LoadFile(cfg.CatalogFile)
		if err != nil {
			zlog.Fatal("failed to load catalog file", zap.String("path", cfg.CatalogFile), zap.Error(err))
		}
		cat = loaded
	}

	// 4. Attachment storage
	attachments, err := storage.NewAttachmentStore(cfg.AttachmentDir)
	if err != nil {
		zlog.Fatal("failed to prepare attachment directory", zap.Error(err))
	}

	// 5. Dependency Injection (Wiring Layers)
	recordRepo := repository.NewRecordRepo(db)
	pol := policy.New(cfg.AdminOverridePassword, cfg.ConfirmCancelPassword)
	recordService := service.NewRecordService(recordRepo, cat, pol, attachments, export.NewExcelExporter(), zlog)

	recordHandler := handler.NewRecordHandler(recordService)
	catalogHandler := handler.NewCatalogHandler(recordService)
	attachmentHandler := handler.NewAttachmentHandler(attachments)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Settlement Note v1.0",
	})

	// Middleware
	app.Use(fiberlogger.New()) // Logging request
	app.Use(recover.New())     // Panic recovery
	app.Use(cors.New())        // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	records := api.Group("/records")
	records.Get("/", recordHandler.List)
	records.Post("/", recordHandler.Create)
	records.Post("/confirm-all", recordHandler.ConfirmAll)
	records.Get("/export", recordHandler.Export)
	records.Get("/:id", recordHandler.Get)
	records.Put("/:id", recordHandler.Update)
	records.Delete("/:id", recordHandler.Delete)
	records.Post("/:id/confirm", recordHandler.Confirm)
	records.Post("/:id/unconfirm", recordHandler.Unconfirm)

	api.Get("/clients", catalogHandler.Clients)
	api.Get("/work-items/:client", catalogHandler.WorkItems)
	api.Get("/attachments/:filename", attachmentHandler.Download)

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			zlog.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		zlog.Fatal("server forced to shutdown", zap.Error(err))
	}

	zlog.Info("server exited")
}
