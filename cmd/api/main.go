package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/ats-screener/internal/config"
	"alfredoptarigan/ats-screener/internal/handlers"
	"alfredoptarigan/ats-screener/internal/repositories"
	"alfredoptarigan/ats-screener/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	log.Println("✅ Config loaded successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize task store
	screeningRepo, closeRepo, err := newScreeningRepository(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize %s task store: %v", cfg.TaskStore, err)
	}
	defer closeRepo()
	log.Printf("✅ Task store initialized (%s)\n", cfg.TaskStore)

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	pdfParser := services.NewPDFParserService()

	geminiService, err := services.NewGeminiService(ctx, cfg.Gemini)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	screenerService := services.NewScreenerService(pdfParser, geminiService)
	log.Println("✅ Services initialized successfully")

	// Initialize worker
	worker := services.NewWorker(
		screeningRepo,
		screenerService,
		storageService,
		services.WorkerOptions{
			Concurrency:   cfg.Worker.Concurrency,
			QueueSize:     cfg.Worker.QueueSize,
			ResultTTL:     cfg.Worker.ResultTTL,
			SweepInterval: cfg.Worker.SweepInterval,
		},
	)
	worker.Start(ctx)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "ATS Resume Screener",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		// Room for the text fields next to the file
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1<<20,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// Routes
	handlers.RegisterRoutes(app, handlers.Handlers{
		UI:        handlers.NewUIHandler(cfg.Storage.MaxFileSize),
		Screen:    handlers.NewScreenHandler(screenerService, cfg.Storage.MaxFileSize),
		Screening: handlers.NewScreeningHandler(screeningRepo, storageService, worker, cfg.Storage.MaxFileSize),
	})
	log.Println("✅ Handlers initialized")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		shutdown(app, worker, cancel)
		close(done)
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)
	log.Printf("📖 Open http://localhost%s in your browser\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}

	// Listen returns as soon as the server stopped accepting; the worker may still be draining.
	<-done
}

type server interface {
	Shutdown() error
}

// shutdown stops the worker first so queued screenings are failed and their
// spool files removed while the task store is still open.
func shutdown(app server, worker services.Worker, cancel context.CancelFunc) {
	worker.Stop()
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
	}
	cancel()
}

// newScreeningRepository picks the task store named by TASK_STORE. The
// returned func releases its connection.
func newScreeningRepository(ctx context.Context, cfg *config.Config) (repositories.ScreeningRepository, func(), error) {
	switch cfg.TaskStore {
	case config.TaskStorePostgres:
		db, err := config.InitDatabase(cfg)
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}
		return repositories.NewScreeningRepository(db), closeDB, nil

	case config.TaskStoreValkey:
		client, err := config.InitValkey(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return repositories.NewValkeyScreeningRepository(client, cfg.Worker.ResultTTL), client.Close, nil

	default:
		return repositories.NewMemoryScreeningRepository(), func() {}, nil
	}
}
