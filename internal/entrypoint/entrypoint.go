package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tkoide/bookshelf/internal/audit"
	"github.com/tkoide/bookshelf/internal/config"
	"github.com/tkoide/bookshelf/internal/database"
	auditdb "github.com/tkoide/bookshelf/internal/database/audit"
	"github.com/tkoide/bookshelf/internal/database/authors"
	"github.com/tkoide/bookshelf/internal/database/books"
	http_controllers "github.com/tkoide/bookshelf/internal/http"
	"github.com/tkoide/bookshelf/internal/scheduler"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop the demo scheduler)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Bookshelf v%s", version)

	// Initialize database (migrates schema, seeds catalog if empty)
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// Audit trail of catalog writes
	var auditService *audit.Service
	var auditStore http_controllers.AuditStore
	if cfg.Audit.Enabled {
		auditRepo := auditdb.NewRepository(db.DB)
		auditService = audit.NewService(auditRepo)
		auditStore = auditRepo
	}

	// Demo mode periodically restores the seed catalog
	var demoScheduler *scheduler.DemoResetScheduler
	if cfg.Demo.Enabled {
		log.Printf("Demo mode enabled - catalog resets on schedule '%s'", cfg.Demo.ResetSchedule)
		demoScheduler = scheduler.NewDemoResetScheduler(db, cfg.Demo.ResetSchedule)
		if err := demoScheduler.Start(context.Background()); err != nil {
			log.Fatalf("Failed to start demo reset scheduler: %v", err)
		}
	}

	routerCfg := http_controllers.RouterConfig{
		Database:     db,
		AuthorStore:  authors.NewRepository(db.DB),
		BookStore:    books.NewRepository(db.DB),
		AuditStore:   auditStore,
		AuditService: auditService,
		Version:      version,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if demoScheduler != nil {
			demoScheduler.Stop()
		}
	}

	Serve(router, cfg, onShutdown)
}
