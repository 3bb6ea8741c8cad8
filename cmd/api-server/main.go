package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"portfoliohub/internal/auth"
	"portfoliohub/internal/events"
	"portfoliohub/internal/github"
	"portfoliohub/internal/profile"
	"portfoliohub/internal/projects"
	"portfoliohub/internal/social"
	"portfoliohub/internal/system"
	"portfoliohub/internal/videos"
	"portfoliohub/pkg/database"
	"portfoliohub/pkg/utils"
)

func main() {
	cfg, err := utils.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	dbCfg := database.DefaultConfig()
	if cfg.Database.Path != "" {
		dbCfg.Path = cfg.Database.Path
	}
	db := database.MustOpen(dbCfg)
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	bootCtx, bootCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer bootCancel()

	if err := database.Seed(bootCtx, db); err != nil {
		// seeding is best-effort; an already-populated db is fine
		log.Printf("[seed] warning: %v", err)
	}

	router := gin.Default()

	// Optional: avoid "trusted all proxies" warning
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	router.Use(corsMiddleware())

	hub := events.NewHub()
	router.GET("/ws", events.WSHandler(hub))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "portfolio-backend"})
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":     "not_ready",
				"db_error":   err.Error(),
				"ws_clients": hub.Count(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":     "ready",
			"db":         "ok",
			"ws_clients": hub.Count(),
		})
	})

	// Auth: single admin account bootstrapped from config
	tokenSvc := auth.TokenService{
		Secret:   []byte(cfg.Auth.JWTSecret),
		Issuer:   cfg.Auth.JWTIssuer,
		Duration: cfg.Auth.JWTDuration,
	}
	authRepo := auth.NewRepo(db)
	if err := authRepo.EnsureAdmin(bootCtx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
		log.Fatalf("admin bootstrap failed: %v", err)
	}
	adminMW := auth.AuthMiddleware(tokenSvc, authRepo)

	api := router.Group("/api")

	api.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "portfolio backend",
			"status":  "online",
			"version": "1.0.0",
		})
	})

	authHandler := auth.NewHandler(authRepo, tokenSvc)
	authHandler.RegisterRoutes(api.Group("/auth"))

	// Profile (public read, admin write)
	profileRepo := profile.NewRepo(db)
	profile.NewHandler(profileRepo).RegisterRoutes(api.Group("/profile"), adminMW)

	// Projects + GitHub sync pipeline
	if cfg.GitHub.Username == "" {
		log.Printf("[main] no github username in config, falling back to the profile's github handle")
	}

	ghClient := github.NewClient(cfg.GitHub)
	projectsRepo := projects.NewRepo(db)
	syncer := projects.NewSyncer(ghClient, projectsRepo, cfg.GitHub.Username, cfg.Sync.MaxAgeHours)
	syncer.Hub = hub
	// resolved on every run so a profile edit applies without a restart
	syncer.UsernameFn = func(ctx context.Context) string {
		p, err := profileRepo.Get(ctx)
		if err != nil || p == nil {
			return ""
		}
		return p.GithubUsername
	}
	projects.NewHandler(projectsRepo, syncer).RegisterRoutes(api.Group("/projects"), adminMW)

	// Social links
	socialRepo := social.NewRepo(db)
	social.NewHandler(socialRepo).RegisterRoutes(api.Group("/social-links"), adminMW)

	// Videos
	videosRepo := videos.NewRepo(db)
	videos.NewHandler(videosRepo).RegisterRoutes(api.Group("/videos"), adminMW)

	// System
	system.NewHandler(db, projectsRepo, syncer, videosRepo, socialRepo).
		RegisterRoutes(api.Group("/system"), adminMW)

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("HTTP API server listening on %s", cfg.HTTP.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("shutdown signal received: %s", sig)
	case err := <-errCh:
		log.Printf("server error: %v", err)
	}

	log.Println("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
	log.Println("server stopped")
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
