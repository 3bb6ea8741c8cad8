package main

import (
	"context"
	"log"
	"time"

	"portfoliohub/internal/github"
	"portfoliohub/internal/profile"
	"portfoliohub/internal/projects"
	"portfoliohub/internal/videos"
	"portfoliohub/pkg/database"
	"portfoliohub/pkg/utils"
)

// One-shot sync for cron use: refreshes projects from GitHub and the
// mock video set, then exits.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

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

	// Ensure schema exists
	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	username := cfg.GitHub.Username
	if username == "" {
		if p, err := profile.NewRepo(db).Get(ctx); err == nil && p != nil {
			username = p.GithubUsername
		}
	}

	projectsRepo := projects.NewRepo(db)
	syncer := projects.NewSyncer(github.NewClient(cfg.GitHub), projectsRepo, username, cfg.Sync.MaxAgeHours)

	res := syncer.SyncNow(ctx)
	if !res.Success {
		log.Fatalf("project sync failed: %v", res.Errors)
	}
	log.Printf("synced %d projects", res.ProjectsSynced)

	videosRes := videos.Sync(ctx, videos.NewRepo(db))
	if !videosRes.Success {
		log.Fatalf("video sync failed: %v", videosRes.Errors)
	}
	log.Printf("synced %d videos", videosRes.VideosSynced)
}
