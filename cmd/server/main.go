package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/artur/videohub/internal/channels"
	"github.com/artur/videohub/internal/config"
	"github.com/artur/videohub/internal/database"
	"github.com/artur/videohub/internal/database/repository"
	"github.com/artur/videohub/internal/downloader"
	"github.com/artur/videohub/internal/handler"
	"github.com/artur/videohub/internal/notify"
	"github.com/artur/videohub/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := cfg.Prepare(); err != nil {
		log.Fatalf("Failed to prepare directories: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	channelRepo := repository.NewChannelRepository(db.DB)

	var notifier *notify.Notifier
	if cfg.NotificationsEnabled() {
		notifier, err = notify.New(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("[SERVER] Notifications disabled: %v", err)
		}
	}

	materializer := downloader.NewYtDlpMaterializer(cfg.YtDlpFormat)
	if err := materializer.Install(ctx); err != nil {
		log.Printf("[SERVER] Downloads will fail until yt-dlp is available: %v", err)
	}

	extractor := downloader.NewYouTubeExtractor(&http.Client{Timeout: 30 * time.Second})
	pipeline := downloader.NewPipeline(extractor, materializer, channelRepo, cfg.DownloadsDir)
	if notifier != nil {
		pipeline.OnCleanupError(notifier.CleanupFailed)
	}

	lister, err := channels.NewLister(ctx, cfg.YTAPIKey, channelRepo)
	if err != nil {
		log.Fatalf("Failed to create channel lister: %v", err)
	}
	if !lister.Enabled() {
		log.Printf("[SERVER] YT_API_KEY is not set, channel listing is disabled")
	}

	srv := server.New(cfg.Addr)
	srv.RegisterHandler(handler.NewHealthHandler(lister.Enabled()))
	srv.RegisterHandler(handler.NewVideoHandler(pipeline))
	srv.RegisterHandler(handler.NewChannelHandler(channelRepo, lister))

	notifier.Startup(cfg.Addr)

	if err := srv.Run(ctx); err != nil {
		log.Printf("[SERVER] %v", err)
		stop()
		db.Close()
		os.Exit(1)
	}
}
