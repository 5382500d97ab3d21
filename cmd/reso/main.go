package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/gdg-garage/reso-client/internal/cli"
	"github.com/gdg-garage/reso-client/internal/config"
	"github.com/gdg-garage/reso-client/internal/database"
	"github.com/gdg-garage/reso-client/internal/gateway"
	"github.com/gdg-garage/reso-client/internal/notifier"
	"github.com/gdg-garage/reso-client/internal/session"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Error loading .env file: %v", err)
	}

	// Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Open local session state
	kv, err := database.OpenKV(cfg.StatePath)
	if err != nil {
		log.Fatalf("Failed to open state database: %v", err)
	}
	defer kv.Close()
	store := session.New(kv)

	api := gateway.New(cfg.APIBaseURL, store.TokenSource(),
		gateway.WithTimeout(cfg.HTTPTimeout),
		gateway.WithDebug(cfg.Debug),
		gateway.OnUnauthorized(func() {
			if err := store.Clear(); err != nil {
				log.Printf("Failed to clear session: %v", err)
			}
		}),
	)

	opts := []cli.Option{cli.WithOutput(os.Stdout)}
	if cfg.Discord() {
		discord, err := notifier.NewDiscordNotifier(cfg.DiscordBotToken, cfg.DiscordNotificationsChannelID)
		if err != nil {
			log.Printf("Discord notifier not initialized: %v", err)
		} else {
			opts = append(opts, cli.WithAnnouncer(discord))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.New(store, api, opts...).Run(ctx, os.Args[1:]); err != nil {
		stop()
		kv.Close()
		os.Exit(1)
	}
}
