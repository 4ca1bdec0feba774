package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/adambennett/Planetwatcher-Server/internal/config"
	"github.com/adambennett/Planetwatcher-Server/internal/http_api"
	"github.com/adambennett/Planetwatcher-Server/internal/indexer"
	"github.com/adambennett/Planetwatcher-Server/internal/models"
	"github.com/adambennett/Planetwatcher-Server/internal/notificator"
	"github.com/adambennett/Planetwatcher-Server/internal/repository"
	"github.com/adambennett/Planetwatcher-Server/internal/watcher"
	"github.com/adambennett/Planetwatcher-Server/pkg/logger"
)

func main() {
	app := &cli.App{
		Name:  "planetwatcher",
		Usage: "Planetwatcher monitors wallet heartbeats and notifies subscribed devices",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "postgres-user", Aliases: []string{"u"}, Usage: "Postgres user"},
			&cli.StringFlag{Name: "postgres-password", Aliases: []string{"p"}, Usage: "Postgres password"},
			&cli.StringFlag{Name: "postgres-host", Aliases: []string{"t"}, Usage: "Postgres host"},
			&cli.IntFlag{Name: "postgres-port", Aliases: []string{"P"}, Usage: "Postgres port"},
			&cli.StringFlag{Name: "postgres-db", Aliases: []string{"d"}, Usage: "Postgres database name"},
			&cli.StringFlag{Name: "indexer-url", Aliases: []string{"i"}, Usage: "Blockchain indexer URL"},
			&cli.StringFlag{Name: "indexer-api-key", Aliases: []string{"k"}, Usage: "Blockchain indexer API key"},
			&cli.Uint64Flag{Name: "heartbeat-asset-id", Aliases: []string{"a"}, Usage: "Asset id of the heartbeat token"},
			&cli.IntFlag{Name: "api-port", Usage: "Administration API port"},
			&cli.BoolFlag{Name: "development", Aliases: []string{"D"}, Usage: "Development mode"},
		},
		Action: func(c *cli.Context) error {
			return run(c)
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	// Load configuration from environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	// Override with flags if set
	if c.IsSet("postgres-user") {
		cfg.PostgresUser = c.String("postgres-user")
	}
	if c.IsSet("postgres-password") {
		cfg.PostgresPassword = c.String("postgres-password")
	}
	if c.IsSet("postgres-host") {
		cfg.PostgresHost = c.String("postgres-host")
	}
	if c.IsSet("postgres-port") {
		cfg.PostgresPort = c.Int("postgres-port")
	}
	if c.IsSet("postgres-db") {
		cfg.PostgresDB = c.String("postgres-db")
	}
	if c.IsSet("indexer-url") {
		cfg.IndexerURL = c.String("indexer-url")
	}
	if c.IsSet("indexer-api-key") {
		cfg.IndexerAPIKey = c.String("indexer-api-key")
	}
	if c.IsSet("heartbeat-asset-id") {
		cfg.HeartbeatAssetID = c.Uint64("heartbeat-asset-id")
	}
	if c.IsSet("api-port") {
		cfg.APIPort = c.Int("api-port")
	}
	if c.IsSet("development") {
		cfg.Development = c.Bool("development")
	}

	// Initialize logger
	log, err := logger.NewLogger(cfg.Development)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %v", err)
	}

	// Initialize database
	db, err := repository.NewPostgresDB(cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresDB, cfg.PostgresHost, cfg.PostgresPort, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}

	// Initialize indexer client
	indexerClient := indexer.NewClient(cfg.IndexerURL, cfg.IndexerAPIKey, log)

	// Initialize notification sinks
	sinks, err := buildSinks(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize notification sinks: %v", err)
	}

	// Create Watcher instance
	watcherApp := watcher.NewWatcher(db, indexerClient, sinks, log, cfg)

	apiServer := http_api.NewHTTPServer(watcherApp, cfg.APIPort, log)

	// Stop everything on SIGINT/SIGTERM
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		sig := <-quit
		log.Info("Received signal, shutting down ", "signal ", sig)
		if err := apiServer.Shutdown(); err != nil {
			log.Error("Failed to shut down API server ", "error ", err)
		}
		watcherApp.Shutdown()
	}()

	go apiServer.Start()
	// Start the application
	return watcherApp.Start()
}

// buildSinks wires one sink per configured channel. Android and ios share
// the FCM credentials but carry different payload shapes, so each gets its
// own instance.
func buildSinks(cfg *config.Config, log *logger.Logger) (map[models.Platform]models.Sink, error) {
	sinks := make(map[models.Platform]models.Sink)
	ctx := context.Background()

	if cfg.FirebaseCredentialsFile != "" {
		android, err := notificator.NewFCMNotificator(ctx, cfg.FirebaseCredentialsFile, false, log)
		if err != nil {
			return nil, err
		}
		ios, err := notificator.NewFCMNotificator(ctx, cfg.FirebaseCredentialsFile, true, log)
		if err != nil {
			return nil, err
		}
		sinks[models.PlatformAndroid] = android
		sinks[models.PlatformIOS] = ios
	} else {
		log.Warn("FIREBASE_CREDENTIALS_FILE not set, push notifications disabled")
	}

	if cfg.TelegramBotToken != "" {
		telegram, err := notificator.NewTelegramNotificator(cfg.TelegramBotToken, log)
		if err != nil {
			return nil, err
		}
		sinks[models.PlatformTelegram] = telegram
	}

	return sinks, nil
}
