package main

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"filings/config"
	"filings/database"
	"filings/routers"
	"filings/services/payment"
	"filings/services/storage"
	"filings/session"
	"filings/utils"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	utils.InitLogger(cfg.LogLevel, cfg.LogFormat)

	database.ConnectDb()

	wireServices(cfg)

	scheduler := utils.InitializeDraftScheduler(cfg.DraftTTLDays)
	defer scheduler.Stop()

	app := routers.NewApp(routers.Options{UploadDir: cfg.UploadDir, AccessLog: true})

	log.Infof("Server is running on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}

// wireServices swaps the offline defaults for the configured backends.
func wireServices(cfg *config.Config) {
	if cfg.PaymentApiURL != "" {
		payment.Default = payment.NewClient(cfg.PaymentApiURL, cfg.PaymentApiKey)
		log.WithField("url", cfg.PaymentApiURL).Info("Payment gateway configured")
	} else {
		log.Warn("PAYMENT_API_URL not set, payments are confirmed offline")
	}

	if cfg.StorageApiURL != "" {
		storage.Default = storage.NewClient(cfg.StorageApiURL, cfg.StorageApiKey)
		log.WithField("url", cfg.StorageApiURL).Info("Upload API configured")
	} else {
		storage.Default = storage.LocalDisk{Dir: cfg.UploadDir}
		log.WithField("dir", cfg.UploadDir).Info("Storing uploads on local disk")
	}

	ttl := session.DefaultTTL
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			log.WithError(err).Fatal("Failed to connect to redis")
		}
		session.Default = session.NewRedisStore(client, ttl)
		log.WithField("addr", cfg.RedisAddr).Info("Session flags stored in redis")
	} else {
		session.Default = session.NewMemoryStore(ttl)
	}
}
