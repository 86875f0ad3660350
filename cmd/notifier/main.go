package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Wezylnia/GymSystem-sub001/internal/clock"
	"github.com/Wezylnia/GymSystem-sub001/internal/config"
	"github.com/Wezylnia/GymSystem-sub001/internal/db"
	"github.com/Wezylnia/GymSystem-sub001/internal/logger"
	"github.com/Wezylnia/GymSystem-sub001/internal/notify"
	"github.com/redis/go-redis/v9"
)

func main() {
	logger.Init()
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFormat); err != nil {
		logger.Fatalf("Invalid log level: %v", err)
	}
	defer logger.Sync()

	loc, err := cfg.Location()
	if err != nil {
		logger.Fatalf("Failed to load timezone: %v", err)
	}
	clk := clock.Local{Location: loc}

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.Fatalf("Failed to connect to redis: %v", err)
	}

	sender := notify.NewSMTPSender(notify.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Pass:     cfg.SMTPPass,
		From:     cfg.EmailFrom,
		FromName: cfg.EmailFromName,
	})
	worker := notify.NewWorker(rdb, notify.NewQueue(rdb, clk), notify.NewMemberRepository(database, clk), sender)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker.Run(ctx)
}
