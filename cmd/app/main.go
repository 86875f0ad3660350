package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Wezylnia/GymSystem-sub001/internal/appointment"
	"github.com/Wezylnia/GymSystem-sub001/internal/booking"
	"github.com/Wezylnia/GymSystem-sub001/internal/clock"
	"github.com/Wezylnia/GymSystem-sub001/internal/config"
	"github.com/Wezylnia/GymSystem-sub001/internal/db"
	"github.com/Wezylnia/GymSystem-sub001/internal/events"
	"github.com/Wezylnia/GymSystem-sub001/internal/gym"
	"github.com/Wezylnia/GymSystem-sub001/internal/logger"
	"github.com/Wezylnia/GymSystem-sub001/internal/notify"
	"github.com/Wezylnia/GymSystem-sub001/internal/server"
	"github.com/Wezylnia/GymSystem-sub001/internal/trainer"
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

	logger.Info("Starting gym appointments API", "port", cfg.Port, "timezone", loc.String())

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connected")

	if err := db.RunMigrations(database, cfg.MigrationsPath); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Migrations completed")

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	publishers := events.Multi{notify.NewQueue(rdb, clk)}
	if cfg.NatsURL != "" {
		nats, err := events.NewNatsPublisher(cfg.NatsURL)
		if err != nil {
			logger.Fatalf("Failed to connect to NATS: %v", err)
		}
		defer nats.Close()
		publishers = append(publishers, nats)
		logger.Info("NATS publisher connected", "url", cfg.NatsURL)
	}

	appointments := appointment.NewRepository(database, clk)
	windows := trainer.NewAvailabilityRepository(database, clk)
	trainers := trainer.NewTrainerRepository(database, clk)
	specialties := trainer.NewSpecialtyRepository(database, clk)
	services := gym.NewServiceRepository(database, clk)
	hours := gym.NewWorkingHoursRepository(database, clk)
	locations := gym.NewLocationRepository(database, clk)
	tx := db.NewTransactor(database)

	evaluator := booking.NewEvaluator(appointments, windows)
	booker := booking.NewBooker(booking.Deps{
		Evaluator:    evaluator,
		Services:     services,
		Hours:        hours,
		Appointments: appointments,
		Tx:           tx,
		Locker:       db.NewAdvisoryLocker(database),
		Publisher:    publishers,
		Clock:        clk,
		Timeout:      cfg.BookingTimeout,
	})
	finder := booking.NewFinder(evaluator, services, specialties, trainers, cfg.FinderConcurrency)

	srv := server.New(cfg, server.Handlers{
		Booking:     booking.NewHandler(evaluator, booker, finder),
		Appointment: appointment.NewHandler(appointment.NewManager(appointments, tx, publishers, clk)),
		Trainer:     trainer.NewHandler(trainer.NewManager(trainers, windows, clk)),
		Gym:         gym.NewHandler(gym.NewManager(locations, hours, clk)),
		Checks: []server.Check{
			{Name: "postgres", Ping: database.PingContext},
			{Name: "redis", Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
		},
	})

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal: %v", sig)
	case err := <-serverErrChan:
		logger.Errorf("Server error: %v", err)
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}

	logger.Info("Server stopped")
}
