package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/cinehub/booking-api/internal/auth"
	"github.com/cinehub/booking-api/internal/config"
	"github.com/cinehub/booking-api/internal/database"
	"github.com/cinehub/booking-api/internal/email"
	internalhttp "github.com/cinehub/booking-api/internal/http"
	"github.com/cinehub/booking-api/internal/logging"
	"github.com/cinehub/booking-api/internal/movie"
	"github.com/cinehub/booking-api/internal/showtime"
	"github.com/cinehub/booking-api/internal/user"
)

// @title           Cinema Booking API
// @version         1.0
// @description     Identity, movie catalog and showtime API for the cinema booking site.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.NewLogger(cfg.Server.IsDevelopment())
	logger.Info("starting api", "env", cfg.Server.Env, "port", cfg.Server.Port)

	// Postgres
	sqlDB, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	logger.Info("connected to database", "host", cfg.Database.Host, "db", cfg.Database.DBName)

	db := database.NewBunDB(sqlDB)
	defer db.Close()

	// Redis (OTP store)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	logger.Info("connected to redis", "addr", cfg.Redis.Address())

	// Repositories
	userRepo := user.NewRepository(db)
	otpRepo := auth.NewRedisOTPRepository(redisClient, cfg.Auth.OTPTTL)
	movieRepo := movie.NewRepository(db)
	showtimeRepo := showtime.NewRepository(db)

	// Services
	tokenService, err := auth.NewPasetoService(cfg.Auth.TokenKey)
	if err != nil {
		return fmt.Errorf("failed to create token service: %w", err)
	}

	emailService := email.NewService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromName,
	)

	authService := auth.NewService(userRepo, otpRepo, tokenService, emailService, logger, cfg.Auth.TokenDuration)

	// HTTP layer
	authHandler := auth.NewHandler(authService, logger)
	authMiddleware := auth.NewMiddleware(tokenService, userRepo)
	movieHandler := movie.NewHandler(movieRepo, logger)
	showtimeHandler := showtime.NewHandler(showtimeRepo, logger)

	router := internalhttp.NewRouter(cfg, authHandler, authMiddleware, movieHandler, showtimeHandler, logger)

	server := internalhttp.NewServer(
		":"+cfg.Server.Port,
		router,
		cfg.Server.ReadTimeout,
		cfg.Server.WriteTimeout,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return err
	case sig := <-shutdown:
		logger.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}
