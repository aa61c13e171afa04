package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/gfermin360/user-verification-api/internal/auth"
	"github.com/gfermin360/user-verification-api/internal/config"
	"github.com/gfermin360/user-verification-api/internal/database"
	"github.com/gfermin360/user-verification-api/internal/handler"
	"github.com/gfermin360/user-verification-api/internal/mailer"
	"github.com/gfermin360/user-verification-api/internal/middleware"
	"github.com/gfermin360/user-verification-api/internal/repository"
	"github.com/gfermin360/user-verification-api/internal/usecase"
	"github.com/gfermin360/user-verification-api/internal/validation"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("no .env file found, using environment variables")
	}

	cfg := config.NewConfig(&logger)

	ctx := context.Background()

	mongoClient := database.ConnectMongo(ctx, &logger, cfg.MongoURI)
	defer func() {
		if err := mongoClient.Disconnect(ctx); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()

	db := mongoClient.Database(cfg.MongoDatabase)

	userRepo := repository.NewUserMongoRepository(ctx, &logger, db)
	codeRepo := repository.NewVerificationCodeMongoRepository(ctx, &logger, db)

	jwtAuth := auth.NewJWTAuthenticator(cfg.Token.Audience, cfg.Token.Issuer)
	smtpMailer := mailer.NewMailer(&logger)

	authUsecase := usecase.NewAuthUsecase(userRepo, codeRepo, jwtAuth, smtpMailer, cfg, &logger)
	verificationUsecase := usecase.NewVerificationUsecase(userRepo, codeRepo)
	passwordResetUsecase := usecase.NewPasswordResetUsecase(userRepo, codeRepo, smtpMailer, cfg)
	userUsecase := usecase.NewUserUsecase(userRepo, codeRepo)

	validator, err := validation.NewValidator()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create validator")
	}

	authHandler := handler.NewAuthHandler(
		authUsecase,
		verificationUsecase,
		passwordResetUsecase,
		validator,
		&logger,
	)
	userHandler := handler.NewUserHandler(userUsecase, validator, &logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(&logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api/v1/users", func(r chi.Router) {
		r.Get("/", userHandler.HandleListUsers)
		r.Get("/verify/{code}", authHandler.HandleVerifyEmail)
		r.Post("/reset_password/{code}", authHandler.HandleResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(5, 10))
			r.Post("/", authHandler.HandleRegister)
			r.Post("/login", authHandler.HandleLogin)
			r.Post("/reset_password", authHandler.HandleRequestPasswordReset)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(jwtAuth, cfg.Token.Secret))
			r.Get("/me", authHandler.HandleMe)
		})

		r.Get("/{id}", userHandler.HandleGetUser)
		r.Put("/{id}", userHandler.HandleUpdateUser)
		r.Delete("/{id}", userHandler.HandleDeleteUser)
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler: r,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server forced shutdown")
	}

	logger.Info().Msg("server stopped")
}
