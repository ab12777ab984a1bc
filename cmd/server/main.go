package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campusevents/config"
	_ "campusevents/docs"
	"campusevents/internal/adapters/auth"
	"campusevents/internal/adapters/email"
	deliveryhttp "campusevents/internal/delivery/http"
	"campusevents/internal/delivery/http/controllers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/repository/postgres"
	"campusevents/internal/services"
)

// @title Campus Events API
// @version 1.0
// @description Event management backend: colleges, events, registrations with capacity and waitlist, attendance, and feedback.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	db, err := postgres.Open(cfg.DBUrl)
	if err != nil {
		logger.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// Repositories
	collegeRepo := postgres.NewCollegeRepository(db)
	userRepo := postgres.NewUserRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	registrationRepo := postgres.NewRegistrationRepository(db)
	attendanceRepo := postgres.NewAttendanceRepository(db)
	feedbackRepo := postgres.NewFeedbackRepository(db)

	// Adapters
	hasher := auth.NewBcryptHasher(0) // 0 selects the bcrypt default cost
	tokenCodec := auth.NewJWTCodec(cfg.JWTSecret)
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.SES.Region,
			AccessKeyID:        cfg.SES.AccessKeyID,
			SecretAccessKey:    cfg.SES.SecretAccessKey,
			InsecureSkipVerify: cfg.SES.InsecureSkipVerify,
		},
		Logger: logger,
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}

	// Services
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())
	authService := services.NewAuthService(userRepo, collegeRepo, hasher, tokenCodec, cfg.TokenTTL)
	collegeService := services.NewCollegeService(collegeRepo)
	eventService := services.NewEventService(eventRepo, collegeRepo)
	registrationService := services.NewRegistrationService(registrationRepo, eventRepo, userRepo, emailService, logger)
	attendanceService := services.NewAttendanceService(attendanceRepo, eventRepo, userRepo, logger)
	feedbackService := services.NewFeedbackService(feedbackRepo, attendanceRepo, eventRepo)

	// HTTP
	mux := deliveryhttp.NewRouter(deliveryhttp.Controllers{
		Auth:         controllers.NewAuthController(logger, authService),
		College:      controllers.NewCollegeController(logger, collegeService),
		Event:        controllers.NewEventController(logger, eventService),
		Registration: controllers.NewRegistrationController(logger, registrationService),
		Attendance:   controllers.NewAttendanceController(logger, attendanceService),
		Feedback:     controllers.NewFeedbackController(logger, feedbackService),
	}, tokenCodec)

	var handler http.Handler = mux
	handler = middleware.CORS(cfg.AllowedOrigins, handler)
	handler = middleware.Recovery(logger, handler)
	handler = middleware.LoggingMiddleware(logger, handler)
	handler = middleware.RequestID(handler)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
}
