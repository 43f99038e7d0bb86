package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"feedbackManagement/internal/auth"
	"feedbackManagement/internal/config"
	"feedbackManagement/internal/db"
	grpcserver "feedbackManagement/internal/grpc"
	"feedbackManagement/internal/httpapi"
	"feedbackManagement/internal/logging"
	"feedbackManagement/internal/mail"
	"feedbackManagement/internal/markdown"
	"feedbackManagement/internal/service"
)

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.LoadWithDefaults()
	if err != nil {
		panic("load config: " + err.Error())
	}
	log := logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	log.Info().Stringer("config", cfg).Msg("configuration loaded")
	if cfg.UsesDevSecret() {
		log.Warn().Msg("JWT_SECRET not set, using the development secret")
	}

	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("open db")
	}
	defer func() {
		if err := d.Close(); err != nil {
			log.Error().Err(err).Msg("close db")
		}
	}()

	var sender mail.Sender = mail.LogSender{Log: log}
	if cfg.Mail.Host != "" {
		sender = mail.NewSMTPSender(mail.SMTPConfig{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			User:     cfg.Mail.User,
			Password: cfg.Mail.Password,
			From:     cfg.Mail.From,
		})
	}
	notifier := mail.NewNotifier(sender, cfg.Mail.Timeout, log)

	svc := service.New(service.Deps{
		DB:                d,
		Codec:             auth.NewTokenCodec(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL),
		Mailer:            notifier,
		Markdown:          markdown.NewRenderer(),
		Log:               log,
		RequireTeamMember: cfg.Feedback.RequireTeamMember,
	})

	gin.SetMode(gin.ReleaseMode)
	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           httpapi.NewRouter(svc, log, httpapi.Options{CORSOrigins: cfg.HTTP.CORSOrigins, Ping: d.PingContext}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Str("addr", cfg.HTTP.Address).Msg("http listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http serve")
		}
	}()

	stopGRPC, err := grpcserver.StartGRPC(cfg, svc, log)
	if err != nil {
		log.Fatal().Err(err).Msg("start grpc")
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := stopGRPC(ctx); err != nil {
		log.Error().Err(err).Msg("grpc shutdown")
	}
	if err := notifier.Close(ctx); err != nil {
		log.Error().Err(err).Msg("mail shutdown")
	}
}
