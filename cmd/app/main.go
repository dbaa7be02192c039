package main

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sushihentaime/blogapi/internal/blogservice"
	"github.com/sushihentaime/blogapi/internal/common"
	"github.com/sushihentaime/blogapi/internal/mailservice"
	"github.com/sushihentaime/blogapi/internal/metrics"
	"github.com/sushihentaime/blogapi/internal/userservice"
)

type application struct {
	config      *Config
	logger      *slog.Logger
	userService *userservice.UserService
	blogService *blogservice.BlogService
	mailService *mailservice.MailService
	collector   *metrics.Collector
	registry    *prometheus.Registry
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	secret, err := signingSecret(cfg)
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if secret == userservice.DevelopmentSecret {
		logger.Warn("JWT_SECRET is not set, signing tokens with the development secret")
	}

	dsn := common.DSN(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)

	err = common.Migrate(dsn)
	if err != nil {
		logger.Error("failed to migrate the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := common.NewDB(dsn, 10, 5, 15*time.Minute)
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	app := &application{
		config:      cfg,
		logger:      logger,
		blogService: blogservice.NewBlogService(db, common.NewCache(5*time.Minute, 10*time.Minute)),
		collector:   metrics.NewCollector(registry),
		registry:    registry,
	}

	tokens := userservice.NewTokenMaker(secret, userservice.TokenTTL)

	if cfg.MQHost == "" {
		logger.Info("RABBITMQ_HOST is not set, user events and welcome emails are disabled")
		app.userService = userservice.NewUserService(db, nil, tokens)
	} else {
		broker, err := common.NewMessageBroker(common.BrokerURI(cfg.MQUser, cfg.MQPassword, cfg.MQHost, cfg.MQPort))
		if err != nil {
			logger.Error("failed to connect to the message broker", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer broker.Close()

		err = common.SetupUserExchange(broker)
		if err != nil {
			logger.Error("failed to setup the user exchange", slog.String("error", err.Error()))
			os.Exit(1)
		}

		app.userService = userservice.NewUserService(db, broker, tokens)
		app.mailService = mailservice.NewMailService(broker, cfg.MailHost, cfg.MailUser, cfg.MailPassword, cfg.MailSender, cfg.MailPort, logger)
		defer app.mailService.Close()

		err = app.mailService.SendWelcomeEmail()
		if err != nil {
			logger.Error("failed to start the welcome email consumer", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	err = app.serve()
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// signingSecret returns the configured JWT secret. Only development may fall back to the built-in secret.
func signingSecret(cfg *Config) (string, error) {
	if cfg.JWTSecret != "" {
		return cfg.JWTSecret, nil
	}

	if !cfg.isDevelopment() {
		return "", errors.New("JWT_SECRET must be set outside development")
	}

	return userservice.DevelopmentSecret, nil
}
