package server

import (
	"gateway-demo-api/internal/config"
	"gateway-demo-api/internal/handlers"

	"github.com/sirupsen/logrus"
)

// Container holds all application dependencies
type Container struct {
	Config  *config.Config
	Logger  *logrus.Logger
	IPInfo  *handlers.IPInfoHandler
	Greeter *handlers.GreeterHandler
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	logger := newLogger(cfg)

	return &Container{
		Config:  cfg,
		Logger:  logger,
		IPInfo:  handlers.NewIPInfoHandler(logger),
		Greeter: handlers.NewGreeterHandler(logger),
	}, nil
}

// newLogger builds the shared logger. Lambda log collection expects one
// JSON document per line, so serverless mode forces the JSON formatter.
func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if config.IsServerlessMode() || cfg.Environment == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return logger
}
