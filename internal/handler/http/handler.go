package http

import (
	"time"

	"github.com/MKhiriev/go-microblog/internal/adapter"
	"github.com/MKhiriev/go-microblog/internal/config"
	"github.com/MKhiriev/go-microblog/internal/logger"
	"github.com/MKhiriev/go-microblog/internal/service"
)

type Handler struct {
	services *service.Services
	mailer   adapter.Mailer

	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, mailer adapter.Mailer, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")

	requestTimeout := cfg.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = config.DefaultRequestTimeout
	}

	return &Handler{
		services:       services,
		mailer:         mailer,
		requestTimeout: requestTimeout,
		logger:         logger,
	}
}
