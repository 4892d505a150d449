package service

import (
	"github.com/MKhiriev/go-microblog/internal/config"
	"github.com/MKhiriev/go-microblog/internal/crypto"
	"github.com/MKhiriev/go-microblog/internal/logger"
	"github.com/MKhiriev/go-microblog/internal/store"
	"github.com/MKhiriev/go-microblog/models"
)

type Services struct {
	UserService    UserService
	GraphService   GraphService
	PostService    PostService
	FeedService    FeedService
	SessionService SessionService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg config.App, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg, buildInfo, logger)
	if err != nil {
		return nil, err
	}

	credentials := crypto.NewCredentialManager(cfg.PasswordCost, cfg.TokenDigestKey, cfg.ResetTokenTTL)

	userService := NewUserService(
		storages.UserRepository,
		storages.RelationshipRepository,
		storages.PostRepository,
		credentials,
		logger,
	)
	postService := NewPostService(storages.UserRepository, storages.PostRepository, logger)

	return &Services{
		UserService:    NewUserValidationService().Wrap(userService),
		GraphService:   NewGraphService(storages.UserRepository, storages.RelationshipRepository, logger),
		PostService:    NewPostValidationService().Wrap(postService),
		FeedService:    NewFeedService(storages.PostRepository, cfg.FeedPageSize, logger),
		SessionService: NewSessionService(storages.UserRepository, credentials, cfg, logger),
		AppInfoService: appInfoService,
	}, nil
}
