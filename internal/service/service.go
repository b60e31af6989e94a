package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"tickly/internal/config"
	"tickly/internal/query"
	"tickly/internal/repository"
	"tickly/internal/service/address"
	"tickly/internal/service/auditlog"
	"tickly/internal/service/auth"
	"tickly/internal/service/comment"
	"tickly/internal/service/email"
	"tickly/internal/service/media"
	"tickly/internal/service/reference"
	"tickly/internal/service/structure"
	"tickly/internal/service/ticket"
	"tickly/internal/service/user"
)

type Services struct {
	Auth      auth.Service
	User      user.Service
	Structure structure.Service
	Ticket    ticket.Service
	Comment   comment.Service
	Address   address.Service
	Media     media.Service
	Reference reference.Service
	AuditLog  auditlog.Service
	Email     email.Service
}

func NewServices(repos *repository.Repositories, builder *query.Builder, redisClient *redis.Client, minioClient *minio.Client, cfg *config.Config, log *logrus.Logger) *Services {
	emailService := email.NewService(cfg)

	return &Services{
		Auth:      auth.NewService(repos.User, cfg),
		User:      user.NewService(repos, builder),
		Structure: structure.NewService(repos, builder),
		Ticket:    ticket.NewService(repos, builder, redisClient, emailService, log),
		Comment:   comment.NewService(repos, emailService, log),
		Address:   address.NewService(repos),
		Media:     media.NewService(repos, minioClient, cfg),
		Reference: reference.NewService(repos),
		AuditLog:  auditlog.NewService(repos),
		Email:     emailService,
	}
}
