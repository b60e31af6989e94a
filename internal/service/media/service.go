package media

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"tickly/internal/config"
	"tickly/internal/domain"
	"tickly/internal/repository"
)

type Service interface {
	Upload(ctx context.Context, input domain.CreateMediaInput, fileName string, fileSize int64, mimeType string, reader io.Reader) (*domain.Media, error)
	GetByID(ctx context.Context, id int64) (*domain.Media, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Media], error)
}

type service struct {
	repos       *repository.Repositories
	minioClient *minio.Client
	cfg         *config.Config
}

func NewService(repos *repository.Repositories, minioClient *minio.Client, cfg *config.Config) Service {
	return &service{repos: repos, minioClient: minioClient, cfg: cfg}
}

func (s *service) Upload(ctx context.Context, input domain.CreateMediaInput, fileName string, fileSize int64, mimeType string, reader io.Reader) (*domain.Media, error) {
	if err := s.validateTargets(ctx, input); err != nil {
		return nil, err
	}

	storagePath := fmt.Sprintf("media/%s/%s", time.Now().Format("2006/01"), uuid.New().String())

	_, err := s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, storagePath, reader, fileSize, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	media := &domain.Media{
		Filename:    fileName,
		Typemime:    mimeType,
		URL:         s.publicURL(storagePath),
		StoragePath: storagePath,
		TicketID:    input.TicketID,
		UserID:      input.UserID,
		StructureID: input.StructureID,
		CommentID:   input.CommentID,
	}

	if err := s.repos.Media.Create(ctx, media); err != nil {
		_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, storagePath, minio.RemoveObjectOptions{})
		return nil, err
	}

	if err := s.linkTargets(ctx, media); err != nil {
		return nil, err
	}
	return media, nil
}

// validateTargets checks that whatever the media points at actually exists.
func (s *service) validateTargets(ctx context.Context, input domain.CreateMediaInput) error {
	if input.TicketID != nil {
		ticket, err := s.repos.Ticket.GetByID(ctx, *input.TicketID)
		if err != nil {
			return err
		}
		if ticket == nil {
			return domain.ErrTicketNotFound
		}
	}
	if input.UserID != nil {
		user, err := s.repos.User.GetByID(ctx, *input.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
	}
	if input.StructureID != nil {
		structure, err := s.repos.Structure.GetByID(ctx, *input.StructureID)
		if err != nil {
			return err
		}
		if structure == nil {
			return domain.ErrStructureNotFound
		}
	}
	if input.CommentID != nil {
		comment, err := s.repos.Comment.GetByID(ctx, *input.CommentID)
		if err != nil {
			return err
		}
		if comment == nil {
			return domain.ErrCommentNotFound
		}
	}
	return nil
}

// linkTargets propagates the uploaded URL onto the linked rows. A comment keeps
// at most one attachment: any previous one is removed first.
func (s *service) linkTargets(ctx context.Context, media *domain.Media) error {
	if media.UserID != nil {
		if err := s.repos.User.SetAvatar(ctx, *media.UserID, media.URL); err != nil {
			return err
		}
	}
	if media.StructureID != nil {
		if err := s.repos.Structure.SetAvatar(ctx, *media.StructureID, media.URL); err != nil {
			return err
		}
	}
	if media.CommentID != nil {
		previous, err := s.repos.Media.GetByComment(ctx, *media.CommentID)
		if err != nil {
			return err
		}
		if previous != nil && previous.ID != media.ID {
			if err := s.repos.Media.Delete(ctx, previous.ID); err != nil {
				return err
			}
			_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, previous.StoragePath, minio.RemoveObjectOptions{})
		}
		if err := s.repos.Comment.SetMediaURL(ctx, *media.CommentID, media.URL); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*domain.Media, error) {
	media, err := s.repos.Media.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if media == nil {
		return nil, domain.ErrMediaNotFound
	}
	media.URL = s.publicURL(media.StoragePath)
	return media, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	media, err := s.repos.Media.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if media == nil {
		return domain.ErrMediaNotFound
	}

	if err := s.repos.Media.Delete(ctx, id); err != nil {
		return err
	}

	_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, media.StoragePath, minio.RemoveObjectOptions{})
	return nil
}

func (s *service) List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Media], error) {
	params.Validate()
	mediaList, total, err := s.repos.Media.List(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Media]{}, err
	}

	for i := range mediaList {
		mediaList[i].URL = s.publicURL(mediaList[i].StoragePath)
	}

	return domain.NewPaginatedResponse(mediaList, params.Page, params.PageSize, total), nil
}

func (s *service) publicURL(storagePath string) string {
	scheme := "http"
	if s.cfg.MinIOUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, url.PathEscape(storagePath))
}
