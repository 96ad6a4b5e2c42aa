package shares

import (
	"context"

	"github.com/jkuschner/Document-Storage-App/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, share *models.Share) error
	GetByToken(ctx context.Context, token string) (*models.Share, error)
	DeleteExpired(ctx context.Context) (int64, error)
}
