package files

import (
	"context"

	"github.com/jkuschner/Document-Storage-App/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, file *models.File) error
	ListByOwner(ctx context.Context, userID string) ([]*models.File, error)
	GetByID(ctx context.Context, userID, id string) (*models.File, error)
	MarkCompleted(ctx context.Context, userID, id string) error
	Delete(ctx context.Context, userID, id string) error
}
