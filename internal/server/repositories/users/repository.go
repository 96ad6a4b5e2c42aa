package users

import (
	"context"

	"github.com/jkuschner/Document-Storage-App/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	SetConfirmationCode(ctx context.Context, email, code string) error
	Confirm(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, email string, passwordHash []byte) error
}
