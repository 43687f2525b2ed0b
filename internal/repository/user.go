package repository

import (
	"context"
	"time"

	"github.com/adilbekov/shopscout/internal/domain"
)

type CreateUserInput struct {
	Name     string
	Email    string
	ImageURL *string
	Password *string
	Verified bool
}

type UserRepository interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	MarkVerified(ctx context.Context, id string) error

	// ReplaceToken purges any previous verification tokens for the user and
	// stores the new one, so at most one active token exists per user.
	ReplaceToken(ctx context.Context, userID, token string) error
	FindToken(ctx context.Context, userID, token string) (*domain.VerificationToken, error)
	DeleteToken(ctx context.Context, token string) error
	PurgeTokensBefore(ctx context.Context, cutoff time.Time) (int, error)
}
