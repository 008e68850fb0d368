package repository

import (
	"context"
	"time"

	"github.com/recetario/backend/internal/model"
)

// Store interfaces consumed by the service layer. The concrete SQL
// repositories in this package implement them; tests substitute
// in-memory fakes.

type UserStore interface {
	Create(ctx context.Context, username, email, passwordHash string, roleID uint8) (uint64, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	Exists(ctx context.Context, id uint64) (bool, error)
}

type RoleStore interface {
	GetByName(ctx context.Context, name string) (model.Role, error)
}

type RevocationStore interface {
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

type FollowStore interface {
	Insert(ctx context.Context, followerID, followeeID uint64) error
	Delete(ctx context.Context, followerID, followeeID uint64) error
	Followers(ctx context.Context, userID uint64, limit, offset int) ([]model.User, error)
	Following(ctx context.Context, userID uint64, limit, offset int) ([]model.User, error)
}

type LikeStore interface {
	Toggle(ctx context.Context, userID, recipeID uint64) (bool, error)
	Exists(ctx context.Context, userID, recipeID uint64) (bool, error)
}

type RatingStore interface {
	Upsert(ctx context.Context, userID, recipeID uint64, score int, ratedAt time.Time) error
}

type CommentStore interface {
	Create(ctx context.Context, userID, recipeID uint64, text string) (uint64, error)
	GetByID(ctx context.Context, id uint64) (model.Comment, error)
	ListByRecipe(ctx context.Context, recipeID uint64, limit, offset int) ([]model.Comment, error)
	Delete(ctx context.Context, id uint64) error
}

type RecipeStore interface {
	GetByID(ctx context.Context, id uint64) (model.Recipe, error)
}

type NotificationStore interface {
	Create(ctx context.Context, n *model.Notification) (uint64, error)
	GetByID(ctx context.Context, id uint64) (model.Notification, error)
	ListByRecipient(ctx context.Context, recipientID uint64, limit, offset int) ([]model.Notification, error)
	MarkRead(ctx context.Context, id uint64) error
	Delete(ctx context.Context, id uint64) error
}
