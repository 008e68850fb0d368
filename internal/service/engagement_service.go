package service

import (
	"context"
	"strings"
	"time"

	"github.com/recetario/backend/internal/model"
	"github.com/recetario/backend/internal/repository"
)

// EngagementService mutates likes, ratings and comments on recipes.
type EngagementService struct {
	Users    repository.UserStore
	Recipes  repository.RecipeStore
	Likes    repository.LikeStore
	Ratings  repository.RatingStore
	Comments repository.CommentStore
	Notifier Notifier
}

func NewEngagementService(users repository.UserStore, recipes repository.RecipeStore, likes repository.LikeStore, ratings repository.RatingStore, comments repository.CommentStore, notifier Notifier) *EngagementService {
	return &EngagementService{Users: users, Recipes: recipes, Likes: likes, Ratings: ratings, Comments: comments, Notifier: notifier}
}

// ToggleLike flips the caller's like on a recipe and returns the new
// state. A fresh like notifies the recipe owner unless the liker is
// the owner; removing a like notifies nobody. The flip itself is one
// atomic storage operation, so there is no window between "check if
// liked" and "like" for a second request to corrupt.
func (s *EngagementService) ToggleLike(ctx context.Context, userID, recipeID uint64) (bool, error) {
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return false, asNotFound(err)
	}
	recipe, err := s.Recipes.GetByID(ctx, recipeID)
	if err != nil {
		return false, asNotFound(err)
	}
	liked, err := s.Likes.Toggle(ctx, userID, recipeID)
	if err != nil {
		return false, err
	}
	if liked && recipe.AuthorID != userID {
		s.Notifier.Notify(ctx, Event{
			Type:        model.NotificationNewLike,
			RecipientID: recipe.AuthorID,
			Emitter:     user,
			Recipe:      &recipe,
		})
	}
	return liked, nil
}

// Rate records the caller's score for a recipe. Re-rating overwrites
// the previous score and timestamp; there is never more than one
// rating row per (user, recipe). Ratings are aggregate signals, so
// no notification is emitted.
func (s *EngagementService) Rate(ctx context.Context, userID, recipeID uint64, score int) error {
	if score < 1 || score > 5 {
		return ErrInvalidScore
	}
	if ok, err := s.Users.Exists(ctx, userID); err != nil {
		return err
	} else if !ok {
		return ErrNotFound
	}
	if _, err := s.Recipes.GetByID(ctx, recipeID); err != nil {
		return asNotFound(err)
	}
	return s.Ratings.Upsert(ctx, userID, recipeID, score, time.Now())
}

// Comment adds a comment to a recipe and notifies its owner, except
// when the author comments on their own recipe.
func (s *EngagementService) Comment(ctx context.Context, userID, recipeID uint64, text string) (model.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return model.Comment{}, ErrEmptyText
	}
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return model.Comment{}, asNotFound(err)
	}
	recipe, err := s.Recipes.GetByID(ctx, recipeID)
	if err != nil {
		return model.Comment{}, asNotFound(err)
	}
	id, err := s.Comments.Create(ctx, userID, recipeID, text)
	if err != nil {
		return model.Comment{}, err
	}
	if recipe.AuthorID != userID {
		s.Notifier.Notify(ctx, Event{
			Type:        model.NotificationNewComment,
			RecipientID: recipe.AuthorID,
			Emitter:     user,
			Recipe:      &recipe,
		})
	}
	return s.Comments.GetByID(ctx, id)
}

// ListComments lists a recipe's comments, oldest first.
func (s *EngagementService) ListComments(ctx context.Context, recipeID uint64, limit, offset int) ([]model.Comment, error) {
	if _, err := s.Recipes.GetByID(ctx, recipeID); err != nil {
		return nil, asNotFound(err)
	}
	return s.Comments.ListByRecipe(ctx, recipeID, limit, offset)
}

// DeleteComment removes a comment. Only its author may delete it;
// this is an ownership check, not a role check, and a missing
// comment is not found regardless of who asks.
func (s *EngagementService) DeleteComment(ctx context.Context, callerID, commentID uint64) error {
	c, err := s.Comments.GetByID(ctx, commentID)
	if err != nil {
		return asNotFound(err)
	}
	if c.UserID != callerID {
		return repository.ErrForbidden
	}
	return s.Comments.Delete(ctx, commentID)
}
