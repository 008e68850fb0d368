package service

import (
	"context"

	"github.com/recetario/backend/internal/model"
	"github.com/recetario/backend/internal/repository"
)

// SocialService mutates the follow graph. Uniqueness of edges is
// guaranteed by the composite primary key underneath, not by the
// existence checks here, so concurrent double-clicks resolve into
// one edge plus one conflict error.
type SocialService struct {
	Users    repository.UserStore
	Follows  repository.FollowStore
	Notifier Notifier
}

func NewSocialService(users repository.UserStore, follows repository.FollowStore, notifier Notifier) *SocialService {
	return &SocialService{Users: users, Follows: follows, Notifier: notifier}
}

// Follow creates the edge follower -> followee and notifies the
// followee. Self-follows are rejected before touching storage.
func (s *SocialService) Follow(ctx context.Context, followerID, followeeID uint64) error {
	if followerID == followeeID {
		return ErrSelfFollow
	}
	follower, err := s.Users.GetByID(ctx, followerID)
	if err != nil {
		return asNotFound(err)
	}
	if ok, err := s.Users.Exists(ctx, followeeID); err != nil {
		return err
	} else if !ok {
		return ErrNotFound
	}
	if err := s.Follows.Insert(ctx, followerID, followeeID); err != nil {
		return err // repository.ErrAlreadyFollowing or a real fault
	}
	s.Notifier.Notify(ctx, Event{
		Type:        model.NotificationNewFollower,
		RecipientID: followeeID,
		Emitter:     follower,
	})
	return nil
}

// Unfollow removes the edge. No notification on unfollow.
func (s *SocialService) Unfollow(ctx context.Context, followerID, followeeID uint64) error {
	if ok, err := s.Users.Exists(ctx, followeeID); err != nil {
		return err
	} else if !ok {
		return ErrNotFound
	}
	return s.Follows.Delete(ctx, followerID, followeeID) // repository.ErrNotFollowing when absent
}

// Followers lists the users following userID.
func (s *SocialService) Followers(ctx context.Context, userID uint64, limit, offset int) ([]model.User, error) {
	if ok, err := s.Users.Exists(ctx, userID); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrNotFound
	}
	return s.Follows.Followers(ctx, userID, limit, offset)
}

// Following lists the users userID follows.
func (s *SocialService) Following(ctx context.Context, userID uint64, limit, offset int) ([]model.User, error) {
	if ok, err := s.Users.Exists(ctx, userID); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrNotFound
	}
	return s.Follows.Following(ctx, userID, limit, offset)
}
