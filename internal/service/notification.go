package service

import (
	"context"
	"errors"
	"gig-marketplace-api/internal/notifier"
	"gig-marketplace-api/internal/repo"
	"gig-marketplace-api/internal/repo/repo_errors"
)

type NotificationService struct {
	userRepo repo.User
	hub      *notifier.Hub
}

func NewNotificationService(repos *repo.Repositories, hub *notifier.Hub) *NotificationService {
	return &NotificationService{
		userRepo: repos.User,
		hub:      hub,
	}
}

// Subscribe resolves the username to its user id and opens a hub
// subscription for it. The returned cancel must be called when the
// listener goes away.
func (s *NotificationService) Subscribe(ctx context.Context, username string) (<-chan notifier.Event, func(), error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}

		return nil, nil, err
	}

	ch, cancel := s.hub.Subscribe(user.Id.String())

	return ch, cancel, nil
}
