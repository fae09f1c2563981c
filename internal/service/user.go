package service

import (
	"context"
	"fmt"

	"rentmarket-backend/internal/domain"
	"rentmarket-backend/internal/merge"
	"rentmarket-backend/internal/repository"
)

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

// Create stores the profile for an authenticated subject. The user id
// is the auth subject, never generated here.
func (s *userService) Create(ctx context.Context, user *domain.User, requesterID string) (*domain.User, error) {
	u := *user
	u.ID = requesterID
	if err := s.users.Insert(ctx, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *userService) UpdateOrInsert(ctx context.Context, id string, user *domain.User, requesterID string) (*domain.User, error) {
	if id != requesterID {
		return nil, domain.Forbidden(fmt.Sprintf("user %s may not modify profile %s", requesterID, id))
	}
	u := *user
	u.ID = id
	if err := s.users.Save(ctx, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *userService) PartialUpdate(ctx context.Context, id string, patch merge.UserPatch, requesterID string) (*domain.User, error) {
	if id != requesterID {
		return nil, domain.Forbidden(fmt.Sprintf("user %s may not modify profile %s", requesterID, id))
	}
	existing, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := merge.ApplyUser(*existing, patch)
	if err := s.users.Save(ctx, &merged); err != nil {
		return nil, err
	}
	return &merged, nil
}

func (s *userService) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *userService) DeleteByID(ctx context.Context, id string, requesterID string) error {
	if id != requesterID {
		return domain.Forbidden(fmt.Sprintf("user %s may not delete profile %s", requesterID, id))
	}
	return s.users.DeleteByID(ctx, id)
}
