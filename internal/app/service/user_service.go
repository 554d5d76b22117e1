package service

import (
	"context"

	"wishlist_api/internal/domain/model"
	"wishlist_api/internal/domain/repository"
)

// UserService backs the admin surface. Role enforcement happens in the
// middleware chain; this service assumes an admin principal.
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.FindAll(ctx)
}
