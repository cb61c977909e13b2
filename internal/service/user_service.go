package service

import (
	"context"
	"errors"

	"app/internal/model"
	"app/internal/repository"
)

var ErrUserNotFound = errors.New("user not found")

// UserService covers account creation, role lookups and admin promotion.
type UserService interface {
	// Register creates the account on first sign-in. Returns false when an
	// account with that email already exists.
	Register(ctx context.Context, u *model.User) (bool, error)
	List(ctx context.Context) ([]model.User, error)
	ListInstructors(ctx context.Context) ([]model.User, error)
	// RoleByEmail returns the user's role, nil when the user exists but has
	// no role. The second return is false when no such user exists.
	RoleByEmail(ctx context.Context, email string) (*string, bool, error)
	// HasRole reports whether the user with the given email holds the role.
	HasRole(ctx context.Context, email, role string) (bool, error)
	PromoteToAdmin(ctx context.Context, id string) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Register(ctx context.Context, u *model.User) (bool, error) {
	return s.userRepo.CreateUser(ctx, u)
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.userRepo.ListUsers(ctx)
}

func (s *userService) ListInstructors(ctx context.Context) ([]model.User, error) {
	return s.userRepo.ListUsersByRole(ctx, model.RoleInstructor)
}

func (s *userService) RoleByEmail(ctx context.Context, email string) (*string, bool, error) {
	u, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, false, err
	}
	if u == nil {
		return nil, false, nil
	}
	return u.Role, true, nil
}

func (s *userService) HasRole(ctx context.Context, email, role string) (bool, error) {
	u, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if u == nil {
		return false, nil
	}
	return u.HasRole(role), nil
}

func (s *userService) PromoteToAdmin(ctx context.Context, id string) error {
	promoted, err := s.userRepo.PromoteToAdmin(ctx, id)
	if err != nil {
		return err
	}
	if !promoted {
		return ErrUserNotFound
	}
	return nil
}
