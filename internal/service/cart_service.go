package service

import (
	"context"
	"errors"

	"app/internal/model"
	"app/internal/repository"
)

var ErrCartItemNotFound = errors.New("cart item not found")

// CartService covers the shopping cart: adds are idempotent per
// (class, email) pair and removals are scoped to the owner.
type CartService interface {
	// Add puts a class in the user's cart. Returns false when it was
	// already there.
	Add(ctx context.Context, classID, email string) (*model.CartItem, bool, error)
	List(ctx context.Context, email string) ([]model.CartItem, error)
	Remove(ctx context.Context, id, email string) error
	// CanAdd reports whether the class is NOT yet in the user's cart.
	CanAdd(ctx context.Context, classID, email string) (bool, error)
}

type cartService struct {
	cartRepo repository.CartRepository
}

func NewCartService(cartRepo repository.CartRepository) CartService {
	return &cartService{cartRepo: cartRepo}
}

func (s *cartService) Add(ctx context.Context, classID, email string) (*model.CartItem, bool, error) {
	item := &model.CartItem{ClassID: classID, Email: email}
	added, err := s.cartRepo.AddItem(ctx, item)
	if err != nil {
		return nil, false, err
	}
	return item, added, nil
}

func (s *cartService) List(ctx context.Context, email string) ([]model.CartItem, error) {
	return s.cartRepo.ListByEmail(ctx, email)
}

func (s *cartService) Remove(ctx context.Context, id, email string) error {
	deleted, err := s.cartRepo.DeleteItem(ctx, id, email)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCartItemNotFound
	}
	return nil
}

func (s *cartService) CanAdd(ctx context.Context, classID, email string) (bool, error) {
	exists, err := s.cartRepo.Exists(ctx, classID, email)
	if err != nil {
		return false, err
	}
	return !exists, nil
}
