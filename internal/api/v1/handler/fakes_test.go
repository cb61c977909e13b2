package handler

import (
	"context"
	"fmt"

	"app/internal/model"
	"app/internal/service"
)

// In-memory service fakes backing the handler tests.

type fakeUserService struct {
	users map[string]*model.User // keyed by email
}

func newFakeUserService() *fakeUserService {
	return &fakeUserService{users: map[string]*model.User{}}
}

func (f *fakeUserService) addUser(email string, role string) *model.User {
	u := &model.User{ID: fmt.Sprintf("user-%d", len(f.users)+1), Email: email}
	if role != "" {
		u.Role = &role
	}
	f.users[email] = u
	return u
}

func (f *fakeUserService) Register(_ context.Context, u *model.User) (bool, error) {
	if _, ok := f.users[u.Email]; ok {
		return false, nil
	}
	u.ID = fmt.Sprintf("user-%d", len(f.users)+1)
	f.users[u.Email] = u
	return true, nil
}

func (f *fakeUserService) List(_ context.Context) ([]model.User, error) {
	out := []model.User{}
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserService) ListInstructors(_ context.Context) ([]model.User, error) {
	out := []model.User{}
	for _, u := range f.users {
		if u.HasRole(model.RoleInstructor) {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserService) RoleByEmail(_ context.Context, email string) (*string, bool, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, false, nil
	}
	return u.Role, true, nil
}

func (f *fakeUserService) HasRole(_ context.Context, email, role string) (bool, error) {
	u, ok := f.users[email]
	if !ok {
		return false, nil
	}
	return u.HasRole(role), nil
}

func (f *fakeUserService) PromoteToAdmin(_ context.Context, id string) error {
	for _, u := range f.users {
		if u.ID == id {
			role := model.RoleAdmin
			u.Role = &role
			return nil
		}
	}
	return service.ErrUserNotFound
}

type fakeCartService struct {
	items map[string]*model.CartItem
}

func newFakeCartService() *fakeCartService {
	return &fakeCartService{items: map[string]*model.CartItem{}}
}

func (f *fakeCartService) Add(_ context.Context, classID, email string) (*model.CartItem, bool, error) {
	for _, item := range f.items {
		if item.ClassID == classID && item.Email == email {
			return nil, false, nil
		}
	}
	item := &model.CartItem{ID: fmt.Sprintf("cart-%d", len(f.items)+1), ClassID: classID, Email: email}
	f.items[item.ID] = item
	return item, true, nil
}

func (f *fakeCartService) List(_ context.Context, email string) ([]model.CartItem, error) {
	out := []model.CartItem{}
	for _, item := range f.items {
		if item.Email == email {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (f *fakeCartService) Remove(_ context.Context, id, email string) error {
	item, ok := f.items[id]
	if !ok || item.Email != email {
		return service.ErrCartItemNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeCartService) CanAdd(_ context.Context, classID, email string) (bool, error) {
	for _, item := range f.items {
		if item.ClassID == classID && item.Email == email {
			return false, nil
		}
	}
	return true, nil
}

type fakePaymentService struct {
	payments []model.Payment
	carts    *fakeCartService
	courses  map[string]model.Course
}

func newFakePaymentService(carts *fakeCartService) *fakePaymentService {
	return &fakePaymentService{carts: carts, courses: map[string]model.Course{}}
}

func (f *fakePaymentService) CreateIntent(_ context.Context, price float64) (string, error) {
	return "pi_secret_123", nil
}

func (f *fakePaymentService) Settle(_ context.Context, p *model.Payment) (bool, error) {
	for _, existing := range f.payments {
		if existing.TransactionID == p.TransactionID {
			return false, nil
		}
	}
	p.ID = fmt.Sprintf("payment-%d", len(f.payments)+1)
	f.payments = append(f.payments, *p)
	if f.carts != nil {
		for _, id := range p.CartIDs {
			delete(f.carts.items, id)
		}
	}
	return true, nil
}

func (f *fakePaymentService) History(_ context.Context, email string) ([]model.Payment, error) {
	out := []model.Payment{}
	for _, p := range f.payments {
		if p.Email == email {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePaymentService) EnrolledCourses(_ context.Context, email string) ([]model.Course, error) {
	seen := map[string]struct{}{}
	out := []model.Course{}
	for _, p := range f.payments {
		if p.Email != email {
			continue
		}
		for _, id := range p.ClassIDs {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			if c, ok := f.courses[id]; ok {
				out = append(out, c)
			}
		}
	}
	return out, nil
}

var _ service.UserService = (*fakeUserService)(nil)
var _ service.CartService = (*fakeCartService)(nil)
var _ service.PaymentService = (*fakePaymentService)(nil)
