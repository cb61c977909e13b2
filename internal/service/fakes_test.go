package service

import (
	"context"
	"fmt"
	"time"

	"app/internal/model"
	"app/internal/repository"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	users map[string]*model.User // keyed by email
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, u *model.User) (bool, error) {
	if _, ok := f.users[u.Email]; ok {
		return false, nil
	}
	if u.ID == "" {
		u.ID = fmt.Sprintf("user-%d", len(f.users)+1)
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	f.users[u.Email] = u
	return true, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	return f.users[email], nil
}

func (f *fakeUserRepo) ListUsers(_ context.Context) ([]model.User, error) {
	out := []model.User{}
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) ListUsersByRole(_ context.Context, role string) ([]model.User, error) {
	out := []model.User{}
	for _, u := range f.users {
		if u.HasRole(role) {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) PromoteToAdmin(_ context.Context, id string) (bool, error) {
	for _, u := range f.users {
		if u.ID == id {
			role := model.RoleAdmin
			u.Role = &role
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) CountUsers(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

type fakeCourseRepo struct {
	courses map[string]*model.Course
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: map[string]*model.Course{}}
}

func (f *fakeCourseRepo) CreateCourse(_ context.Context, c *model.Course) error {
	if c.ID == "" {
		c.ID = fmt.Sprintf("course-%d", len(f.courses)+1)
	}
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	f.courses[c.ID] = c
	return nil
}

func (f *fakeCourseRepo) GetCourseByID(_ context.Context, id string) (*model.Course, error) {
	return f.courses[id], nil
}

func (f *fakeCourseRepo) ListCourses(_ context.Context) ([]model.Course, error) {
	out := []model.Course{}
	for _, c := range f.courses {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCourseRepo) ListCoursesByStatus(_ context.Context, status string) ([]model.Course, error) {
	out := []model.Course{}
	for _, c := range f.courses {
		if c.Status == status {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCourseRepo) ListCoursesByInstructor(_ context.Context, email string) ([]model.Course, error) {
	out := []model.Course{}
	for _, c := range f.courses {
		if c.InstructorEmail == email {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCourseRepo) GetCoursesByIDs(_ context.Context, ids []string) ([]model.Course, error) {
	out := []model.Course{}
	for _, id := range ids {
		if c, ok := f.courses[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCourseRepo) UpdateCourseDetails(_ context.Context, id, instructorEmail string, upd repository.CourseUpdate) (bool, error) {
	c, ok := f.courses[id]
	if !ok || c.InstructorEmail != instructorEmail {
		return false, nil
	}
	c.Name = upd.Name
	c.PictureURL = upd.PictureURL
	c.SubCategory = upd.SubCategory
	c.Price = upd.Price
	c.AvailableQuantity = upd.AvailableQuantity
	return true, nil
}

func (f *fakeCourseRepo) UpdateCourseStatus(_ context.Context, id, status string) (bool, error) {
	c, ok := f.courses[id]
	if !ok {
		return false, nil
	}
	c.Status = status
	return true, nil
}

func (f *fakeCourseRepo) DeleteCourse(_ context.Context, id, instructorEmail string) (bool, error) {
	c, ok := f.courses[id]
	if !ok || c.InstructorEmail != instructorEmail {
		return false, nil
	}
	delete(f.courses, id)
	return true, nil
}

func (f *fakeCourseRepo) CountCourses(_ context.Context) (int64, error) {
	return int64(len(f.courses)), nil
}

type fakeCartRepo struct {
	items map[string]*model.CartItem // keyed by id
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{items: map[string]*model.CartItem{}}
}

func (f *fakeCartRepo) AddItem(_ context.Context, item *model.CartItem) (bool, error) {
	for _, existing := range f.items {
		if existing.ClassID == item.ClassID && existing.Email == item.Email {
			return false, nil
		}
	}
	if item.ID == "" {
		item.ID = fmt.Sprintf("cart-%d", len(f.items)+1)
	}
	item.CreatedAt = time.Now()
	f.items[item.ID] = item
	return true, nil
}

func (f *fakeCartRepo) ListByEmail(_ context.Context, email string) ([]model.CartItem, error) {
	out := []model.CartItem{}
	for _, item := range f.items {
		if item.Email == email {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (f *fakeCartRepo) DeleteItem(_ context.Context, id, email string) (bool, error) {
	item, ok := f.items[id]
	if !ok || item.Email != email {
		return false, nil
	}
	delete(f.items, id)
	return true, nil
}

func (f *fakeCartRepo) Exists(_ context.Context, classID, email string) (bool, error) {
	for _, item := range f.items {
		if item.ClassID == classID && item.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type fakePaymentRepo struct {
	payments []model.Payment
	carts    *fakeCartRepo
}

func newFakePaymentRepo(carts *fakeCartRepo) *fakePaymentRepo {
	return &fakePaymentRepo{carts: carts}
}

func (f *fakePaymentRepo) Settle(ctx context.Context, p *model.Payment) (bool, error) {
	for _, existing := range f.payments {
		if existing.TransactionID == p.TransactionID {
			return false, nil
		}
	}
	if p.ID == "" {
		p.ID = fmt.Sprintf("payment-%d", len(f.payments)+1)
	}
	p.CreatedAt = time.Now()
	f.payments = append(f.payments, *p)
	if f.carts != nil {
		for _, cartID := range p.CartIDs {
			f.carts.DeleteItem(ctx, cartID, p.Email)
		}
	}
	return true, nil
}

func (f *fakePaymentRepo) ListByEmail(_ context.Context, email string) ([]model.Payment, error) {
	out := []model.Payment{}
	for _, p := range f.payments {
		if p.Email == email {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) CountPayments(_ context.Context) (int64, error) {
	return int64(len(f.payments)), nil
}

func (f *fakePaymentRepo) TotalRevenue(_ context.Context) (float64, error) {
	var total float64
	for _, p := range f.payments {
		total += p.Price
	}
	return total, nil
}

type fakeIntentCreator struct {
	lastPrice float64
}

func (f *fakeIntentCreator) CreatePaymentIntent(_ context.Context, price float64) (string, error) {
	f.lastPrice = price
	return "pi_secret_123", nil
}
