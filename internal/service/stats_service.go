package service

import (
	"context"

	"app/internal/model"
	"app/internal/repository"
)

// StatsService produces the admin dashboard aggregates.
type StatsService interface {
	AdminStats(ctx context.Context) (*model.AdminStats, error)
}

type statsService struct {
	userRepo    repository.UserRepository
	courseRepo  repository.CourseRepository
	paymentRepo repository.PaymentRepository
}

func NewStatsService(
	userRepo repository.UserRepository,
	courseRepo repository.CourseRepository,
	paymentRepo repository.PaymentRepository,
) StatsService {
	return &statsService{userRepo: userRepo, courseRepo: courseRepo, paymentRepo: paymentRepo}
}

func (s *statsService) AdminStats(ctx context.Context) (*model.AdminStats, error) {
	users, err := s.userRepo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	classes, err := s.courseRepo.CountCourses(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.CountPayments(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.paymentRepo.TotalRevenue(ctx)
	if err != nil {
		return nil, err
	}
	return &model.AdminStats{
		Users:    users,
		Classes:  classes,
		Payments: payments,
		Revenue:  revenue,
	}, nil
}
