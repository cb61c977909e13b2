package service

import (
	"context"

	"app/internal/model"
	"app/internal/repository"

	"github.com/rs/zerolog"
)

// PaymentService covers the two-phase payment flow (intent, settlement)
// and the enrollment view derived from payment history.
type PaymentService interface {
	// CreateIntent asks the processor for a charge handle and returns the
	// client secret. Nothing is recorded locally at this point.
	CreateIntent(ctx context.Context, price float64) (string, error)
	// Settle records the payment and clears the consumed cart rows.
	// Returns false when the transaction id was already settled.
	Settle(ctx context.Context, p *model.Payment) (bool, error)
	History(ctx context.Context, email string) ([]model.Payment, error)
	// EnrolledCourses resolves the union of class ids across every payment
	// the user has made. No payments means an empty list, not an error.
	EnrolledCourses(ctx context.Context, email string) ([]model.Course, error)
}

type paymentService struct {
	paymentRepo repository.PaymentRepository
	courseRepo  repository.CourseRepository
	intents     PaymentIntentCreator
	logger      zerolog.Logger
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	courseRepo repository.CourseRepository,
	intents PaymentIntentCreator,
	logger zerolog.Logger,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		courseRepo:  courseRepo,
		intents:     intents,
		logger:      logger.With().Str("service", "PaymentService").Logger(),
	}
}

func (s *paymentService) CreateIntent(ctx context.Context, price float64) (string, error) {
	return s.intents.CreatePaymentIntent(ctx, price)
}

func (s *paymentService) Settle(ctx context.Context, p *model.Payment) (bool, error) {
	settled, err := s.paymentRepo.Settle(ctx, p)
	if err != nil {
		return false, err
	}
	if !settled {
		s.logger.Info().Str("transaction_id", p.TransactionID).Msg("Duplicate settlement ignored")
	}
	return settled, nil
}

func (s *paymentService) History(ctx context.Context, email string) ([]model.Payment, error) {
	return s.paymentRepo.ListByEmail(ctx, email)
}

func (s *paymentService) EnrolledCourses(ctx context.Context, email string) ([]model.Course, error) {
	payments, err := s.paymentRepo.ListByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if len(payments) == 0 {
		return []model.Course{}, nil
	}

	seen := map[string]struct{}{}
	ids := []string{}
	for _, p := range payments {
		for _, id := range p.ClassIDs {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return s.courseRepo.GetCoursesByIDs(ctx, ids)
}
