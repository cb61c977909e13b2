package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"app/internal/model"
	"app/internal/repository"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrCourseNotFound = errors.New("course not found")
	ErrNotCourseOwner = errors.New("course does not belong to this instructor")
	ErrInvalidStatus  = errors.New("invalid course status")
)

// CourseService covers the course catalogue: instructor CRUD, admin
// approval and the public listings.
type CourseService interface {
	Create(ctx context.Context, c *model.Course) error
	ListAll(ctx context.Context) ([]model.Course, error)
	ListApproved(ctx context.Context) ([]model.Course, error)
	ListByInstructor(ctx context.Context, email string) ([]model.Course, error)
	Update(ctx context.Context, id, instructorEmail string, upd repository.CourseUpdate) error
	SetStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id, instructorEmail string) error
	// BrowseForUser returns the approved courses plus whether the given
	// account may add them to a cart: true for students and accounts with
	// no role yet, false for instructors and admins, nil when the email is
	// unknown.
	BrowseForUser(ctx context.Context, email string) ([]model.Course, *bool, error)
	// InitiateImageUpload returns a presigned PUT URL for a course image
	// along with the object key to store as the course pictureURL.
	InitiateImageUpload(ctx context.Context, instructorEmail, filename string) (string, string, error)
}

type courseService struct {
	courseRepo    repository.CourseRepository
	userRepo      repository.UserRepository
	presignClient *s3.PresignClient
	bucketName    string
	logger        zerolog.Logger
}

func NewCourseService(
	courseRepo repository.CourseRepository,
	userRepo repository.UserRepository,
	s3Client *s3.Client,
	bucketName string,
	logger zerolog.Logger,
) CourseService {
	return &courseService{
		courseRepo:    courseRepo,
		userRepo:      userRepo,
		presignClient: s3.NewPresignClient(s3Client),
		bucketName:    bucketName,
		logger:        logger.With().Str("service", "CourseService").Logger(),
	}
}

func (s *courseService) Create(ctx context.Context, c *model.Course) error {
	// New courses always enter the approval queue.
	c.Status = model.StatusPending
	return s.courseRepo.CreateCourse(ctx, c)
}

func (s *courseService) ListAll(ctx context.Context) ([]model.Course, error) {
	return s.courseRepo.ListCourses(ctx)
}

func (s *courseService) ListApproved(ctx context.Context) ([]model.Course, error) {
	return s.courseRepo.ListCoursesByStatus(ctx, model.StatusAccept)
}

func (s *courseService) ListByInstructor(ctx context.Context, email string) ([]model.Course, error) {
	return s.courseRepo.ListCoursesByInstructor(ctx, email)
}

func (s *courseService) Update(ctx context.Context, id, instructorEmail string, upd repository.CourseUpdate) error {
	updated, err := s.courseRepo.UpdateCourseDetails(ctx, id, instructorEmail, upd)
	if err != nil {
		return err
	}
	if !updated {
		return s.ownershipError(ctx, id)
	}
	return nil
}

func (s *courseService) SetStatus(ctx context.Context, id, status string) error {
	if status != model.StatusAccept && status != model.StatusDeny && status != model.StatusPending {
		return ErrInvalidStatus
	}
	updated, err := s.courseRepo.UpdateCourseStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if !updated {
		return ErrCourseNotFound
	}
	return nil
}

func (s *courseService) Delete(ctx context.Context, id, instructorEmail string) error {
	deleted, err := s.courseRepo.DeleteCourse(ctx, id, instructorEmail)
	if err != nil {
		return err
	}
	if !deleted {
		return s.ownershipError(ctx, id)
	}
	return nil
}

func (s *courseService) BrowseForUser(ctx context.Context, email string) ([]model.Course, *bool, error) {
	courses, err := s.courseRepo.ListCoursesByStatus(ctx, model.StatusAccept)
	if err != nil {
		return nil, nil, err
	}

	var canAdd *bool
	if email != "" {
		u, err := s.userRepo.GetUserByEmail(ctx, email)
		if err != nil {
			return nil, nil, err
		}
		if u != nil {
			allowed := !u.HasRole(model.RoleInstructor) && !u.HasRole(model.RoleAdmin)
			canAdd = &allowed
		}
	}
	return courses, canAdd, nil
}

func (s *courseService) InitiateImageUpload(ctx context.Context, instructorEmail, filename string) (string, string, error) {
	objectKey := fmt.Sprintf("course-images/%s/%s%s", instructorEmail, uuid.NewString(), path.Ext(filename))
	request, err := s.presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(objectKey),
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		s.logger.Error().Err(err).Str("object_key", objectKey).Msg("Failed to presign course image upload")
		return "", "", fmt.Errorf("presign image upload: %w", err)
	}
	return request.URL, objectKey, nil
}

// ownershipError distinguishes a missing course from one owned by another
// instructor, so handlers can answer 404 vs 403.
func (s *courseService) ownershipError(ctx context.Context, id string) error {
	c, err := s.courseRepo.GetCourseByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrCourseNotFound
	}
	return ErrNotCourseOwner
}
