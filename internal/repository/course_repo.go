package repository

import (
	"context"
	"errors"
	"fmt"

	"app/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CourseUpdate carries the instructor-editable fields of a course.
type CourseUpdate struct {
	Name              string
	PictureURL        string
	SubCategory       string
	Price             float64
	AvailableQuantity int
}

// CourseRepository defines access to the classes table.
type CourseRepository interface {
	CreateCourse(ctx context.Context, c *model.Course) error
	GetCourseByID(ctx context.Context, id string) (*model.Course, error)
	ListCourses(ctx context.Context) ([]model.Course, error)
	ListCoursesByStatus(ctx context.Context, status string) ([]model.Course, error)
	ListCoursesByInstructor(ctx context.Context, email string) ([]model.Course, error)
	GetCoursesByIDs(ctx context.Context, ids []string) ([]model.Course, error)
	// UpdateCourseDetails writes the editable fields, scoped to the owning
	// instructor. Returns false when the course does not exist or belongs
	// to someone else.
	UpdateCourseDetails(ctx context.Context, id, instructorEmail string, upd CourseUpdate) (bool, error)
	UpdateCourseStatus(ctx context.Context, id, status string) (bool, error)
	// DeleteCourse removes a course, scoped to the owning instructor.
	DeleteCourse(ctx context.Context, id, instructorEmail string) (bool, error)
	CountCourses(ctx context.Context) (int64, error)
}

type courseRepo struct {
	pool *pgxpool.Pool
}

func NewCourseRepo(pool *pgxpool.Pool) CourseRepository {
	return &courseRepo{pool: pool}
}

const courseColumns = `id, instructor_email, instructor_name, name, picture_url,
	sub_category, price, available_quantity, status, created_at, updated_at`

func (r *courseRepo) CreateCourse(ctx context.Context, c *model.Course) error {
	query := `
		INSERT INTO classes (id, instructor_email, instructor_name, name, picture_url,
			sub_category, price, available_quantity, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = model.StatusPending
	}
	err := r.pool.QueryRow(ctx, query,
		c.ID, c.InstructorEmail, c.InstructorName, c.Name, c.PictureURL,
		c.SubCategory, c.Price, c.AvailableQuantity, c.Status,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating course %q: %w", c.Name, err)
	}
	return nil
}

func (r *courseRepo) GetCourseByID(ctx context.Context, id string) (*model.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM classes WHERE id = $1`
	var c model.Course
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.InstructorEmail, &c.InstructorName, &c.Name, &c.PictureURL,
		&c.SubCategory, &c.Price, &c.AvailableQuantity, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch course %s: %w", id, err)
	}
	return &c, nil
}

func (r *courseRepo) ListCourses(ctx context.Context) ([]model.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM classes ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()
	return scanCourses(rows)
}

func (r *courseRepo) ListCoursesByStatus(ctx context.Context, status string) ([]model.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM classes WHERE status = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("list courses with status %s: %w", status, err)
	}
	defer rows.Close()
	return scanCourses(rows)
}

func (r *courseRepo) ListCoursesByInstructor(ctx context.Context, email string) ([]model.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM classes WHERE instructor_email = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("list courses for instructor %s: %w", email, err)
	}
	defer rows.Close()
	return scanCourses(rows)
}

func (r *courseRepo) GetCoursesByIDs(ctx context.Context, ids []string) ([]model.Course, error) {
	if len(ids) == 0 {
		return []model.Course{}, nil
	}
	query := `SELECT ` + courseColumns + ` FROM classes WHERE id = ANY($1)`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("fetch courses by ids: %w", err)
	}
	defer rows.Close()
	return scanCourses(rows)
}

func (r *courseRepo) UpdateCourseDetails(ctx context.Context, id, instructorEmail string, upd CourseUpdate) (bool, error) {
	query := `
		UPDATE classes
		SET name = $1, picture_url = $2, sub_category = $3, price = $4,
			available_quantity = $5, updated_at = NOW()
		WHERE id = $6 AND instructor_email = $7
	`
	tag, err := r.pool.Exec(ctx, query,
		upd.Name, upd.PictureURL, upd.SubCategory, upd.Price,
		upd.AvailableQuantity, id, instructorEmail,
	)
	if err != nil {
		return false, fmt.Errorf("update course %s: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *courseRepo) UpdateCourseStatus(ctx context.Context, id, status string) (bool, error) {
	query := `UPDATE classes SET status = $1, updated_at = NOW() WHERE id = $2`
	tag, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return false, fmt.Errorf("update status of course %s: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *courseRepo) DeleteCourse(ctx context.Context, id, instructorEmail string) (bool, error) {
	query := `DELETE FROM classes WHERE id = $1 AND instructor_email = $2`
	tag, err := r.pool.Exec(ctx, query, id, instructorEmail)
	if err != nil {
		return false, fmt.Errorf("delete course %s: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *courseRepo) CountCourses(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM classes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count courses: %w", err)
	}
	return n, nil
}

func scanCourses(rows pgx.Rows) ([]model.Course, error) {
	courses := []model.Course{}
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(
			&c.ID, &c.InstructorEmail, &c.InstructorName, &c.Name, &c.PictureURL,
			&c.SubCategory, &c.Price, &c.AvailableQuantity, &c.Status, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan course row: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate course rows: %w", err)
	}
	return courses, nil
}
