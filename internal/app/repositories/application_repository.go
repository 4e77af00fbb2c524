package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusgate/admission-portal/internal/app/models"
	"github.com/campusgate/admission-portal/internal/app/models/dto"
	"github.com/campusgate/admission-portal/internal/db"
	"github.com/campusgate/admission-portal/internal/pkg/apperrors"
	"github.com/campusgate/admission-portal/internal/pkg/dberrors"
)

// IApplicationRepository defines the interface for application persistence
type IApplicationRepository interface {
	Create(ctx context.Context, app *models.Application) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Application, error)
	GetByStudentID(ctx context.Context, studentID int64) (*models.Application, error)
	ExistsForStudent(ctx context.Context, studentID int64) (bool, error)
	Update(ctx context.Context, app *models.Application) error
	UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus, remarks string, reviewedBy int64) error
	DeleteCascade(ctx context.Context, id int64) ([]string, error)
	List(ctx context.Context, filter dto.ApplicationFilter, offset, limit int) ([]*models.Application, int64, error)
	SearchByName(ctx context.Context, name string, limit int) ([]*models.Application, error)
	CountByStatus(ctx context.Context) (dto.StatusCounts, error)
	CourseDistribution(ctx context.Context) ([]dto.CourseCount, error)
	MonthlyTrends(ctx context.Context, months int) ([]dto.MonthlyCount, error)
	Recent(ctx context.Context, limit int) ([]*models.Application, error)
}

const applicationColumns = `id, student_id, personal_details, academic_details, course_preferences,
	status, remarks, submitted_at, reviewed_at, reviewed_by, payment, created_at, updated_at`

// ApplicationRepository handles application persistence
type ApplicationRepository struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func scanApplication(row pgx.Row) (*models.Application, error) {
	app := &models.Application{}
	err := row.Scan(
		&app.ID, &app.StudentID, &app.PersonalDetails, &app.AcademicDetails,
		&app.CoursePreferences, &app.Status, &app.Remarks, &app.SubmittedAt,
		&app.ReviewedAt, &app.ReviewedBy, &app.Payment, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return app, nil
}

// Create inserts a new application. The unique index on student_id turns a
// concurrent double submit into ErrDuplicateApplication.
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO applications (student_id, personal_details, academic_details,
			course_preferences, status, payment)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		app.StudentID, app.PersonalDetails, app.AcademicDetails,
		app.CoursePreferences, app.Status, app.Payment).Scan(&id)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrDuplicateApplication
		}
		return 0, fmt.Errorf("error creating application: %w", err)
	}
	return id, nil
}

// GetByID retrieves an application by ID
func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	app, err := scanApplication(r.db.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error fetching application: %w", err)
	}
	return app, nil
}

// GetByStudentID retrieves the single application belonging to a student
func (r *ApplicationRepository) GetByStudentID(ctx context.Context, studentID int64) (*models.Application, error) {
	app, err := scanApplication(r.db.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE student_id = $1`, studentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error fetching application: %w", err)
	}
	return app, nil
}

// ExistsForStudent reports whether the student already submitted an application
func (r *ApplicationRepository) ExistsForStudent(ctx context.Context, studentID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE student_id = $1)`, studentID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking application: %w", err)
	}
	return exists, nil
}

// Update rewrites the editable detail groups of an application
func (r *ApplicationRepository) Update(ctx context.Context, app *models.Application) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE applications
		SET personal_details = $1, academic_details = $2, course_preferences = $3,
			payment = $4, updated_at = $5
		WHERE id = $6`,
		app.PersonalDetails, app.AcademicDetails, app.CoursePreferences,
		app.Payment, time.Now(), app.ID)
	if err != nil {
		return fmt.Errorf("error updating application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}

// UpdateStatus records a review decision along with reviewer and time
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus, remarks string, reviewedBy int64) error {
	now := time.Now()
	tag, err := r.db.Exec(ctx, `
		UPDATE applications
		SET status = $1, remarks = $2, reviewed_at = $3, reviewed_by = $4, updated_at = $3
		WHERE id = $5`,
		status, remarks, now, reviewedBy, id)
	if err != nil {
		return fmt.Errorf("error updating application status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}

// DeleteCascade removes the application and its document rows in one
// transaction, documents first. It returns the storage keys of the removed
// documents so the caller can clean up files after commit.
func (r *ApplicationRepository) DeleteCascade(ctx context.Context, id int64) ([]string, error) {
	var keys []string
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `SELECT storage_key FROM documents WHERE application_id = $1`, id)
		if err != nil {
			return fmt.Errorf("error collecting document keys: %w", err)
		}
		for rows.Next() {
			var key string
			if err := rows.Scan(&key); err != nil {
				rows.Close()
				return fmt.Errorf("error scanning document key: %w", err)
			}
			keys = append(keys, key)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("error iterating document keys: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM documents WHERE application_id = $1`, id); err != nil {
			return fmt.Errorf("error deleting documents: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("error deleting application: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrApplicationNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// List returns a page of applications matching the filter plus the total count
func (r *ApplicationRepository) List(ctx context.Context, filter dto.ApplicationFilter, offset, limit int) ([]*models.Application, int64, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, filter.Status)
		argPos++
	}
	if filter.Course != "" {
		where += fmt.Sprintf(" AND course_preferences->>'firstChoice' = $%d", argPos)
		args = append(args, filter.Course)
		argPos++
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM applications`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting applications: %w", err)
	}

	query := `SELECT ` + applicationColumns + ` FROM applications` + where +
		fmt.Sprintf(" ORDER BY submitted_at DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing applications: %w", err)
	}
	defer rows.Close()

	apps, err := collectApplications(rows)
	if err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

func collectApplications(rows pgx.Rows) ([]*models.Application, error) {
	var apps []*models.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning application: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating applications: %w", err)
	}
	return apps, nil
}

// SearchByName matches the applicant's full name case-insensitively
func (r *ApplicationRepository) SearchByName(ctx context.Context, name string, limit int) ([]*models.Application, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+applicationColumns+`
		FROM applications
		WHERE personal_details->>'fullName' ILIKE '%' || $1 || '%'
		ORDER BY submitted_at DESC
		LIMIT $2`, name, limit)
	if err != nil {
		return nil, fmt.Errorf("error searching applications: %w", err)
	}
	defer rows.Close()

	return collectApplications(rows)
}

// CountByStatus aggregates application counts per review state
func (r *ApplicationRepository) CountByStatus(ctx context.Context) (dto.StatusCounts, error) {
	var counts dto.StatusCounts
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'approved'),
			COUNT(*) FILTER (WHERE status = 'rejected')
		FROM applications`).Scan(&counts.Total, &counts.Pending, &counts.Approved, &counts.Rejected)
	if err != nil {
		return dto.StatusCounts{}, fmt.Errorf("error counting applications by status: %w", err)
	}
	return counts, nil
}

// CourseDistribution aggregates applications by first-choice course
func (r *ApplicationRepository) CourseDistribution(ctx context.Context) ([]dto.CourseCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT course_preferences->>'firstChoice' AS course, COUNT(*)
		FROM applications
		WHERE course_preferences->>'firstChoice' IS NOT NULL
		GROUP BY course
		ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("error aggregating course distribution: %w", err)
	}
	defer rows.Close()

	var result []dto.CourseCount
	for rows.Next() {
		var cc dto.CourseCount
		if err := rows.Scan(&cc.Course, &cc.Count); err != nil {
			return nil, fmt.Errorf("error scanning course count: %w", err)
		}
		result = append(result, cc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course counts: %w", err)
	}
	return result, nil
}

// MonthlyTrends aggregates submissions per calendar month over the last N months
func (r *ApplicationRepository) MonthlyTrends(ctx context.Context, months int) ([]dto.MonthlyCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT EXTRACT(YEAR FROM submitted_at)::int,
			EXTRACT(MONTH FROM submitted_at)::int,
			COUNT(*)
		FROM applications
		WHERE submitted_at >= date_trunc('month', CURRENT_TIMESTAMP) - ($1 || ' months')::interval
		GROUP BY 1, 2
		ORDER BY 1, 2`, months)
	if err != nil {
		return nil, fmt.Errorf("error aggregating monthly trends: %w", err)
	}
	defer rows.Close()

	var result []dto.MonthlyCount
	for rows.Next() {
		var mc dto.MonthlyCount
		if err := rows.Scan(&mc.Year, &mc.Month, &mc.Count); err != nil {
			return nil, fmt.Errorf("error scanning monthly count: %w", err)
		}
		result = append(result, mc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly counts: %w", err)
	}
	return result, nil
}

// Recent returns the most recently submitted applications
func (r *ApplicationRepository) Recent(ctx context.Context, limit int) ([]*models.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+` FROM applications ORDER BY submitted_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing recent applications: %w", err)
	}
	defer rows.Close()

	return collectApplications(rows)
}
