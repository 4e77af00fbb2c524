package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	appauth "github.com/campusgate/admission-portal/internal/app/auth"
	"github.com/campusgate/admission-portal/internal/app/models"
	"github.com/campusgate/admission-portal/internal/app/models/dto"
	"github.com/campusgate/admission-portal/internal/app/repositories"
	"github.com/campusgate/admission-portal/internal/pkg/apperrors"
	"github.com/campusgate/admission-portal/internal/pkg/email"
	"github.com/campusgate/admission-portal/internal/pkg/filestorage"
	"github.com/campusgate/admission-portal/internal/pkg/helpers"
	"github.com/campusgate/admission-portal/internal/pkg/logger"
	"github.com/campusgate/admission-portal/internal/pkg/validation"
)

const documentSubPath = "documents"

const (
	minSearchLength  = 3
	maxSearchResults = 20
)

// ApplicationService handles the admission application lifecycle: submission,
// edits, review decisions and supporting documents.
type ApplicationService struct {
	appRepo      repositories.IApplicationRepository
	docRepo      repositories.IDocumentRepository
	userRepo     repositories.IUserRepository
	storage      filestorage.FileStorage
	uploadRules  *validation.UploadRules
	emailService email.EmailService
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(
	appRepo repositories.IApplicationRepository,
	docRepo repositories.IDocumentRepository,
	userRepo repositories.IUserRepository,
	storage filestorage.FileStorage,
	uploadRules *validation.UploadRules,
	emailService email.EmailService,
) *ApplicationService {
	return &ApplicationService{
		appRepo:      appRepo,
		docRepo:      docRepo,
		userRepo:     userRepo,
		storage:      storage,
		uploadRules:  uploadRules,
		emailService: emailService,
	}
}

func validateCoursePreferences(prefs models.CoursePreferences) error {
	if !models.IsValidCourse(prefs.FirstChoice) {
		return apperrors.NewCustomError(apperrors.ErrInvalidCourse, "first choice is not an offered course")
	}
	for _, choice := range []string{prefs.SecondChoice, prefs.ThirdChoice} {
		if choice != "" && !models.IsValidCourse(choice) {
			return apperrors.NewCustomError(apperrors.ErrInvalidCourse, "course preference is not an offered course")
		}
	}
	return nil
}

// Submit creates the student's admission application. Each student may hold
// exactly one; a second submit fails with ErrDuplicateApplication.
func (s *ApplicationService) Submit(ctx context.Context, studentID int64, req *dto.SubmitApplicationRequest) (*models.Application, error) {
	if err := validateCoursePreferences(req.CoursePreferences); err != nil {
		return nil, err
	}

	exists, err := s.appRepo.ExistsForStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrDuplicateApplication
	}

	app := &models.Application{
		StudentID:         studentID,
		PersonalDetails:   req.PersonalDetails,
		AcademicDetails:   req.AcademicDetails,
		CoursePreferences: req.CoursePreferences,
		Status:            models.StatusPending,
	}

	// The unique index on student_id catches the race the exists check misses
	id, err := s.appRepo.Create(ctx, app)
	if err != nil {
		return nil, err
	}

	return s.appRepo.GetByID(ctx, id)
}

// Get fetches an application with its documents, enforcing ownership
func (s *ApplicationService) Get(ctx context.Context, identity appauth.Identity, id int64) (*models.Application, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := appauth.Authorize(identity, app); err != nil {
		return nil, err
	}
	return s.withDocuments(ctx, app)
}

// GetOwn fetches the caller's own application with its documents
func (s *ApplicationService) GetOwn(ctx context.Context, studentID int64) (*models.Application, error) {
	app, err := s.appRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return s.withDocuments(ctx, app)
}

func (s *ApplicationService) withDocuments(ctx context.Context, app *models.Application) (*models.Application, error) {
	docs, err := s.docRepo.ListByApplicationID(ctx, app.ID)
	if err != nil {
		return nil, err
	}
	app.Documents = docs
	return app, nil
}

// Update edits a pending application. Once an admin has reviewed it the
// application is frozen and edits fail with ErrApplicationReviewed.
func (s *ApplicationService) Update(ctx context.Context, identity appauth.Identity, id int64, req *dto.UpdateApplicationRequest) (*models.Application, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := appauth.Authorize(identity, app); err != nil {
		return nil, err
	}
	if app.Status != models.StatusPending {
		return nil, apperrors.ErrApplicationReviewed
	}

	if req.PersonalDetails != nil {
		app.PersonalDetails = *req.PersonalDetails
	}
	if req.AcademicDetails != nil {
		app.AcademicDetails = *req.AcademicDetails
	}
	if req.CoursePreferences != nil {
		if err := validateCoursePreferences(*req.CoursePreferences); err != nil {
			return nil, err
		}
		app.CoursePreferences = *req.CoursePreferences
	}

	if err := s.appRepo.Update(ctx, app); err != nil {
		return nil, err
	}
	return s.withDocuments(ctx, app)
}

// Delete withdraws an application. Document rows go first, then the
// application, all in one transaction; stored files are removed afterwards on
// a best-effort basis, leaving at worst an orphaned file rather than a
// dangling database reference.
func (s *ApplicationService) Delete(ctx context.Context, identity appauth.Identity, id int64) error {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := appauth.Authorize(identity, app); err != nil {
		return err
	}

	keys, err := s.appRepo.DeleteCascade(ctx, id)
	if err != nil {
		return err
	}

	for _, key := range keys {
		if err := s.storage.Delete(key); err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("Failed to remove stored document file")
		}
	}
	return nil
}

// SetStatus records an admin review decision and notifies the student
// asynchronously. Decisions are not terminal; an application can be
// re-reviewed to a different status.
func (s *ApplicationService) SetStatus(ctx context.Context, reviewerID int64, id int64, req *dto.UpdateStatusRequest) (*models.Application, error) {
	status := models.ApplicationStatus(req.Status)
	if !models.IsValidStatus(status) {
		return nil, apperrors.ErrInvalidStatus
	}

	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.appRepo.UpdateStatus(ctx, id, status, req.Remarks, reviewerID); err != nil {
		return nil, err
	}

	student, err := s.userRepo.GetByID(ctx, app.StudentID)
	if err != nil {
		logger.Warn().Err(err).Int64("studentID", app.StudentID).Msg("Failed to load student for status notification")
	} else {
		// Fire-and-forget: the decision stands even if the email fails
		go func(toEmail, toName, status, remarks string) {
			if err := s.emailService.SendApplicationStatusEmail(toEmail, toName, status, remarks); err != nil {
				logger.Error().Err(err).Str("email", toEmail).Msg("Failed to send status email")
			}
		}(student.Email, student.Name, req.Status, req.Remarks)
	}

	return s.appRepo.GetByID(ctx, id)
}

// List returns a page of applications for the admin panel, with student
// summaries attached.
func (s *ApplicationService) List(ctx context.Context, filter dto.ApplicationFilter, page, size int) (*dto.PagedResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	apps, total, err := s.appRepo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, err
	}

	if err := s.attachStudents(ctx, apps); err != nil {
		return nil, err
	}

	return &dto.PagedResponse{
		Items:      apps,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, nil
}

// Search finds applications whose applicant name matches the query. Queries
// shorter than three characters are rejected and results are capped.
func (s *ApplicationService) Search(ctx context.Context, name string) ([]*models.Application, error) {
	name = strings.TrimSpace(name)
	if len(name) < minSearchLength {
		return nil, apperrors.NewCustomError(apperrors.ErrBadRequest,
			fmt.Sprintf("search query must be at least %d characters", minSearchLength))
	}

	apps, err := s.appRepo.SearchByName(ctx, name, maxSearchResults)
	if err != nil {
		return nil, err
	}
	if err := s.attachStudents(ctx, apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (s *ApplicationService) attachStudents(ctx context.Context, apps []*models.Application) error {
	ids := make([]int64, 0, len(apps))
	for _, app := range apps {
		ids = append(ids, app.StudentID)
	}

	students, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, app := range apps {
		app.Student = students[app.StudentID]
	}
	return nil
}

// AttachDocument stores an uploaded file and records it against the
// application. Uploading the same document type again replaces the previous
// file.
func (s *ApplicationService) AttachDocument(ctx context.Context, identity appauth.Identity, applicationID int64, docType string, fileHeader *multipart.FileHeader) (*models.Document, error) {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if err := appauth.Authorize(identity, app); err != nil {
		return nil, err
	}

	documentType := models.DocumentType(docType)
	if !models.IsValidDocumentType(documentType) {
		return nil, apperrors.ErrInvalidDocumentType
	}

	if err := s.uploadRules.ValidateFileHeader(fileHeader); err != nil {
		return nil, err
	}

	existing, err := s.docRepo.GetByApplicationAndType(ctx, applicationID, documentType)
	if err != nil && !errors.Is(err, apperrors.ErrDocumentNotFound) {
		return nil, err
	}

	stored, err := s.storage.Save(fileHeader, documentSubPath)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrStorageFailure, "failed to store uploaded file")
	}

	doc := &models.Document{
		ApplicationID: applicationID,
		StudentID:     app.StudentID,
		DocumentType:  documentType,
		FileName:      fileHeader.Filename,
		FileURL:       stored.URL,
		StorageKey:    stored.Key,
		FileSize:      fileHeader.Size,
		MimeType:      fileHeader.Header.Get("Content-Type"),
	}

	id, err := s.docRepo.Create(ctx, doc)
	if err != nil {
		// Roll back the stored file so a failed insert leaves nothing behind
		if delErr := s.storage.Delete(stored.Key); delErr != nil {
			logger.Warn().Err(delErr).Str("key", stored.Key).Msg("Failed to remove file after insert failure")
		}
		return nil, err
	}

	if existing != nil {
		if err := s.docRepo.Delete(ctx, existing.ID); err != nil {
			logger.Warn().Err(err).Int64("documentID", existing.ID).Msg("Failed to remove replaced document row")
		} else if err := s.storage.Delete(existing.StorageKey); err != nil {
			logger.Warn().Err(err).Str("key", existing.StorageKey).Msg("Failed to remove replaced document file")
		}
	}

	return s.docRepo.GetByID(ctx, id)
}

// DetachDocument removes a document row and its stored file. The lookup is
// scoped to the caller's own documents, so another student's document is
// indistinguishable from a missing one.
func (s *ApplicationService) DetachDocument(ctx context.Context, identity appauth.Identity, documentID int64) error {
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return err
	}
	if err := appauth.Authorize(identity, doc); err != nil {
		return apperrors.ErrDocumentNotFound
	}

	if err := s.docRepo.Delete(ctx, documentID); err != nil {
		return err
	}
	if err := s.storage.Delete(doc.StorageKey); err != nil {
		logger.Warn().Err(err).Str("key", doc.StorageKey).Msg("Failed to remove stored document file")
	}
	return nil
}

// ListDocuments returns the documents attached to an application
func (s *ApplicationService) ListDocuments(ctx context.Context, identity appauth.Identity, applicationID int64) (*dto.DocumentListResponse, error) {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if err := appauth.Authorize(identity, app); err != nil {
		return nil, err
	}

	docs, err := s.docRepo.ListByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	return &dto.DocumentListResponse{Count: len(docs), Documents: docs}, nil
}

// VerifyDocument records an admin's verification decision on a document
func (s *ApplicationService) VerifyDocument(ctx context.Context, documentID int64, isVerified bool, notes string) (*models.Document, error) {
	if _, err := s.docRepo.GetByID(ctx, documentID); err != nil {
		return nil, err
	}
	if err := s.docRepo.SetVerification(ctx, documentID, isVerified, notes); err != nil {
		return nil, err
	}
	return s.docRepo.GetByID(ctx, documentID)
}
