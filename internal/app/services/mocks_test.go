package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"sync"
	"time"

	"github.com/campusgate/admission-portal/internal/app/models"
	"github.com/campusgate/admission-portal/internal/app/models/dto"
	"github.com/campusgate/admission-portal/internal/pkg/apperrors"
	"github.com/campusgate/admission-portal/internal/pkg/filestorage"
)

// In-memory repository fakes. The real repositories run raw SQL against
// pgx, so service tests swap them for these map-backed implementations.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[int64]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	id := r.nextID
	r.nextID++
	stored := *user
	stored.ID = id
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.users[id] = &stored
	return id, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[user.ID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	stored.Name = user.Name
	stored.Phone = user.Phone
	stored.DateOfBirth = user.DateOfBirth
	stored.Gender = user.Gender
	stored.Address = user.Address
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, userID int64, hashedPassword string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	stored.Password = hashedPassword
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	now := time.Now()
	stored.LastLoginAt = &now
	return nil
}

func (r *fakeUserRepo) SetActive(_ context.Context, userID int64, isActive bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	stored.IsActive = isActive
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, filter dto.UserFilter, offset, limit int) ([]*models.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*models.User
	for _, u := range r.users {
		if filter.Role != "" && string(u.Role) != filter.Role {
			continue
		}
		if filter.IsActive != nil && u.IsActive != *filter.IsActive {
			continue
		}
		copied := *u
		matched = append(matched, &copied)
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeUserRepo) GetByIDs(_ context.Context, ids []int64) (map[int64]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make(map[int64]*models.User)
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			copied := *u
			result[id] = &copied
		}
	}
	return result, nil
}

func (r *fakeUserRepo) CountByRole(_ context.Context, role models.RoleType) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, u := range r.users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

type fakeApplicationRepo struct {
	mu     sync.Mutex
	nextID int64
	apps   map[int64]*models.Application
	docs   *fakeDocumentRepo
}

func newFakeApplicationRepo(docs *fakeDocumentRepo) *fakeApplicationRepo {
	return &fakeApplicationRepo{nextID: 1, apps: make(map[int64]*models.Application), docs: docs}
}

func (r *fakeApplicationRepo) Create(_ context.Context, app *models.Application) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.apps {
		if a.StudentID == app.StudentID {
			return 0, apperrors.ErrDuplicateApplication
		}
	}
	id := r.nextID
	r.nextID++
	stored := *app
	stored.ID = id
	stored.SubmittedAt = time.Now()
	stored.CreatedAt = stored.SubmittedAt
	stored.UpdatedAt = stored.SubmittedAt
	r.apps[id] = &stored
	return id, nil
}

func (r *fakeApplicationRepo) GetByID(_ context.Context, id int64) (*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *fakeApplicationRepo) GetByStudentID(_ context.Context, studentID int64) (*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.apps {
		if a.StudentID == studentID {
			copied := *a
			return &copied, nil
		}
	}
	return nil, apperrors.ErrApplicationNotFound
}

func (r *fakeApplicationRepo) ExistsForStudent(_ context.Context, studentID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.apps {
		if a.StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeApplicationRepo) Update(_ context.Context, app *models.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.apps[app.ID]
	if !ok {
		return apperrors.ErrApplicationNotFound
	}
	stored.PersonalDetails = app.PersonalDetails
	stored.AcademicDetails = app.AcademicDetails
	stored.CoursePreferences = app.CoursePreferences
	stored.Payment = app.Payment
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *fakeApplicationRepo) UpdateStatus(_ context.Context, id int64, status models.ApplicationStatus, remarks string, reviewedBy int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.apps[id]
	if !ok {
		return apperrors.ErrApplicationNotFound
	}
	now := time.Now()
	stored.Status = status
	stored.Remarks = remarks
	stored.ReviewedAt = &now
	stored.ReviewedBy = &reviewedBy
	stored.UpdatedAt = now
	return nil
}

func (r *fakeApplicationRepo) DeleteCascade(ctx context.Context, id int64) ([]string, error) {
	r.mu.Lock()
	if _, ok := r.apps[id]; !ok {
		r.mu.Unlock()
		return nil, apperrors.ErrApplicationNotFound
	}
	delete(r.apps, id)
	r.mu.Unlock()

	docs, _ := r.docs.ListByApplicationID(ctx, id)
	var keys []string
	for _, d := range docs {
		keys = append(keys, d.StorageKey)
		_ = r.docs.Delete(ctx, d.ID)
	}
	return keys, nil
}

func (r *fakeApplicationRepo) List(_ context.Context, filter dto.ApplicationFilter, offset, limit int) ([]*models.Application, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*models.Application
	for _, a := range r.apps {
		if filter.Status != "" && string(a.Status) != filter.Status {
			continue
		}
		if filter.Course != "" && a.CoursePreferences.FirstChoice != filter.Course {
			continue
		}
		copied := *a
		matched = append(matched, &copied)
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeApplicationRepo) SearchByName(_ context.Context, name string, limit int) ([]*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*models.Application
	for _, a := range r.apps {
		if len(matched) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(a.PersonalDetails.FullName), strings.ToLower(name)) {
			copied := *a
			matched = append(matched, &copied)
		}
	}
	return matched, nil
}

func (r *fakeApplicationRepo) CountByStatus(_ context.Context) (dto.StatusCounts, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := dto.StatusCounts{}
	for _, a := range r.apps {
		counts.Total++
		switch a.Status {
		case models.StatusPending:
			counts.Pending++
		case models.StatusApproved:
			counts.Approved++
		case models.StatusRejected:
			counts.Rejected++
		}
	}
	return counts, nil
}

func (r *fakeApplicationRepo) CourseDistribution(_ context.Context) ([]dto.CourseCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byCourse := make(map[string]int64)
	for _, a := range r.apps {
		byCourse[a.CoursePreferences.FirstChoice]++
	}
	var result []dto.CourseCount
	for course, count := range byCourse {
		result = append(result, dto.CourseCount{Course: course, Count: count})
	}
	return result, nil
}

func (r *fakeApplicationRepo) MonthlyTrends(_ context.Context, _ int) ([]dto.MonthlyCount, error) {
	return nil, nil
}

func (r *fakeApplicationRepo) Recent(_ context.Context, limit int) ([]*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.Application
	for _, a := range r.apps {
		if len(result) >= limit {
			break
		}
		copied := *a
		result = append(result, &copied)
	}
	return result, nil
}

type fakeDocumentRepo struct {
	mu     sync.Mutex
	nextID int64
	docs   map[int64]*models.Document
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{nextID: 1, docs: make(map[int64]*models.Document)}
}

func (r *fakeDocumentRepo) Create(_ context.Context, doc *models.Document) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	stored := *doc
	stored.ID = id
	stored.UploadedAt = time.Now()
	r.docs[id] = &stored
	return id, nil
}

func (r *fakeDocumentRepo) GetByID(_ context.Context, id int64) (*models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok {
		return nil, apperrors.ErrDocumentNotFound
	}
	copied := *d
	return &copied, nil
}

func (r *fakeDocumentRepo) ListByApplicationID(_ context.Context, applicationID int64) ([]*models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.Document
	for _, d := range r.docs {
		if d.ApplicationID == applicationID {
			copied := *d
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakeDocumentRepo) GetByApplicationAndType(_ context.Context, applicationID int64, docType models.DocumentType) (*models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.docs {
		if d.ApplicationID == applicationID && d.DocumentType == docType {
			copied := *d
			return &copied, nil
		}
	}
	return nil, apperrors.ErrDocumentNotFound
}

func (r *fakeDocumentRepo) SetVerification(_ context.Context, id int64, isVerified bool, notes string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok {
		return apperrors.ErrDocumentNotFound
	}
	d.IsVerified = isVerified
	d.VerificationNotes = notes
	return nil
}

func (r *fakeDocumentRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return apperrors.ErrDocumentNotFound
	}
	delete(r.docs, id)
	return nil
}

func (r *fakeDocumentRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.docs)), nil
}

// fakeStorage records saves and deletes without touching the filesystem
type fakeStorage struct {
	mu      sync.Mutex
	nextKey int
	saved   map[string]string // key -> original filename
	deleted []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{saved: make(map[string]string)}
}

func (s *fakeStorage) Save(fileHeader *multipart.FileHeader, subPath string) (*filestorage.StoredFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextKey++
	key := fmt.Sprintf("%s/file-%03d", subPath, s.nextKey)
	s.saved[key] = fileHeader.Filename
	return &filestorage.StoredFile{URL: "http://localhost/uploads/" + key, Key: key}, nil
}

func (s *fakeStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.saved, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *fakeStorage) hasKey(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.saved[key]
	return ok
}

// fakeEmailService records sends on channels so tests can wait for the
// fire-and-forget goroutines.
type fakeEmailService struct {
	welcome chan string
	status  chan string
}

func newFakeEmailService() *fakeEmailService {
	return &fakeEmailService{
		welcome: make(chan string, 8),
		status:  make(chan string, 8),
	}
}

func (s *fakeEmailService) SendWelcomeEmail(toEmail, _ string) error {
	s.welcome <- toEmail
	return nil
}

func (s *fakeEmailService) SendApplicationStatusEmail(toEmail, _, status, _ string) error {
	s.status <- toEmail + ":" + status
	return nil
}
