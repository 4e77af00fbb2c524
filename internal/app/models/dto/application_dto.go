package dto

import (
	"github.com/campusgate/admission-portal/internal/app/models"
)

// SubmitApplicationRequest is the payload for submitting an admission application
type SubmitApplicationRequest struct {
	PersonalDetails   models.PersonalDetails   `json:"personalDetails" binding:"required"`
	AcademicDetails   models.AcademicDetails   `json:"academicDetails" binding:"required"`
	CoursePreferences models.CoursePreferences `json:"coursePreferences" binding:"required"`
}

// UpdateApplicationRequest is the payload for editing a pending application.
// Nil groups are left untouched.
type UpdateApplicationRequest struct {
	PersonalDetails   *models.PersonalDetails   `json:"personalDetails"`
	AcademicDetails   *models.AcademicDetails   `json:"academicDetails"`
	CoursePreferences *models.CoursePreferences `json:"coursePreferences"`
}

// UploadDocumentRequest carries the form fields of a document upload;
// the file itself arrives as multipart form data.
type UploadDocumentRequest struct {
	DocumentType string `form:"documentType" binding:"required"`
}

// DocumentListResponse wraps an application's documents
type DocumentListResponse struct {
	Count     int                `json:"count"`
	Documents []*models.Document `json:"documents"`
}
