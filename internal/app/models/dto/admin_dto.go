package dto

import (
	"github.com/campusgate/admission-portal/internal/app/models"
)

// UpdateStatusRequest is the admin payload for reviewing an application
type UpdateStatusRequest struct {
	Status  string `json:"status" binding:"required"`
	Remarks string `json:"remarks"`
}

// VerifyDocumentRequest is the admin payload for document verification
type VerifyDocumentRequest struct {
	IsVerified        *bool  `json:"isVerified" binding:"required"`
	VerificationNotes string `json:"verificationNotes"`
}

// ApplicationFilter narrows admin application listings
type ApplicationFilter struct {
	Status string
	Course string
}

// UserFilter narrows admin user listings
type UserFilter struct {
	Role     string
	IsActive *bool
}

// StatusCounts breaks application totals down by review state
type StatusCounts struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

// CourseCount is one row of the first-choice course distribution
type CourseCount struct {
	Course string `json:"course"`
	Count  int64  `json:"count"`
}

// MonthlyCount is one row of the monthly submission trend
type MonthlyCount struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Count int64 `json:"count"`
}

// DashboardStats is the admin dashboard aggregate view
type DashboardStats struct {
	Applications       StatusCounts          `json:"applications"`
	TotalStudents      int64                 `json:"totalStudents"`
	TotalDocuments     int64                 `json:"totalDocuments"`
	CourseDistribution []CourseCount         `json:"courseDistribution"`
	MonthlyTrends      []MonthlyCount        `json:"monthlyTrends"`
	RecentApplications []*models.Application `json:"recentApplications"`
}
