package services

import (
	"context"

	"github.com/campusgate/admission-portal/internal/app/models"
	"github.com/campusgate/admission-portal/internal/app/models/dto"
	"github.com/campusgate/admission-portal/internal/app/repositories"
)

const (
	trendMonths      = 6
	recentSampleSize = 5
)

// AdminService assembles the aggregate views of the admin dashboard
type AdminService struct {
	appRepo  repositories.IApplicationRepository
	userRepo repositories.IUserRepository
	docRepo  repositories.IDocumentRepository
}

// NewAdminService creates a new AdminService
func NewAdminService(appRepo repositories.IApplicationRepository, userRepo repositories.IUserRepository, docRepo repositories.IDocumentRepository) *AdminService {
	return &AdminService{
		appRepo:  appRepo,
		userRepo: userRepo,
		docRepo:  docRepo,
	}
}

// GetDashboardStats gathers the admin dashboard aggregates: counts by review
// state, totals, first-choice course distribution, monthly submission trend
// and the most recent submissions.
func (s *AdminService) GetDashboardStats(ctx context.Context) (*dto.DashboardStats, error) {
	statusCounts, err := s.appRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	totalStudents, err := s.userRepo.CountByRole(ctx, models.RoleStudent)
	if err != nil {
		return nil, err
	}

	totalDocuments, err := s.docRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	courseDistribution, err := s.appRepo.CourseDistribution(ctx)
	if err != nil {
		return nil, err
	}

	monthlyTrends, err := s.appRepo.MonthlyTrends(ctx, trendMonths)
	if err != nil {
		return nil, err
	}

	recent, err := s.appRepo.Recent(ctx, recentSampleSize)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardStats{
		Applications:       statusCounts,
		TotalStudents:      totalStudents,
		TotalDocuments:     totalDocuments,
		CourseDistribution: courseDistribution,
		MonthlyTrends:      monthlyTrends,
		RecentApplications: recent,
	}, nil
}
