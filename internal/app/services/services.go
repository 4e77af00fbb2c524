package services

import (
	"github.com/campusgate/admission-portal/internal/app/repositories"
	"github.com/campusgate/admission-portal/internal/pkg/auth"
	"github.com/campusgate/admission-portal/internal/pkg/email"
	"github.com/campusgate/admission-portal/internal/pkg/filestorage"
	"github.com/campusgate/admission-portal/internal/pkg/validation"
)

// Services holds all the service instances
type Services struct {
	AuthService        *AuthService
	UserService        *UserService
	ApplicationService *ApplicationService
	AdminService       *AdminService
}

// NewServices initializes all services
func NewServices(
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	storage filestorage.FileStorage,
	uploadRules *validation.UploadRules,
	emailService email.EmailService,
) *Services {
	return &Services{
		AuthService: NewAuthService(repos.UserRepository, jwtService, emailService),
		UserService: NewUserService(repos.UserRepository, repos.ApplicationRepository, repos.DocumentRepository),
		ApplicationService: NewApplicationService(
			repos.ApplicationRepository,
			repos.DocumentRepository,
			repos.UserRepository,
			storage,
			uploadRules,
			emailService,
		),
		AdminService: NewAdminService(repos.ApplicationRepository, repos.UserRepository, repos.DocumentRepository),
	}
}
