package services

import (
	"errors"
	"time"

	"aier-cms/config"
	"aier-cms/models"
	"aier-cms/repositories"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Default admin seeded at startup when no account exists yet.
const (
	DefaultAdminEmail    = "admin@aier.com"
	DefaultAdminPassword = "changeme"
	DefaultAdminName     = "Admin"
)

type AuthService interface {
	Login(req models.LoginRequest) (*models.AuthResponse, error)
	GetAdminByID(id string) (*models.Admin, error)
	EnsureDefaultAdmin() (bool, error)
}

type authService struct {
	adminRepo repositories.AdminRepository
}

func NewAuthService(adminRepo repositories.AdminRepository) AuthService {
	return &authService{adminRepo: adminRepo}
}

func (s *authService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	admin, err := s.adminRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorUnauthorized{Message: "Invalid credentials"}
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		return nil, models.ErrorUnauthorized{Message: "Invalid credentials"}
	}

	token, err := s.generateToken(admin)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token: token,
		Admin: *admin,
	}, nil
}

func (s *authService) GetAdminByID(id string) (*models.Admin, error) {
	admin, err := s.adminRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "Admin not found"}
		}
		return nil, err
	}
	return admin, nil
}

// EnsureDefaultAdmin is the idempotent startup hook: it creates the default
// account once and reports whether it did.
func (s *authService) EnsureDefaultAdmin() (bool, error) {
	_, err := s.adminRepo.GetByEmail(DefaultAdminEmail)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	admin := &models.Admin{
		Email:    DefaultAdminEmail,
		Password: string(hashed),
		Name:     DefaultAdminName,
	}
	if err := s.adminRepo.Create(admin); err != nil {
		return false, err
	}

	return true, nil
}

func (s *authService) generateToken(admin *models.Admin) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"admin_id": admin.ID,
		"email":    admin.Email,
		"exp":      now.Add(config.JWTExpiration).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(config.JWTSecret)
}
