package service

import (
	"errors"
	"strings"

	"marcenaria-api/internal/apperr"
	"marcenaria-api/internal/model"
	"marcenaria-api/internal/repository"
	"marcenaria-api/pkg/jwt"

	"gorm.io/gorm"

	"github.com/google/uuid"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type RegisterRequest struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	SalonName string `json:"salonName" validate:"required"`
}

type AuthResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
	Salon *model.Salon       `json:"salon,omitempty"`
}

type AuthService interface {
	Register(req RegisterRequest) (*AuthResponse, error)
	Login(email, password string) (*AuthResponse, error)
	Me(userID uuid.UUID) (*AuthResponse, error)
}

type authService struct {
	userRepo  repository.UserRepository
	salonRepo repository.SalonRepository
	db        *gorm.DB
}

func NewAuthService(userRepo repository.UserRepository, salonRepo repository.SalonRepository, db *gorm.DB) AuthService {
	return &authService{userRepo: userRepo, salonRepo: salonRepo, db: db}
}

// Register creates the user and their salon atomically.
func (s *authService) Register(req RegisterRequest) (*AuthResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.SalonName = strings.TrimSpace(req.SalonName)

	if err := validateStruct(&req); err != nil {
		return nil, err
	}

	if existing, err := s.userRepo.FindByEmail(req.Email); err == nil && existing.ID != uuid.Nil {
		return nil, apperr.Conflict("email already registered")
	}

	user := &model.User{Name: req.Name, Email: req.Email}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}

	salon := &model.Salon{Name: req.SalonName}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.salonRepo.Create(tx, salon); err != nil {
			return err
		}
		user.SalonID = salon.ID
		return s.userRepo.Create(tx, user)
	})
	if err != nil {
		return nil, err
	}

	token, err := jwt.GenerateToken(user.ID, user.SalonID, user.Email, user.Name)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: user.ToResponse(), Salon: salon}, nil
}

func (s *authService) Login(email, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(user.ID, user.SalonID, user.Email, user.Name)
	if err != nil {
		return nil, err
	}

	salon, _ := s.salonRepo.FindByID(user.SalonID)
	return &AuthResponse{Token: token, User: user.ToResponse(), Salon: salon}, nil
}

func (s *authService) Me(userID uuid.UUID) (*AuthResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperr.NotFound("user not found")
	}
	return &AuthResponse{User: user.ToResponse(), Salon: user.Salon}, nil
}
