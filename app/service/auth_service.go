package service

import (
	"errors"
	"strings"

	"sports-federation-backend/app/model"
	"sports-federation-backend/app/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService mendefinisikan layanan autentikasi panel admin.
type AuthService interface {
	Register(user *model.User) error
	Login(identifier, password string) (*model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
}

// NewAuthService menghubungkan Service dengan Repository
func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{
		userRepo: userRepo,
	}
}

// Register mendaftarkan user baru. PasswordHash berisi password mentah dan
// di-hash di sini sebelum disimpan.
func (s *authService) Register(user *model.User) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hashedPassword)
	return s.userRepo.Create(user)
}

// Login mencocokkan email (atau username) dan password.
func (s *authService) Login(identifier, password string) (*model.User, error) {
	identifier = strings.TrimSpace(identifier)

	var (
		user *model.User
		err  error
	)
	if strings.Contains(identifier, "@") {
		user, err = s.userRepo.FindByEmail(identifier)
	} else {
		user, err = s.userRepo.FindByUsername(identifier)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInactiveAccount
	}

	// token dibuat oleh handler
	return user, nil
}
