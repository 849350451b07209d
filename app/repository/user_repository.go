package repository

//go:generate mockgen -source=user_repository.go -destination=mocks/user_repository_mock.go -package=mocks

import (
	"sports-federation-backend/app/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository mendefinisikan kontrak operasi database untuk entity User.
type UserRepository interface {
	Create(user *model.User) error
	FindByEmail(email string) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	FindByID(id uuid.UUID) (*model.User, error)
}

// userRepository adalah implementasi konkret UserRepository berbasis GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository membuat instance baru userRepository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db}
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

// FindByEmail dipakai saat login dengan email.
func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	return r.findOne("email = ?", email)
}

// FindByUsername dipakai saat login dengan username.
func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	return r.findOne("username = ?", username)
}

func (r *userRepository) FindByID(id uuid.UUID) (*model.User, error) {
	return r.findOne("id = ?", id)
}

// findOne memuat user beserta role dan permission-nya.
func (r *userRepository) findOne(query string, arg any) (*model.User, error) {
	var user model.User
	err := r.db.
		Preload("Role").
		Preload("Role.Permissions").
		Where(query, arg).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
