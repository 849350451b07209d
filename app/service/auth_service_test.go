package service

import (
	"errors"
	"testing"

	"sports-federation-backend/app/model"
	"sports-federation-backend/app/repository/mocks"

	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(h)
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUserRepository(ctrl)
	svc := NewAuthService(repo)

	active := &model.User{Username: "admin", Email: "admin@federasi.id", PasswordHash: hashed(t, "rahasia"), IsActive: true}
	inactive := &model.User{Username: "lama", PasswordHash: hashed(t, "rahasia")}

	repo.EXPECT().FindByEmail("admin@federasi.id").Return(active, nil).Times(2)
	repo.EXPECT().FindByUsername("admin").Return(active, nil)
	repo.EXPECT().FindByUsername("lama").Return(inactive, nil)
	repo.EXPECT().FindByUsername("hantu").Return(nil, gorm.ErrRecordNotFound)

	cases := []struct {
		name       string
		identifier string
		password   string
		wantErr    error
	}{
		{"email", " admin@federasi.id ", "rahasia", nil},
		{"username", "admin", "rahasia", nil},
		{"wrong password", "admin@federasi.id", "salah", ErrInvalidCredentials},
		{"unknown user", "hantu", "rahasia", ErrInvalidCredentials},
		{"inactive", "lama", "rahasia", ErrInactiveAccount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			user, err := svc.Login(tc.identifier, tc.password)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Login() error = %v, want %v", err, tc.wantErr)
			}
			if tc.wantErr == nil && user != active {
				t.Errorf("Login() returned wrong user")
			}
		})
	}
}

func TestAuthService_RegisterHashesPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUserRepository(ctrl)
	repo.EXPECT().Create(gomock.Any()).Return(nil)

	user := &model.User{Username: "operator", PasswordHash: "rahasia"}
	if err := NewAuthService(repo).Register(user); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("rahasia")); err != nil {
		t.Errorf("password not hashed with bcrypt: %v", err)
	}
}
