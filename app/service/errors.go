package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var (
	// ErrNotFound: entity yang diminta tidak ada (HTTP 404).
	ErrNotFound = errors.New("data tidak ditemukan")
	// ErrBadRequest: input tidak bisa diproses (HTTP 400).
	ErrBadRequest = errors.New("input tidak valid")
	// ErrInvalidCredentials: email/username atau password salah (HTTP 401).
	ErrInvalidCredentials = errors.New("email atau password salah")
	// ErrInactiveAccount: akun dinonaktifkan admin (HTTP 401).
	ErrInactiveAccount = errors.New("akun anda dinonaktifkan")
)

var validate = validator.New()

// notFound menerjemahkan gorm.ErrRecordNotFound menjadi ErrNotFound.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	return err
}

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrBadRequest, fmt.Sprintf(format, args...))
}

// validateStruct menjalankan tag `validate` dan merangkum pelanggarannya.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return badRequest("%v", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s gagal aturan '%s'", fe.Namespace(), fe.Tag()))
	}
	return badRequest("%s", strings.Join(msgs, "; "))
}
