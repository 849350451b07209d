package routes

import (
	"errors"
	"net/http"

	"sports-federation-backend/app/formengine"
	"sports-federation-backend/app/recurrence"
	"sports-federation-backend/app/service"
	"sports-federation-backend/middleware"
	"sports-federation-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// statusFor memetakan error service ke HTTP status.
func statusFor(err error) int {
	if _, ok := formengine.AsValidation(err); ok {
		return http.StatusUnprocessableEntity
	}
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInactiveAccount):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrBadRequest),
		errors.Is(err, recurrence.ErrInvalidRange),
		errors.Is(err, recurrence.ErrInvalidWeekday),
		errors.Is(err, recurrence.ErrInvalidTime),
		errors.Is(err, formengine.ErrUnknownField),
		errors.Is(err, formengine.ErrReadonlyField),
		errors.Is(err, formengine.ErrNotOwnModelField),
		errors.Is(err, formengine.ErrNotLinkedField),
		errors.Is(err, formengine.ErrNoReference),
		errors.Is(err, formengine.ErrLastSection),
		errors.Is(err, formengine.ErrIndexOutOfRange),
		errors.Is(err, formengine.ErrSubmitInFlight),
		errors.Is(err, formengine.ErrSessionClosed):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// respondError menulis envelope gagal. Validasi (422) membawa daftar error
// per-field dan indeks section pertama yang bermasalah.
func respondError(ctx *gin.Context, message string, err error) {
	if ve, ok := formengine.AsValidation(err); ok {
		ctx.JSON(http.StatusUnprocessableEntity,
			utils.BuildResponseFailed(message, ve.Errors, gin.H{"first_section": ve.FirstSection()}))
		return
	}
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = ctx.Error(err)
	}
	ctx.JSON(status, utils.BuildResponseFailed(message, err.Error(), nil))
}

func badInput(ctx *gin.Context, message string, err error) {
	ctx.JSON(http.StatusBadRequest, utils.BuildResponseFailed(message, err.Error(), nil))
}

// paramUUID mem-parse path param; gagal → 400 dan false.
func paramUUID(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Format ID salah (harus UUID)", err.Error(), nil))
		return uuid.Nil, false
	}
	return id, true
}

func currentUserID(ctx *gin.Context) uuid.UUID {
	return middleware.CurrentUserID(ctx)
}
