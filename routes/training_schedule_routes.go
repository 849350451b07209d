package routes

import (
	"net/http"

	"sports-federation-backend/app/service"
	"sports-federation-backend/middleware"
	"sports-federation-backend/utils"

	"github.com/gin-gonic/gin"
)

// TrainingScheduleHandler menangani jadwal latihan mingguan dan generate sesi.
type TrainingScheduleHandler struct {
	schedules service.TrainingScheduleService
}

func NewTrainingScheduleHandler(schedules service.TrainingScheduleService) *TrainingScheduleHandler {
	return &TrainingScheduleHandler{schedules: schedules}
}

type dateRangeInput struct {
	DateFrom string `json:"date_from" form:"date_from" binding:"required"`
	DateTo   string `json:"date_to" form:"date_to" binding:"required"`
}

func (h *TrainingScheduleHandler) SetupTrainingScheduleRoutes(r *gin.Engine) {
	g := r.Group("/api/v1/training-schedules")
	g.Use(middleware.AuthMiddleware())
	{
		g.GET("", h.List)
		g.POST("", h.Create)
		g.GET("/:id", h.Get)
		g.DELETE("/:id", middleware.RequireAdmin(), h.Delete)

		g.GET("/:id/preview", h.Preview)
		g.POST("/:id/generate-sessions", h.GenerateSessions)
		g.GET("/:id/sessions", h.ListSessions)
	}
}

func (h *TrainingScheduleHandler) Create(ctx *gin.Context) {
	var input service.ScheduleInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		badInput(ctx, "Input tidak valid", err)
		return
	}
	row, err := h.schedules.Create(ctx.Request.Context(), currentUserID(ctx), input)
	if err != nil {
		respondError(ctx, "Gagal menyimpan jadwal", err)
		return
	}
	ctx.JSON(http.StatusCreated, utils.BuildResponseSuccess("Jadwal berhasil dibuat", row))
}

func (h *TrainingScheduleHandler) List(ctx *gin.Context) {
	paging := utils.ResolvePaging(ctx, utils.DefaultPerPage, utils.MaxPerPage)
	rows, total, err := h.schedules.List(ctx.Request.Context(), paging.Limit, paging.Offset)
	if err != nil {
		respondError(ctx, "Gagal mengambil jadwal", err)
		return
	}
	meta := utils.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	ctx.JSON(http.StatusOK, utils.BuildResponsePaged("Daftar jadwal", rows, meta))
}

func (h *TrainingScheduleHandler) Get(ctx *gin.Context) {
	id, ok := paramUUID(ctx, "id")
	if !ok {
		return
	}
	row, err := h.schedules.Get(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, "Jadwal tidak ditemukan", err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Detail jadwal", row))
}

func (h *TrainingScheduleHandler) Delete(ctx *gin.Context) {
	id, ok := paramUUID(ctx, "id")
	if !ok {
		return
	}
	if err := h.schedules.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, "Gagal menghapus jadwal", err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Jadwal berhasil dihapus", nil))
}

// Preview: ?date_from=YYYY-MM-DD&date_to=YYYY-MM-DD
func (h *TrainingScheduleHandler) Preview(ctx *gin.Context) {
	id, ok := paramUUID(ctx, "id")
	if !ok {
		return
	}
	var input dateRangeInput
	if err := ctx.ShouldBindQuery(&input); err != nil {
		badInput(ctx, "date_from dan date_to wajib diisi", err)
		return
	}
	out, err := h.schedules.Preview(ctx.Request.Context(), id, input.DateFrom, input.DateTo)
	if err != nil {
		respondError(ctx, "Gagal menghitung preview", err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Preview sesi", out))
}

func (h *TrainingScheduleHandler) GenerateSessions(ctx *gin.Context) {
	id, ok := paramUUID(ctx, "id")
	if !ok {
		return
	}
	var input dateRangeInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		badInput(ctx, "date_from dan date_to wajib diisi", err)
		return
	}
	out, err := h.schedules.GenerateSessions(ctx.Request.Context(), id, input.DateFrom, input.DateTo)
	if err != nil {
		respondError(ctx, "Gagal generate sesi", err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Sesi berhasil dibuat", out))
}

// ListSessions: ?date_from=&date_to= opsional.
func (h *TrainingScheduleHandler) ListSessions(ctx *gin.Context) {
	id, ok := paramUUID(ctx, "id")
	if !ok {
		return
	}
	rows, err := h.schedules.ListSessions(ctx.Request.Context(), id, ctx.Query("date_from"), ctx.Query("date_to"))
	if err != nil {
		respondError(ctx, "Gagal mengambil sesi", err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Daftar sesi", rows))
}
