package routes

import (
	"net/http"
	"strings"
	"time"

	"sports-federation-backend/app/recurrence"
	"sports-federation-backend/app/repository"
	"sports-federation-backend/app/service"
	"sports-federation-backend/middleware"
	"sports-federation-backend/utils"

	"github.com/gin-gonic/gin"
)

// ActivityLogHandler membaca log aktivitas (MongoDB). Hanya admin.
type ActivityLogHandler struct {
	activity service.ActivityLogService
}

func NewActivityLogHandler(activity service.ActivityLogService) *ActivityLogHandler {
	return &ActivityLogHandler{activity: activity}
}

func (h *ActivityLogHandler) SetupActivityLogRoutes(r *gin.Engine) {
	g := r.Group("/api/v1/activity-logs")
	g.Use(middleware.AuthMiddleware(), middleware.RequireAdmin())
	{
		g.GET("", h.List)
		g.GET("/statistics", h.Statistics)
	}
}

// filter membaca ?level=&action=&user_id=&since=YYYY-MM-DD
func (h *ActivityLogHandler) filter(ctx *gin.Context) (repository.ActivityLogFilter, bool) {
	f := repository.ActivityLogFilter{
		Level:  strings.TrimSpace(ctx.Query("level")),
		Action: strings.TrimSpace(ctx.Query("action")),
		UserID: strings.TrimSpace(ctx.Query("user_id")),
	}
	if raw := ctx.Query("since"); raw != "" {
		since, err := time.Parse(recurrence.DateLayout, raw)
		if err != nil {
			badInput(ctx, "since harus berformat YYYY-MM-DD", err)
			return f, false
		}
		f.Since = &since
	}
	return f, true
}

func (h *ActivityLogHandler) List(ctx *gin.Context) {
	f, ok := h.filter(ctx)
	if !ok {
		return
	}
	paging := utils.ResolvePaging(ctx, utils.DefaultPerPage, utils.MaxPerPage)
	f.Limit = int64(paging.Limit)
	f.Offset = int64(paging.Offset)

	rows, total, err := h.activity.List(ctx.Request.Context(), f)
	if err != nil {
		respondError(ctx, "Gagal mengambil log aktivitas", err)
		return
	}
	meta := utils.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	ctx.JSON(http.StatusOK, utils.BuildResponsePaged("Daftar log aktivitas", rows, meta))
}

func (h *ActivityLogHandler) Statistics(ctx *gin.Context) {
	f, ok := h.filter(ctx)
	if !ok {
		return
	}
	stats, err := h.activity.Statistics(ctx.Request.Context(), f)
	if err != nil {
		respondError(ctx, "Gagal menghitung statistik", err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Statistik log aktivitas", stats))
}
