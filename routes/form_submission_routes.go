package routes

import (
	"net/http"
	"strings"

	"sports-federation-backend/app/repository"
	"sports-federation-backend/app/service"
	"sports-federation-backend/middleware"
	"sports-federation-backend/utils"

	"github.com/gin-gonic/gin"
)

// FormSubmissionHandler menangani pengisian form dan hasilnya.
type FormSubmissionHandler struct {
	submissions service.FormSubmissionService
}

func NewFormSubmissionHandler(submissions service.FormSubmissionService) *FormSubmissionHandler {
	return &FormSubmissionHandler{submissions: submissions}
}

func (h *FormSubmissionHandler) SetupFormSubmissionRoutes(r *gin.Engine) {
	byTemplate := r.Group("/api/v1/form-templates/:id")
	byTemplate.Use(middleware.AuthMiddleware())
	{
		byTemplate.POST("/preview", h.Preview)
		byTemplate.POST("/submissions", h.Create)
		byTemplate.GET("/submissions", h.List)
	}

	g := r.Group("/api/v1/submissions")
	g.Use(middleware.AuthMiddleware())
	{
		g.GET("/:id", h.Get)
		g.DELETE("/:id", middleware.RequireAdmin(), h.Delete)
	}
}

// Preview menghitung field kalkulasi dan error validasi tanpa menyimpan.
func (h *FormSubmissionHandler) Preview(ctx *gin.Context) {
	id, ok := paramUUID(ctx, "id")
	if !ok {
		return
	}
	var input service.FillInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		badInput(ctx, "Input tidak valid", err)
		return
	}
	out, err := h.submissions.Preview(ctx.Request.Context(), id, input)
	if err != nil {
		respondError(ctx, "Gagal menghitung form", err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Preview form", out))
}

func (h *FormSubmissionHandler) Create(ctx *gin.Context) {
	id, ok := paramUUID(ctx, "id")
	if !ok {
		return
	}
	var input service.FillInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		badInput(ctx, "Input tidak valid", err)
		return
	}
	sub, err := h.submissions.Create(ctx.Request.Context(), id, currentUserID(ctx), input)
	if err != nil {
		respondError(ctx, "Gagal menyimpan submission", err)
		return
	}
	ctx.JSON(http.StatusCreated, utils.BuildResponseSuccess("Submission berhasil disimpan", sub))
}

// List: ?reference_id=&page=&per_page=
func (h *FormSubmissionHandler) List(ctx *gin.Context) {
	id, ok := paramUUID(ctx, "id")
	if !ok {
		return
	}
	paging := utils.ResolvePaging(ctx, utils.DefaultPerPage, utils.MaxPerPage)
	filter := repository.SubmissionFilter{TemplateID: id, Limit: paging.Limit, Offset: paging.Offset}
	if ref := strings.TrimSpace(ctx.Query("reference_id")); ref != "" {
		filter.ReferenceID = &ref
	}

	rows, total, err := h.submissions.List(ctx.Request.Context(), filter)
	if err != nil {
		respondError(ctx, "Gagal mengambil submission", err)
		return
	}
	meta := utils.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	ctx.JSON(http.StatusOK, utils.BuildResponsePaged("Daftar submission", rows, meta))
}

func (h *FormSubmissionHandler) Get(ctx *gin.Context) {
	id, ok := paramUUID(ctx, "id")
	if !ok {
		return
	}
	sub, err := h.submissions.Get(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, "Submission tidak ditemukan", err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Detail submission", sub))
}

func (h *FormSubmissionHandler) Delete(ctx *gin.Context) {
	id, ok := paramUUID(ctx, "id")
	if !ok {
		return
	}
	if err := h.submissions.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, "Gagal menghapus submission", err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Submission berhasil dihapus", nil))
}
