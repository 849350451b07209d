package routes

import (
	"net/http"
	"strconv"
	"strings"

	"sports-federation-backend/app/repository"
	"sports-federation-backend/app/service"
	"sports-federation-backend/middleware"
	"sports-federation-backend/utils"

	"github.com/gin-gonic/gin"
)

// FormTemplateHandler menangani definisi form dinamis.
// Baca: semua user login. Tulis: admin.
type FormTemplateHandler struct {
	templates service.FormTemplateService
}

func NewFormTemplateHandler(templates service.FormTemplateService) *FormTemplateHandler {
	return &FormTemplateHandler{templates: templates}
}

func (h *FormTemplateHandler) SetupFormTemplateRoutes(r *gin.Engine) {
	g := r.Group("/api/v1/form-templates")
	g.Use(middleware.AuthMiddleware())
	{
		g.GET("", h.List)
		g.GET("/:id", h.Get)
		g.GET("/:id/options", h.Options)
		g.GET("/:id/reference/:referenceId", h.Reference)

		admin := g.Group("")
		admin.Use(middleware.RequireAdmin())
		admin.POST("", h.Create)
		admin.PUT("/:id", h.Update)
		admin.DELETE("/:id", h.Delete)
	}
}

// List: ?search=&is_active=&page=&per_page=
func (h *FormTemplateHandler) List(ctx *gin.Context) {
	paging := utils.ResolvePaging(ctx, utils.DefaultPerPage, utils.MaxPerPage)
	filter := repository.TemplateFilter{
		Search: strings.TrimSpace(ctx.Query("search")),
		Limit:  paging.Limit,
		Offset: paging.Offset,
	}
	if raw := ctx.Query("is_active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			badInput(ctx, "is_active harus true/false", err)
			return
		}
		filter.IsActive = &active
	}

	rows, total, err := h.templates.List(ctx.Request.Context(), filter)
	if err != nil {
		respondError(ctx, "Gagal mengambil template", err)
		return
	}
	meta := utils.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	ctx.JSON(http.StatusOK, utils.BuildResponsePaged("Daftar template", rows, meta))
}

func (h *FormTemplateHandler) Get(ctx *gin.Context) {
	id, ok := paramUUID(ctx, "id")
	if !ok {
		return
	}
	row, err := h.templates.Get(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, "Template tidak ditemukan", err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Detail template", row))
}

func (h *FormTemplateHandler) Create(ctx *gin.Context) {
	var input service.TemplateInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		badInput(ctx, "Input tidak valid", err)
		return
	}
	row, err := h.templates.Create(ctx.Request.Context(), currentUserID(ctx), input)
	if err != nil {
		respondError(ctx, "Gagal menyimpan template", err)
		return
	}
	ctx.JSON(http.StatusCreated, utils.BuildResponseSuccess("Template berhasil dibuat", row))
}

func (h *FormTemplateHandler) Update(ctx *gin.Context) {
	id, ok := paramUUID(ctx, "id")
	if !ok {
		return
	}
	var input service.TemplateInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		badInput(ctx, "Input tidak valid", err)
		return
	}
	row, err := h.templates.Update(ctx.Request.Context(), id, input)
	if err != nil {
		respondError(ctx, "Gagal memperbarui template", err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Template berhasil diperbarui", row))
}

// Delete juga menghapus semua submission template tersebut.
func (h *FormTemplateHandler) Delete(ctx *gin.Context) {
	id, ok := paramUUID(ctx, "id")
	if !ok {
		return
	}
	n, err := h.templates.Delete(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, "Gagal menghapus template", err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Template berhasil dihapus", gin.H{"deleted_submissions": n}))
}

func (h *FormTemplateHandler) Options(ctx *gin.Context) {
	id, ok := paramUUID(ctx, "id")
	if !ok {
		return
	}
	opts, err := h.templates.ResolveOptions(ctx.Request.Context(), id, currentUserID(ctx).String())
	if err != nil {
		respondError(ctx, "Gagal mengambil opsi form", err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Opsi form", opts))
}

// Reference mengambil record referensi global untuk auto-fill di klien.
func (h *FormTemplateHandler) Reference(ctx *gin.Context) {
	id, ok := paramUUID(ctx, "id")
	if !ok {
		return
	}
	rec, err := h.templates.GetReferenceRecord(ctx.Request.Context(), id, ctx.Param("referenceId"))
	if err != nil {
		respondError(ctx, "Record referensi tidak ditemukan", err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Record referensi", rec))
}
