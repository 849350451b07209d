package routes

import (
	"net/http"

	"sports-federation-backend/app/service"
	"sports-federation-backend/middleware"
	"sports-federation-backend/utils"

	"github.com/gin-gonic/gin"
)

// ModelHandler mengekspos katalog model untuk builder form.
type ModelHandler struct {
	models service.ModelService
}

func NewModelHandler(models service.ModelService) *ModelHandler {
	return &ModelHandler{models: models}
}

func (h *ModelHandler) SetupModelRoutes(r *gin.Engine) {
	g := r.Group("/api/v1/models")
	g.Use(middleware.AuthMiddleware())
	{
		g.GET("", h.ListModels)
		g.GET("/:key/fields", h.ListModelFields)
		g.GET("/:key/records", h.ListModelRecords)
	}
}

func (h *ModelHandler) ListModels(ctx *gin.Context) {
	models, err := h.models.ListModels(ctx.Request.Context())
	if err != nil {
		respondError(ctx, "Gagal mengambil daftar model", err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Daftar model", models))
}

func (h *ModelHandler) ListModelFields(ctx *gin.Context) {
	fields, err := h.models.ListModelFields(ctx.Request.Context(), ctx.Param("key"))
	if err != nil {
		respondError(ctx, "Gagal mengambil field model", err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Daftar field model", fields))
}

func (h *ModelHandler) ListModelRecords(ctx *gin.Context) {
	records, err := h.models.ListModelRecords(ctx.Request.Context(), ctx.Param("key"))
	if err != nil {
		respondError(ctx, "Gagal mengambil record model", err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Daftar record model", records))
}
