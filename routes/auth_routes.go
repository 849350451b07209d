package routes

import (
	"net/http"

	"sports-federation-backend/app/model"
	"sports-federation-backend/app/service"
	"sports-federation-backend/middleware"
	"sports-federation-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuthHandler menangani login panel admin dan pendaftaran operator.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler dipanggil di main.go untuk menyambungkan Service ke Handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SetupAuthRoutes mendaftarkan /api/v1/auth. Register hanya untuk admin.
func (h *AuthHandler) SetupAuthRoutes(r *gin.Engine) {
	authGroup := r.Group("/api/v1/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.POST("/register", middleware.AuthMiddleware(), middleware.RequireAdmin(), h.Register)
	}
}

// Register membuat akun baru (admin / operator).
func (h *AuthHandler) Register(ctx *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		FullName string `json:"fullName" binding:"required"`
		RoleID   string `json:"roleId" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		badInput(ctx, "Input tidak valid", err)
		return
	}

	roleUUID, err := uuid.Parse(input.RoleID)
	if err != nil {
		badInput(ctx, "Format Role ID salah (harus UUID)", err)
		return
	}

	newUser := model.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: input.Password, // di-hash di service
		FullName:     input.FullName,
		RoleID:       roleUUID,
		IsActive:     true,
	}
	if err := h.authService.Register(&newUser); err != nil {
		respondError(ctx, "Gagal registrasi", err)
		return
	}

	ctx.JSON(http.StatusCreated, utils.BuildResponseSuccess("Registrasi berhasil", gin.H{"id": newUser.ID}))
}

// Login menerima email atau username beserta password.
func (h *AuthHandler) Login(ctx *gin.Context) {
	var input struct {
		Identifier string `json:"identifier" binding:"required"`
		Password   string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		badInput(ctx, "Input login tidak valid", err)
		return
	}

	user, err := h.authService.Login(input.Identifier, input.Password)
	if err != nil {
		respondError(ctx, "Login gagal", err)
		return
	}

	permissions := make([]string, 0, len(user.Role.Permissions))
	for _, p := range user.Role.Permissions {
		permissions = append(permissions, p.Name)
	}

	token, err := utils.GenerateToken(user.ID, user.Role.Name, permissions)
	if err != nil {
		respondError(ctx, "Gagal membuat token", err)
		return
	}

	data := gin.H{
		"token": token,
		"user": gin.H{
			"id":          user.ID,
			"username":    user.Username,
			"fullName":    user.FullName,
			"role":        user.Role.Name,
			"permissions": permissions,
		},
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Login berhasil", data))
}
