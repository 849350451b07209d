package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"sports-federation-backend/app/recurrence"
	"sports-federation-backend/app/repository"
	"sports-federation-backend/app/service"
	"sports-federation-backend/database"
	"sports-federation-backend/middleware"
	"sports-federation-backend/routes"
	"sports-federation-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	// =================================================================
	// LOAD ENV
	// =================================================================
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env tidak ditemukan, menggunakan environment default")
	}
	if utils.GetEnv("JWT_SECRET") == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	}

	// =================================================================
	// INIT DB (POSTGRES + MONGODB)
	// =================================================================
	dbConn, err := database.InitDB()
	if err != nil {
		log.Fatalf("❌ Gagal koneksi database: %v", err)
	}

	// =================================================================
	// SEED DATA
	// =================================================================
	database.RunSeeders(dbConn.Postgres)

	// =================================================================
	// REPOSITORIES
	// =================================================================
	userRepo := repository.NewUserRepository(dbConn.Postgres)
	catalogRepo := repository.NewModelCatalogRepository(dbConn.Postgres)
	templateRepo := repository.NewFormTemplateRepository(dbConn.Postgres)
	submissionRepo := repository.NewFormSubmissionRepository(dbConn.Postgres)
	scheduleRepo := repository.NewTrainingScheduleRepository(dbConn.Postgres)
	activityRepo := repository.NewActivityLogRepository(dbConn.Mongo)

	// =================================================================
	// SERVICES
	// =================================================================
	loc := recurrence.LoadLocation(utils.GetEnv("APP_TIMEZONE", recurrence.DefaultTimezone))

	activityService := service.NewActivityLogService(activityRepo)
	authService := service.NewAuthService(userRepo)
	modelService := service.NewModelService(catalogRepo)
	templateService := service.NewFormTemplateService(templateRepo, catalogRepo, activityService)
	submissionService := service.NewFormSubmissionService(submissionRepo, templateRepo, catalogRepo, activityService)
	scheduleService := service.NewTrainingScheduleService(scheduleRepo, loc)

	// =================================================================
	// ROUTER
	// =================================================================
	r := gin.Default()
	r.Use(middleware.ActivityLogger(activityService))

	routes.NewAuthHandler(authService).SetupAuthRoutes(r)
	routes.NewModelHandler(modelService).SetupModelRoutes(r)
	routes.NewFormTemplateHandler(templateService).SetupFormTemplateRoutes(r)
	routes.NewFormSubmissionHandler(submissionService).SetupFormSubmissionRoutes(r)
	routes.NewTrainingScheduleHandler(scheduleService).SetupTrainingScheduleRoutes(r)
	routes.NewActivityLogHandler(activityService).SetupActivityLogRoutes(r)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Sports Federation API RUNNING",
			"version": "1.0.0",
		})
	})

	// =================================================================
	// START SERVER
	// =================================================================
	port := utils.GetEnv("APP_PORT", "8080")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Println("🚀 Server running at http://localhost:" + port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Gagal menjalankan server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 Mematikan server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Shutdown tidak bersih: %v", err)
	}
	dbConn.Close(shutdownCtx)
	log.Println("✅ Server berhenti")
}
