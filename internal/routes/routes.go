package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/tutor-marketplace/internal/audit"
	"github.com/BruksfildServices01/tutor-marketplace/internal/auth"
	"github.com/BruksfildServices01/tutor-marketplace/internal/config"
	"github.com/BruksfildServices01/tutor-marketplace/internal/handlers"
	infraRepo "github.com/BruksfildServices01/tutor-marketplace/internal/infra/repository"
	"github.com/BruksfildServices01/tutor-marketplace/internal/middleware"
	"github.com/BruksfildServices01/tutor-marketplace/internal/timezone"
	ucApplication "github.com/BruksfildServices01/tutor-marketplace/internal/usecase/application"
	"github.com/BruksfildServices01/tutor-marketplace/internal/validators"
)

type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Notifier ucApplication.Notifier

	// EmailCheck overrides the registration domain lookup.
	EmailCheck validators.EmailCheck
}

// RegisterRoutes wires every handler onto r. The returned func flushes the
// audit dispatcher and must be called on shutdown.
func RegisterRoutes(r *gin.Engine, deps Deps) (shutdown func()) {
	db, cfg := deps.DB, deps.Config

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	applicationRepo := infraRepo.NewApplicationGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	loc := timezone.Location(cfg.Timezone)
	clock := timezone.Clock(cfg.Timezone)

	// ======================================================
	// USE CASES (APPLICATIONS)
	// ======================================================
	createApplicationUC := ucApplication.NewCreateApplication(
		applicationRepo,
		auditDispatcher,
		clock,
	)

	updateApplicationUC := ucApplication.NewUpdateApplication(
		applicationRepo,
		deps.Notifier,
		auditDispatcher,
		clock,
	)

	getApplicationUC := ucApplication.NewGetApplication(applicationRepo)
	listApplicationsUC := ucApplication.NewListApplications(applicationRepo)

	deleteApplicationUC := ucApplication.NewDeleteApplication(
		applicationRepo,
		auditDispatcher,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, deps.EmailCheck)
	meHandler := handlers.NewMeHandler(db)
	tuitionHandler := handlers.NewTuitionHandler(db, auditDispatcher)
	auditLogsHandler := handlers.NewAuditLogsHandler(db, loc)

	applicationHandler := handlers.NewApplicationHandler(
		createApplicationUC,
		updateApplicationUC,
		getApplicationUC,
		listApplicationsUC,
		deleteApplicationUC,
		loc,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.Authenticate(cfg))
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.GET("/me", middleware.RequireAuth(), meHandler.GetMe)

		// ------------------------------
		// TUITIONS (public)
		// ------------------------------
		api.POST("/tuitions", tuitionHandler.Create)
		api.GET("/tuitions", tuitionHandler.List)
		api.GET("/tuitions/:code", tuitionHandler.GetByCode)

		// ------------------------------
		// APPLICATIONS
		// ------------------------------
		api.POST("/applications", applicationHandler.Create)
		api.GET("/applications", applicationHandler.List)

		applications := api.Group("/applications")
		applications.Use(middleware.RequireAuth())
		{
			applications.GET("/:id", applicationHandler.Get)
			applications.PATCH("/:id", applicationHandler.Patch)
			applications.PUT("/:id", middleware.RequireRole(auth.RoleAdmin), applicationHandler.Put)
			applications.DELETE("/:id", applicationHandler.Delete)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.RequireRole(auth.RoleAdmin))
		{
			admin.PATCH("/tuitions/:id", tuitionHandler.Update)
			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}

	return auditDispatcher.Close
}
