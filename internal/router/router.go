package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/parkgrid/parkgrid-api/internal/handler"
	"github.com/parkgrid/parkgrid-api/internal/middleware"
	"github.com/parkgrid/parkgrid-api/internal/models"
	"github.com/parkgrid/parkgrid-api/internal/repository"
	"github.com/parkgrid/parkgrid-api/internal/service"
	"github.com/parkgrid/parkgrid-api/pkg/config"
	"github.com/parkgrid/parkgrid-api/pkg/logger"
	corsmiddleware "github.com/parkgrid/parkgrid-api/pkg/middleware/cors"
	reqidmiddleware "github.com/parkgrid/parkgrid-api/pkg/middleware/requestid"
)

// Deps bundles everything the HTTP layer needs.
type Deps struct {
	Config     *config.Config
	Logger     *zap.Logger
	Metrics    *service.MetricsService
	Auth       *service.AuthService
	Users      *service.UserService
	Vehicles   *service.VehicleService
	Slots      *service.SlotService
	Requests   *service.RequestService
	Reports    *service.ReportService
	Audit      *service.AuditService
	ActionLogs *repository.ActionLogRepository
}

// Setup builds the gin engine with all middleware and routes attached.
func Setup(deps Deps) *gin.Engine {
	cfg := deps.Config

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(deps.Logger))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(deps.Metrics))
	r.Use(middleware.WithResponseMeta())

	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.Users)
	vehicleHandler := handler.NewVehicleHandler(deps.Vehicles)
	slotHandler := handler.NewSlotHandler(deps.Slots)
	requestHandler := handler.NewRequestHandler(deps.Requests)
	reportHandler := handler.NewReportHandler(deps.Reports)
	auditHandler := handler.NewAuditHandler(deps.Audit)
	metricsHandler := handler.NewMetricsHandler(deps.Metrics)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", middleware.JWT(deps.Auth), authHandler.Logout)
	}

	users := api.Group("/users", middleware.JWT(deps.Auth))
	{
		users.GET("/profile", userHandler.Profile)
		users.PUT("/profile", userHandler.UpdateProfile)
		users.PUT("/password", authHandler.ChangePassword)

		users.GET("", middleware.RBAC("ADMIN"), userHandler.List)
		users.POST("", middleware.RBAC("ADMIN"), userHandler.Create)
		users.GET("/:id", middleware.RBAC("ADMIN", "SELF"), userHandler.Get)
		users.PUT("/:id", middleware.RBAC("ADMIN"), userHandler.Update)
		users.DELETE("/:id", middleware.RBAC("ADMIN"), userHandler.Delete)
	}

	vehicles := api.Group("/vehicles", middleware.JWT(deps.Auth), middleware.RequireRoles(models.RoleAdmin, models.RoleUser))
	{
		vehicles.GET("", vehicleHandler.List)
		vehicles.POST("", vehicleHandler.Create)
		vehicles.GET("/:id", vehicleHandler.Get)
		vehicles.PUT("/:id", vehicleHandler.Update)
		vehicles.DELETE("/:id", vehicleHandler.Delete)
	}

	parking := api.Group("/parking", middleware.JWT(deps.Auth))
	{
		slots := parking.Group("/slots")
		{
			slots.GET("", slotHandler.List)
			slots.GET("/:id", slotHandler.Get)
			slots.POST("", middleware.RBAC("ADMIN"), slotHandler.Create)
			slots.POST("/bulk", middleware.RBAC("ADMIN"), slotHandler.BulkCreate)
			slots.PUT("/:id", middleware.RBAC("ADMIN"), slotHandler.Update)
			slots.DELETE("/:id", middleware.RBAC("ADMIN"), slotHandler.Delete)
		}

		requests := parking.Group("/requests")
		{
			requests.POST("", requestHandler.Create)
			requests.GET("", requestHandler.List)
			requests.GET("/:id", requestHandler.Get)
			requests.PUT("/:id", requestHandler.Update)
			requests.DELETE("/:id", requestHandler.Delete)
			requests.PUT("/:id/status", middleware.RBAC("ADMIN"), requestHandler.UpdateStatus)
		}

		if cfg.Reports.Enabled {
			reports := parking.Group("/reports", middleware.RBAC("ADMIN"))
			reports.GET("/occupancy",
				middleware.Audit(deps.ActionLogs, models.AuditActionReportExport, "report"),
				reportHandler.Occupancy)
		}
	}

	audit := api.Group("/audit", middleware.JWT(deps.Auth), middleware.RBAC("ADMIN"))
	{
		audit.GET("/logs", auditHandler.List)
	}

	system := api.Group("/system", middleware.JWT(deps.Auth), middleware.RBAC("ADMIN"))
	{
		system.GET("/metrics", metricsHandler.System)
	}

	return r
}
