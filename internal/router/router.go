package router

import (
	"time"

	"github.com/Dignition/colizeum-api/internal/config"
	"github.com/Dignition/colizeum-api/internal/handler"
	"github.com/Dignition/colizeum-api/internal/middleware"
	"github.com/Dignition/colizeum-api/internal/model"
	"github.com/Dignition/colizeum-api/internal/repository"
	"github.com/Dignition/colizeum-api/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORSAllowOrigin))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	clubRepo := repository.NewClubRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)
	reportRepo := repository.NewReportRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	debtRepo := repository.NewDebtRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	payrollRepo := repository.NewPayrollRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	aclSvc := service.NewACLService(clubRepo, membershipRepo, rdb)
	reportSvc := service.NewReportService(reportRepo, aclSvc)
	debtSvc := service.NewDebtService(debtRepo, catalogRepo, membershipRepo, userRepo, aclSvc, rdb)
	inventorySvc := service.NewInventoryService(inventoryRepo, catalogRepo, debtRepo, shiftRepo, membershipRepo, userRepo, aclSvc, db, cfg.InstanceDir)
	scheduleSvc := service.NewScheduleService(shiftRepo, reportRepo, membershipRepo, aclSvc, db)
	payrollSvc := service.NewPayrollService(payrollRepo, shiftRepo, membershipRepo, aclSvc, db)
	adminSvc := service.NewAdminService(clubRepo, userRepo, membershipRepo, reportRepo, catalogRepo, db)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	clubsH := handler.NewClubsHandler(aclSvc, authSvc)
	reportsH := handler.NewReportsHandler(reportSvc, aclSvc, authSvc)
	debtsH := handler.NewDebtsHandler(debtSvc, aclSvc, authSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc, aclSvc, authSvc)
	scheduleH := handler.NewScheduleHandler(scheduleSvc, aclSvc, authSvc)
	payrollH := handler.NewPayrollHandler(payrollSvc, aclSvc, authSvc)
	adminH := handler.NewAdminHandler(adminSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes. System roles gate route groups; per-club membership
	// roles are enforced inside the services.
	jwtMW := middleware.JWTAuth(cfg.SessionSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/auth/me", authH.Me)

		v1.GET("/clubs", clubsH.List)
		v1.GET("/clubs/active", clubsH.Active)
		v1.POST("/clubs/active", clubsH.SetActive)

		reports := v1.Group("/reports")
		{
			reports.POST("", reportsH.Create)
			reports.GET("/month", reportsH.Month)
			reports.GET("/:id", reportsH.Get)
			reports.PUT("/:id", reportsH.Update)
		}

		debts := v1.Group("/debts")
		{
			debts.GET("", debtsH.Index)
			debts.POST("", debtsH.Charge)
			debts.POST("/defect", debtsH.Defect)
			debts.GET("/lookup/:barcode", debtsH.Lookup)
			debts.GET("/search", debtsH.Search)
			debts.DELETE("/:id", debtsH.Delete)
			debts.POST("/reset", debtsH.ResetAll)
			debts.POST("/reset/:user_id", debtsH.Reset)
		}

		inventory := v1.Group("/inventory")
		{
			inventory.GET("", inventoryH.View)
			inventory.POST("/import", inventoryH.Import)
			inventory.POST("/counts", inventoryH.SaveCounts)
			inventory.POST("/reset", inventoryH.Reset)
			inventory.POST("/close", inventoryH.Close)
		}

		schedule := v1.Group("/schedule")
		{
			schedule.GET("", scheduleH.Month)
			schedule.POST("/shift", scheduleH.SaveShift)
			schedule.POST("/month", scheduleH.SaveMonth)
		}

		payroll := v1.Group("/payroll")
		{
			payroll.GET("/hours", payrollH.Hours)
			payroll.POST("/hours/recalc", payrollH.RecalcHours)
			payroll.GET("/entries", payrollH.Entries)
			payroll.POST("/entries", payrollH.SaveEntry)
		}

		admin := v1.Group("/admin", middleware.RequireRole(model.RoleSuperadmin))
		{
			admin.GET("/clubs", adminH.ListClubs)
			admin.POST("/clubs", adminH.CreateClub)
			admin.PUT("/clubs/:id", adminH.UpdateClub)
			admin.DELETE("/clubs/:id", adminH.DeleteClub)
			admin.GET("/clubs/:id/members", adminH.ClubMembers)

			admin.GET("/users", adminH.ListUsers)
			admin.POST("/users", adminH.CreateUser)
			admin.POST("/superadmins", adminH.CreateSuperadmin)
			admin.PUT("/users/:id", adminH.UpdateUser)
			admin.DELETE("/users/:id", adminH.DeleteUser)

			admin.POST("/memberships", adminH.GrantMembership)
			admin.DELETE("/memberships/:id", adminH.RevokeMembership)

			admin.GET("/products", adminH.ListProducts)
			admin.POST("/products", adminH.CreateProduct)
			admin.PUT("/products/:id", adminH.UpdateProduct)
			admin.POST("/products/:id/barcodes", adminH.SetClubBarcode)
			admin.DELETE("/barcodes/:id", adminH.DeleteClubBarcode)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
