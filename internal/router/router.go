package router

import (
	"time"

	"vionup/internal/config"
	"vionup/internal/handler"
	"vionup/internal/middleware"
	"vionup/internal/repository"
	"vionup/internal/service"
	"vionup/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	cacheTTL := time.Duration(cfg.ExternalCacheTTLMinutes) * time.Minute

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	extRepo := repository.NewExternalRepository(db)
	rawMaterialRepo := repository.NewRawMaterialRepository(db)
	productRepo := repository.NewProductRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	companySvc := service.NewCompanyService(companyRepo, extRepo)
	rawMaterialSvc := service.NewRawMaterialService(rawMaterialRepo, extRepo, companyRepo, rdb, cacheTTL)
	productSvc := service.NewProductService(productRepo, extRepo, companyRepo, rdb, cacheTTL)
	employeeSvc := service.NewEmployeeService(employeeRepo, extRepo, companyRepo, rdb, cacheTTL)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	companiesH := handler.NewCompaniesHandler(companySvc)
	rawMaterialsH := handler.NewRawMaterialsHandler(rawMaterialSvc)
	productsH := handler.NewProductsHandler(productSvc)
	employeesH := handler.NewEmployeesHandler(employeeSvc)
	syncH := handler.NewSyncHandler(dispatcher)
	catalogH := handler.NewCatalogHandler(rawMaterialRepo, productRepo, employeeRepo, companyRepo, extRepo)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: operador, gestor, administrador — every reconciliation
		// screen is usable by all three; sync is gestor and administrador.
		operate := middleware.RequireRole("operador", "gestor", "administrador")

		companies := v1.Group("/companies", operate)
		{
			companies.GET("/panels", companiesH.Panels)
			companies.GET("/resolve", companiesH.Resolve)
			companies.POST("/mappings", companiesH.CreateMapping)
			companies.DELETE("/mappings/:id", companiesH.DeleteMapping)
		}

		rawMaterials := v1.Group("/raw-materials", operate)
		{
			rawMaterials.GET("/panels", rawMaterialsH.Panels)
			rawMaterials.POST("/mappings", rawMaterialsH.CreateMapping)
			rawMaterials.PUT("/mappings/:id", rawMaterialsH.UpdateMappingQuantity)
			rawMaterials.DELETE("/mappings/:id", rawMaterialsH.DeleteMapping)
		}

		products := v1.Group("/products", operate)
		{
			products.GET("/panels", productsH.Panels)
			products.POST("/mappings", productsH.CreateMapping)
			products.POST("/quick-create", productsH.QuickCreate)
			products.DELETE("/mappings/:id", productsH.DeleteMapping)
		}

		employees := v1.Group("/employees", operate)
		{
			employees.GET("/panels", employeesH.Panels)
			employees.POST("/mappings", employeesH.CreateMapping)
			employees.POST("/quick-create", employeesH.QuickCreate)
			employees.POST("/bulk-assign", employeesH.BulkAssign)
			employees.DELETE("/mappings/:id", employeesH.DeleteMapping)
		}

		// Read-only catalog inputs
		v1.GET("/raw-materials", operate, catalogH.ListRawMaterials)
		v1.GET("/products", operate, catalogH.ListProducts)
		v1.GET("/employees", operate, catalogH.ListEmployees)
		v1.GET("/companies", operate, catalogH.ListCompanies)
		external := v1.Group("/external", operate)
		{
			external.GET("/products", catalogH.ListExternalProducts)
			external.GET("/employees", catalogH.ListExternalEmployees)
			external.GET("/companies", catalogH.ListExternalCompanies)
		}

		v1.POST("/sync", middleware.RequireRole("gestor", "administrador"), syncH.Trigger)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
