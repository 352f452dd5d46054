package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/seraphine/internal/application/analytics"
	"github.com/jhoicas/seraphine/internal/application/auth"
	"github.com/jhoicas/seraphine/internal/application/inventory"
	"github.com/jhoicas/seraphine/internal/application/report"
	"github.com/jhoicas/seraphine/internal/application/usecase"
	"github.com/jhoicas/seraphine/internal/domain/access"
	"github.com/jhoicas/seraphine/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	OrganizationUC *usecase.OrganizationUseCase
	ProductUC      *usecase.ProductUseCase
	UserUC         *usecase.UserUseCase
	ModuleService  *usecase.ModuleService
	StockUC        *inventory.StockUseCase
	DashboardUC    *analytics.DashboardUseCase
	ReportUC       *report.ReportUseCase
	AuthUC         *auth.AuthUseCase
	JWTSecret      string
	Import         ImportLimits
	Logger         *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api")

	// Alta de farmacia (público)
	orgHandler := NewOrganizationHandler(deps.OrganizationUC)
	api.Post("/organizations", orgHandler.Create)

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// view / manage por módulo
	var roles RoleResolver
	if deps.UserUC != nil {
		roles = deps.UserUC
	}
	view := func(m access.ModuleKey) fiber.Handler { return RequireModule(m, ActionView, deps.ModuleService, roles, log) }
	manage := func(m access.ModuleKey) fiber.Handler {
		return RequireModule(m, ActionManage, deps.ModuleService, roles, log)
	}

	accessHandler := NewAccessHandler(deps.ModuleService, deps.UserUC)
	protected.Get("/organization", orgHandler.Current)
	protected.Get("/me/access", accessHandler.Me)

	// Configuración (parametres)
	settings := protected.Group("/settings")
	settings.Get("/modules", view(access.ModuleParametres), accessHandler.ListModules)
	settings.Put("/modules/:module", manage(access.ModuleParametres), accessHandler.SetModule)

	members := protected.Group("/members")
	members.Get("/", view(access.ModuleParametres), accessHandler.ListMembers)
	members.Get("/:id", view(access.ModuleParametres), accessHandler.GetMember)
	members.Put("/:id/role", manage(access.ModuleParametres), accessHandler.UpdateMemberRole)

	// Products (inventaire)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Import)
	products.Post("/import", manage(access.ModuleInventaire), productHandler.Import)
	products.Post("/", manage(access.ModuleInventaire), productHandler.Create)
	products.Get("/", view(access.ModuleInventaire), productHandler.List)
	products.Get("/:id", view(access.ModuleInventaire), productHandler.GetByID)
	products.Put("/:id", manage(access.ModuleInventaire), productHandler.Update)
	products.Delete("/:id", manage(access.ModuleInventaire), productHandler.Delete)

	// Movimientos de stock (ventes / achats / inventaire)
	inventoryHandler := NewInventoryHandler(deps.StockUC)
	protected.Post("/sales", manage(access.ModuleVentes), inventoryHandler.RegisterSale)
	protected.Post("/purchases", manage(access.ModuleAchats), inventoryHandler.RegisterPurchase)
	invGroup := protected.Group("/inventory")
	invGroup.Post("/adjustments", manage(access.ModuleInventaire), inventoryHandler.RegisterAdjustment)
	invGroup.Get("/movements", view(access.ModuleInventaire), inventoryHandler.ListMovements)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", view(access.ModuleDashboard), dashboardHandler.GetSummary)

	// Informes (rapports)
	reportHandler := NewReportHandler(deps.ReportUC)
	protected.Get("/reports/stock.pdf", view(access.ModuleRapports), reportHandler.StockPDF)
}
