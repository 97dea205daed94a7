package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/inventory-admin/internal/application/analytics"
	"github.com/jhoicas/inventory-admin/internal/application/auth"
	"github.com/jhoicas/inventory-admin/internal/application/export"
	"github.com/jhoicas/inventory-admin/internal/application/inventory"
	"github.com/jhoicas/inventory-admin/internal/application/usecase"
	"github.com/jhoicas/inventory-admin/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ItemUC      *usecase.ItemUseCase
	StockUC     *inventory.StockUseCase
	CatalogUC   *usecase.CatalogUseCase
	UserUC      *usecase.UserUseCase
	ActivityUC  *usecase.ActivityUseCase
	ExportUC    *export.ExportUseCase
	Importer    *export.Importer
	DashboardUC *appanalytics.DashboardUseCase
	Users       userLookup
	JWTSecret   string
	UploadDir   string // se sirve en /uploads; vacío no monta la ruta
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.UploadDir != "" {
		app.Static("/uploads", deps.UploadDir, fiber.Static{MaxAge: 3600})
	}

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token de un usuario activo)
	guards := []fiber.Handler{AuthMiddleware(deps.JWTSecret)}
	if deps.Users != nil {
		guards = append(guards, RequireActiveUser(deps.Users))
	}
	protected := api.Group("/", guards...)
	adminOnly := RequireRole(entity.RoleAdmin)

	protected.Get("/auth/me", authHandler.Me)
	protected.Put("/auth/password", authHandler.ChangePassword)

	// Ítems
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC, deps.StockUC, deps.Importer)
	items.Get("/", itemHandler.List)
	items.Post("/", itemHandler.Create)
	items.Get("/lookup/:code", itemHandler.Lookup)
	items.Post("/import", itemHandler.Import)
	items.Get("/import/template", itemHandler.ImportTemplate)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", adminOnly, itemHandler.Delete)
	items.Post("/:id/image", itemHandler.UploadImage)
	items.Delete("/:id/image", itemHandler.DeleteImage)
	items.Get("/:id/label", itemHandler.Label)
	items.Get("/:id/batches", itemHandler.Batches)
	items.Get("/:id/fifo", itemHandler.FIFOPreview)
	items.Get("/:id/movements", itemHandler.Movements)

	// Stock y daños
	stockHandler := NewStockHandler(deps.StockUC)
	protected.Post("/stock/in", stockHandler.StockIn)
	protected.Post("/stock/out", stockHandler.StockOut)
	protected.Get("/stock/movements", stockHandler.ListMovements)
	protected.Post("/damaged", stockHandler.ReportDamaged)
	protected.Get("/damaged", stockHandler.ListDamaged)

	// Catálogo marca > modelo > color
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	protected.Get("/brands", catalogHandler.ListBrands)
	protected.Post("/brands", catalogHandler.CreateBrand)
	protected.Put("/brands/:id", catalogHandler.UpdateBrand)
	protected.Delete("/brands/:id", adminOnly, catalogHandler.DeleteBrand)
	protected.Get("/brands/:id/models", catalogHandler.ListModels)
	protected.Post("/brands/:id/models", catalogHandler.CreateModel)
	protected.Put("/models/:id", catalogHandler.UpdateModel)
	protected.Delete("/models/:id", adminOnly, catalogHandler.DeleteModel)
	protected.Get("/models/:id/colors", catalogHandler.ListColors)
	protected.Post("/models/:id/colors", catalogHandler.CreateColor)
	protected.Put("/colors/:id", catalogHandler.UpdateColor)
	protected.Delete("/colors/:id", adminOnly, catalogHandler.DeleteColor)

	// Actividad
	activityHandler := NewActivityHandler(deps.ActivityUC)
	protected.Get("/activity", activityHandler.List)

	// Exportaciones
	exports := protected.Group("/exports")
	exportHandler := NewExportHandler(deps.ExportUC)
	exports.Post("/", exportHandler.Request)
	exports.Get("/", exportHandler.List)
	exports.Put("/read-all", exportHandler.MarkAllRead)
	exports.Put("/:id/read", exportHandler.MarkRead)
	exports.Get("/:id/download", exportHandler.Download)
	exports.Delete("/:id", exportHandler.Delete)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)
	protected.Get("/dashboard/charts", dashboardHandler.GetCharts)

	// Usuarios (solo admin)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
}
