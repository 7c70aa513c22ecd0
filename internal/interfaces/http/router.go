package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/donaciones-api/internal/application/auth"
	"github.com/jhoicas/donaciones-api/internal/application/catalog"
	"github.com/jhoicas/donaciones-api/internal/application/distribution"
	"github.com/jhoicas/donaciones-api/internal/application/donation"
	"github.com/jhoicas/donaciones-api/internal/application/reconcile"
	"github.com/jhoicas/donaciones-api/internal/application/usecase"
	"github.com/jhoicas/donaciones-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	DonorUC       *usecase.DonorUseCase
	BeneficiaryUC *usecase.BeneficiaryUseCase
	CatalogUC     *catalog.UseCase
	DonationUC    *donation.UseCase
	ReceiptUC     *donation.ReceiptUseCase
	DistUC        *distribution.UseCase
	ReconcileUC   *reconcile.UseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Donors (protegido)
	donors := protected.Group("/donors")
	donorHandler := NewDonorHandler(deps.DonorUC)
	donors.Post("/", donorHandler.Create)
	donors.Get("/", donorHandler.List)
	donors.Get("/:id", donorHandler.GetByID)
	donors.Put("/:id", donorHandler.Update)
	donors.Delete("/:id", donorHandler.Delete)

	// Beneficiaries (protegido)
	beneficiaries := protected.Group("/beneficiaries")
	beneficiaryHandler := NewBeneficiaryHandler(deps.BeneficiaryUC, deps.DistUC)
	beneficiaries.Post("/", beneficiaryHandler.Create)
	beneficiaries.Get("/", beneficiaryHandler.List)
	beneficiaries.Get("/:id", beneficiaryHandler.GetByID)
	beneficiaries.Put("/:id", beneficiaryHandler.Update)
	beneficiaries.Get("/:id/quota", beneficiaryHandler.GetQuota)

	// Catalog e inventario (protegido)
	inventoryHandler := NewInventoryHandler(deps.CatalogUC)
	products := protected.Group("/products")
	products.Get("/", inventoryHandler.ListProducts)
	products.Get("/:id", inventoryHandler.GetProduct)
	products.Get("/:id/movements", inventoryHandler.ListProductMovements)
	protected.Get("/categories", inventoryHandler.ListCategories)
	invGroup := protected.Group("/inventory")
	invGroup.Get("/movements", inventoryHandler.ListMovementsByReference)
	invGroup.Post("/adjustments", inventoryHandler.Adjust)
	invGroup.Get("/low-stock", inventoryHandler.ListLowStock)

	// Donations (protegido)
	donations := protected.Group("/donations")
	donationHandler := NewDonationHandler(deps.DonationUC, deps.ReceiptUC)
	donations.Post("/", donationHandler.Register)
	donations.Get("/", donationHandler.List)
	donations.Get("/:id", donationHandler.GetByID)
	donations.Post("/:id/process", donationHandler.Process)
	donations.Delete("/:id", donationHandler.Cancel)
	donations.Get("/:id/receipt", donationHandler.Receipt)

	// Distributions (protegido)
	distributions := protected.Group("/distributions")
	distributionHandler := NewDistributionHandler(deps.DistUC)
	distributions.Post("/", distributionHandler.Register)
	distributions.Get("/", distributionHandler.List)
	distributions.Get("/:id", distributionHandler.GetByID)
	distributions.Delete("/:id", distributionHandler.Cancel)

	// Reconciliación (protegido, solo admin)
	reconcileGroup := protected.Group("/reconcile", RequireRole(entity.RoleAdmin))
	reconcileHandler := NewReconcileHandler(deps.ReconcileUC)
	reconcileGroup.Get("/products", reconcileHandler.CheckProducts)
	reconcileGroup.Post("/products/repair", reconcileHandler.RepairProducts)
	reconcileGroup.Get("/beneficiaries", reconcileHandler.CheckBeneficiaries)
	reconcileGroup.Post("/beneficiaries/repair", reconcileHandler.RepairBeneficiaries)
}
