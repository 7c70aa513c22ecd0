package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/donaciones-api/internal/application/auth"
	"github.com/jhoicas/donaciones-api/internal/application/catalog"
	"github.com/jhoicas/donaciones-api/internal/application/distribution"
	"github.com/jhoicas/donaciones-api/internal/application/donation"
	"github.com/jhoicas/donaciones-api/internal/application/reconcile"
	"github.com/jhoicas/donaciones-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/donaciones-api/internal/infrastructure/pdf"
	"github.com/jhoicas/donaciones-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/donaciones-api/internal/interfaces/http"
	"github.com/jhoicas/donaciones-api/pkg/config"
	"github.com/jhoicas/donaciones-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	donorRepo := postgres.NewDonorRepository(pool)
	donationRepo := postgres.NewDonationRepository(pool)
	beneficiaryRepo := postgres.NewBeneficiaryRepository(pool)
	distributionRepo := postgres.NewDistributionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	catalogUC := catalog.NewUseCase(txRunner, categoryRepo, productRepo, movementRepo)
	donationUC := donation.NewUseCase(txRunner, catalogUC, donationRepo, donorRepo)
	distUC := distribution.NewUseCase(txRunner, catalogUC, distributionRepo, beneficiaryRepo)
	reconcileUC := reconcile.NewUseCase(productRepo, movementRepo, beneficiaryRepo, distributionRepo)
	donorUC := usecase.NewDonorUseCase(donorRepo)
	beneficiaryUC := usecase.NewBeneficiaryUseCase(beneficiaryRepo)

	// PDF: comprobante de donación procesada
	receiptGenerator := infrapdf.NewMarotoReceiptGenerator(cfg.App.Name)
	receiptUC := donation.NewReceiptUseCase(donationRepo, donorRepo, receiptGenerator)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Donaciones API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		DonorUC:       donorUC,
		BeneficiaryUC: beneficiaryUC,
		CatalogUC:     catalogUC,
		DonationUC:    donationUC,
		ReceiptUC:     receiptUC,
		DistUC:        distUC,
		ReconcileUC:   reconcileUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
