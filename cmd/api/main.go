package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/amortiplus/consola-api/internal/application/auth"
	appbom "github.com/amortiplus/consola-api/internal/application/bom"
	"github.com/amortiplus/consola-api/internal/application/inventory"
	"github.com/amortiplus/consola-api/internal/application/sales"
	"github.com/amortiplus/consola-api/internal/application/usecase"
	infrapdf "github.com/amortiplus/consola-api/internal/infrastructure/pdf"
	"github.com/amortiplus/consola-api/internal/infrastructure/postgres"
	httpRouter "github.com/amortiplus/consola-api/internal/interfaces/http"
	"github.com/amortiplus/consola-api/pkg/config"
	"github.com/amortiplus/consola-api/pkg/logger"
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
	productRepo := postgres.NewProductRepository(pool)
	bomRepo := postgres.NewBOMRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	productUC := usecase.NewProductUseCase(productRepo)
	bomUC := appbom.NewUseCase(bomRepo, productRepo)
	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, productRepo)
	ledgerQueriesUC := inventory.NewLedgerQueryUseCase(movementRepo, productRepo)
	createOrderUC := sales.NewCreateOrderUseCase(txRunner, productRepo)
	transitionOrderUC := sales.NewTransitionOrderUseCase(txRunner, orderRepo)

	// PDF: remisión de despacho para el taller
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	orderQueriesUC := sales.NewOrderQueryUseCase(orderRepo, movementRepo, productRepo, pdfGenerator)

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
		Title:    "Amortiplus Console API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:        productUC,
		BOMUC:            bomUC,
		RegisterMovement: registerMovementUC,
		LedgerQueries:    ledgerQueriesUC,
		CreateOrder:      createOrderUC,
		TransitionOrder:  transitionOrderUC,
		OrderQueries:     orderQueriesUC,
		AuthUC:           authUC,
		JWTSecret:        cfg.JWT.Secret,
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
