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
	appanalytics "github.com/renacer/clinica-api/internal/application/analytics"
	"github.com/renacer/clinica-api/internal/application/auth"
	"github.com/renacer/clinica-api/internal/application/billing"
	"github.com/renacer/clinica-api/internal/application/clinico"
	"github.com/renacer/clinica-api/internal/application/gastos"
	"github.com/renacer/clinica-api/internal/application/pacientes"
	"github.com/renacer/clinica-api/internal/application/usecase"
	infrapdf "github.com/renacer/clinica-api/internal/infrastructure/pdf"
	"github.com/renacer/clinica-api/internal/infrastructure/postgres"
	"github.com/renacer/clinica-api/internal/infrastructure/storage"
	httpRouter "github.com/renacer/clinica-api/internal/interfaces/http"
	"github.com/renacer/clinica-api/pkg/config"
	"github.com/renacer/clinica-api/pkg/logger"
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

	// Repositorios sobre el pool; los casos de uso transaccionales reciben
	// además el TxRunner, que reconstruye los repos sobre la transacción.
	userRepo := postgres.NewUserRepository(pool)
	pacienteRepo := postgres.NewPacienteRepository(pool)
	ingresoRepo := postgres.NewIngresoRepository(pool)
	familiarRepo := postgres.NewFamiliarRepository(pool)
	cuentaRepo := postgres.NewCuentaCobroRepository(pool)
	pagoRepo := postgres.NewPagoRepository(pool)
	gastoRepo := postgres.NewGastoRepository(pool)
	auditRepo := postgres.NewAuditoriaRepository(pool)
	medicamentoRepo := postgres.NewMedicamentoRepository(pool)
	formulaRepo := postgres.NewFormulaRepository(pool)
	seguimientoRepo := postgres.NewSeguimientoRepository(pool)
	visitaRepo := postgres.NewVisitaRepository(pool)
	novedadRepo := postgres.NewNovedadRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	store, err := storage.NewS3Store(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento S3")
	}

	authUC := auth.NewAuthUseCase(userRepo, pacienteRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo, pacienteRepo)
	pacienteUC := pacientes.NewUseCase(txRunner, pacienteRepo, ingresoRepo, familiarRepo)
	familiarUC := pacientes.NewFamiliarUseCase(familiarRepo, pacienteRepo)
	cuentaUC := billing.NewCuentaUseCase(txRunner, cuentaRepo, auditRepo, pacienteRepo, familiarRepo)
	pagoUC := billing.NewPagoUseCase(txRunner, pagoRepo, auditRepo, pacienteRepo, cuentaRepo)
	gastoUC := gastos.NewUseCase(txRunner, gastoRepo, auditRepo)
	clinicoUC := clinico.NewUseCase(
		pacienteRepo, medicamentoRepo, formulaRepo, seguimientoRepo, visitaRepo, novedadRepo,
	)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)

	// PDF: cuenta de cobro imprimible para enviar al familiar responsable
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	pdfUC := billing.NewPDFUseCase(cuentaRepo, pacienteRepo, familiarRepo, pdfGenerator)

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
		Title:    "Clínica Renacer API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      userUC,
		PacienteUC:  pacienteUC,
		FamiliarUC:  familiarUC,
		CuentaUC:    cuentaUC,
		PagoUC:      pagoUC,
		PDFUC:       pdfUC,
		GastoUC:     gastoUC,
		ClinicoUC:   clinicoUC,
		DashboardUC: dashboardUC,
		Store:       store,
		JWTSecret:   cfg.JWT.Secret,
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
