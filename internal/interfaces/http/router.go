package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/renacer/clinica-api/internal/application/analytics"
	"github.com/renacer/clinica-api/internal/application/auth"
	"github.com/renacer/clinica-api/internal/application/billing"
	"github.com/renacer/clinica-api/internal/application/clinico"
	"github.com/renacer/clinica-api/internal/application/gastos"
	"github.com/renacer/clinica-api/internal/application/pacientes"
	"github.com/renacer/clinica-api/internal/application/usecase"
	"github.com/renacer/clinica-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	PacienteUC  *pacientes.UseCase
	FamiliarUC  *pacientes.FamiliarUseCase
	CuentaUC    *billing.CuentaUseCase
	PagoUC      *billing.PagoUseCase
	PDFUC       *billing.PDFUseCase
	GastoUC     *gastos.UseCase
	ClinicoUC   *clinico.UseCase
	DashboardUC *analytics.DashboardUseCase
	Store       billing.ObjectStore
	JWTSecret   string
}

// Router registra las rutas de la API con su control de acceso por rol:
// admin administra todo, medico accede a lo clínico, familiar solo lee lo de
// su paciente vinculado.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	soloAdmin := RequireRole(entity.RoleAdmin)
	adminOMedico := RequireRole(entity.RoleAdmin, entity.RoleMedico)
	cualquierRol := RequireRole(entity.RoleAdmin, entity.RoleMedico, entity.RoleFamiliar)
	adminOFamiliar := RequireRole(entity.RoleAdmin, entity.RoleFamiliar)

	// Auth: login público; el registro de usuarios lo hace el admin.
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/register", AuthMiddleware(deps.JWTSecret), soloAdmin, authHandler.Register)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	// Usuarios (solo admin)
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users", soloAdmin)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Deactivate)

	// Pacientes: escritura admin; lectura para los tres roles (el familiar
	// queda limitado a su paciente dentro del handler).
	pacienteHandler := NewPacienteHandler(deps.PacienteUC, deps.FamiliarUC, deps.Store)
	pac := protected.Group("/pacientes")
	pac.Post("/", soloAdmin, pacienteHandler.Create)
	pac.Get("/", adminOMedico, pacienteHandler.List)
	pac.Get("/:id", cualquierRol, pacienteHandler.GetByID)
	pac.Put("/:id", soloAdmin, pacienteHandler.Update)
	pac.Post("/:id/salida", soloAdmin, pacienteHandler.Salida)
	pac.Post("/:id/reingreso", soloAdmin, pacienteHandler.Reingreso)
	pac.Post("/:id/foto", soloAdmin, pacienteHandler.UploadFoto)

	// Familiares del paciente
	pac.Post("/:id/familiares", soloAdmin, pacienteHandler.CreateFamiliar)
	pac.Get("/:id/familiares", cualquierRol, pacienteHandler.ListFamiliares)
	protected.Put("/familiares/:id", soloAdmin, pacienteHandler.UpdateFamiliar)
	protected.Delete("/familiares/:id", soloAdmin, pacienteHandler.DeleteFamiliar)

	// Registros clínicos por paciente (medico y admin escriben, todos leen lo suyo)
	clinicoHandler := NewClinicoHandler(deps.ClinicoUC)
	pac.Post("/:id/medicamentos", adminOMedico, clinicoHandler.CreateMedicamento)
	pac.Get("/:id/medicamentos", cualquierRol, clinicoHandler.ListMedicamentos)
	pac.Post("/:id/formulas", adminOMedico, clinicoHandler.CreateFormula)
	pac.Get("/:id/formulas", cualquierRol, clinicoHandler.ListFormulas)
	pac.Post("/:id/seguimientos", adminOMedico, clinicoHandler.CreateSeguimiento)
	pac.Get("/:id/seguimientos", cualquierRol, clinicoHandler.ListSeguimientos)
	pac.Post("/:id/visitas", adminOMedico, clinicoHandler.CreateVisita)
	pac.Get("/:id/visitas", cualquierRol, clinicoHandler.ListVisitas)
	pac.Post("/:id/novedades", adminOMedico, clinicoHandler.CreateNovedad)
	pac.Get("/:id/novedades", cualquierRol, clinicoHandler.ListNovedades)
	protected.Delete("/medicamentos/:id", adminOMedico, clinicoHandler.DeleteMedicamento)
	protected.Delete("/formulas/:id", adminOMedico, clinicoHandler.DeleteFormula)
	protected.Delete("/seguimientos/:id", adminOMedico, clinicoHandler.DeleteSeguimiento)
	protected.Delete("/visitas/:id", adminOMedico, clinicoHandler.DeleteVisita)
	protected.Delete("/novedades/:id", adminOMedico, clinicoHandler.DeleteNovedad)

	// Cuentas de cobro: el admin las administra; el familiar consulta las de su paciente.
	cuentaHandler := NewCuentaHandler(deps.CuentaUC, deps.PDFUC, deps.Store)
	cuentas := protected.Group("/cuentas")
	cuentas.Post("/", soloAdmin, cuentaHandler.Create)
	cuentas.Get("/", adminOFamiliar, cuentaHandler.List)
	cuentas.Get("/:id", adminOFamiliar, cuentaHandler.GetByID)
	cuentas.Put("/:id", soloAdmin, cuentaHandler.Update)
	cuentas.Post("/:id/estado", soloAdmin, cuentaHandler.CambiarEstado)
	cuentas.Post("/:id/comprobante", soloAdmin, cuentaHandler.UploadComprobante)
	cuentas.Get("/:id/pdf", adminOFamiliar, cuentaHandler.DownloadPDF)

	// Pagos: administración admin; consulta admin y familiar.
	pagoHandler := NewPagoHandler(deps.PagoUC)
	pagos := protected.Group("/pagos")
	pagos.Post("/", soloAdmin, pagoHandler.Create)
	pagos.Get("/", adminOFamiliar, pagoHandler.List)
	pagos.Get("/:id", adminOFamiliar, pagoHandler.GetByID)
	pagos.Post("/:id/aprobar", soloAdmin, pagoHandler.Aprobar)
	pagos.Delete("/:id", soloAdmin, pagoHandler.Borrar)
	pagos.Post("/:id/reactivar", soloAdmin, pagoHandler.Reactivar)

	// Gastos (solo admin)
	gastoHandler := NewGastoHandler(deps.GastoUC)
	gastosGroup := protected.Group("/gastos", soloAdmin)
	gastosGroup.Post("/", gastoHandler.Create)
	gastosGroup.Get("/", gastoHandler.List)
	gastosGroup.Get("/categorias", gastoHandler.Categorias)
	gastosGroup.Delete("/:id", gastoHandler.Eliminar)
	gastosGroup.Post("/:id/reactivar", gastoHandler.Reactivar)

	// Dashboard (solo admin)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", soloAdmin, dashboardHandler.Summary)
}
