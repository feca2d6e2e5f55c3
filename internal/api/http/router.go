package http

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fixpoint-labs/repair-shop-service/internal/api/http/handlers"
	"github.com/fixpoint-labs/repair-shop-service/internal/auth"
	"github.com/fixpoint-labs/repair-shop-service/internal/domain"
	"github.com/fixpoint-labs/repair-shop-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Intake    *handlers.IntakeHandler
	Tickets   *handlers.TicketsHandler
	Photos    *handlers.PhotosHandler
	Customers *handlers.CustomersHandler
	Catalog   *handlers.CatalogHandler
	Users     *handlers.UsersHandler
	Settings  *handlers.SettingsHandler

	Session     *auth.SessionMiddleware
	RateLimiter fiber.Handler
	Metrics     *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Metrics.Registry, promhttp.HandlerOpts{})))

	// Public surface: the triage form and the master data it renders.
	public := app.Group("/public")
	public.Post("/intake", cfg.RateLimiter, cfg.Intake.CreateTicket)
	public.Get("/brands", cfg.Intake.ListBrands)
	public.Get("/categories", cfg.Intake.ListCategories)
	public.Get("/categories/:id/questions", cfg.Intake.Checklist)
	public.Get("/site", cfg.Intake.SiteSettings)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Post("/logout", cfg.Users.Logout)
	authGroup.Get("/me", cfg.Session.Handle, cfg.Users.Me)
	authGroup.Post("/password/change", cfg.Session.Handle, cfg.Users.ChangePassword)

	// Staff surface: any authenticated back-office role.
	staff := app.Group("", cfg.Session.Handle, auth.RequireRole(domain.RoleAdmin, domain.RoleTechnician))
	staff.Get("/tickets", cfg.Tickets.ListTickets)
	staff.Get("/tickets/:id", cfg.Tickets.GetTicket)
	staff.Patch("/tickets/:id/status", cfg.Tickets.UpdateStatus)
	staff.Patch("/tickets/:id/priority", cfg.Tickets.UpdatePriority)
	staff.Patch("/tickets/:id/technician", cfg.Tickets.AssignTechnician)
	staff.Put("/tickets/:id/costs", cfg.Tickets.SaveCosts)
	staff.Put("/tickets/:id/closing", cfg.Tickets.SaveClosingFields)
	staff.Put("/tickets/:id/invoice-overrides", cfg.Tickets.UpdateInvoiceOverrides)
	staff.Post("/tickets/:id/signature", cfg.Tickets.AttachSignature)
	staff.Get("/tickets/:id/invoice", cfg.Tickets.GetInvoice)
	staff.Get("/tickets/:id/changes", cfg.Tickets.ListChanges)

	staff.Post("/tickets/:id/photos", cfg.Photos.Upload)
	staff.Get("/tickets/:id/photos", cfg.Photos.List)
	staff.Delete("/photos/:id", cfg.Photos.Delete)

	staff.Get("/customers", cfg.Customers.Search)
	staff.Get("/customers/:id", cfg.Customers.Get)
	staff.Put("/customers/:id", cfg.Customers.Update)
	staff.Get("/customers/:id/tickets", cfg.Customers.Tickets)

	staff.Get("/users/technicians", cfg.Users.ListTechnicians)

	// Admin surface: master data, accounts, settings and destructive actions.
	admin := app.Group("/admin", cfg.Session.Handle, auth.RequireRole(domain.RoleAdmin))
	admin.Delete("/tickets/:id", cfg.Tickets.DeleteTicket)
	admin.Delete("/customers/:id", cfg.Customers.Delete)

	admin.Get("/brands", cfg.Catalog.ListBrands)
	admin.Post("/brands", cfg.Catalog.CreateBrand)
	admin.Put("/brands/:id", cfg.Catalog.UpdateBrand)
	admin.Delete("/brands/:id", cfg.Catalog.DeleteBrand)

	admin.Get("/categories", cfg.Catalog.ListCategories)
	admin.Post("/categories", cfg.Catalog.CreateCategory)
	admin.Put("/categories/:id", cfg.Catalog.UpdateCategory)
	admin.Delete("/categories/:id", cfg.Catalog.DeleteCategory)

	admin.Get("/questions", cfg.Catalog.ListQuestions)
	admin.Post("/questions", cfg.Catalog.CreateQuestion)
	admin.Put("/questions/:id", cfg.Catalog.UpdateQuestion)
	admin.Delete("/questions/:id", cfg.Catalog.DeleteQuestion)

	admin.Get("/users", cfg.Users.ListUsers)
	admin.Post("/users", cfg.Users.CreateUser)
	admin.Put("/users/:id", cfg.Users.UpdateUser)
	admin.Post("/users/:id/password", cfg.Users.ResetPassword)

	admin.Get("/settings/company", cfg.Settings.GetCompany)
	admin.Put("/settings/company", cfg.Settings.UpdateCompany)
	admin.Get("/settings/site", cfg.Settings.GetSite)
	admin.Put("/settings/site", cfg.Settings.UpdateSite)
}
