package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"eggslist/internal/cache"
	"eggslist/internal/http/middleware"
	"eggslist/internal/repository"
	"eggslist/internal/service"
)

// Services bundles the services the HTTP layer dispatches to.
type Services struct {
	Location service.LocationService
	Branding service.BrandingService
	Content  service.ContentService
	Auth     service.AuthService
	Mailing  service.MailingService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Admin routes require a staff access token.
func RegisterRoutes(app *fiber.App, db *sql.DB, kv cache.Cache, svc Services) {
	app.Get("/api/health", Health())
	app.Get("/readyz", Readiness(db, kv))

	site := app.Group("/api/site-configuration")
	site.Get("/locations/states", ListStates(svc.Location))
	site.Get("/locations/cities", ListCities(svc.Location))
	site.Get("/locations/zip-codes", ListZipCodes(svc.Location))
	site.Get("/locations/zip-codes/nearby", NearbyZipCodes(svc.Location))
	site.Get("/testimonials", ListTestimonials(svc.Content))
	site.Get("/faqs", ListFAQs(svc.Content))
	site.Get("/team-members", ListTeamMembers(svc.Content))
	site.Get("/branding", GetBranding(svc.Branding))

	app.Post("/api/users/login", Login(svc.Auth))

	admin := app.Group("/api/admin", middleware.Auth(svc.Auth), middleware.RequireStaff())

	admin.Get("/branding", GetBrandingSettings(svc.Branding))
	admin.Put("/branding", UpdateBranding(svc.Branding))
	admin.Post("/branding/logo", UploadLogo(svc.Branding))
	admin.Post("/branding/favicon", UploadFavicon(svc.Branding))

	admin.Get("/testimonials", AdminListTestimonials(svc.Content))
	admin.Post("/testimonials", CreateTestimonial(svc.Content))
	admin.Post("/testimonials/reorder", ReorderContent(svc.Content, repository.KindTestimonial))
	admin.Put("/testimonials/:id", UpdateTestimonial(svc.Content))
	admin.Delete("/testimonials/:id", DeleteContent(svc.Content, repository.KindTestimonial))

	admin.Get("/faqs", AdminListFAQs(svc.Content))
	admin.Post("/faqs", CreateFAQ(svc.Content))
	admin.Post("/faqs/reorder", ReorderContent(svc.Content, repository.KindFAQ))
	admin.Put("/faqs/:id", UpdateFAQ(svc.Content))
	admin.Delete("/faqs/:id", DeleteContent(svc.Content, repository.KindFAQ))

	admin.Get("/team-members", AdminListTeamMembers(svc.Content))
	admin.Post("/team-members", CreateTeamMember(svc.Content))
	admin.Post("/team-members/reorder", ReorderContent(svc.Content, repository.KindTeamMember))
	admin.Put("/team-members/:id", UpdateTeamMember(svc.Content))
	admin.Delete("/team-members/:id", DeleteContent(svc.Content, repository.KindTeamMember))
	admin.Post("/team-members/:id/image", UploadTeamImage(svc.Content))

	admin.Post("/countries", CreateCountry(svc.Location))
	admin.Delete("/countries/:slug", DeleteLocation(svc.Location, repository.LevelCountry))
	admin.Post("/states", CreateState(svc.Location))
	admin.Delete("/states/:slug", DeleteLocation(svc.Location, repository.LevelState))
	admin.Post("/cities", CreateCity(svc.Location))
	admin.Delete("/cities/:slug", DeleteLocation(svc.Location, repository.LevelCity))
	admin.Post("/zip-codes", CreateZipCode(svc.Location))
	admin.Delete("/zip-codes/:slug", DeleteLocation(svc.Location, repository.LevelZipCode))

	admin.Post("/mailings", SendMailing(svc.Mailing))
}
