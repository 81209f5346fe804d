package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/equiptrack/pkg/app"
	"github.com/ghuser/equiptrack/services/tracking/application/handlers"
	appsvcs "github.com/ghuser/equiptrack/services/tracking/application/services"
	"github.com/ghuser/equiptrack/services/tracking/domain/models"
)

// TrackingRoutes registers tracking endpoints on the provided chi router.
// The same handler set is mounted once per equipment domain; requests to a
// path outside the registered domains fall through to chi's 404.
func TrackingRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	for _, domain := range []models.Domain{models.DomainRadio, models.DomainInventory} {
		r.Route("/"+domain.String(), func(r chi.Router) {
			domainRoutes(r, svcs, domain)
		})
	}
}

func domainRoutes(r chi.Router, svcs *appsvcs.Services, domain models.Domain) {
	r.Route("/items", func(r chi.Router) {
		r.Get("/", handlers.NewGetItemsHandler(svcs, domain).Execute)
		r.Get("/{deviceId}/events", handlers.NewGetItemEventsHandler(svcs, domain).Execute)
		r.Route("/events/bulk", func(r chi.Router) {
			r.Post("/", handlers.NewPostBulkEventsHandler(svcs, domain).Execute)
			r.Get("/", handlers.NewGetBulksHandler(svcs, domain).Execute)
			r.Get("/export", handlers.NewExportBulksHandler(svcs, domain).Execute)
		})
	})
}
