package services

import (
	"github.com/ghuser/equiptrack/pkg/app"
	"github.com/ghuser/equiptrack/pkg/cache"
	"github.com/ghuser/equiptrack/services/tracking/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Tracking *TrackingService
}

// New wires the tracking application service with infrastructure from the
// Application container.
func New(a *app.Application) *Services {
	items := postgres.NewItemRepository(a.Db)
	events := postgres.NewEventRepository(a.Db)
	bulks := postgres.NewBulkRepository(a.Db)

	// Avoid a typed-nil cache sneaking into the interface field.
	var lastEvents lastEventCache
	if a.Redis != nil {
		lastEvents = cache.NewLastEventCache(a.Redis)
	}

	// Avoid a typed-nil bus sneaking into the interface field.
	var bus eventPublisher
	if a.EventBus != nil {
		bus = a.EventBus
	}

	return &Services{
		Tracking: NewTrackingService(items, events, bulks, lastEvents, bus, a.Logger),
	}
}
