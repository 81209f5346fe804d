package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/equiptrack/pkg/auth"
	"github.com/ghuser/equiptrack/pkg/errhttp"
	"github.com/ghuser/equiptrack/pkg/httpx"
	appsvcs "github.com/ghuser/equiptrack/services/tracking/application/services"
	trackingdomain "github.com/ghuser/equiptrack/services/tracking/domain"
	"github.com/ghuser/equiptrack/services/tracking/domain/models"
)

// GetItemEventsHandler handles GET /{domain}/items/{deviceId}/events requests.
type GetItemEventsHandler struct {
	svc    *appsvcs.Services
	domain models.Domain
}

// NewGetItemEventsHandler returns a GetItemEventsHandler for the given
// equipment domain.
func NewGetItemEventsHandler(svc *appsvcs.Services, domain models.Domain) *GetItemEventsHandler {
	return &GetItemEventsHandler{svc: svc, domain: domain}
}

// Execute lists the full event history of one item, oldest first.
//
//	@Summary		List item events
//	@Description	Lists all recorded events of the item with the given device id
//	@Tags			tracking
//	@Produce		json
//	@Param			domain		path		string	true	"Equipment domain"	Enums(radio, inventory)
//	@Param			deviceId	path		string	true	"Device id"
//	@Success		200			{array}		EventResponse
//	@Failure		404			{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/{domain}/items/{deviceId}/events [get]
func (h *GetItemEventsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	org, err := auth.OrgFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusNotFound, "user not found")
		return
	}

	deviceID, err := models.NewDeviceID(chi.URLParam(r, "deviceId"))
	if err != nil {
		// A device id that cannot exist has no item behind it.
		errhttp.WriteError(w, trackingdomain.ErrItemNotFound)
		return
	}

	events, err := h.svc.Tracking.ItemEvents(r.Context(), org.ID, h.domain, deviceID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := make([]EventResponse, len(events))
	for i, event := range events {
		resp[i] = *toEventResponse(event)
	}
	httpx.JSON(w, http.StatusOK, resp)
}
