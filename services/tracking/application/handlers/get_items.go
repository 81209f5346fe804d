package handlers

import (
	"net/http"

	"github.com/ghuser/equiptrack/pkg/auth"
	"github.com/ghuser/equiptrack/pkg/errhttp"
	"github.com/ghuser/equiptrack/pkg/httpx"
	appsvcs "github.com/ghuser/equiptrack/services/tracking/application/services"
	"github.com/ghuser/equiptrack/services/tracking/domain/models"
)

// GetItemsHandler handles GET /{domain}/items requests.
type GetItemsHandler struct {
	svc    *appsvcs.Services
	domain models.Domain
}

// NewGetItemsHandler returns a GetItemsHandler for the given equipment domain.
func NewGetItemsHandler(svc *appsvcs.Services, domain models.Domain) *GetItemsHandler {
	return &GetItemsHandler{svc: svc, domain: domain}
}

// Execute lists all tracked items with their most recent event.
//
//	@Summary		List items
//	@Description	Lists all tracked items of the organisation with their most recent event attached
//	@Tags			tracking
//	@Produce		json
//	@Param			domain	path		string	true	"Equipment domain"	Enums(radio, inventory)
//	@Success		200		{array}		ExpandedItemResponse
//	@Failure		404		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/{domain}/items [get]
func (h *GetItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	org, err := auth.OrgFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusNotFound, "user not found")
		return
	}

	items, err := h.svc.Tracking.ExpandedItems(r.Context(), org.ID, h.domain)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := make([]ExpandedItemResponse, len(items))
	for i, item := range items {
		resp[i] = ExpandedItemResponse{
			ID:        item.Item.ID,
			DeviceID:  item.Item.DeviceID.String(),
			CreatedAt: item.Item.CreatedAt,
			LastEvent: toEventResponse(item.LastEvent),
		}
	}
	httpx.JSON(w, http.StatusOK, resp)
}
