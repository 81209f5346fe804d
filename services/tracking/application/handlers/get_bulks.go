package handlers

import (
	"net/http"

	"github.com/ghuser/equiptrack/pkg/auth"
	"github.com/ghuser/equiptrack/pkg/errhttp"
	"github.com/ghuser/equiptrack/pkg/httpx"
	appsvcs "github.com/ghuser/equiptrack/services/tracking/application/services"
	"github.com/ghuser/equiptrack/services/tracking/domain/models"
)

// GetBulksHandler handles GET /{domain}/items/events/bulk requests.
type GetBulksHandler struct {
	svc    *appsvcs.Services
	domain models.Domain
}

// NewGetBulksHandler returns a GetBulksHandler for the given equipment domain.
func NewGetBulksHandler(svc *appsvcs.Services, domain models.Domain) *GetBulksHandler {
	return &GetBulksHandler{svc: svc, domain: domain}
}

// Execute lists all bulk records of the organisation, newest first.
//
//	@Summary		List bulk records
//	@Description	Lists all batch event-recording operations with their events and acting user
//	@Tags			tracking
//	@Produce		json
//	@Param			domain	path		string	true	"Equipment domain"	Enums(radio, inventory)
//	@Success		200		{array}		BulkResponse
//	@Failure		404		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/{domain}/items/events/bulk [get]
func (h *GetBulksHandler) Execute(w http.ResponseWriter, r *http.Request) {
	org, err := auth.OrgFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusNotFound, "user not found")
		return
	}

	bulks, err := h.svc.Tracking.Bulks(r.Context(), org.ID, h.domain)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := make([]BulkResponse, len(bulks))
	for i, bulk := range bulks {
		resp[i] = toBulkResponse(bulk)
	}
	httpx.JSON(w, http.StatusOK, resp)
}
