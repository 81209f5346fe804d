package handlers

import (
	"net/http"

	"github.com/ghuser/equiptrack/pkg/auth"
	"github.com/ghuser/equiptrack/pkg/errhttp"
	"github.com/ghuser/equiptrack/pkg/httpx"
	appsvcs "github.com/ghuser/equiptrack/services/tracking/application/services"
	"github.com/ghuser/equiptrack/services/tracking/domain/models"
)

// ExportBulksHandler handles GET /{domain}/items/events/bulk/export requests.
type ExportBulksHandler struct {
	svc    *appsvcs.Services
	domain models.Domain
}

// NewExportBulksHandler returns an ExportBulksHandler for the given
// equipment domain.
func NewExportBulksHandler(svc *appsvcs.Services, domain models.Domain) *ExportBulksHandler {
	return &ExportBulksHandler{svc: svc, domain: domain}
}

// Execute renders all bulk records as a CSV attachment.
//
//	@Summary		Export bulk records
//	@Description	Renders all batch event-recording operations as a downloadable CSV report
//	@Tags			tracking
//	@Produce		text/csv
//	@Param			domain	path		string	true	"Equipment domain"	Enums(radio, inventory)
//	@Success		200		{string}	string
//	@Failure		404		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/{domain}/items/events/bulk/export [get]
func (h *ExportBulksHandler) Execute(w http.ResponseWriter, r *http.Request) {
	org, err := auth.OrgFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusNotFound, "user not found")
		return
	}

	csv, err := h.svc.Tracking.ExportCSV(r.Context(), org.ID, h.domain)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.CSV(w, h.domain.String()+"_item_events.csv", csv)
}
