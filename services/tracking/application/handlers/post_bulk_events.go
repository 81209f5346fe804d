package handlers

import (
	"net/http"
	"time"

	"github.com/ghuser/equiptrack/pkg/auth"
	"github.com/ghuser/equiptrack/pkg/errhttp"
	"github.com/ghuser/equiptrack/pkg/httpx"
	pkgvalidator "github.com/ghuser/equiptrack/pkg/validator"
	appsvcs "github.com/ghuser/equiptrack/services/tracking/application/services"
	"github.com/ghuser/equiptrack/services/tracking/domain/models"
)

// RecordBulkEventsRequest is the request body for POST /{domain}/items/events/bulk.
type RecordBulkEventsRequest struct {
	DeviceIDs    []string `json:"deviceIds"    validate:"required,min=1,dive,required,max=100" example:"HRT-042,HRT-043"`
	BatteryCount int      `json:"batteryCount" validate:"gte=0"                                example:"5"`
	EventType    string   `json:"eventType"    validate:"required"                             example:"returned"`
} // @name RecordBulkEventsRequest

// PostBulkEventsHandler handles POST /{domain}/items/events/bulk requests.
type PostBulkEventsHandler struct {
	svc    *appsvcs.Services
	domain models.Domain
}

// NewPostBulkEventsHandler returns a PostBulkEventsHandler for the given
// equipment domain.
func NewPostBulkEventsHandler(svc *appsvcs.Services, domain models.Domain) *PostBulkEventsHandler {
	return &PostBulkEventsHandler{svc: svc, domain: domain}
}

// Execute records one event per device id in a single batch. Items are
// created on first reference; the batch is timestamped at receipt time.
//
//	@Summary		Record bulk events
//	@Description	Records one event per device id and persists a summary bulk record
//	@Tags			tracking
//	@Accept			json
//	@Produce		json
//	@Param			domain	path		string					true	"Equipment domain"	Enums(radio, inventory)
//	@Param			request	body		RecordBulkEventsRequest	true	"Bulk recording request"
//	@Success		200		{object}	object
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/{domain}/items/events/bulk [post]
func (h *PostBulkEventsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusNotFound, "user not found")
		return
	}
	org, err := auth.OrgFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusNotFound, "user not found")
		return
	}

	req, ok := pkgvalidator.ValidateRequestStrict[RecordBulkEventsRequest](w, r)
	if !ok {
		return
	}

	eventType, err := h.domain.ParseEventType(req.EventType)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	deviceIDs := make([]models.DeviceID, len(req.DeviceIDs))
	for i, raw := range req.DeviceIDs {
		deviceID, err := models.NewDeviceID(raw)
		if err != nil {
			errhttp.WriteError(w, err)
			return
		}
		deviceIDs[i] = deviceID
	}

	actor := models.EventUser{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}
	err = h.svc.Tracking.RecordBulk(r.Context(), org.ID, h.domain, actor,
		deviceIDs, req.BatteryCount, eventType, time.Now().UTC())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, struct{}{})
}
