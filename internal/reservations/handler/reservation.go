package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"voltslot/internal/reservations/service"
	apperrors "voltslot/pkg/errors"
	httputil "voltslot/pkg/http"
	"voltslot/pkg/logger"
	"voltslot/pkg/middleware"
	"voltslot/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type ReservationHandler struct {
	service service.ReservationService
	log     *logger.Logger
}

func NewReservationHandler(service service.ReservationService, log *logger.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log,
	}
}

func (h *ReservationHandler) actor(w http.ResponseWriter, r *http.Request) (model.Actor, bool) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		if writeErr := httputil.WriteError(w, apperrors.Unauthorized("missing actor identity")); writeErr != nil {
			h.log.Error("failed to write error response", "operation", "WriteError", "error", writeErr)
		}
		return model.Actor{}, false
	}
	return actor, true
}

func (h *ReservationHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "operation", "WriteError", "error", writeErr)
	}
}

func (h *ReservationHandler) Request(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	var reservation model.Reservation
	if err := json.NewDecoder(r.Body).Decode(&reservation); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Request", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	// The header form of the key wins over the body field; retried requests
	// carry the same header and must map to the same reservation.
	if key := r.Header.Get("Idempotency-Key"); key != "" {
		reservation.IdempotencyKey = key
	}

	admitted, err := h.service.Request(r.Context(), actor, &reservation)
	if err != nil {
		h.writeError(w, "Request", err)
		return
	}

	if err := httputil.WriteCreated(w, admitted); err != nil {
		h.log.Error("failed to write created response", "handler", "Request", "operation", "WriteCreated", "error", err)
	}
}

func (h *ReservationHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reservation, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, reservation); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	reservations, total, err := h.service.GetAll(r.Context(), actor, limit, offset)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WritePaginated(w, reservations, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *ReservationHandler) GetByRider(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetByRider", err)
		return
	}

	reservations, total, err := h.service.GetByRider(r.Context(), actor, ps.ByName("riderId"), limit, offset)
	if err != nil {
		h.writeError(w, "GetByRider", err)
		return
	}

	if err := httputil.WritePaginated(w, reservations, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetByRider", "operation", "WritePaginated", "error", err)
	}
}

func (h *ReservationHandler) GetByStation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetByStation", err)
		return
	}

	reservations, total, err := h.service.GetByStation(r.Context(), ps.ByName("stationId"), limit, offset)
	if err != nil {
		h.writeError(w, "GetByStation", err)
		return
	}

	if err := httputil.WritePaginated(w, reservations, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetByStation", "operation", "WritePaginated", "error", err)
	}
}

type decisionRequest struct {
	Decision string `json:"decision"`
}

func (h *ReservationHandler) Respond(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	var body decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Respond", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	decision, err := model.ParseDecision(body.Decision)
	if err != nil {
		h.writeError(w, "Respond", apperrors.InvalidInput("decision must be either 'confirmed' or 'rejected'"))
		return
	}

	reservation, err := h.service.Respond(r.Context(), actor, ps.ByName("id"), decision)
	if err != nil {
		h.writeError(w, "Respond", err)
		return
	}

	if err := httputil.WriteSuccess(w, reservation); err != nil {
		h.log.Error("failed to write success response", "handler", "Respond", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	reservation, err := h.service.Cancel(r.Context(), actor, ps.ByName("id"))
	if err != nil {
		h.writeError(w, "Cancel", err)
		return
	}

	if err := httputil.WriteSuccess(w, reservation); err != nil {
		h.log.Error("failed to write success response", "handler", "Cancel", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) Complete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	reservation, err := h.service.Complete(r.Context(), actor, ps.ByName("id"))
	if err != nil {
		h.writeError(w, "Complete", err)
		return
	}

	if err := httputil.WriteSuccess(w, reservation); err != nil {
		h.log.Error("failed to write success response", "handler", "Complete", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), actor, ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *ReservationHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	stationID := query.Get("station_id")
	date := query.Get("date")
	classStr := query.Get("vehicle_class")

	if stationID == "" || date == "" || classStr == "" {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "'station_id', 'date' and 'vehicle_class' query parameters are required",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Search", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	reservations, err := h.service.Search(r.Context(), stationID, date, model.VehicleClass(classStr))
	if err != nil {
		h.writeError(w, "Search", err)
		return
	}

	if err := httputil.WriteSuccess(w, reservations); err != nil {
		h.log.Error("failed to write success response", "handler", "Search", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) SlotAvailability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	stationID := query.Get("station_id")
	classStr := query.Get("vehicle_class")

	if stationID == "" || classStr == "" {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Both 'station_id' and 'vehicle_class' query parameters are required",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "SlotAvailability", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	availability, err := h.service.GetSlotAvailability(r.Context(), stationID, model.VehicleClass(classStr), time.Now())
	if err != nil {
		h.writeError(w, "SlotAvailability", err)
		return
	}

	if err := httputil.WriteSuccess(w, availability); err != nil {
		h.log.Error("failed to write success response", "handler", "SlotAvailability", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) JoinWaitlist(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	var entry model.WaitlistEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "JoinWaitlist", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.JoinWaitlist(r.Context(), actor, &entry); err != nil {
		h.writeError(w, "JoinWaitlist", err)
		return
	}

	if err := httputil.WriteCreated(w, entry); err != nil {
		h.log.Error("failed to write created response", "handler", "JoinWaitlist", "operation", "WriteCreated", "error", err)
	}
}

func (h *ReservationHandler) GetWaitlist(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	date := r.URL.Query().Get("date")
	entries, err := h.service.GetWaitlist(r.Context(), actor, ps.ByName("stationId"), date)
	if err != nil {
		h.writeError(w, "GetWaitlist", err)
		return
	}

	if err := httputil.WriteSuccess(w, entries); err != nil {
		h.log.Error("failed to write success response", "handler", "GetWaitlist", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/reservations", h.Request)
	router.GET("/api/v1/reservations", h.GetAll)
	router.GET("/api/v1/reservations/id/:id", h.GetByID)
	router.POST("/api/v1/reservations/id/:id/decision", h.Respond)
	router.POST("/api/v1/reservations/id/:id/cancel", h.Cancel)
	router.POST("/api/v1/reservations/id/:id/complete", h.Complete)
	router.DELETE("/api/v1/reservations/id/:id", h.Delete)
	router.GET("/api/v1/reservations/rider/:riderId", h.GetByRider)
	router.GET("/api/v1/reservations/station/:stationId", h.GetByStation)
	router.GET("/api/v1/reservations/search", h.Search)
	router.GET("/api/v1/slots", h.SlotAvailability)
	router.POST("/api/v1/waitlist", h.JoinWaitlist)
	router.GET("/api/v1/waitlist/station/:stationId", h.GetWaitlist)
}
