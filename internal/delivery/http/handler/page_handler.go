package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/delivery/http/middleware"
	"clinic-portal/internal/infrastructure/apiclient"
	"clinic-portal/internal/ui"
	"clinic-portal/internal/viewmodel"
	"clinic-portal/pkg/jwt"
	"clinic-portal/pkg/response"
	"clinic-portal/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// maxPayload bounds action bodies.
const maxPayload = 1 << 20

type alerter interface {
	AlertText() string
}

// PageHandler exposes mounted view-models. Every reply carries the whole
// page view so the browser only renders.
type PageHandler struct {
	registry  *viewmodel.Registry
	validator *validator.CustomValidator
	log       *logrus.Logger
}

func NewPageHandler(registry *viewmodel.Registry, validator *validator.CustomValidator, log *logrus.Logger) *PageHandler {
	return &PageHandler{
		registry:  registry,
		validator: validator,
		log:       log,
	}
}

func session(r *http.Request) viewmodel.Session {
	var s viewmodel.Session
	s.UserID, _ = jwt.UserIDFromContext(r.Context())
	s.Role, _ = middleware.RoleFromContext(r.Context())
	return s
}

// Mount handles POST /ui/pages/{kind}.
func (h *PageHandler) Mount(w http.ResponseWriter, r *http.Request) {
	kind := viewmodel.Kind(mux.Vars(r)["kind"])

	var req dto.MountRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(io.LimitReader(r.Body, maxPayload)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			response.BadRequest(w, "Invalid request body")
			return
		}
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	s := session(r)
	s.AppointmentID = req.AppointmentID

	id, view, err := h.registry.Mount(r.Context(), kind, s)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusCreated, alertOf(view), dto.MountResponse{
		PageID: id,
		Kind:   string(kind),
		View:   view,
	})
}

// Get handles GET /ui/pages/{id}.
func (h *PageHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.registry.View(mux.Vars(r)["id"], session(r).UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.View(w, alertOf(view), view)
}

// Dispatch handles POST /ui/pages/{id}/actions/{action}. The body is
// handed to the page untouched.
func (h *PageHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	body, err := io.ReadAll(io.LimitReader(r.Body, maxPayload))
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if len(body) == 0 {
		body = []byte("{}")
	}

	view, err := h.registry.Dispatch(r.Context(), vars["id"], session(r).UserID, vars["action"], json.RawMessage(body))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.View(w, alertOf(view), view)
}

// Event handles POST /ui/pages/{id}/events.
func (h *PageHandler) Event(w http.ResponseWriter, r *http.Request) {
	var req dto.EventRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxPayload)).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	event := ui.Event{Type: req.Type, Path: req.Path}
	if err := h.validator.Validate(&event); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	view, err := h.registry.Event(mux.Vars(r)["id"], session(r).UserID, event)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.View(w, alertOf(view), view)
}

// Unmount handles DELETE /ui/pages/{id}.
func (h *PageHandler) Unmount(w http.ResponseWriter, r *http.Request) {
	if err := h.registry.Unmount(mux.Vars(r)["id"], session(r).UserID); err != nil {
		h.fail(w, r, err)
		return
	}
	response.Success(w, http.StatusOK, "Page unmounted", nil)
}

func (h *PageHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var payloadErr *viewmodel.PayloadError
	switch {
	case errors.As(err, &payloadErr):
		if len(payloadErr.Fields) > 0 {
			response.ValidationError(w, payloadErr.Fields)
			return
		}
		response.BadRequest(w, "Invalid action payload")
	case errors.Is(err, viewmodel.ErrPageNotFound):
		response.NotFound(w, "Page not found")
	case errors.Is(err, viewmodel.ErrUnknownKind):
		response.NotFound(w, "Unknown page kind")
	case errors.Is(err, viewmodel.ErrUnauthorized):
		response.Unauthorized(w, "Sign in to open this page")
	case errors.Is(err, viewmodel.ErrForbidden):
		response.Forbidden(w, "You don't have permission to open this page")
	case errors.Is(err, viewmodel.ErrUnknownAction),
		errors.Is(err, viewmodel.ErrUnknownSlot),
		errors.Is(err, viewmodel.ErrUnknownElement),
		errors.Is(err, viewmodel.ErrNothingChosen),
		errors.Is(err, viewmodel.ErrNoAppointment):
		response.BadRequest(w, err.Error())
	case apiclient.IsAPIError(err):
		h.log.WithField("request_id", requestID(r)).Warnf("Upstream rejected page call: %+v", err)
		response.BadGateway(w, "Clinic API request failed")
	default:
		h.log.WithField("request_id", requestID(r)).Errorf("Failed to serve page: %+v", err)
		response.InternalServerError(w, "Failed to serve page")
	}
}

func requestID(r *http.Request) string {
	id, _ := apiclient.RequestIDFromContext(r.Context())
	return id
}

func alertOf(view interface{}) string {
	if a, ok := view.(alerter); ok {
		return a.AlertText()
	}
	return ""
}
