package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/usecase"
	"clinic-portal/pkg/response"
	"clinic-portal/pkg/validator"

	"github.com/gorilla/mux"
)

const defaultAuditPerPage = 50

// AuditLogHandler lists the staff mutations recorded by this process.
type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
	validator       *validator.CustomValidator
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase, validator *validator.CustomValidator) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
		validator:       validator,
	}
}

// GetAuditLog handles GET /ui/audit-logs/{id}.
func (h *AuditLogHandler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, "Invalid audit log ID")
		return
	}

	auditLog, err := h.auditLogUsecase.GetAuditLog(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrAuditLogNotFound) {
			response.NotFound(w, "Audit log not found")
			return
		}
		response.InternalServerError(w, "Failed to get audit log")
		return
	}

	response.Success(w, http.StatusOK, "Audit log retrieved successfully", auditLog)
}

// SearchAuditLogs handles GET /ui/audit-logs?user_id=&entity=&action=&page=&per_page=.
func (h *AuditLogHandler) SearchAuditLogs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := dto.AuditLogQuery{
		Entity: query.Get("entity"),
		Action: query.Get("action"),
	}

	var ok bool
	if req.UserID, ok = intParam(query, "user_id", 0); !ok {
		response.BadRequest(w, "Invalid user_id")
		return
	}
	if req.Page, ok = intParam(query, "page", 1); !ok {
		response.BadRequest(w, "Invalid page")
		return
	}
	if req.PerPage, ok = intParam(query, "per_page", defaultAuditPerPage); !ok {
		response.BadRequest(w, "Invalid per_page")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	logs, err := h.auditLogUsecase.SearchAuditLogs(r.Context(), req)
	if err != nil {
		response.InternalServerError(w, "Failed to get audit logs")
		return
	}

	response.Success(w, http.StatusOK, "Audit logs retrieved successfully", logs)
}

func intParam(query url.Values, key string, fallback int) (int, bool) {
	raw := query.Get(key)
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	return n, err == nil
}
