package handler

import (
	"errors"
	"net/http"
	"strconv"

	"medassist/internal/delivery/dto"
	"medassist/internal/usecase"
	"medassist/pkg/response"
	"medassist/pkg/validator"

	"github.com/gorilla/mux"
)

const (
	defaultAuditPage  = 1
	defaultAuditLimit = 20
)

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

func (h *AuditLogHandler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	auditLogID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid audit log ID")
		return
	}

	auditLog, err := h.auditLogUsecase.GetAuditLog(r.Context(), auditLogID)
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

// GetAllAuditLogs accepts action, user_id, page and limit query parameters
func (h *AuditLogHandler) GetAllAuditLogs(w http.ResponseWriter, r *http.Request) {
	query, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	auditLogs, err := h.auditLogUsecase.GetAllAuditLogs(r.Context(), query)
	if err != nil {
		response.InternalServerError(w, "Failed to get audit logs")
		return
	}

	meta := response.NewMeta(query.Page, query.Limit, auditLogs.Total)
	response.SuccessWithMeta(w, http.StatusOK, "Audit logs retrieved successfully", auditLogs.Logs, meta)
}

func (h *AuditLogHandler) parseQuery(w http.ResponseWriter, r *http.Request) (*dto.AuditLogQuery, bool) {
	values := r.URL.Query()
	query := &dto.AuditLogQuery{
		Action: values.Get("action"),
		UserID: values.Get("user_id"),
		Page:   defaultAuditPage,
		Limit:  defaultAuditLimit,
	}

	var err error
	if raw := values.Get("page"); raw != "" {
		if query.Page, err = strconv.Atoi(raw); err != nil {
			response.BadRequest(w, "Invalid page")
			return nil, false
		}
	}
	if raw := values.Get("limit"); raw != "" {
		if query.Limit, err = strconv.Atoi(raw); err != nil {
			response.BadRequest(w, "Invalid limit")
			return nil, false
		}
	}

	if err := h.validator.Validate(query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return nil, false
	}

	return query, true
}
