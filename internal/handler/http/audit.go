package http

import (
	"net/http"

	"github.com/hrsuite/hr-backend-go/internal/domain/audit"
	"github.com/hrsuite/hr-backend-go/internal/handler/http/response"
)

type AuditHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type AuditHandlerImpl struct {
	auditService audit.Service
}

func NewAuditHandler(auditService audit.Service) AuditHandler {
	return &AuditHandlerImpl{auditService: auditService}
}

// List implements AuditHandler. Admin RH only.
func (h *AuditHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r, 50)

	filter := audit.Filter{
		UserID:     queryString(r, "userId"),
		EntityType: queryString(r, "entityType"),
		EntityID:   queryString(r, "entityId"),
		Action:     queryString(r, "action"),
		DateStart:  queryString(r, "dateStart"),
		DateEnd:    queryString(r, "dateEnd"),
		Page:       page,
		Limit:      limit,
	}

	logs, total, err := h.auditService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithPagination(w, logs, response.NewPagination(page, limit, total))
}
