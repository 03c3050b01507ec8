package handlers

import (
	"github.com/gin-gonic/gin"

	"jobdesk/internal/domain/params"
	"jobdesk/internal/infrastructure/storage/postgres"
)

// AuditHandler exposes the audit trail of an entity.
type AuditHandler struct {
	base     *BaseHandler
	recorder *postgres.AuditRecorder
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(base *BaseHandler, recorder *postgres.AuditRecorder) *AuditHandler {
	return &AuditHandler{base: base, recorder: recorder}
}

// Entries handles GET /audit/:entityType/:id, newest entries first.
func (h *AuditHandler) Entries(c *gin.Context) {
	entityID, ok := h.base.ParseID(c, "id")
	if !ok {
		return
	}

	perPage, _ := params.SanitizePagination(c.Query("per_page"), c.Query("page"))

	entries, err := h.recorder.Entries(c.Request.Context(), c.Param("entityType"), entityID, perPage)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, gin.H{"entries": entries})
}
