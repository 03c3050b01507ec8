package handlers

import (
	"github.com/gin-gonic/gin"

	"jobdesk/internal/domain/organization"
	"jobdesk/internal/domain/params"
	"jobdesk/internal/infrastructure/http/v1/dto"
)

// OrganizationHandler handles HTTP requests for organizations.
type OrganizationHandler struct {
	base    *BaseHandler
	service *organization.Service
}

// NewOrganizationHandler creates a new OrganizationHandler.
func NewOrganizationHandler(base *BaseHandler, service *organization.Service) *OrganizationHandler {
	return &OrganizationHandler{base: base, service: service}
}

// List handles GET /organizations.
// Supports whitelisted filters, ?sort= and ?per_page=/?page=.
func (h *OrganizationHandler) List(c *gin.Context) {
	raw := make(map[string]string)
	for _, field := range organization.FilterableFields() {
		if v := c.Query(field); v != "" {
			raw[field] = v
		}
	}

	perPage, page := params.SanitizePagination(c.Query("per_page"), c.Query("page"))

	listParams := organization.ListParams{
		Filters: params.SanitizeFilters(raw, organization.FilterableFields()),
		Sort:    params.SanitizeSort(c.Query("sort"), organization.SortableFields()),
		Limit:   perPage,
		Offset:  params.Offset(perPage, page),
	}

	result, err := h.service.List(c.Request.Context(), listParams)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	items := make([]dto.OrganizationResponse, 0, len(result.Items))
	for _, org := range result.Items {
		items = append(items, dto.FromOrganization(org))
	}

	total := int(result.TotalCount)
	c.Header("Content-Range", dto.ContentRange("organizations", result.Offset, len(items), total))
	h.base.OK(c, dto.ListOrganizationsResponse{
		Organizations: items,
		Pagination:    dto.NewPageMeta(perPage, page, total),
	})
}

// Get handles GET /organizations/:id.
func (h *OrganizationHandler) Get(c *gin.Context) {
	orgID, ok := h.base.ParseID(c, "id")
	if !ok {
		return
	}

	org, err := h.service.GetByID(c.Request.Context(), orgID)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, dto.FromOrganization(org))
}

// Create handles POST /organizations.
func (h *OrganizationHandler) Create(c *gin.Context) {
	var req dto.SaveOrganizationRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	org, err := req.ToEntity()
	if err != nil {
		h.base.Error(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), org)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.Created(c, dto.FromOrganization(created))
}

// Update handles PUT /organizations/:id.
func (h *OrganizationHandler) Update(c *gin.Context) {
	orgID, ok := h.base.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.SaveOrganizationRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	org, err := req.ToEntity()
	if err != nil {
		h.base.Error(c, err)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), orgID, org)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, dto.FromOrganization(updated))
}

// Delete handles DELETE /organizations/:id. Deleting an id that no longer
// exists still returns 204.
func (h *OrganizationHandler) Delete(c *gin.Context) {
	orgID, ok := h.base.ParseID(c, "id")
	if !ok {
		return
	}

	if _, err := h.service.Delete(c.Request.Context(), orgID); err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.NoContent(c)
}
