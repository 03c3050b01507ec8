package handlers

import (
	"github.com/gin-gonic/gin"

	"jobdesk/internal/domain/jobposting"
	"jobdesk/internal/domain/params"
	"jobdesk/internal/infrastructure/http/v1/dto"
)

// JobPostingHandler handles HTTP requests for job postings.
type JobPostingHandler struct {
	base    *BaseHandler
	service *jobposting.Service
}

// NewJobPostingHandler creates a new JobPostingHandler.
func NewJobPostingHandler(base *BaseHandler, service *jobposting.Service) *JobPostingHandler {
	return &JobPostingHandler{base: base, service: service}
}

// List handles GET /job-postings.
func (h *JobPostingHandler) List(c *gin.Context) {
	raw := make(map[string]string)
	for _, field := range jobposting.FilterableFields() {
		if v := c.Query(field); v != "" {
			raw[field] = v
		}
	}

	perPage, page := params.SanitizePagination(c.Query("per_page"), c.Query("page"))

	listParams := jobposting.ListParams{
		Filters: params.SanitizeFilters(raw, jobposting.FilterableFields()),
		Sort:    params.SanitizeSort(c.Query("sort"), jobposting.SortableFields()),
		Limit:   perPage,
		Offset:  params.Offset(perPage, page),
	}

	result, err := h.service.List(c.Request.Context(), listParams)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	items := make([]dto.JobPostingResponse, 0, len(result.Items))
	for _, posting := range result.Items {
		items = append(items, dto.FromJobPosting(posting))
	}

	total := int(result.TotalCount)
	c.Header("Content-Range", dto.ContentRange("job-postings", result.Offset, len(items), total))
	h.base.OK(c, dto.ListJobPostingsResponse{
		JobPostings: items,
		Pagination:  dto.NewPageMeta(perPage, page, total),
	})
}

// Get handles GET /job-postings/:id.
func (h *JobPostingHandler) Get(c *gin.Context) {
	postingID, ok := h.base.ParseID(c, "id")
	if !ok {
		return
	}

	posting, err := h.service.GetByID(c.Request.Context(), postingID)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, dto.FromJobPosting(posting))
}

// Create handles POST /job-postings.
func (h *JobPostingHandler) Create(c *gin.Context) {
	var req dto.SaveJobPostingRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	posting, err := req.ToEntity()
	if err != nil {
		h.base.Error(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), posting)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.Created(c, dto.FromJobPosting(created))
}

// Update handles PUT /job-postings/:id.
func (h *JobPostingHandler) Update(c *gin.Context) {
	postingID, ok := h.base.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.SaveJobPostingRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	posting, err := req.ToEntity()
	if err != nil {
		h.base.Error(c, err)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), postingID, posting)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, dto.FromJobPosting(updated))
}

// Delete handles DELETE /job-postings/:id.
func (h *JobPostingHandler) Delete(c *gin.Context) {
	postingID, ok := h.base.ParseID(c, "id")
	if !ok {
		return
	}

	if _, err := h.service.Delete(c.Request.Context(), postingID); err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.NoContent(c)
}
