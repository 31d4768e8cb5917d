package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/audit"
	"github.com/mrlokans/library/internal/entities"
)

const maxAuditPageSize = 200

type AuditController struct {
	auditService *audit.Service
}

func NewAuditController(auditService *audit.Service) *AuditController {
	return &AuditController{
		auditService: auditService,
	}
}

// GetEvents returns paginated audit events.
// GET /api/audit?isbn=&limit=&offset=
//
//	@Summary	List audit events
//	@Tags		audit
//	@Produce	json
//	@Param		isbn	query		string	false	"Only events for this ISBN"
//	@Param		limit	query		int		false	"Page size"	default(50)
//	@Param		offset	query		int		false	"Events to skip"	default(0)
//	@Success	200		{object}	PaginatedResponse{data=[]entities.AuditEvent}
//	@Failure	400		{object}	ErrorResponse
//	@Failure	401		{object}	ErrorResponse
//	@Failure	503		{object}	ErrorResponse
//	@Security	ApiKey
//	@Router		/api/audit [get]
func (ac *AuditController) GetEvents(c *gin.Context) {
	limit, ok := parseIntQuery(c, "limit", 50)
	if !ok {
		return
	}
	offset, ok := parseIntQuery(c, "offset", 0)
	if !ok {
		return
	}
	if limit == 0 || limit > maxAuditPageSize {
		limit = maxAuditPageSize
	}

	events, total, err := ac.auditService.GetEvents(c.Request.Context(), c.Query("isbn"), limit, offset)
	if err != nil {
		respondStoreError(c, err, "list audit events")
		return
	}
	if events == nil {
		events = []entities.AuditEvent{}
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Data:    events,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(events)) < total,
	})
}
