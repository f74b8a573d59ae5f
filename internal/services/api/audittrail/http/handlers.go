// Package http provides http transport for audit trail queries
package http

import (
	stdhttp "net/http"

	"deploytrack/internal/modkit/httpkit"
	"deploytrack/internal/services/api/audittrail/domain"
	svc "deploytrack/internal/services/api/audittrail/service"
)

// Register mounts the router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.QueryInput](r, "/query", h.query)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /audit-trail/query AuditTrail query
// @Summary Query a remote audit trail
// @Description Upstream non 2xx answers are returned as results with their status code
// @Tags audit-trail
// @Accept json
// @Produce json
// @Param payload body domain.QueryInput true "Query"
// @Success 200 {object} domain.QueryOutput "upstream answer"
// @Failure 422 {object} httpkit.Envelope "invalid query"
// @Failure 502 {object} httpkit.Envelope "connection error"
// @Failure 504 {object} httpkit.Envelope "timed out"
// @Router /audit-trail/query [post]
func (h *handlers) query(r *stdhttp.Request, in domain.QueryInput) (any, error) {
	return h.svc.Query(r.Context(), in)
}
