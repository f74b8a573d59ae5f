// Package http provides http transport for batch imports
package http

import (
	stdhttp "net/http"

	"deploytrack/internal/modkit/httpkit"
	"deploytrack/internal/services/api/imports/domain"
	svc "deploytrack/internal/services/api/imports/service"
)

// Register mounts the router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.PreviewInput](r, "/preview", h.preview)
	httpkit.PostJSON[domain.CommitInput](r, "/commit", h.commit)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /imports/preview Imports preview
// @Summary Parse pasted text into component drafts
// @Description Lines without a recognized studio URL are skipped; strict mode reports them as issues
// @Tags imports
// @Accept json
// @Produce json
// @Param payload body domain.PreviewInput true "Text"
// @Success 200 {object} domain.PreviewOutput "drafts"
// @Router /imports/preview [post]
func (h *handlers) preview(r *stdhttp.Request, in domain.PreviewInput) (any, error) {
	return h.svc.Preview(r.Context(), in)
}

// swagger:route POST /imports/commit Imports commit
// @Summary Create reviewed drafts
// @Description Each item is created on its own; one failure does not abort the rest
// @Tags imports
// @Accept json
// @Produce json
// @Param payload body domain.CommitInput true "Items"
// @Success 200 {object} domain.CommitOutput "per item results"
// @Router /imports/commit [post]
func (h *handlers) commit(r *stdhttp.Request, in domain.CommitInput) (any, error) {
	return h.svc.Commit(r.Context(), in)
}
