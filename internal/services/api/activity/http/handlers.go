// Package http exposes the activity log
package http

import (
	stdhttp "net/http"

	"deploytrack/internal/modkit/httpkit"
	actdom "deploytrack/internal/services/activity/domain"
	actsvc "deploytrack/internal/services/activity/service"
)

// Register mounts the router
func Register(r httpkit.Router, reader actdom.ReaderPort) {
	h := &handlers{reader: reader}
	httpkit.Get(r, "/", h.recent)
}

type handlers struct{ reader actdom.ReaderPort }

// swagger:route GET /activity Activity recent
// @Summary Newest activity events
// @Tags activity
// @Produce json
// @Param limit query int false "1 to 500" default(50)
// @Success 200 {array} actdom.Event "events"
// @Failure 503 {object} httpkit.Envelope "activity log disabled"
// @Router /activity [get]
func (h *handlers) recent(r *stdhttp.Request) (any, error) {
	return h.reader.Recent(r.Context(), httpkit.QueryInt(r, "limit", actsvc.DefaultLimit))
}
