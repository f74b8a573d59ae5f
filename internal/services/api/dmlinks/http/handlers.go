// Package http provides http transport for dmlinks
package http

import (
	"errors"
	"io"
	stdhttp "net/http"

	"deploytrack/internal/modkit/httpkit"
	perr "deploytrack/internal/platform/errors"
	svc "deploytrack/internal/services/api/dmlinks/service"
)

// MaxDocument caps the size of a posted JSON document
const MaxDocument = 10 << 20

// Register mounts the router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Post(r, "/", h.find)
	httpkit.Get(r, "/mapping", h.mapping)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /dm-links DMLinks find
// @Summary Find Data Manager links in a JSON document
// @Description Collects every form_data_id at any depth and resolves it through the mapping file
// @Tags dm-links
// @Accept json
// @Produce json
// @Param payload body object true "Any JSON document"
// @Success 200 {object} formdata.Resolution "resolved and unresolved ids"
// @Failure 400 {object} httpkit.Envelope "invalid JSON"
// @Router /dm-links [post]
func (h *handlers) find(r *stdhttp.Request) (any, error) {
	raw, err := io.ReadAll(stdhttp.MaxBytesReader(nil, r.Body, MaxDocument))
	if err != nil {
		var tooBig *stdhttp.MaxBytesError
		if errors.As(err, &tooBig) {
			return nil, perr.Newf(perr.ErrorCodeValidation, "document exceeds %d bytes", tooBig.Limit)
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "read body: %v", err)
	}
	return h.svc.Find(r.Context(), raw)
}

// swagger:route GET /dm-links/mapping DMLinks mapping
// @Summary Describe the loaded id to group mapping
// @Tags dm-links
// @Produce json
// @Success 200 {object} domain.MappingInfo "mapping"
// @Router /dm-links/mapping [get]
func (h *handlers) mapping(r *stdhttp.Request) (any, error) {
	return h.svc.Mapping(r.Context()), nil
}
