// Package http provides http transport for the API client
package http

import (
	stdhttp "net/http"

	"deploytrack/internal/modkit/httpkit"
	"deploytrack/internal/services/api/apiclient/domain"
	svc "deploytrack/internal/services/api/apiclient/service"
)

// Register mounts the router. /execute is registered before /{uid}
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/", h.list)
	httpkit.PostJSON[domain.SaveInput](r, "/", h.create)
	httpkit.PostJSON[domain.RequestSpec](r, "/execute", h.execute)
	httpkit.Get(r, "/{uid}", h.get)
	httpkit.PutJSON[domain.SaveInput](r, "/{uid}", h.update)
	httpkit.Delete(r, "/{uid}", h.delete)
	httpkit.Post(r, "/{uid}/execute", h.executeSaved)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /requests APIClient list
// @Summary List saved requests
// @Tags api-client
// @Produce json
// @Param search query string false "Match on name, url and description"
// @Param method query string false "Exact HTTP method" example(GET)
// @Success 200 {array} domain.SavedRequest "requests"
// @Router /requests [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	q := r.URL.Query()
	return h.svc.List(r.Context(), domain.ListQuery{Search: q.Get("search"), Method: q.Get("method")})
}

// swagger:route POST /requests APIClient create
// @Summary Save a request
// @Tags api-client
// @Accept json
// @Produce json
// @Param payload body domain.SaveInput true "Request"
// @Success 201 {object} domain.SavedRequest "saved"
// @Failure 422 {object} httpkit.Envelope "invalid request"
// @Router /requests [post]
func (h *handlers) create(r *stdhttp.Request, in domain.SaveInput) (any, error) {
	out, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(out), nil
}

// swagger:route POST /requests/execute APIClient execute
// @Summary Send an unsaved request
// @Tags api-client
// @Accept json
// @Produce json
// @Param payload body domain.RequestSpec true "Request"
// @Success 200 {object} domain.ResponseView "response"
// @Failure 502 {object} httpkit.Envelope "connection error"
// @Failure 504 {object} httpkit.Envelope "timed out"
// @Router /requests/execute [post]
func (h *handlers) execute(r *stdhttp.Request, in domain.RequestSpec) (any, error) {
	return h.svc.Execute(r.Context(), in)
}

// swagger:route GET /requests/{uid} APIClient get
// @Summary Get a saved request
// @Tags api-client
// @Produce json
// @Param uid path string true "Request uid"
// @Success 200 {object} domain.SavedRequest "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /requests/{uid} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.Get(r.Context(), httpkit.Param(r, "uid"))
}

// swagger:route PUT /requests/{uid} APIClient update
// @Summary Replace a saved request
// @Tags api-client
// @Accept json
// @Produce json
// @Param uid path string true "Request uid"
// @Param payload body domain.SaveInput true "Request"
// @Success 200 {object} domain.SavedRequest "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /requests/{uid} [put]
func (h *handlers) update(r *stdhttp.Request, in domain.SaveInput) (any, error) {
	return h.svc.Update(r.Context(), httpkit.Param(r, "uid"), in)
}

// swagger:route DELETE /requests/{uid} APIClient delete
// @Summary Delete a saved request
// @Tags api-client
// @Param uid path string true "Request uid"
// @Success 204 "deleted"
// @Router /requests/{uid} [delete]
func (h *handlers) delete(r *stdhttp.Request) (any, error) {
	if err := h.svc.Delete(r.Context(), httpkit.Param(r, "uid")); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}

// swagger:route POST /requests/{uid}/execute APIClient executeSaved
// @Summary Send a saved request and store its status
// @Tags api-client
// @Produce json
// @Param uid path string true "Request uid"
// @Success 200 {object} domain.ResponseView "response"
// @Router /requests/{uid}/execute [post]
func (h *handlers) executeSaved(r *stdhttp.Request) (any, error) {
	return h.svc.ExecuteSaved(r.Context(), httpkit.Param(r, "uid"))
}
