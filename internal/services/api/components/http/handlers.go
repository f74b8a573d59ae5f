// Package http provides http transport for the component inventory
package http

import (
	stdhttp "net/http"

	"deploytrack/internal/core/catalog"
	"deploytrack/internal/modkit/httpkit"
	"deploytrack/internal/services/api/components/domain"
	svc "deploytrack/internal/services/api/components/service"
)

// Register mounts the router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/", h.list)
	httpkit.PostJSON[domain.CreateInput](r, "/", h.create)
	httpkit.Get(r, "/catalog", h.listing)
	httpkit.Get(r, "/categories/{category}/types", h.types)
	httpkit.Get(r, "/{uid}", h.get)
	httpkit.PatchJSON[domain.UpdateInput](r, "/{uid}", h.update)
	httpkit.Delete(r, "/{uid}", h.delete)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /components Components list
// @Summary List components
// @Description Filtered, paged inventory, newest first
// @Tags components
// @Produce json
// @Param category query string false "Category name or short code" example(VP)
// @Param type query string false "Exact type"
// @Param change_type query string false "New or Updated"
// @Param search query string false "Case-insensitive match on name, description and component_id"
// @Param page query int false "Page, from 1" default(1)
// @Param page_size query int false "One of 10, 50, 100, 1000" default(50)
// @Success 200 {object} httpkit.Envelope "items and page"
// @Failure 422 {object} httpkit.Envelope "bad filter"
// @Router /components [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	q := r.URL.Query()
	res, err := h.svc.List(r.Context(), domain.ListQuery{
		Category:   q.Get("category"),
		Type:       q.Get("type"),
		ChangeType: q.Get("change_type"),
		Search:     q.Get("search"),
		Page:       httpkit.QueryInt(r, "page", 1),
		PageSize:   httpkit.QueryInt(r, "page_size", svc.DefaultPageSize),
	})
	if err != nil {
		return nil, err
	}
	return httpkit.List(res.Items, res.Total, res.Page, res.PageSize), nil
}

// swagger:route POST /components Components create
// @Summary Create a component
// @Tags components
// @Accept json
// @Produce json
// @Param payload body domain.CreateInput true "Component"
// @Success 201 {object} domain.Component "created"
// @Failure 400 {object} httpkit.Envelope "invalid body"
// @Failure 422 {object} httpkit.Envelope "type not allowed for category"
// @Router /components [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	c, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(c), nil
}

// swagger:route GET /components/catalog Components catalog
// @Summary Categories and their allowed types
// @Tags components
// @Produce json
// @Success 200 {array} catalog.Entry "catalog"
// @Router /components/catalog [get]
func (h *handlers) listing(*stdhttp.Request) (any, error) {
	return catalog.Listing(), nil
}

// swagger:route GET /components/categories/{category}/types Components types
// @Summary Distinct stored types of a category
// @Tags components
// @Produce json
// @Param category path string true "Category name or short code" example(DM)
// @Success 200 {object} domain.CategoryTypes "types"
// @Router /components/categories/{category}/types [get]
func (h *handlers) types(r *stdhttp.Request) (any, error) {
	return h.svc.Types(r.Context(), httpkit.Param(r, "category"))
}

// swagger:route GET /components/{uid} Components get
// @Summary Get a component
// @Tags components
// @Produce json
// @Param uid path string true "Component uid"
// @Success 200 {object} domain.Component "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /components/{uid} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.Get(r.Context(), httpkit.Param(r, "uid"))
}

// swagger:route PATCH /components/{uid} Components update
// @Summary Partially update a component
// @Tags components
// @Accept json
// @Produce json
// @Param uid path string true "Component uid"
// @Param payload body domain.UpdateInput true "Fields to change"
// @Success 200 {object} domain.Component "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /components/{uid} [patch]
func (h *handlers) update(r *stdhttp.Request, in domain.UpdateInput) (any, error) {
	return h.svc.Update(r.Context(), httpkit.Param(r, "uid"), in)
}

// swagger:route DELETE /components/{uid} Components delete
// @Summary Delete a component
// @Tags components
// @Param uid path string true "Component uid"
// @Success 204 "deleted"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /components/{uid} [delete]
func (h *handlers) delete(r *stdhttp.Request) (any, error) {
	if err := h.svc.Delete(r.Context(), httpkit.Param(r, "uid")); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}
