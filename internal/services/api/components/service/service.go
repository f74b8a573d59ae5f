// Package service contains the component inventory workflows
package service

import (
	"context"
	"strings"
	"time"

	"deploytrack/internal/core/catalog"
	"deploytrack/internal/core/normalize"
	"deploytrack/internal/modkit/repokit"
	perr "deploytrack/internal/platform/errors"
	ptime "deploytrack/internal/platform/time"
	actdom "deploytrack/internal/services/activity/domain"
	"deploytrack/internal/services/api/components/domain"
	"deploytrack/internal/services/api/components/repo"

	"github.com/google/uuid"
)

// Service defines the service contract for components
type Service interface{ domain.ServicePort }

// Page sizes offered by the list endpoint
var PageSizes = []int{10, 50, 100, 1000}

// DefaultPageSize applies when page_size is missing or not offered
const DefaultPageSize = 50

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	rec    actdom.RecorderPort
	now    func() time.Time
}

var _ Service = (*Svc)(nil)

// New creates a new components service. rec may be nil
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], rec actdom.RecorderPort) *Svc {
	if db == nil {
		panic("components.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("components.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, rec: rec, now: time.Now}
}

// Create validates and stores a new component
func (s *Svc) Create(ctx context.Context, in domain.CreateInput) (domain.Component, error) {
	now := ptime.UTC(s.now())
	row := repo.Row{
		UID:         uuid.NewString(),
		ComponentID: in.ComponentID,
		Name:        in.Name,
		URLLink:     in.URLLink,
		ChangeType:  in.ChangeType,
		Description: in.Description,
		Category:    in.Category,
		Type:        in.Type,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := check(&row); err != nil {
		return domain.Component{}, err
	}
	if err := s.Repo.Insert(ctx, row); err != nil {
		return domain.Component{}, perr.FromDB(err, "create component")
	}
	s.record(ctx, actdom.KindComponentCreated, row)
	return toDomain(row), nil
}

// Get returns one component by uid
func (s *Svc) Get(ctx context.Context, uid string) (domain.Component, error) {
	row, err := s.Repo.Get(ctx, uid)
	if err != nil {
		return domain.Component{}, notFound(err, uid, "get component")
	}
	return toDomain(row), nil
}

// List filters and pages the inventory, newest first
func (s *Svc) List(ctx context.Context, q domain.ListQuery) (domain.ListResult, error) {
	f := repo.Filter{Type: strings.TrimSpace(q.Type), Search: q.Search}
	if c := strings.TrimSpace(q.Category); c != "" {
		cat, err := catalog.ParseCategory(c)
		if err != nil {
			return domain.ListResult{}, perr.WithField(perr.InvalidArgf("%v", err), "category")
		}
		f.Category = string(cat)
	}
	if c := strings.TrimSpace(q.ChangeType); c != "" {
		ct, err := catalog.ParseChangeType(c)
		if err != nil {
			return domain.ListResult{}, perr.WithField(perr.InvalidArgf("%v", err), "change_type")
		}
		f.ChangeType = string(ct)
	}

	pg := repokit.Paging{Page: q.Page, Size: q.PageSize}.Clamp(DefaultPageSize, PageSizes...)
	rows, total, err := s.Repo.List(ctx, f, pg.Size, pg.Offset())
	if err != nil {
		return domain.ListResult{}, perr.FromDB(err, "list components")
	}
	out := make([]domain.Component, 0, len(rows))
	for _, r := range rows {
		out = append(out, toDomain(r))
	}
	return domain.ListResult{Items: out, Total: total, Page: pg.Page, PageSize: pg.Size}, nil
}

// Update applies the non-nil fields of in and bumps updated_at
func (s *Svc) Update(ctx context.Context, uid string, in domain.UpdateInput) (domain.Component, error) {
	var out repo.Row
	err := repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		r := repokit.MustBind(s.binder, q)
		row, err := r.Get(ctx, uid)
		if err != nil {
			return notFound(err, uid, "get component")
		}
		apply(&row, in)
		if err := check(&row); err != nil {
			return err
		}
		row.UpdatedAt = ptime.UTC(s.now())
		if err := r.Update(ctx, row); err != nil {
			return notFound(err, uid, "update component")
		}
		out = row
		return nil
	})
	if err != nil {
		return domain.Component{}, err
	}
	s.record(ctx, actdom.KindComponentUpdated, out)
	return toDomain(out), nil
}

// Delete removes a component, 404 when it does not exist
func (s *Svc) Delete(ctx context.Context, uid string) error {
	row, err := s.Repo.Get(ctx, uid)
	if err != nil {
		return notFound(err, uid, "get component")
	}
	if err := s.Repo.Delete(ctx, uid); err != nil {
		return notFound(err, uid, "delete component")
	}
	s.record(ctx, actdom.KindComponentDeleted, row)
	return nil
}

// Types lists the distinct types stored under a category
func (s *Svc) Types(ctx context.Context, category string) (domain.CategoryTypes, error) {
	cat, err := catalog.ParseCategory(category)
	if err != nil {
		return domain.CategoryTypes{}, perr.WithField(perr.InvalidArgf("%v", err), "category")
	}
	types, err := s.Repo.DistinctTypes(ctx, string(cat))
	if err != nil {
		return domain.CategoryTypes{}, perr.FromDB(err, "list component types")
	}
	return domain.CategoryTypes{Category: string(cat), Types: types}, nil
}

func (s *Svc) record(ctx context.Context, kind actdom.Kind, r repo.Row) {
	if s.rec == nil {
		return
	}
	s.rec.Record(ctx, actdom.Event{Kind: kind, Subject: r.UID, Detail: r.ComponentID + " " + r.Name})
}

// check trims the row and enforces the catalog: category and change type are
// canonicalized and type must belong to the category
func check(r *repo.Row) error {
	r.ComponentID = normalize.Line(r.ComponentID)
	r.Name = normalize.Text(r.Name)
	r.URLLink = strings.TrimSpace(r.URLLink)
	r.Type = strings.TrimSpace(r.Type)
	r.Description = normalize.Text(r.Description)

	for _, f := range []struct{ name, v string }{
		{"component_id", r.ComponentID},
		{"name", r.Name},
		{"url_link", r.URLLink},
	} {
		if f.v == "" {
			return perr.WithField(perr.InvalidArgf("%s must not be blank", f.name), f.name)
		}
	}
	cat, err := catalog.ParseCategory(r.Category)
	if err != nil {
		return perr.WithField(perr.InvalidArgf("%v", err), "category")
	}
	if !catalog.ValidType(cat, r.Type) {
		return perr.WithField(perr.InvalidArgf("type %q is not allowed for %s (allowed: %s)",
			r.Type, cat, strings.Join(cat.Types(), ", ")), "type")
	}
	ct, err := catalog.ParseChangeType(r.ChangeType)
	if err != nil {
		return perr.WithField(perr.InvalidArgf("%v", err), "change_type")
	}
	r.Category, r.ChangeType = string(cat), string(ct)
	return nil
}

func apply(r *repo.Row, in domain.UpdateInput) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&r.ComponentID, in.ComponentID)
	set(&r.Name, in.Name)
	set(&r.URLLink, in.URLLink)
	set(&r.Category, in.Category)
	set(&r.Type, in.Type)
	set(&r.ChangeType, in.ChangeType)
	set(&r.Description, in.Description)
}

func notFound(err error, uid, op string) error {
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return perr.NotFoundf("component %q not found", uid)
	}
	return perr.FromDB(err, op)
}

func toDomain(r repo.Row) domain.Component {
	return domain.Component{
		UID:         r.UID,
		ComponentID: r.ComponentID,
		Name:        r.Name,
		URLLink:     r.URLLink,
		ChangeType:  r.ChangeType,
		Description: r.Description,
		Category:    r.Category,
		Type:        r.Type,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
