// Package service implements saved requests and request execution for the API client
package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"deploytrack/internal/adapters/outbound"
	"deploytrack/internal/core/respfmt"
	"deploytrack/internal/modkit/repokit"
	perr "deploytrack/internal/platform/errors"
	ptime "deploytrack/internal/platform/time"
	actdom "deploytrack/internal/services/activity/domain"
	"deploytrack/internal/services/api/apiclient/domain"
	"deploytrack/internal/services/api/apiclient/repo"

	"github.com/google/uuid"
)

// Service defines the service contract for the API client
type Service interface{ domain.ServicePort }

// Doer sends a built request
type Doer interface {
	Do(ctx context.Context, req *http.Request) (*outbound.Result, error)
}

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	client Doer
	rec    actdom.RecorderPort
	now    func() time.Time
}

var _ Service = (*Svc)(nil)

// New creates the API client service. rec may be nil
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], client Doer, rec actdom.RecorderPort) *Svc {
	if db == nil {
		panic("apiclient.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("apiclient.Service requires a non nil Repo binder")
	}
	if client == nil {
		panic("apiclient.Service requires a non nil Doer")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, client: client, rec: rec, now: time.Now}
}

// Create stores a new request
func (s *Svc) Create(ctx context.Context, in domain.SaveInput) (domain.SavedRequest, error) {
	row, err := s.row(in)
	if err != nil {
		return domain.SavedRequest{}, err
	}
	row.UID = uuid.NewString()
	row.CreatedAt = ptime.UTC(s.now())
	row.UpdatedAt = row.CreatedAt
	if err := s.Repo.Insert(ctx, row); err != nil {
		return domain.SavedRequest{}, perr.FromDB(err, "create request")
	}
	return toDomain(row), nil
}

// Get returns one saved request
func (s *Svc) Get(ctx context.Context, uid string) (domain.SavedRequest, error) {
	row, err := s.Repo.Get(ctx, uid)
	if err != nil {
		return domain.SavedRequest{}, notFound(err, uid, "get request")
	}
	return toDomain(row), nil
}

// List returns saved requests, most recently edited first
func (s *Svc) List(ctx context.Context, q domain.ListQuery) ([]domain.SavedRequest, error) {
	method := strings.ToUpper(strings.TrimSpace(q.Method))
	rows, err := s.Repo.List(ctx, q.Search, method)
	if err != nil {
		return nil, perr.FromDB(err, "list requests")
	}
	out := make([]domain.SavedRequest, 0, len(rows))
	for _, r := range rows {
		out = append(out, toDomain(r))
	}
	return out, nil
}

// Update replaces a saved request, keeping its identity and last run
func (s *Svc) Update(ctx context.Context, uid string, in domain.SaveInput) (domain.SavedRequest, error) {
	next, err := s.row(in)
	if err != nil {
		return domain.SavedRequest{}, err
	}
	var out repo.Row
	err = repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		r := repokit.MustBind(s.binder, q)
		cur, err := r.Get(ctx, uid)
		if err != nil {
			return notFound(err, uid, "get request")
		}
		next.UID, next.CreatedAt = cur.UID, cur.CreatedAt
		next.LastStatus, next.LastRunAt = cur.LastStatus, cur.LastRunAt
		next.UpdatedAt = ptime.UTC(s.now())
		if err := r.Update(ctx, next); err != nil {
			return notFound(err, uid, "update request")
		}
		out = next
		return nil
	})
	if err != nil {
		return domain.SavedRequest{}, err
	}
	return toDomain(out), nil
}

// Delete removes a saved request
func (s *Svc) Delete(ctx context.Context, uid string) error {
	if err := s.Repo.Delete(ctx, uid); err != nil {
		return notFound(err, uid, "delete request")
	}
	return nil
}

// Execute sends an unsaved request
func (s *Svc) Execute(ctx context.Context, spec domain.RequestSpec) (domain.ResponseView, error) {
	return s.execute(ctx, "", spec)
}

// ExecuteSaved sends a saved request and stores its status and run time
func (s *Svc) ExecuteSaved(ctx context.Context, uid string) (domain.ResponseView, error) {
	row, err := s.Repo.Get(ctx, uid)
	if err != nil {
		return domain.ResponseView{}, notFound(err, uid, "get request")
	}
	view, err := s.execute(ctx, uid, row.Spec)
	if err != nil {
		return domain.ResponseView{}, err
	}
	if err := s.Repo.MarkRun(ctx, uid, view.StatusCode, ptime.UTC(s.now())); err != nil {
		return domain.ResponseView{}, notFound(err, uid, "record request run")
	}
	return view, nil
}

func (s *Svc) execute(ctx context.Context, uid string, spec domain.RequestSpec) (domain.ResponseView, error) {
	req, err := Build(ctx, spec)
	if err != nil {
		return domain.ResponseView{}, err
	}
	res, err := s.client.Do(ctx, req)
	if err != nil {
		s.record(ctx, uid, fmt.Sprintf("%s %s -> %v", req.Method, spec.URL, err))
		return domain.ResponseView{}, err
	}
	s.record(ctx, uid, fmt.Sprintf("%s %s -> %d", req.Method, spec.URL, res.StatusCode))
	return View(res), nil
}

func (s *Svc) record(ctx context.Context, uid, detail string) {
	if s.rec == nil {
		return
	}
	s.rec.Record(ctx, actdom.Event{Kind: actdom.KindRequestExecuted, Subject: uid, Detail: detail})
}

// View formats a captured response for display
func View(res *outbound.Result) domain.ResponseView {
	ct := res.Header.Get("Content-Type")
	pretty, kind := respfmt.Pretty(res.Text, ct)
	v := domain.ResponseView{
		StatusCode:  res.StatusCode,
		Status:      res.Status,
		StatusClass: res.StatusClass(),
		Headers:     make(map[string]string, len(res.Header)),
		Body:        res.Text,
		Pretty:      pretty,
		Kind:        string(kind),
		ElapsedMS:   res.ElapsedMS(),
		Size:        res.Size,
		Truncated:   res.Truncated,
	}
	for k, vv := range res.Header {
		v.Headers[k] = strings.Join(vv, ", ")
	}
	if kind == respfmt.KindHTML {
		v.Title = respfmt.Title(res.Text)
	}
	return v
}

func (s *Svc) row(in domain.SaveInput) (repo.Row, error) {
	spec := in.RequestSpec
	if err := Normalize(&spec); err != nil {
		return repo.Row{}, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return repo.Row{}, perr.WithField(perr.InvalidArgf("name must not be blank"), "name")
	}
	return repo.Row{Name: name, Description: strings.TrimSpace(in.Description), Spec: spec}, nil
}

func notFound(err error, uid, op string) error {
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return perr.NotFoundf("request %q not found", uid)
	}
	return perr.FromDB(err, op)
}

func toDomain(r repo.Row) domain.SavedRequest {
	return domain.SavedRequest{
		UID:         r.UID,
		Name:        r.Name,
		Description: r.Description,
		RequestSpec: r.Spec,
		LastStatus:  r.LastStatus,
		LastRunAt:   r.LastRunAt,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
