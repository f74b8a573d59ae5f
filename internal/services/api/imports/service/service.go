// Package service implements batch import preview and commit
package service

import (
	"context"
	"fmt"

	"deploytrack/internal/core/batchimport"
	perr "deploytrack/internal/platform/errors"
	"deploytrack/internal/platform/logger"
	actdom "deploytrack/internal/services/activity/domain"
	cdom "deploytrack/internal/services/api/components/domain"
	"deploytrack/internal/services/api/imports/domain"
)

// Service defines the service contract for imports
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	creator cdom.CreatorPort
	rec     actdom.RecorderPort
}

var _ Service = (*Svc)(nil)

// New creates the import service on top of the components creator. rec may be nil
func New(creator cdom.CreatorPort, rec actdom.RecorderPort) *Svc {
	if creator == nil {
		panic("imports.Service requires a non nil components CreatorPort")
	}
	return &Svc{creator: creator, rec: rec}
}

// Preview parses the text without writing anything
func (s *Svc) Preview(_ context.Context, in domain.PreviewInput) (domain.PreviewOutput, error) {
	out := domain.PreviewOutput{Components: []batchimport.Component{}}
	for c := range batchimport.Parse(in.Text) {
		out.Components = append(out.Components, c)
	}
	out.Total = len(out.Components)
	if in.Strict {
		out.Issues = batchimport.Validate(in.Text)
		if out.Issues == nil {
			out.Issues = []batchimport.Issue{}
		}
	}
	return out, nil
}

// Commit creates every item independently; failures are reported per item
func (s *Svc) Commit(ctx context.Context, in domain.CommitInput) (domain.CommitOutput, error) {
	out := domain.CommitOutput{Total: len(in.Items), Results: make([]domain.CommitResult, 0, len(in.Items))}
	for i, it := range in.Items {
		if err := ctx.Err(); err != nil {
			return out, perr.Wrapf(err, perr.ErrorCodeTimeout, "import stopped after %d of %d items", i, len(in.Items))
		}
		res := domain.CommitResult{Index: i}
		c, err := s.creator.Create(ctx, cdom.CreateInput{
			ComponentID: it.ComponentID,
			Name:        it.Name,
			URLLink:     it.URLLink,
			Category:    it.Category,
			Type:        it.Type,
			ChangeType:  it.ChangeType,
			Description: it.Description,
		})
		if err != nil {
			res.Error = perr.WireFrom(err).Message
			out.Failed++
			logger.C(ctx).Debug().Err(err).Int("index", i).Msg("import item rejected")
		} else {
			res.UID = c.UID
			out.Created++
		}
		out.Results = append(out.Results, res)
	}
	if s.rec != nil && out.Created > 0 {
		s.rec.Record(ctx, actdom.Event{
			Kind:   actdom.KindComponentImported,
			Detail: fmt.Sprintf("%d created, %d failed", out.Created, out.Failed),
		})
	}
	return out, nil
}
