package service

import (
	"context"
	"errors"
	"testing"

	"deploytrack/internal/core/batchimport"
	"deploytrack/internal/core/catalog"
	perr "deploytrack/internal/platform/errors"
	actdom "deploytrack/internal/services/activity/domain"
	cdom "deploytrack/internal/services/api/components/domain"
	"deploytrack/internal/services/api/imports/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCreator struct {
	seen []cdom.CreateInput
}

func (f *fakeCreator) Create(_ context.Context, in cdom.CreateInput) (cdom.Component, error) {
	f.seen = append(f.seen, in)
	if in.Type == "bogus" {
		return cdom.Component{}, perr.InvalidArgf("type %q is not allowed", in.Type)
	}
	if in.Name == "db down" {
		return cdom.Component{}, errors.New("disk I/O error")
	}
	return cdom.Component{UID: "uid-" + in.ComponentID}, nil
}

type fakeRecorder struct{ evs []actdom.Event }

func (f *fakeRecorder) Record(_ context.Context, e actdom.Event) { f.evs = append(f.evs, e) }

const pasted = `Login Flow https://studio.example.com/#/visual-programming/abc123
just a note
Orders https://studio.example.com/#/form-data/table/G1/C2
Docs https://example.com/wiki`

func TestPreview(t *testing.T) {
	t.Parallel()

	s := New(&fakeCreator{}, nil)
	out, err := s.Preview(context.Background(), domain.PreviewInput{Text: pasted})
	require.NoError(t, err)

	want := []batchimport.Component{
		{Line: 1, Name: "Login Flow", ComponentID: "abc123", URLLink: "https://studio.example.com/#/visual-programming/abc123",
			Category: catalog.VisualProgramming, Type: "API", ChangeType: catalog.ChangeNew},
		{Line: 3, Name: "Orders", ComponentID: "C2", URLLink: "https://studio.example.com/#/form-data/table/G1/C2",
			Category: catalog.DataManager, Type: "Schema", ChangeType: catalog.ChangeNew, Description: "Group ID: G1"},
	}
	if diff := cmp.Diff(want, out.Components); diff != "" {
		t.Fatalf("components (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, out.Total)
	assert.Nil(t, out.Issues)

	out, err = s.Preview(context.Background(), domain.PreviewInput{Text: pasted, Strict: true})
	require.NoError(t, err)
	require.Len(t, out.Issues, 2)
	assert.Equal(t, 2, out.Issues[0].Line)
	assert.Equal(t, batchimport.IssueNoURL, out.Issues[0].Code)
	assert.Equal(t, batchimport.IssueUnrecognizedURL, out.Issues[1].Code)

	out, err = s.Preview(context.Background(), domain.PreviewInput{Text: ""})
	require.NoError(t, err)
	assert.NotNil(t, out.Components)
	assert.Zero(t, out.Total)
}

func TestCommit_ItemsFailIndependently(t *testing.T) {
	t.Parallel()

	fc, rec := &fakeCreator{}, &fakeRecorder{}
	s := New(fc, rec)
	out, err := s.Commit(context.Background(), domain.CommitInput{Items: []domain.CommitItem{
		{Name: "a", ComponentID: "A", Category: "VP", Type: "API", ChangeType: "New"},
		{Name: "b", ComponentID: "B", Category: "VP", Type: "bogus", ChangeType: "New"},
		{Name: "db down", ComponentID: "C"},
		{Name: "d", ComponentID: "D", Category: "DM", Type: "Table", ChangeType: "New", Description: "Group ID: G"},
	}})
	require.NoError(t, err)

	want := domain.CommitOutput{Total: 4, Created: 2, Failed: 2, Results: []domain.CommitResult{
		{Index: 0, UID: "uid-A"},
		{Index: 1, Error: `type "bogus" is not allowed`},
		{Index: 2, Error: "disk I/O error"},
		{Index: 3, UID: "uid-D"},
	}}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("commit (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Group ID: G", fc.seen[3].Description)
	require.Len(t, rec.evs, 1)
	assert.Equal(t, actdom.KindComponentImported, rec.evs[0].Kind)
	assert.Equal(t, "2 created, 2 failed", rec.evs[0].Detail)
}

func TestCommit_StopsOnCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out, err := New(&fakeCreator{}, nil).Commit(ctx, domain.CommitInput{Items: []domain.CommitItem{{Name: "a"}}})
	require.Error(t, err)
	assert.Zero(t, out.Created)
}
