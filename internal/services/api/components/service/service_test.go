package service

import (
	"context"
	"sync"
	"testing"
	"time"

	perr "deploytrack/internal/platform/errors"
	"deploytrack/internal/platform/store"
	actdom "deploytrack/internal/services/activity/domain"
	"deploytrack/internal/services/api/components/domain"
	"deploytrack/internal/services/api/components/repo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu  sync.Mutex
	evs []actdom.Event
}

func (r *recorder) Record(_ context.Context, e actdom.Event) {
	r.mu.Lock()
	r.evs = append(r.evs, e)
	r.mu.Unlock()
}

func (r *recorder) kinds() []actdom.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]actdom.Kind, 0, len(r.evs))
	for _, e := range r.evs {
		out = append(out, e.Kind)
	}
	return out
}

func newSvc(t *testing.T) (*Svc, *recorder) {
	t.Helper()
	ctx := context.Background()
	s, err := store.Open(ctx, store.Config{Driver: store.DialectSQLite, SQLite: store.SQLiteConfig{Path: ":memory:"}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(ctx) })
	require.NoError(t, s.Migrate(ctx))

	rec := &recorder{}
	svc := New(s.SQL, repo.NewSQL(), rec)
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }
	return svc, rec
}

func seeded(t *testing.T) *Svc {
	t.Helper()
	svc, _ := newSvc(t)
	n, err := svc.Seed(context.Background())
	require.NoError(t, err)
	require.Equal(t, len(Samples), n)
	return svc
}

func codeOf(t *testing.T, err error) (perr.ErrorCode, string) {
	t.Helper()
	e, ok := perr.As(err)
	require.True(t, ok, "want *perr.Error, got %T %v", err, err)
	return e.Code(), e.Field()
}

func TestCreate_CanonicalizesAndRecords(t *testing.T) {
	t.Parallel()

	svc, rec := newSvc(t)
	c, err := svc.Create(context.Background(), domain.CreateInput{
		ComponentID: " VP-100 ",
		Name:        " Orders   API ",
		URLLink:     "https://studio.example.com/#/visual-programming/abc",
		Category:    "vp",
		Type:        "API",
		ChangeType:  "new",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, c.UID)
	assert.Equal(t, "VP-100", c.ComponentID)
	assert.Equal(t, "Orders   API", c.Name)
	assert.Equal(t, "Visual Programming", c.Category)
	assert.Equal(t, "New", c.ChangeType)
	assert.Equal(t, "", c.Description)
	assert.True(t, c.CreatedAt.Equal(c.UpdatedAt))

	got, err := svc.Get(context.Background(), c.UID)
	require.NoError(t, err)
	assert.Equal(t, c, got)
	assert.Equal(t, []actdom.Kind{actdom.KindComponentCreated}, rec.kinds())
}

func TestCreate_Rejects(t *testing.T) {
	t.Parallel()

	svc, rec := newSvc(t)
	valid := domain.CreateInput{ComponentID: "X", Name: "n", URLLink: "u", Category: "Data Manager", Type: "Table", ChangeType: "Updated"}

	cases := map[string]struct {
		mut   func(*domain.CreateInput)
		field string
	}{
		"type outside category": {func(in *domain.CreateInput) { in.Type = "API" }, "type"},
		"unknown category":      {func(in *domain.CreateInput) { in.Category = "Robotics" }, "category"},
		"unknown change type":   {func(in *domain.CreateInput) { in.ChangeType = "Removed" }, "change_type"},
		"blank name":            {func(in *domain.CreateInput) { in.Name = "   " }, "name"},
	}
	for name, tc := range cases {
		in := valid
		tc.mut(&in)
		_, err := svc.Create(context.Background(), in)
		code, field := codeOf(t, err)
		assert.Equal(t, perr.ErrorCodeInvalidArgument, code, name)
		assert.Equal(t, tc.field, field, name)
	}
	assert.Empty(t, rec.kinds())
}

func TestList_FiltersAndOrder(t *testing.T) {
	t.Parallel()

	svc := seeded(t)
	ctx := context.Background()

	all, err := svc.List(ctx, domain.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 9, all.Total)
	assert.Equal(t, 1, all.Page)
	assert.Equal(t, DefaultPageSize, all.PageSize)
	require.Len(t, all.Items, 9)
	assert.Equal(t, "DM-003", all.Items[0].ComponentID)
	assert.Equal(t, "VP-001", all.Items[8].ComponentID)

	ids := func(q domain.ListQuery) []string {
		res, err := svc.List(ctx, q)
		require.NoError(t, err)
		out := make([]string, 0, len(res.Items))
		for _, c := range res.Items {
			out = append(out, c.ComponentID)
		}
		return out
	}
	assert.Equal(t, []string{"DM-003", "DM-002", "DM-001"}, ids(domain.ListQuery{Category: "dm"}))
	assert.Equal(t, []string{"DM-003", "DM-001", "EM-001", "VP-001"}, ids(domain.ListQuery{Search: "CUSTOMER"}))
	assert.Equal(t, []string{"VP-003", "VP-002", "VP-001"}, ids(domain.ListQuery{Search: "vp-00"}))
	assert.Equal(t, []string{"DM-001", "EM-003", "EM-001", "VP-002"}, ids(domain.ListQuery{ChangeType: "updated"}))
	assert.Equal(t, []string{"EM-001"}, ids(domain.ListQuery{Category: "Experience Manager", Type: "Single UI"}))
	assert.Empty(t, ids(domain.ListQuery{Search: "50%"}))
}

func TestList_Paging(t *testing.T) {
	t.Parallel()

	svc := seeded(t)
	ctx := context.Background()

	res, err := svc.List(ctx, domain.ListQuery{Page: 1, PageSize: 7})
	require.NoError(t, err)
	assert.Equal(t, DefaultPageSize, res.PageSize)

	res, err = svc.List(ctx, domain.ListQuery{Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 9, res.Total)
	assert.Empty(t, res.Items)
	assert.NotNil(t, res.Items)

	_, err = svc.List(ctx, domain.ListQuery{Category: "nope"})
	code, field := codeOf(t, err)
	assert.Equal(t, perr.ErrorCodeInvalidArgument, code)
	assert.Equal(t, "category", field)
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	svc, rec := newSvc(t)
	ctx := context.Background()
	c, err := svc.Create(ctx, domain.CreateInput{ComponentID: "EM-9", Name: "Form", URLLink: "u", Category: "EM", Type: "Form", ChangeType: "New"})
	require.NoError(t, err)

	later := c.CreatedAt.Add(time.Minute)
	svc.now = func() time.Time { return later }

	name, typ := "Renamed", "Report"
	got, err := svc.Update(ctx, c.UID, domain.UpdateInput{Name: &name, Type: &typ})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, "Report", got.Type)
	assert.Equal(t, "EM-9", got.ComponentID)
	assert.True(t, got.UpdatedAt.Equal(later))
	assert.True(t, got.CreatedAt.Equal(c.CreatedAt))

	bad := "Schema"
	_, err = svc.Update(ctx, c.UID, domain.UpdateInput{Type: &bad})
	code, _ := codeOf(t, err)
	assert.Equal(t, perr.ErrorCodeInvalidArgument, code)

	_, err = svc.Update(ctx, "missing", domain.UpdateInput{Name: &name})
	code, _ = codeOf(t, err)
	assert.Equal(t, perr.ErrorCodeNotFound, code)

	assert.Equal(t, []actdom.Kind{actdom.KindComponentCreated, actdom.KindComponentUpdated}, rec.kinds())
}

func TestDelete(t *testing.T) {
	t.Parallel()

	svc, rec := newSvc(t)
	ctx := context.Background()
	c, err := svc.Create(ctx, domain.CreateInput{ComponentID: "DM-9", Name: "T", URLLink: "u", Category: "DM", Type: "Table", ChangeType: "New"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, c.UID))
	err = svc.Delete(ctx, c.UID)
	code, _ := codeOf(t, err)
	assert.Equal(t, perr.ErrorCodeNotFound, code)
	_, err = svc.Get(ctx, c.UID)
	assert.True(t, perr.IsCode(err, perr.ErrorCodeNotFound))
	assert.Equal(t, []actdom.Kind{actdom.KindComponentCreated, actdom.KindComponentDeleted}, rec.kinds())
}

func TestTypesAndSeedIdempotent(t *testing.T) {
	t.Parallel()

	svc := seeded(t)
	ctx := context.Background()

	got, err := svc.Types(ctx, "dm")
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryTypes{Category: "Data Manager", Types: []string{"ETL Pipeline", "Schema", "View"}}, got)

	_, err = svc.Types(ctx, "??")
	assert.True(t, perr.IsCode(err, perr.ErrorCodeInvalidArgument))

	n, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
