package formdata

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	perr "deploytrack/internal/platform/errors"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, s string) any {
	t.Helper()
	v, err := Decode([]byte(s))
	require.NoError(t, err)
	return v
}

func TestExtract_CollapsesDuplicates(t *testing.T) {
	t.Parallel()

	v := mustDecode(t, `{"a":{"form_data_id":"X"},"b":[{"form_data_id":"X"},{"form_data_id":"Y"}]}`)
	assert.Equal(t, []string{"X", "Y"}, Extract(v))
}

func TestExtract_Rules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{"scalar root", `"form_data_id"`, []string{}},
		{"blank and non string values skipped", `{"form_data_id":"  ","x":{"form_data_id":42},"y":{"form_data_id":null}}`, []string{}},
		{"value kept untrimmed", `{"form_data_id":" Z "}`, []string{" Z "}},
		{"nested under collected key", `{"form_data_id":{"form_data_id":"inner"}}`, []string{"inner"}},
		{"arrays of arrays", `[[[{"form_data_id":"deep"}]],[{"other":"x"}]]`, []string{"deep"}},
		{"key match is literal", `{"Form_Data_Id":"A","form_data_id_x":"B","form_data_id":"C"}`, []string{"C"}},
	}
	for _, tt := range tests {
		got := Extract(mustDecode(t, tt.doc))
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Fatalf("%s (-want +got)\n%s", tt.name, diff)
		}
	}
}

func TestExtract_DeepDocumentIsIterative(t *testing.T) {
	t.Parallel()

	const depth = 100000
	// built by hand, encoding/json caps nesting well below this depth
	var v any = map[string]any{"form_data_id": "bottom"}
	for range depth {
		v = []any{v}
	}
	assert.Equal(t, []string{"bottom"}, Extract(v))
}

func TestExtract_Idempotent(t *testing.T) {
	t.Parallel()

	v := mustDecode(t, `{"k":[{"form_data_id":"b"},{"form_data_id":"a"}]}`)
	assert.Equal(t, Extract(v), Extract(v))
	assert.Equal(t, []string{"id-1"}, ExtractKey(mustDecode(t, `{"record_id":"id-1"}`), "record_id"))
}

func TestDecode_InvalidInput(t *testing.T) {
	t.Parallel()

	for _, doc := range []string{`{"a":`, ``, `{"a":1} {"b":2}`, `nope`} {
		_, err := Decode([]byte(doc))
		require.Error(t, err, doc)
		assert.True(t, IsInvalidInput(err), doc)
		assert.Equal(t, 400, perr.HTTPStatus(err))
	}

	v, err := Decode([]byte(" {\"n\": 12345678901234567890}\n"))
	require.NoError(t, err)
	assert.Equal(t, json.Number("12345678901234567890"), v.(map[string]any)["n"])
}

func TestResolve(t *testing.T) {
	t.Parallel()

	r := Resolver{Host: "studio.local", Mapping: Mapping{"X": "G1"}}
	got := r.Resolve([]string{"Y", "X", "Y"})
	want := Resolution{
		Total:      2,
		Resolved:   []Link{{ID: "X", Group: "G1", URL: "https://studio.local/#/form-data/table/G1/X"}},
		Unresolved: []string{"Y"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Resolve (-want +got)\n%s", diff)
	}

	empty := Resolver{}.Resolve(nil)
	assert.NotNil(t, empty.Resolved)
	assert.NotNil(t, empty.Unresolved)
	assert.Equal(t, "https://"+DefaultHost+"/#/form-data/table/g/i", Resolver{}.URL("g", "i"))
}

func TestFind(t *testing.T) {
	t.Parallel()

	r := Resolver{Host: "h", Mapping: Mapping{"b": "g2", "a": "g1"}}
	res, err := Find([]byte(`{"pages":[{"form_data_id":"b"},{"widgets":[{"form_data_id":"a"},{"form_data_id":"c"}]}]}`), r)
	require.NoError(t, err)
	require.Len(t, res.Resolved, 2)
	assert.Equal(t, "a", res.Resolved[0].ID)
	assert.Equal(t, "https://h/#/form-data/table/g2/b", res.Resolved[1].URL)
	assert.Equal(t, []string{"c"}, res.Unresolved)

	_, err = Find([]byte(`{`), r)
	assert.True(t, IsInvalidInput(err))
}

func TestLoadMapping(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	js := filepath.Join(dir, "indexed-data-managers.json")
	require.NoError(t, os.WriteFile(js, []byte(`{"X":"G1","Y":"G2"}`), 0o600))
	m, err := LoadMapping(js)
	require.NoError(t, err)
	assert.Equal(t, Mapping{"X": "G1", "Y": "G2"}, m)

	yml := filepath.Join(dir, "mapping.yml")
	require.NoError(t, os.WriteFile(yml, []byte("X: G1\nZ: G9\n"), 0o600))
	m, err = LoadMapping(yml)
	require.NoError(t, err)
	assert.Equal(t, "G9", m["Z"])

	m, err = LoadMapping(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	require.NotNil(t, m)
	assert.Empty(t, m)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`["not","an","object"]`), 0o600))
	m, err = LoadMapping(bad)
	require.Error(t, err)
	assert.Empty(t, m)

	m, err = ParseMapping([]byte("null"), ".json")
	require.NoError(t, err)
	assert.NotNil(t, m)
}
