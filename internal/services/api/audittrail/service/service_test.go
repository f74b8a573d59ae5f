package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"deploytrack/internal/adapters/outbound"
	perr "deploytrack/internal/platform/errors"
	"deploytrack/internal/services/api/audittrail/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestBody_Defaults(t *testing.T) {
	b, err := RequestBody(domain.QueryInput{FormDataID: " f1 ", RecordID: "r1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"form_data_id":"f1","page":1,"limit":500,"sort":{"timestamp":-1},"filter":{"record_id":"r1"}}`, string(b))

	b, err = RequestBody(domain.QueryInput{FormDataID: "f1", RecordID: "r1", Page: 3, Limit: 5000, Sort: "asc"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"form_data_id":"f1","page":3,"limit":1000,"sort":{"timestamp":1},"filter":{"record_id":"r1"}}`, string(b))
}

func TestRequestBody_Custom(t *testing.T) {
	b, err := RequestBody(domain.QueryInput{CustomBody: json.RawMessage(` {"anything":true} `)})
	require.NoError(t, err)
	assert.Equal(t, `{"anything":true}`, string(b))

	_, err = RequestBody(domain.QueryInput{CustomBody: json.RawMessage(`[1,2]`)})
	assert.True(t, perr.IsCode(err, perr.ErrorCodeInvalidArgument))
}

func TestRequestBody_Missing(t *testing.T) {
	for _, in := range []domain.QueryInput{
		{RecordID: "r1"},
		{FormDataID: "f1", RecordID: "  "},
		{FormDataID: "f1", RecordID: "r1", Sort: "sideways"},
	} {
		_, err := RequestBody(in)
		assert.True(t, perr.IsCode(err, perr.ErrorCodeInvalidArgument), "%+v", in)
	}
}

func TestRecords(t *testing.T) {
	long := strings.Repeat("x", 300)
	dec := json.NewDecoder(strings.NewReader(`{"data":[
		{"action":"update","timestamp":1714554000000,"name":"Ana","email":"ana@example.com",
		 "new_data":{"automation_id":"auto-7","note":"` + long + `"},"old_data":{}},
		{"timestamp":"yesterday"},
		"not a record"
	]}`))
	dec.UseNumber()
	var data any
	require.NoError(t, dec.Decode(&data))

	recs := Records(data)
	require.Len(t, recs, 2)

	first := recs[0]
	assert.Equal(t, "update", first.Action)
	assert.Equal(t, "2024-05-01 09:00:00", first.Time)
	assert.Equal(t, "Ana", first.Name)
	assert.Equal(t, "auto-7", first.AutomationID)
	assert.True(t, strings.HasSuffix(first.NewData, "..."))
	assert.Len(t, []rune(first.NewData), domain.PreviewLen+3)
	assert.Empty(t, first.OldData)

	second := recs[1]
	assert.Equal(t, "N/A", second.Action)
	assert.Equal(t, "yesterday", second.Time)

	assert.Empty(t, Records("plain text"))
	assert.Empty(t, Records(map[string]any{"data": "nope"}))
}

func TestQuery_RoundTrip(t *testing.T) {
	var gotAuth, gotCT string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotCT = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"action":"create","timestamp":0,"name":"Bo"}]}`))
	}))
	t.Cleanup(srv.Close)

	svc := New(outbound.NewClient(outbound.Options{Timeout: 5 * time.Second}))
	out, err := svc.Query(context.Background(), domain.QueryInput{APIURL: srv.URL, Token: " jwt ", FormDataID: "f", RecordID: "r"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer jwt", gotAuth)
	assert.Equal(t, "application/json", gotCT)
	assert.Equal(t, "f", gotBody["form_data_id"])
	assert.Equal(t, 200, out.StatusCode)
	require.Len(t, out.Records, 1)
	assert.Equal(t, "create", out.Records[0].Action)
	assert.Equal(t, "1970-01-01 00:00:00", out.Records[0].Time)
}

func TestQuery_TextAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("token expired"))
	}))
	t.Cleanup(srv.Close)

	svc := New(outbound.NewClient(outbound.Options{}))
	out, err := svc.Query(context.Background(), domain.QueryInput{APIURL: srv.URL, Token: "t", FormDataID: "f", RecordID: "r"})
	require.NoError(t, err)
	assert.Equal(t, 401, out.StatusCode)
	assert.Equal(t, "token expired", out.Data)
	assert.Empty(t, out.Records)
}

func TestQuery_Invalid(t *testing.T) {
	svc := New(outbound.NewClient(outbound.Options{}))
	_, err := svc.Query(context.Background(), domain.QueryInput{APIURL: "not a url", Token: "t", FormDataID: "f", RecordID: "r"})
	assert.True(t, perr.IsCode(err, perr.ErrorCodeInvalidArgument))

	_, err = svc.Query(context.Background(), domain.QueryInput{APIURL: "https://x.test", Token: " ", FormDataID: "f", RecordID: "r"})
	assert.True(t, perr.IsCode(err, perr.ErrorCodeInvalidArgument))
}
