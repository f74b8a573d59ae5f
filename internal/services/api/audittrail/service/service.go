// Package service queries remote audit trail endpoints and flattens their records
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"deploytrack/internal/adapters/outbound"
	perr "deploytrack/internal/platform/errors"
	pstrings "deploytrack/internal/platform/strings"
	"deploytrack/internal/services/api/audittrail/domain"
)

// Service defines the service contract for audit trail queries
type Service interface{ domain.ServicePort }

// Doer sends a built request
type Doer interface {
	Do(ctx context.Context, req *http.Request) (*outbound.Result, error)
}

// Svc implements the Service interface
type Svc struct {
	client Doer
}

var _ Service = (*Svc)(nil)

// New creates the audit trail service
func New(client Doer) *Svc {
	if client == nil {
		panic("audittrail.Service requires a non nil Doer")
	}
	return &Svc{client: client}
}

type sortSpec struct {
	Timestamp int `json:"timestamp"`
}

type filterSpec struct {
	RecordID string `json:"record_id"`
}

type queryBody struct {
	FormDataID string     `json:"form_data_id"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	Sort       sortSpec   `json:"sort"`
	Filter     filterSpec `json:"filter"`
}

// Query posts the audit trail request and parses what comes back
func (s *Svc) Query(ctx context.Context, in domain.QueryInput) (domain.QueryOutput, error) {
	body, err := RequestBody(in)
	if err != nil {
		return domain.QueryOutput{}, err
	}
	target := strings.TrimSpace(in.APIURL)
	u, err := url.Parse(target)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return domain.QueryOutput{}, perr.WithField(perr.InvalidArgf("api_url %q must be an absolute http or https URL", target), "api_url")
	}
	token := strings.TrimSpace(in.Token)
	if token == "" {
		return domain.QueryOutput{}, perr.WithField(perr.InvalidArgf("token must not be blank"), "token")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return domain.QueryOutput{}, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	res, err := s.client.Do(ctx, req)
	if err != nil {
		return domain.QueryOutput{}, err
	}

	out := domain.QueryOutput{StatusCode: res.StatusCode, Data: res.Text, Records: []domain.Record{}}
	dec := json.NewDecoder(bytes.NewReader(res.Body))
	dec.UseNumber()
	var data any
	if err := dec.Decode(&data); err == nil {
		out.Data = data
		out.Records = Records(data)
	}
	return out, nil
}

// RequestBody returns the custom body when given, otherwise the generated query
func RequestBody(in domain.QueryInput) ([]byte, error) {
	if raw := bytes.TrimSpace(in.CustomBody); len(raw) > 0 {
		if raw[0] != '{' || !json.Valid(raw) {
			return nil, perr.WithField(perr.InvalidArgf("custom_body must be a JSON object"), "custom_body")
		}
		return raw, nil
	}

	q := queryBody{
		FormDataID: strings.TrimSpace(in.FormDataID),
		Page:       in.Page,
		Limit:      in.Limit,
		Sort:       sortSpec{Timestamp: -1},
		Filter:     filterSpec{RecordID: strings.TrimSpace(in.RecordID)},
	}
	if q.FormDataID == "" {
		return nil, perr.WithField(perr.InvalidArgf("form_data_id must not be blank"), "form_data_id")
	}
	if q.Filter.RecordID == "" {
		return nil, perr.WithField(perr.InvalidArgf("record_id must not be blank"), "record_id")
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	switch {
	case q.Limit <= 0:
		q.Limit = domain.DefaultLimit
	case q.Limit > domain.MaxLimit:
		q.Limit = domain.MaxLimit
	}
	switch strings.ToLower(strings.TrimSpace(in.Sort)) {
	case "", domain.SortDesc:
	case domain.SortAsc:
		q.Sort.Timestamp = 1
	default:
		return nil, perr.WithField(perr.InvalidArgf("sort %q must be %q or %q", in.Sort, domain.SortDesc, domain.SortAsc), "sort")
	}
	b, err := json.Marshal(q)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "encode query: %v", err)
	}
	return b, nil
}

// Records extracts readable entries from a {"data": [...]} document
func Records(data any) []domain.Record {
	doc, ok := data.(map[string]any)
	if !ok {
		return []domain.Record{}
	}
	list, ok := doc["data"].([]any)
	if !ok {
		return []domain.Record{}
	}
	out := make([]domain.Record, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		r := domain.Record{
			Action:  text(m["action"]),
			Name:    text(m["name"]),
			Email:   text(m["email"]),
			NewData: preview(m["new_data"]),
			OldData: preview(m["old_data"]),
		}
		if r.Action == "" {
			r.Action = "N/A"
		}
		if nd, ok := m["new_data"].(map[string]any); ok {
			r.AutomationID = text(nd["automation_id"])
		}
		if ts, ok := m["timestamp"]; ok && ts != nil && ts != "" {
			r.Timestamp = ts
			r.Time = formatMillis(ts)
		}
		out = append(out, r)
	}
	return out
}

// formatMillis renders an epoch milliseconds value in UTC, or the value itself
func formatMillis(v any) string {
	if n, ok := v.(json.Number); ok {
		if f, err := n.Float64(); err == nil {
			return time.UnixMilli(int64(f)).UTC().Format(time.DateTime)
		}
	}
	return text(v)
}

func preview(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		if x == "" {
			return ""
		}
	case map[string]any:
		if len(x) == 0 {
			return ""
		}
	case []any:
		if len(x) == 0 {
			return ""
		}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return pstrings.Truncate(fmt.Sprint(v), domain.PreviewLen)
	}
	return pstrings.Truncate(strings.TrimSuffix(buf.String(), "\n"), domain.PreviewLen)
}

func text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	}
	return fmt.Sprint(v)
}
