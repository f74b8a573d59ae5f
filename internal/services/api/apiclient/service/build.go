package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"slices"
	"strings"

	perr "deploytrack/internal/platform/errors"
	"deploytrack/internal/services/api/apiclient/domain"
)

// Normalize upper-cases the method, fills defaulted auth and body fields and
// rejects anything the builder could not send
func Normalize(s *domain.RequestSpec) error {
	s.Method = strings.ToUpper(strings.TrimSpace(s.Method))
	if !slices.Contains(domain.Methods, s.Method) {
		return perr.WithField(perr.InvalidArgf("method %q is not one of %s", s.Method, strings.Join(domain.Methods, ", ")), "method")
	}
	s.URL = strings.TrimSpace(s.URL)
	u, err := url.Parse(s.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return perr.WithField(perr.InvalidArgf("url %q must be an absolute http or https URL", s.URL), "url")
	}

	switch s.Auth.Type {
	case "":
		s.Auth.Type = domain.AuthNone
	case domain.AuthNone, domain.AuthBearer, domain.AuthBasic:
	case domain.AuthAPIKey:
		if s.Auth.KeyName == "" {
			s.Auth.KeyName = "X-API-Key"
		}
		if s.Auth.AddTo == "" {
			s.Auth.AddTo = domain.AddToHeader
		}
		if s.Auth.AddTo != domain.AddToHeader && s.Auth.AddTo != domain.AddToQuery {
			return perr.WithField(perr.InvalidArgf("api key add_to %q must be %q or %q", s.Auth.AddTo, domain.AddToHeader, domain.AddToQuery), "auth.add_to")
		}
	default:
		return perr.WithField(perr.InvalidArgf("unknown auth type %q", s.Auth.Type), "auth.type")
	}

	switch s.Body.Type {
	case "":
		s.Body.Type = domain.BodyNone
	case domain.BodyNone, domain.BodyRaw, domain.BodyFormData, domain.BodyURLEncoded:
	default:
		return perr.WithField(perr.InvalidArgf("unknown body type %q", s.Body.Type), "body.type")
	}
	return nil
}

// Build turns a spec into an outbound request. Only enabled rows with a key are sent
func Build(ctx context.Context, spec domain.RequestSpec) (*http.Request, error) {
	if err := Normalize(&spec); err != nil {
		return nil, err
	}
	u, _ := url.Parse(spec.URL)

	q := u.Query()
	for _, p := range enabled(spec.QueryParams) {
		q.Set(p.Key, p.Value)
	}
	a := spec.Auth
	if a.Type == domain.AuthAPIKey && a.AddTo == domain.AddToQuery && a.KeyName != "" && a.KeyValue != "" {
		q.Set(a.KeyName, a.KeyValue)
	}
	u.RawQuery = q.Encode()

	body, contentType, err := encodeBody(spec.Body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, spec.Method, u.String(), body)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "build request: %v", err)
	}

	for _, h := range enabled(spec.Headers) {
		req.Header.Set(h.Key, h.Value)
	}
	switch {
	case contentType == "":
	case spec.Body.Type == domain.BodyRaw:
		// raw JSON only fills a missing content type
		if req.Header.Get("Content-Type") == "" {
			req.Header.Set("Content-Type", contentType)
		}
	default:
		req.Header.Set("Content-Type", contentType)
	}

	switch a.Type {
	case domain.AuthBearer:
		if a.Token != "" {
			req.Header.Set("Authorization", "Bearer "+a.Token)
		}
	case domain.AuthBasic:
		if a.Username != "" {
			req.SetBasicAuth(a.Username, a.Password)
		}
	case domain.AuthAPIKey:
		if a.AddTo == domain.AddToHeader && a.KeyName != "" && a.KeyValue != "" {
			req.Header.Set(a.KeyName, a.KeyValue)
		}
	}
	return req, nil
}

func encodeBody(b domain.Body) (io.Reader, string, error) {
	switch b.Type {
	case domain.BodyRaw:
		if b.Content == "" {
			return nil, "", nil
		}
		if json.Valid([]byte(b.Content)) {
			return strings.NewReader(b.Content), "application/json", nil
		}
		return strings.NewReader(b.Content), "", nil
	case domain.BodyFormData:
		fields := enabled(b.Form)
		if len(fields) == 0 {
			return nil, "", nil
		}
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		for _, f := range fields {
			if err := w.WriteField(f.Key, f.Value); err != nil {
				return nil, "", perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "form field %q: %v", f.Key, err)
			}
		}
		if err := w.Close(); err != nil {
			return nil, "", perr.Wrapf(err, perr.ErrorCodeUnknown, "close multipart body: %v", err)
		}
		return &buf, w.FormDataContentType(), nil
	case domain.BodyURLEncoded:
		form := url.Values{}
		for _, f := range enabled(b.Form) {
			form.Set(f.Key, f.Value)
		}
		return strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", nil
	}
	return nil, "", nil
}

func enabled(kvs []domain.KV) []domain.KV {
	out := make([]domain.KV, 0, len(kvs))
	for _, kv := range kvs {
		if kv.Enabled && strings.TrimSpace(kv.Key) != "" {
			out = append(out, kv)
		}
	}
	return out
}
