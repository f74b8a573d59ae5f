// Package outbound sends user built HTTP requests to third party services
// and captures the response for display. Non 2xx answers are results, not errors.
package outbound

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math"
	"mime"
	"net"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	perr "deploytrack/internal/platform/errors"
	"deploytrack/internal/platform/logger"

	"golang.org/x/net/html/charset"
)

const (
	defaultTimeout = 60 * time.Second
	defaultUA      = "deploytrack/1.0"
	defaultMaxBody = 10 << 20
)

// Options configures the Client
type Options struct {
	Timeout   time.Duration
	UserAgent string
	// MaxBody caps how many response bytes are kept; the rest is discarded
	MaxBody int64
	// Transport overrides http.DefaultTransport, mostly for tests
	Transport http.RoundTripper
}

// Client wraps http.Client with timing, body capture and error classification
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
	now  func() time.Time
}

// NewClient creates a Client with defaults for zero fields
func NewClient(o Options) *Client {
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.MaxBody <= 0 {
		o.MaxBody = defaultMaxBody
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout, Transport: o.Transport},
		opts: o,
		log:  *logger.Named("outbound"),
		now:  time.Now,
	}
}

// Timeout is the per request deadline
func (c *Client) Timeout() time.Duration { return c.opts.Timeout }

// Result is a captured response
type Result struct {
	StatusCode int
	Status     string
	Header     http.Header
	// Body is the raw payload, Text the same payload decoded to UTF-8
	Body      []byte
	Text      string
	Size      int
	Truncated bool
	Elapsed   time.Duration
}

// ElapsedMS is the round trip in milliseconds rounded to two decimals
func (r *Result) ElapsedMS() float64 {
	return math.Round(float64(r.Elapsed.Microseconds())/10) / 100
}

// StatusClass buckets the status code as 2xx, 3xx, 4xx or 5xx
func (r *Result) StatusClass() string {
	switch {
	case r.StatusCode >= 200 && r.StatusCode < 300:
		return "2xx"
	case r.StatusCode >= 300 && r.StatusCode < 400:
		return "3xx"
	case r.StatusCode >= 400 && r.StatusCode < 500:
		return "4xx"
	}
	return "5xx"
}

// Do sends req and reads the whole response body.
// Errors carry ErrorCodeTimeout, ErrorCodeUpstream or ErrorCodeUnknown.
func (c *Client) Do(ctx context.Context, req *http.Request) (*Result, error) {
	req = req.WithContext(ctx)
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.opts.UserAgent)
	}

	start := c.now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("method", req.Method).Str("host", req.URL.Host).Msg("outbound request failed")
		return nil, c.classify(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.opts.MaxBody+1))
	lat := c.now().Sub(start)
	if err != nil {
		return nil, c.classify(err)
	}
	res := &Result{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Elapsed:    lat,
	}
	if int64(len(body)) > c.opts.MaxBody {
		body = body[:c.opts.MaxBody]
		res.Truncated = true
	}
	res.Body = body
	res.Size = len(body)
	res.Text = DecodeText(body, resp.Header.Get("Content-Type"))

	c.log.Debug().
		Str("method", req.Method).
		Str("host", req.URL.Host).
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Int("bytes", res.Size).
		Msg("outbound response")
	return res, nil
}

func (c *Client) classify(err error) error {
	var (
		ne  net.Error
		op  *net.OpError
		dns *net.DNSError
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()):
		return perr.Wrapf(err, perr.ErrorCodeTimeout, "request timed out (%s)", c.opts.Timeout)
	case errors.As(err, &dns):
		return perr.Wrapf(err, perr.ErrorCodeUpstream, "connection error: %v", dns)
	case errors.As(err, &op) && op.Op == "dial":
		return perr.Wrapf(err, perr.ErrorCodeUpstream, "connection error: %v", op)
	}
	return perr.Wrapf(err, perr.ErrorCodeUnknown, "request failed: %v", err)
}

// DecodeText returns body as UTF-8. Valid UTF-8 without a declared foreign
// charset is returned as is; anything else goes through the charset sniffer.
func DecodeText(body []byte, contentType string) string {
	if utf8.Valid(body) && !foreignCharset(contentType) {
		return string(body)
	}
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err == nil {
		if out, err := io.ReadAll(r); err == nil {
			return string(out)
		}
	}
	return strings.ToValidUTF8(string(body), "\uFFFD")
}

func foreignCharset(contentType string) bool {
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	cs := strings.ToLower(params["charset"])
	return cs != "" && cs != "utf-8" && cs != "utf8"
}
