// Package domain holds DTOs for the API client: saved requests, the request
// spec a user builds, and the captured response
package domain

import "time"

// Auth types
const (
	AuthNone   = "None"
	AuthBearer = "Bearer Token"
	AuthBasic  = "Basic Auth"
	AuthAPIKey = "API Key"
)

// API key placement
const (
	AddToHeader = "Header"
	AddToQuery  = "Query Params"
)

// Body types
const (
	BodyNone       = "none"
	BodyRaw        = "raw"
	BodyFormData   = "form-data"
	BodyURLEncoded = "x-www-form-urlencoded"
)

// Methods lists the accepted HTTP methods
var Methods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}

// KV is a toggleable key/value row (query params, headers, form fields)
type KV struct {
	Key     string `json:"key" example:"page"`
	Value   string `json:"value" example:"1"`
	Enabled bool   `json:"enabled" example:"true"`
}

// Auth configures one of the supported schemes
type Auth struct {
	Type     string `json:"type,omitempty" example:"Bearer Token"`
	Token    string `json:"token,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	KeyName  string `json:"key_name,omitempty" example:"X-API-Key"`
	KeyValue string `json:"key_value,omitempty"`
	AddTo    string `json:"add_to,omitempty" example:"Header"`
}

// Body is the request payload. Content is used by raw, Form by the two form types
type Body struct {
	Type    string `json:"type,omitempty" example:"raw"`
	Content string `json:"content,omitempty" example:"{\"hello\":\"world\"}"`
	Form    []KV   `json:"form,omitempty"`
}

// RequestSpec is everything needed to send one request
type RequestSpec struct {
	Method      string `json:"method" validate:"required,max=10" example:"GET"`
	URL         string `json:"url" validate:"required,max=4096" example:"https://httpbin.org/get"`
	QueryParams []KV   `json:"query_params,omitempty" validate:"max=200"`
	Headers     []KV   `json:"headers,omitempty" validate:"max=200"`
	Auth        Auth   `json:"auth"`
	Body        Body   `json:"body"`
}

// SaveInput is the body of POST /requests and PUT /requests/{uid}
type SaveInput struct {
	Name        string `json:"name" validate:"required,max=200" example:"List users"`
	Description string `json:"description,omitempty" validate:"max=2000"`
	RequestSpec
}

// SavedRequest is a stored request plus its last run
type SavedRequest struct {
	UID         string `json:"uid"`
	Name        string `json:"name"`
	Description string `json:"description"`
	RequestSpec
	LastStatus *int       `json:"last_status"`
	LastRunAt  *time.Time `json:"last_run_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ListQuery filters GET /requests
type ListQuery struct {
	Search string
	Method string
}

// ResponseView is a captured response ready for display
type ResponseView struct {
	StatusCode  int               `json:"status_code" example:"200"`
	Status      string            `json:"status" example:"200 OK"`
	StatusClass string            `json:"status_class" example:"2xx"`
	Headers     map[string]string `json:"headers"`
	Body        string            `json:"body"`
	Pretty      string            `json:"pretty"`
	Kind        string            `json:"kind" example:"json"`
	Title       string            `json:"title,omitempty"`
	ElapsedMS   float64           `json:"elapsed_ms" example:"123.45"`
	Size        int               `json:"size" example:"512"`
	Truncated   bool              `json:"truncated,omitempty"`
}
