package http

import (
	"net/http"
	"strconv"
	"strings"

	"deploytrack/internal/platform/net/http/bind"

	"github.com/go-chi/chi/v5"
)

// JSONHandler binds and validates a T from the body, then hands it to fn.
// fn may return a Response to pick its own status; any other value is
// wrapped in a 200 envelope
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		return result(fn(r, in))
	})
}

// JSONHandlerNoBody is JSONHandler for routes that read no body
func JSONHandlerNoBody(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response { return result(fn(r)) })
}

func result(out any, err error) Response {
	if err != nil {
		return Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return OK(out)
}

// Param is the named route parameter, e.g. {uid}
func Param(r *http.Request, name string) string { return chi.URLParam(r, name) }

// QueryInt reads an integer query value, def when missing or malformed
func QueryInt(r *http.Request, key string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get(key)))
	if err != nil {
		return def
	}
	return n
}
