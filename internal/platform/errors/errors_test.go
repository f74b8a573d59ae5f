package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatusCode(t *testing.T) {
	cases := map[ErrorCode]int{
		ErrorCodeNotFound:        http.StatusNotFound,
		ErrorCodeInvalidArgument: http.StatusUnprocessableEntity,
		ErrorCodeDuplicateKey:    http.StatusConflict,
		ErrorCodeConflict:        http.StatusConflict,
		ErrorCodeValidation:      http.StatusBadRequest,
		ErrorCodeJSON:            http.StatusBadRequest,
		ErrorCodeUnauthorized:    http.StatusUnauthorized,
		ErrorCodeForbidden:       http.StatusForbidden,
		ErrorCodeTooManyRequests: http.StatusTooManyRequests,
		ErrorCodeUnavailable:     http.StatusServiceUnavailable,
		ErrorCodeTimeout:         http.StatusGatewayTimeout,
		ErrorCodeUpstream:        http.StatusBadGateway,
		ErrorCodeDB:              http.StatusInternalServerError,
		ErrorCodePanic:           http.StatusInternalServerError,
		ErrorCodeUnknown:         http.StatusInternalServerError,
		ErrorCode(999):           http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, HTTPStatusCode(code), code.String())
	}
	assert.Equal(t, http.StatusNotFound, HTTPStatus(fmt.Errorf("lookup: %w", ErrNotFound)))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(stderrs.New("plain")))
}

func TestErrorCode_String(t *testing.T) {
	assert.Equal(t, "not_found", ErrorCodeNotFound.String())
	assert.Equal(t, "upstream", ErrorCodeUpstream.String())
	assert.Equal(t, "unknown", ErrorCode(999).String())
}

func TestError_MessageAndCause(t *testing.T) {
	var nilErr *Error
	assert.Equal(t, "<nil>", nilErr.Error())

	cause := stderrs.New("connection refused")
	err := Wrapf(cause, ErrorCodeUpstream, "calling %s", "studio")
	assert.Equal(t, "calling studio: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Same(t, cause, Root(fmt.Errorf("outer: %w", err)))

	e, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, ErrorCodeUpstream, e.Code())
	assert.Equal(t, "calling studio", e.Message())

	assert.Equal(t, "component 7 not found", NotFoundf("component %d not found", 7).Error())
	assert.Nil(t, Root(nil))
}

func TestWithField_CopiesOnWrite(t *testing.T) {
	orig := InvalidArgf("url must be absolute")
	withField := WithField(orig, "url")

	e, _ := As(withField)
	assert.Equal(t, "url", e.Field())
	o, _ := As(orig)
	assert.Empty(t, o.Field())

	foreign := stderrs.New("plain")
	assert.Same(t, foreign, WithField(foreign, "x"))
}

func TestWireFrom(t *testing.T) {
	assert.Equal(t, Wire{}, WireFrom(nil))
	assert.Equal(t, Wire{Code: ErrorCodeUnknown, Message: "plain"}, WireFrom(stderrs.New("plain")))

	err := WithField(Wrap(stderrs.New("driver detail"), ErrorCodeDuplicateKey, "component exists"), "component_id")
	assert.Equal(t, Wire{Code: ErrorCodeDuplicateKey, Message: "component exists", Field: "component_id"}, WireFrom(err))
}

func TestSugarCodes(t *testing.T) {
	cases := map[ErrorCode]error{
		ErrorCodeNotFound:        NotFoundf("x"),
		ErrorCodeInvalidArgument: InvalidArgf("x"),
		ErrorCodeJSON:            JSONErrf("x"),
		ErrorCodePanic:           PanicErrf("x"),
		ErrorCodeUnauthorized:    Unauthorizedf("x"),
		ErrorCodeUnavailable:     Unavailablef("x"),
		ErrorCodeValidation:      New(ErrorCodeValidation, "x"),
	}
	for code, err := range cases {
		assert.True(t, IsCode(err, code), code.String())
	}
	assert.False(t, IsCode(stderrs.New("x"), ErrorCodeNotFound))
	assert.True(t, IsCode(ErrNotFound, ErrorCodeNotFound))
}
