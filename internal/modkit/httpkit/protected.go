package httpkit

import (
	"deploytrack/internal/platform/net/middleware"
)

// Protected groups routes under bearer auth. A nil port leaves the group open
func Protected(r Router, p *TokenPort, fn func(Router)) {
	r.Group(func(gr Router) {
		if p != nil {
			gr.Use(Auth(p))
		}
		fn(gr)
	})
}

// compile time check that the token port satisfies the middleware seam
var _ middleware.AuthPort = (*TokenPort)(nil)
