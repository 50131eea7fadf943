package binder

import "net/http"

// Query binds URL query parameters using `query:"name"` tags. Fields without a
// tag use their lower-cased name; `query:"-"` skips a field.
func Query() func(w http.ResponseWriter, r *http.Request, v any) error {
	return func(_ http.ResponseWriter, r *http.Request, v any) error {
		return bindToStruct(v, "query", r.URL.Query(), ErrInvalidQuery)
	}
}
