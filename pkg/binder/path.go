package binder

import "net/http"

// Path binds route parameters using `path:"name"` tags. The extractor is
// router specific, for chi it is chi.URLParam.
func Path(extractor func(r *http.Request, name string) string) func(w http.ResponseWriter, r *http.Request, v any) error {
	return func(_ http.ResponseWriter, r *http.Request, v any) error {
		return bindFunc(v, "path", func(name string) []string {
			if value := extractor(r, name); value != "" {
				return []string{value}
			}
			return nil
		}, ErrInvalidPath)
	}
}
