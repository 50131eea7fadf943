// Package binder fills request structs from JSON bodies, query strings and
// route parameters.
//
// Every binder has the same signature so handler.Wrap can apply them in order:
//
//	type listRequest struct {
//		Status string `query:"status"`
//		Page   int    `query:"page"`
//	}
//
//	r.Get("/api/contacts", handler.Wrap(list, handler.WithBinders(binder.Query())))
package binder
