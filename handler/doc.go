// Package handler turns typed request handlers into http.HandlerFunc values
// and renders every response, errors included, as a JSON envelope with a
// "success" flag.
package handler
