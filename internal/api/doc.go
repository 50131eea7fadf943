// Package api builds the HTTP surface: liveness and deep health checks,
// database diagnostics, the service index and the contact routes, which sit
// behind the database gate.
package api
