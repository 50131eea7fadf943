// Package health builds liveness, readiness and diagnostics reports.
//
// A shallow Report never performs I/O. A deep Report pings the database
// through the Database interface (implemented by *mongo.Connector) and
// Diagnostics additionally reads dbStats. The HTTP layer decides how a failed
// report maps to a status code.
package health
