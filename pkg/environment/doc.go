// Package environment carries the deployment environment (development,
// staging, production, test) through request contexts and log records.
//
// The value is parsed once from NODE_ENV at startup with Parse and decides
// whether error responses may include driver-level details.
//
//	env := environment.Parse(os.Getenv("NODE_ENV"))
//	r.Use(environment.Middleware(env))
//
//	if environment.IsProduction(r.Context()) {
//		// hide error details
//	}
package environment
