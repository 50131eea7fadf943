// Package validator provides rule based validation with user facing messages
// in Portuguese.
//
//	err := validator.Apply(
//		validator.Required("name", in.Name),
//		validator.MaxLen("name", in.Name, 120),
//		validator.Email("email", in.Email),
//	)
//	if ve := validator.ExtractValidationErrors(err); ve != nil {
//		// ve.Fields() → map[string][]string
//	}
package validator
