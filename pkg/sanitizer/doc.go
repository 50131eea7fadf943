// Package sanitizer normalizes user supplied strings before validation.
//
//	name := sanitizer.Apply(in.Name, sanitizer.StripHTML, sanitizer.SingleLine)
//	text := sanitizer.Compose(sanitizer.RemoveControlChars, sanitizer.NormalizeNewlines, sanitizer.Trim)
package sanitizer
