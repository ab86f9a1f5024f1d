// Package sanitize turns free-form text into identifiers that are safe to use
// in ref names and file names.
package sanitize

import (
	"regexp"
	"strings"
)

// IDMax is the maximum length of a sanitized identifier.
const IDMax = 64

var idSeparators = regexp.MustCompile(`[^a-z0-9]+`)

// ID lowercases name and collapses every run of other characters into a
// single dash. Leading and trailing dashes are dropped.
func ID(name string) string {
	id := idSeparators.ReplaceAllString(strings.ToLower(name), "-")
	if len(id) > IDMax {
		id = id[:IDMax]
	}
	return strings.Trim(id, "-")
}
