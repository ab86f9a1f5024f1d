package pathspec

import (
	"os"
	"regexp"

	"emperror.dev/errors"
	"github.com/CarterFendley/pit/internal/utils/stringutils"
)

// ErrMalformedIncludeSpec is returned when an include spec has more than one
// force section.
var ErrMalformedIncludeSpec = errors.Sentinel("malformed include spec")

var forceSentinel = regexp.MustCompile(`(?i)^#\s*force\s*$`)

// IncludeSpec is the parsed content of a pit include file.
//
// Lines before the optional "# force" sentinel select changes for snapshots.
// Lines after it select ignored paths that should be snapshotted anyway.
type IncludeSpec struct {
	Include []string
	// Force is nil when the spec has no force section.
	Force []string
}

// ParseIncludeSpec parses the content of an include file.
func ParseIncludeSpec(content string) (*IncludeSpec, error) {
	spec := &IncludeSpec{}
	forceLine := 0
	for i, line := range stringutils.SplitLines(content) {
		if forceSentinel.MatchString(line) {
			if forceLine != 0 {
				return nil, errors.WrapIff(
					ErrMalformedIncludeSpec,
					"multiple force sections (lines %d and %d)", forceLine, i+1,
				)
			}
			forceLine = i + 1
			spec.Force = []string{}
			continue
		}
		if forceLine != 0 {
			spec.Force = append(spec.Force, line)
		} else {
			spec.Include = append(spec.Include, line)
		}
	}
	return spec, nil
}

// LoadIncludeSpec reads and parses the include file at path.
func LoadIncludeSpec(path string) (*IncludeSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIff(err, "failed to read include file %q", path)
	}
	spec, err := ParseIncludeSpec(string(data))
	if err != nil {
		return nil, errors.WrapIff(err, "invalid include file %q", path)
	}
	return spec, nil
}

// HasForce reports whether the spec has a force section.
func (s *IncludeSpec) HasForce() bool {
	return s.Force != nil
}

// Matchers compiles the spec. force is nil when there is no force section.
func (s *IncludeSpec) Matchers() (include, force *Matcher) {
	include = Compile(s.Include)
	if s.HasForce() {
		force = Compile(s.Force)
	}
	return include, force
}
