package git

import (
	"cmp"
	"context"
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// StatusCode is the two-character XY code of a porcelain status line: X is
// the state of the index and Y the state of the working tree.
type StatusCode string

const (
	StatusIgnored   StatusCode = "!!"
	StatusUntracked StatusCode = "??"
)

// statusAlphabet is every character that may appear in either slot of a
// status code. Space means "unchanged".
const statusAlphabet = "ACDMRTU?! "

var unmergedCodes = map[StatusCode]bool{
	"DD": true,
	"AU": true,
	"UD": true,
	"UA": true,
	"DU": true,
	"AA": true,
	"UU": true,
}

// Valid reports whether c is a well formed status code.
func (c StatusCode) Valid() bool {
	if len(c) != 2 || c == "  " {
		return false
	}
	return strings.IndexByte(statusAlphabet, c[0]) >= 0 &&
		strings.IndexByte(statusAlphabet, c[1]) >= 0
}

// IsUnmerged reports whether c describes an unresolved merge conflict.
func (c StatusCode) IsUnmerged() bool {
	return unmergedCodes[c]
}

// IsRename reports whether entries with this code carry a path pair.
// Only " R" and "R " do.
func (c StatusCode) IsRename() bool {
	return c == " R" || c == "R "
}

func (c StatusCode) Index() byte {
	return c[0]
}

func (c StatusCode) Worktree() byte {
	return c[1]
}

// rank orders codes for display: ordinary changes first, then untracked,
// then ignored.
func (c StatusCode) rank() int {
	switch c {
	case StatusUntracked:
		return 1
	case StatusIgnored:
		return 2
	default:
		return 0
	}
}

func compareCodes(a, b StatusCode) int {
	if r := cmp.Compare(a.rank(), b.rank()); r != 0 {
		return r
	}
	return cmp.Compare(a, b)
}

// Change is a single changed path. For rename codes, Path is the original
// name and NewPath is the new name; otherwise NewPath is empty.
type Change struct {
	Path    string
	NewPath string
}

func (c Change) IsPair() bool {
	return c.NewPath != ""
}

// Paths returns every path named by the change.
func (c Change) Paths() []string {
	if c.IsPair() {
		return []string{c.Path, c.NewPath}
	}
	return []string{c.Path}
}

func (c Change) String() string {
	if c.IsPair() {
		return c.Path + " -> " + c.NewPath
	}
	return c.Path
}

func compareChanges(a, b Change) int {
	if r := cmp.Compare(a.Path, b.Path); r != 0 {
		return r
	}
	return cmp.Compare(a.NewPath, b.NewPath)
}

// StatusEntry is one parsed status line.
type StatusEntry struct {
	Code StatusCode
	Change
}

// StatusMap groups changes by status code. Every bucket is sorted and free of
// duplicates, and codes without changes are absent. A StatusMap should be
// treated as immutable once built; derive new maps instead of editing one.
type StatusMap map[StatusCode][]Change

// NewStatusMap builds a StatusMap from entries.
func NewStatusMap(entries []StatusEntry) StatusMap {
	m := StatusMap{}
	for _, e := range entries {
		m[e.Code] = append(m[e.Code], e.Change)
	}
	for code, changes := range m {
		m[code] = normalizeChanges(changes)
	}
	return m
}

// FromBuckets builds a normalized StatusMap from raw buckets, pruning empty
// ones. The input is not modified.
func FromBuckets(buckets map[StatusCode][]Change) StatusMap {
	m := StatusMap{}
	for code, changes := range buckets {
		if len(changes) == 0 {
			continue
		}
		m[code] = normalizeChanges(slices.Clone(changes))
	}
	return m
}

func normalizeChanges(changes []Change) []Change {
	slices.SortFunc(changes, compareChanges)
	return slices.Compact(changes)
}

// Codes returns the codes present in the map in display order.
func (m StatusMap) Codes() []StatusCode {
	codes := make([]StatusCode, 0, len(m))
	for code := range m {
		codes = append(codes, code)
	}
	slices.SortFunc(codes, compareCodes)
	return codes
}

// Len returns the total number of changes across all codes.
func (m StatusMap) Len() int {
	n := 0
	for _, changes := range m {
		n += len(changes)
	}
	return n
}

// Entries flattens the map in display order.
func (m StatusMap) Entries() []StatusEntry {
	var entries []StatusEntry
	for _, code := range m.Codes() {
		for _, c := range m[code] {
			entries = append(entries, StatusEntry{code, c})
		}
	}
	return entries
}

// Paths returns every path in the map (both members of rename pairs),
// sorted and deduplicated.
func (m StatusMap) Paths() []string {
	var paths []string
	for _, changes := range m {
		for _, c := range changes {
			paths = append(paths, c.Paths()...)
		}
	}
	slices.Sort(paths)
	return slices.Compact(paths)
}

// Without returns a copy of m without the given codes.
func (m StatusMap) Without(codes ...StatusCode) StatusMap {
	out := StatusMap{}
	for code, changes := range m {
		if slices.Contains(codes, code) {
			continue
		}
		out[code] = slices.Clone(changes)
	}
	return out
}

func (m StatusMap) Equal(other StatusMap) bool {
	return maps.EqualFunc(m, other, slices.Equal[[]Change])
}

// Format serializes m back into porcelain v1 status text.
func (m StatusMap) Format() string {
	var sb strings.Builder
	for _, e := range m.Entries() {
		sb.WriteString(string(e.Code))
		sb.WriteByte(' ')
		sb.WriteString(QuotePath(e.Path))
		if e.IsPair() {
			sb.WriteString(" -> ")
			sb.WriteString(QuotePath(e.NewPath))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseError is returned when a status line does not have the expected shape.
type ParseError struct {
	Line string
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse git status line %q: %s", e.Line, e.Msg)
}

// Status runs `git status` once (including untracked and ignored files) and
// parses its porcelain output. Files inside untracked and ignored directories
// are listed one by one so include patterns like `*.py` can reach them.
func (r *Repo) Status(ctx context.Context) (StatusMap, error) {
	out, err := r.Run(ctx, &RunOpts{
		Args: []string{
			"status",
			"--porcelain=v1",
			"--ignored=traditional",
			"--untracked-files=all",
		},
		ExitError: true,
	})
	if err != nil {
		return nil, err
	}
	// The output must not be trimmed: a leading space is part of the first
	// status code.
	return ParseStatus(string(out.Stdout))
}

// ParseStatus parses porcelain v1 status text. Any malformed line fails the
// whole parse.
func ParseStatus(raw string) (StatusMap, error) {
	var entries []StatusEntry
	for _, line := range strings.Split(raw, "\n") {
		if line == "" {
			continue
		}
		e, err := ParseStatusLine(line)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return NewStatusMap(entries), nil
}

// ParseStatusLine parses a single porcelain v1 status line.
func ParseStatusLine(line string) (StatusEntry, error) {
	fail := func(format string, args ...any) (StatusEntry, error) {
		return StatusEntry{}, &ParseError{Line: line, Msg: fmt.Sprintf(format, args...)}
	}
	if len(line) < 4 {
		return fail("line too short")
	}
	code := StatusCode(line[:2])
	if !code.Valid() {
		return fail("invalid status code %q", code)
	}
	if line[2] != ' ' {
		return fail("expected a space after the status code")
	}

	path, rest, err := parsePathField(line[3:])
	if err != nil {
		return fail("%s", err)
	}
	entry := StatusEntry{Code: code, Change: Change{Path: path}}
	if rest == "" {
		if code.IsRename() {
			return fail("rename entry %q has no destination path", code)
		}
		return entry, nil
	}

	const arrow = " -> "
	if !strings.HasPrefix(rest, arrow) {
		return fail("unexpected trailing data %q", rest)
	}
	if !code.IsRename() {
		if code.Index() == 'R' || code.Index() == 'C' {
			return fail("this %s file is partially staged (status %q); stage or discard "+
				"the later edits to %q so the change is fully staged or fully unstaged",
				statusLabels[code.Index()], code, rest[len(arrow):])
		}
		return fail("path pair found on non-rename status code %q", code)
	}
	newPath, rest, err := parsePathField(rest[len(arrow):])
	if err != nil {
		return fail("%s", err)
	}
	if rest != "" {
		return fail("unexpected trailing data %q", rest)
	}
	entry.NewPath = newPath
	return entry, nil
}

// parsePathField reads one (possibly quoted) path from the start of s and
// returns it along with the unconsumed remainder.
func parsePathField(s string) (string, string, error) {
	if s == "" {
		return "", "", fmt.Errorf("missing path")
	}
	if s[0] == '"' {
		for i := 1; i < len(s); i++ {
			switch s[i] {
			case '\\':
				i++
			case '"':
				path, err := UnquotePath(s[1:i])
				if err != nil {
					return "", "", err
				}
				if path == "" {
					return "", "", fmt.Errorf("empty quoted path")
				}
				return path, s[i+1:], nil
			}
		}
		return "", "", fmt.Errorf("unterminated quoted path")
	}

	var sb strings.Builder
	i := 0
	for ; i < len(s) && s[i] != ' '; i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		sb.WriteByte(s[i])
	}
	return sb.String(), s[i:], nil
}
