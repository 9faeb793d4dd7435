package render

import (
	"regexp"

	"github.com/example/svchef/internal/errors"
	"github.com/example/svchef/internal/model"
)

// Filter is a compiled exclusion pattern applied at render time. It
// matches port and parameter names case-sensitively and unanchored; a
// match omits the entry, and for a composite port its whole field
// subtree, from output. A nil *Filter keeps everything, so callers can
// thread one through without nil checks.
type Filter struct {
	re *regexp.Regexp
}

// CompileFilter compiles an exclusion pattern. The empty pattern means
// no filtering and yields a nil filter; a malformed pattern is an
// invalid-filter-pattern error.
func CompileFilter(pattern string) (*Filter, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "invalid exclude pattern %q", pattern),
			errors.ErrInvalidFilterPattern)
	}
	return &Filter{re: re}, nil
}

// Excludes reports whether an entry with this name is omitted.
func (f *Filter) Excludes(name string) bool {
	return f != nil && f.re.MatchString(name)
}

// Ports returns the ports that survive the filter, in order. With no
// exclusions the input slice is returned as is.
func (f *Filter) Ports(ports []model.Port) []model.Port {
	if f == nil {
		return ports
	}
	kept := make([]model.Port, 0, len(ports))
	for _, p := range ports {
		if f.Excludes(p.Name) {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

// Parameters returns the parameters that survive the filter, in order.
func (f *Filter) Parameters(params []model.Parameter) []model.Parameter {
	if f == nil {
		return params
	}
	kept := make([]model.Parameter, 0, len(params))
	for _, p := range params {
		if f.Excludes(p.Name) {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}
