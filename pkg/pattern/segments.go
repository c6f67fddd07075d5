package pattern

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dimfeld/httppath"
)

type segmentKind int

const (
	literal segmentKind = iota
	single
	remainder
)

type segment struct {
	kind  segmentKind
	value string
}

type template struct {
	segments []segment
}

// Segments is the default Matcher. Compiled templates are cached, so a
// Segments value is safe for concurrent use once constructed.
type Segments struct {
	cache sync.Map
}

// NewSegments creates a Segments matcher with an empty template cache.
func NewSegments() *Segments {
	return &Segments{}
}

// Compile validates pattern and caches its compiled form.
func (s *Segments) Compile(pattern string) error {
	_, err := s.template(pattern)
	return err
}

// Match reports whether path satisfies pattern. Patterns that fail to
// compile never match.
func (s *Segments) Match(pattern, path string) (Params, bool) {
	t, err := s.template(pattern)
	if err != nil {
		return nil, false
	}
	return t.match(path)
}

func (s *Segments) template(pattern string) (*template, error) {
	if cached, ok := s.cache.Load(pattern); ok {
		return cached.(*template), nil
	}

	t, err := compile(pattern)
	if err != nil {
		return nil, err
	}

	actual, _ := s.cache.LoadOrStore(pattern, t)
	return actual.(*template), nil
}

func compile(pattern string) (*template, error) {
	if !strings.HasPrefix(pattern, "/") {
		return nil, fmt.Errorf("%w: %q must start with /", ErrInvalidPattern, pattern)
	}

	cleaned := httppath.Clean(pattern)
	parts := strings.Split(cleaned[1:], "/")
	names := make(map[string]struct{})

	t := &template{segments: make([]segment, 0, len(parts))}
	for i, part := range parts {
		seg, err := parseSegment(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err)
		}

		if seg.kind == remainder && i != len(parts)-1 {
			return nil, fmt.Errorf("%w: %q: {%s...} must be the final segment", ErrInvalidPattern, pattern, seg.value)
		}

		if seg.kind != literal {
			if _, dup := names[seg.value]; dup {
				return nil, fmt.Errorf("%w: %q: duplicate name %q", ErrInvalidPattern, pattern, seg.value)
			}
			names[seg.value] = struct{}{}
		}

		t.segments = append(t.segments, seg)
	}

	return t, nil
}

func parseSegment(part string) (segment, error) {
	open := strings.IndexByte(part, '{')
	end := strings.IndexByte(part, '}')

	if open < 0 && end < 0 {
		return segment{kind: literal, value: part}, nil
	}

	if open != 0 || end != len(part)-1 || strings.Count(part, "{") != 1 || strings.Count(part, "}") != 1 {
		return segment{}, fmt.Errorf("placeholder must span the whole segment: %q", part)
	}

	name := part[1 : len(part)-1]
	kind := single
	if rest, ok := strings.CutSuffix(name, "..."); ok {
		name = rest
		kind = remainder
	}

	if name == "" {
		return segment{}, fmt.Errorf("placeholder name is empty: %q", part)
	}
	if strings.ContainsAny(name, "./") {
		return segment{}, fmt.Errorf("placeholder name %q contains an invalid character", name)
	}

	return segment{kind: kind, value: name}, nil
}

func (t *template) match(path string) (Params, bool) {
	if !strings.HasPrefix(path, "/") {
		return nil, false
	}

	parts := strings.Split(path[1:], "/")

	var params Params
	for i, seg := range t.segments {
		switch seg.kind {
		case remainder:
			if i >= len(parts) {
				return nil, false
			}
			params = append(params, Param{Name: seg.value, Value: strings.Join(parts[i:], "/")})
			return params, true
		case single:
			if i >= len(parts) || parts[i] == "" {
				return nil, false
			}
			params = append(params, Param{Name: seg.value, Value: parts[i]})
		default:
			if i >= len(parts) || parts[i] != seg.value {
				return nil, false
			}
		}
	}

	if len(parts) != len(t.segments) {
		return nil, false
	}

	return params, true
}
