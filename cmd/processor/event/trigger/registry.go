package trigger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fotofeed/events"
)

var ErrInvalidPattern = errors.New("invalid trigger pattern")

// Params holds the wildcard segments captured from a document path.
type Params map[string]string

// Change is what a handler receives for one matched document change.
type Change struct {
	Path   string
	Kind   events.ChangeKind
	Params Params
	Event  events.DocumentChangedEvent
}

type Handler func(ctx context.Context, change Change) error

type route struct {
	pattern  string
	segments []string
	kind     events.ChangeKind
	handler  Handler
}

// Registry maps document path patterns such as "pubblicazioni/{postId}/likes/{userId}"
// and a change kind to handlers.
type Registry struct {
	routes []route
}

func NewRegistry() *Registry {
	return &Registry{}
}

// On registers handler for every change on documents matching pattern.
// A segment wrapped in braces matches exactly one path segment and is captured by name.
func (r *Registry) On(pattern string, kind events.ChangeKind, handler Handler) error {
	if handler == nil {
		return fmt.Errorf("%w: nil handler for %q", ErrInvalidPattern, pattern)
	}
	segments := splitPath(pattern)
	if len(segments) == 0 {
		return fmt.Errorf("%w: empty pattern", ErrInvalidPattern)
	}
	seen := map[string]bool{}
	for _, seg := range segments {
		name, ok := wildcardName(seg)
		if !ok {
			if strings.ContainsAny(seg, "{}") {
				return fmt.Errorf("%w: malformed segment %q in %q", ErrInvalidPattern, seg, pattern)
			}
			continue
		}
		if name == "" || seen[name] {
			return fmt.Errorf("%w: bad wildcard %q in %q", ErrInvalidPattern, seg, pattern)
		}
		seen[name] = true
	}
	r.routes = append(r.routes, route{
		pattern:  pattern,
		segments: segments,
		kind:     kind,
		handler:  handler,
	})
	return nil
}

// Dispatch runs every handler whose pattern and kind match the event and returns
// how many matched. Handler errors are joined.
func (r *Registry) Dispatch(ctx context.Context, evt events.DocumentChangedEvent) (int, error) {
	path := splitPath(evt.Path)
	matched := 0
	var errs []error
	for _, rt := range r.routes {
		if !rt.kind.Matches(evt.Kind) {
			continue
		}
		params, ok := match(rt.segments, path)
		if !ok {
			continue
		}
		matched++
		change := Change{
			Path:   evt.Path,
			Kind:   evt.Kind,
			Params: params,
			Event:  evt,
		}
		if err := rt.handler(ctx, change); err != nil {
			errs = append(errs, fmt.Errorf("trigger %s: %w", rt.pattern, err))
		}
	}
	return matched, errors.Join(errs...)
}

func match(pattern, path []string) (Params, bool) {
	if len(pattern) != len(path) {
		return nil, false
	}
	params := Params{}
	for i, seg := range pattern {
		if name, ok := wildcardName(seg); ok {
			if path[i] == "" {
				return nil, false
			}
			params[name] = path[i]
			continue
		}
		if seg != path[i] {
			return nil, false
		}
	}
	return params, true
}

func wildcardName(seg string) (string, bool) {
	if len(seg) < 2 || seg[0] != '{' || seg[len(seg)-1] != '}' {
		return "", false
	}
	return seg[1 : len(seg)-1], true
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
